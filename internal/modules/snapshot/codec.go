package snapshot

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"unicode/utf8"
)

// EntryName is the canonical name of the single document entry inside an
// archived backup.
const EntryName = "wellspring-backup.json"

// zipMagic is the local-file-header signature every zip archive starts with.
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// IsArchive reports whether data looks like a zip container. Detection is by
// magic number, never by file extension: the mobile exporters emit both plain
// JSON and zipped artifacts under arbitrary user-chosen names.
func IsArchive(data []byte) bool {
	return len(data) >= len(zipMagic) && bytes.Equal(data[:len(zipMagic)], zipMagic)
}

// Decode extracts the snapshot document text from raw bytes. Archives must
// contain the canonical entry; everything else is treated as UTF-8 text.
func Decode(data []byte) (string, error) {
	if len(data) == 0 {
		return "", &FormatError{Reason: "empty input"}
	}

	if !IsArchive(data) {
		if !utf8.Valid(data) {
			return "", &FormatError{Reason: "input is neither a zip archive nor valid UTF-8 text"}
		}
		return string(data), nil
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &FormatError{Reason: "corrupted zip archive", Err: err}
	}

	for _, f := range zr.File {
		if path.Base(f.Name) != EntryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", &FormatError{Reason: "cannot open archive entry", Err: err}
		}
		text, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", &FormatError{Reason: "cannot read archive entry", Err: err}
		}
		return string(text), nil
	}

	return "", &FormatError{Reason: fmt.Sprintf("archive does not contain entry %q", EntryName)}
}

// Encode wraps the document text into a compressed zip archive with the one
// canonical entry. This is the primary export container.
func Encode(text string) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)

	f, err := w.Create(EntryName)
	if err != nil {
		return nil, err
	}
	if _, err := f.Write([]byte(text)); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodePlain emits the document as bare text. Secondary path for platforms
// without archive support; Decode accepts both forms.
func EncodePlain(text string) []byte {
	return []byte(text)
}
