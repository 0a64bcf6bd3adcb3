package snapshot

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	text := `{"schemaVersion":3,"goals":null}`

	archived, err := Encode(text)
	require.NoError(t, err)
	assert.True(t, IsArchive(archived))

	decoded, err := Decode(archived)
	require.NoError(t, err)
	assert.Equal(t, text, decoded)
}

func TestDecodePlainText(t *testing.T) {
	text := `{"schemaVersion":3}`

	decoded, err := Decode(EncodePlain(text))
	require.NoError(t, err)
	assert.Equal(t, text, decoded)
}

func TestDecodeEmptyInput(t *testing.T) {
	_, err := Decode(nil)
	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
}

func TestDecodeBinaryGarbage(t *testing.T) {
	_, err := Decode([]byte{0xff, 0xfe, 0x00, 0x01})
	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
}

func TestDecodeArchiveWithoutCanonicalEntry(t *testing.T) {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	f, err := w.Create("something-else.json")
	require.NoError(t, err)
	_, err = f.Write([]byte("{}"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = Decode(buf.Bytes())
	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, err.Error(), EntryName)
}

func TestDecodeArchiveEntryInSubdirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	f, err := w.Create("export/" + EntryName)
	require.NoError(t, err)
	_, err = f.Write([]byte(`{"schemaVersion":3}`))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	decoded, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, `{"schemaVersion":3}`, decoded)
}

func TestIsArchiveSniffsMagicNotExtension(t *testing.T) {
	assert.False(t, IsArchive([]byte("{}")))
	assert.False(t, IsArchive(nil))
	assert.True(t, IsArchive([]byte{'P', 'K', 0x03, 0x04, 0x00}))
}
