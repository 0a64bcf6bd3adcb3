package snapshot

import "fmt"

// FormatError reports an unparseable container or document. Fatal.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backup format error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("backup format error: %s", e.Reason)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ValidationError reports a structurally invalid snapshot, before or after
// migration. Fatal.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("backup validation error: %s", e.Reason)
}

// MigrationError reports a failed migration step. Fatal: downstream sections
// may depend on the transformed shape, so there is no partial migration.
type MigrationError struct {
	From    int
	To      int
	Section SectionKey
	Err     error
}

func (e *MigrationError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("migration v%d→v%d failed on section %q: %v", e.From, e.To, e.Section, e.Err)
	}
	return fmt.Sprintf("migration v%d→v%d failed: %v", e.From, e.To, e.Err)
}

func (e *MigrationError) Unwrap() error { return e.Err }

// IncompatibleVersionError reports a snapshot newer than this build
// understands. Fatal; the user must update the app first.
type IncompatibleVersionError struct {
	Found   int
	Current int
}

func (e *IncompatibleVersionError) Error() string {
	return fmt.Sprintf("backup was created by a newer app version (schema v%d, this app supports up to v%d); update the app and try again", e.Found, e.Current)
}

// SectionImportError reports a single section that failed to restore. It is
// recorded in the outcome and never aborts sibling sections.
type SectionImportError struct {
	Section SectionKey
	Err     error
}

func (e *SectionImportError) Error() string {
	return fmt.Sprintf("section %q import failed: %v", e.Section, e.Err)
}

func (e *SectionImportError) Unwrap() error { return e.Err }
