package snapshot

import "fmt"

// CurrentSchemaVersion is the structural contract every export is written at
// and every import is migrated to.
//
// History:
//
//	legacy — pre-versioning camelCase export, no schemaVersion field
//	v1     — first versioned format
//	v2     — mood/pulse key renames, health-tracking sections introduced
//	v3     — settings folding, AI context profile and review scalars introduced
const CurrentSchemaVersion = 3

// Top-level metadata fields of the snapshot document. Everything else at the
// root is a section key.
const (
	FieldSchemaVersion = "schemaVersion"
	FieldExportDate    = "exportDate"
	FieldAppVersion    = "appVersion"
	FieldBuildInfo     = "buildInfo"
	FieldStatistics    = "statistics"
)

var metadataFields = map[string]struct{}{
	FieldSchemaVersion: {},
	FieldExportDate:    {},
	FieldAppVersion:    {},
	FieldBuildInfo:     {},
	FieldStatistics:    {},
}

// Document is the parsed snapshot: metadata fields plus one entry per section
// key. Section values are nil, an opaque JSON-encoded string, or a primitive
// for the scalar sections. Migration steps transform Documents in place and
// return them for chaining.
type Document map[string]interface{}

// Version extracts the schema version, tolerating the float64 that
// encoding/json produces for numbers.
func (d Document) Version() (int, bool) {
	raw, ok := d[FieldSchemaVersion]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// ImportItemResult reports the outcome of restoring one section.
type ImportItemResult struct {
	SectionKey   SectionKey `json:"section_key"`
	Success      bool       `json:"success"`
	RecordCount  int        `json:"record_count"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

// ImportOutcome aggregates all per-section results of one restore.
type ImportOutcome struct {
	Items          []ImportItemResult `json:"items"`
	OverallSuccess bool               `json:"overall_success"`
	PartialFailure bool               `json:"partial_failure"`
	Message        string             `json:"message"`
}

// finalize derives the aggregate flags and the user-facing summary message.
func (o *ImportOutcome) finalize() {
	successes, failures := 0, 0
	for _, item := range o.Items {
		if item.Success {
			successes++
		} else {
			failures++
		}
	}
	o.OverallSuccess = successes > 0
	o.PartialFailure = successes > 0 && failures > 0

	switch {
	case successes == 0:
		o.Message = "nothing was restored"
	case failures == 0:
		o.Message = fmt.Sprintf("all %d data types restored", successes)
	default:
		o.Message = fmt.Sprintf("%d of %d data types restored", successes, successes+failures)
	}
}

// failedOutcome builds the outcome for a fatal error that aborted the whole
// import before any section was written.
func failedOutcome(err error) *ImportOutcome {
	return &ImportOutcome{
		Items:          []ImportItemResult{},
		OverallSuccess: false,
		PartialFailure: false,
		Message:        err.Error(),
	}
}
