package snapshot

import (
	"encoding/json"
	"fmt"
)

// Pre-versioning exports used camelCase keys and embedded section records as
// inline JSON arrays/objects instead of opaque encoded strings. This table
// maps every known legacy key to its v1 equivalent.
var legacyKeyAliases = map[string]string{
	"goals":             "goals",
	"goalProgress":      "goal_progress",
	"milestones":        "milestones",
	"habits":            "habits",
	"habitLogs":         "habit_logs",
	"reminders":         "reminders",
	"journalEntries":    "journal_entries",
	"gratitudeEntries":  "gratitude_entries",
	"affirmations":      "affirmations",
	"moodEntries":       "mood_entries",
	"pulseEntries":      "pulse_entries",
	"nutritionLogs":     "nutrition_logs",
	"meals":             "meals",
	"exerciseLogs":      "exercise_logs",
	"medications":       "medications",
	"medicationLogs":    "medication_logs",
	"assessments":       "assessments",
	"assessmentResults": "assessment_results",
	"mentors":           "mentors",
	"mentorSessions":    "mentor_sessions",
	"appSettings":       "settings",
	"onboardingState":   "onboarding_state",
	"syncQueue":         "sync_queue",
	"theme":             "theme",
	"locale":            "locale",
	"backupDate":        FieldExportDate,
	"appVersion":        FieldAppVersion,
}

// legacyMarkers are keys that only ever appeared in the pre-versioning
// export shape. Seeing any of them (without a schemaVersion) classifies the
// document as legacy.
var legacyMarkers = []string{
	"journalEntries",
	"moodEntries",
	"pulseEntries",
	"habitLogs",
	"goalProgress",
	"appSettings",
	"backupDate",
}

// v1SectionKeys is the section set of the first versioned format. The legacy
// bridge guarantees each of these is present afterwards (null when the legacy
// document never carried it).
var v1SectionKeys = []string{
	"goals", "goal_progress", "milestones",
	"habits", "habit_logs", "reminders",
	"journal_entries", "gratitude_entries", "affirmations",
	"mood_entries", "pulse_entries",
	"nutrition_logs", "meals",
	"exercise_logs",
	"medications", "medication_logs",
	"assessments", "assessment_results",
	"mentors", "mentor_sessions",
	"settings", "onboarding_state",
}

// IsLegacyFormat reports whether the document looks like a pre-versioning
// export: no schemaVersion field, but at least one key that only the legacy
// shape used. This is a heuristic by construction — a corrupted non-legacy
// document that happens to carry a marker key will be misclassified and then
// fail inside the bridge with a descriptive error; there is no definitive
// discriminator in the historical format.
func IsLegacyFormat(doc Document) bool {
	if len(doc) == 0 {
		return false
	}
	if _, ok := doc[FieldSchemaVersion]; ok {
		return false
	}
	for _, marker := range legacyMarkers {
		if _, ok := doc[marker]; ok {
			return true
		}
	}
	return false
}

// MigrateLegacy bridges a legacy document to the v1 shape: keys are renamed,
// inline arrays/objects are re-encoded as opaque strings, unknown keys are
// dropped, and every v1 section key is made present. Record-level content is
// not touched.
func MigrateLegacy(doc Document) (Document, error) {
	out := Document{}

	for key, value := range doc {
		mapped, ok := legacyKeyAliases[key]
		if !ok {
			// Unknown legacy keys carry nothing restorable.
			continue
		}
		normalized, err := normalizeLegacyValue(value)
		if err != nil {
			return nil, &MigrationError{From: 0, To: 1, Section: SectionKey(mapped), Err: err}
		}
		out[mapped] = normalized
	}

	for _, key := range v1SectionKeys {
		if _, ok := out[key]; !ok {
			out[key] = nil
		}
	}

	out[FieldSchemaVersion] = 1
	return out, nil
}

// normalizeLegacyValue re-encodes inline composite values as opaque JSON
// strings, the payload encoding every versioned format uses. Strings and
// scalars pass through.
func normalizeLegacyValue(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case nil, string, bool, float64, int, int64:
		return v, nil
	case []interface{}, map[string]interface{}:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("re-encode legacy payload: %w", err)
		}
		return string(data), nil
	default:
		return nil, fmt.Errorf("unsupported legacy payload type %T", value)
	}
}
