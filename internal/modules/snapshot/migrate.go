package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/wellspring-app/core/internal/models"
)

// A migration step transforms a document from version N to N+1. Steps must be
// total over any document that passed the candidate gate, and idempotent when
// re-applied to already-migrated data: a crash between the transform and the
// version stamp must not corrupt anything on retry.
type migrationStep func(Document) (Document, error)

var migrationSteps = map[int]migrationStep{
	1: migrateV1toV2,
	2: migrateV2toV3,
}

// Migrate walks the document from its declared version up to
// CurrentSchemaVersion, one step at a time with no skip-ahead, stamping the
// version after each step. Documents already at the ceiling pass through
// unchanged.
func Migrate(doc Document) (Document, error) {
	v, ok := doc.Version()
	if !ok {
		return nil, &MigrationError{From: 0, To: CurrentSchemaVersion, Err: fmt.Errorf("document has no readable schema version")}
	}
	if v > CurrentSchemaVersion {
		return nil, &IncompatibleVersionError{Found: v, Current: CurrentSchemaVersion}
	}

	for v < CurrentSchemaVersion {
		step, ok := migrationSteps[v]
		if !ok {
			return nil, &MigrationError{From: v, To: v + 1, Err: fmt.Errorf("no migration step registered")}
		}
		next, err := step(doc)
		if err != nil {
			if _, isMigration := err.(*MigrationError); isMigration {
				return nil, err
			}
			return nil, &MigrationError{From: v, To: v + 1, Err: err}
		}
		doc = next
		v++
		doc[FieldSchemaVersion] = v
	}

	return doc, nil
}

// renameSection moves a section value to its new key. No-op when the old key
// is gone or the new key already holds a value (idempotence).
func renameSection(doc Document, from, to string) {
	old, ok := doc[from]
	if !ok {
		return
	}
	if existing, has := doc[to]; !has || existing == nil {
		doc[to] = old
	}
	delete(doc, from)
}

// introduceSection sets a default value for a newly added section, without
// clobbering data a partially-applied earlier run already wrote.
func introduceSection(doc Document, key SectionKey, def interface{}) {
	if _, ok := doc[string(key)]; !ok {
		doc[string(key)] = def
	}
}

const emptyListPayload = "[]"

// v2 renamed the raw "entries" keys to reading terminology, dropped the
// abandoned sync queue, and introduced the health-tracking sections with
// empty defaults so round-trips distinguish "never had this version's
// sections" (null) from "had them, empty" ("[]").
func migrateV1toV2(doc Document) (Document, error) {
	renameSection(doc, "mood_entries", string(SectionMoodReadings))
	renameSection(doc, "pulse_entries", string(SectionPulseReadings))
	delete(doc, "sync_queue")

	for _, key := range []SectionKey{
		SectionEnergyReadings,
		SectionSleepLogs,
		SectionWeightReadings,
		SectionBloodPressureReadings,
		SectionGlucoseReadings,
		SectionWaterLogs,
		SectionRecipes,
		SectionWorkouts,
		SectionStepCounts,
		SectionFocusSessions,
		SectionMeditationLogs,
		SectionSupplements,
		SectionSymptoms,
		SectionSymptomLogs,
		SectionMentorNotes,
		SectionAchievements,
	} {
		introduceSection(doc, key, emptyListPayload)
	}

	return doc, nil
}

// v3 folded the stray top-level theme/locale scalars into the settings
// object and introduced the AI context profile and the review scalars.
func migrateV2toV3(doc Document) (Document, error) {
	theme, hasTheme := doc["theme"].(string)
	locale, hasLocale := doc["locale"].(string)

	if hasTheme || hasLocale {
		var settings models.Settings
		if raw, ok := doc[string(SectionSettings)].(string); ok && raw != "" {
			if err := json.Unmarshal([]byte(raw), &settings); err != nil {
				return nil, &MigrationError{From: 2, To: 3, Section: SectionSettings, Err: err}
			}
		}
		if hasTheme && settings.Theme == "" {
			settings.Theme = theme
		}
		if hasLocale && settings.Locale == "" {
			settings.Locale = locale
		}
		encoded, err := json.Marshal(settings)
		if err != nil {
			return nil, &MigrationError{From: 2, To: 3, Section: SectionSettings, Err: err}
		}
		doc[string(SectionSettings)] = string(encoded)
	}
	delete(doc, "theme")
	delete(doc, "locale")

	introduceSection(doc, SectionAIContextProfile, nil)
	introduceSection(doc, SectionStreakCounter, 0)
	introduceSection(doc, SectionLastReviewDate, nil)

	// Older documents may predate sections later versions assume exist.
	// Backfill presence (null) so post-migration validation sees the full
	// registry; null sections are skipped during import.
	for i := range Sections {
		introduceSection(doc, Sections[i].Key, nil)
	}

	return doc, nil
}
