package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellspring-app/core/internal/models"
)

func findItem(outcome *ImportOutcome, key SectionKey) *ImportItemResult {
	for i := range outcome.Items {
		if outcome.Items[i].SectionKey == key {
			return &outcome.Items[i]
		}
	}
	return nil
}

func TestRestoreRoundTrip(t *testing.T) {
	source := newMemStore()
	source.set(SectionGoals, listPayload(t, 3))
	source.set(SectionJournalEntries, listPayload(t, 2))
	source.set(SectionStreakCounter, "9")

	data, err := NewExporter(source).CreateSnapshotDocument(context.Background())
	require.NoError(t, err)

	target := newMemStore()
	outcome := NewImporter(target, nil).RestoreFromBytes(context.Background(), data)

	assert.True(t, outcome.OverallSuccess)
	assert.False(t, outcome.PartialFailure)

	goals := findItem(outcome, SectionGoals)
	require.NotNil(t, goals)
	assert.True(t, goals.Success)
	assert.Equal(t, 3, goals.RecordCount)

	assert.Equal(t, listPayload(t, 3), target.get(t, SectionGoals))
	assert.Equal(t, listPayload(t, 2), target.get(t, SectionJournalEntries))
	assert.Equal(t, "9", target.get(t, SectionStreakCounter))

	// Null sections produce no result item and no write.
	assert.Nil(t, findItem(outcome, SectionHabits))
	_, written := target.data[SectionHabits]
	assert.False(t, written)
}

func TestRestoreIsolatesCorruptSections(t *testing.T) {
	doc := currentDocument(map[string]interface{}{
		string(SectionGoals):  listPayload(t, 2),
		string(SectionHabits): `{definitely not a list`,
	})

	target := newMemStore()
	outcome := NewImporter(target, nil).RestoreFromBytes(context.Background(), docBytes(t, doc))

	assert.True(t, outcome.OverallSuccess)
	assert.True(t, outcome.PartialFailure)

	goals := findItem(outcome, SectionGoals)
	require.NotNil(t, goals)
	assert.True(t, goals.Success)
	assert.Equal(t, 2, goals.RecordCount)

	habits := findItem(outcome, SectionHabits)
	require.NotNil(t, habits)
	assert.False(t, habits.Success)
	assert.NotEmpty(t, habits.ErrorMessage)

	_, written := target.data[SectionHabits]
	assert.False(t, written, "a corrupt section must not be written")
	assert.Equal(t, "1 of 2 data types restored", outcome.Message)
}

func TestRestoreIsolatesStoreWriteFailures(t *testing.T) {
	doc := currentDocument(map[string]interface{}{
		string(SectionGoals):  listPayload(t, 1),
		string(SectionHabits): listPayload(t, 1),
	})

	target := newMemStore()
	target.failOn[SectionGoals] = errors.New("disk full")

	outcome := NewImporter(target, nil).RestoreFromBytes(context.Background(), docBytes(t, doc))

	goals := findItem(outcome, SectionGoals)
	require.NotNil(t, goals)
	assert.False(t, goals.Success)
	assert.Contains(t, goals.ErrorMessage, "disk full")

	habits := findItem(outcome, SectionHabits)
	require.NotNil(t, habits)
	assert.True(t, habits.Success)
}

func TestRestoreLegacyDocumentEndToEnd(t *testing.T) {
	legacy := Document{
		"moodEntries": []interface{}{
			map[string]interface{}{"id": "m1", "value": float64(7)},
			map[string]interface{}{"id": "m2", "value": float64(4)},
		},
		"backupDate": "2019-04-01T10:00:00Z",
	}

	target := newMemStore()
	outcome := NewImporter(target, nil).RestoreFromBytes(context.Background(), docBytes(t, legacy))

	assert.True(t, outcome.OverallSuccess)
	assert.False(t, outcome.PartialFailure)

	// Renamed along the way: moodEntries → mood_entries → mood_readings.
	mood := findItem(outcome, SectionMoodReadings)
	require.NotNil(t, mood)
	assert.True(t, mood.Success)
	assert.Equal(t, 2, mood.RecordCount)
	assert.JSONEq(t, `[{"id":"m1","value":7},{"id":"m2","value":4}]`, target.get(t, SectionMoodReadings))

	// Sections introduced as empty lists import as zero-record successes.
	sleep := findItem(outcome, SectionSleepLogs)
	require.NotNil(t, sleep)
	assert.True(t, sleep.Success)
	assert.Equal(t, 0, sleep.RecordCount)

	// Sections the legacy export never carried stay null: skipped silently.
	assert.Nil(t, findItem(outcome, SectionSettings))
	assert.Nil(t, findItem(outcome, SectionGoals))
}

func TestRestoreRejectsNewerSchema(t *testing.T) {
	doc := Document{
		FieldSchemaVersion:   float64(CurrentSchemaVersion + 1),
		string(SectionGoals): listPayload(t, 1),
	}

	target := newMemStore()
	outcome := NewImporter(target, nil).RestoreFromBytes(context.Background(), docBytes(t, doc))

	assert.False(t, outcome.OverallSuccess)
	assert.Empty(t, outcome.Items)
	assert.Contains(t, outcome.Message, "newer app version")
	assert.Empty(t, target.data, "nothing may be written before the version gate")
}

func TestRestoreRejectsGarbage(t *testing.T) {
	target := newMemStore()
	importer := NewImporter(target, nil)

	for name, input := range map[string][]byte{
		"binary":        {0xff, 0x00, 0x01},
		"not json":      []byte("hello world"),
		"json non-map":  []byte(`[1,2,3]`),
		"unrelated map": []byte(`{"foo":"bar"}`),
	} {
		outcome := importer.RestoreFromBytes(context.Background(), input)
		assert.False(t, outcome.OverallSuccess, "input %q must be rejected", name)
		assert.Empty(t, outcome.Items, "input %q must not produce items", name)
	}
	assert.Empty(t, target.data)
}

func TestRestoreAllNullSectionsMeansNothingRestored(t *testing.T) {
	target := newMemStore()
	outcome := NewImporter(target, nil).RestoreFromBytes(context.Background(), docBytes(t, currentDocument(nil)))

	assert.False(t, outcome.OverallSuccess)
	assert.False(t, outcome.PartialFailure)
	assert.Empty(t, outcome.Items)
	assert.Equal(t, "nothing was restored", outcome.Message)
}

func TestRestoreMergesSettingsKeepingLocalSecrets(t *testing.T) {
	target := newMemStore()
	target.set(SectionSettings, mustJSON(t, models.Settings{
		Theme:               "light",
		APIKey:              "local-key",
		OnboardingCompleted: true,
		AutoBackupEnabled:   true,
		BackupFolderURI:     "content://local",
	}))

	doc := currentDocument(map[string]interface{}{
		string(SectionSettings): mustJSON(t, models.Settings{
			Theme:             "dark",
			Locale:            "fr",
			APIKey:            "imported-key",
			AutoBackupEnabled: false,
			BackupFolderURI:   "content://foreign",
		}),
	})

	outcome := NewImporter(target, nil).RestoreFromBytes(context.Background(), docBytes(t, doc))

	item := findItem(outcome, SectionSettings)
	require.NotNil(t, item)
	assert.True(t, item.Success)
	assert.Equal(t, 1, item.RecordCount)

	var merged models.Settings
	require.NoError(t, json.Unmarshal([]byte(target.get(t, SectionSettings)), &merged))

	// Imported preferences land...
	assert.Equal(t, "dark", merged.Theme)
	assert.Equal(t, "fr", merged.Locale)
	// ...but installation-local fields stay local, and the folder handle is gone.
	assert.Equal(t, "local-key", merged.APIKey)
	assert.True(t, merged.OnboardingCompleted)
	assert.True(t, merged.AutoBackupEnabled)
	assert.Empty(t, merged.BackupFolderURI)
}

func TestRestoreAcceptsArchivedAndPlainContainers(t *testing.T) {
	doc := currentDocument(map[string]interface{}{
		string(SectionGoals): listPayload(t, 1),
	})
	text := string(docBytes(t, doc))

	archived, err := Encode(text)
	require.NoError(t, err)

	for name, input := range map[string][]byte{
		"archived": archived,
		"plain":    EncodePlain(text),
	} {
		target := newMemStore()
		outcome := NewImporter(target, nil).RestoreFromBytes(context.Background(), input)
		assert.True(t, outcome.OverallSuccess, "container %q", name)
		assert.Equal(t, listPayload(t, 1), target.get(t, SectionGoals))
	}
}
