package snapshot

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSnapshotCoversEveryRegisteredSection(t *testing.T) {
	st := newMemStore()
	st.set(SectionGoals, listPayload(t, 2))

	doc, err := NewExporter(st, WithAppVersion("1.2.3")).CreateSnapshot(context.Background())
	require.NoError(t, err)

	v, ok := doc.Version()
	require.True(t, ok)
	assert.Equal(t, CurrentSchemaVersion, v)
	assert.Equal(t, "1.2.3", doc[FieldAppVersion])
	assert.NotEmpty(t, doc[FieldExportDate])

	for i := range Sections {
		_, present := doc[string(Sections[i].Key)]
		assert.True(t, present, "section %q must be present", Sections[i].Key)
	}
	assert.Nil(t, doc[string(SectionHabits)], "never-written sections export as null")
	assert.Equal(t, listPayload(t, 2), doc[string(SectionGoals)])
}

func TestCreateSnapshotNeverExportsExcludedKeys(t *testing.T) {
	st := newMemStore()
	st.set(SectionAPICredentials, `{"token":"secret"}`)
	st.set(SectionPushToken, "tok-123")

	doc, err := NewExporter(st).CreateSnapshot(context.Background())
	require.NoError(t, err)

	for _, key := range ExcludedKeys {
		_, present := doc[string(key)]
		assert.False(t, present, "excluded key %q must not appear", key)
	}
}

func TestCreateSnapshotStripsSensitiveSettingsFields(t *testing.T) {
	st := newMemStore()
	st.set(SectionSettings, `{"theme":"dark","api_key":"sk-123","backup_folder_uri":"content://x","custom":"kept"}`)

	doc, err := NewExporter(st).CreateSnapshot(context.Background())
	require.NoError(t, err)

	var settings map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(doc[string(SectionSettings)].(string)), &settings))
	assert.NotContains(t, settings, "api_key")
	assert.NotContains(t, settings, "backup_folder_uri")
	assert.Equal(t, "dark", settings["theme"])
	assert.Equal(t, "kept", settings["custom"], "unknown extra fields survive the strip")
}

func TestCreateSnapshotUnreadableSettingsExportNull(t *testing.T) {
	st := newMemStore()
	st.set(SectionSettings, `{broken`)

	doc, err := NewExporter(st).CreateSnapshot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, doc[string(SectionSettings)], "rather null than a possible credential leak")
}

func TestCreateSnapshotScalars(t *testing.T) {
	st := newMemStore()
	st.set(SectionStreakCounter, "17")
	st.set(SectionLastReviewDate, "2026-08-20")

	doc, err := NewExporter(st).CreateSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 17, doc[string(SectionStreakCounter)])
	assert.Equal(t, "2026-08-20", doc[string(SectionLastReviewDate)])
}

func TestCreateSnapshotCorruptScalarExportsNull(t *testing.T) {
	st := newMemStore()
	st.set(SectionStreakCounter, "not a number")

	doc, err := NewExporter(st).CreateSnapshot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, doc[string(SectionStreakCounter)])
}

func TestCreateSnapshotStatistics(t *testing.T) {
	st := newMemStore()
	st.set(SectionGoals, listPayload(t, 3))
	st.set(SectionMoodReadings, listPayload(t, 5))
	st.set(SectionAIContextProfile, `{"display_name":"A"}`)

	doc, err := NewExporter(st).CreateSnapshot(context.Background())
	require.NoError(t, err)

	stats, ok := doc[FieldStatistics].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 3, stats["goals_total"])
	assert.Equal(t, 5, stats["mood_readings_total"])
	assert.Equal(t, true, stats["has_ai_context"])
	assert.NotContains(t, stats, "habits_total", "unpopulated sections count no statistics")
}

func TestCreateSnapshotDocumentIsArchived(t *testing.T) {
	st := newMemStore()

	data, err := NewExporter(st).CreateSnapshotDocument(context.Background())
	require.NoError(t, err)
	assert.True(t, IsArchive(data))

	text, err := Decode(data)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(text), &doc))
	assert.True(t, ValidateStructure(doc))
}

func TestCreateSnapshotTextIsPlain(t *testing.T) {
	st := newMemStore()

	data, err := NewExporter(st).CreateSnapshotText(context.Background())
	require.NoError(t, err)
	assert.False(t, IsArchive(data))

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.True(t, ValidateStructure(doc))
}
