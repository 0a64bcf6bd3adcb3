package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLegacyFormat(t *testing.T) {
	t.Run("marker keys without version", func(t *testing.T) {
		assert.True(t, IsLegacyFormat(Document{"journalEntries": []interface{}{}}))
		assert.True(t, IsLegacyFormat(Document{"backupDate": "2019-04-01"}))
		assert.True(t, IsLegacyFormat(Document{"appSettings": map[string]interface{}{}}))
	})

	t.Run("versioned documents are never legacy", func(t *testing.T) {
		assert.False(t, IsLegacyFormat(Document{
			FieldSchemaVersion: float64(1),
			"journalEntries":   []interface{}{},
		}))
	})

	t.Run("empty or unrelated documents", func(t *testing.T) {
		assert.False(t, IsLegacyFormat(Document{}))
		assert.False(t, IsLegacyFormat(Document{"random": 1}))
	})
}

func TestMigrateLegacyRenamesAndNormalizes(t *testing.T) {
	doc := Document{
		"moodEntries": []interface{}{
			map[string]interface{}{"id": "m1", "value": float64(7)},
		},
		"appSettings": map[string]interface{}{"theme": "dark"},
		"backupDate":  "2019-04-01T10:00:00Z",
		"whatIsThis":  "junk",
	}

	out, err := MigrateLegacy(doc)
	require.NoError(t, err)

	v, ok := out.Version()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	// Inline composites become opaque encoded strings under renamed keys.
	assert.JSONEq(t, `[{"id":"m1","value":7}]`, out["mood_entries"].(string))
	assert.JSONEq(t, `{"theme":"dark"}`, out["settings"].(string))
	assert.Equal(t, "2019-04-01T10:00:00Z", out[FieldExportDate])

	// Unknown keys are dropped, not carried forward.
	_, hasJunk := out["whatIsThis"]
	assert.False(t, hasJunk)
}

func TestMigrateLegacyBackfillsV1Sections(t *testing.T) {
	out, err := MigrateLegacy(Document{"journalEntries": []interface{}{}})
	require.NoError(t, err)

	for _, key := range v1SectionKeys {
		_, present := out[key]
		assert.True(t, present, "v1 key %q must be present after the bridge", key)
	}
	assert.Nil(t, out["pulse_entries"], "never-carried sections backfill as null")
}

func TestMigrateLegacyStringPayloadPassesThrough(t *testing.T) {
	// Some late legacy exports already stored sections as encoded strings.
	out, err := MigrateLegacy(Document{"habitLogs": `[{"id":"h1"}]`})
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"h1"}]`, out["habit_logs"])
}
