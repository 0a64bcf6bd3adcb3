package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryIsClosedOverKnownKeys(t *testing.T) {
	for i := range Sections {
		key := Sections[i].Key
		assert.True(t, Exported(key))
		assert.False(t, Excluded(key))
		assert.True(t, Known(key))
	}
	for _, key := range ExcludedKeys {
		assert.False(t, Exported(key))
		assert.True(t, Excluded(key))
		assert.True(t, Known(key))
	}
	assert.False(t, Known(SectionKey("made_up_collection")))
}

func TestRegistryKeysAreUnique(t *testing.T) {
	seen := map[SectionKey]bool{}
	for i := range Sections {
		assert.False(t, seen[Sections[i].Key], "duplicate key %q", Sections[i].Key)
		seen[Sections[i].Key] = true
	}
	for _, key := range ExcludedKeys {
		assert.False(t, seen[key], "excluded key %q collides with an exported one", key)
	}
}

func TestListSectionsHaveDecoders(t *testing.T) {
	for i := range Sections {
		s := &Sections[i]
		switch s.Kind {
		case KindList, KindObject:
			assert.NotNil(t, s.decode, "section %q needs a decoder", s.Key)
		default:
			assert.Nil(t, s.decode, "scalar section %q must not carry a decoder", s.Key)
		}
	}
}

func TestDecodePayloadCounts(t *testing.T) {
	goals, ok := SectionByKey(SectionGoals)
	require.True(t, ok)

	count, err := goals.DecodePayload([]byte(`[{"id":"a"},{"id":"b"}]`))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = goals.DecodePayload([]byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = goals.DecodePayload([]byte(`{"id":"a"}`))
	assert.Error(t, err, "an object is not a list payload")

	settings, ok := SectionByKey(SectionSettings)
	require.True(t, ok)
	count, err = settings.DecodePayload([]byte(`{"theme":"dark"}`))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
