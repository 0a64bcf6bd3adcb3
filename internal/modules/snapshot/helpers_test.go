package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store for tests. Individual keys can be set up to
// fail on write to exercise fault isolation.
type memStore struct {
	mu     sync.Mutex
	data   map[SectionKey]*string
	failOn map[SectionKey]error
}

func newMemStore() *memStore {
	return &memStore{
		data:   map[SectionKey]*string{},
		failOn: map[SectionKey]error{},
	}
}

func (m *memStore) Load(_ context.Context, key SectionKey) (*string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memStore) Save(_ context.Context, key SectionKey, value *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOn[key]; err != nil {
		return err
	}
	m.data[key] = value
	return nil
}

func (m *memStore) LoadAll(_ context.Context) (map[SectionKey]*string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[SectionKey]*string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) set(key SectionKey, payload string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = &payload
}

func (m *memStore) get(t *testing.T, key SectionKey) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	require.True(t, ok, "key %q was never written", key)
	require.NotNil(t, v, "key %q holds null", key)
	return *v
}

// currentDocument builds a minimal valid document at the current schema
// version: every registered section present as null, overridden per test.
func currentDocument(overrides map[string]interface{}) Document {
	doc := Document{FieldSchemaVersion: CurrentSchemaVersion}
	for i := range Sections {
		doc[string(Sections[i].Key)] = nil
	}
	for k, v := range overrides {
		doc[k] = v
	}
	return doc
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func docBytes(t *testing.T, doc Document) []byte {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

// listPayload builds an opaque list payload of n generic records.
func listPayload(t *testing.T, n int) string {
	t.Helper()
	items := make([]map[string]interface{}, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, map[string]interface{}{"id": fmt.Sprintf("id-%d", i)})
	}
	return mustJSON(t, items)
}
