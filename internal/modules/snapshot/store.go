package snapshot

import "context"

// Store is the persistence surface the orchestrator needs: raw section
// payloads keyed by SectionKey. Values are nil when a section was never
// populated. The concrete implementation lives in internal/store; tests use
// an in-memory fake. The orchestrator receives its Store explicitly — there
// is no package-level instance.
type Store interface {
	// Load returns one section's raw payload, nil when never populated.
	Load(ctx context.Context, key SectionKey) (*string, error)
	// Save writes one section's raw payload. nil deletes/clears the value.
	Save(ctx context.Context, key SectionKey, value *string) error
	// LoadAll returns every stored section payload in bulk. Export and the
	// migration tooling use it to operate below the typed-record level.
	LoadAll(ctx context.Context) (map[SectionKey]*string, error)
}
