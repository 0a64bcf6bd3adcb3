package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wellspring-app/core/internal/modules/snapshot"
)

// List reads a list section into typed records. A missing or NULL section
// yields an empty slice.
func List[T any](ctx context.Context, s *Store, key snapshot.SectionKey) ([]T, error) {
	raw, err := s.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(*raw), &items); err != nil {
		return nil, fmt.Errorf("decode %q: %w", key, err)
	}
	return items, nil
}

// Object reads an object section. ok is false when the section has no data.
func Object[T any](ctx context.Context, s *Store, key snapshot.SectionKey) (v T, ok bool, err error) {
	raw, err := s.Load(ctx, key)
	if err != nil || raw == nil {
		return v, false, err
	}
	if err := json.Unmarshal([]byte(*raw), &v); err != nil {
		return v, false, fmt.Errorf("decode %q: %w", key, err)
	}
	return v, true, nil
}
