// Package store is the gorm-backed key/value persistence layer behind the
// snapshot subsystem. Every domain collection lives as one row in
// store_entries, encoded the same way it travels inside a backup document.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wellspring-app/core/internal/models"
	"github.com/wellspring-app/core/internal/modules/snapshot"
	"github.com/wellspring-app/core/internal/pkg/events"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnknownKey is returned for writes with a key outside the registry.
var ErrUnknownKey = errors.New("store: key is not registered")

// Store persists section payloads and announces successful writes on the
// event bus. It satisfies snapshot.Store.
type Store struct {
	db     *gorm.DB
	bus    *events.Bus
	logger *zap.Logger
}

// New creates a Store. bus may be nil when change notifications are not
// needed (tests, one-shot tools).
func New(db *gorm.DB, bus *events.Bus, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, bus: bus, logger: logger.Named("Store")}
}

// Load returns the stored payload for key, or nil when the key has never
// been written.
func (s *Store) Load(ctx context.Context, key snapshot.SectionKey) (*string, error) {
	var entry models.StoreEntry
	err := s.db.WithContext(ctx).Where("name = ?", string(key)).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", key, err)
	}
	return entry.Value, nil
}

// Save upserts the payload for key. value nil stores an explicit NULL, which
// reads back as "no data" without losing the row. Unregistered keys are
// rejected so a typo cannot create an orphan collection.
func (s *Store) Save(ctx context.Context, key snapshot.SectionKey, value *string) error {
	if !snapshot.Known(key) {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	entry := models.StoreEntry{Name: string(key), Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.DataChanged{Section: string(key), At: time.Now()})
	}
	return nil
}

// LoadAll returns every stored payload keyed by section. Keys never written
// are absent from the map; callers treat absent and NULL alike.
func (s *Store) LoadAll(ctx context.Context) (map[snapshot.SectionKey]*string, error) {
	var entries []models.StoreEntry
	if err := s.db.WithContext(ctx).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("load all: %w", err)
	}
	out := make(map[snapshot.SectionKey]*string, len(entries))
	for _, e := range entries {
		out[snapshot.SectionKey(e.Name)] = e.Value
	}
	return out, nil
}

var _ snapshot.Store = (*Store)(nil)
