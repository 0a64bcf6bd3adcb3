// Package events carries "data changed" notifications from the persistence
// store to interested listeners (auto-backup, cache invalidation) over an
// explicit channel instead of a mutable callback list.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	pkgredis "github.com/wellspring-app/core/internal/pkg/redis"
	"go.uber.org/zap"
)

// Channel is the Redis pub/sub channel data-changed events are mirrored to.
const Channel = "ws:data-changed"

// DataChanged describes one successful write to a store section.
type DataChanged struct {
	Section string    `json:"section"`
	At      time.Time `json:"at"`
}

// Bus fans DataChanged events out to in-process subscribers and, when a Redis
// client is configured, mirrors them to the pub/sub channel so sibling
// processes observe them too.
type Bus struct {
	mu     sync.RWMutex
	subs   []chan DataChanged
	rc     *pkgredis.Client
	logger *zap.Logger
}

// NewBus creates a Bus. rc may be nil (in-process delivery only).
func NewBus(rc *pkgredis.Client, logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{rc: rc, logger: logger.Named("EventBus")}
}

// Subscribe returns a buffered channel receiving future events. Slow
// subscribers drop events rather than block publishers.
func (b *Bus) Subscribe() <-chan DataChanged {
	ch := make(chan DataChanged, 64)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

// Publish delivers an event to all subscribers.
func (b *Bus) Publish(ctx context.Context, ev DataChanged) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	b.deliver(ev)

	if b.rc == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := b.rc.Publish(ctx, Channel, payload); err != nil {
		b.logger.Warn("publish data-changed event failed", zap.Error(err))
	}
}

func (b *Bus) deliver(ev DataChanged) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Listen consumes data-changed events published by sibling processes on the
// Redis channel and fans them out to local subscribers. It blocks until ctx
// is cancelled and returns immediately when no Redis client is configured.
func (b *Bus) Listen(ctx context.Context) {
	if b.rc == nil {
		return
	}
	sub := b.rc.Subscribe(ctx, Channel)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			var ev DataChanged
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.logger.Warn("malformed data-changed event", zap.Error(err))
				continue
			}
			b.deliver(ev)
		}
	}
}
