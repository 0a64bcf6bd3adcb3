package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus(nil, nil)
	a := bus.Subscribe()
	b := bus.Subscribe()

	bus.Publish(context.Background(), DataChanged{Section: "goals"})

	for name, ch := range map[string]<-chan DataChanged{"a": a, "b": b} {
		select {
		case ev := <-ch:
			assert.Equal(t, "goals", ev.Section, "subscriber %s", name)
			assert.False(t, ev.At.IsZero())
		case <-time.After(time.Second):
			t.Fatalf("subscriber %s received nothing", name)
		}
	}
}

func TestBusDropsForSlowSubscribers(t *testing.T) {
	bus := NewBus(nil, nil)
	ch := bus.Subscribe()

	// Overfill the buffer; publishers must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			bus.Publish(context.Background(), DataChanged{Section: "habits"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}

	// The buffered portion is still readable.
	select {
	case ev := <-ch:
		require.Equal(t, "habits", ev.Section)
	default:
		t.Fatal("expected at least one buffered event")
	}
}
