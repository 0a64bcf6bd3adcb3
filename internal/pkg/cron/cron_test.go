package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForStatus(t *testing.T, s *Scheduler, name string, want JobStatus) ListItem {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, item := range s.List() {
			if item.Name == name && item.Status == want {
				return item
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %q never reached status %q", name, want)
	return ListItem{}
}

func TestSchedulerRunExecutesJob(t *testing.T) {
	s := New()
	var ran atomic.Int32
	s.Register(Job{
		Name:     "count",
		Interval: time.Hour,
		Fn: func(context.Context) error {
			ran.Add(1)
			return nil
		},
	})

	require.NoError(t, s.Run(context.Background(), "count"))
	item := waitForStatus(t, s, "count", StatusFulfill)
	assert.Equal(t, int32(1), ran.Load())
	assert.NotNil(t, item.LastRunAt)
	assert.Empty(t, item.Message)
}

func TestSchedulerRecordsFailureMessage(t *testing.T) {
	s := New()
	s.Register(Job{
		Name:     "boom",
		Interval: time.Hour,
		Fn: func(context.Context) error {
			return errors.New("backup directory unwritable")
		},
	})

	require.NoError(t, s.Run(context.Background(), "boom"))
	item := waitForStatus(t, s, "boom", StatusReject)
	assert.Equal(t, "backup directory unwritable", item.Message)
}

func TestSchedulerRunUnknownJob(t *testing.T) {
	s := New()
	assert.Error(t, s.Run(context.Background(), "missing"))
}
