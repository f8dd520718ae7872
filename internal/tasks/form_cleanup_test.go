package tasks

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweeper struct {
	calls atomic.Int32
	ttl   atomic.Int64
}

func (f *fakeSweeper) Sweep(ttl time.Duration) int {
	f.calls.Add(1)
	f.ttl.Store(int64(ttl))
	return 1
}

func TestFormCleanupRunsUntilCancelled(t *testing.T) {
	sweeper := &fakeSweeper{}
	task := NewFormCleanup(sweeper, 30*time.Minute, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	task.Start(ctx)

	require.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, time.Millisecond)
	assert.Equal(t, int64(30*time.Minute), sweeper.ttl.Load())

	cancel()
	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}

func TestFormCleanupDefaultsInterval(t *testing.T) {
	task := NewFormCleanup(&fakeSweeper{}, time.Minute, 0)
	assert.Equal(t, DefaultSweepInterval, task.interval)
}
