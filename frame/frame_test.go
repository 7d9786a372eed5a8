package frame_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/plus3/gridfx/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestQueue(t *testing.T) {
	t.Run("runs pending callbacks once", func(t *testing.T) {
		q := frame.NewQueue()
		calls := 0
		q.Request(func(time.Duration) { calls++ })
		q.Request(func(time.Duration) { calls++ })

		assert.Equal(t, 2, q.Pending())
		assert.Equal(t, 2, q.Run(0))
		assert.Equal(t, 2, calls)
		assert.Equal(t, 0, q.Run(0))
		assert.Equal(t, 2, calls)
		assert.Equal(t, int64(2), q.Frames())
	})

	t.Run("passes the frame time", func(t *testing.T) {
		q := frame.NewQueue()
		var got time.Duration
		q.Request(func(now time.Duration) { got = now })
		q.Run(16 * time.Millisecond)
		assert.Equal(t, 16*time.Millisecond, got)
	})

	t.Run("requests made during run wait for the next run", func(t *testing.T) {
		q := frame.NewQueue()
		ticks := 0
		var loop frame.Callback
		loop = func(time.Duration) {
			ticks++
			q.Request(loop)
		}
		q.Request(loop)

		for range 5 {
			assert.Equal(t, 1, q.Run(0))
		}
		assert.Equal(t, 5, ticks)
		assert.Equal(t, 1, q.Pending())
	})

	t.Run("cancel before run", func(t *testing.T) {
		q := frame.NewQueue()
		ran := false
		h := q.Request(func(time.Duration) { ran = true })
		q.Cancel(h)

		assert.Equal(t, 0, q.Pending())
		assert.Equal(t, 0, q.Run(0))
		assert.False(t, ran)
	})

	t.Run("cancel from an earlier callback in the same run", func(t *testing.T) {
		q := frame.NewQueue()
		ran := false
		var second frame.Handle
		q.Request(func(time.Duration) { q.Cancel(second) })
		second = q.Request(func(time.Duration) { ran = true })

		assert.Equal(t, 1, q.Run(0))
		assert.False(t, ran)
	})

	t.Run("handles are unique and never zero", func(t *testing.T) {
		q := frame.NewQueue()
		seen := map[frame.Handle]bool{}
		for range 100 {
			h := q.Request(func(time.Duration) {})
			require.NotZero(t, h)
			require.False(t, seen[h])
			seen[h] = true
		}
	})

	t.Run("cancel of unknown handle is a no-op", func(t *testing.T) {
		q := frame.NewQueue()
		q.Request(func(time.Duration) {})
		q.Cancel(12345)
		assert.Equal(t, 1, q.Pending())
	})
}

func TestTicker(t *testing.T) {
	defer goleak.VerifyNone(t)

	ticker := frame.NewTicker(time.Millisecond)

	var ticks atomic.Int64
	var loop frame.Callback
	loop = func(time.Duration) {
		ticks.Add(1)
		ticker.Request(loop)
	}
	ticker.Request(loop)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ticker.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Ticker.Run did not return after cancellation")
	}

	stopped := ticks.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, ticks.Load())
}

func TestTickerRunsCallbacksOnCaller(t *testing.T) {
	defer goleak.VerifyNone(t)

	ticker := frame.NewTicker(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Plain counter: callbacks run on this goroutine.
	ticks := 0
	var loop frame.Callback
	loop = func(time.Duration) {
		ticks++
		if ticks == 3 {
			cancel()
			return
		}
		ticker.Request(loop)
	}
	ticker.Request(loop)

	ticker.Run(ctx)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 0, ticker.Pending())
}
