package frame

import (
	"context"
	"time"
)

// Ticker is a Scheduler driven by a fixed-interval clock. It is meant for
// headless hosts that have no display refresh to follow. It starts no
// goroutine of its own; whoever calls Run becomes the host loop.
type Ticker struct {
	*Queue
	interval time.Duration
}

// NewTicker returns a ticker that pumps its queue every interval once Run
// is called.
func NewTicker(interval time.Duration) *Ticker {
	return &Ticker{
		Queue:    NewQueue(),
		interval: interval,
	}
}

// Run pumps the queue at the configured interval until the context is
// cancelled. Callbacks run on the calling goroutine.
func (t *Ticker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			t.Queue.Run(now.Sub(start))
		}
	}
}
