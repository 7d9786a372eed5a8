// Package frame abstracts "call me back before the next repaint".
//
// A Scheduler hands out one Handle per request; cancelling the handle before
// the callback runs guarantees it never runs. Hosts own the cadence: an
// ebiten or terminal loop pumps a Queue once per displayed frame, while a
// Ticker pumps one from its own goroutine at a fixed interval.
package frame

import (
	"sync"
	"time"
)

// Callback receives the host's frame timestamp, measured from an arbitrary
// epoch fixed for the lifetime of the scheduler.
type Callback func(now time.Duration)

// Handle identifies a pending request. The zero Handle is never issued.
type Handle uint64

// Scheduler queues callbacks for the next frame.
type Scheduler interface {
	Request(cb Callback) Handle
	Cancel(h Handle)
}

type request struct {
	handle Handle
	cb     Callback
}

// Queue is a Scheduler pumped by its owner. Callbacks requested while Run is
// executing wait for the next Run, so a callback that re-requests itself
// runs exactly once per frame.
//
// The mutex only guards the queues; callbacks run without it held, so they
// may call Request and Cancel.
type Queue struct {
	mu      sync.Mutex
	next    Handle
	pending []request
	running []request
	frames  int64
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Request queues cb for the next Run.
func (q *Queue) Request(cb Callback) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.next++
	q.pending = append(q.pending, request{handle: q.next, cb: cb})
	return q.next
}

// Cancel drops a request. Cancelling a handle that already ran, or was
// never issued, does nothing.
func (q *Queue) Cancel(h Handle) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.pending {
		if q.pending[i].handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for i := range q.running {
		if q.running[i].handle == h {
			q.running[i].cb = nil
			return
		}
	}
}

// Run executes every callback that was pending when it was called and
// returns how many ran.
func (q *Queue) Run(now time.Duration) int {
	q.mu.Lock()
	q.running, q.pending = q.pending, q.running[:0]
	count := len(q.running)
	q.frames++
	q.mu.Unlock()

	ran := 0
	for i := 0; i < count; i++ {
		q.mu.Lock()
		cb := q.running[i].cb
		q.mu.Unlock()

		if cb == nil {
			continue
		}
		cb(now)
		ran++
	}

	q.mu.Lock()
	clear(q.running)
	q.running = q.running[:0]
	q.mu.Unlock()

	return ran
}

// Pending returns the number of callbacks waiting for the next Run.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Frames returns how many times Run was called.
func (q *Queue) Frames() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.frames
}
