package animator

import "sync"

// ResizeSource reports the size of the container a surface fills and
// notifies subscribers when it changes.
type ResizeSource interface {
	Size() (width, height int)
	Subscribe(fn func(width, height int)) (unsubscribe func())
}

type subscriber struct {
	id int
	fn func(width, height int)
}

// Broadcaster is a ResizeSource fed by a host: the host calls Set whenever
// its window, terminal or container reports a size.
type Broadcaster struct {
	mu     sync.Mutex
	width  int
	height int
	nextID int
	subs   []subscriber
}

// NewBroadcaster returns a broadcaster with the given initial size.
func NewBroadcaster(width, height int) *Broadcaster {
	return &Broadcaster{width: width, height: height}
}

// Size returns the last size passed to Set.
func (b *Broadcaster) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// Subscribe registers fn for size changes. The returned function removes
// it; calling it more than once has no further effect.
func (b *Broadcaster) Subscribe(fn func(width, height int)) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Set records a new size and notifies subscribers if it differs from the
// previous one. Subscribers run on the caller's goroutine, after the lock
// is released. Set reports whether the size changed.
func (b *Broadcaster) Set(width, height int) bool {
	b.mu.Lock()
	if b.width == width && b.height == height {
		b.mu.Unlock()
		return false
	}
	b.width = width
	b.height = height
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(width, height)
	}
	return true
}

// Subscribers returns the number of registered subscribers.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
