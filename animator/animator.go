// Package animator runs a grid field against a drawing surface: it rebuilds
// the grid whenever the surface's container is resized and renders one frame
// per scheduler callback until it is deactivated.
//
// An Animator is driven from a single host goroutine. Activate, Deactivate,
// Resize and the frame callbacks must all run on it.
package animator

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/gridfx/frame"
	"github.com/plus3/gridfx/grid"
	"go.uber.org/zap"
)

// Surface is a Canvas whose backing store can be resized to match its
// container. Ready reports whether a drawing context is currently available.
type Surface interface {
	grid.Canvas
	SetSize(width, height int)
	Ready() bool
}

// Option configures an Animator.
type Option func(*Animator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Animator) {
		a.logger = logger
	}
}

// WithParams sets the grid parameters. They are not validated here; use
// SetParams for untrusted values.
func WithParams(params grid.Params) Option {
	return func(a *Animator) {
		a.params = params
	}
}

// WithSource sets the random source used to sample point attributes.
func WithSource(src grid.Source) Option {
	return func(a *Animator) {
		a.src = src
	}
}

// Animator owns one field and the registrations that keep it running.
type Animator struct {
	id     uuid.UUID
	logger *zap.Logger
	params grid.Params
	src    grid.Source

	surface Surface
	sched   frame.Scheduler
	resize  ResizeSource
	field   *grid.Field

	active      bool
	handle      frame.Handle
	unsubscribe func()
	pending     *grid.Params
	warnedIdle  bool

	stats tickStats
}

// New returns an inactive animator. Nothing is drawn until Activate.
func New(surface Surface, sched frame.Scheduler, resize ResizeSource, opts ...Option) *Animator {
	a := &Animator{
		id:      uuid.New(),
		logger:  zap.NewNop(),
		params:  grid.DefaultParams(),
		surface: surface,
		sched:   sched,
		resize:  resize,
		stats:   newTickStats(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.src == nil {
		a.src = grid.NewSource(uint64(time.Now().UnixNano()))
	}

	a.logger = a.logger.With(zap.Stringer("animator", a.id))
	a.field = grid.NewField(a.params, a.src)
	return a
}

// ID identifies this animator in logs.
func (a *Animator) ID() uuid.UUID {
	return a.id
}

// Field exposes the animated field for inspection.
func (a *Animator) Field() *grid.Field {
	return a.field
}

// Active reports whether the animator is between Activate and Deactivate.
func (a *Animator) Active() bool {
	return a.active
}

// Activate subscribes to resize notifications, builds the initial grid at
// the container's current size and requests the first frame. It returns
// false, doing nothing, when there is no surface to draw into or no
// container to size it from. Activating an active animator is a no-op.
func (a *Animator) Activate() bool {
	if a.active {
		return true
	}
	if a.surface == nil || a.sched == nil || !a.surface.Ready() {
		a.logger.Debug("surface unavailable, not activating")
		return false
	}
	if a.resize == nil {
		a.logger.Debug("no resize source, not activating")
		return false
	}

	a.active = true
	a.unsubscribe = a.resize.Subscribe(a.Resize)
	a.Resize(a.resize.Size())
	a.handle = a.sched.Request(a.tick)

	w, h := a.field.Size()
	a.logger.Info("animator activated",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("points", a.field.Len()))
	return true
}

// Deactivate removes the resize subscription and cancels the pending frame.
// No tick runs after it returns. Deactivating an inactive animator is a
// no-op.
func (a *Animator) Deactivate() {
	if !a.active {
		return
	}
	a.active = false

	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	if a.handle != 0 {
		a.sched.Cancel(a.handle)
		a.handle = 0
	}

	a.logger.Info("animator deactivated", zap.Int64("ticks", a.stats.ticks))
}

// Resize matches the surface to its container and rebuilds the whole grid.
// Notifications outside Activate/Deactivate are ignored.
func (a *Animator) Resize(width, height int) {
	if !a.active {
		return
	}

	if a.pending != nil {
		a.field.SetParams(*a.pending)
		a.pending = nil
	}

	a.surface.SetSize(width, height)
	a.field.Resize(width, height)
	a.stats.regrids++

	a.logger.Debug("grid rebuilt",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("points", a.field.Len()),
		zap.Uint64("generation", a.field.Generation()))
}

// SetParams validates params and schedules them for the next frame, which
// rebuilds the grid at the current size.
func (a *Animator) SetParams(params grid.Params) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set params: %w", err)
	}
	a.pending = &params
	return nil
}

// Stats returns a snapshot of the animator's counters.
func (a *Animator) Stats() Stats {
	s := a.stats.snapshot()
	s.Points = a.field.Len()
	s.Generation = a.field.Generation()
	return s
}

func (a *Animator) tick(now time.Duration) {
	a.handle = 0
	if !a.active {
		return
	}

	if a.pending != nil {
		a.Resize(a.field.Size())
	}

	if a.surface.Ready() {
		a.warnedIdle = false
		start := time.Now()
		links := a.field.Render(a.surface)
		a.stats.record(now, time.Since(start), links)
	} else {
		a.stats.skipped++
		if !a.warnedIdle {
			a.warnedIdle = true
			a.logger.Debug("surface not ready, skipping frames")
		}
	}

	if a.active {
		a.handle = a.sched.Request(a.tick)
	}
}
