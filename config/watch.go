package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk and hands every
// valid revision to a callback. Invalid revisions are logged and skipped.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temporary file are picked up.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	logger   *zap.Logger
	onChange func(*Config)
	debounce time.Duration

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher prepares a watcher for path. Nothing is watched until Start.
func NewWatcher(path string, logger *zap.Logger, onChange func(*Config)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Watcher{
		watcher:  fw,
		path:     abs,
		logger:   logger.With(zap.String("config", abs)),
		onChange: onChange,
		debounce: defaultDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It returns once the watch is registered; reloads
// run on a separate goroutine until Stop or until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.running = true

	go w.run(ctx)
	w.logger.Debug("watching config")
	return nil
}

// Stop ends the watch and waits for the reload goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("closing config watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("ignoring config change", zap.Error(err))
		return
	}
	w.logger.Info("config reloaded")
	w.onChange(cfg)
}
