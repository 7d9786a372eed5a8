package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/gridfx/animator"
	"github.com/plus3/gridfx/frame"
	"github.com/plus3/gridfx/surface/termsurface"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var termFPS int

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Animate the grid in the terminal",
	Long: `Animates the grid using the terminal as the drawing surface. Each character
cell covers an 8x16 block of the grid. Press q, Esc or Ctrl-C to quit.`,
	Args: cobra.NoArgs,
	RunE: runTerm,
}

func init() {
	termCmd.Flags().IntVar(&termFPS, "fps", 30, "frames per second")
}

func runTerm(cmd *cobra.Command, args []string) error {
	if termFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", termFPS)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	reloads, stopWatch, err := startWatch(ctx)
	if err != nil {
		return err
	}
	defer stopWatch()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer screen.Fini()

	// The screen owns the terminal; keep info logs off it.
	log := logger.WithOptions(zap.IncreaseLevel(zapcore.WarnLevel))

	surface := termsurface.New(screen, cfg.Opacity)
	queue := frame.NewQueue()
	sizes := animator.NewBroadcaster(termsurface.PixelSize(screen.Size()))
	anim := animator.New(surface, queue, sizes,
		animator.WithLogger(log),
		animator.WithParams(cfg.Params()),
		animator.WithSource(randomSource(cfg)),
	)

	anim.Activate()
	defer anim.Deactivate()

	done := make(chan struct{})
	defer close(done)
	events := pumpEvents(screen, done, 16)

	ticker := time.NewTicker(time.Second / time.Duration(termFPS))
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				sizes.Set(termsurface.PixelSize(ev.Size()))
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
			}

		case cfg := <-reloads:
			if err := anim.SetParams(cfg.Params()); err != nil {
				log.Warn("config rejected", zap.Error(err))
				continue
			}
			surface.SetOpacity(cfg.Opacity)

		case now := <-ticker.C:
			queue.Run(now.Sub(start))
			surface.Flush()
		}
	}
}

// pumpEvents forwards screen events until PollEvent returns nil, which it
// does once the screen is finalised. Closing done releases a pending send,
// so the goroutine exits even when nobody drains the channel any more.
func pumpEvents(screen tcell.Screen, done <-chan struct{}, buffer int) <-chan tcell.Event {
	events := make(chan tcell.Event, buffer)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}
