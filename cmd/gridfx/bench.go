package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/plus3/gridfx/animator"
	"github.com/plus3/gridfx/config"
	"github.com/plus3/gridfx/frame"
	"github.com/plus3/gridfx/surface/record"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	benchDuration time.Duration
	benchWidth    int
	benchHeight   int
	benchPretty   bool
	benchFPS      int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure frame render time without a display",
	Long: `Runs the animator headless against a counting canvas for a fixed time and
prints a Markdown report of frame times, links per frame and memory use.`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().DurationVar(&benchDuration, "duration", 10*time.Second, "how long to run")
	benchCmd.Flags().IntVar(&benchWidth, "width", 1280, "surface width")
	benchCmd.Flags().IntVar(&benchHeight, "height", 720, "surface height")
	benchCmd.Flags().IntVar(&benchFPS, "fps", 0, "pace frames at this rate (0 runs them back to back)")
	benchCmd.Flags().BoolVar(&benchPretty, "pretty", false, "render the report for the terminal")
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchWidth <= 0 || benchHeight <= 0 {
		return fmt.Errorf("surface size must be positive, got %dx%d", benchWidth, benchHeight)
	}
	if benchFPS < 0 {
		return fmt.Errorf("--fps must not be negative, got %d", benchFPS)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	ctx, cancel := signalContext()
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, benchDuration)
	defer cancel()

	report, err := bench(ctx, cfg, benchWidth, benchHeight, benchFPS, logger)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.Generate(&buf); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	out := buf.String()
	if benchPretty {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		if out, err = renderer.Render(out); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
	}

	_, err = fmt.Fprint(os.Stdout, out)
	return err
}

// bench renders frames until ctx is done. With fps zero frames run back to
// back on a queue; otherwise a frame.Ticker paces them. A sampler callback
// queued behind the animator's own records every frame, so scheduling goes
// through the same path a display host uses.
func bench(ctx context.Context, cfg *config.Config, width, height, fps int, logger *zap.Logger) (*Report, error) {
	var (
		sched frame.Scheduler
		pump  func(ctx context.Context)
	)
	if fps > 0 {
		ticker := frame.NewTicker(time.Second / time.Duration(fps))
		sched, pump = ticker, ticker.Run
	} else {
		queue := frame.NewQueue()
		sched = queue
		pump = func(ctx context.Context) {
			start := time.Now()
			for ctx.Err() == nil {
				queue.Run(time.Since(start))
			}
		}
	}

	canvas := record.NewCounting()
	sizes := animator.NewBroadcaster(width, height)
	anim := animator.New(canvas, sched, sizes,
		animator.WithLogger(logger),
		animator.WithParams(cfg.Params()),
		animator.WithSource(cfg.Source(cfg.Seed)),
	)
	if !anim.Activate() {
		return nil, fmt.Errorf("animator did not start")
	}
	defer anim.Deactivate()

	params := cfg.Params()
	report := &Report{
		Width:        width,
		Height:       height,
		FPS:          fps,
		Spacing:      params.Spacing,
		Threshold:    params.Threshold,
		SpatialIndex: params.SpatialIndex,
		Seed:         cfg.Seed,
		Points:       anim.Field().Len(),
	}
	if deadline, ok := ctx.Deadline(); ok {
		report.Duration = time.Until(deadline).Round(time.Millisecond)
	}

	var sample frame.Callback
	sample = func(time.Duration) {
		stats := anim.Stats()
		report.FrameTime.Samples = append(report.FrameTime.Samples, stats.LastDuration)
		report.Links.Samples = append(report.Links.Samples, stats.Links)
		sched.Request(sample)
	}
	sched.Request(sample)

	logger.Info("running benchmark",
		zap.Int("points", report.Points),
		zap.Int("fps", fps),
		zap.Bool("spatial_index", params.SpatialIndex))

	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()

	pump(ctx)

	report.TotalTime = time.Since(startTime)
	report.Frames = int64(len(report.FrameTime.Samples))
	report.FrameTime.Finalize()
	report.Links.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("benchmark finished",
		zap.Int64("frames", report.Frames),
		zap.Duration("avg", report.FrameTime.Avg))

	return report, nil
}
