package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plus3/gridfx/config"
	"github.com/plus3/gridfx/grid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose    bool
	configPath string
	seed       uint64
	watch      bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gridfx",
	Short: "Animated particle grid background",
	Long: `gridfx animates a grid of drifting points joined by faint lines to their
nearby neighbours, the kind of backdrop that sits behind a landing page hero.

It can draw into a desktop window, into the terminal, or run headless to
measure how long each frame takes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "seed for point attributes (0 picks one from the clock)")

	watchUsage := "reload the config file when it changes"
	windowCmd.Flags().BoolVar(&watch, "watch", false, watchUsage)
	termCmd.Flags().BoolVar(&watch, "watch", false, watchUsage)

	rootCmd.AddCommand(windowCmd, termCmd, benchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads --config and applies --seed on top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	return cfg, nil
}

func randomSource(cfg *config.Config) grid.Source {
	src := cfg.Source(uint64(time.Now().UnixNano()))
	logger.Debug("random source ready", zap.Uint64("seed", cfg.Seed))
	return src
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// startWatch starts a config watcher when --watch is set. Valid revisions
// are delivered on the returned channel, dropping any the host has not
// consumed yet. The stop function is always safe to call.
func startWatch(ctx context.Context) (<-chan *config.Config, func(), error) {
	if !watch {
		return nil, func() {}, nil
	}
	if configPath == "" {
		return nil, nil, fmt.Errorf("--watch needs --config")
	}

	reloads := make(chan *config.Config, 1)
	w, err := config.NewWatcher(configPath, logger, func(cfg *config.Config) {
		if seed != 0 {
			cfg.Seed = seed
		}
		select {
		case <-reloads:
		default:
		}
		reloads <- cfg
	})
	if err != nil {
		return nil, nil, err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return nil, nil, err
	}
	return reloads, w.Stop, nil
}
