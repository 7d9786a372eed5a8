package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/gridfx/config"
	"github.com/plus3/gridfx/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestDefaultMatchesGridDefaults(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, grid.DefaultParams(), cfg.Params())
	assert.Equal(t, 0.8, cfg.Opacity)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParse(t *testing.T) {
	t.Run("partial file keeps defaults", func(t *testing.T) {
		cfg, err := config.Parse([]byte(`
spacing: 20
amplitude: {max: 4}
point_color: [1, 2, 3]
spatial_index: true
window:
  title: demo
`))
		require.NoError(t, err)

		params := cfg.Params()
		assert.Equal(t, 20.0, params.Spacing)
		assert.Equal(t, 80.0, params.Threshold)
		assert.Equal(t, grid.Range{Min: 2, Max: 4}, params.Amplitude)
		assert.Equal(t, grid.RGB(1, 2, 3), params.PointColor)
		assert.True(t, params.SpatialIndex)
		assert.Equal(t, "demo", cfg.Window.Title)
		assert.Equal(t, 1280, cfg.Window.Width)
	})

	t.Run("empty document", func(t *testing.T) {
		cfg, err := config.Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := map[string]string{
			"zero spacing":     "spacing: 0",
			"tiny spacing":     "spacing: 0.001",
			"inverted range":   "size: {min: 3, max: 1}",
			"opacity too high": "opacity: 2",
			"no window":        "window: {width: 0}",
			"unknown key":      "colour: red",
			"malformed":        "spacing: [",
			"short colour":     "link_color: [1, 2]",
		}
		for name, doc := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := config.Parse([]byte(doc))
				assert.Error(t, err)
			})
		}
	})

	t.Run("grid errors stay recognisable", func(t *testing.T) {
		_, err := config.Parse([]byte("threshold: -1"))
		assert.ErrorIs(t, err, grid.ErrInvalidParams)
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridfx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 7\nopacity: 0.5\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 0.5, cfg.Opacity)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSourceSeed(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 9
	a := cfg.Source(1)
	b := cfg.Source(2)
	assert.Equal(t, a.Float64(), b.Float64(), "explicit seed wins over the fallback")
}

func TestWatcher(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "gridfx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("spacing: 40\n"), 0o644))

	changes := make(chan *config.Config, 4)
	w, err := config.NewWatcher(path, zaptest.NewLogger(t), func(cfg *config.Config) {
		changes <- cfg
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(path, []byte("spacing: [\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("spacing: 25\n"), 0o644))

	select {
	case cfg := <-changes:
		assert.Equal(t, 25.0, cfg.Spacing)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after the config file changed")
	}

	w.Stop()
	w.Stop()
}
