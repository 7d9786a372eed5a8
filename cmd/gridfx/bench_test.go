package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/plus3/gridfx/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestBench(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 3

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	report, err := bench(ctx, cfg, 400, 200, 0, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 50, report.Points, "10 columns of 5 rows")
	assert.Positive(t, report.Frames)
	assert.Len(t, report.FrameTime.Samples, int(report.Frames))
	assert.LessOrEqual(t, report.FrameTime.Min, report.FrameTime.Avg)
	assert.LessOrEqual(t, report.FrameTime.Avg, report.FrameTime.Max)
	assert.Positive(t, report.Links.Max, "neighbours 40 apart are always linked")

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "# Grid Render Benchmark")
	assert.Contains(t, out, "**Points:** 50")
	assert.Contains(t, out, "**Seed:** 3")
	assert.Contains(t, out, "unpaced")
}

func TestBenchPaced(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := config.Default()
	cfg.Seed = 3

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	report, err := bench(ctx, cfg, 400, 200, 100, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Positive(t, report.Frames)
	assert.LessOrEqual(t, report.Frames, int64(25), "paced at 100 FPS for 200ms")
	assert.Equal(t, 100, report.FPS)
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{4, 1, 3, 2}}
	s.Finalize()
	assert.Equal(t, time.Duration(1), s.Min)
	assert.Equal(t, time.Duration(4), s.Max)
	assert.Equal(t, time.Duration(2), s.Avg)
	assert.Equal(t, time.Duration(3), s.P95)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Max)
}

func TestCountsFinalize(t *testing.T) {
	c := Counts{Samples: []int{2, 6, 4}}
	c.Finalize()
	assert.Equal(t, 2, c.Min)
	assert.Equal(t, 6, c.Max)
	assert.Equal(t, 4.0, c.Avg)
}
