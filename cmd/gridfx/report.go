package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"
)

type Report struct {
	// Configuration
	Duration     time.Duration
	Width        int
	Height       int
	FPS          int
	Spacing      float64
	Threshold    float64
	SpatialIndex bool
	Seed         uint64

	// Results
	Points        int
	Frames        int64
	TotalTime     time.Duration
	FrameTime     Stats
	Links         Counts
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P95     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P95 = sorted[(len(sorted)-1)*95/100]
}

// Counts summarises the links drawn per frame.
type Counts struct {
	Min     int
	Max     int
	Avg     float64
	Samples []int
}

func (c *Counts) Finalize() {
	if len(c.Samples) == 0 {
		return
	}

	total := 0
	c.Min = c.Samples[0]
	c.Max = c.Samples[0]
	for _, n := range c.Samples {
		c.Min = min(c.Min, n)
		c.Max = max(c.Max, n)
		total += n
	}
	c.Avg = float64(total) / float64(len(c.Samples))
}

// RenderFPS is the frame rate the measured render time alone would allow.
func (r *Report) RenderFPS() float64 {
	if r.FrameTime.Avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(r.FrameTime.Avg)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Grid Render Benchmark

## Configuration
- **Run Duration:** {{.Duration}}
- **Surface:** {{.Width}} x {{.Height}}
- **Pacing:** {{if .FPS}}{{.FPS}} FPS{{else}}unpaced{{end}}
- **Spacing:** {{.Spacing}}
- **Link Threshold:** {{.Threshold}}
- **Spatial Index:** {{.SpatialIndex}}
- **Seed:** {{.Seed}}
- **Points:** {{.Points}}

## Results
- **Frames:** {{.Frames}}
- **Total Time:** {{.TotalTime}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **P95:** {{.FrameTime.P95}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}
- **Render-bound FPS:** {{printf "%.1f" .RenderFPS}}
- **Links per Frame:** {{printf "%.1f" .Links.Avg}} avg ({{.Links.Min}} min, {{.Links.Max}} max)

## Memory Usage
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end)
- Total Alloc: {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} MB during the run
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- GC Pause:    {{ns (bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns int64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
