// Package debugui draws a Dear ImGui panel with an animator's frame timings
// and grid statistics.
package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/gridfx/animator"
)

// StatsSource is anything that can report animator statistics.
type StatsSource interface {
	Stats() animator.Stats
}

// Panel keeps a rolling history of frame times for one animator.
type Panel struct {
	source        StatsSource
	historyFrames int
	frameHistory  []float32
	renderHistory []float32
	frameIndex    int
	timer         *FrameTimer
}

// NewPanel returns a panel that plots the last historyFrames frames.
func NewPanel(source StatsSource, historyFrames int) *Panel {
	return &Panel{
		source:        source,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		renderHistory: make([]float32, historyFrames),
		timer:         NewFrameTimer(),
	}
}

// Render draws the panel. Call it between the backend's BeginFrame and
// EndFrame.
func (p *Panel) Render() {
	deltaTime := p.timer.GetDeltaTime()
	stats := p.source.Stats()

	p.frameHistory[p.frameIndex] = deltaTime * 1000.0
	p.renderHistory[p.frameIndex] = float32(stats.LastDuration.Seconds() * 1000.0)
	p.frameIndex = (p.frameIndex + 1) % p.historyFrames

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 300), imgui.CondOnce)

	if !imgui.BeginV("Grid", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	var avgFrameTime float32
	for _, ft := range p.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(p.historyFrames)

	imgui.Text(fmt.Sprintf("Points: %d", stats.Points))
	imgui.Text(fmt.Sprintf("Links (last frame): %d", stats.Links))
	imgui.Text(fmt.Sprintf("Generation: %d", stats.Generation))
	imgui.Separator()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}
	imgui.Text(fmt.Sprintf("Render: %s (min %s, max %s)",
		round(stats.LastDuration), round(stats.MinDuration), round(stats.MaxDuration)))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &p.frameHistory[0], int32(len(p.frameHistory)))
	imgui.Text("Render Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##rendertime", &p.renderHistory[0], int32(len(p.renderHistory)))

	if imgui.TreeNodeStr("Counters") {
		imgui.BulletText(fmt.Sprintf("Ticks: %d", stats.Ticks))
		imgui.BulletText(fmt.Sprintf("Skipped: %d", stats.Skipped))
		imgui.BulletText(fmt.Sprintf("Regrids: %d", stats.Regrids))
		imgui.TreePop()
	}

	imgui.End()
}

func round(d time.Duration) time.Duration {
	return d.Round(time.Microsecond)
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
