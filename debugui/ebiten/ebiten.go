// Package ebiten hosts the debug panel inside an ebiten game loop through
// the Dear ImGui ebiten backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/gridfx/debugui"
)

// Overlay owns the ImGui backend and the panels it draws each frame.
type Overlay struct {
	*ebitenbackend.EbitenBackend
	panels []*debugui.Panel
}

// NewOverlay creates the backend and its window. It must be called before
// ebiten.RunGame.
func NewOverlay(title string, width, height int, panels ...*debugui.Panel) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &Overlay{
		EbitenBackend: backend,
		panels:        panels,
	}
}

// Update builds this frame's ImGui draw lists. Call it from Game.Update.
func (o *Overlay) Update() {
	o.BeginFrame()
	for _, p := range o.panels {
		p.Render()
	}
	o.EndFrame()
}

// DrawOver renders the overlay on top of screen. Call it last in Game.Draw.
func (o *Overlay) DrawOver(screen *ebiten.Image) {
	o.Draw(screen)
}

// Resize forwards the layout size. Call it from Game.Layout.
func (o *Overlay) Resize(width, height int) {
	o.Layout(width, height)
}
