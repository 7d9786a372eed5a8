// Package ebitensurface draws a grid field onto an offscreen ebiten image
// that is composited behind the rest of a frame at reduced opacity.
package ebitensurface

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/gridfx/grid"
)

// DefaultOpacity keeps the grid subdued behind foreground content.
const DefaultOpacity = 0.8

// Surface is an offscreen layer sized to its container.
type Surface struct {
	layer     *ebiten.Image
	opacity   float32
	antialias bool
	disposed  bool
}

// New returns a surface composited at the given opacity.
func New(opacity float64) *Surface {
	return &Surface{
		opacity:   float32(opacity),
		antialias: true,
	}
}

// SetOpacity changes the compositing opacity.
func (s *Surface) SetOpacity(opacity float64) {
	s.opacity = float32(opacity)
}

// SetSize reallocates the layer. A non-positive size leaves the surface
// without a layer, and drawing becomes a no-op until the next SetSize.
func (s *Surface) SetSize(width, height int) {
	if s.layer != nil {
		b := s.layer.Bounds()
		if b.Dx() == width && b.Dy() == height {
			return
		}
		s.layer.Deallocate()
		s.layer = nil
	}
	if width <= 0 || height <= 0 || s.disposed {
		return
	}
	s.layer = ebiten.NewImage(width, height)
}

// Ready reports whether the surface can still be drawn to.
func (s *Surface) Ready() bool {
	return !s.disposed
}

// Dispose releases the layer. The surface stays unusable afterwards.
func (s *Surface) Dispose() {
	s.disposed = true
	if s.layer != nil {
		s.layer.Deallocate()
		s.layer = nil
	}
}

func (s *Surface) Clear() {
	if s.layer == nil {
		return
	}
	s.layer.Clear()
}

func (s *Surface) FillCircle(x, y, r float64, c grid.Color) {
	if s.layer == nil {
		return
	}
	vector.DrawFilledCircle(s.layer, float32(x), float32(y), float32(r), c.NRGBA(), s.antialias)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c grid.Color) {
	if s.layer == nil {
		return
	}
	vector.StrokeLine(s.layer, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c.NRGBA(), s.antialias)
}

// Composite draws the layer onto dst at the surface opacity.
func (s *Surface) Composite(dst *ebiten.Image) {
	if s.layer == nil {
		return
	}
	opts := &ebiten.DrawImageOptions{}
	opts.ColorScale.ScaleAlpha(s.opacity)
	dst.DrawImage(s.layer, opts)
}
