// Package termsurface renders a grid field into a terminal. Each character
// cell stands for a CellWidth x CellHeight block of surface units; colours
// are alpha-blended over the background in a cell buffer and pushed to the
// tcell screen on Flush.
package termsurface

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/gridfx/grid"
)

const (
	CellWidth  = 8
	CellHeight = 16
)

const (
	glyphLine  = '·'
	glyphSmall = '•'
	glyphLarge = '●'
)

// largeRadius is the point size from which the large glyph is used.
const largeRadius = 1.25

type cell struct {
	r, g, b float64
	glyph   rune
	point   bool
}

// Surface buffers one terminal frame.
type Surface struct {
	screen     tcell.Screen
	background grid.Color
	opacity    float64

	cols, rows int
	cells      []cell
}

// New returns a surface writing to screen. Opacity scales every colour the
// same way the window host fades its layer.
func New(screen tcell.Screen, opacity float64) *Surface {
	return &Surface{
		screen:     screen,
		background: grid.RGB(0, 0, 0),
		opacity:    opacity,
	}
}

// SetOpacity changes how strongly the grid shows over the background.
func (s *Surface) SetOpacity(opacity float64) {
	s.opacity = opacity
}

// PixelSize converts a terminal size in cells to surface units.
func PixelSize(cols, rows int) (int, int) {
	return cols * CellWidth, rows * CellHeight
}

// SetSize resizes the cell buffer to cover width x height surface units.
func (s *Surface) SetSize(width, height int) {
	s.cols = max(int(math.Ceil(float64(width)/CellWidth)), 0)
	s.rows = max(int(math.Ceil(float64(height)/CellHeight)), 0)
	s.cells = make([]cell, s.cols*s.rows)
	s.Clear()
}

// Ready reports whether there is a screen to flush to.
func (s *Surface) Ready() bool {
	return s.screen != nil
}

func (s *Surface) Clear() {
	bg := s.background
	for i := range s.cells {
		s.cells[i] = cell{r: float64(bg.R), g: float64(bg.G), b: float64(bg.B), glyph: ' '}
	}
}

func (s *Surface) FillCircle(x, y, r float64, c grid.Color) {
	col, row, ok := s.locate(x, y)
	if !ok {
		return
	}
	glyph := glyphSmall
	if r >= largeRadius {
		glyph = glyphLarge
	}
	cl := &s.cells[row*s.cols+col]
	s.blend(cl, c)
	cl.glyph = glyph
	cl.point = true
}

// StrokeLine walks the cells between the endpoints (Bresenham) and blends
// the line colour into each. Cells already holding a point keep its glyph.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c grid.Color) {
	c0, r0 := int(math.Floor(x0/CellWidth)), int(math.Floor(y0/CellHeight))
	c1, r1 := int(math.Floor(x1/CellWidth)), int(math.Floor(y1/CellHeight))

	dc := abs(c1 - c0)
	dr := -abs(r1 - r0)
	sc := 1
	if c0 > c1 {
		sc = -1
	}
	sr := 1
	if r0 > r1 {
		sr = -1
	}
	e := dc + dr

	for {
		if c0 >= 0 && c0 < s.cols && r0 >= 0 && r0 < s.rows {
			cl := &s.cells[r0*s.cols+c0]
			s.blend(cl, c)
			if !cl.point {
				cl.glyph = glyphLine
			}
		}
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

// Flush writes the buffer to the screen and shows it.
func (s *Surface) Flush() {
	if s.screen == nil {
		return
	}
	bg := tcell.NewRGBColor(int32(s.background.R), int32(s.background.G), int32(s.background.B))
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			r, g, b, glyph := s.Cell(col, row)
			style := tcell.StyleDefault.
				Background(bg).
				Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
			s.screen.SetContent(col, row, glyph, nil, style)
		}
	}
	s.screen.Show()
}

// Cell returns the composited colour and glyph of one cell after opacity.
func (s *Surface) Cell(col, row int) (r, g, b uint8, glyph rune) {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return 0, 0, 0, ' '
	}
	cl := s.cells[row*s.cols+col]
	bg := s.background
	mix := func(v float64, base uint8) uint8 {
		out := float64(base) + (v-float64(base))*s.opacity
		return uint8(math.Round(math.Min(math.Max(out, 0), 255)))
	}
	return mix(cl.r, bg.R), mix(cl.g, bg.G), mix(cl.b, bg.B), cl.glyph
}

// Dims returns the buffer size in cells.
func (s *Surface) Dims() (cols, rows int) {
	return s.cols, s.rows
}

func (s *Surface) locate(x, y float64) (int, int, bool) {
	col := int(math.Floor(x / CellWidth))
	row := int(math.Floor(y / CellHeight))
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return 0, 0, false
	}
	return col, row, true
}

func (s *Surface) blend(cl *cell, c grid.Color) {
	a := math.Min(math.Max(c.A, 0), 1)
	cl.r += (float64(c.R) - cl.r) * a
	cl.g += (float64(c.G) - cl.g) * a
	cl.b += (float64(c.B) - cl.b) * a
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
