package termsurface_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/gridfx/grid"
	"github.com/plus3/gridfx/surface/termsurface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSurface(t *testing.T, opacity float64) (*termsurface.Surface, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(2, 2)

	s := termsurface.New(screen, opacity)
	s.SetSize(termsurface.PixelSize(2, 2))
	return s, screen
}

func TestPixelSize(t *testing.T) {
	w, h := termsurface.PixelSize(80, 24)
	assert.Equal(t, 640, w)
	assert.Equal(t, 384, h)
}

func TestSetSizeRoundsUp(t *testing.T) {
	s := termsurface.New(nil, 1)
	s.SetSize(17, 33)
	cols, rows := s.Dims()
	assert.Equal(t, 3, cols)
	assert.Equal(t, 3, rows)
	assert.False(t, s.Ready())
}

func TestFillCircle(t *testing.T) {
	s, _ := newSurface(t, 1)

	s.FillCircle(1, 1, 2, grid.RGB(200, 100, 50))
	r, g, b, glyph := s.Cell(0, 0)
	assert.Equal(t, [3]uint8{200, 100, 50}, [3]uint8{r, g, b})
	assert.Equal(t, '●', glyph)

	s.FillCircle(9, 17, 0.5, grid.RGB(200, 100, 50).WithAlpha(0.5))
	r, g, b, glyph = s.Cell(1, 1)
	assert.Equal(t, [3]uint8{100, 50, 25}, [3]uint8{r, g, b})
	assert.Equal(t, '•', glyph)

	t.Run("outside the buffer is ignored", func(t *testing.T) {
		s.FillCircle(-5, 3, 1, grid.RGB(1, 1, 1))
		s.FillCircle(500, 3, 1, grid.RGB(1, 1, 1))
	})
}

func TestStrokeLine(t *testing.T) {
	s, _ := newSurface(t, 1)

	s.FillCircle(1, 1, 2, grid.RGB(255, 255, 255))
	s.FillCircle(9, 1, 1, grid.RGB(255, 255, 255))
	s.StrokeLine(1, 1, 9, 17, 0.5, grid.RGB(100, 100, 100))
	s.StrokeLine(9, 1, 1, 1, 0.5, grid.RGB(100, 100, 100))

	_, _, _, start := s.Cell(0, 0)
	assert.Equal(t, '●', start, "large points keep their glyph under a line")

	_, _, _, small := s.Cell(1, 0)
	assert.Equal(t, '•', small, "small points keep their glyph under a line")

	r, _, _, end := s.Cell(1, 1)
	assert.Equal(t, '·', end)
	assert.Equal(t, uint8(100), r)

	s.Clear()
	s.StrokeLine(1, 1, 1, 17, 0.5, grid.RGB(100, 100, 100))
	_, _, _, untouched := s.Cell(1, 0)
	assert.Equal(t, ' ', untouched)
}

func TestOpacityAndClear(t *testing.T) {
	s, _ := newSurface(t, 0.5)

	s.FillCircle(1, 1, 1, grid.RGB(200, 200, 200))
	r, _, _, _ := s.Cell(0, 0)
	assert.Equal(t, uint8(100), r)

	s.Clear()
	r, _, _, glyph := s.Cell(0, 0)
	assert.Zero(t, r)
	assert.Equal(t, ' ', glyph)
}

func TestRenderField(t *testing.T) {
	s, _ := newSurface(t, 1)
	s.SetSize(termsurface.PixelSize(20, 10))

	field := grid.NewField(grid.DefaultParams(), grid.NewSource(1))
	field.Resize(termsurface.PixelSize(20, 10))

	require.Positive(t, field.Render(s))
	s.Flush()

	points := 0
	for row := range 10 {
		for col := range 20 {
			if _, _, _, glyph := s.Cell(col, row); glyph == '•' || glyph == '●' {
				points++
			}
		}
	}
	assert.Positive(t, points)
}
