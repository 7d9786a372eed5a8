// Package record provides a Canvas that records draw calls instead of
// rasterising them. The benchmark host and the tests render into it.
package record

import "github.com/plus3/gridfx/grid"

// Op identifies the kind of a recorded draw call.
type Op uint8

const (
	OpClear Op = iota
	OpCircle
	OpLine
)

func (o Op) String() string {
	switch o {
	case OpClear:
		return "clear"
	case OpCircle:
		return "circle"
	case OpLine:
		return "line"
	default:
		return "unknown"
	}
}

// Call is one recorded draw call. Circles use X0, Y0 and Width as the radius.
type Call struct {
	Op             Op
	X0, Y0, X1, Y1 float64
	Width          float64
	Color          grid.Color
}

// Canvas records draw calls. It also implements the animator's Surface
// contract so it can stand in for a real surface.
type Canvas struct {
	// Keep controls whether calls are retained; counters always run.
	Keep bool

	Calls   []Call
	Clears  int
	Circles int
	Lines   int

	width, height int
	detached      bool
}

// New returns a canvas that retains every call.
func New() *Canvas {
	return &Canvas{Keep: true}
}

// NewCounting returns a canvas that only counts calls.
func NewCounting() *Canvas {
	return &Canvas{}
}

func (c *Canvas) Clear() {
	c.Clears++
	if c.Keep {
		c.Calls = append(c.Calls[:0], Call{Op: OpClear})
	}
}

func (c *Canvas) FillCircle(x, y, r float64, col grid.Color) {
	c.Circles++
	if c.Keep {
		c.Calls = append(c.Calls, Call{Op: OpCircle, X0: x, Y0: y, Width: r, Color: col})
	}
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, col grid.Color) {
	c.Lines++
	if c.Keep {
		c.Calls = append(c.Calls, Call{Op: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Color: col})
	}
}

// SetSize records the surface size.
func (c *Canvas) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// Size returns the last size passed to SetSize.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Detach simulates a surface whose drawing context went away.
func (c *Canvas) Detach() {
	c.detached = true
}

// Ready reports whether the canvas can be drawn to.
func (c *Canvas) Ready() bool {
	return !c.detached
}

// LineCalls returns the recorded line calls of the last frame.
func (c *Canvas) LineCalls() []Call {
	var out []Call
	for _, call := range c.Calls {
		if call.Op == OpLine {
			out = append(out, call)
		}
	}
	return out
}

// Reset forgets all calls and counters.
func (c *Canvas) Reset() {
	c.Calls = c.Calls[:0]
	c.Clears = 0
	c.Circles = 0
	c.Lines = 0
}
