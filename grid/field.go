package grid

import "iter"

// Canvas is the 2D drawing surface a Field renders into.
type Canvas interface {
	Clear()
	FillCircle(x, y, r float64, c Color)
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
}

// Field owns the point set for one surface. It is not safe for concurrent
// use; a single host loop drives it.
type Field struct {
	params Params
	src    Source

	width, height int
	points        *Arena
	index         *BucketIndex
	generation    uint64

	candidates []int
}

// NewField returns an empty field. Call Resize to lay out the first grid.
func NewField(params Params, src Source) *Field {
	return &Field{
		params: params,
		src:    src,
		points: NewArena(0),
	}
}

// Params returns the parameters the current grid was built with, or the
// ones the next Resize will use if SetParams was called since.
func (f *Field) Params() Params {
	return f.params
}

// SetParams replaces the parameters. The current points keep their
// attributes until the next Resize.
func (f *Field) SetParams(params Params) {
	f.params = params
}

// Resize discards every point and lays out a fresh grid for the new size.
func (f *Field) Resize(width, height int) {
	f.width = width
	f.height = height
	f.points = Generate(width, height, f.params, f.src)
	f.index = nil
	if f.params.SpatialIndex {
		f.index = NewBucketIndex(f.points, f.params.Threshold, f.params.Amplitude.Max)
	}
	f.generation++
}

// Size returns the dimensions of the current grid.
func (f *Field) Size() (int, int) {
	return f.width, f.height
}

// Generation counts regrids; it changes every time Resize runs.
func (f *Field) Generation() uint64 {
	return f.generation
}

// Len returns the number of points.
func (f *Field) Len() int {
	return f.points.Len()
}

// At returns the point at index i, or nil.
func (f *Field) At(i int) *Point {
	return f.points.At(i)
}

// Points iterates the current point set in generation order.
func (f *Field) Points() iter.Seq2[int, *Point] {
	return f.points.All()
}

// Step advances every point by one frame without drawing.
func (f *Field) Step() {
	for _, pt := range f.points.All() {
		pt.Step()
	}
}

// Render runs one frame: it clears the canvas, then for each point in turn
// advances it, draws it and strokes its links. Links from point i see the
// new positions of points before i and last frame's positions of points
// after it. Render returns the number of links drawn.
func (f *Field) Render(c Canvas) int {
	if c == nil {
		return 0
	}

	c.Clear()

	links := 0
	for i, pt := range f.points.All() {
		pt.Step()
		c.FillCircle(pt.X, pt.Y, pt.Size, pt.Color)
		links += f.connect(c, i, pt)
	}

	return links
}

func (f *Field) connect(c Canvas, i int, pt *Point) int {
	drawn := 0
	link := func(other *Point) {
		alpha, ok := LinkAlpha(distance(pt, other), f.params.Threshold, f.params.LinkAlpha)
		if !ok {
			return
		}
		c.StrokeLine(pt.X, pt.Y, other.X, other.Y, f.params.LineWidth, f.params.LinkColor.WithAlpha(alpha))
		drawn++
	}

	if f.index != nil {
		f.candidates = f.index.Candidates(i, f.candidates[:0])
		for _, j := range f.candidates {
			link(f.points.At(j))
		}
		return drawn
	}

	for _, other := range f.points.All() {
		link(other)
	}
	return drawn
}
