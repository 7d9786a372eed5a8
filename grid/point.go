package grid

import "math"

// Point is one particle anchored to a grid cell. It orbits its anchor on a
// circle of radius Amplitude, one AngleSpeed step per frame.
type Point struct {
	OriginalX, OriginalY float64
	X, Y                 float64
	Size                 float64
	Color                Color
	Amplitude            float64
	Angle                float64
	AngleSpeed           float64
}

// newPoint samples a point's attributes. The sampling order is fixed so a
// seeded source always yields the same grid.
func newPoint(x, y float64, p *Params, src Source) Point {
	return Point{
		OriginalX:  x,
		OriginalY:  y,
		X:          x,
		Y:          y,
		Size:       p.Size.Sample(src),
		Color:      p.PointColor.WithAlpha(p.Alpha.Sample(src)),
		Amplitude:  p.Amplitude.Sample(src),
		Angle:      src.Float64() * 2 * math.Pi,
		AngleSpeed: p.AngleSpeed.Sample(src),
	}
}

// Step advances the phase by one frame and recomputes the position.
func (pt *Point) Step() {
	pt.Angle += pt.AngleSpeed
	pt.X = pt.OriginalX + math.Sin(pt.Angle)*pt.Amplitude
	pt.Y = pt.OriginalY + math.Cos(pt.Angle)*pt.Amplitude
}
