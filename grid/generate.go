package grid

import "math"

// Generate lays out one point per grid cell of a width x height surface,
// anchored at multiples of params.Spacing, column by column. A surface with
// a non-positive side yields an empty arena.
func Generate(width, height int, params Params, src Source) *Arena {
	arena := NewArena(CountFor(width, height, params.Spacing))
	if width <= 0 || height <= 0 || params.Spacing <= 0 {
		return arena
	}

	w := float64(width)
	h := float64(height)
	for i := 0; float64(i)*params.Spacing < w; i++ {
		x := float64(i) * params.Spacing
		for j := 0; float64(j)*params.Spacing < h; j++ {
			y := float64(j) * params.Spacing
			arena.Append(newPoint(x, y, &params, src))
		}
	}

	return arena
}

// CountFor returns how many points Generate produces for the given surface.
func CountFor(width, height int, spacing float64) int {
	if width <= 0 || height <= 0 || spacing <= 0 {
		return 0
	}
	cols := int(math.Ceil(float64(width) / spacing))
	rows := int(math.Ceil(float64(height) / spacing))
	return cols * rows
}
