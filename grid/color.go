package grid

import "image/color"

// Color is a straight-alpha RGB colour. Alpha is kept fractional so that
// link opacities like (1 - d/D) * 0.2 survive without rounding.
type Color struct {
	R, G, B uint8
	A       float64
}

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// WithAlpha returns a copy of c with the given alpha.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// NRGBA converts to an image/color value, clamping alpha into [0, 1].
func (c Color) NRGBA() color.NRGBA {
	a := c.A
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a*255 + 0.5)}
}
