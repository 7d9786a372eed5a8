package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is wrapped by every error returned from Params.Validate.
var ErrInvalidParams = errors.New("invalid grid params")

// Range is a half-open interval [Min, Max) sampled uniformly.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Sample draws one value from the range.
func (r Range) Sample(src Source) float64 {
	return r.Min + src.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies inside the closed interval [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Params controls grid layout, per-point attribute ranges and link rendering.
type Params struct {
	// Spacing is the distance between neighbouring anchors on both axes.
	Spacing float64
	// Threshold is the exclusive upper bound on the length of a link.
	Threshold float64
	// LinkAlpha caps link opacity: a link of length d gets (1 - d/Threshold) * LinkAlpha.
	LinkAlpha float64
	LineWidth float64

	Size       Range
	Alpha      Range
	Amplitude  Range
	AngleSpeed Range

	PointColor Color
	LinkColor  Color

	// SpatialIndex replaces the all-pairs link scan with a bucket index.
	// Both produce the same links.
	SpatialIndex bool
}

// DefaultParams returns the stock look: 40 unit cells, 80 unit links.
func DefaultParams() Params {
	return Params{
		Spacing:    40,
		Threshold:  80,
		LinkAlpha:  0.2,
		LineWidth:  0.5,
		Size:       Range{Min: 0.5, Max: 2.0},
		Alpha:      Range{Min: 0.1, Max: 0.5},
		Amplitude:  Range{Min: 2, Max: 10},
		AngleSpeed: Range{Min: 0.005, Max: 0.015},
		PointColor: RGB(220, 220, 250),
		LinkColor:  RGB(210, 210, 240),
	}
}

// MinSpacing bounds grid density. Below it a large surface holds millions
// of points and the all-pairs link scan stalls the host.
const MinSpacing = 4

// Validate checks that the parameters describe a drawable grid.
func (p Params) Validate() error {
	if p.Spacing < MinSpacing {
		return fmt.Errorf("%w: spacing must be at least %v, got %v", ErrInvalidParams, MinSpacing, p.Spacing)
	}
	if p.Threshold <= 0 {
		return fmt.Errorf("%w: threshold must be positive, got %v", ErrInvalidParams, p.Threshold)
	}
	if p.LinkAlpha < 0 || p.LinkAlpha > 1 {
		return fmt.Errorf("%w: link alpha must be within [0, 1], got %v", ErrInvalidParams, p.LinkAlpha)
	}
	if p.LineWidth <= 0 {
		return fmt.Errorf("%w: line width must be positive, got %v", ErrInvalidParams, p.LineWidth)
	}

	ranges := []struct {
		name string
		r    Range
	}{
		{"size", p.Size},
		{"alpha", p.Alpha},
		{"amplitude", p.Amplitude},
		{"angle speed", p.AngleSpeed},
	}
	for _, nr := range ranges {
		if nr.r.Min > nr.r.Max {
			return fmt.Errorf("%w: %s range is inverted (%v > %v)", ErrInvalidParams, nr.name, nr.r.Min, nr.r.Max)
		}
		if nr.r.Min < 0 {
			return fmt.Errorf("%w: %s range must not be negative", ErrInvalidParams, nr.name)
		}
	}
	if p.Alpha.Max > 1 {
		return fmt.Errorf("%w: alpha range exceeds 1", ErrInvalidParams)
	}

	return nil
}
