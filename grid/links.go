package grid

import (
	"math"
	"slices"

	"github.com/kamstrup/intmap"
)

// LinkAlpha applies the connection rule to two points at distance d: they are
// linked when 0 < d < threshold, with an opacity falling off linearly from
// base at d = 0 to zero at the threshold. Coincident points are not linked.
func LinkAlpha(d, threshold, base float64) (float64, bool) {
	if d <= 0 || d >= threshold {
		return 0, false
	}
	return (1 - d/threshold) * base, true
}

// distance matches the plain sqrt(dx*dx + dy*dy) form; math.Hypot can differ
// in the last bit, which would move links at exactly the threshold.
func distance(a, b *Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BucketIndex groups points by the cell their anchor falls into. Anchors are
// fixed and a point never strays more than its amplitude from its anchor, so
// with cells of threshold + 2*maxAmplitude units every point that can be
// linked to a given point sits in one of the nine surrounding cells.
type BucketIndex struct {
	cell  float64
	cells *intmap.Map[uint64, []int]
	homes []uint64
}

// NewBucketIndex indexes every point of the arena.
func NewBucketIndex(points *Arena, threshold, maxAmplitude float64) *BucketIndex {
	b := &BucketIndex{
		cell:  threshold + 2*maxAmplitude,
		cells: intmap.New[uint64, []int](max(points.Len()/4, 16)),
		homes: make([]uint64, points.Len()),
	}

	for i, pt := range points.All() {
		cx, cy := b.cellOf(pt.OriginalX, pt.OriginalY)
		key := cellKey(cx, cy)
		b.homes[i] = key

		members, _ := b.cells.Get(key)
		b.cells.Put(key, append(members, i))
	}

	return b
}

func (b *BucketIndex) cellOf(x, y float64) (int32, int32) {
	return int32(math.Floor(x / b.cell)), int32(math.Floor(y / b.cell))
}

func cellKey(cx, cy int32) uint64 {
	return uint64(uint32(cx))<<32 | uint64(uint32(cy))
}

// Candidates appends to out the indices of every point that may lie within
// link range of point i, in ascending order, and returns the extended slice.
// The result includes i itself; the distance check filters it out.
func (b *BucketIndex) Candidates(i int, out []int) []int {
	home := b.homes[i]
	cx := int32(uint32(home >> 32))
	cy := int32(uint32(home))

	start := len(out)
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			if members, ok := b.cells.Get(cellKey(cx+dx, cy+dy)); ok {
				out = append(out, members...)
			}
		}
	}

	slices.Sort(out[start:])
	return out
}
