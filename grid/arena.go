package grid

import "iter"

const (
	arenaBlockSize = 64
)

// Arena stores points in separately allocated fixed-size blocks. Growing
// the arena moves block pointers, never the points themselves, so a *Point
// stays valid for the arena's lifetime.
// Points are never removed individually; a regrid replaces the whole arena.
type Arena struct {
	blocks []*[arenaBlockSize]Point
	length int
}

// NewArena returns an arena with room for capacity points before it grows.
func NewArena(capacity int) *Arena {
	numBlocks := (capacity + arenaBlockSize - 1) / arenaBlockSize
	return &Arena{
		blocks: make([]*[arenaBlockSize]Point, 0, numBlocks),
	}
}

// Append adds a point and returns its index.
func (a *Arena) Append(pt Point) int {
	index := a.length
	a.length++

	blockIdx := index / arenaBlockSize
	slotIdx := index % arenaBlockSize

	if blockIdx >= len(a.blocks) {
		a.blocks = append(a.blocks, new([arenaBlockSize]Point))
	}

	a.blocks[blockIdx][slotIdx] = pt
	return index
}

// At returns a pointer to the point at index, or nil when out of range.
func (a *Arena) At(index int) *Point {
	if index < 0 || index >= a.length {
		return nil
	}
	return &a.blocks[index/arenaBlockSize][index%arenaBlockSize]
}

// Len returns the number of points.
func (a *Arena) Len() int {
	return a.length
}

// All iterates points in insertion order.
func (a *Arena) All() iter.Seq2[int, *Point] {
	return func(yield func(int, *Point) bool) {
		for i := 0; i < a.length; i++ {
			if !yield(i, &a.blocks[i/arenaBlockSize][i%arenaBlockSize]) {
				return
			}
		}
	}
}
