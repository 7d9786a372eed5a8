package grid

import "math/rand/v2"

// Source supplies uniform samples in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
