package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Bool returns true with probability p.
func (r *RNG) Bool(p float64) bool {
	return r.r.Float64() < p
}

// Fill sets every cell of w within size alive with probability density.
func (r *RNG) Fill(w Writer, size Size, density float64) {
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			w.Set(x, y, r.Bool(density))
		}
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
