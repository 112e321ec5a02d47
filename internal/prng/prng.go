// Package prng provides the per-frame pseudo-random stream used to place
// swimming sharks. It is a plain linear congruential generator, reset to the
// same seed every frame so that each frame draws the same sequence.
package prng

import "math"

const randomRange = 1 << 32

// LCG is a linear congruential generator modulo 2^32. The state is kept in a
// float64 and the product is rounded to double precision before the modulo,
// so the stream matches one computed with IEEE doubles.
type LCG struct {
	initial float64
	seed    float64
}

// New returns a generator positioned at seed.
func New(seed uint32) *LCG {
	return &LCG{initial: float64(seed), seed: float64(seed)}
}

// Reset rewinds the stream to the seed New was given.
func (r *LCG) Reset() {
	r.seed = r.initial
}

// Float64 advances the stream and returns a value in [0,1).
func (r *LCG) Float64() float64 {
	r.seed = math.Mod(134775813*r.seed+1, randomRange)
	return r.seed / randomRange
}

// Seed returns the current internal state.
func (r *LCG) Seed() uint32 {
	return uint32(r.seed)
}
