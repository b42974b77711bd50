package fireworks

import "math/rand/v2"

// Rand is the random source used for explosions and launches. *rand.Rand
// from math/rand/v2 satisfies it.
type Rand interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// NewRand returns a deterministic source seeded with seed. A zero seed
// returns the process-wide source instead.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		return globalRand{}
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// globalRand forwards to the top-level math/rand/v2 functions.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }
