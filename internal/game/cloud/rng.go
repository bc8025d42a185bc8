package cloud

import (
	"math/rand/v2"
	"time"
)

// RNG is the source of randomness used by the placement generator.
type RNG interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
}

// NewRNG returns a PCG-backed RNG. A zero seed draws one from the wall clock.
func NewRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
