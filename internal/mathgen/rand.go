package mathgen

import "math/rand/v2"

// SystemRand returns a Rand backed by the process-wide generator. Unlike
// *rand.Rand, it is safe to share across request goroutines.
func SystemRand() Rand {
	return systemRand{}
}

type systemRand struct{}

func (systemRand) IntN(n int) int   { return rand.IntN(n) }
func (systemRand) Float64() float64 { return rand.Float64() }
