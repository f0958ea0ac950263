package common

import "math/rand"

// Rand is the randomness source used by gameplay code. Tests swap in a
// scripted implementation to force specific rolls.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded source.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// Range returns a uniform value in [lo, hi). The bounds may be given in
// either order.
func Range(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Chance reports whether a roll in [0,1) falls under p.
func Chance(r Rand, p float64) bool {
	return r.Float64() < p
}
