// Package mood holds the decision logic of the check-in service: turning
// answers into a color, drawing the daily questions, drawing recommendations,
// and reducing a week of colors into a lantern.
//
// Everything here is pure. No function performs I/O or keeps state between
// calls; randomness comes from an injected Rand so tests can pin it.
package mood

import "math/rand/v2"

// Rand is the random source used for question and recommendation draws.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a uniform int in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// runtimeRand delegates to the top-level math/rand/v2 functions, which are
// safe for concurrent use.
type runtimeRand struct{}

func (runtimeRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand returns a Rand suitable for production use from many
// goroutines at once.
func DefaultRand() Rand {
	return runtimeRand{}
}
