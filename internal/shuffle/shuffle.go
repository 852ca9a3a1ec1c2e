// Package shuffle produces uniformly random permutations of the image grid.
//
// The source is math/rand/v2: the shuffle hides the grid layout from casual
// observers and is not a secrecy property of the credential.
package shuffle

import "math/rand/v2"

// Shuffler permutes slices with its own random source.
type Shuffler struct {
	intN func(n int) int
}

// New returns a Shuffler backed by the process-wide generator.
func New() *Shuffler {
	return &Shuffler{intN: rand.IntN}
}

// NewWithSource returns a Shuffler drawing from src; handy for
// reproducible tests.
func NewWithSource(src rand.Source) *Shuffler {
	return &Shuffler{intN: rand.New(src).IntN}
}

// Shuffle returns a new slice holding a Fisher–Yates permutation of pool.
// pool itself is left untouched.
func Shuffle[T any](s *Shuffler, pool []T) []T {
	out := make([]T, len(pool))
	copy(out, pool)

	for i := len(out) - 1; i > 0; i-- {
		j := s.intN(i + 1)
		out[i], out[j] = out[j], out[i]
	}

	return out
}
