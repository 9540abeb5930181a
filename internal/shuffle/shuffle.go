// Package shuffle provides the unbiased permutation and bounded sampling
// primitives used wherever question or answer order is randomized.
package shuffle

import (
	"math/rand/v2"
	"time"
)

// Shuffler draws from its own random source so callers can seed it.
type Shuffler struct {
	rng *rand.Rand
}

// New creates a Shuffler backed by the given source.
func New(src rand.Source) *Shuffler {
	return &Shuffler{rng: rand.New(src)}
}

// NewSeeded creates a Shuffler with a deterministic PCG source.
func NewSeeded(seed uint64) *Shuffler {
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Default returns a Shuffler seeded from the wall clock.
func Default() *Shuffler {
	return NewSeeded(uint64(time.Now().UnixNano()))
}

// Permute shuffles s in place (Fisher-Yates). Walking i from the end and
// drawing j from [0, i] gives every permutation probability 1/n!.
func Permute[T any](sh *Shuffler, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := sh.rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Permuted returns a shuffled copy of s, leaving s untouched.
func Permuted[T any](sh *Shuffler, s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	Permute(sh, out)
	return out
}

// Sample returns min(k, len(s)) distinct elements of s in random order.
// k <= 0 yields an empty (non-nil) slice.
func Sample[T any](sh *Shuffler, s []T, k int) []T {
	if k <= 0 {
		return []T{}
	}
	out := Permuted(sh, s)
	if k < len(out) {
		out = out[:k]
	}
	return out
}
