// Package rng collects the small set of random-number routines shared by
// search and self-play: seeding, Dirichlet-distributed noise draws, and
// CDF sampling, grounded on original_source's Random.hpp (Dirichlet,
// SampleCDF) and the teacher's own Dirichlet setup in mcts/tree.go.
package rng

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
)

// New constructs a seeded RNG. Two RNGs built from the same seed produce
// identical sequences, which is what makes a self-play run reproducible.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Dirichlet draws one sample of n independent Dirichlet(alpha, ..., alpha)
// coordinates using r as the entropy source.
func Dirichlet(r *rand.Rand, alpha float64, n int) []float64 {
	alphas := make([]float64, n)
	for i := range alphas {
		alphas[i] = alpha
	}
	dist := distmv.NewDirichlet(alphas, rand.NewSource(uint64(r.Int63())))
	return dist.Rand(nil)
}

// SampleCDF treats dist as a probability mass function, draws a uniform
// variate in [0, 1) from r, and returns the index whose cumulative mass
// first exceeds it. Entries with zero probability are never returned
// unless every entry is zero, in which case the last index is returned.
func SampleCDF(r *rand.Rand, dist []float32) int {
	u := r.Float32()
	var cum float32
	for i, p := range dist {
		cum += p
		if u < cum {
			return i
		}
	}
	for i := len(dist) - 1; i >= 0; i-- {
		if dist[i] > 0 {
			return i
		}
	}
	return len(dist) - 1
}
