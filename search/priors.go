package search

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/rand"

	"github.com/sprl-go/sprl/game"
	"github.com/sprl-go/sprl/rng"
)

func allFinite(xs []float32) bool {
	for _, x := range xs {
		if math32.IsNaN(x) || math32.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func finite(x float32) bool {
	return !math32.IsNaN(x) && !math32.IsInf(x, 0)
}

// uniformLegal spreads probability mass evenly over the legal actions in
// mask; it is the safe fallback when an evaluator returns a non-finite
// policy.
func uniformLegal(mask game.ActionMask) []float32 {
	out := make([]float32, len(mask))
	n := 0
	for _, legal := range mask {
		if legal {
			n++
		}
	}
	if n == 0 {
		return out
	}
	p := 1 / float32(n)
	for a, legal := range mask {
		if legal {
			out[a] = p
		}
	}
	return out
}

// maskAndRenormalize zeroes out illegal actions and rescales the
// remaining mass to sum to one, falling back to a uniform legal
// distribution if the legal mass is (numerically) zero.
func maskAndRenormalize(policy []float32, mask game.ActionMask) []float32 {
	out := make([]float32, len(policy))
	var sum float32
	for a, legal := range mask {
		if legal {
			out[a] = policy[a]
			sum += policy[a]
		}
	}
	if sum <= math32.SmallestNonzeroFloat32 {
		return uniformLegal(mask)
	}
	inv := 1 / sum
	for a := range out {
		out[a] *= inv
	}
	return out
}

// mixDirichlet blends Dirichlet(alpha) noise into policy over the legal
// actions named by mask: P'(a) = (1-eps)*P(a) + eps*noise(a).
func mixDirichlet(policy []float32, mask game.ActionMask, cfg Config, r *rand.Rand) []float32 {
	var legalIdx []int
	for a, legal := range mask {
		if legal {
			legalIdx = append(legalIdx, a)
		}
	}
	out := append([]float32(nil), policy...)
	if len(legalIdx) == 0 {
		return out
	}
	noise := rng.Dirichlet(r, float64(cfg.DirAlpha), len(legalIdx))
	for i, a := range legalIdx {
		out[a] = (1-cfg.DirEps)*policy[a] + cfg.DirEps*float32(noise[i])
	}
	return out
}
