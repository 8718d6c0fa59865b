// Package symmetry holds the board-equivariance machinery used to augment
// self-play training data: every Symmetrizer maps a GameState and an action
// distribution through a group of board symmetries without changing their
// game-theoretic meaning.
package symmetry

import "github.com/sprl-go/sprl/game"

// Symmetrizer is a finite group of board symmetries (rotations/reflections)
// acting on states and action distributions. Group elements are identified
// by an index in [0, Count).
type Symmetrizer interface {
	// Count is the order of the group, including the identity (index 0).
	Count() int

	// Inverse returns the index of the inverse of group element g.
	Inverse(g int) int

	// ApplyState maps s through each group element named in gs, returning
	// one transformed GameState per entry of gs.
	ApplyState(s game.GameState, gs []int) []game.GameState

	// ApplyDist maps an action distribution (in the untransformed action
	// space) through each group element named in gs.
	ApplyDist(d []float32, gs []int) [][]float32
}
