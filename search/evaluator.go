package search

import "github.com/sprl-go/sprl/game"

// EvalResult is one leaf's evaluation: a policy over the leaf's action
// space (from the leaf's side-to-move perspective) and a scalar value
// (also from that same perspective, in [-1, 1]).
type EvalResult struct {
	Policy []float32
	Value  float32
}

// Evaluator is the black-box policy/value oracle the tree calls in
// batches. Implementations may wrap a traced neural network, a uniform
// random baseline, or anything else that can score a batch of states.
type Evaluator interface {
	Evaluate(states []game.GameState) ([]EvalResult, error)
}
