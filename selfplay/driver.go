// Package selfplay plays one game at a time against a black-box Evaluator,
// driving a search.Tree move by move: search, sample a move from the root
// visit distribution under a temperature schedule, step the tree forward,
// and record a training example per move (optionally augmented across a
// Symmetrizer's group).
package selfplay

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/rand"

	"github.com/sprl-go/sprl/game"
	"github.com/sprl-go/sprl/player"
	"github.com/sprl-go/sprl/rng"
	"github.com/sprl-go/sprl/search"
	"github.com/sprl-go/sprl/symmetry"
)

// Example is one training sample: a board state (already expressed as the
// side-to-move's own GameState), the search-derived target policy over
// the action space, and the eventual game outcome from that side's
// perspective.
type Example struct {
	State  game.GameState
	Policy []float32
	ToMove player.Player
	Value  float32
}

// Result is the outcome of one played-out game.
type Result struct {
	Examples  []Example
	Winner    player.Player
	HasWinner bool
	Plies     int
}

// Driver plays complete games against a supplied Evaluator.
type Driver struct {
	Rules        game.Rules
	Sym          symmetry.Symmetrizer
	SearchConfig search.Config
	Options      Options
	RNG          *rand.Rand
}

// PlayGame plays one game from the start position to completion.
func (d *Driver) PlayGame(ev search.Evaluator) (Result, error) {
	node := d.Rules.StartNode()
	tree := search.New(node, d.SearchConfig, d.Sym, d.RNG)

	var examples []Example
	ply := 0
	maxPlies := d.Rules.MaxPlies()
	for !node.IsTerminal() && ply <= maxPlies {
		budget := d.Options.UCTTraversals
		if d.Options.FastPlayoutProb > 0 && d.RNG.Float32() < d.Options.FastPlayoutProb {
			budget = int(float32(budget) * d.Options.FastPlayoutFactor)
			if budget < 1 {
				budget = 1
			}
		}
		if err := tree.RunSearch(budget, ev); err != nil {
			return Result{}, err
		}

		visits := tree.RootVisits()
		exp := d.Options.RestGameExp
		if ply < d.Options.EarlyGameCutoff {
			exp = d.Options.EarlyGameExp
		}

		moveDist := visitDistribution(visits, exp)
		action := rng.SampleCDF(d.RNG, moveDist)

		targetVisits := visits
		if d.Options.ForcedPlayouts || d.Options.PolicyTargetPruning {
			targetVisits = policyTarget(visits, tree.RootPriors())
		}

		examples = append(examples, Example{
			State:  node.History(),
			Policy: visitDistribution(targetVisits, exp),
			ToMove: node.Player(),
		})

		node = node.NextNode(action)
		tree.Reroot(action)
		ply++
	}

	r0, r1 := node.Rewards()
	winner, hasWinner := resolveWinner(r0, r1)

	examples = assignOutcomes(examples, r0, r1)
	if d.Options.SymmetrizeData && d.Sym != nil {
		examples = augment(examples, d.Sym)
	}

	return Result{Examples: examples, Winner: winner, HasWinner: hasWinner, Plies: ply}, nil
}

// forcedPlayoutK is the c_forced constant used to estimate, per action, how
// many of its visits are attributable to forced exploration rather than
// genuine PUCT preference: N_forced(a) = sqrt(forcedPlayoutK * P(a) * sum(N)).
const forcedPlayoutK = 2.0

// policyTarget subtracts each non-best action's estimated forced-playout
// floor from its visit count, leaving the most-visited action untouched, so
// that the recorded training target isn't inflated by forced exploration.
func policyTarget(visits []uint32, priors []float32) []uint32 {
	var sumN uint32
	best := 0
	for a, n := range visits {
		sumN += n
		if n > visits[best] {
			best = a
		}
	}
	out := append([]uint32(nil), visits...)
	for a, n := range visits {
		if a == best || n == 0 {
			continue
		}
		forced := math32.Sqrt(forcedPlayoutK * priors[a] * float32(sumN))
		pruned := float32(n) - forced
		if pruned < 0 {
			pruned = 0
		}
		out[a] = uint32(pruned)
	}
	return out
}

// visitDistribution computes pi(a) proportional to N(a)^exp over actions
// that have been visited at least once.
func visitDistribution(visits []uint32, exp float32) []float32 {
	out := make([]float32, len(visits))
	var sum float32
	for a, n := range visits {
		if n == 0 {
			continue
		}
		v := math32.Pow(float32(n), exp)
		out[a] = v
		sum += v
	}
	if sum == 0 {
		return out
	}
	for a := range out {
		out[a] /= sum
	}
	return out
}

func resolveWinner(r0, r1 float32) (player.Player, bool) {
	switch {
	case r0 > r1:
		return player.Zero, true
	case r1 > r0:
		return player.One, true
	default:
		return player.Zero, false
	}
}

func assignOutcomes(examples []Example, r0, r1 float32) []Example {
	out := make([]Example, len(examples))
	for i, e := range examples {
		v := r0
		if e.ToMove == player.One {
			v = r1
		}
		e.Value = v
		out[i] = e
	}
	return out
}

func augment(examples []Example, sym symmetry.Symmetrizer) []Example {
	n := sym.Count()
	gs := make([]int, n)
	for i := range gs {
		gs[i] = i
	}
	out := make([]Example, 0, len(examples)*n)
	for _, e := range examples {
		states := sym.ApplyState(e.State, gs)
		dists := sym.ApplyDist(e.Policy, gs)
		for i := 0; i < n; i++ {
			out = append(out, Example{
				State:  states[i],
				Policy: dists[i],
				ToMove: e.ToMove,
				Value:  e.Value,
			})
		}
	}
	return out
}
