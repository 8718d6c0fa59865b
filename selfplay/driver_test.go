package selfplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"

	"github.com/sprl-go/sprl/game"
	"github.com/sprl-go/sprl/game/connectfour"
	"github.com/sprl-go/sprl/search"
)

type uniformEvaluator struct {
	actionSpace int
}

func (e *uniformEvaluator) Evaluate(states []game.GameState) ([]search.EvalResult, error) {
	out := make([]search.EvalResult, len(states))
	for i := range states {
		p := make([]float32, e.actionSpace)
		for a := range p {
			p[a] = 1 / float32(e.actionSpace)
		}
		out[i] = search.EvalResult{Policy: p, Value: 0}
	}
	return out, nil
}

func TestPlayGameTerminatesAndProducesExamples(t *testing.T) {
	rules := connectfour.NewRules()
	d := &Driver{
		Rules:        rules,
		Sym:          connectfour.Mirror{},
		SearchConfig: search.DefaultConfig(),
		Options: Options{
			UCTTraversals:   16,
			SymmetrizeData:  true,
			EarlyGameCutoff: 15,
			EarlyGameExp:    0.98,
			RestGameExp:     10.0,
		},
		RNG: rand.New(rand.NewSource(7)),
	}
	ev := &uniformEvaluator{actionSpace: rules.ActionSpace()}
	result, err := d.PlayGame(ev)
	assert.NoError(t, err)
	assert.True(t, result.Plies > 0)
	// Mirror symmetry doubles every recorded example.
	assert.Equal(t, result.Plies*2, len(result.Examples))
	for _, ex := range result.Examples {
		assert.Len(t, ex.Policy, rules.ActionSpace())
		assert.True(t, ex.Value == 1 || ex.Value == -1 || ex.Value == 0)
	}
}

func TestVisitDistributionSharpensWithHigherExponent(t *testing.T) {
	visits := []uint32{1, 4, 0}
	low := visitDistribution(visits, 0.98)
	high := visitDistribution(visits, 10.0)
	assert.True(t, high[1] > low[1])
}

func TestPolicyTargetPrunesLowVisitActionsTowardZero(t *testing.T) {
	visits := []uint32{1, 100, 1}
	priors := []float32{0.01, 0.98, 0.01}
	out := policyTarget(visits, priors)
	// The best action (index 1) is left untouched; the long-shot
	// low-prior, low-visit actions get pruned toward zero.
	assert.Equal(t, uint32(100), out[1])
	assert.True(t, out[0] < visits[0] || out[0] == 0)
	assert.True(t, out[2] < visits[2] || out[2] == 0)
}

func TestPlayGameStopsAtMaxPliesEvenIfNonTerminal(t *testing.T) {
	rules := connectfour.NewRules()
	d := &Driver{
		Rules:        fakeNeverTerminalRules{Rules: rules},
		SearchConfig: search.DefaultConfig(),
		Options: Options{
			UCTTraversals:   4,
			EarlyGameCutoff: 15,
			EarlyGameExp:    0.98,
			RestGameExp:     10.0,
		},
		RNG: rand.New(rand.NewSource(3)),
	}
	ev := &uniformEvaluator{actionSpace: rules.ActionSpace()}
	result, err := d.PlayGame(ev)
	assert.NoError(t, err)
	assert.True(t, result.Plies <= d.Rules.MaxPlies()+1)
}

// fakeNeverTerminalRules wraps a real ruleset but reports a MaxPlies bound
// of zero, so the driver's safety cutoff stops the game after its very
// first move regardless of what the wrapped game's own terminal logic says.
type fakeNeverTerminalRules struct {
	game.Rules
}

func (fakeNeverTerminalRules) MaxPlies() int { return 0 }
