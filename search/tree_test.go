package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"

	"github.com/sprl-go/sprl/game"
	"github.com/sprl-go/sprl/game/connectfour"
)

// uniformEvaluator always returns a uniform legal-action policy and a
// fixed value, useful for exercising tree mechanics without a real model.
type uniformEvaluator struct {
	actionSpace int
	value       float32
	calls       int
}

func (e *uniformEvaluator) Evaluate(states []game.GameState) ([]EvalResult, error) {
	e.calls++
	out := make([]EvalResult, len(states))
	for i := range states {
		p := make([]float32, e.actionSpace)
		for a := range p {
			p[a] = 1 / float32(e.actionSpace)
		}
		out[i] = EvalResult{Policy: p, Value: e.value}
	}
	return out, nil
}

func TestRunSearchAccumulatesRootVisits(t *testing.T) {
	rules := connectfour.NewRules()
	root := rules.StartNode()
	cfg := DefaultConfig()
	cfg.MaxBatchSize = 4
	rng := rand.New(rand.NewSource(1))
	tree := New(root, cfg, nil, rng)

	ev := &uniformEvaluator{actionSpace: rules.ActionSpace()}
	err := tree.RunSearch(50, ev)
	assert.NoError(t, err)

	var total uint32
	for _, n := range tree.RootVisits() {
		total += n
	}
	assert.True(t, total >= 50)
}

func TestRerootKeepsChildStatistics(t *testing.T) {
	rules := connectfour.NewRules()
	root := rules.StartNode()
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(2))
	tree := New(root, cfg, nil, rng)
	ev := &uniformEvaluator{actionSpace: rules.ActionSpace()}
	assert.NoError(t, tree.RunSearch(30, ev))

	visitsBefore := tree.RootVisits()[3]
	assert.True(t, visitsBefore > 0)
	childVisits := append([]uint32(nil), tree.root.children[3].edges.N...)
	tree.Reroot(3)
	// The new root's game position must be the action-3 child of the old
	// root, and its own action statistics must carry over unchanged
	// (reroot must not panic or reset the child's edges).
	assert.NotNil(t, tree.RootGameNode())
	assert.Len(t, tree.RootVisits(), rules.ActionSpace())
	assert.Equal(t, childVisits, tree.RootVisits())
}

func TestNonFiniteEvaluationFallsBackToUniform(t *testing.T) {
	rules := connectfour.NewRules()
	root := rules.StartNode()
	cfg := DefaultConfig()
	cfg.AddNoise = false
	rng := rand.New(rand.NewSource(3))
	tree := New(root, cfg, nil, rng)

	ev := &nanEvaluator{actionSpace: rules.ActionSpace()}
	assert.NoError(t, tree.RunSearch(1, ev))
	// Budget 1 evaluates the root and then the one child its traversal
	// reaches; both evaluations come back NaN.
	assert.Equal(t, uint64(2), tree.NonFiniteCount())
}

type nanEvaluator struct {
	actionSpace int
}

func (e *nanEvaluator) Evaluate(states []game.GameState) ([]EvalResult, error) {
	var zero float32
	nan := zero / zero
	out := make([]EvalResult, len(states))
	for i := range states {
		p := make([]float32, e.actionSpace)
		out[i] = EvalResult{Policy: p, Value: nan}
	}
	return out, nil
}
