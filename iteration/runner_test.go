package iteration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"

	"github.com/sprl-go/sprl/game"
	"github.com/sprl-go/sprl/game/connectfour"
	"github.com/sprl-go/sprl/search"
	"github.com/sprl-go/sprl/selfplay"
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

func TestRunOneWritesThreeNpyFiles(t *testing.T) {
	dir := t.TempDir()
	rules := connectfour.NewRules()
	cfg := search.DefaultConfig()
	cfg.MaxBatchSize = 4

	opts := selfplay.DefaultOptions()
	opts.UCTTraversals = 4
	opts.SymmetrizeData = false

	r := &Runner{
		Rules:        rules,
		Sym:          connectfour.Mirror{},
		SearchConfig: cfg,
		Options:      opts,
		RNG:          rand.New(rand.NewSource(7)),
		RunName:      "testrun",
		SaveDir:      dir,
		NumGames:     1,
		LoadEvaluator: func(modelPath string) (search.Evaluator, error) {
			assert.Equal(t, "random", modelPath)
			return &uniformEvaluator{actionSpace: rules.ActionSpace()}, nil
		},
	}

	err := r.RunOne(context.Background(), 0)
	assert.NoError(t, err)

	base := filepath.Join(dir, "testrun_iteration_0")
	for _, suffix := range []string{"_states.npy", "_distributions.npy", "_outcomes.npy"} {
		info, err := os.Stat(base + suffix)
		assert.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}
