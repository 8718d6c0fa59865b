// Package iteration plays a full iteration of self-play games (as many as
// a worker is assigned), collates the resulting examples into the three
// .npy arrays the training pipeline expects, and polls the filesystem for
// the next model checkpoint between iterations.
package iteration

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gorgonia.org/tensor"

	"github.com/sprl-go/sprl/game"
	"github.com/sprl-go/sprl/iteration/npyio"
	"github.com/sprl-go/sprl/search"
	"github.com/sprl-go/sprl/selfplay"
	"github.com/sprl-go/sprl/symmetry"
)

// EvaluatorLoader constructs an Evaluator for the model at modelPath, or
// for the untrained seed network when modelPath is "random".
type EvaluatorLoader func(modelPath string) (search.Evaluator, error)

// Runner plays one iteration's worth of games and writes its output arrays.
type Runner struct {
	Rules        game.Rules
	Sym          symmetry.Symmetrizer
	SearchConfig search.Config
	Options      selfplay.Options
	RNG          *rand.Rand

	// RunName identifies the training run; it and the iteration number
	// together determine the traced model file path to poll for.
	RunName string

	// SaveDir is the directory self-play output arrays are written under.
	SaveDir string

	// NumGames is how many games this worker plays for the iteration.
	NumGames int

	// NumParallelGames caps how many games run concurrently against the
	// (assumed batch-friendly) Evaluator. Defaults to 1 (sequential) if
	// not positive.
	NumParallelGames int

	// LoadEvaluator constructs the Evaluator for a resolved model path.
	LoadEvaluator EvaluatorLoader
}

// RunOne blocks until the model for iteration-1 is available (or uses the
// seed evaluator if iteration is 0), plays NumGames self-play games against
// it, and writes "<SaveDir>/<RunName>_iteration_<iteration>_{states,
// distributions,outcomes}.npy".
func (r *Runner) RunOne(ctx context.Context, iteration int) error {
	modelPath, err := WaitModelPath(ctx, r.RunName, iteration-1)
	if err != nil {
		return errors.Wrap(err, "iteration: waiting for model path")
	}

	ev, err := r.LoadEvaluator(modelPath)
	if err != nil {
		return errors.Wrapf(err, "iteration: loading evaluator for %q", modelPath)
	}

	if err := os.MkdirAll(r.SaveDir, 0o755); err != nil {
		return errors.Wrap(err, "iteration: creating save directory")
	}

	examples, err := r.playGames(ctx, ev)
	if err != nil {
		return err
	}

	savePath := fmt.Sprintf("%s/%s_iteration_%d", r.SaveDir, r.RunName, iteration)
	return writeExamples(savePath, examples, r.Rules)
}

// playGames plays NumGames self-play games, fanned out across up to
// NumParallelGames goroutines via errgroup. Each game gets its own
// *rand.Rand seeded from r.RNG; the seeds are drawn up front in game order
// (the shared source itself is not safe for concurrent use), so the games'
// move choices are reproducible for a given r.RNG regardless of scheduling.
func (r *Runner) playGames(ctx context.Context, ev search.Evaluator) ([]selfplay.Example, error) {
	parallel := r.NumParallelGames
	if parallel < 1 {
		parallel = 1
	}

	seeds := make([]uint64, r.NumGames)
	for i := range seeds {
		seeds[i] = uint64(r.RNG.Int63())
	}

	results := make([]selfplay.Result, r.NumGames)
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, parallel)

	for i := 0; i < r.NumGames; i++ {
		i := i
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return gctx.Err()
			}
			driver := &selfplay.Driver{
				Rules:        r.Rules,
				Sym:          r.Sym,
				SearchConfig: r.SearchConfig,
				Options:      r.Options,
				RNG:          rand.New(rand.NewSource(seeds[i])),
			}
			result, err := driver.PlayGame(ev)
			if err != nil {
				return errors.Wrapf(err, "iteration: playing game %d/%d", i+1, r.NumGames)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var examples []selfplay.Example
	for _, result := range results {
		examples = append(examples, result.Examples...)
	}
	return examples, nil
}

// writeExamples collates examples into tensor.Dense arrays (the same
// in-memory array type the teacher's AZ.prepareExamples builds before
// handing batches to the network) and serializes each to its own .npy
// file, aggregating any write failures with multierror rather than
// stopping at the first one.
func writeExamples(savePath string, examples []selfplay.Example, rules game.Rules) error {
	historyLen := rules.HistoryLength()
	boardSize := rules.BoardSize()
	channels := game.EncodedChannels(historyLen)
	actionSpace := rules.ActionSpace()
	m := len(examples)

	var statesBacking, distBacking, outcomesBacking []float32
	for _, ex := range examples {
		statesBacking = append(statesBacking, game.EncodeState(ex.State, historyLen, boardSize)...)
		distBacking = append(distBacking, ex.Policy...)
		outcomesBacking = append(outcomesBacking, ex.Value)
	}

	states := tensor.New(tensor.WithBacking(statesBacking), tensor.WithShape(m, channels, rules.Rows(), rules.Cols()))
	distributions := tensor.New(tensor.WithBacking(distBacking), tensor.WithShape(m, actionSpace))
	outcomes := tensor.New(tensor.WithBacking(outcomesBacking), tensor.WithShape(m))

	var result *multierror.Error
	if err := writeDense(savePath+"_states.npy", states); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "iteration: writing states.npy"))
	}
	if err := writeDense(savePath+"_distributions.npy", distributions); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "iteration: writing distributions.npy"))
	}
	if err := writeDense(savePath+"_outcomes.npy", outcomes); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "iteration: writing outcomes.npy"))
	}
	return result.ErrorOrNil()
}

func writeDense(path string, d *tensor.Dense) error {
	data, ok := d.Data().([]float32)
	if !ok {
		return errors.Errorf("iteration: expected []float32 backing, got %T", d.Data())
	}
	return npyio.WriteFloat32(path, data, d.Shape())
}
