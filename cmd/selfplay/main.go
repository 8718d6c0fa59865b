// Command selfplay runs one self-play worker: it plays self-play games
// against the evaluator for each iteration's model in turn, polling the
// filesystem for the next traced model between iterations, and writes the
// resulting training examples as .npy arrays. Model loading/training is
// out of scope (see SPEC_FULL.md Non-goals); this binary only ever plays
// against the uniform seed evaluator, matching the "fall back to seed
// evaluator with a warning" row of the error-handling design for any
// model path that isn't "random".
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/sprl-go/sprl/config"
	"github.com/sprl-go/sprl/game"
	"github.com/sprl-go/sprl/game/connectfour"
	"github.com/sprl-go/sprl/game/go7"
	"github.com/sprl-go/sprl/game/othello"
	"github.com/sprl-go/sprl/game/pentago"
	"github.com/sprl-go/sprl/iteration"
	"github.com/sprl-go/sprl/rng"
	"github.com/sprl-go/sprl/search"
	"github.com/sprl-go/sprl/symmetry"
)

var (
	gameFlag         = flag.String("game", "", "game to play: connectfour, pentago, othello, or go7")
	uctConfigFlag    = flag.String("uct_config", "uctOptions.json", "path to the UCT options JSON file")
	workerConfigFlag = flag.String("worker_config", "selfPlayOptions.json", "path to the self-play worker options JSON file")
	saveRootFlag     = flag.String("save_root", "data/games", "root directory self-play output is written under")
	taskIDFlag       = flag.Int("task_id", 0, "this worker's task index, in [0, num_tasks)")
	numTasksFlag     = flag.Int("num_tasks", 1, "total number of worker tasks")
	seedFlag         = flag.Uint64("seed", 1, "RNG seed for this worker")
)

func resolveGame(name string) (game.Rules, symmetry.Symmetrizer) {
	switch name {
	case "connectfour":
		return connectfour.NewRules(), connectfour.Mirror{}
	case "pentago":
		return pentago.NewRules(), nil
	case "othello":
		r := othello.NewRules()
		return r, symmetry.D4Grid{Width: r.Cols()}
	case "go7":
		r := go7.NewRules()
		return r, symmetry.D4Grid{Width: r.Cols()}
	default:
		return nil, nil
	}
}

// seedEvaluator is the uniform-policy, zero-value black box used whenever
// no traced model is available (iteration 0, or any iteration whose model
// failed to load).
type seedEvaluator struct {
	actionSpace int
}

func (e seedEvaluator) Evaluate(states []game.GameState) ([]search.EvalResult, error) {
	out := make([]search.EvalResult, len(states))
	p := 1 / float32(e.actionSpace)
	for i := range states {
		policy := make([]float32, e.actionSpace)
		for a := range policy {
			policy[a] = p
		}
		out[i] = search.EvalResult{Policy: policy, Value: 0}
	}
	return out, nil
}

func main() {
	flag.Parse()

	if *taskIDFlag < 0 || *numTasksFlag < 1 || *taskIDFlag >= *numTasksFlag {
		log.Fatalf("selfplay: invalid task_id %d for num_tasks %d", *taskIDFlag, *numTasksFlag)
	}

	rules, sym := resolveGame(*gameFlag)
	if rules == nil {
		log.Fatalf("selfplay: unknown game %q", *gameFlag)
	}

	uctCfg, err := config.LoadUCTConfig(*uctConfigFlag)
	if err != nil {
		log.Fatalf("selfplay: %v", err)
	}
	workerCfg, err := config.LoadWorkerConfig(*workerConfigFlag)
	if err != nil {
		log.Fatalf("selfplay: %v", err)
	}
	if workerCfg.NumWorkerTasks != *numTasksFlag {
		log.Fatalf("selfplay: worker config says %d tasks, flag says %d", workerCfg.NumWorkerTasks, *numTasksFlag)
	}

	groupSize := workerCfg.NumWorkerTasks / workerCfg.NumGroups
	if groupSize < 1 {
		log.Fatalf("selfplay: numWorkerTasks %d smaller than numGroups %d", workerCfg.NumWorkerTasks, workerCfg.NumGroups)
	}
	runName := workerCfg.RunName()
	saveDir := filepath.Join(*saveRootFlag, runName, strconv.Itoa(*taskIDFlag/groupSize), strconv.Itoa(*taskIDFlag))

	loadEvaluator := func(modelPath string) (search.Evaluator, error) {
		if modelPath != "random" {
			log.Printf("selfplay: loading traced models is not implemented; falling back to the seed evaluator instead of %q", modelPath)
		}
		return seedEvaluator{actionSpace: rules.ActionSpace()}, nil
	}

	ctx := context.Background()
	r := rng.New(*seedFlag)

	for iter := 0; iter < workerCfg.NumIters; iter++ {
		iterCfg := workerCfg.IterationOptions
		if iter == 0 {
			iterCfg = workerCfg.InitIterationOptions
		}

		runner := &iteration.Runner{
			Rules:            rules,
			Sym:              sym,
			SearchConfig:     uctCfg.ToSearchConfig(),
			Options:          iterCfg.ToOptions(),
			RNG:              r,
			RunName:          runName,
			SaveDir:          saveDir,
			NumGames:         iterCfg.NumGamesPerWorker,
			NumParallelGames: runtime.GOMAXPROCS(0),
			LoadEvaluator:    loadEvaluator,
		}

		log.Printf("selfplay: starting iteration %d (%d games)", iter, iterCfg.NumGamesPerWorker)
		if err := runner.RunOne(ctx, iter); err != nil {
			// Output-write and transient evaluator failures are logged and
			// skipped rather than aborting the whole worker.
			log.Printf("selfplay: iteration %d failed: %v", iter, err)
			continue
		}
	}

	fmt.Printf("selfplay: worker %d/%d done, wrote output under %s\n", *taskIDFlag, *numTasksFlag, saveDir)
	os.Exit(0)
}
