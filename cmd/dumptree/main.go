// Command dumptree is a debugging tool: it runs a small PUCT search against
// the uniform seed evaluator and prints the resulting tree as Graphviz DOT,
// for visual inspection (e.g. `go run ./cmd/dumptree | dot -Tpng -o tree.png`).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/exp/rand"

	"github.com/sprl-go/sprl/game"
	"github.com/sprl-go/sprl/game/connectfour"
	"github.com/sprl-go/sprl/game/go7"
	"github.com/sprl-go/sprl/game/othello"
	"github.com/sprl-go/sprl/game/pentago"
	"github.com/sprl-go/sprl/search"
)

var (
	gameFlag     = flag.String("game", "connectfour", "game to play: connectfour, pentago, othello, or go7")
	traversals   = flag.Int("traversals", 64, "number of UCT traversals to run before dumping")
	maxDepthFlag = flag.Int("max_depth", 3, "maximum depth of the dumped subtree")
	outFlag      = flag.String("out", "", "output file (defaults to stdout)")
	seedFlag     = flag.Uint64("seed", 1, "RNG seed")
)

type uniformEvaluator struct {
	actionSpace int
}

func (e uniformEvaluator) Evaluate(states []game.GameState) ([]search.EvalResult, error) {
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

func resolveRules(name string) game.Rules {
	switch name {
	case "connectfour":
		return connectfour.NewRules()
	case "pentago":
		return pentago.NewRules()
	case "othello":
		return othello.NewRules()
	case "go7":
		return go7.NewRules()
	default:
		return nil
	}
}

func main() {
	flag.Parse()

	rules := resolveRules(*gameFlag)
	if rules == nil {
		log.Fatalf("dumptree: unknown game %q", *gameFlag)
	}

	cfg := search.DefaultConfig()
	rng := rand.New(rand.NewSource(*seedFlag))
	tree := search.New(rules.StartNode(), cfg, nil, rng)

	ev := uniformEvaluator{actionSpace: rules.ActionSpace()}
	if err := tree.RunSearch(*traversals, ev); err != nil {
		log.Fatalf("dumptree: search failed: %v", err)
	}

	dot, err := tree.DumpDOT(*maxDepthFlag)
	if err != nil {
		log.Fatalf("dumptree: %v", err)
	}

	if *outFlag == "" {
		fmt.Println(dot)
		return
	}
	if err := os.WriteFile(*outFlag, []byte(dot), 0o644); err != nil {
		log.Fatalf("dumptree: writing %s: %v", *outFlag, err)
	}
}
