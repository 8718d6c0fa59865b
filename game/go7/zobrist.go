package go7

import (
	"math/rand"

	"github.com/sprl-go/sprl/player"
)

// zobristSeed is fixed (not derived from wall-clock or game rng) so that
// incremental hash updates are reproducible across runs, matching the
// original engine's dedicated, separately-seeded Zobrist table.
const zobristSeed = 0xC0FFEE

var zobristTable [boardSize][2]uint64

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	for c := 0; c < boardSize; c++ {
		for p := 0; p < 2; p++ {
			zobristTable[c][p] = r.Uint64()
		}
	}
}

func pieceHash(cell int, p player.Player) uint64 {
	return zobristTable[cell][int(p)]
}
