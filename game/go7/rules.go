package go7

import (
	"github.com/sprl-go/sprl/game"
	"github.com/sprl-go/sprl/player"
)

// Rules is the 7x7 Go ruleset.
type Rules struct{}

// NewRules constructs the 7x7 Go ruleset with the default komi.
func NewRules() Rules { return Rules{} }

func (Rules) StartNode() game.Node {
	n := &node{}
	for i := range n.board {
		n.board[i] = player.Empty
	}
	n.dsu = newDSU()
	n.toMove = player.Zero
	n.historySet = make(map[uint64]struct{})
	n.historySet[0] = struct{}{}
	n.history = []game.Board{boardSnapshot(n.board)}
	n.mask = n.computeActionMask()
	return n
}

func (Rules) ActionSpace() int   { return actionSpace }
func (Rules) HistoryLength() int { return historyLen }
func (Rules) BoardSize() int     { return boardSize }
func (Rules) Rows() int          { return width }
func (Rules) Cols() int          { return width }
func (Rules) MaxPlies() int      { return maxPlies }
func (Rules) Name() string       { return "go7" }
