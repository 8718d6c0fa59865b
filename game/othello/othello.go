// Package othello implements Othello/Reversi on an 8x8 board: placing a
// piece brackets and flips any contiguous opposing runs between it and
// another piece of the mover's own color in any of the 8 directions. If a
// player has no legal placement, they must pass; the game ends the moment
// neither player has a legal placement left (state-based, not a function of
// how the position was reached), and the player with more pieces wins.
package othello

import (
	"strings"

	"github.com/sprl-go/sprl/game"
	"github.com/sprl-go/sprl/player"
)

const (
	width       = 8
	cells       = width * width
	passAction  = cells
	actionSpace = cells + 1
	historyLen  = 1
)

type node struct {
	board    game.Board
	toMove   player.Player
	mask     game.ActionMask
	terminal bool
}

// Rules is the Othello ruleset.
type Rules struct{}

// NewRules constructs the Othello ruleset.
func NewRules() Rules { return Rules{} }

func (Rules) StartNode() game.Node {
	board := make(game.Board, cells)
	for i := range board {
		board[i] = player.Empty
	}
	board[3*width+3] = player.PieceOne
	board[3*width+4] = player.PieceZero
	board[4*width+3] = player.PieceZero
	board[4*width+4] = player.PieceOne
	n := &node{board: board, toMove: player.Zero}
	n.mask = computeMask(board, player.Zero)
	return n
}

func (Rules) ActionSpace() int   { return actionSpace }
func (Rules) HistoryLength() int { return historyLen }
func (Rules) BoardSize() int     { return cells }
func (Rules) Rows() int          { return width }
func (Rules) Cols() int          { return width }
func (Rules) Name() string       { return "othello" }

// MaxPlies allows for passes beyond the cells placements a filled board
// takes, the same margin go7 gives its own internal double-pass bound.
func (Rules) MaxPlies() int { return 2 * cells }

var eightDirs = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func bracketsInDirection(board game.Board, row, col, dr, dc int, me, opp player.Piece) bool {
	r, c := row+dr, col+dc
	count := 0
	for r >= 0 && r < width && c >= 0 && c < width && board[r*width+c] == opp {
		count++
		r += dr
		c += dc
	}
	if count == 0 {
		return false
	}
	return r >= 0 && r < width && c >= 0 && c < width && board[r*width+c] == me
}

func legalPlacement(board game.Board, pos int, me player.Piece) bool {
	if board[pos] != player.Empty {
		return false
	}
	row, col := pos/width, pos%width
	opp := otherPiece(me)
	for _, d := range eightDirs {
		if bracketsInDirection(board, row, col, d[0], d[1], me, opp) {
			return true
		}
	}
	return false
}

func otherPiece(p player.Piece) player.Piece {
	if p == player.PieceZero {
		return player.PieceOne
	}
	return player.PieceZero
}

func computeMask(board game.Board, toMove player.Player) game.ActionMask {
	mask := make(game.ActionMask, actionSpace)
	me := player.PieceFromPlayer(toMove)
	any := false
	for pos := 0; pos < cells; pos++ {
		if legalPlacement(board, pos, me) {
			mask[pos] = true
			any = true
		}
	}
	mask[passAction] = !any
	return mask
}

// isTerminal reports whether neither player has a legal placement on board,
// i.e. both are reduced to passing. It is state-based, not a function of how
// the position was reached: a board can lock up via a real placement just as
// well as via a pass.
func isTerminal(board game.Board) bool {
	if !computeMask(board, player.Zero)[passAction] {
		return false
	}
	return computeMask(board, player.One)[passAction]
}

func flipRun(board game.Board, row, col, dr, dc int, me, opp player.Piece) {
	r, c := row+dr, col+dc
	for board[r*width+c] == opp {
		board[r*width+c] = me
		r += dr
		c += dc
	}
}

func winner(board game.Board) (player.Player, bool) {
	var zero, one int
	for _, p := range board {
		switch p {
		case player.PieceZero:
			zero++
		case player.PieceOne:
			one++
		}
	}
	switch {
	case zero > one:
		return player.Zero, true
	case one > zero:
		return player.One, true
	default:
		return player.Zero, false
	}
}

func (n *node) IsTerminal() bool { return n.terminal }
func (n *node) LegalActions() game.ActionMask {
	return append(game.ActionMask(nil), n.mask...)
}
func (n *node) Player() player.Player { return n.toMove }

func (n *node) Rewards() (float32, float32) {
	if !n.terminal {
		return 0, 0
	}
	w, hasWin := winner(n.board)
	if !hasWin {
		return 0, 0
	}
	if w == player.Zero {
		return 1, -1
	}
	return -1, 1
}

func (n *node) History() game.GameState {
	return game.GameState{History: []game.Board{append(game.Board(nil), n.board...)}, ToMove: n.toMove}
}

func (n *node) NextNode(a game.Action) game.Node {
	if a < 0 || a >= actionSpace || !n.mask[a] {
		panic("othello: illegal action")
	}
	newBoard := append(game.Board(nil), n.board...)
	if a != passAction {
		me := player.PieceFromPlayer(n.toMove)
		opp := otherPiece(me)
		row, col := a/width, a%width
		newBoard[a] = me
		for _, d := range eightDirs {
			if bracketsInDirection(newBoard, row, col, d[0], d[1], me, opp) {
				flipRun(newBoard, row, col, d[0], d[1], me, opp)
			}
		}
	}

	newToMove := player.Other(n.toMove)
	next := &node{board: newBoard, toMove: newToMove}
	next.mask = computeMask(newBoard, newToMove)

	if isTerminal(newBoard) {
		next.terminal = true
		for i := range next.mask {
			next.mask[i] = false
		}
	}
	return next
}

func (n *node) String() string {
	var sb strings.Builder
	for r := 0; r < width; r++ {
		for c := 0; c < width; c++ {
			sb.WriteString(n.board[r*width+c].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
