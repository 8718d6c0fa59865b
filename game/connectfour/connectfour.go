// Package connectfour implements the classic 6x7 Connect Four: players drop
// pieces into columns, gravity settles them into the lowest open row, and
// four in a row (horizontally, vertically, or on either diagonal) wins.
package connectfour

import (
	"strings"

	"github.com/sprl-go/sprl/game"
	"github.com/sprl-go/sprl/player"
)

const (
	rows        = 6
	cols        = 7
	actionSpace = cols
	historyLen  = 1
)

func idx(row, col int) int { return row*cols + col }

type node struct {
	board    game.Board
	toMove   player.Player
	winner   player.Player
	hasWin   bool
	terminal bool
	mask     game.ActionMask
}

// Rules is the Connect Four ruleset.
type Rules struct{}

// NewRules constructs the Connect Four ruleset.
func NewRules() Rules { return Rules{} }

func (Rules) StartNode() game.Node {
	board := make(game.Board, rows*cols)
	for i := range board {
		board[i] = player.Empty
	}
	n := &node{board: board, toMove: player.Zero}
	n.mask = computeMask(board)
	return n
}

func (Rules) ActionSpace() int   { return actionSpace }
func (Rules) HistoryLength() int { return historyLen }
func (Rules) BoardSize() int     { return rows * cols }
func (Rules) Rows() int          { return rows }
func (Rules) Cols() int          { return cols }
func (Rules) MaxPlies() int      { return rows * cols }
func (Rules) Name() string       { return "connectfour" }

func landingRow(board game.Board, col int) (int, bool) {
	for r := 0; r < rows; r++ {
		if board[idx(r, col)] == player.Empty {
			return r, true
		}
	}
	return -1, false
}

func computeMask(board game.Board) game.ActionMask {
	mask := make(game.ActionMask, actionSpace)
	for c := 0; c < cols; c++ {
		_, ok := landingRow(board, c)
		mask[c] = ok
	}
	return mask
}

var fourDirs = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

func countDir(board game.Board, row, col, dr, dc int, p player.Piece) int {
	count := 0
	r, c := row+dr, col+dc
	for r >= 0 && r < rows && c >= 0 && c < cols && board[idx(r, c)] == p {
		count++
		r += dr
		c += dc
	}
	return count
}

func checkWin(board game.Board, row, col int, p player.Piece) bool {
	for _, d := range fourDirs {
		count := 1 + countDir(board, row, col, d[0], d[1], p) + countDir(board, row, col, -d[0], -d[1], p)
		if count >= 4 {
			return true
		}
	}
	return false
}

func boardFull(mask game.ActionMask) bool {
	for _, legal := range mask {
		if legal {
			return false
		}
	}
	return true
}

func (n *node) IsTerminal() bool       { return n.terminal }
func (n *node) LegalActions() game.ActionMask {
	return append(game.ActionMask(nil), n.mask...)
}
func (n *node) Player() player.Player { return n.toMove }

func (n *node) Rewards() (float32, float32) {
	switch {
	case !n.hasWin:
		return 0, 0
	case n.winner == player.Zero:
		return 1, -1
	default:
		return -1, 1
	}
}

func (n *node) History() game.GameState {
	return game.GameState{History: []game.Board{append(game.Board(nil), n.board...)}, ToMove: n.toMove}
}

func (n *node) NextNode(a game.Action) game.Node {
	if a < 0 || a >= actionSpace || !n.mask[a] {
		panic("connectfour: illegal action")
	}
	row, ok := landingRow(n.board, a)
	if !ok {
		panic("connectfour: illegal action")
	}
	newBoard := append(game.Board(nil), n.board...)
	piece := player.PieceFromPlayer(n.toMove)
	newBoard[idx(row, a)] = piece

	next := &node{board: newBoard, toMove: player.Other(n.toMove)}
	next.mask = computeMask(newBoard)

	if checkWin(newBoard, row, a, piece) {
		next.terminal = true
		next.hasWin = true
		next.winner = n.toMove
		for i := range next.mask {
			next.mask[i] = false
		}
	} else if boardFull(next.mask) {
		next.terminal = true
	}
	return next
}

func (n *node) String() string {
	var sb strings.Builder
	for r := rows - 1; r >= 0; r-- {
		for c := 0; c < cols; c++ {
			sb.WriteString(n.board[idx(r, c)].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
