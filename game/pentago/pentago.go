// Package pentago implements Pentago: a 6x6 board split into four 3x3
// quadrants. A move places a piece on any empty cell and then rotates one
// of the four quadrants 90 degrees clockwise or counterclockwise. Five in a
// row, in any of the four line directions, wins.
package pentago

import (
	"strings"

	"github.com/sprl-go/sprl/game"
	"github.com/sprl-go/sprl/player"
)

const (
	width = 6
	cells = width * width

	// Action = pos*8 + quadrant*2 + direction: 36 placement cells, each
	// crossed with 4 quadrants and 2 rotation directions.
	actionSpace = cells * 8
	historyLen  = 1
)

func decodeAction(a int) (pos, quadrant, dir int) {
	pos = a / 8
	rem := a % 8
	return pos, rem / 2, rem % 2
}

func quadrantBase(q int) (int, int) {
	switch q {
	case 0:
		return 0, 0
	case 1:
		return 0, 3
	case 2:
		return 3, 0
	case 3:
		return 3, 3
	default:
		panic("pentago: invalid quadrant")
	}
}

type node struct {
	board    game.Board
	toMove   player.Player
	winner   player.Player
	hasWin   bool
	terminal bool
	mask     game.ActionMask
}

// Rules is the Pentago ruleset.
type Rules struct{}

// NewRules constructs the Pentago ruleset.
func NewRules() Rules { return Rules{} }

func (Rules) StartNode() game.Node {
	board := make(game.Board, cells)
	for i := range board {
		board[i] = player.Empty
	}
	n := &node{board: board, toMove: player.Zero}
	n.mask = computeMask(board)
	return n
}

func (Rules) ActionSpace() int   { return actionSpace }
func (Rules) HistoryLength() int { return historyLen }
func (Rules) BoardSize() int     { return cells }
func (Rules) Rows() int          { return width }
func (Rules) Cols() int          { return width }
func (Rules) MaxPlies() int      { return cells }
func (Rules) Name() string       { return "pentago" }

func computeMask(board game.Board) game.ActionMask {
	mask := make(game.ActionMask, actionSpace)
	for pos := 0; pos < cells; pos++ {
		if board[pos] != player.Empty {
			continue
		}
		for quadrant := 0; quadrant < 4; quadrant++ {
			for dir := 0; dir < 2; dir++ {
				mask[pos*8+quadrant*2+dir] = true
			}
		}
	}
	return mask
}

func rotateQuadrant(board game.Board, quadrant, dir int) {
	baseRow, baseCol := quadrantBase(quadrant)
	var tmp [3][3]player.Piece
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			tmp[r][c] = board[(baseRow+r)*width+(baseCol+c)]
		}
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var nr, nc int
			if dir == 0 { // clockwise
				nr, nc = c, 2-r
			} else { // counterclockwise
				nr, nc = 2-c, r
			}
			board[(baseRow+nr)*width+(baseCol+nc)] = tmp[r][c]
		}
	}
}

var fiveDirs = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

func hasFiveInRow(board game.Board, p player.Piece) bool {
	for r := 0; r < width; r++ {
		for c := 0; c < width; c++ {
			if board[r*width+c] != p {
				continue
			}
			for _, d := range fiveDirs {
				count := 1
				rr, cc := r+d[0], c+d[1]
				for rr >= 0 && rr < width && cc >= 0 && cc < width && board[rr*width+cc] == p {
					count++
					rr += d[0]
					cc += d[1]
				}
				if count >= 5 {
					return true
				}
			}
		}
	}
	return false
}

func boardFull(board game.Board) bool {
	for _, p := range board {
		if p == player.Empty {
			return false
		}
	}
	return true
}

func (n *node) IsTerminal() bool { return n.terminal }
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

// NextNode implements the decided resolution of the spec's Pentago
// immediate-win open question: if placing the piece already completes five
// in a row, the mandatory quadrant rotation is skipped rather than applied
// (a rotation that would un-make the win never happens).
func (n *node) NextNode(a game.Action) game.Node {
	if a < 0 || a >= actionSpace || !n.mask[a] {
		panic("pentago: illegal action")
	}
	pos, quadrant, dir := decodeAction(a)
	if n.board[pos] != player.Empty {
		panic("pentago: illegal action")
	}
	newBoard := append(game.Board(nil), n.board...)
	piece := player.PieceFromPlayer(n.toMove)
	newBoard[pos] = piece

	if !hasFiveInRow(newBoard, piece) {
		rotateQuadrant(newBoard, quadrant, dir)
	}

	zeroWins := hasFiveInRow(newBoard, player.PieceZero)
	oneWins := hasFiveInRow(newBoard, player.PieceOne)

	next := &node{board: newBoard, toMove: player.Other(n.toMove)}
	next.mask = computeMask(newBoard)

	switch {
	case zeroWins && oneWins:
		next.terminal = true
	case zeroWins:
		next.terminal = true
		next.hasWin = true
		next.winner = player.Zero
	case oneWins:
		next.terminal = true
		next.hasWin = true
		next.winner = player.One
	case boardFull(newBoard):
		next.terminal = true
	}
	if next.terminal {
		for i := range next.mask {
			next.mask[i] = false
		}
	}
	return next
}

func (n *node) String() string {
	var sb strings.Builder
	for r := width - 1; r >= 0; r-- {
		for c := 0; c < width; c++ {
			sb.WriteString(n.board[r*width+c].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
