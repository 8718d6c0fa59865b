// Package go7 implements 7x7 Go with Tromp-Taylor scoring: stone groups are
// tracked incrementally with a union-find, liberties are counted per group,
// position repetition is forbidden via positional superko (a Zobrist hash
// history set), and the game ends after two consecutive passes, scored by
// area plus komi for One; an exact tie is a draw.
package go7

import (
	"strings"

	"github.com/sprl-go/sprl/game"
	"github.com/sprl-go/sprl/player"
)

const (
	width       = 7
	boardSize   = width * width
	passAction  = boardSize
	actionSpace = boardSize + 1
	historyLen  = 8

	// Komi is the compensation added to One's area score, matching the
	// original engine's GO_KOMI. It is a whole number, so an exact tie
	// (and therefore a draw) remains possible.
	Komi float32 = 9.0

	// maxPlies bounds game length defensively; real games end via double
	// pass long before this.
	maxPlies = 2 * boardSize
)

func neighbors(c int) []int {
	row, col := c/width, c%width
	out := make([]int, 0, 4)
	if row > 0 {
		out = append(out, c-width)
	}
	if row < width-1 {
		out = append(out, c+width)
	}
	if col > 0 {
		out = append(out, c-1)
	}
	if col < width-1 {
		out = append(out, c+1)
	}
	return out
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

type node struct {
	board      [boardSize]player.Piece
	dsu        dsu
	liberties  [boardSize]int
	compHash   [boardSize]uint64
	hash       uint64
	historySet map[uint64]struct{}
	depth      int
	toMove     player.Player
	lastWasPass bool

	hasWin   bool
	winner   player.Player
	terminal bool
	mask     game.ActionMask
	history  []game.Board
}

func boardSnapshot(b [boardSize]player.Piece) game.Board {
	out := make(game.Board, boardSize)
	copy(out, b[:])
	return out
}

func (n *node) libOf(c int) int          { return n.liberties[n.dsu.find(c)] }
func (n *node) setLibOf(c, v int)        { n.liberties[n.dsu.find(c)] = v }
func (n *node) addLibOf(c, delta int)    { n.liberties[n.dsu.find(c)] += delta }
func (n *node) hashOf(c int) uint64      { return n.compHash[n.dsu.find(c)] }
func (n *node) setHashOf(c int, v uint64) { n.compHash[n.dsu.find(c)] = v }

// computeLiberties walks the stone group containing c via BFS and counts
// its distinct empty neighbor cells.
func (n *node) computeLiberties(c int) int {
	p := n.board[c]
	if p == player.Empty {
		return 0
	}
	visited := make(map[int]bool)
	queue := []int{c}
	visited[c] = true
	liberties := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range neighbors(cur) {
			switch {
			case n.board[nb] == p:
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			case n.board[nb] == player.Empty:
				if !visited[nb] {
					visited[nb] = true
					liberties++
				}
			}
		}
	}
	return liberties
}

// clearComponent removes the captured group containing c (color p) from
// the board, recursively following same-color neighbors, and restores one
// liberty to each adjacent opposing group for the cell it frees up.
func (n *node) clearComponent(c int, p player.Player) {
	n.board[c] = player.Empty
	n.dsu.parent[c] = c
	n.liberties[c] = 0
	n.compHash[c] = 0

	mine := player.PieceFromPlayer(p)
	var oppGroups []int
	for _, nb := range neighbors(c) {
		switch n.board[nb] {
		case player.Empty:
			// no-op
		case mine:
			n.clearComponent(nb, p)
		default:
			g := n.dsu.find(nb)
			if containsInt(oppGroups, g) {
				continue
			}
			oppGroups = append(oppGroups, g)
			n.liberties[g]++
		}
	}
}

// placePiece plays p's stone at c: merges it with same-color neighboring
// groups, recomputes liberties for the merged group, decrements liberties
// of adjacent opposing groups, and captures any of them that reach zero
// liberties. The running Zobrist hash is updated incrementally and the
// new hash is recorded in the superko history set.
func (n *node) placePiece(c int, p player.Player) {
	piece := player.PieceFromPlayer(p)
	n.board[c] = piece

	newHash := pieceHash(c, p)
	for _, nb := range neighbors(c) {
		if n.board[nb] == piece {
			if n.dsu.same(nb, c) {
				continue
			}
			newHash ^= n.hashOf(nb)
			n.dsu.union(nb, c)
		}
	}
	n.setHashOf(c, newHash)
	n.setLibOf(c, n.computeLiberties(c))

	stateHashUpdate := pieceHash(c, p)
	opp := player.Other(p)
	oppPiece := player.PieceFromPlayer(opp)
	var oppGroups []int
	for _, nb := range neighbors(c) {
		if n.board[nb] != oppPiece {
			continue
		}
		g := n.dsu.find(nb)
		if containsInt(oppGroups, g) {
			continue
		}
		oppGroups = append(oppGroups, g)
		n.addLibOf(g, -1)
		if n.libOf(g) == 0 {
			stateHashUpdate ^= n.hashOf(g)
			n.clearComponent(g, opp)
		}
	}
	n.hash ^= stateHashUpdate
	n.historySet[n.hash] = struct{}{}
}

// isLegalPlacement checks suicide (the placement and any captures it makes
// must leave the played group with at least one liberty) and positional
// superko (the resulting hash must not repeat any hash already in the
// current path's history set).
func (n *node) isLegalPlacement(c int, p player.Player) bool {
	if n.board[c] != player.Empty {
		return false
	}
	newHash := n.hash ^ pieceHash(c, p)
	hasLiberty := false
	opp := player.Other(p)
	myPiece := player.PieceFromPlayer(p)
	oppPiece := player.PieceFromPlayer(opp)
	var oppGroups []int
	for _, nb := range neighbors(c) {
		switch n.board[nb] {
		case player.Empty:
			hasLiberty = true
		case myPiece:
			if n.libOf(nb) > 1 {
				hasLiberty = true
			}
		case oppPiece:
			if n.libOf(nb) == 1 {
				hasLiberty = true
				g := n.dsu.find(nb)
				if !containsInt(oppGroups, g) {
					oppGroups = append(oppGroups, g)
					newHash ^= n.hashOf(nb)
				}
			}
		}
	}
	if !hasLiberty {
		return false
	}
	_, seen := n.historySet[newHash]
	return !seen
}

func (n *node) computeActionMask() game.ActionMask {
	mask := make(game.ActionMask, actionSpace)
	for c := 0; c < boardSize; c++ {
		if n.board[c] == player.Empty {
			mask[c] = n.isLegalPlacement(c, n.toMove)
		}
	}
	mask[passAction] = true
	return mask
}

// countTerritory implements Tromp-Taylor scoring: each player's score is
// their stones on the board plus every empty region that borders only
// their color.
func (n *node) countTerritory() (zero, one int) {
	visited := make([]bool, boardSize)
	for i := 0; i < boardSize; i++ {
		switch n.board[i] {
		case player.PieceZero:
			zero++
			continue
		case player.PieceOne:
			one++
			continue
		}
		if visited[i] {
			continue
		}
		queue := []int{i}
		visited[i] = true
		count := 0
		couldBeZero, couldBeOne := true, true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			count++
			for _, nb := range neighbors(cur) {
				switch n.board[nb] {
				case player.PieceZero:
					couldBeOne = false
				case player.PieceOne:
					couldBeZero = false
				default:
					if !visited[nb] {
						visited[nb] = true
						queue = append(queue, nb)
					}
				}
			}
		}
		if couldBeZero && !couldBeOne {
			zero += count
		}
		if couldBeOne && !couldBeZero {
			one += count
		}
	}
	return zero, one
}

func (n *node) cloneFields() *node {
	c := &node{}
	c.board = n.board
	c.dsu = n.dsu
	c.liberties = n.liberties
	c.compHash = n.compHash
	c.hash = n.hash
	c.historySet = make(map[uint64]struct{}, len(n.historySet)+1)
	for k := range n.historySet {
		c.historySet[k] = struct{}{}
	}
	c.toMove = n.toMove
	c.depth = n.depth
	return c
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
	if !n.hasWin {
		return 0, 0
	}
	if n.winner == player.Zero {
		return 1, -1
	}
	return -1, 1
}

func (n *node) History() game.GameState {
	return game.GameState{History: n.history, ToMove: n.toMove}
}

func (n *node) NextNode(a game.Action) game.Node {
	if a < 0 || a >= actionSpace || !n.mask[a] {
		panic("go7: illegal action")
	}
	clone := n.cloneFields()
	wasPass := a == passAction
	if !wasPass {
		clone.placePiece(a, n.toMove)
	}
	clone.toMove = player.Other(n.toMove)
	clone.depth = n.depth + 1
	clone.lastWasPass = wasPass

	newHist := make([]game.Board, 0, historyLen)
	newHist = append(newHist, boardSnapshot(clone.board))
	for i := 0; i < len(n.history) && len(newHist) < historyLen; i++ {
		newHist = append(newHist, n.history[i])
	}
	clone.history = newHist

	doublePass := wasPass && n.lastWasPass
	reachedBound := clone.depth >= maxPlies
	if doublePass || reachedBound {
		clone.terminal = true
		z, o := clone.countTerritory()
		scoreZero := float32(z)
		scoreOne := float32(o) + Komi
		switch {
		case scoreZero > scoreOne:
			clone.hasWin = true
			clone.winner = player.Zero
		case scoreOne > scoreZero:
			clone.hasWin = true
			clone.winner = player.One
		}
		clone.mask = make(game.ActionMask, actionSpace)
	} else {
		clone.mask = clone.computeActionMask()
	}
	return clone
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
