package connectfour

import "github.com/sprl-go/sprl/game"

// Mirror is the order-2 reflection group of a Connect Four board: identity
// and left-right column reversal. Unlike the square-board games, Connect
// Four has no rotational symmetry, so it gets its own symmetrizer rather
// than symmetry.D4Grid.
type Mirror struct{}

func (Mirror) Count() int { return 2 }

func (Mirror) Inverse(g int) int { return g }

func (Mirror) ApplyState(s game.GameState, gs []int) []game.GameState {
	out := make([]game.GameState, len(gs))
	for i, g := range gs {
		if g == 0 {
			hist := make([]game.Board, len(s.History))
			copy(hist, s.History)
			out[i] = game.GameState{History: hist, ToMove: s.ToMove}
			continue
		}
		hist := make([]game.Board, len(s.History))
		for t, b := range s.History {
			hist[t] = mirrorBoard(b)
		}
		out[i] = game.GameState{History: hist, ToMove: s.ToMove}
	}
	return out
}

func (Mirror) ApplyDist(d []float32, gs []int) [][]float32 {
	out := make([][]float32, len(gs))
	for i, g := range gs {
		if g == 0 {
			out[i] = append([]float32(nil), d...)
			continue
		}
		rev := make([]float32, len(d))
		for c := range d {
			rev[c] = d[len(d)-1-c]
		}
		out[i] = rev
	}
	return out
}

func mirrorBoard(b game.Board) game.Board {
	nb := make(game.Board, len(b))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			nb[idx(r, cols-1-c)] = b[idx(r, c)]
		}
	}
	return nb
}
