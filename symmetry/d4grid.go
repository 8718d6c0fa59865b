package symmetry

import "github.com/sprl-go/sprl/game"

// D4Grid is the order-8 dihedral group of rotations and reflections of a
// Width x Width grid. It is shared by every square-board game (Othello,
// 7x7 Go); Connect Four's non-square board gets its own mirror symmetrizer,
// and Pentago has none (cmd/selfplay pairs it with a nil Symmetrizer).
//
// If the action space carries one extra trailing action beyond Width*Width
// (a pass move, as in Othello and Go), that action is fixed by every group
// element.
type D4Grid struct {
	Width int
}

// inverse table for the 8 transforms below: identity, the two diagonal
// reflections, and the point reflection (180 rotation) are each their own
// inverse; the 90 and 270 rotations invert each other.
var d4Inverse = [8]int{0, 3, 2, 1, 4, 5, 6, 7}

func (d D4Grid) Count() int { return 8 }

func (d D4Grid) Inverse(g int) int { return d4Inverse[g] }

// transform maps (row, col) through group element g.
func (d D4Grid) transform(g, r, c int) (int, int) {
	w := d.Width
	switch g {
	case 0: // identity
		return r, c
	case 1: // rotate 90
		return c, w - 1 - r
	case 2: // rotate 180
		return w - 1 - r, w - 1 - c
	case 3: // rotate 270
		return w - 1 - c, r
	case 4: // reflect across vertical axis
		return r, w - 1 - c
	case 5: // reflect across main diagonal, then rotate 180
		return w - 1 - c, w - 1 - r
	case 6: // reflect across horizontal axis
		return w - 1 - r, c
	case 7: // reflect across main diagonal
		return c, r
	default:
		panic("symmetry: invalid D4 group element")
	}
}

func (d D4Grid) ApplyState(s game.GameState, gs []int) []game.GameState {
	w := d.Width
	out := make([]game.GameState, len(gs))
	for i, g := range gs {
		hist := make([]game.Board, len(s.History))
		for t, b := range s.History {
			nb := make(game.Board, len(b))
			for r := 0; r < w; r++ {
				for c := 0; c < w; c++ {
					tr, tc := d.transform(g, r, c)
					nb[tr*w+tc] = b[r*w+c]
				}
			}
			hist[t] = nb
		}
		out[i] = game.GameState{History: hist, ToMove: s.ToMove}
	}
	return out
}

func (d D4Grid) ApplyDist(dist []float32, gs []int) [][]float32 {
	w := d.Width
	n := w * w
	out := make([][]float32, len(gs))
	for i, g := range gs {
		nd := make([]float32, len(dist))
		for r := 0; r < w; r++ {
			for c := 0; c < w; c++ {
				tr, tc := d.transform(g, r, c)
				nd[tr*w+tc] = dist[r*w+c]
			}
		}
		for a := n; a < len(dist); a++ {
			nd[a] = dist[a]
		}
		out[i] = nd
	}
	return out
}
