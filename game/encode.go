package game

import "github.com/sprl-go/sprl/player"

// EncodedChannels is the channel count an encoded GameState carries for a
// game with the given history length: two binary occupancy planes per
// retained board (one for the side to move, one for the opponent) plus one
// trailing all-ones-or-all-zeros color plane.
func EncodedChannels(historyLen int) int { return 2*historyLen + 1 }

// EncodeState flattens a GameState into the channel-major float32 layout
// consumed by a policy/value network: for each of the historyLen most
// recent boards (oldest entries beyond what's available are zero-padded),
// one occupancy plane for the side to move and one for the opponent, in
// that order, followed by one color plane (all ones if Zero is to move,
// all zeros otherwise). The state's own perspective (ToMove) determines
// which piece is "mine" in every plane, so positions are always encoded
// from the mover's point of view.
func EncodeState(s GameState, historyLen, boardSize int) []float32 {
	out := make([]float32, 0, EncodedChannels(historyLen)*boardSize)
	myPiece := player.PieceFromPlayer(s.ToMove)
	oppPiece := player.PieceFromPlayer(player.Other(s.ToMove))

	for t := 0; t < historyLen; t++ {
		if t < len(s.History) {
			b := s.History[t]
			for _, piece := range [2]player.Piece{myPiece, oppPiece} {
				for _, cell := range b {
					if cell == piece {
						out = append(out, 1)
					} else {
						out = append(out, 0)
					}
				}
			}
		} else {
			for i := 0; i < 2*boardSize; i++ {
				out = append(out, 0)
			}
		}
	}

	var colorVal float32
	if s.ToMove == player.Zero {
		colorVal = 1
	}
	for i := 0; i < boardSize; i++ {
		out = append(out, colorVal)
	}
	return out
}
