// Package game defines the capability interfaces shared by every board game
// engine (Connect Four, Pentago, Othello, 7x7 Go): a Rules value constructs
// the start position, and a Node is one immutable position in the game tree.
package game

import "github.com/sprl-go/sprl/player"

// Action indexes into a game's fixed action space.
type Action = int

// ActionMask reports, for every action in [0, ActionSpace), whether it is
// legal in the position it was computed from.
type ActionMask []bool

// Board is a flattened row-major grid of piece occupancy (or, for non-grid
// bookkeeping, any game-specific flat encoding a Node chooses to expose).
type Board []player.Piece

// GameState is the tuple a Node exposes to the outside world: the ordered
// history of boards (most recent first, oldest last, truncated to the
// game's HistoryLength) plus whose turn it is.
type GameState struct {
	History []Board
	ToMove  player.Player
}

// Node is one position in a game tree. Nodes are immutable: NextNode always
// returns a new Node, never mutates the receiver.
type Node interface {
	// IsTerminal reports whether the game has ended at this position.
	IsTerminal() bool

	// LegalActions returns the action mask for the player to move.
	LegalActions() ActionMask

	// NextNode applies action a and returns the resulting position. It
	// panics if a is not legal; callers must consult LegalActions first.
	NextNode(a Action) Node

	// Rewards returns the terminal reward for Zero and for One. Both are
	// zero before the game has ended or in case of a draw.
	Rewards() (r0, r1 float32)

	// History returns the board history and side to move.
	History() GameState

	// Player returns whose turn it is at this node.
	Player() player.Player

	String() string
}

// Rules constructs positions for one game and describes its fixed
// dimensions.
type Rules interface {
	// StartNode returns the initial position.
	StartNode() Node

	// ActionSpace is the fixed number of actions, A.
	ActionSpace() int

	// HistoryLength is the number of past boards, H, retained in
	// GameState.History (including the current board).
	HistoryLength() int

	// BoardSize is the number of cells in one board (Rows*Cols).
	BoardSize() int

	// Rows and Cols are the board's grid dimensions, for encoding a
	// flat Board back into a [Rows, Cols] array.
	Rows() int
	Cols() int

	// MaxPlies bounds the length of any one game defensively: a driver
	// stops playing out a line once the ply count exceeds this, even if
	// no Node ever reports IsTerminal. Real games are expected to end
	// well before this bound.
	MaxPlies() int

	// Name identifies the game, e.g. for config/output file naming.
	Name() string
}
