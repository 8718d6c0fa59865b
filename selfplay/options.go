package selfplay

// Options controls one self-play driver's move-selection policy: how hard
// to search each move and how to turn visit counts into a move choice.
type Options struct {
	// UCTTraversals is the search budget (in tree traversals) for a
	// normal move.
	UCTTraversals int

	// SymmetrizeData emits one training example per symmetry-group
	// element instead of just one, using the driver's Symmetrizer.
	SymmetrizeData bool

	// FastPlayoutProb is the chance, in [0, 1], of using a cheaper
	// "fast playout" for a given move instead of the full search budget.
	FastPlayoutProb float32

	// FastPlayoutFactor scales UCTTraversals down for a fast playout,
	// in [0, 1].
	FastPlayoutFactor float32

	// EarlyGameCutoff is the ply count below which EarlyGameExp applies
	// instead of RestGameExp.
	EarlyGameCutoff int

	// EarlyGameExp and RestGameExp are the visit-count exponents used to
	// turn root visit counts into a sampling distribution:
	// pi(a) = N(a)^exp / sum_b N(b)^exp. A larger exponent sharpens the
	// distribution toward the most-visited action.
	EarlyGameExp float32
	RestGameExp  float32

	// ForcedPlayouts and PolicyTargetPruning affect only the recorded
	// training target, never which move is actually played: the move is
	// always sampled from the raw root visit distribution. When either
	// is set, each non-best action's estimated forced-playout floor is
	// subtracted from its visit count (see policyTarget) before the
	// target distribution is built. Neither flag changes the search
	// itself: no playouts are forced at the root.
	ForcedPlayouts      bool
	PolicyTargetPruning bool
}

// DefaultOptions matches the original engine's self-play defaults.
func DefaultOptions() Options {
	return Options{
		UCTTraversals:       200,
		SymmetrizeData:      true,
		FastPlayoutProb:     0,
		FastPlayoutFactor:   1,
		EarlyGameCutoff:     15,
		EarlyGameExp:        0.98,
		RestGameExp:         10.0,
		ForcedPlayouts:      false,
		PolicyTargetPruning: false,
	}
}
