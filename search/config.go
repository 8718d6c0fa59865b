package search

// InitQMethod selects how an edge's Q-value is seeded before it has ever
// been visited (N[a] == 0), where the ordinary W[a]/(1+N[a]) formula would
// otherwise always read zero regardless of how promising the move looks.
type InitQMethod int

const (
	// ZeroQ leaves unvisited edges at Q=0 (the plain formula's natural
	// value; no override).
	ZeroQ InitQMethod = iota
	// ParentNNEval seeds unvisited edges with the parent's own cached
	// network value.
	ParentNNEval
	// ParentLiveQ seeds unvisited edges with the parent's current live
	// mean value across all of its visited edges.
	ParentLiveQ
)

// Config holds every tunable of the PUCT search, matching the original
// engine's UCTOptions one-to-one.
type Config struct {
	// PUCT is c_puct, the exploration-weight constant in the PUCT score.
	PUCT float32

	// VirtualLoss is the magnitude subtracted from W (and implicitly
	// added to N) along a path when a leaf is reserved for a pending
	// batch evaluation, discouraging other traversals from immediately
	// piling onto the same leaf.
	VirtualLoss float32

	// MaxBatchSize is the number of pending leaves that triggers an
	// eager evaluator flush, even if more budget remains.
	MaxBatchSize int

	// AddNoise mixes Dirichlet noise into the root's prior distribution
	// on its first evaluation.
	AddNoise bool

	// DirEps and DirAlpha parameterize the root noise mix:
	// P'(a) = (1-DirEps)*P(a) + DirEps*Dirichlet(DirAlpha).
	DirEps   float32
	DirAlpha float32

	// SymmetrizeState randomly applies one symmetry-group element to a
	// leaf's state before sending it to the evaluator (and its inverse
	// to the returned policy), when a non-nil Symmetrizer is supplied.
	SymmetrizeState bool

	// InitQMethod selects the Q seeding for unvisited edges.
	InitQMethod InitQMethod

	// TrueQAvg selects the backed-up-value averaging denominator:
	// false uses W/(N+1) (the default), true uses W/max(N,1).
	TrueQAvg bool
}

// DefaultConfig returns reasonable defaults matching the original engine's
// NodeOptions/TreeOptions.
func DefaultConfig() Config {
	return Config{
		PUCT:            1.1,
		VirtualLoss:     1.0,
		MaxBatchSize:    8,
		AddNoise:        true,
		DirEps:          0.25,
		DirAlpha:        0.2,
		SymmetrizeState: true,
		InitQMethod:     ZeroQ,
		TrueQAvg:        false,
	}
}
