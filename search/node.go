package search

import "github.com/sprl-go/sprl/game"

// edgeStats holds the parent-owned per-action statistics: prior
// probability, total backed-up value, and visit count, parallel arrays
// indexed by action.
type edgeStats struct {
	P []float32
	W []float32
	N []uint32
}

func newEdgeStats(actionSpace int) edgeStats {
	return edgeStats{
		P: make([]float32, actionSpace),
		W: make([]float32, actionSpace),
		N: make([]uint32, actionSpace),
	}
}

// node is one position in the search tree. Children are owned by their
// parent; a node with no surviving reference (after Reroot drops its
// siblings) is simply garbage collected, mirroring the original engine's
// unique_ptr child ownership without needing an explicit arena/freelist.
type node struct {
	gameNode     game.Node
	parent       *node
	parentAction int
	children     []*node
	edges        edgeStats

	evaluated    bool
	pending      bool
	pendingIdx   int
	cachedValue  float32
	cachedPolicy []float32
}

func newNode(gameNode game.Node, parent *node, parentAction int) *node {
	actionSpace := len(gameNode.LegalActions())
	return &node{
		gameNode:     gameNode,
		parent:       parent,
		parentAction: parentAction,
		children:     make([]*node, actionSpace),
		edges:        newEdgeStats(actionSpace),
		pendingIdx:   -1,
	}
}
