// Package search implements a batched PUCT (polynomial upper confidence
// tree) search: many simultaneous traversals are collected into a pending
// buffer, reserved with a virtual loss, and resolved together in one
// evaluator call, amortizing the cost of an expensive policy/value oracle.
package search

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/rand"

	"github.com/sprl-go/sprl/game"
	"github.com/sprl-go/sprl/player"
	"github.com/sprl-go/sprl/symmetry"
)

// pendingLeaf is one not-yet-evaluated leaf enqueued for the next batch
// flush, together with every traversal path that reached it before
// resolution (repeats counts duplicate reservations of the same leaf).
type pendingLeaf struct {
	leaf       *node
	path       []*node
	actions    []int
	repeats    int
	symApplied int // -1 if no symmetry was applied
}

// Tree is a single-threaded batched PUCT search tree over one game line.
type Tree struct {
	cfg Config
	sym symmetry.Symmetrizer // nil disables state/policy symmetrization

	root             *node
	pending          []*pendingLeaf
	rootNoiseApplied bool
	nonFiniteCount   uint64

	rng *rand.Rand
}

// New builds a tree rooted at root. sym may be nil; it is consulted only
// when cfg.SymmetrizeState is set.
func New(root game.Node, cfg Config, sym symmetry.Symmetrizer, rng *rand.Rand) *Tree {
	return &Tree{
		cfg:  cfg,
		sym:  sym,
		root: newNode(root, nil, 0),
		rng:  rng,
	}
}

// RootVisits returns a copy of the root's per-action visit counts.
func (t *Tree) RootVisits() []uint32 {
	return append([]uint32(nil), t.root.edges.N...)
}

// RootPriors returns a copy of the root's per-action prior probabilities
// (post-noise-mix, if noise was added).
func (t *Tree) RootPriors() []float32 {
	return append([]float32(nil), t.root.edges.P...)
}

// NonFiniteCount reports how many evaluator results this tree has had to
// discard (NaN/Inf policy or value) in favor of a uniform fallback.
func (t *Tree) NonFiniteCount() uint64 { return t.nonFiniteCount }

// RootGameNode exposes the underlying game position at the root.
func (t *Tree) RootGameNode() game.Node { return t.root.gameNode }

// RunSearch performs up to budget traversals (it may exceed budget by at
// most MaxBatchSize-1 while a final in-flight batch drains) against ev.
func (t *Tree) RunSearch(budget int, ev Evaluator) error {
	// An unevaluated root is evaluated first, outside the budget: that
	// evaluation steps through no edge, so every counted traversal below
	// adds one root visit.
	if !t.root.evaluated && !t.root.gameNode.IsTerminal() {
		if !t.root.pending {
			t.enqueue(t.root, []*node{t.root}, nil)
		}
		if err := t.flush(ev); err != nil {
			return err
		}
	}
	traversals := 0
	for traversals < budget {
		terminal, addedNew := t.descend()
		traversals++
		if len(t.pending) >= t.cfg.MaxBatchSize || (!addedNew && !terminal) {
			if len(t.pending) > 0 {
				if err := t.flush(ev); err != nil {
					return err
				}
			}
		}
	}
	for len(t.pending) > 0 {
		if err := t.flush(ev); err != nil {
			return err
		}
	}
	return nil
}

// Reroot makes the child reached by action a the new root, discarding
// every sibling subtree (they become unreachable and are garbage
// collected) while keeping the chosen child's accumulated statistics.
func (t *Tree) Reroot(a int) {
	mask := t.root.gameNode.LegalActions()
	if a < 0 || a >= len(mask) || !mask[a] {
		panic("search: reroot on illegal action")
	}
	child := t.root.children[a]
	if child == nil {
		child = t.materializeChild(t.root, a)
	}
	child.parent = nil
	child.parentAction = 0
	t.root = child
	t.rootNoiseApplied = child.evaluated
}

func rewardForSideToMove(n game.Node) float32 {
	r0, r1 := n.Rewards()
	if n.Player() == player.Zero {
		return r0
	}
	return r1
}

func (t *Tree) descend() (terminal, addedNew bool) {
	cur := t.root
	path := []*node{cur}
	var actions []int
	for {
		if cur.gameNode.IsTerminal() {
			value := rewardForSideToMove(cur.gameNode)
			t.backup(path, actions, value)
			return true, false
		}
		if !cur.evaluated {
			if cur.pending {
				t.pending[cur.pendingIdx].repeats++
				t.applyVirtualLoss(path, actions)
				return false, false
			}
			t.enqueue(cur, path, actions)
			t.applyVirtualLoss(path, actions)
			return false, true
		}
		a := t.selectAction(cur)
		actions = append(actions, a)
		child := cur.children[a]
		if child == nil {
			child = t.materializeChild(cur, a)
		}
		path = append(path, child)
		cur = child
	}
}

func (t *Tree) materializeChild(parent *node, a int) *node {
	childGameNode := parent.gameNode.NextNode(a)
	child := newNode(childGameNode, parent, a)
	parent.children[a] = child
	return child
}

func (t *Tree) qValue(n *node, a int) float32 {
	N := n.edges.N[a]
	if N == 0 {
		switch t.cfg.InitQMethod {
		case ParentNNEval:
			return n.cachedValue
		case ParentLiveQ:
			return t.liveQ(n)
		default:
			return 0
		}
	}
	W := n.edges.W[a]
	if t.cfg.TrueQAvg {
		return W / float32(N)
	}
	return W / float32(N+1)
}

func (t *Tree) liveQ(n *node) float32 {
	var totalW float32
	var totalN uint32
	for a := range n.edges.N {
		totalN += n.edges.N[a]
		totalW += n.edges.W[a]
	}
	if totalN == 0 {
		return n.cachedValue
	}
	return totalW / float32(totalN)
}

// selectAction implements score(a) = Q(a) + c_puct*P(a)*sqrt(N_n)/(1+N[a])
// over legal actions, breaking ties toward the lowest action index.
func (t *Tree) selectAction(n *node) int {
	mask := n.gameNode.LegalActions()
	var parentVisits uint32
	for a, legal := range mask {
		if legal {
			parentVisits += n.edges.N[a]
		}
	}
	sq := math32.Sqrt(float32(parentVisits))
	best := -1
	bestScore := float32(math32.Inf(-1))
	for a, legal := range mask {
		if !legal {
			continue
		}
		q := t.qValue(n, a)
		u := t.cfg.PUCT * n.edges.P[a] * sq / (1 + float32(n.edges.N[a]))
		score := q + u
		if score > bestScore {
			bestScore = score
			best = a
		}
	}
	return best
}

func (t *Tree) applyVirtualLoss(path []*node, actions []int) {
	for i, a := range actions {
		p := path[i]
		p.edges.N[a]++
		p.edges.W[a] -= t.cfg.VirtualLoss
	}
}

// backup adds value (from the side to move at the end of path) to every
// edge on path, each from that edge's parent's perspective: the edge into
// the leaf gets -value, and the sign flips at each step up.
func (t *Tree) backup(path []*node, actions []int, value float32) {
	v := -value
	for i := len(actions) - 1; i >= 0; i-- {
		p := path[i]
		a := actions[i]
		p.edges.N[a]++
		p.edges.W[a] += v
		v = -v
	}
}

func (t *Tree) enqueue(n *node, path []*node, actions []int) {
	n.pending = true
	n.pendingIdx = len(t.pending)
	t.pending = append(t.pending, &pendingLeaf{
		leaf:       n,
		path:       append([]*node(nil), path...),
		actions:    append([]int(nil), actions...),
		repeats:    1,
		symApplied: -1,
	})
}

func (t *Tree) flush(ev Evaluator) error {
	if len(t.pending) == 0 {
		return nil
	}
	batch := make([]game.GameState, len(t.pending))
	for i, p := range t.pending {
		state := p.leaf.gameNode.History()
		if t.cfg.SymmetrizeState && t.sym != nil {
			g := t.rng.Intn(t.sym.Count())
			state = t.sym.ApplyState(state, []int{g})[0]
			p.symApplied = g
		}
		batch[i] = state
	}

	results, err := ev.Evaluate(batch)
	if err != nil {
		return err
	}

	for i, res := range results {
		p := t.pending[i]
		n := p.leaf
		policy := res.Policy
		value := res.Value
		if !finite(value) || !allFinite(policy) {
			policy = uniformLegal(n.gameNode.LegalActions())
			value = 0
			t.nonFiniteCount++
		}
		if p.symApplied >= 0 {
			inv := t.sym.Inverse(p.symApplied)
			policy = t.sym.ApplyDist(policy, []int{inv})[0]
		}
		policy = maskAndRenormalize(policy, n.gameNode.LegalActions())
		if n.parent == nil && !t.rootNoiseApplied && t.cfg.AddNoise {
			policy = mixDirichlet(policy, n.gameNode.LegalActions(), t.cfg, t.rng)
			t.rootNoiseApplied = true
		}

		n.cachedPolicy = policy
		n.cachedValue = value
		n.evaluated = true
		copy(n.edges.P, policy)
		n.pending = false
		n.pendingIdx = -1

		t.backupLeaf(p, value)
	}
	t.pending = t.pending[:0]
	return nil
}

// backupLeaf undoes the virtual-loss reservations recorded for a resolved
// leaf and backs up the real evaluated value once per repeat, so that W
// ends up exactly where it would be had each repeated traversal been run
// fully sequentially (see Config.VirtualLoss).
func (t *Tree) backupLeaf(p *pendingLeaf, value float32) {
	for r := 0; r < p.repeats; r++ {
		v := -value
		for i := len(p.actions) - 1; i >= 0; i-- {
			parent := p.path[i]
			a := p.actions[i]
			parent.edges.W[a] += v + t.cfg.VirtualLoss
			v = -v
		}
	}
}
