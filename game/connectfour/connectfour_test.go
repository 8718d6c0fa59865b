package connectfour

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartNodeAllColumnsLegal(t *testing.T) {
	rules := NewRules()
	n := rules.StartNode()
	mask := n.LegalActions()
	assert.Len(t, mask, actionSpace)
	for _, legal := range mask {
		assert.True(t, legal)
	}
	assert.False(t, n.IsTerminal())
}

func TestVerticalWin(t *testing.T) {
	rules := NewRules()
	n := rules.StartNode()
	// Zero drops in column 0 four times in a row; One drops in column 1
	// in between so turns alternate but never blocks column 0.
	for i := 0; i < 3; i++ {
		n = n.NextNode(0)
		assert.False(t, n.IsTerminal())
		n = n.NextNode(1)
	}
	n = n.NextNode(0)
	assert.True(t, n.IsTerminal())
	r0, r1 := n.Rewards()
	assert.Equal(t, float32(1), r0)
	assert.Equal(t, float32(-1), r1)
}

func TestDrawFillsBoardWithNoWin(t *testing.T) {
	// A hand-checked sequence that fills the board without four in a row:
	// columns 0, 1, 4, 5 end up Zero/One alternating from the bottom and
	// columns 2, 3, 6 One/Zero, so no row, column or diagonal holds four.
	moves := []int{0, 2, 2, 0, 0, 2, 2, 0, 0, 2, 2, 0,
		1, 3, 3, 1, 1, 3, 3, 1, 1, 3, 3, 1,
		4, 6, 6, 4, 4, 6, 6, 4, 4, 6, 6, 4,
		5, 5, 5, 5, 5, 5}
	rules := NewRules()
	n := rules.StartNode()
	for _, a := range moves {
		if n.IsTerminal() {
			break
		}
		mask := n.LegalActions()
		if !mask[a] {
			continue
		}
		n = n.NextNode(a)
	}
	// The full board is terminal, drawn, and has an empty legal-action mask.
	assert.True(t, n.IsTerminal())
	r0, r1 := n.Rewards()
	assert.Equal(t, float32(0), r0)
	assert.Equal(t, float32(0), r1)
	for _, legal := range n.LegalActions() {
		assert.False(t, legal)
	}
}

func TestMirrorSymmetryMatchesReflectedColumn(t *testing.T) {
	rules := NewRules()
	n := rules.StartNode().NextNode(2)
	state := n.History()

	mirror := Mirror{}
	mirrored := mirror.ApplyState(state, []int{1})[0]

	orig := state.History[0]
	refl := mirrored.History[0]
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			assert.Equal(t, orig[idx(r, c)], refl[idx(r, cols-1-c)])
		}
	}

	dist := make([]float32, actionSpace)
	dist[2] = 1
	mirroredDist := mirror.ApplyDist(dist, []int{1})[0]
	assert.Equal(t, float32(1), mirroredDist[cols-1-2])
}

func TestMirrorIdentityRoundTrips(t *testing.T) {
	rules := NewRules()
	n := rules.StartNode().NextNode(3)
	state := n.History()
	mirror := Mirror{}
	same := mirror.ApplyState(state, []int{0})[0]
	assert.Equal(t, state.History, same.History)
}

func TestMaxPliesIsBoardSize(t *testing.T) {
	rules := NewRules()
	assert.Equal(t, rows*cols, rules.MaxPlies())
}
