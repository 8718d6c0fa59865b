package go7

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sprl-go/sprl/player"
)

func TestStartNodeLegalEverywhere(t *testing.T) {
	rules := NewRules()
	n := rules.StartNode()
	mask := n.LegalActions()
	assert.Len(t, mask, actionSpace)
	for c := 0; c < boardSize; c++ {
		assert.True(t, mask[c])
	}
	assert.True(t, mask[passAction])
}

func TestSingleStoneSuicideIsIllegal(t *testing.T) {
	rules := NewRules()
	n := rules.StartNode()
	// Surround corner cell 0 (row0,col0) with One's stones at its two
	// neighbors, then Zero playing at 0 would have zero liberties and no
	// capture, so it must be illegal.
	n = n.NextNode(passAction) // Zero passes
	n = n.NextNode(1)          // One plays neighbor (0,1)
	n = n.NextNode(passAction) // Zero passes
	n = n.NextNode(width)      // One plays neighbor (1,0)

	mask := n.LegalActions()
	assert.False(t, mask[0])
}

func TestCaptureRemovesGroupAndRestoresLiberties(t *testing.T) {
	// Zero surrounds One's lone stone at cell 1 (row0,col1): Zero plays
	// 0, 2, and width+1 (the three empty neighbors of cell 1), with One
	// placing a stone at 1 first and passing elsewhere meanwhile.
	rules := NewRules()
	g := rules.StartNode()
	g = g.NextNode(passAction) // Zero passes
	g = g.NextNode(1)          // One plays cell 1
	g = g.NextNode(0)          // Zero plays cell 0 (neighbor of 1)
	g = g.NextNode(passAction) // One passes
	g = g.NextNode(2)          // Zero plays cell 2 (neighbor of 1)
	g = g.NextNode(passAction) // One passes
	g = g.NextNode(width + 1)  // Zero plays cell width+1 (neighbor of 1), capturing cell 1
	gn := g.(*node)
	assert.Equal(t, player.Empty, gn.board[1])
	// Each capturing stone regains cell 1 as a liberty: cell 0 now has
	// {1, width}, cell 2 has {1, 3, width+2}, cell width+1 has all four.
	assert.Equal(t, 2, gn.libOf(0))
	assert.Equal(t, 3, gn.libOf(2))
	assert.Equal(t, 4, gn.libOf(width+1))
}

func TestDoublePassScoresByAreaPlusKomi(t *testing.T) {
	rules := NewRules()
	n := rules.StartNode()
	n = n.NextNode(passAction)
	n = n.NextNode(passAction)
	assert.True(t, n.IsTerminal())
	r0, r1 := n.Rewards()
	// An empty board scores entirely as neutral territory (it borders
	// both colors nowhere since there are no stones at all... in fact
	// with no stones, every empty region borders no color, so neither
	// side gets territory); One wins on komi alone.
	assert.Equal(t, float32(-1), r0)
	assert.Equal(t, float32(1), r1)
}

func TestHistorySetGrowsWithEachPlacement(t *testing.T) {
	// historySet, the superko record, must contain the current hash
	// immediately at start, and grow by one entry for each stone placed
	// (a pass repeats the current position and adds none).
	rules := NewRules()
	n := rules.StartNode().(*node)
	assert.Len(t, n.historySet, 1)
	n2 := n.NextNode(0).(*node)
	assert.Len(t, n2.historySet, 2)
}

func TestMaxPliesMatchesInternalSafetyBound(t *testing.T) {
	rules := NewRules()
	assert.Equal(t, 2*boardSize, rules.MaxPlies())
}
