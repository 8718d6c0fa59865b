package search

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

// DumpDOT renders the materialized portion of the tree (only children that
// have actually been visited/expanded; untouched actions are never
// materialized, see node.children) as a Graphviz DOT string, descending at
// most maxDepth edges from the root. It exists for debugging: cmd/dumptree
// calls it to print a PUCT subtree.
func (t *Tree) DumpDOT(maxDepth int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("tree"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	id := 0
	var walk func(n *node, depth int) string
	walk = func(n *node, depth int) string {
		name := fmt.Sprintf("n%d", id)
		id++
		label := fmt.Sprintf(`"visits=%d value=%.3f"`, sumN(n.edges.N), n.cachedValue)
		_ = g.AddNode("tree", name, map[string]string{"label": label})

		if depth >= maxDepth {
			return name
		}
		for a, child := range n.children {
			if child == nil {
				continue
			}
			childName := walk(child, depth+1)
			edgeLabel := fmt.Sprintf(`"a=%d N=%d"`, a, n.edges.N[a])
			_ = g.AddEdge(name, childName, true, map[string]string{"label": edgeLabel})
		}
		return name
	}
	walk(t.root, 0)

	return g.String(), nil
}

func sumN(ns []uint32) uint32 {
	var total uint32
	for _, n := range ns {
		total += n
	}
	return total
}
