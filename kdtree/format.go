package kdtree

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Format renders the node hierarchy below c, one line per node.
func Format[P any](c Cursor[P]) string {
	tree := treeprint.NewWithRoot(nodeLabel(c))
	if !c.Leaf() {
		formatChildren(c, tree)
	}
	return tree.String()
}

func formatChildren[P any](c Cursor[P], tree treeprint.Tree) {
	for _, child := range []Cursor[P]{c.Left(), c.Right()} {
		if child.Leaf() {
			tree.AddNode(nodeLabel(child))
			continue
		}
		formatChildren(child, tree.AddBranch(nodeLabel(child)))
	}
}

func nodeLabel[P any](c Cursor[P]) string {
	if c.Leaf() {
		return fmt.Sprintf("leaf n=%d [%g,%g]", c.Count(), c.Min(), c.Max())
	}
	return fmt.Sprintf("split axis=%d at %g n=%d [%g,%g]",
		c.SplitAxis(), c.SplitPosition(), c.Count(), c.Min(), c.Max())
}

// String renders the whole tree.
func (t *Tree[P]) String() string {
	return fmt.Sprintf("kdtree dim=%d points=%d hidden=%d bound=%v\n%s",
		t.dim, t.Points(), t.hidden.Len(), t.bound, Format(t.Root()))
}
