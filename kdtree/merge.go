package kdtree

import (
	"github.com/forestrie/go-pointkdtree/arena"
)

// Merge collapses the whole tree into a single leaf holding every point.
func (t *Tree[P]) Merge() {
	t.MergeAt(t.Root())
}

// MergeAt collapses the subtree below an intermediate node into a single
// leaf. The node keeps its identity, its descendants are freed. Merging a
// leaf does nothing.
func (t *Tree[P]) MergeAt(c Cursor[P]) {
	t.mustOwn(c)
	t.update()
	n := t.node(c.ref)
	if n.kind == KindLeaf {
		return
	}
	left, right := n.left, n.right
	freed := t.freeSubtree(left) + t.freeSubtree(right)

	n = t.node(c.ref)
	n.kind = KindLeaf
	n.left, n.right = arena.NoRef, arena.NoRef
	n.splitAxis, n.splitPosition = 0, 0
	n.prevMin, n.prevMax = 0, 0
	t.leaves -= freed - 1
	t.setLeaf(c.ref)
	t.debugf("merge: freed %d leaves, %d leaves remain", freed, t.leaves)
}

// freeSubtree releases a node and its descendants and returns the number of
// leaves released.
func (t *Tree[P]) freeSubtree(ref arena.Ref) int {
	n := t.node(ref)
	leaves := 1
	if n.kind == KindIntermediate {
		left, right := n.left, n.right
		leaves = t.freeSubtree(left) + t.freeSubtree(right)
	}
	t.nodes.Free(ref)
	return leaves
}
