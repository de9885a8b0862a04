package kdtree

import (
	"github.com/forestrie/go-pointkdtree/pointstore"
)

// Erase removes a point from whichever set holds it. Erasing a committed
// point repairs the counts of its ancestors.
func (t *Tree[P]) Erase(r PointRef) {
	ref := pointstore.Ref(r)
	rec := t.store.Ptr(ref)
	switch {
	case rec.hidden:
		t.store.Erase(&t.hidden, ref)
	case !rec.leaf.IsNone():
		leaf := rec.leaf
		t.nodeErase(leaf, ref)
		t.store.Erase(&t.committed, ref)
		t.updateUpwards(leaf)
	default:
		t.store.Erase(&t.pending, ref)
	}
}

func (t *Tree[P]) EraseRange(refs []PointRef) {
	for _, r := range refs {
		t.Erase(r)
	}
}

// EraseAll removes every committed and pending point, and the hidden points
// too when eraseHidden is set. The nodes are kept, emptied.
func (t *Tree[P]) EraseAll(eraseHidden bool) {
	t.store.Clear(&t.pending)
	t.store.Clear(&t.committed)
	t.clearPoints(t.root)
	if eraseHidden {
		t.store.Clear(&t.hidden)
	}
}

// EraseSubtree removes every point below the node. The nodes are kept.
func (t *Tree[P]) EraseSubtree(c Cursor[P]) {
	t.mustOwn(c)
	t.update()
	n := t.node(c.ref)
	if n.count == 0 {
		return
	}
	t.store.EraseRange(&t.committed, n.run())
	t.clearPoints(c.ref)
	t.updateUpwards(c.ref)
}

func (t *Tree[P]) mustOwn(c Cursor[P]) {
	if c.tree != t || c.ref.IsNone() {
		panic("kdtree: cursor does not belong to this tree")
	}
}
