package kdtree

import (
	"github.com/forestrie/go-pointkdtree/arena"
	"github.com/forestrie/go-pointkdtree/pointstore"
)

// update commits pending points and recomputes every invalid node. After it
// returns the whole hierarchy is valid in both update modes.
func (t *Tree[P]) update() {
	if !t.pending.Empty() {
		t.commitInsertion()
	}
	t.updateDownwards(t.root)
}

// updateHierarchical recomputes an intermediate from its children, which
// must be valid. The right run is moved to directly follow the left run.
func (t *Tree[P]) updateHierarchical(ref arena.Ref) {
	n := t.node(ref)
	if n.kind != KindIntermediate {
		n.invalid = false
		return
	}
	l, r := t.node(n.left), t.node(n.right)
	if l.count > 0 && r.count > 0 {
		t.store.SpliceAfter(&t.committed, l.last, &t.committed, r.run())
	}

	rg := pointstore.Range{Count: l.count + r.count}
	switch {
	case l.count == 0:
		rg.First, rg.Last = r.first, r.last
	case r.count == 0:
		rg.First, rg.Last = l.first, l.last
	default:
		rg.First, rg.Last = l.first, r.last
	}
	n.setRun(rg)
	n.invalid = false
}

// updateUpwards brings the ancestors of a changed node up to date, or in lazy
// mode marks them invalid.
func (t *Tree[P]) updateUpwards(ref arena.Ref) {
	if t.opts.UpdateMode == UpdateLazy {
		for p := t.node(ref).parent; !p.IsNone(); {
			n := t.node(p)
			if n.invalid {
				return
			}
			n.invalid = true
			p = n.parent
		}
		return
	}
	for p := t.node(ref).parent; !p.IsNone(); p = t.node(p).parent {
		t.updateHierarchical(p)
	}
}

// updateDownwards recomputes the invalid nodes of a subtree, children first.
// Valid nodes have valid descendants so the walk stops at them.
func (t *Tree[P]) updateDownwards(ref arena.Ref) {
	n := t.node(ref)
	if !n.invalid || n.kind != KindIntermediate {
		n.invalid = false
		return
	}
	left, right := n.left, n.right
	t.updateDownwards(left)
	t.updateDownwards(right)
	t.updateHierarchical(ref)
}

// markInvalid marks an intermediate touched in lazy mode, or recomputes it in
// immediate mode.
func (t *Tree[P]) markInvalid(ref arena.Ref) {
	if t.opts.UpdateMode == UpdateLazy {
		t.node(ref).invalid = true
		return
	}
	t.updateHierarchical(ref)
}

// setLeaf points every record in the run of a leaf back at it.
func (t *Tree[P]) setLeaf(ref arena.Ref) {
	n := t.node(ref)
	r := n.first
	for i := n.count; i > 0; i-- {
		rec := t.store.Ptr(r)
		rec.leaf = ref
		r = t.store.Next(r)
	}
}

// clearPoints empties the runs of every node in a subtree. The points
// themselves must already have left the committed list.
func (t *Tree[P]) clearPoints(ref arena.Ref) {
	n := t.node(ref)
	n.setRun(pointstore.Range{})
	n.invalid = false
	if n.kind == KindIntermediate {
		left, right := n.left, n.right
		t.clearPoints(left)
		t.clearPoints(right)
	}
}

// nodeErase removes one point from the run of its leaf. It must be called
// while the point is still linked in the committed list.
func (t *Tree[P]) nodeErase(leaf arena.Ref, r pointstore.Ref) {
	n := t.node(leaf)
	if n.count == 1 {
		n.setRun(pointstore.Range{})
		return
	}
	if n.first == r {
		n.first = t.store.Next(r)
	}
	if n.last == r {
		n.last = t.store.Prev(r)
	}
	n.count--
}
