package kdtree

import (
	"github.com/forestrie/go-pointkdtree/arena"
	"github.com/forestrie/go-pointkdtree/pointstore"
)

// Hide moves a point to the hidden set. The leaf that held it is remembered
// so that Show can return it there while that leaf, or the intermediate it
// has since become, still exists.
func (t *Tree[P]) Hide(r PointRef) {
	ref := pointstore.Ref(r)
	rec := t.store.Ptr(ref)
	if rec.hidden {
		return
	}
	one := pointstore.Range{First: ref, Last: ref, Count: 1}
	if leaf := rec.leaf; !leaf.IsNone() {
		t.nodeErase(leaf, ref)
		t.store.Splice(&t.hidden, pointstore.NoRef, &t.committed, one)
		rec.hint = leaf
		rec.leaf = arena.NoRef
		rec.hidden = true
		t.updateUpwards(leaf)
		return
	}
	t.store.Splice(&t.hidden, pointstore.NoRef, &t.pending, one)
	rec.hint = arena.NoRef
	rec.hidden = true
}

// HideAll hides every point. The nodes are kept, emptied.
func (t *Tree[P]) HideAll() {
	t.update()
	for r := t.committed.Front(); !r.IsNone(); r = t.store.Next(r) {
		rec := t.store.Ptr(r)
		rec.hint = rec.leaf
		rec.leaf = arena.NoRef
		rec.hidden = true
	}
	if !t.committed.Empty() {
		t.store.Splice(&t.hidden, pointstore.NoRef, &t.committed, t.committed.All())
	}
	t.clearPoints(t.root)
}

// Show returns a hidden point to the tree. If the leaf it was hidden from is
// gone, for instance merged away, the point is inserted again from the root.
func (t *Tree[P]) Show(r PointRef) {
	if t.show(pointstore.Ref(r)) && t.opts.UpdateMode == UpdateImmediate {
		t.commitInsertion()
	}
}

// ShowAll shows every hidden point.
func (t *Tree[P]) ShowAll() {
	var again bool
	for r := t.hidden.Front(); !r.IsNone(); {
		next := t.store.Next(r)
		if t.show(r) {
			again = true
		}
		r = next
	}
	if again && t.opts.UpdateMode == UpdateImmediate {
		t.commitInsertion()
	}
}

// show reports true when the point had to be made pending.
func (t *Tree[P]) show(ref pointstore.Ref) bool {
	rec := t.store.Ptr(ref)
	if !rec.hidden {
		return false
	}
	hint := rec.hint
	rec.hint = arena.NoRef
	rec.hidden = false
	one := pointstore.Range{First: ref, Last: ref, Count: 1}

	if !t.nodes.Valid(hint) {
		t.store.Splice(&t.pending, pointstore.NoRef, &t.hidden, one)
		return true
	}
	t.insert(hint, &t.hidden, one)
	t.updateUpwards(hint)
	return false
}
