package kdtree

import (
	"math"

	"github.com/forestrie/go-pointkdtree/arena"
	"github.com/forestrie/go-pointkdtree/box"
	"github.com/forestrie/go-pointkdtree/pointstore"
)

// Insert adds one point. A hidden point goes straight to the hidden set,
// otherwise the point is pending until committed, which in immediate mode
// happens before Insert returns.
func (t *Tree[P]) Insert(p P, hidden bool) PointRef {
	t.checkDimension(p)
	r := t.push(p, hidden)
	for axis := range t.dim {
		t.bound.ExtendAxis(axis, t.coordinate(p, axis))
	}
	if !hidden && t.opts.UpdateMode == UpdateImmediate {
		t.commitInsertion()
	}
	return PointRef(r)
}

// InsertRange adds a batch of points. The bound is extended once for the
// whole batch and the points are pushed down the tree together, partitioning
// the batch at each intermediate node, rather than descending once per point.
func (t *Tree[P]) InsertRange(ps []P, hidden bool) []PointRef {
	refs := make([]PointRef, 0, len(ps))
	b := box.New(t.dim)
	for _, p := range ps {
		t.checkDimension(p)
		refs = append(refs, PointRef(t.push(p, hidden)))
		for axis := range t.dim {
			b.ExtendAxis(axis, t.coordinate(p, axis))
		}
	}
	t.bound.Extend(b)
	if !hidden && t.opts.UpdateMode == UpdateImmediate {
		t.commitInsertion()
	}
	return refs
}

func (t *Tree[P]) push(p P, hidden bool) pointstore.Ref {
	rec := record[P]{point: p, leaf: arena.NoRef, hint: arena.NoRef, hidden: hidden}
	if hidden {
		return t.store.PushBack(&t.hidden, rec)
	}
	return t.store.PushBack(&t.pending, rec)
}

// CommitInsertion pushes every pending point down to its leaf.
func (t *Tree[P]) CommitInsertion() {
	t.commitInsertion()
	if t.opts.UpdateMode == UpdateLazy {
		t.updateDownwards(t.root)
	}
}

func (t *Tree[P]) commitInsertion() {
	if t.pending.Empty() {
		return
	}
	b := t.insert(t.root, &t.pending, t.pending.All())
	t.bound.Extend(b)
}

// insert pushes the run rg of src down from the node ref and returns the
// bounding box of the run. At an intermediate node the run is partitioned in
// place by the split plane and each non-empty part continues into its child.
// At a leaf the run is spliced onto the end of the leaf's run. The ancestors
// of ref are left to the caller.
func (t *Tree[P]) insert(ref arena.Ref, src *pointstore.List, rg pointstore.Range) box.AlignedBox {
	n := t.node(ref)
	if n.kind == KindLeaf {
		b := t.computeBound(rg)
		for r, i := rg.First, rg.Count; i > 0; i-- {
			rec := t.store.Ptr(r)
			rec.leaf = ref
			rec.hidden = false
			rec.hint = arena.NoRef
			r = t.store.Next(r)
		}
		if n.count == 0 {
			t.store.Splice(&t.committed, pointstore.NoRef, src, rg)
			n.setRun(rg)
		} else {
			t.store.SpliceAfter(&t.committed, n.last, src, rg)
			n.last = rg.Last
			n.count += rg.Count
		}
		return b
	}

	axis, pos := n.splitAxis, n.splitPosition
	leftRef, rightRef := n.left, n.right
	left, right := t.store.Partition(src, rg, func(rec record[P]) bool {
		return t.coordinate(rec.point, axis) < pos
	})

	b := box.New(t.dim)
	if !left.Empty() {
		lb := t.insert(leftRef, src, left)
		t.extendNode(leftRef, lb.Min[axis], lb.Max[axis])
		b.Extend(lb)
	}
	if !right.Empty() {
		rb := t.insert(rightRef, src, right)
		t.extendNode(rightRef, rb.Min[axis], rb.Max[axis])
		b.Extend(rb)
	}
	t.markInvalid(ref)
	return b
}

func (t *Tree[P]) extendNode(ref arena.Ref, lo, hi float64) {
	n := t.node(ref)
	n.min = math.Min(n.min, lo)
	n.max = math.Max(n.max, hi)
}
