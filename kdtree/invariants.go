package kdtree

import (
	"fmt"

	"github.com/forestrie/go-pointkdtree/arena"
	"github.com/forestrie/go-pointkdtree/box"
)

// CheckInvariants walks the whole tree and returns the first structural
// inconsistency found, wrapped with ErrInvariantViolated and a more specific
// error. It visits every point at every level and is meant for tests.
func (t *Tree[P]) CheckInvariants() error {
	t.update()

	var intermediates int
	if err := t.checkNode(t.root, t.bound.Clone(), &intermediates); err != nil {
		return err
	}
	if t.leaves != intermediates+1 {
		return violation(ErrLeafCount, "%d leaves, %d intermediates", t.leaves, intermediates)
	}
	if t.nodes.Len() != t.leaves+intermediates {
		return violation(ErrLeafCount, "%d nodes allocated, %d reachable", t.nodes.Len(), t.leaves+intermediates)
	}

	root := t.node(t.root)
	if !root.parent.IsNone() {
		return violation(ErrBadParent, "root has a parent")
	}
	if root.count != t.committed.Len() {
		return violation(ErrCountMismatch, "root holds %d of %d committed points", root.count, t.committed.Len())
	}
	if root.count > 0 && (root.first != t.committed.Front() || root.last != t.committed.Back()) {
		return violation(ErrNotContiguous, "root run is not the committed list")
	}

	for r, rec := range t.store.Values(t.committed.All()) {
		if !t.bound.Contains(t.coordinates(rec.point)) {
			return violation(ErrPointOutOfBound, "point %v outside %v", r, t.bound)
		}
	}
	for r, rec := range t.store.Values(t.hidden.All()) {
		if !rec.leaf.IsNone() || !rec.hidden {
			return violation(ErrStrayLeafRef, "hidden point %v", r)
		}
	}
	for r, rec := range t.store.Values(t.pending.All()) {
		if !rec.leaf.IsNone() || rec.hidden {
			return violation(ErrStrayLeafRef, "pending point %v", r)
		}
	}
	return nil
}

func (t *Tree[P]) checkNode(ref arena.Ref, cell box.AlignedBox, intermediates *int) error {
	n := t.node(ref)
	if n.invalid {
		return violation(ErrInvalidAfterFlush, "node %v", ref)
	}
	if err := t.checkRun(n); err != nil {
		return err
	}

	if n.kind == KindLeaf {
		for r, rec := range t.store.Values(n.run()) {
			if rec.leaf != ref || rec.hidden {
				return violation(ErrBadBackReference, "point %v in leaf %v references %v", r, ref, rec.leaf)
			}
		}
		return nil
	}
	*intermediates++

	l, r := t.node(n.left), t.node(n.right)
	if l.parent != ref || r.parent != ref {
		return violation(ErrBadParent, "children of %v", ref)
	}
	if n.count != l.count+r.count {
		return violation(ErrCountMismatch, "node %v holds %d, children %d + %d", ref, n.count, l.count, r.count)
	}
	if l.count > 0 && r.count > 0 && t.store.Next(l.last) != r.first {
		return violation(ErrNotContiguous, "children of %v", ref)
	}
	if n.count > 0 {
		first, last := l.first, r.last
		if l.count == 0 {
			first = r.first
		}
		if r.count == 0 {
			last = l.last
		}
		if n.first != first || n.last != last {
			return violation(ErrNotContiguous, "node %v run does not span its children", ref)
		}
	}

	axis, pos := n.splitAxis, n.splitPosition
	if !(n.prevMin <= pos && pos <= n.prevMax) {
		return violation(ErrSplitOutOfBound, "node %v split %g outside [%g,%g]", ref, pos, n.prevMin, n.prevMax)
	}
	if !cell.Empty() && !(cell.Min[axis] <= pos && pos <= cell.Max[axis]) {
		return violation(ErrSplitOutOfBound, "node %v split %g outside cell %v", ref, pos, cell)
	}

	if err := t.checkSide(n.left, axis, pos, true); err != nil {
		return err
	}
	if err := t.checkSide(n.right, axis, pos, false); err != nil {
		return err
	}

	left, right := n.left, n.right
	lo, hi := cell.Min[axis], cell.Max[axis]
	cell.Max[axis] = min(hi, pos)
	if err := t.checkNode(left, cell, intermediates); err != nil {
		return err
	}
	cell.Min[axis], cell.Max[axis] = max(lo, pos), hi
	return t.checkNode(right, cell, intermediates)
}

// checkRun confirms the run of n has exactly count elements ending at last.
func (t *Tree[P]) checkRun(n *node) error {
	if n.count == 0 {
		if !n.first.IsNone() || !n.last.IsNone() {
			return violation(ErrCountMismatch, "empty node with a run")
		}
		return nil
	}
	r := n.first
	for i := 1; i < n.count; i++ {
		r = t.store.Next(r)
		if r.IsNone() {
			return violation(ErrCountMismatch, "run ends after %d of %d points", i, n.count)
		}
	}
	if r != n.last {
		return violation(ErrCountMismatch, "run of %d points does not end at last", n.count)
	}
	return nil
}

// checkSide confirms every point of a child lies on its side of the parent
// split and inside the bound the child records for the parent axis.
func (t *Tree[P]) checkSide(ref arena.Ref, axis int, pos float64, left bool) error {
	c := t.node(ref)
	for r, rec := range t.store.Values(c.run()) {
		x := t.coordinate(rec.point, axis)
		if (x < pos) != left {
			return violation(ErrPointOutOfBound, "point %v on the wrong side of %g", r, pos)
		}
		if x < c.min || x > c.max {
			return violation(ErrPointOutOfBound, "point %v outside node bound [%g,%g]", r, c.min, c.max)
		}
	}
	return nil
}

func (t *Tree[P]) coordinates(p P) []float64 {
	c := make([]float64, t.dim)
	for axis := range c {
		c[axis] = t.coordinate(p, axis)
	}
	return c
}

func violation(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrInvariantViolated, kind, fmt.Sprintf(format, args...))
}
