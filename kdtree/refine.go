package kdtree

import (
	"math"

	"github.com/forestrie/go-pointkdtree/arena"
	"github.com/forestrie/go-pointkdtree/box"
	"github.com/forestrie/go-pointkdtree/pointstore"
	"github.com/forestrie/go-pointkdtree/splitrule"
)

// DefaultRule is the split rule callers normally pass to Refine.
var DefaultRule splitrule.Rule = splitrule.SlidingMidpoint2{}

// Refine subdivides every leaf holding more than bucketSize points, using
// rule to place each split, until no such leaf remains or its points can not
// be separated (they coincide).
func (t *Tree[P]) Refine(rule splitrule.Rule, bucketSize int) {
	t.RefineAt(t.Root(), rule, bucketSize)
}

// RefineAt refines the subtree below the node.
func (t *Tree[P]) RefineAt(c Cursor[P], rule splitrule.Rule, bucketSize int) {
	if bucketSize < 1 {
		panic("kdtree: bucket size must be at least 1")
	}
	if rule == nil {
		panic("kdtree: nil split rule")
	}
	t.mustOwn(c)
	t.update()

	before := t.leaves
	bound := t.cellBound(c.ref)
	t.refine(c.ref, bound, rule, t.depth(c.ref), bucketSize)
	t.updateUpwards(c.ref)
	t.update()
	t.debugf("refine %v bucket %d: %d -> %d leaves", rule, bucketSize, before, t.leaves)
}

func (t *Tree[P]) refine(ref arena.Ref, bound box.AlignedBox, rule splitrule.Rule, depth, bucketSize int) {
	n := t.node(ref)
	if n.kind == KindLeaf {
		if n.count <= bucketSize {
			return
		}
		axis, pos, ok := t.chooseSplit(n.run(), bound, rule, depth)
		if !ok {
			return
		}
		t.subdivide(ref, axis, pos, bound.Min[axis], bound.Max[axis])
		n = t.node(ref)
	}

	axis, pos := n.splitAxis, n.splitPosition
	left, right := n.left, n.right
	lo, hi := bound.Min[axis], bound.Max[axis]

	bound.Min[axis], bound.Max[axis] = t.childBound(left, axis, lo, pos)
	t.refine(left, bound, rule, depth+1, bucketSize)

	bound.Min[axis], bound.Max[axis] = t.childBound(right, axis, pos, hi)
	t.refine(right, bound, rule, depth+1, bucketSize)

	bound.Min[axis], bound.Max[axis] = lo, hi
	t.updateHierarchical(ref)
}

// childBound is the bound a child is refined within along its parent's split
// axis: the cell clipped at the split plane, further cut to the extent of the
// child's points unless simulating a plain kd-tree. It depends only on the
// points present, never on what was inserted and erased before.
func (t *Tree[P]) childBound(ref arena.Ref, axis int, lo, hi float64) (float64, float64) {
	if t.opts.SimulateKdTree {
		return lo, hi
	}
	plo, phi := t.axisExtent(t.node(ref).run(), axis)
	return math.Max(lo, plo), math.Min(hi, phi)
}

// rangePoints presents a run of points to a split rule.
type rangePoints[P any] struct {
	t  *Tree[P]
	rg pointstore.Range
}

func (p rangePoints[P]) Len() int { return p.rg.Count }

func (p rangePoints[P]) Coordinates(dst []float64, axis int) []float64 {
	dst = dst[:0]
	for _, rec := range p.t.store.Values(p.rg) {
		dst = append(dst, p.t.coordinate(rec.point, axis))
	}
	return dst
}

// chooseSplit asks the rule for a split of the run and makes sure it puts
// points on both sides. The position is clamped into bound. A split that
// leaves one side empty is retried with the bound on that axis tightened to
// the extent of the points. If the rule still fails to separate the points
// the axis of widest spread is halved instead. ok is false only when all the
// points coincide.
func (t *Tree[P]) chooseSplit(
	rg pointstore.Range, bound box.AlignedBox, rule splitrule.Rule, depth int) (axis int, pos float64, ok bool) {

	points := rangePoints[P]{t: t, rg: rg}
	probe := bound.Clone()
	var c []float64

	for range t.dim + 1 {
		axis, pos = rule.Split(points, probe, depth)
		if axis < 0 || axis >= t.dim {
			panic("kdtree: split rule returned an axis out of range")
		}
		pos = clamp(pos, probe.Min[axis], probe.Max[axis])

		c = points.Coordinates(c, axis)
		below := 0
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, x := range c {
			if x < pos {
				below++
			}
			lo, hi = math.Min(lo, x), math.Max(hi, x)
		}
		if below > 0 && below < len(c) {
			return axis, pos, true
		}
		if probe.Min[axis] == lo && probe.Max[axis] == hi {
			break
		}
		probe.Min[axis], probe.Max[axis] = lo, hi
	}

	axis, spread := -1, 0.0
	var lo, hi float64
	for a := range t.dim {
		c = points.Coordinates(c, a)
		alo, ahi := math.Inf(1), math.Inf(-1)
		for _, x := range c {
			alo, ahi = math.Min(alo, x), math.Max(ahi, x)
		}
		if ahi-alo > spread {
			axis, spread, lo, hi = a, ahi-alo, alo, ahi
		}
	}
	if axis < 0 {
		return 0, 0, false
	}
	pos = lo + (hi-lo)/2
	if pos <= lo {
		pos = hi
	}
	t.debugf("split fallback: %v gave no progress, axis %d at %g", rule, axis, pos)
	return axis, clamp(pos, bound.Min[axis], bound.Max[axis]), true
}

// clamp leaves NaN alone so it reads as a one sided split.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Subdivide splits a leaf at the given position. The position must lie inside
// the cell of the leaf, which is the tree bound cut down by the split planes
// of its ancestors. Either child may be left empty.
func (t *Tree[P]) Subdivide(c Cursor[P], axis int, position float64) {
	t.mustOwn(c)
	t.update()
	if t.node(c.ref).kind != KindLeaf {
		panic("kdtree: subdivide of an intermediate node")
	}
	if axis < 0 || axis >= t.dim {
		panic("kdtree: split axis out of range")
	}
	cell := t.cellBound(c.ref)
	if !(position >= cell.Min[axis] && position <= cell.Max[axis]) {
		panic("kdtree: split position outside the node cell")
	}
	t.subdivide(c.ref, axis, position, cell.Min[axis], cell.Max[axis])
	t.updateUpwards(c.ref)
}

// subdivide turns a leaf into an intermediate with two new leaves, moving the
// points below position on axis to the left one.
func (t *Tree[P]) subdivide(ref arena.Ref, axis int, pos, prevMin, prevMax float64) {
	run := t.node(ref).run()
	left, right := t.store.Partition(&t.committed, run, func(rec record[P]) bool {
		return t.coordinate(rec.point, axis) < pos
	})

	var lmin, lmax, rmin, rmax float64
	if t.opts.SimulateKdTree {
		lmin, lmax, rmin, rmax = prevMin, pos, pos, prevMax
	} else {
		lmin, lmax = t.axisExtent(left, axis)
		rmin, rmax = t.axisExtent(right, axis)
	}

	l := newLeaf(ref, lmin, lmax)
	l.setRun(left)
	r := newLeaf(ref, rmin, rmax)
	r.setRun(right)
	leftRef := t.nodes.Alloc(l)
	rightRef := t.nodes.Alloc(r)

	// re-fetch, the allocations may have moved the node
	n := t.node(ref)
	n.kind = KindIntermediate
	n.left, n.right = leftRef, rightRef
	n.splitAxis, n.splitPosition = axis, pos
	n.prevMin, n.prevMax = prevMin, prevMax
	n.invalid = false
	switch {
	case left.Empty():
		n.first, n.last = right.First, right.Last
	case right.Empty():
		n.first, n.last = left.First, left.Last
	default:
		n.first, n.last = left.First, right.Last
	}

	t.setLeaf(leftRef)
	t.setLeaf(rightRef)
	t.leaves++
	t.debugf("subdivide axis %d at %g: %d | %d", axis, pos, left.Count, right.Count)
}

// cellBound is the tree bound cut down by the split planes above the node.
func (t *Tree[P]) cellBound(ref arena.Ref) box.AlignedBox {
	var path []arena.Ref
	for r := ref; !r.IsNone(); r = t.node(r).parent {
		path = append(path, r)
	}
	b := t.bound.Clone()
	for i := len(path) - 1; i > 0; i-- {
		n := t.node(path[i])
		axis, pos := n.splitAxis, n.splitPosition
		if n.left == path[i-1] {
			b.Max[axis] = math.Min(b.Max[axis], pos)
		} else {
			b.Min[axis] = math.Max(b.Min[axis], pos)
		}
	}
	return b
}

// depth is the number of edges between the node and the root.
func (t *Tree[P]) depth(ref arena.Ref) int {
	d := 0
	for r := t.node(ref).parent; !r.IsNone(); r = t.node(r).parent {
		d++
	}
	return d
}
