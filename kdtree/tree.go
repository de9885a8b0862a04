package kdtree

import (
	"iter"
	"math"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-pointkdtree/arena"
	"github.com/forestrie/go-pointkdtree/box"
	"github.com/forestrie/go-pointkdtree/pointstore"
)

// Tree is a dynamic kd-tree over points of type P.
type Tree[P any] struct {
	opts    Options
	log     logger.Logger
	dim     int
	locator Locator[P]

	store     *pointstore.Store[record[P]]
	committed pointstore.List
	pending   pointstore.List
	hidden    pointstore.List

	nodes  *arena.Arena[node]
	root   arena.Ref
	leaves int

	bound box.AlignedBox
}

// New returns an empty tree consisting of a single leaf.
func New[P any](dimension int, locator Locator[P], opts ...Option) *Tree[P] {
	if dimension < 1 {
		panic("kdtree: dimension must be positive")
	}
	if locator == nil {
		panic("kdtree: nil locator")
	}
	o := NewOptions(opts...)
	t := &Tree[P]{
		opts:    o,
		log:     o.Log,
		dim:     dimension,
		locator: locator,
		store:   pointstore.New[record[P]](o.PointsHint),
		nodes:   arena.New[node](1),
		bound:   box.New(dimension),
	}
	t.root = t.nodes.Alloc(newRoot())
	t.leaves = 1
	return t
}

func (t *Tree[P]) Dimension() int { return t.dim }
func (t *Tree[P]) UpdateMode() UpdateMode { return t.opts.UpdateMode }
func (t *Tree[P]) SimulateKdTree() bool { return t.opts.SimulateKdTree }
func (t *Tree[P]) Locator() Locator[P] { return t.locator }
func (t *Tree[P]) HiddenPoints() int { return t.hidden.Len() }
func (t *Tree[P]) PendingPoints() int { return t.pending.Len() }
func (t *Tree[P]) node(r arena.Ref) *node { return t.nodes.Get(r) }
func (t *Tree[P]) rec(r PointRef) *record[P] { return t.store.Ptr(pointstore.Ref(r)) }

// Root commits any pending work and returns the root node.
func (t *Tree[P]) Root() Cursor[P] {
	t.update()
	return Cursor[P]{tree: t, ref: t.root}
}

// Nodes is the number of nodes, leaves and intermediates.
func (t *Tree[P]) Nodes() int {
	return t.nodes.Len()
}

func (t *Tree[P]) Leaves() int {
	return t.leaves
}

// Points is the number of committed points. Pending points are committed
// first.
func (t *Tree[P]) Points() int {
	t.update()
	return t.committed.Len()
}

func (t *Tree[P]) Empty() bool {
	return t.Points() == 0
}

// Bound returns a copy of the bounding box. It covers every point ever
// inserted since the last Clear and any reserved bound.
func (t *Tree[P]) Bound() box.AlignedBox {
	t.update()
	return t.bound.Clone()
}

// ReserveBound extends the bounding box to cover b.
func (t *Tree[P]) ReserveBound(b box.AlignedBox) {
	if b.Dimension() != t.dim {
		panic("kdtree: bound dimension mismatch")
	}
	t.bound.Extend(b)
}

func (t *Tree[P]) Point(r PointRef) P {
	return t.rec(r).point
}

func (t *Tree[P]) IsHidden(r PointRef) bool {
	return t.rec(r).hidden
}

// Contains reports whether r refers to a point that has not been erased.
func (t *Tree[P]) Contains(r PointRef) bool {
	return t.store.Valid(pointstore.Ref(r))
}

// Leaf returns the leaf holding a committed point, or the empty cursor for a
// hidden point.
func (t *Tree[P]) Leaf(r PointRef) Cursor[P] {
	t.update()
	rec := t.rec(r)
	if rec.leaf.IsNone() {
		return Cursor[P]{}
	}
	return Cursor[P]{tree: t, ref: rec.leaf}
}

func (t *Tree[P]) Begin() Iterator[P] {
	t.update()
	return Iterator[P]{tree: t, ref: t.committed.Front()}
}

func (t *Tree[P]) End() Iterator[P] {
	return Iterator[P]{tree: t, ref: pointstore.NoRef}
}

func (t *Tree[P]) HiddenBegin() Iterator[P] {
	return Iterator[P]{tree: t, ref: t.hidden.Front()}
}

func (t *Tree[P]) HiddenEnd() Iterator[P] {
	return Iterator[P]{tree: t, ref: pointstore.NoRef}
}

// All iterates the committed points in leaf order.
func (t *Tree[P]) All() iter.Seq2[PointRef, P] {
	t.update()
	return t.points(t.committed.All())
}

// Hidden iterates the hidden points.
func (t *Tree[P]) Hidden() iter.Seq2[PointRef, P] {
	return t.points(t.hidden.All())
}

func (t *Tree[P]) points(rg pointstore.Range) iter.Seq2[PointRef, P] {
	return func(yield func(PointRef, P) bool) {
		for r, rec := range t.store.Values(rg) {
			if !yield(PointRef(r), rec.point) {
				return
			}
		}
	}
}

// MaxDepthHint is a depth no reasonably balanced tree over the current
// points should exceed.
func (t *Tree[P]) MaxDepthHint() int {
	n := float64(t.Points() + t.hidden.Len())
	return int(1.3*math.Log2(n+1) + 8)
}

// Clear removes every point, including hidden ones, and every node but the
// root. The bound is reset to empty.
func (t *Tree[P]) Clear() {
	n := t.store.Len()
	t.store.Clear(&t.committed)
	t.store.Clear(&t.pending)
	t.store.Clear(&t.hidden)
	t.nodes.Clear()
	t.root = t.nodes.Alloc(newRoot())
	t.leaves = 1
	t.bound = box.New(t.dim)
	t.infof("cleared %d points", n)
}

// Swap exchanges the contents of two trees.
func (t *Tree[P]) Swap(other *Tree[P]) {
	*t, *other = *other, *t
}

func (t *Tree[P]) coordinate(p P, axis int) float64 {
	return t.locator.Coordinate(p, axis)
}

func (t *Tree[P]) checkDimension(p P) {
	d, ok := t.locator.(Dimensioner[P])
	if !ok {
		return
	}
	if d.PointDimension(p) != t.dim {
		panic("kdtree: point dimension does not match the tree")
	}
}

// computeBound returns the bounding box of the points in rg.
func (t *Tree[P]) computeBound(rg pointstore.Range) box.AlignedBox {
	b := box.New(t.dim)
	for _, rec := range t.store.Values(rg) {
		for axis := range t.dim {
			b.ExtendAxis(axis, t.coordinate(rec.point, axis))
		}
	}
	return b
}

// axisExtent returns the min and max coordinate along axis of the points in
// rg, +Inf and -Inf when rg is empty.
func (t *Tree[P]) axisExtent(rg pointstore.Range, axis int) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, rec := range t.store.Values(rg) {
		x := t.coordinate(rec.point, axis)
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

func (t *Tree[P]) debugf(format string, args ...any) {
	if t.log != nil {
		t.log.Debugf(format, args...)
	}
}

func (t *Tree[P]) infof(format string, args ...any) {
	if t.log != nil {
		t.log.Infof(format, args...)
	}
}
