package kdtree

import (
	"math"

	"github.com/forestrie/go-pointkdtree/arena"
	"github.com/forestrie/go-pointkdtree/pointstore"
)

// DefaultBucketSize is the leaf capacity callers normally pass to Refine.
const DefaultBucketSize = 8

// PointRef is the handle returned for an inserted point. It stays valid,
// whichever set the point moves between, until the point is erased.
type PointRef pointstore.Ref

// NoPoint is the zero PointRef
var NoPoint = PointRef(pointstore.NoRef)

func (r PointRef) IsNone() bool { return pointstore.Ref(r).IsNone() }

// Locator extracts coordinates from a point.
type Locator[P any] interface {
	Coordinate(p P, axis int) float64
}

// Dimensioner is implemented by locators that can report the dimension of a
// point. When present the tree checks every inserted point against its own
// dimension.
type Dimensioner[P any] interface {
	PointDimension(p P) int
}

// SliceLocator locates points given directly as coordinate slices.
type SliceLocator struct{}

func (SliceLocator) Coordinate(p []float64, axis int) float64 { return p[axis] }
func (SliceLocator) PointDimension(p []float64) int { return len(p) }

// NodeKind tags a node as a leaf or an intermediate.
type NodeKind uint8

const (
	KindLeaf         NodeKind = 1
	KindIntermediate NodeKind = 2
)

func (k NodeKind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindIntermediate:
		return "intermediate"
	default:
		return "invalid"
	}
}

// UpdateMode controls when counts and runs above a change are recomputed.
type UpdateMode uint8

const (
	// UpdateImmediate recomputes before each mutation returns.
	UpdateImmediate UpdateMode = iota
	// UpdateLazy defers the work to the next read that needs it.
	UpdateLazy
)

func (m UpdateMode) String() string {
	if m == UpdateLazy {
		return "lazy"
	}
	return "immediate"
}

type record[P any] struct {
	point P
	// leaf is the leaf whose run holds the point, NoRef unless committed
	leaf arena.Ref
	// hint is the leaf that held the point when it was hidden
	hint   arena.Ref
	hidden bool
}

type node struct {
	kind   NodeKind
	parent arena.Ref

	// inclusive run of committed points, NoRef when count is zero
	first pointstore.Ref
	last  pointstore.Ref
	count int

	// bound of the points along the split axis of the parent
	min float64
	max float64

	// intermediate only
	left          arena.Ref
	right         arena.Ref
	splitAxis     int
	splitPosition float64
	prevMin       float64
	prevMax       float64

	invalid bool
}

func newLeaf(parent arena.Ref, min, max float64) node {
	return node{
		kind:   KindLeaf,
		parent: parent,
		min:    min,
		max:    max,
		left:   arena.NoRef,
		right:  arena.NoRef,
	}
}

func newRoot() node {
	return newLeaf(arena.NoRef, math.Inf(-1), math.Inf(1))
}

func (n *node) run() pointstore.Range {
	return pointstore.Range{First: n.first, Last: n.last, Count: n.count}
}

func (n *node) setRun(rg pointstore.Range) {
	n.first, n.last, n.count = rg.First, rg.Last, rg.Count
	if rg.Count == 0 {
		n.first, n.last = pointstore.NoRef, pointstore.NoRef
	}
}
