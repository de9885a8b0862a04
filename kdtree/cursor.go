package kdtree

import (
	"iter"

	"github.com/forestrie/go-pointkdtree/arena"
)

// Cursor is a read handle on a node. The zero Cursor is empty.
type Cursor[P any] struct {
	tree *Tree[P]
	ref  arena.Ref
}

func (c Cursor[P]) Empty() bool { return c.tree == nil || c.ref.IsNone() }

func (c Cursor[P]) Equal(o Cursor[P]) bool { return c == o }

func (c Cursor[P]) n() *node { return c.tree.node(c.ref) }

func (c Cursor[P]) leafOnly() *node {
	n := c.n()
	if n.kind != KindLeaf {
		panic("kdtree: leaf accessor on an intermediate node")
	}
	return n
}

func (c Cursor[P]) intermediateOnly() *node {
	n := c.n()
	if n.kind != KindIntermediate {
		panic("kdtree: intermediate accessor on a leaf node")
	}
	return n
}

func (c Cursor[P]) Kind() NodeKind { return c.n().kind }
func (c Cursor[P]) Leaf() bool { return c.n().kind == KindLeaf }

// Count is the number of committed points below the node.
func (c Cursor[P]) Count() int { return c.n().count }

// Parent returns the empty cursor for the root.
func (c Cursor[P]) Parent() Cursor[P] {
	p := c.n().parent
	if p.IsNone() {
		return Cursor[P]{}
	}
	return Cursor[P]{tree: c.tree, ref: p}
}

// Min and Max bound the points of the node along the split axis of its
// parent.
func (c Cursor[P]) Min() float64 { return c.n().min }
func (c Cursor[P]) Max() float64 { return c.n().max }

func (c Cursor[P]) Left() Cursor[P] {
	return Cursor[P]{tree: c.tree, ref: c.intermediateOnly().left}
}

func (c Cursor[P]) Right() Cursor[P] {
	return Cursor[P]{tree: c.tree, ref: c.intermediateOnly().right}
}

func (c Cursor[P]) SplitAxis() int { return c.intermediateOnly().splitAxis }

func (c Cursor[P]) SplitPosition() float64 { return c.intermediateOnly().splitPosition }

// PrevMin and PrevMax are the cell bound along the split axis when the node
// was subdivided.
func (c Cursor[P]) PrevMin() float64 { return c.intermediateOnly().prevMin }
func (c Cursor[P]) PrevMax() float64 { return c.intermediateOnly().prevMax }

// Begin is the first point of the leaf. Begin equals End for an empty leaf.
func (c Cursor[P]) Begin() Iterator[P] {
	return Iterator[P]{tree: c.tree, ref: c.leafOnly().first}
}

// End is the iterator following the last point of the leaf. It may be the
// first point of the next leaf.
func (c Cursor[P]) End() Iterator[P] {
	n := c.leafOnly()
	if n.count == 0 {
		return Iterator[P]{tree: c.tree, ref: n.first}
	}
	return Iterator[P]{tree: c.tree, ref: c.tree.store.Next(n.last)}
}

// Points iterates the points of the leaf.
func (c Cursor[P]) Points() iter.Seq2[PointRef, P] {
	return c.tree.points(c.leafOnly().run())
}
