package kdtree

import "github.com/forestrie/go-pointkdtree/pointstore"

// Iterator walks one of the point lists. Two iterators are equal when they
// refer to the same position.
type Iterator[P any] struct {
	tree *Tree[P]
	ref  pointstore.Ref
}

func (it Iterator[P]) Done() bool { return it.ref.IsNone() }

func (it Iterator[P]) Ref() PointRef { return PointRef(it.ref) }

func (it Iterator[P]) Point() P { return it.tree.store.Value(it.ref).point }

func (it Iterator[P]) Next() Iterator[P] {
	return Iterator[P]{tree: it.tree, ref: it.tree.store.Next(it.ref)}
}

// Leaf returns the leaf holding the point, empty for a hidden point.
func (it Iterator[P]) Leaf() Cursor[P] {
	l := it.tree.store.Value(it.ref).leaf
	if l.IsNone() {
		return Cursor[P]{}
	}
	return Cursor[P]{tree: it.tree, ref: l}
}
