package kdtree

// Walk visits the nodes of the subtree below c in preorder, left before
// right. Returning false from fn skips the children of that node.
func Walk[P any](c Cursor[P], fn func(c Cursor[P], depth int) bool) {
	walk(c, 0, fn)
}

func walk[P any](c Cursor[P], depth int, fn func(Cursor[P], int) bool) {
	if !fn(c, depth) || c.Leaf() {
		return
	}
	walk(c.Left(), depth+1, fn)
	walk(c.Right(), depth+1, fn)
}

// Depth is the length, in edges, of the longest path from the root to a
// leaf. A tree that is a single leaf has depth 0.
func (t *Tree[P]) Depth() int {
	deepest := 0
	Walk(t.Root(), func(c Cursor[P], depth int) bool {
		deepest = max(deepest, depth)
		return true
	})
	return deepest
}

// Equivalent reports whether two trees have the same shape, splits, counts
// and bound. The points themselves are not compared, nor are the node bounds
// returned by Cursor.Min and Cursor.Max, which may also cover points that
// have since been erased.
func Equivalent[P, Q any](a *Tree[P], b *Tree[Q]) bool {
	if a.Dimension() != b.Dimension() ||
		a.Points() != b.Points() ||
		a.Leaves() != b.Leaves() ||
		a.Nodes() != b.Nodes() ||
		a.HiddenPoints() != b.HiddenPoints() ||
		!a.Bound().Equal(b.Bound()) {
		return false
	}
	return equivalent(a.Root(), b.Root())
}

func equivalent[P, Q any](a Cursor[P], b Cursor[Q]) bool {
	if a.Kind() != b.Kind() || a.Count() != b.Count() {
		return false
	}
	if a.Leaf() {
		return true
	}
	if a.SplitAxis() != b.SplitAxis() || a.SplitPosition() != b.SplitPosition() ||
		a.PrevMin() != b.PrevMin() || a.PrevMax() != b.PrevMax() {
		return false
	}
	return equivalent(a.Left(), b.Left()) && equivalent(a.Right(), b.Right())
}

// Clone returns a deep copy of the tree with the same options. Points are
// copied by value. A PointRef of t addresses the same point in the copy.
func (t *Tree[P]) Clone() *Tree[P] {
	t.update()
	c := &Tree[P]{
		opts:    t.opts,
		log:     t.log,
		dim:     t.dim,
		locator: t.locator,
		nodes:   t.nodes.Clone(),
		root:    t.root,
		leaves:  t.leaves,
		bound:   t.bound.Clone(),

		store:     t.store.Clone(),
		committed: t.committed,
		pending:   t.pending,
		hidden:    t.hidden,
	}
	return c
}
