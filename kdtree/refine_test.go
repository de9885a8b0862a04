package kdtree

import (
	"fmt"
	"math"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-pointkdtree/box"
	"github.com/forestrie/go-pointkdtree/splitrule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefine_NoEmptyLeaves(t *testing.T) {
	defer logger.OnExit()
	tc := newTestContext(t, 51)
	sets := map[string][][]float64{
		"uniform":   tc.UniformPoints(400, 3, 100),
		"grid":      tc.GridPoints(400, 3, 4),
		"clustered": tc.ClusteredPoints(400, 3, 100),
		"line":      tc.GridPoints(50, 1, 1000),
	}
	for name, points := range sets {
		for _, rule := range splitrule.All() {
			for _, simulate := range []bool{false, true} {
				t.Run(fmt.Sprintf("%s/%v/simulate=%v", name, rule, simulate), func(t *testing.T) {
					dim := len(points[0])
					tree := newSliceTree(dim, WithSimulateKdTree(simulate))
					tree.InsertRange(points, false)

					for _, bucket := range []int{DefaultBucketSize, 3, 1} {
						tree.Refine(rule, bucket)
						requireValid(t, tree)
						Walk(tree.Root(), func(c Cursor[[]float64], _ int) bool {
							if c.Leaf() {
								require.NotZero(t, c.Count())
							}
							return true
						})
						require.LessOrEqual(t, tree.Depth(), len(points))
					}
				})
			}
		}
	}
}

func TestRefine_BucketSizeHonoured(t *testing.T) {
	defer logger.OnExit()
	tc := newTestContext(t, 53)
	for _, rule := range splitrule.All() {
		t.Run(fmt.Sprint(rule), func(t *testing.T) {
			tree := newSliceTree(2)
			tree.InsertRange(tc.UniformPoints(300, 2, 1), false)
			tree.Refine(rule, 5)
			for _, n := range leafCounts(tree) {
				assert.LessOrEqual(t, n, 5)
			}
			requireValid(t, tree)
		})
	}
}

// Coincident points can not be separated. Refine must stop rather than
// recurse forever or create empty leaves.
func TestRefine_CoincidentPoints(t *testing.T) {
	for _, rule := range splitrule.All() {
		t.Run(fmt.Sprint(rule), func(t *testing.T) {
			tree := newSliceTree(2)
			for range 20 {
				tree.Insert([]float64{3, 3}, false)
			}
			tree.Insert([]float64{4, 3}, false)
			tree.Refine(rule, 1)

			require.Equal(t, 2, tree.Leaves())
			require.ElementsMatch(t, []int{20, 1}, leafCounts(tree))
			requireValid(t, tree)
		})
	}
}

func TestRefine_Preconditions(t *testing.T) {
	tree := newSliceTree(2)
	tree.Insert([]float64{0, 0}, false)
	require.Panics(t, func() { tree.Refine(splitrule.Midpoint{}, 0) })
	require.Panics(t, func() { tree.Refine(nil, 1) })
	require.Panics(t, func() { tree.Refine(badAxisRule{}, 0) })

	tree.Insert([]float64{1, 1}, false)
	require.Panics(t, func() { tree.Refine(badAxisRule{}, 1) })
}

type badAxisRule struct{}

func (badAxisRule) Split(splitrule.Points, box.AlignedBox, int) (int, float64) { return 7, 0 }

// A rule proposing a position outside the cell is clamped into it.
type outsideRule struct{}

func (outsideRule) Split(_ splitrule.Points, b box.AlignedBox, _ int) (int, float64) {
	return 0, b.Max[0] + 100
}

func TestRefine_ClampsOutsidePositions(t *testing.T) {
	tree := newSliceTree(1)
	tree.InsertRange([][]float64{{0}, {1}, {2}, {3}}, false)
	tree.Refine(outsideRule{}, 1)
	require.Equal(t, 4, tree.Leaves())
	requireValid(t, tree)
	Walk(tree.Root(), func(c Cursor[[]float64], _ int) bool {
		if !c.Leaf() {
			require.LessOrEqual(t, c.PrevMin(), c.SplitPosition())
			require.GreaterOrEqual(t, c.PrevMax(), c.SplitPosition())
		}
		return true
	})
}

func TestRefine_AlreadyRefinedDescends(t *testing.T) {
	defer logger.OnExit()
	modes(t, func(t *testing.T, mode UpdateMode) {
		tc := newTestContext(t, 57)
		tree := newSliceTree(2, WithUpdateMode(mode))
		tree.InsertRange(tc.UniformPoints(100, 2, 1), false)
		tree.Refine(splitrule.Midpoint{}, 16)
		before := tree.Leaves()

		tree.InsertRange(tc.UniformPoints(400, 2, 1), false)
		tree.Refine(splitrule.Midpoint{}, 16)
		require.Greater(t, tree.Leaves(), before)
		for _, n := range leafCounts(tree) {
			require.LessOrEqual(t, n, 16)
		}
		requireValid(t, tree)
	})
}

func TestRefineAt(t *testing.T) {
	tree := newSliceTree(1)
	tree.InsertRange([][]float64{{0}, {1}, {2}, {3}, {10}, {11}, {12}, {13}}, false)
	tree.Refine(splitrule.Midpoint{}, 4)
	require.Equal(t, 2, tree.Leaves())

	tree.RefineAt(tree.Root().Right(), splitrule.LongestMedian{}, 1)
	require.Equal(t, 5, tree.Leaves())
	require.True(t, tree.Root().Left().Leaf())
	requireValid(t, tree)
}

func TestSimulateKdTree_ChildBounds(t *testing.T) {
	tree := newSliceTree(1, WithSimulateKdTree(true))
	tree.InsertRange([][]float64{{0}, {1}, {9}, {10}}, false)
	tree.Refine(splitrule.Midpoint{}, 2)

	root := tree.Root()
	require.Equal(t, 5.0, root.SplitPosition())
	require.Equal(t, 0.0, root.Left().Min())
	require.Equal(t, 5.0, root.Left().Max())
	require.Equal(t, 5.0, root.Right().Min())
	require.Equal(t, 10.0, root.Right().Max())

	tight := newSliceTree(1)
	tight.InsertRange([][]float64{{0}, {1}, {9}, {10}}, false)
	tight.Refine(splitrule.Midpoint{}, 2)
	root = tight.Root()
	require.Equal(t, 0.0, root.Left().Min())
	require.Equal(t, 1.0, root.Left().Max())
	require.Equal(t, 9.0, root.Right().Min())
	require.Equal(t, 10.0, root.Right().Max())
}

func TestSubdivide(t *testing.T) {
	modes(t, func(t *testing.T, mode UpdateMode) {
		tree := newSliceTree(2, WithUpdateMode(mode))
		tree.InsertRange([][]float64{{0, 0}, {1, 4}, {2, 2}, {4, 4}}, false)

		tree.Subdivide(tree.Root(), 1, 3)
		root := tree.Root()
		require.Equal(t, 2, root.Left().Count())
		require.Equal(t, 2, root.Right().Count())
		require.Equal(t, 0.0, root.PrevMin())
		require.Equal(t, 4.0, root.PrevMax())

		// an empty child is allowed
		tree.Subdivide(root.Left(), 0, 0)
		require.Equal(t, 0, tree.Root().Left().Left().Count())
		require.Equal(t, 3, tree.Leaves())
		requireValid(t, tree)

		// the right cell is [0,4]x[3,4]
		require.Panics(t, func() { tree.Subdivide(tree.Root().Right(), 1, 2) })
		require.Panics(t, func() { tree.Subdivide(tree.Root().Right(), 2, 3.5) })
		require.Panics(t, func() { tree.Subdivide(tree.Root(), 0, 1) })
		tree.Subdivide(tree.Root().Right(), 1, 3.5)
		requireValid(t, tree)
	})
}

func TestCursor_Accessors(t *testing.T) {
	tree := newSliceTree(1)
	tree.InsertRange([][]float64{{0}, {1}}, false)
	leaf := tree.Root()
	require.Panics(t, func() { leaf.Left() })
	require.Panics(t, func() { leaf.SplitAxis() })
	require.Panics(t, func() { leaf.SplitPosition() })
	require.Panics(t, func() { leaf.PrevMin() })
	require.True(t, leaf.Parent().Empty())

	var pts []float64
	for it := leaf.Begin(); it != leaf.End(); it = it.Next() {
		pts = append(pts, it.Point()[0])
	}
	require.ElementsMatch(t, []float64{0, 1}, pts)

	tree.Refine(splitrule.Midpoint{}, 1)
	root := tree.Root()
	require.Panics(t, func() { root.Begin() })
	require.Panics(t, func() { root.End() })
	require.Panics(t, func() { root.Points() })
	require.Equal(t, root, root.Left().Parent())
	require.Equal(t, KindIntermediate, root.Kind())

	// the left leaf ends where the right one begins
	left, right := root.Left(), root.Right()
	require.Equal(t, left.End(), right.Begin())
	for _, p := range left.Points() {
		require.Equal(t, 0.0, p[0])
	}
}

func TestMergeAt(t *testing.T) {
	defer logger.OnExit()
	modes(t, func(t *testing.T, mode UpdateMode) {
		tc := newTestContext(t, 61)
		tree := newSliceTree(2, WithUpdateMode(mode))
		tree.InsertRange(tc.UniformPoints(200, 2, 1), false)
		tree.Refine(splitrule.Midpoint{}, 4)

		left := tree.Root().Left()
		count := left.Count()
		tree.MergeAt(left)
		require.True(t, tree.Root().Left().Leaf())
		require.Equal(t, count, tree.Root().Left().Count())
		require.Equal(t, tree.Leaves()-1, intermediates(tree))
		requireValid(t, tree)

		// merging a leaf does nothing
		leaves := tree.Leaves()
		tree.MergeAt(tree.Root().Left())
		require.Equal(t, leaves, tree.Leaves())

		tree.Merge()
		require.Equal(t, 1, tree.Leaves())
		require.Equal(t, 200, tree.Root().Count())
		requireValid(t, tree)
	})
}

func TestEquivalent(t *testing.T) {
	a := newSliceTree(2)
	b := newSliceTree(2, WithUpdateMode(UpdateLazy))
	points := [][]float64{{0, 0}, {1, 5}, {3, 3}, {7, 1}}
	a.InsertRange(points, false)
	b.InsertRange(points, false)
	require.True(t, Equivalent(a, b))

	a.Refine(splitrule.Midpoint{}, 1)
	require.False(t, Equivalent(a, b))
	b.Refine(splitrule.Midpoint{}, 1)
	require.True(t, Equivalent(a, b))
}

func TestRefine_Defaults(t *testing.T) {
	defer logger.OnExit()
	tc := newTestContext(t, 57)
	modes(t, func(t *testing.T, mode UpdateMode) {
		tree := newSliceTree(2, WithUpdateMode(mode))
		tree.InsertRange(tc.ClusteredPoints(500, 2, 10), false)
		tree.Refine(DefaultRule, DefaultBucketSize)

		require.Equal(t, 500, tree.Points())
		for _, n := range leafCounts(tree) {
			require.NotZero(t, n)
			require.LessOrEqual(t, n, DefaultBucketSize)
		}
		requireValid(t, tree)
	})
}

func TestRefine_SlidingRulesKeepTheNearestPointLeft(t *testing.T) {
	tests := []struct {
		name      string
		rule      splitrule.Rule
		xs        []float64
		wantPos   float64
		wantLeft  int
		wantRight int
	}{
		{"sliding midpoint, all right", splitrule.SlidingMidpoint{}, []float64{8, 9}, math.Nextafter(8, math.Inf(1)), 1, 1},
		{"sliding midpoint 2, left sparser", splitrule.SlidingMidpoint2{}, []float64{1, 6, 7, 8}, math.Nextafter(1, math.Inf(1)), 1, 3},
		{"sliding midpoint 2, right sparser", splitrule.SlidingMidpoint2{}, []float64{1, 2, 3, 8}, 8, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := newSliceTree(2)
			tree.ReserveBound(boxOf([]float64{0, 0}, []float64{10, 0}))
			for _, x := range tt.xs {
				tree.Insert([]float64{x, 0}, false)
			}
			tree.Refine(tt.rule, len(tt.xs)-1)

			root := tree.Root()
			require.False(t, root.Leaf())
			require.Equal(t, 0, root.SplitAxis())
			require.Equal(t, tt.wantPos, root.SplitPosition())
			require.Equal(t, tt.wantLeft, root.Left().Count())
			require.Equal(t, tt.wantRight, root.Right().Count())
			requireValid(t, tree)
		})
	}
}
