package kdtree

import (
	"testing"

	"github.com/forestrie/go-pointkdtree/box"
	"github.com/forestrie/go-pointkdtree/kdtreetesting"
	"github.com/stretchr/testify/require"
)

type sliceTree = Tree[[]float64]

func newSliceTree(dim int, opts ...Option) *sliceTree {
	return New[[]float64](dim, SliceLocator{}, opts...)
}

func newTestContext(t *testing.T, seed int64) kdtreetesting.TestContext {
	return kdtreetesting.NewTestContext(t, kdtreetesting.TestConfig{
		Seed:            seed,
		TestLabelPrefix: t.Name(),
	})
}

func requireValid(t *testing.T, tree *sliceTree) {
	t.Helper()
	require.NoError(t, tree.CheckInvariants())
}

// leafCounts returns the point count of every leaf in preorder.
func leafCounts(tree *sliceTree) []int {
	var counts []int
	Walk(tree.Root(), func(c Cursor[[]float64], _ int) bool {
		if c.Leaf() {
			counts = append(counts, c.Count())
		}
		return true
	})
	return counts
}

func intermediates(tree *sliceTree) int {
	return tree.Nodes() - tree.Leaves()
}

func boxOf(min, max []float64) box.AlignedBox { return box.FromBounds(min, max) }

// modes runs fn once for each update mode.
func modes(t *testing.T, fn func(t *testing.T, mode UpdateMode)) {
	for _, mode := range []UpdateMode{UpdateImmediate, UpdateLazy} {
		t.Run(mode.String(), func(t *testing.T) { fn(t, mode) })
	}
}
