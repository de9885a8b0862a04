package kdtreetesting

import "fmt"

type OpKind uint8

const (
	OpInsert OpKind = iota
	OpInsertBatch
	OpInsertHidden
	OpErase
	OpHide
	OpShow
	OpRefine
	OpMerge
	OpMergeSubtree
	OpHideAll
	OpShowAll
	opKinds
)

var opNames = [...]string{
	"insert", "insert-batch", "insert-hidden", "erase", "hide", "show",
	"refine", "merge", "merge-subtree", "hide-all", "show-all",
}

func (k OpKind) String() string {
	if k >= opKinds {
		return fmt.Sprintf("op(%d)", uint8(k))
	}
	return opNames[k]
}

// Op is one step of a generated operation sequence. Pick selects the target
// point or node; the driver reduces it modulo whatever is available.
type Op struct {
	Kind   OpKind
	Points [][]float64
	Pick   int
	Rule   int
	Bucket int
}

// Ops generates a sequence of n operations over points in [0,1)^dim. The mix
// is weighted towards insertion so the trees grow. rules is the number of
// split rules the driver can pick from.
func (c *TestContext) Ops(n, dim, rules int) []Op {
	weights := []struct {
		kind   OpKind
		weight int
	}{
		{OpInsert, 8},
		{OpInsertBatch, 3},
		{OpInsertHidden, 2},
		{OpErase, 4},
		{OpHide, 3},
		{OpShow, 3},
		{OpRefine, 3},
		{OpMerge, 1},
		{OpMergeSubtree, 1},
		{OpHideAll, 1},
		{OpShowAll, 1},
	}
	total := 0
	for _, w := range weights {
		total += w.weight
	}

	ops := make([]Op, 0, n)
	for range n {
		roll := c.Intn(total)
		kind := OpInsert
		for _, w := range weights {
			if roll < w.weight {
				kind = w.kind
				break
			}
			roll -= w.weight
		}

		op := Op{Kind: kind, Pick: c.Intn(1 << 20)}
		switch kind {
		case OpInsert, OpInsertHidden:
			op.Points = c.UniformPoints(1, dim, 1)
		case OpInsertBatch:
			op.Points = c.UniformPoints(1+c.Intn(16), dim, 1)
		case OpRefine:
			op.Rule = c.Intn(rules)
			op.Bucket = 1 + c.Intn(4)
		}
		ops = append(ops, op)
	}
	return ops
}
