package splitrule

import (
	"github.com/forestrie/go-pointkdtree/box"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// LongestMedian cuts the longest axis of the cell at the median coordinate of
// the points. For an even count the upper median is used, so the point at the
// median goes right and both sides are populated.
type LongestMedian struct{}

func (LongestMedian) Split(points Points, bound box.AlignedBox, _ int) (int, float64) {
	axis := bound.LongestAxis()
	if points.Len() == 0 {
		return axis, midpoint(bound, axis)
	}
	c := coords(points.Coordinates(nil, axis))
	k := kdtree.Select(c, len(c)/2)
	return axis, c[k]
}

func (r LongestMedian) String() string { return name(r) }

// Hybrid is Midpoint at odd depths and LongestMedian at even depths.
type Hybrid struct{}

func (Hybrid) Split(points Points, bound box.AlignedBox, depth int) (int, float64) {
	if depth%2 == 1 {
		return Midpoint{}.Split(points, bound, depth)
	}
	return LongestMedian{}.Split(points, bound, depth)
}

func (r Hybrid) String() string { return name(r) }

// coords orders coordinates for selection.
type coords []float64

func (c coords) Len() int { return len(c) }

func (c coords) Less(i, j int) bool { return c[i] < c[j] }

func (c coords) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

func (c coords) Slice(start, end int) kdtree.SortSlicer { return c[start:end] }
