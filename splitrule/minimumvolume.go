package splitrule

import (
	"sort"

	"github.com/forestrie/go-pointkdtree/box"
)

const (
	gapShareOfExtent = 0.25
	medianShareOfGap = 0.75
)

// MinimumVolume looks, on every axis, for the widest stretch of empty space:
// between adjacent points or between the outermost points and the cell bound.
// It cuts through the middle of the widest one when that gap exceeds a quarter
// of the axis extent and the median cut of the longest axis would leave less
// than three quarters of it. Otherwise it cuts between the two median points of
// the longest axis.
type MinimumVolume struct{}

func (MinimumVolume) Split(points Points, bound box.AlignedBox, depth int) (int, float64) {
	n := points.Len()
	if n < 2 {
		return Midpoint{}.Split(points, bound, depth)
	}

	var (
		c        []float64
		gapAxis  = -1
		gapPos   float64
		maxGap   float64
		longest  = bound.LongestAxis()
		medGap   float64
		medianAt float64
	)
	for axis := range bound.Dimension() {
		c = points.Coordinates(c, axis)
		sort.Float64s(c)

		consider := func(gap, pos float64) {
			if gap > maxGap {
				maxGap, gapAxis, gapPos = gap, axis, pos
			}
		}
		consider(c[0]-bound.Min[axis], (bound.Min[axis]+c[0])/2)
		for i := 1; i < n; i++ {
			consider(c[i]-c[i-1], (c[i-1]+c[i])/2)
		}
		consider(bound.Max[axis]-c[n-1], (c[n-1]+bound.Max[axis])/2)

		if axis == longest {
			m := n / 2
			medGap = c[m] - c[m-1]
			medianAt = (c[m-1] + c[m]) / 2
		}
	}

	if gapAxis >= 0 &&
		maxGap > gapShareOfExtent*bound.Extent(gapAxis) &&
		medGap < medianShareOfGap*maxGap {
		return gapAxis, gapPos
	}
	return longest, medianAt
}

func (r MinimumVolume) String() string { return name(r) }
