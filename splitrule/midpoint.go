package splitrule

import (
	"math"

	"github.com/forestrie/go-pointkdtree/box"
)

// Midpoint halves the longest axis of the cell.
type Midpoint struct{}

func (Midpoint) Split(_ Points, bound box.AlignedBox, _ int) (int, float64) {
	axis := bound.LongestAxis()
	return axis, midpoint(bound, axis)
}

func (r Midpoint) String() string { return name(r) }

// SlidingMidpoint starts from the midpoint. If every point falls on one side
// the plane slides onto the nearest point: past it when the points lie to the
// right, so that point goes left and neither child is empty. Only coincident
// points still come back one sided.
type SlidingMidpoint struct{}

func (SlidingMidpoint) Split(points Points, bound box.AlignedBox, _ int) (int, float64) {
	axis := bound.LongestAxis()
	pos := midpoint(bound, axis)
	if points.Len() == 0 {
		return axis, pos
	}
	lo, hi := extent(points.Coordinates(nil, axis))
	return axis, slide(pos, lo, hi)
}

func (r SlidingMidpoint) String() string { return name(r) }

// slide moves a one sided plane at pos onto the points spanning [lo,hi].
func slide(pos, lo, hi float64) float64 {
	switch {
	case hi < pos:
		return hi
	case lo >= pos && lo < hi:
		return math.Nextafter(lo, math.Inf(1))
	case lo >= pos:
		return lo
	}
	return pos
}

// SlidingMidpoint2 slides as SlidingMidpoint does. When both sides hold points
// the plane moves towards the side holding fewer, stopping against its
// extreme point, which stays on that side. Equal counts keep the midpoint.
type SlidingMidpoint2 struct{}

func (SlidingMidpoint2) Split(points Points, bound box.AlignedBox, _ int) (int, float64) {
	axis := bound.LongestAxis()
	pos := midpoint(bound, axis)
	if points.Len() == 0 {
		return axis, pos
	}

	c := points.Coordinates(nil, axis)
	lo, hi := extent(c)
	var leftCount, rightCount int
	leftMax, rightMin := math.Inf(-1), math.Inf(1)
	for _, x := range c {
		if x < pos {
			leftMax = math.Max(leftMax, x)
			leftCount++
			continue
		}
		rightMin = math.Min(rightMin, x)
		rightCount++
	}

	switch {
	case leftCount == 0 || rightCount == 0:
		return axis, slide(pos, lo, hi)
	case leftCount < rightCount:
		return axis, math.Nextafter(leftMax, math.Inf(1))
	case rightCount < leftCount:
		return axis, rightMin
	default:
		return axis, pos
	}
}

func (r SlidingMidpoint2) String() string { return name(r) }

// Fair halves the extent of the points, not the cell, along the longest axis
// of the cell.
type Fair struct{}

func (Fair) Split(points Points, bound box.AlignedBox, _ int) (int, float64) {
	axis := bound.LongestAxis()
	if points.Len() == 0 {
		return axis, midpoint(bound, axis)
	}
	lo, hi := extent(points.Coordinates(nil, axis))
	return axis, (lo + hi) / 2
}

func (r Fair) String() string { return name(r) }
