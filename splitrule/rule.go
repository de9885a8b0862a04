package splitrule

import (
	"fmt"

	"github.com/forestrie/go-pointkdtree/box"
	"gonum.org/v1/gonum/floats"
)

// Points is the read view a rule gets of the points in a leaf.
type Points interface {
	Len() int
	// Coordinates appends the coordinate of every point on axis to dst[:0]
	// and returns it.
	Coordinates(dst []float64, axis int) []float64
}

// Rule chooses the axis and position at which a leaf is split.
type Rule interface {
	Split(points Points, bound box.AlignedBox, depth int) (axis int, position float64)
}

// PointSlice adapts a slice of coordinate vectors to Points.
type PointSlice [][]float64

func (s PointSlice) Len() int { return len(s) }

func (s PointSlice) Coordinates(dst []float64, axis int) []float64 {
	dst = dst[:0]
	for _, p := range s {
		dst = append(dst, p[axis])
	}
	return dst
}

// All returns one value of every rule.
func All() []Rule {
	return []Rule{
		Midpoint{},
		SlidingMidpoint{},
		SlidingMidpoint2{},
		LongestMedian{},
		Fair{},
		Hybrid{},
		MinimumVolume{},
	}
}

func midpoint(bound box.AlignedBox, axis int) float64 {
	return (bound.Min[axis] + bound.Max[axis]) / 2
}

// extent returns the min and max coordinate of the points on axis.
func extent(c []float64) (lo, hi float64) {
	return floats.Min(c), floats.Max(c)
}

func name(r Rule) string { return fmt.Sprintf("%T", r) }
