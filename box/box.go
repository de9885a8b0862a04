// Package box provides the axis aligned bounding box used for tree and node
// bounds.
package box

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// AlignedBox is one closed interval per axis. A box with Min > Max on any
// axis is empty.
type AlignedBox struct {
	Min []float64
	Max []float64
}

// New returns an empty box of the given dimension. Extending it by any point
// yields the degenerate box holding exactly that point.
func New(dimension int) AlignedBox {
	b := AlignedBox{
		Min: make([]float64, dimension),
		Max: make([]float64, dimension),
	}
	for i := range dimension {
		b.Min[i] = math.Inf(1)
		b.Max[i] = math.Inf(-1)
	}
	return b
}

// Infinite returns the box covering all of space.
func Infinite(dimension int) AlignedBox {
	b := AlignedBox{
		Min: make([]float64, dimension),
		Max: make([]float64, dimension),
	}
	for i := range dimension {
		b.Min[i] = math.Inf(-1)
		b.Max[i] = math.Inf(1)
	}
	return b
}

// FromBounds copies min and max into a new box.
func FromBounds(min, max []float64) AlignedBox {
	if len(min) != len(max) {
		panic("box: min and max dimension differ")
	}
	return AlignedBox{
		Min: append([]float64(nil), min...),
		Max: append([]float64(nil), max...),
	}
}

func (b AlignedBox) Dimension() int { return len(b.Min) }

func (b AlignedBox) Empty() bool {
	for i := range b.Min {
		if b.Min[i] > b.Max[i] {
			return true
		}
	}
	return false
}

func (b AlignedBox) Clone() AlignedBox {
	return FromBounds(b.Min, b.Max)
}

// Extend grows b to also cover o.
func (b *AlignedBox) Extend(o AlignedBox) {
	for i := range b.Min {
		b.Min[i] = math.Min(b.Min[i], o.Min[i])
		b.Max[i] = math.Max(b.Max[i], o.Max[i])
	}
}

// ExtendPoint grows b to cover the point p.
func (b *AlignedBox) ExtendPoint(p []float64) {
	for i := range b.Min {
		b.ExtendAxis(i, p[i])
	}
}

func (b *AlignedBox) ExtendAxis(axis int, v float64) {
	if v < b.Min[axis] {
		b.Min[axis] = v
	}
	if v > b.Max[axis] {
		b.Max[axis] = v
	}
}

// Extent is Max - Min on the axis. It is negative for an empty axis.
func (b AlignedBox) Extent(axis int) float64 {
	return b.Max[axis] - b.Min[axis]
}

// Extents returns Max - Min for every axis.
func (b AlignedBox) Extents() []float64 {
	e := append([]float64(nil), b.Max...)
	floats.Sub(e, b.Min)
	return e
}

// LongestAxis is the axis of greatest extent. Ties go to the lowest axis.
func (b AlignedBox) LongestAxis() int {
	if len(b.Min) == 0 {
		panic("box: zero dimension")
	}
	return floats.MaxIdx(b.Extents())
}

// Contains reports whether p lies in the closed box.
func (b AlignedBox) Contains(p []float64) bool {
	for i := range b.Min {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// ContainsBox reports whether o lies inside b. An empty o is contained by any
// box.
func (b AlignedBox) ContainsBox(o AlignedBox) bool {
	if o.Empty() {
		return true
	}
	for i := range b.Min {
		if o.Min[i] < b.Min[i] || o.Max[i] > b.Max[i] {
			return false
		}
	}
	return true
}

func (b AlignedBox) Equal(o AlignedBox) bool {
	return floats.Equal(b.Min, o.Min) && floats.Equal(b.Max, o.Max)
}

func (b AlignedBox) String() string {
	var sb strings.Builder
	for i := range b.Min {
		if i > 0 {
			sb.WriteString("x")
		}
		fmt.Fprintf(&sb, "[%g,%g]", b.Min[i], b.Max[i])
	}
	return sb.String()
}
