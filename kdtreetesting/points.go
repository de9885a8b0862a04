package kdtreetesting

// UniformPoints returns n points spread uniformly over [0,scale)^dim.
func (c *TestContext) UniformPoints(n, dim int, scale float64) [][]float64 {
	points := make([][]float64, n)
	for i := range points {
		p := make([]float64, dim)
		for axis := range p {
			p[axis] = c.Float() * scale
		}
		points[i] = p
	}
	return points
}

// GridPoints returns n points snapped to an integer lattice of the given
// side, so that coincident points and points sharing a coordinate are common.
func (c *TestContext) GridPoints(n, dim, side int) [][]float64 {
	points := make([][]float64, n)
	for i := range points {
		p := make([]float64, dim)
		for axis := range p {
			p[axis] = float64(c.Intn(side))
		}
		points[i] = p
	}
	return points
}

// ClusteredPoints returns n points in a few tight clusters far from the
// centre of [0,scale)^dim, which starves midpoint splits.
func (c *TestContext) ClusteredPoints(n, dim int, scale float64) [][]float64 {
	const clusters = 3
	centres := make([][]float64, clusters)
	for i := range centres {
		centres[i] = make([]float64, dim)
		for axis := range centres[i] {
			centres[i][axis] = scale * (0.9 + 0.1*c.Float())
		}
	}
	points := make([][]float64, n)
	for i := range points {
		centre := centres[c.Intn(clusters)]
		p := make([]float64, dim)
		for axis := range p {
			p[axis] = centre[axis] + c.Float()*scale*1e-3
		}
		points[i] = p
	}
	return points
}

// CubeCorners returns the 2^dim corners of the unit cube.
func CubeCorners(dim int) [][]float64 {
	var points [][]float64
	for i := range 1 << dim {
		p := make([]float64, dim)
		for axis := range p {
			if i&(1<<axis) != 0 {
				p[axis] = 1
			}
		}
		points = append(points, p)
	}
	return points
}
