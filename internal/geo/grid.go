package geo

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Grid holds observation point coordinates in meters, z positive up.
// X, Y and Z always have equal length; Shape records the logical layout
// of the flat slices ({n} for point sets and profiles, {rows, cols} for
// plane grids).
type Grid struct {
	X     []float64
	Y     []float64
	Z     []float64
	Shape []int
}

// Linspace returns n evenly spaced values from a to b inclusive.
// n==1 returns {a}.
func Linspace(a, b float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{a}
	}
	return floats.Span(make([]float64, n), a, b)
}

// NewPlane builds a map-view grid of nx*ny points at elevation z,
// spanning [x0,x1] x [y0,y1]. Points are laid out row-major with rows
// following y, so Shape is {ny, nx}.
func NewPlane(x0, x1 float64, nx int, y0, y1 float64, ny int, z float64) Grid {
	if nx <= 0 || ny <= 0 {
		return Grid{Shape: []int{0, 0}}
	}
	xs := Linspace(x0, x1, nx)
	ys := Linspace(y0, y1, ny)

	n := nx * ny
	g := Grid{
		X:     make([]float64, n),
		Y:     make([]float64, n),
		Z:     make([]float64, n),
		Shape: []int{ny, nx},
	}
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			i := iy*nx + ix
			g.X[i] = xs[ix]
			g.Y[i] = ys[iy]
			g.Z[i] = z
		}
	}
	return g
}

// NewProfile builds n points on the line from (x0,y0) to (x1,y1) at
// elevation z.
func NewProfile(x0, y0, x1, y1 float64, n int, z float64) Grid {
	if n <= 0 {
		return Grid{Shape: []int{0}}
	}
	g := Grid{
		X:     Linspace(x0, x1, n),
		Y:     Linspace(y0, y1, n),
		Z:     make([]float64, n),
		Shape: []int{n},
	}
	for i := range g.Z {
		g.Z[i] = z
	}
	return g
}

// NewPoints builds a grid from arbitrary scattered coordinates.
func NewPoints(xs, ys, zs []float64) (Grid, error) {
	if len(xs) != len(ys) || len(xs) != len(zs) {
		return Grid{}, fmt.Errorf("%w: %d/%d/%d", ErrShapeMismatch, len(xs), len(ys), len(zs))
	}
	return Grid{X: xs, Y: ys, Z: zs, Shape: []int{len(xs)}}, nil
}

// Len returns the number of observation points.
func (g Grid) Len() int {
	return len(g.X)
}

// At returns the coordinates of point i.
func (g Grid) At(i int) (x, y, z float64) {
	return g.X[i], g.Y[i], g.Z[i]
}

// Dims reports the plane layout {cols, rows} when the grid is a 2-D
// plane, ok=false otherwise.
func (g Grid) Dims() (nx, ny int, ok bool) {
	if len(g.Shape) != 2 {
		return 0, 0, false
	}
	return g.Shape[1], g.Shape[0], true
}

// Validate checks that the coordinate arrays agree with each other and
// with Shape.
func (g Grid) Validate() error {
	if len(g.X) != len(g.Y) || len(g.X) != len(g.Z) {
		return fmt.Errorf("%w: %d/%d/%d", ErrShapeMismatch, len(g.X), len(g.Y), len(g.Z))
	}
	n := 1
	for _, d := range g.Shape {
		n *= d
	}
	if len(g.Shape) > 0 && n != len(g.X) {
		return fmt.Errorf("%w: shape %v holds %d points, have %d", ErrShapeMismatch, g.Shape, n, len(g.X))
	}
	return nil
}
