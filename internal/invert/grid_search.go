package invert

import (
	"context"
	"math"

	"github.com/volckit/mogisim/internal/geo"
)

// Bounds delimits the search box. Depth entries are z coordinates
// (negative below the surface).
type Bounds struct {
	X        [2]float64
	Y        [2]float64
	Depth    [2]float64
	Strength [2]float64
}

// DefaultBounds derives a search box from the observation extent:
// horizontal bounds cover the points, depth spans a decade below the
// surface, strength is symmetric.
func DefaultBounds(obs *Observations) Bounds {
	x0, x1 := math.Inf(1), math.Inf(-1)
	y0, y1 := math.Inf(1), math.Inf(-1)
	for i := 0; i < obs.Len(); i++ {
		x0 = math.Min(x0, obs.Points.X[i])
		x1 = math.Max(x1, obs.Points.X[i])
		y0 = math.Min(y0, obs.Points.Y[i])
		y1 = math.Max(y1, obs.Points.Y[i])
	}
	if obs.Len() == 0 {
		x0, x1, y0, y1 = -5000, 5000, -5000, 5000
	}
	return Bounds{
		X:        [2]float64{x0, x1},
		Y:        [2]float64{y0, y1},
		Depth:    [2]float64{-10000, -200},
		Strength: [2]float64{-50, 50},
	}
}

// GridSearch scans a regular lattice over the bounds, Steps samples
// per axis.
type GridSearch struct {
	Bounds Bounds
	Steps  int
}

// Search walks the lattice explicitly, keeping the best trial. The
// context is checked once per x slab; cancellation returns the error
// with whatever had been found so far.
func (g GridSearch) Search(ctx context.Context, obs *Observations, nu float64) (Estimate, error) {
	steps := g.Steps
	if steps < 2 {
		steps = 8
	}

	xs := geo.Linspace(g.Bounds.X[0], g.Bounds.X[1], steps)
	ys := geo.Linspace(g.Bounds.Y[0], g.Bounds.Y[1], steps)
	zs := geo.Linspace(g.Bounds.Depth[0], g.Bounds.Depth[1], steps)
	ss := geo.Linspace(g.Bounds.Strength[0], g.Bounds.Strength[1], steps)

	best := Estimate{Misfit: math.Inf(1)}

	for _, x := range xs {
		if err := ctx.Err(); err != nil {
			return best, err
		}
		for _, y := range ys {
			for _, z := range zs {
				for _, s := range ss {
					src := geo.Source{X: x, Y: y, Z: z}
					m := Misfit(obs, src, s, nu)
					best.Evals++
					if m < best.Misfit {
						best.Misfit = m
						best.Source = src
						best.Strength = s
					}
				}
			}
		}
	}

	return best, nil
}
