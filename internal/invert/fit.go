package invert

import (
	"context"
	"fmt"

	"github.com/volckit/mogisim/internal/geo"
	"github.com/volckit/mogisim/internal/mogi"
)

// Options selects the search strategy. Zero values mean: bounds derived
// from the observations, 10 steps per axis, default Poisson ratio, and
// the combined grid+polish method.
type Options struct {
	Bounds *Bounds
	Steps  int
	Nu     float64
	Method string // "grid", "nm" or "auto"
}

// Fit estimates a single source from observations. "grid" stops after
// the lattice scan, "nm" polishes from the bounds center, "auto" (the
// default) scans then polishes.
func Fit(ctx context.Context, obs *Observations, opts Options) (Estimate, error) {
	if err := obs.Validate(); err != nil {
		return Estimate{}, err
	}

	bounds := opts.Bounds
	if bounds == nil {
		b := DefaultBounds(obs)
		bounds = &b
	}
	steps := opts.Steps
	if steps == 0 {
		steps = 10
	}
	nu := opts.Nu
	if nu == 0 {
		nu = mogi.DefaultNu
	}

	switch opts.Method {
	case "", "auto":
		coarse, err := GridSearch{Bounds: *bounds, Steps: steps}.Search(ctx, obs, nu)
		if err != nil {
			return coarse, err
		}
		return NelderMead(obs, coarse, nu)

	case "grid":
		return GridSearch{Bounds: *bounds, Steps: steps}.Search(ctx, obs, nu)

	case "nm":
		start := Estimate{
			Source: centerSource(*bounds),
		}
		start.Strength = (bounds.Strength[0] + bounds.Strength[1]) / 2
		start.Misfit = Misfit(obs, start.Source, start.Strength, nu)
		start.Evals = 1
		return NelderMead(obs, start, nu)

	default:
		return Estimate{}, fmt.Errorf("invert: unknown method %q", opts.Method)
	}
}

func centerSource(b Bounds) geo.Source {
	return geo.Source{
		X: (b.X[0] + b.X[1]) / 2,
		Y: (b.Y[0] + b.Y[1]) / 2,
		Z: (b.Depth[0] + b.Depth[1]) / 2,
	}
}
