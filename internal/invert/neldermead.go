package invert

import (
	"gonum.org/v1/gonum/optimize"

	"github.com/volckit/mogisim/internal/geo"
)

// NelderMead refines an estimate with a local simplex search over
// (x, y, z, strength). The returned estimate keeps whichever misfit is
// lower, so a failed polish never loses the start.
func NelderMead(obs *Observations, start Estimate, nu float64) (Estimate, error) {
	problem := optimize.Problem{
		Func: func(v []float64) float64 {
			return Misfit(obs, geo.Source{X: v[0], Y: v[1], Z: v[2]}, v[3], nu)
		},
	}

	x0 := []float64{start.Source.X, start.Source.Y, start.Source.Z, start.Strength}

	res, err := optimize.Minimize(problem, x0, nil, &optimize.NelderMead{})
	if err != nil {
		return start, err
	}

	refined := Estimate{
		Source:   geo.Source{X: res.X[0], Y: res.X[1], Z: res.X[2]},
		Strength: res.X[3],
		Misfit:   res.F,
		Evals:    start.Evals + res.Stats.FuncEvaluations,
	}
	if refined.Misfit > start.Misfit {
		refined.Source = start.Source
		refined.Strength = start.Strength
		refined.Misfit = start.Misfit
	}
	return refined, nil
}
