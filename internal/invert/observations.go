// Package invert estimates point-source parameters from observed
// surface displacements: a coarse bounded grid search refined by
// Nelder-Mead, both driving the same weighted misfit.
package invert

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/volckit/mogisim/internal/geo"
	"github.com/volckit/mogisim/internal/mogi"
)

// DefaultSigma weights residuals when observations carry no
// measurement uncertainty of their own.
const DefaultSigma = 0.01

// Observations holds measured three-component displacements at
// scattered points. Sigma is the per-component standard deviation in
// meters; zero means DefaultSigma.
type Observations struct {
	Points geo.Grid
	Ux     []float64
	Uy     []float64
	Uz     []float64
	Sigma  float64
}

func (o *Observations) Len() int {
	return o.Points.Len()
}

func (o *Observations) Validate() error {
	if err := o.Points.Validate(); err != nil {
		return err
	}
	n := o.Points.Len()
	if len(o.Ux) != n || len(o.Uy) != n || len(o.Uz) != n {
		return fmt.Errorf("%w: %d points, %d/%d/%d components",
			geo.ErrShapeMismatch, n, len(o.Ux), len(o.Uy), len(o.Uz))
	}
	return nil
}

// FromField wraps a computed field as observations, for demos and
// round-trip tests.
func FromField(grid geo.Grid, f geo.Field, sigma float64) *Observations {
	return &Observations{
		Points: grid,
		Ux:     f.Ux,
		Uy:     f.Uy,
		Uz:     f.Uz,
		Sigma:  sigma,
	}
}

// Synthetic generates observations of a known source with additive
// Gaussian noise. The seed fixes the noise realization.
func Synthetic(grid geo.Grid, truth geo.Source, strength, nu, noise float64, seed uint64) *Observations {
	obs := &Observations{
		Points: grid,
		Ux:     make([]float64, grid.Len()),
		Uy:     make([]float64, grid.Len()),
		Uz:     make([]float64, grid.Len()),
		Sigma:  noise,
	}

	dist := distuv.Normal{Mu: 0, Sigma: noise, Src: rand.NewPCG(seed, seed)}

	for i := 0; i < grid.Len(); i++ {
		ux, uy, uz := mogi.Displace(
			grid.X[i]-truth.X, grid.Y[i]-truth.Y, grid.Z[i]-truth.Z, strength, nu)

		if noise > 0 {
			ux += dist.Rand()
			uy += dist.Rand()
			uz += dist.Rand()
		}

		obs.Ux[i] = ux
		obs.Uy[i] = uy
		obs.Uz[i] = uz
	}
	return obs
}
