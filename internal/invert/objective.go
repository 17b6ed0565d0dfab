package invert

import (
	"math"

	"github.com/volckit/mogisim/internal/geo"
	"github.com/volckit/mogisim/internal/mogi"
)

// Estimate is a candidate solution with its misfit and the number of
// objective evaluations spent finding it.
type Estimate struct {
	Source   geo.Source
	Strength float64
	Misfit   float64
	Evals    int
}

// Misfit returns the sigma-weighted RMS residual between the model
// response of (src, strength) and the observations. Trial sources that
// touch an observation point produce +Inf and are thereby rejected by
// every search path.
func Misfit(obs *Observations, src geo.Source, strength, nu float64) float64 {
	n := obs.Len()
	if n == 0 {
		return math.Inf(1)
	}

	sigma := obs.Sigma
	if sigma <= 0 {
		sigma = DefaultSigma
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		mx, my, mz := mogi.Displace(
			obs.Points.X[i]-src.X, obs.Points.Y[i]-src.Y, obs.Points.Z[i]-src.Z, strength, nu)

		rx := (mx - obs.Ux[i]) / sigma
		ry := (my - obs.Uy[i]) / sigma
		rz := (mz - obs.Uz[i]) / sigma
		sum += rx*rx + ry*ry + rz*rz
	}

	rms := math.Sqrt(sum / float64(3*n))
	if math.IsNaN(rms) {
		return math.Inf(1)
	}
	return rms
}
