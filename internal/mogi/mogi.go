package mogi

import (
	"math"

	"github.com/volckit/mogisim/internal/geo"
)

const (
	// DefaultNu is Poisson's ratio for a standard elastic half-space.
	DefaultNu = 0.25

	// VolumeFactor converts a dimensionless strength to a volume
	// change in cubic meters.
	VolumeFactor = 1e6
)

// Displace evaluates the single-source formula at one observation
// point given in source-local coordinates (dx,dy,dz) = observation
// minus source position.
func Displace(dx, dy, dz, strength, nu float64) (ux, uy, uz float64) {
	theta := math.Atan2(dy, dx)
	rho := math.Hypot(dy, dx)
	r := math.Hypot(dz, rho)

	dv := strength * VolumeFactor
	c := (1 - nu) / math.Pi * dv

	r3 := r * r * r
	ur := c * rho / r3
	uz = c * dz / r3
	ux = ur * math.Cos(theta)
	uy = ur * math.Sin(theta)
	return ux, uy, uz
}

// ComputeAt sums the displacement of every source in set at a single
// observation point. The set must already be paired (see
// [geo.SourceSet.Validate]); sources are applied in order.
func ComputeAt(x, y, z float64, set geo.SourceSet, nu float64) (ux, uy, uz float64) {
	for i, src := range set.Sources {
		px, py, pz := Displace(x-src.X, y-src.Y, z-src.Z, set.Strengths[i], nu)
		ux += px
		uy += py
		uz += pz
	}
	return ux, uy, uz
}

// Compute evaluates the superposed displacement field of set over grid.
// It fails fast on unpaired sources and inconsistent grids; numeric
// singularities (observation point on a source) are not errors and
// propagate as Inf/NaN samples.
func Compute(grid geo.Grid, set geo.SourceSet, nu float64) (geo.Field, error) {
	if err := set.Validate(); err != nil {
		return geo.Field{}, err
	}
	if err := grid.Validate(); err != nil {
		return geo.Field{}, err
	}

	f := geo.NewField(grid.Len(), grid.Shape)
	for i := 0; i < grid.Len(); i++ {
		f.Ux[i], f.Uy[i], f.Uz[i] = ComputeAt(grid.X[i], grid.Y[i], grid.Z[i], set, nu)
	}
	return f, nil
}
