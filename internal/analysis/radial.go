// Package analysis extracts radial structure from computed
// displacement fields: profiles around a source axis and far-field
// decay rates.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/volckit/mogisim/internal/geo"
)

// Profile is displacement versus horizontal distance from a center.
// Ur is the signed radial component (positive pointing away from the
// center), Uz the vertical component.
type Profile struct {
	Dist []float64
	Ur   []float64
	Uz   []float64
}

// LineProfile reads samples in grid order, measuring distance from
// (cx, cy). Intended for grids built with geo.NewProfile. Non-finite
// samples and the center point itself are skipped.
func LineProfile(grid geo.Grid, f geo.Field, cx, cy float64) Profile {
	p := Profile{}
	for i := 0; i < grid.Len(); i++ {
		dx := grid.X[i] - cx
		dy := grid.Y[i] - cy
		d := math.Hypot(dx, dy)

		ur, ok := radialComponent(f.Ux[i], f.Uy[i], dx, dy, d)
		if !ok || !finite(ur, f.Uz[i]) {
			continue
		}

		p.Dist = append(p.Dist, d)
		p.Ur = append(p.Ur, ur)
		p.Uz = append(p.Uz, f.Uz[i])
	}
	return p
}

// RadialProfile bins every sample of an arbitrary grid by horizontal
// distance from (cx, cy) and averages each bin. Empty bins are dropped.
func RadialProfile(grid geo.Grid, f geo.Field, cx, cy float64, bins int) Profile {
	if bins < 1 || grid.Len() == 0 {
		return Profile{}
	}

	maxDist := 0.0
	for i := 0; i < grid.Len(); i++ {
		d := math.Hypot(grid.X[i]-cx, grid.Y[i]-cy)
		if d > maxDist {
			maxDist = d
		}
	}
	if maxDist == 0 {
		return Profile{}
	}

	sumUr := make([]float64, bins)
	sumUz := make([]float64, bins)
	sumD := make([]float64, bins)
	count := make([]int, bins)

	for i := 0; i < grid.Len(); i++ {
		dx := grid.X[i] - cx
		dy := grid.Y[i] - cy
		d := math.Hypot(dx, dy)

		ur, ok := radialComponent(f.Ux[i], f.Uy[i], dx, dy, d)
		if !ok || !finite(ur, f.Uz[i]) {
			continue
		}

		b := int(d / maxDist * float64(bins))
		if b >= bins {
			b = bins - 1
		}
		sumUr[b] += ur
		sumUz[b] += f.Uz[i]
		sumD[b] += d
		count[b]++
	}

	p := Profile{}
	for b := 0; b < bins; b++ {
		if count[b] == 0 {
			continue
		}
		n := float64(count[b])
		p.Dist = append(p.Dist, sumD[b]/n)
		p.Ur = append(p.Ur, sumUr[b]/n)
		p.Uz = append(p.Uz, sumUz[b]/n)
	}
	return p
}

// DecayExponent fits |value| ~ dist^k on a log-log scale and returns k.
// Zero and non-finite samples are skipped; NaN when fewer than two
// usable samples remain.
func DecayExponent(dist, values []float64) float64 {
	var lx, ly []float64
	for i := range dist {
		if i >= len(values) {
			break
		}
		v := math.Abs(values[i])
		if dist[i] <= 0 || v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		lx = append(lx, math.Log(dist[i]))
		ly = append(ly, math.Log(v))
	}
	if len(lx) < 2 {
		return math.NaN()
	}

	_, slope := stat.LinearRegression(lx, ly, nil, false)
	return slope
}

func radialComponent(ux, uy, dx, dy, d float64) (float64, bool) {
	if d == 0 {
		return 0, false
	}
	return (ux*dx + uy*dy) / d, true
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
