package analysis

import (
	"math"
	"testing"

	"github.com/volckit/mogisim/internal/geo"
	"github.com/volckit/mogisim/internal/mogi"
)

func singleSourceField(t *testing.T, grid geo.Grid) geo.Field {
	t.Helper()
	set := geo.SourceSet{Sources: []geo.Source{{Z: -1000}}, Strengths: []float64{10}}
	f, err := mogi.Compute(grid, set, mogi.DefaultNu)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	return f
}

func TestLineProfile(t *testing.T) {
	grid := geo.NewProfile(0, 0, 10000, 0, 50, 0)
	f := singleSourceField(t, grid)

	p := LineProfile(grid, f, 0, 0)

	if len(p.Dist) != 50 {
		t.Fatalf("expected 50 samples, got %d", len(p.Dist))
	}

	for i := 1; i < len(p.Dist); i++ {
		if p.Dist[i] <= p.Dist[i-1] {
			t.Fatalf("distances not increasing at %d", i)
		}
	}

	// Inflation pushes material outward and upward everywhere.
	for i := range p.Ur {
		if p.Ur[i] <= 0 || p.Uz[i] <= 0 {
			t.Fatalf("expected positive ur and uz at sample %d, got %f %f", i, p.Ur[i], p.Uz[i])
		}
	}
}

func TestLineProfileSkipsCenter(t *testing.T) {
	grid := geo.NewProfile(0, 0, 1000, 0, 11, 0)
	f := singleSourceField(t, grid)

	p := LineProfile(grid, f, 0, 0)

	if len(p.Dist) != 10 {
		t.Errorf("expected center point skipped, got %d samples", len(p.Dist))
	}
}

func TestRadialProfileDecays(t *testing.T) {
	grid := geo.NewPlane(-8000, 8000, 81, -8000, 8000, 81, 0)
	f := singleSourceField(t, grid)

	p := RadialProfile(grid, f, 0, 0, 20)

	if len(p.Dist) < 10 {
		t.Fatalf("expected at least 10 populated bins, got %d", len(p.Dist))
	}

	if p.Uz[0] <= p.Uz[len(p.Uz)-1] {
		t.Errorf("expected uz to decay outward: first %f, last %f", p.Uz[0], p.Uz[len(p.Uz)-1])
	}
}

func TestDecayExponentFarField(t *testing.T) {
	// Far from the source the radial component falls off as rho^-2.
	grid := geo.NewProfile(10000, 0, 50000, 0, 100, 0)
	f := singleSourceField(t, grid)

	p := LineProfile(grid, f, 0, 0)
	k := DecayExponent(p.Dist, p.Ur)

	if math.Abs(k-(-2)) > 0.1 {
		t.Errorf("expected decay exponent near -2, got %f", k)
	}
}

func TestDecayExponentDegenerate(t *testing.T) {
	if !math.IsNaN(DecayExponent([]float64{100}, []float64{1})) {
		t.Error("expected NaN for a single sample")
	}

	if !math.IsNaN(DecayExponent(nil, nil)) {
		t.Error("expected NaN for empty input")
	}
}
