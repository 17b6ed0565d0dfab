package invert

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/volckit/mogisim/internal/geo"
	"github.com/volckit/mogisim/internal/mogi"
)

func observationGrid() geo.Grid {
	return geo.NewPlane(-4000, 4000, 17, -4000, 4000, 17, 0)
}

func TestMisfitZeroAtTruth(t *testing.T) {
	truth := geo.Source{X: 500, Y: -300, Z: -1200}
	obs := Synthetic(observationGrid(), truth, 7, mogi.DefaultNu, 0, 1)

	at := Misfit(obs, truth, 7, mogi.DefaultNu)
	if at > 1e-10 {
		t.Errorf("expected near-zero misfit at truth, got %g", at)
	}

	off := Misfit(obs, geo.Source{X: 500, Y: -300, Z: -2000}, 7, mogi.DefaultNu)
	if off <= at {
		t.Errorf("expected worse misfit away from truth: %g vs %g", off, at)
	}
}

func TestMisfitSingularTrial(t *testing.T) {
	grid, err := geo.NewPoints([]float64{0}, []float64{0}, []float64{-1000})
	if err != nil {
		t.Fatal(err)
	}
	obs := FromField(grid, geo.NewField(1, []int{1}), 0)

	// Trial source sits exactly on the observation point.
	m := Misfit(obs, geo.Source{Z: -1000}, 5, mogi.DefaultNu)
	if !math.IsInf(m, 1) {
		t.Errorf("expected +Inf for singular trial, got %f", m)
	}
}

func TestMisfitNoiseLevel(t *testing.T) {
	truth := geo.Source{Z: -1500}
	obs := Synthetic(observationGrid(), truth, 10, mogi.DefaultNu, 0.005, 42)

	// Residuals at truth are pure noise, so the sigma-weighted RMS
	// should sit near 1.
	m := Misfit(obs, truth, 10, mogi.DefaultNu)
	if m < 0.7 || m > 1.3 {
		t.Errorf("expected misfit near 1 at truth under noise, got %f", m)
	}
}

func TestGridSearchRecoversLatticeTruth(t *testing.T) {
	truth := geo.Source{X: 0, Y: 1000, Z: -1500}
	obs := Synthetic(observationGrid(), truth, 6, mogi.DefaultNu, 0, 1)

	gs := GridSearch{
		Bounds: Bounds{
			X:        [2]float64{-2000, 2000},
			Y:        [2]float64{-2000, 2000},
			Depth:    [2]float64{-2500, -500},
			Strength: [2]float64{2, 10},
		},
		Steps: 5,
	}

	est, err := gs.Search(context.Background(), obs, mogi.DefaultNu)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	// Truth lies exactly on the lattice: x,y step 1000, depth step
	// 500, strength step 2, and the noiseless misfit there is zero.
	if est.Source.X != 0 || est.Source.Y != 1000 || est.Source.Z != -1500 || est.Strength != 6 {
		t.Errorf("expected exact lattice recovery, got %+v strength %f", est.Source, est.Strength)
	}

	if est.Evals != 5*5*5*5 {
		t.Errorf("expected 625 evaluations, got %d", est.Evals)
	}
}

func TestGridSearchCanceled(t *testing.T) {
	obs := Synthetic(observationGrid(), geo.Source{Z: -1000}, 5, mogi.DefaultNu, 0, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := GridSearch{Bounds: DefaultBounds(obs), Steps: 4}.Search(ctx, obs, mogi.DefaultNu)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFitRecoversOffLatticeTruth(t *testing.T) {
	truth := geo.Source{X: 730, Y: -410, Z: -1340}
	obs := Synthetic(observationGrid(), truth, 7.3, mogi.DefaultNu, 0, 1)

	est, err := Fit(context.Background(), obs, Options{Steps: 8})
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	if math.Abs(est.Source.X-truth.X) > 100 || math.Abs(est.Source.Y-truth.Y) > 100 {
		t.Errorf("horizontal recovery too loose: got (%f, %f)", est.Source.X, est.Source.Y)
	}
	if math.Abs(est.Source.Z-truth.Z) > 150 {
		t.Errorf("depth recovery too loose: got %f", est.Source.Z)
	}
	if math.Abs(est.Strength-7.3) > 0.5 {
		t.Errorf("strength recovery too loose: got %f", est.Strength)
	}
	if est.Evals <= 0 {
		t.Error("expected evaluation count")
	}
}

func TestFitGridOnly(t *testing.T) {
	truth := geo.Source{X: 0, Y: 0, Z: -1000}
	obs := Synthetic(observationGrid(), truth, 5, mogi.DefaultNu, 0, 1)

	grid, err := Fit(context.Background(), obs, Options{Steps: 6, Method: "grid"})
	if err != nil {
		t.Fatalf("grid fit failed: %v", err)
	}

	auto, err := Fit(context.Background(), obs, Options{Steps: 6})
	if err != nil {
		t.Fatalf("auto fit failed: %v", err)
	}

	if auto.Misfit > grid.Misfit {
		t.Errorf("polish should never worsen the misfit: %g vs %g", auto.Misfit, grid.Misfit)
	}
}

func TestFitUnknownMethod(t *testing.T) {
	obs := Synthetic(observationGrid(), geo.Source{Z: -1000}, 5, mogi.DefaultNu, 0, 1)

	_, err := Fit(context.Background(), obs, Options{Method: "annealing"})
	if err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestFitInvalidObservations(t *testing.T) {
	obs := &Observations{
		Points: geo.NewProfile(0, 0, 1000, 0, 5, 0),
		Ux:     make([]float64, 3),
		Uy:     make([]float64, 5),
		Uz:     make([]float64, 5),
	}

	_, err := Fit(context.Background(), obs, Options{})
	if !errors.Is(err, geo.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}
