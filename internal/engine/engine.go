// Package engine evaluates displacement fields over observation grids,
// partitioning the work across CPU workers. Partitioning is an
// optimization only: every point sums its sources in set order, so the
// output is bit-identical to a serial evaluation.
package engine

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/volckit/mogisim/internal/geo"
	"github.com/volckit/mogisim/internal/metrics"
	"github.com/volckit/mogisim/internal/mogi"
)

type Config struct {
	Workers  int
	MinChunk int
	Nu       float64
}

func DefaultConfig() Config {
	return Config{
		Workers:  runtime.NumCPU(),
		MinChunk: 2048,
		Nu:       mogi.DefaultNu,
	}
}

type Engine struct {
	cfg     Config
	metrics []metrics.Metric
	log     *zap.Logger
}

// New builds an engine. A nil logger disables logging. Zero config
// fields fall back to defaults.
func New(cfg Config, log *zap.Logger) *Engine {
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.MinChunk < 1 {
		cfg.MinChunk = 2048
	}
	if cfg.Nu == 0 {
		cfg.Nu = mogi.DefaultNu
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{cfg: cfg, log: log}
}

// AddMetric registers an accumulator applied to every sample after the
// field is computed.
func (e *Engine) AddMetric(m metrics.Metric) {
	e.metrics = append(e.metrics, m)
}

// Nu returns the Poisson ratio the engine evaluates with.
func (e *Engine) Nu() float64 {
	return e.cfg.Nu
}

type Result struct {
	Grid    geo.Grid
	Field   geo.Field
	Stats   map[string]float64
	Elapsed time.Duration
	Points  int
	Sources int
}

// Run computes the superposed field of set over grid. It fails fast on
// unpaired sources or inconsistent grids and returns ctx.Err() on
// cancellation; singular samples propagate as Inf/NaN, never an error.
func (e *Engine) Run(ctx context.Context, grid geo.Grid, set geo.SourceSet) (*Result, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	field := geo.NewField(grid.Len(), grid.Shape)

	ParallelFor(ctx, grid.Len(), e.cfg.MinChunk, e.cfg.Workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			field.Ux[i], field.Uy[i], field.Uz[i] = mogi.ComputeAt(grid.X[i], grid.Y[i], grid.Z[i], set, e.cfg.Nu)
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := make(map[string]float64, len(e.metrics))
	for _, m := range e.metrics {
		m.Reset()
		for i := 0; i < grid.Len(); i++ {
			m.Observe(grid.X[i], grid.Y[i], grid.Z[i], field.Ux[i], field.Uy[i], field.Uz[i])
		}
		stats[m.Name()] = m.Value()
	}

	elapsed := time.Since(start)
	e.log.Debug("field computed",
		zap.Int("points", grid.Len()),
		zap.Int("sources", set.Len()),
		zap.Duration("elapsed", elapsed),
	)

	return &Result{
		Grid:    grid,
		Field:   field,
		Stats:   stats,
		Elapsed: elapsed,
		Points:  grid.Len(),
		Sources: set.Len(),
	}, nil
}
