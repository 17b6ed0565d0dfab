// Package assim implements sequential importance resampling (a
// bootstrap particle filter) over point-source parameters. Each step
// jitters the ensemble, weights particles by the Gaussian likelihood
// of the observation residuals, and resamples systematically when the
// effective sample size drops.
package assim

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"runtime"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/volckit/mogisim/internal/engine"
	"github.com/volckit/mogisim/internal/geo"
	"github.com/volckit/mogisim/internal/invert"
	"github.com/volckit/mogisim/internal/mogi"
)

var (
	// ErrNotInitialized indicates Step was called before Init.
	ErrNotInitialized = errors.New("assim: filter not initialized")

	// ErrDegenerate indicates every particle received zero likelihood.
	ErrDegenerate = errors.New("assim: particle weights degenerate")
)

type Particle struct {
	Source   geo.Source
	Strength float64
	Weight   float64
}

type Config struct {
	Particles      int
	JitterXY       float64
	JitterZ        float64
	JitterStrength float64
	Nu             float64
	Seed           uint64
	ResampleRatio  float64
}

func DefaultConfig() Config {
	return Config{
		Particles:      1000,
		JitterXY:       150,
		JitterZ:        100,
		JitterStrength: 0.3,
		Nu:             mogi.DefaultNu,
		Seed:           1,
		ResampleRatio:  0.5,
	}
}

type Filter struct {
	cfg       Config
	rng       *rand.Rand
	jxy       distuv.Normal
	jz        distuv.Normal
	js        distuv.Normal
	particles []Particle
	steps     int
	log       *zap.Logger
}

// New builds a filter. A nil logger disables logging; zero config
// fields fall back to defaults.
func New(cfg Config, log *zap.Logger) *Filter {
	def := DefaultConfig()
	if cfg.Particles < 1 {
		cfg.Particles = def.Particles
	}
	if cfg.JitterXY <= 0 {
		cfg.JitterXY = def.JitterXY
	}
	if cfg.JitterZ <= 0 {
		cfg.JitterZ = def.JitterZ
	}
	if cfg.JitterStrength <= 0 {
		cfg.JitterStrength = def.JitterStrength
	}
	if cfg.Nu == 0 {
		cfg.Nu = def.Nu
	}
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	if cfg.ResampleRatio <= 0 || cfg.ResampleRatio > 1 {
		cfg.ResampleRatio = def.ResampleRatio
	}
	if log == nil {
		log = zap.NewNop()
	}

	pcg := rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)
	return &Filter{
		cfg: cfg,
		rng: rand.New(pcg),
		jxy: distuv.Normal{Mu: 0, Sigma: cfg.JitterXY, Src: pcg},
		jz:  distuv.Normal{Mu: 0, Sigma: cfg.JitterZ, Src: pcg},
		js:  distuv.Normal{Mu: 0, Sigma: cfg.JitterStrength, Src: pcg},
		log: log,
	}
}

// Init draws the prior ensemble uniformly over the bounds.
func (f *Filter) Init(b invert.Bounds) {
	n := f.cfg.Particles
	f.particles = make([]Particle, n)
	w := 1.0 / float64(n)

	for i := range f.particles {
		f.particles[i] = Particle{
			Source: geo.Source{
				X: uniform(f.rng, b.X),
				Y: uniform(f.rng, b.Y),
				Z: uniform(f.rng, b.Depth),
			},
			Strength: uniform(f.rng, b.Strength),
			Weight:   w,
		}
	}
	f.steps = 0
}

func (f *Filter) Particles() []Particle {
	return f.particles
}

func (f *Filter) Steps() int {
	return f.steps
}

// ESS is the effective sample size 1/sum(w^2) of the current weights.
func (f *Filter) ESS() float64 {
	sum := 0.0
	for _, p := range f.particles {
		sum += p.Weight * p.Weight
	}
	if sum == 0 {
		return 0
	}
	return 1 / sum
}

// Step performs one assimilation cycle against the observations:
// predict (jitter), weight, normalize, and resample if the effective
// sample size falls below ResampleRatio*N.
func (f *Filter) Step(ctx context.Context, obs *invert.Observations) error {
	if len(f.particles) == 0 {
		return ErrNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// Predict. The shared rng keeps runs reproducible, so jitter stays
	// serial.
	for i := range f.particles {
		f.particles[i].Source.X += f.jxy.Rand()
		f.particles[i].Source.Y += f.jxy.Rand()
		f.particles[i].Source.Z += f.jz.Rand()
		f.particles[i].Strength += f.js.Rand()
	}

	// Weight in parallel; the misfit already folds in the observation
	// sigma, so the log weight is -0.5 * 3n * misfit^2.
	n := len(f.particles)
	scale := 0.5 * float64(3*obs.Len())
	logw := make([]float64, n)

	engine.ParallelFor(ctx, n, 64, runtime.NumCPU(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			m := invert.Misfit(obs, f.particles[i].Source, f.particles[i].Strength, f.cfg.Nu)
			logw[i] = -scale * m * m
		}
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	maxLW := math.Inf(-1)
	for _, lw := range logw {
		if lw > maxLW {
			maxLW = lw
		}
	}
	if math.IsInf(maxLW, -1) || math.IsNaN(maxLW) {
		return ErrDegenerate
	}

	sum := 0.0
	for i := range f.particles {
		w := math.Exp(logw[i] - maxLW)
		f.particles[i].Weight = w
		sum += w
	}
	if sum == 0 || math.IsNaN(sum) {
		return ErrDegenerate
	}
	for i := range f.particles {
		f.particles[i].Weight /= sum
	}

	ess := f.ESS()
	if ess < f.cfg.ResampleRatio*float64(n) {
		f.resample()
	}

	f.steps++
	f.log.Debug("assimilation step",
		zap.Int("step", f.steps),
		zap.Float64("ess", ess),
	)
	return nil
}

// resample draws a systematic sample from the weighted ensemble and
// resets the weights to uniform.
func (f *Filter) resample() {
	n := len(f.particles)
	out := make([]Particle, n)

	step := 1.0 / float64(n)
	u := f.rng.Float64() * step

	c := f.particles[0].Weight
	i := 0
	for j := 0; j < n; j++ {
		target := u + float64(j)*step
		for target > c && i < n-1 {
			i++
			c += f.particles[i].Weight
		}
		out[j] = f.particles[i]
		out[j].Weight = step
	}

	f.particles = out
}

// Posterior summarizes the weighted ensemble: means and standard
// deviations per parameter.
type Posterior struct {
	X, Y, Z, Strength float64
	StdX, StdY, StdZ  float64
	StdStrength       float64
	ESS               float64
	Steps             int
}

func (p Posterior) Source() geo.Source {
	return geo.Source{X: p.X, Y: p.Y, Z: p.Z}
}

// Estimate computes the weighted posterior moments of the current
// ensemble.
func (f *Filter) Estimate() Posterior {
	n := len(f.particles)
	xs := make([]float64, n)
	ys := make([]float64, n)
	zs := make([]float64, n)
	ss := make([]float64, n)
	ws := make([]float64, n)

	for i, p := range f.particles {
		xs[i] = p.Source.X
		ys[i] = p.Source.Y
		zs[i] = p.Source.Z
		ss[i] = p.Strength
		ws[i] = p.Weight
	}

	return Posterior{
		X:           stat.Mean(xs, ws),
		Y:           stat.Mean(ys, ws),
		Z:           stat.Mean(zs, ws),
		Strength:    stat.Mean(ss, ws),
		StdX:        stat.StdDev(xs, ws),
		StdY:        stat.StdDev(ys, ws),
		StdZ:        stat.StdDev(zs, ws),
		StdStrength: stat.StdDev(ss, ws),
		ESS:         f.ESS(),
		Steps:       f.steps,
	}
}

func uniform(r *rand.Rand, b [2]float64) float64 {
	return b[0] + r.Float64()*(b[1]-b[0])
}
