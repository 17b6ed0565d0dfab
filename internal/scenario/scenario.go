// Package scenario defines YAML run descriptions: an observation grid,
// a set of sources with strengths, and material properties. Validation
// lives here so the numeric core can stay permissive.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/volckit/mogisim/internal/geo"
	"github.com/volckit/mogisim/internal/mogi"
)

const (
	DefaultExtent = 5000.0
	DefaultNx     = 81
	DefaultNy     = 81
	DefaultDepth  = -1000.0
)

type Scenario struct {
	Name    string       `yaml:"name"`
	Nu      float64      `yaml:"nu"`
	Grid    GridSpec     `yaml:"grid"`
	Sources []SourceSpec `yaml:"sources"`
	Seed    int64        `yaml:"seed"`
}

// GridSpec describes a uniform map-view plane at elevation Z.
type GridSpec struct {
	X0 float64 `yaml:"x0"`
	X1 float64 `yaml:"x1"`
	Nx int     `yaml:"nx"`
	Y0 float64 `yaml:"y0"`
	Y1 float64 `yaml:"y1"`
	Ny int     `yaml:"ny"`
	Z  float64 `yaml:"z"`
}

type SourceSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Z        float64 `yaml:"z"`
	Strength float64 `yaml:"strength"`
}

func Default() *Scenario {
	return &Scenario{
		Name: "chamber",
		Nu:   mogi.DefaultNu,
		Grid: GridSpec{
			X0: -DefaultExtent, X1: DefaultExtent, Nx: DefaultNx,
			Y0: -DefaultExtent, Y1: DefaultExtent, Ny: DefaultNy,
			Z: 0,
		},
		Sources: []SourceSpec{
			{X: 0, Y: 0, Z: DefaultDepth, Strength: 10},
		},
	}
}

// Load reads a scenario file, applying defaults for omitted fields.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return s, nil
}

func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the parts the numeric core does not: grid emptiness
// and degenerate extents. Source strengths and depths are free.
func (s *Scenario) Validate() error {
	if s.Grid.Nx < 1 || s.Grid.Ny < 1 {
		return fmt.Errorf("%w: nx=%d ny=%d", geo.ErrEmptyGrid, s.Grid.Nx, s.Grid.Ny)
	}
	if s.Grid.Nx > 1 && s.Grid.X1 <= s.Grid.X0 {
		return fmt.Errorf("scenario: x extent [%g, %g] is not increasing", s.Grid.X0, s.Grid.X1)
	}
	if s.Grid.Ny > 1 && s.Grid.Y1 <= s.Grid.Y0 {
		return fmt.Errorf("scenario: y extent [%g, %g] is not increasing", s.Grid.Y0, s.Grid.Y1)
	}
	return nil
}

// Build materializes the grid and source set. Nu 0 falls back to
// mogi.DefaultNu so files may omit it.
func (s *Scenario) Build() (geo.Grid, geo.SourceSet, error) {
	if err := s.Validate(); err != nil {
		return geo.Grid{}, geo.SourceSet{}, err
	}

	grid := geo.NewPlane(s.Grid.X0, s.Grid.X1, s.Grid.Nx, s.Grid.Y0, s.Grid.Y1, s.Grid.Ny, s.Grid.Z)

	var set geo.SourceSet
	for _, src := range s.Sources {
		set.Add(geo.Source{X: src.X, Y: src.Y, Z: src.Z}, src.Strength)
	}

	return grid, set, nil
}

// BuildNu returns the effective Poisson ratio.
func (s *Scenario) BuildNu() float64 {
	if s.Nu == 0 {
		return mogi.DefaultNu
	}
	return s.Nu
}
