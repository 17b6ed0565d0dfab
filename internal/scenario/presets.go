package scenario

import "sort"

var Presets = map[string]*Scenario{
	"chamber": {
		Name: "chamber",
		Grid: GridSpec{X0: -5000, X1: 5000, Nx: 81, Y0: -5000, Y1: 5000, Ny: 81},
		Sources: []SourceSpec{
			{X: 0, Y: 0, Z: -1000, Strength: 10},
		},
	},
	"deflation": {
		Name: "deflation",
		Grid: GridSpec{X0: -5000, X1: 5000, Nx: 81, Y0: -5000, Y1: 5000, Ny: 81},
		Sources: []SourceSpec{
			{X: 0, Y: 0, Z: -1500, Strength: -12},
		},
	},
	"twin": {
		Name: "twin",
		Grid: GridSpec{X0: -8000, X1: 8000, Nx: 101, Y0: -8000, Y1: 8000, Ny: 101},
		Sources: []SourceSpec{
			{X: -2000, Y: 0, Z: -1200, Strength: 8},
			{X: 2500, Y: 500, Z: -2000, Strength: 6},
		},
	},
	"deep": {
		Name: "deep",
		Grid: GridSpec{X0: -20000, X1: 20000, Nx: 81, Y0: -20000, Y1: 20000, Ny: 81},
		Sources: []SourceSpec{
			{X: 0, Y: 0, Z: -8000, Strength: 50},
		},
	},
	"shallow": {
		Name: "shallow",
		Grid: GridSpec{X0: -2000, X1: 2000, Nx: 81, Y0: -2000, Y1: 2000, Ny: 81},
		Sources: []SourceSpec{
			{X: 0, Y: 0, Z: -300, Strength: 1},
		},
	},
}

// GetPreset returns a copy of the named preset so callers can adjust
// it without mutating the table, or nil when unknown.
func GetPreset(name string) *Scenario {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	c.Sources = append([]SourceSpec(nil), p.Sources...)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
