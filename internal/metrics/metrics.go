// Package metrics provides streaming statistics over displacement
// fields. Each metric is an accumulator observing one (point,
// displacement) sample at a time, so large grids never need a second
// allocation.
package metrics

// Metric accumulates a scalar statistic over field samples.
type Metric interface {
	Name() string
	Observe(x, y, z, ux, uy, uz float64)
	Value() float64
	Reset()
}

// Default returns the standard set applied after every run.
func Default() []Metric {
	return []Metric{
		NewPeakUplift(),
		NewPeakSubsidence(),
		NewPeakHorizontal(),
		NewRMS(),
	}
}
