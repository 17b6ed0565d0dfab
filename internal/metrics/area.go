package metrics

// AreaAbove reports the fraction of points whose vertical displacement
// exceeds a threshold. With a uniform grid this approximates the
// affected area ratio.
type AreaAbove struct {
	name      string
	threshold float64
	above     int
	samples   int
}

func NewAreaAbove(threshold float64) *AreaAbove {
	return &AreaAbove{name: "area_above", threshold: threshold}
}

func (a *AreaAbove) Name() string { return a.name }

func (a *AreaAbove) Observe(x, y, z, ux, uy, uz float64) {
	a.samples++
	if uz > a.threshold {
		a.above++
	}
}

func (a *AreaAbove) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return float64(a.above) / float64(a.samples)
}

func (a *AreaAbove) Reset() {
	a.above = 0
	a.samples = 0
}
