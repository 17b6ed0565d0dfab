package metrics

import "math"

type PeakUplift struct {
	name string
	max  float64
	seen bool
}

func NewPeakUplift() *PeakUplift {
	return &PeakUplift{name: "peak_uplift"}
}

func (p *PeakUplift) Name() string { return p.name }

func (p *PeakUplift) Observe(x, y, z, ux, uy, uz float64) {
	if !p.seen || uz > p.max {
		p.max = uz
		p.seen = true
	}
}

func (p *PeakUplift) Value() float64 {
	if !p.seen {
		return 0
	}
	return p.max
}

func (p *PeakUplift) Reset() {
	p.max = 0
	p.seen = false
}

type PeakSubsidence struct {
	name string
	min  float64
	seen bool
}

func NewPeakSubsidence() *PeakSubsidence {
	return &PeakSubsidence{name: "peak_subsidence"}
}

func (p *PeakSubsidence) Name() string { return p.name }

func (p *PeakSubsidence) Observe(x, y, z, ux, uy, uz float64) {
	if !p.seen || uz < p.min {
		p.min = uz
		p.seen = true
	}
}

func (p *PeakSubsidence) Value() float64 {
	if !p.seen {
		return 0
	}
	return p.min
}

func (p *PeakSubsidence) Reset() {
	p.min = 0
	p.seen = false
}

// PeakHorizontal tracks the largest horizontal displacement magnitude
// and where it occurred.
type PeakHorizontal struct {
	name string
	max  float64
	atX  float64
	atY  float64
}

func NewPeakHorizontal() *PeakHorizontal {
	return &PeakHorizontal{name: "peak_horizontal"}
}

func (p *PeakHorizontal) Name() string { return p.name }

func (p *PeakHorizontal) Observe(x, y, z, ux, uy, uz float64) {
	h := math.Hypot(ux, uy)
	if h > p.max {
		p.max = h
		p.atX = x
		p.atY = y
	}
}

func (p *PeakHorizontal) Value() float64 {
	return p.max
}

// Location returns the grid position of the peak.
func (p *PeakHorizontal) Location() (x, y float64) {
	return p.atX, p.atY
}

func (p *PeakHorizontal) Reset() {
	p.max = 0
	p.atX = 0
	p.atY = 0
}
