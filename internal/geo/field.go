package geo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Field is a three-component displacement field in meters, one sample
// per observation point. Shape mirrors the grid it was computed on.
type Field struct {
	Ux    []float64
	Uy    []float64
	Uz    []float64
	Shape []int
}

// NewField allocates a zero field of n points with the given shape.
func NewField(n int, shape []int) Field {
	return Field{
		Ux:    make([]float64, n),
		Uy:    make([]float64, n),
		Uz:    make([]float64, n),
		Shape: append([]int(nil), shape...),
	}
}

// Len returns the number of samples.
func (f Field) Len() int {
	return len(f.Uz)
}

// Clone returns a deep copy.
func (f Field) Clone() Field {
	c := NewField(f.Len(), f.Shape)
	copy(c.Ux, f.Ux)
	copy(c.Uy, f.Uy)
	copy(c.Uz, f.Uz)
	return c
}

// Add accumulates other into f element-wise.
func (f *Field) Add(other Field) error {
	if f.Len() != other.Len() {
		return fmt.Errorf("%w: %d vs %d samples", ErrShapeMismatch, f.Len(), other.Len())
	}
	floats.Add(f.Ux, other.Ux)
	floats.Add(f.Uy, other.Uy)
	floats.Add(f.Uz, other.Uz)
	return nil
}

// Scale multiplies all components by k in place.
func (f *Field) Scale(k float64) {
	floats.Scale(k, f.Ux)
	floats.Scale(k, f.Uy)
	floats.Scale(k, f.Uz)
}

// At returns the displacement vector at sample i.
func (f Field) At(i int) (ux, uy, uz float64) {
	return f.Ux[i], f.Uy[i], f.Uz[i]
}

// Horizontal returns the horizontal displacement magnitude at sample i.
func (f Field) Horizontal(i int) float64 {
	return math.Hypot(f.Ux[i], f.Uy[i])
}

// MagnitudeAt returns the full displacement magnitude at sample i.
func (f Field) MagnitudeAt(i int) float64 {
	return math.Sqrt(f.Ux[i]*f.Ux[i] + f.Uy[i]*f.Uy[i] + f.Uz[i]*f.Uz[i])
}

// MaxAbsUz returns the largest absolute vertical displacement.
func (f Field) MaxAbsUz() float64 {
	max := 0.0
	for _, v := range f.Uz {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	return max
}

// IsFinite reports whether every sample is free of NaN and Inf. A false
// result usually means an observation point coincided with a source.
func (f Field) IsFinite() bool {
	for i := range f.Uz {
		if math.IsNaN(f.Ux[i]) || math.IsInf(f.Ux[i], 0) ||
			math.IsNaN(f.Uy[i]) || math.IsInf(f.Uy[i], 0) ||
			math.IsNaN(f.Uz[i]) || math.IsInf(f.Uz[i], 0) {
			return false
		}
	}
	return true
}
