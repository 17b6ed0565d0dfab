package geo

import "fmt"

// Source is a point source position in meters. Z is positive up, so a
// buried source has Z < 0.
type Source struct {
	X float64
	Y float64
	Z float64
}

// SourceSet pairs an ordered sequence of sources with their strengths.
// The order fixes the floating-point summation order, so repeated
// evaluations are bit-identical.
type SourceSet struct {
	Sources   []Source
	Strengths []float64
}

// NewSourceSet builds a set from parallel slices.
func NewSourceSet(sources []Source, strengths []float64) (SourceSet, error) {
	s := SourceSet{Sources: sources, Strengths: strengths}
	if err := s.Validate(); err != nil {
		return SourceSet{}, err
	}
	return s, nil
}

// Add appends a source and its strength.
func (s *SourceSet) Add(src Source, strength float64) {
	s.Sources = append(s.Sources, src)
	s.Strengths = append(s.Strengths, strength)
}

// Len returns the number of sources.
func (s SourceSet) Len() int {
	return len(s.Sources)
}

// Clone returns a deep copy.
func (s SourceSet) Clone() SourceSet {
	return SourceSet{
		Sources:   append([]Source(nil), s.Sources...),
		Strengths: append([]float64(nil), s.Strengths...),
	}
}

// Validate checks that every source has a strength.
func (s SourceSet) Validate() error {
	if len(s.Sources) != len(s.Strengths) {
		return fmt.Errorf("%w: %d sources, %d strengths", ErrCountMismatch, len(s.Sources), len(s.Strengths))
	}
	return nil
}
