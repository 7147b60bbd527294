// Package normalize rescales plot coordinates.
package normalize

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrEmpty           = errors.New("normalize: no values")
	ErrDegenerateRange = errors.New("normalize: all values are equal")
	ErrDomain          = errors.New("normalize: value outside the domain of the transform")
)

// Range records the bounds used by MinMax so the rescale can be reversed.
type Range struct {
	Min float64
	Max float64
}

func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Unscale maps values in [0, 1] back onto the original range.
func (r Range) Unscale(normalized []float64) []float64 {
	out := make([]float64, len(normalized))
	for i, v := range normalized {
		out[i] = v*r.Span() + r.Min
	}

	return out
}

// MinMax linearly rescales values so that the smallest maps to 0 and the
// largest to 1. When every value is equal there is no range to divide by, and
// ErrDegenerateRange is returned along with the Range.
func MinMax(values []float64) ([]float64, Range, error) {
	if len(values) == 0 {
		return nil, Range{}, ErrEmpty
	}

	r := Range{Min: floats.Min(values), Max: floats.Max(values)}
	if r.Span() == 0 {
		return nil, r, ErrDegenerateRange
	}

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - r.Min) / r.Span()
	}

	return out, r, nil
}

// NegLog10 converts a p-value in (0, 1] to -log10(p).
func NegLog10(p float64) (float64, error) {
	if math.IsNaN(p) || p <= 0 || p > 1 {
		return 0, fmt.Errorf("%w: -log10 is only defined here for p in (0, 1], got %v", ErrDomain, p)
	}

	return -math.Log10(p), nil
}

// NegLog10All transforms each p-value, failing on the first out-of-domain value.
func NegLog10All(ps []float64) ([]float64, error) {
	out := make([]float64, len(ps))
	for i, p := range ps {
		v, err := NegLog10(p)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = v
	}

	return out, nil
}
