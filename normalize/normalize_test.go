package normalize

import (
	"errors"
	"math"
	"testing"
)

func TestMinMaxRoundTrip(t *testing.T) {
	for _, input := range [][]float64{
		{100, 200, 50},
		{-3.5, 0, 12.25, 7},
		{1e9, 2e9 + 1, 1.5e9},
	} {
		normalized, r, err := MinMax(input)
		if err != nil {
			t.Fatal(err)
		}

		for i, v := range normalized {
			if v < 0 || v > 1 {
				t.Fatalf("Input %v: value %d normalized to %f, outside [0, 1]", input, i, v)
			}
		}

		restored := r.Unscale(normalized)
		for i := range input {
			if diff := math.Abs(restored[i] - input[i]); diff > 1e-6*math.Max(1, math.Abs(input[i])) {
				t.Fatalf("Input %v: position %d restored to %f (diff %g)", input, i, restored[i], diff)
			}
		}
	}
}

func TestMinMaxEndpoints(t *testing.T) {
	normalized, _, err := MinMax([]float64{100, 200, 50})
	if err != nil {
		t.Fatal(err)
	}

	expected := []float64{1.0 / 3.0, 1, 0}
	for i := range expected {
		if math.Abs(normalized[i]-expected[i]) > 1e-12 {
			t.Fatalf("Expected %v, got %v", expected, normalized)
		}
	}
}

func TestMinMaxDegenerate(t *testing.T) {
	if _, _, err := MinMax([]float64{7, 7, 7}); !errors.Is(err, ErrDegenerateRange) {
		t.Fatalf("Expected ErrDegenerateRange, got %v", err)
	}

	if _, _, err := MinMax(nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Expected ErrEmpty, got %v", err)
	}
}

func TestNegLog10(t *testing.T) {
	for _, v := range []struct {
		P        float64
		Expected float64
	}{
		{1, 0},
		{0.1, 1},
		{5e-8, 7.301029995663981},
		{1e-300, 300},
	} {
		got, err := NegLog10(v.P)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-v.Expected) > 1e-9 {
			t.Fatalf("P %g: expected %f, got %f", v.P, v.Expected, got)
		}
	}

	for _, p := range []float64{0, -0.1, 1.5, math.NaN()} {
		if _, err := NegLog10(p); !errors.Is(err, ErrDomain) {
			t.Fatalf("P %v: expected ErrDomain, got %v", p, err)
		}
	}
}

func TestNegLog10AllStopsOnDomainError(t *testing.T) {
	if _, err := NegLog10All([]float64{0.5, 0, 0.1}); !errors.Is(err, ErrDomain) {
		t.Fatalf("Expected ErrDomain, got %v", err)
	}
}
