// Package qqplot compares observed -log10 p-values against their expectation
// under the null.
package qqplot

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/carbocation/gwasplot/sumstats"
	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Source provides a scan over every p-value in a file. *sumstats.File
// satisfies it.
type Source interface {
	PValues(ctx context.Context) (*sumstats.Reader, error)
	NegLog10(rec sumstats.SummaryRecord) (float64, error)
}

type Bounds struct {
	X float64
	Y float64
}

// ParseBounds reads "x,y" (optionally parenthesized). "" and "None" mean no
// fixed bounds.
func ParseBounds(s string) (*Bounds, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "None" {
		return nil, nil
	}

	parts := strings.Split(strings.Trim(s, "()"), ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("bounds %q should look like x,y", s)
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("bounds %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("bounds %q: %w", s, err)
	}

	return &Bounds{X: x, Y: y}, nil
}

type Plot struct {
	// Both ascending, same length.
	Expected []float64
	Observed []float64

	// Lambda is the genomic inflation factor.
	Lambda float64

	Bounds      Bounds
	DiagonalEnd float64
}

// ObservedFrom reads every p-value in the file as -log10(p), sorted ascending.
func ObservedFrom(ctx context.Context, src Source) ([]float64, error) {
	r, err := src.PValues(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out := make([]float64, 0)
	for i := 0; r.Next(); i++ {
		if i%100000 == 0 {
			log.Printf("Processed %d Lines", i)
		}

		y, err := src.NegLog10(r.Record())
		if err != nil {
			return nil, err
		}
		out = append(out, y)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	sort.Float64s(out)

	return out, nil
}

// Expected returns -log10(i/n) for i = 1..n in ascending order.
func Expected(n int) []float64 {
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		out[k] = -math.Log10(float64(n-k) / float64(n))
	}

	return out
}

// Lambda computes the genomic inflation factor: the median chi-square
// statistic (1 df) implied by the p-values, over its expected median.
func Lambda(negLog10P []float64) (float64, error) {
	if len(negLog10P) == 0 {
		return 0, errors.New("no p-values")
	}

	chi2 := distuv.ChiSquared{K: 1}
	statistics := make(stats.Float64Data, len(negLog10P))
	for i, y := range negLog10P {
		p := math.Pow(10, -y)
		if p > 1 {
			p = 1
		}
		statistics[i] = chi2.Quantile(1 - p)
	}

	median, err := stats.Median(statistics)
	if err != nil {
		return 0, err
	}

	return median / chi2.Quantile(0.5), nil
}

// New builds a plot from observed -log10 p-values. If fixed bounds are given
// but the data exceed them, the data bounds are used instead.
func New(observed []float64, bounds *Bounds) (*Plot, error) {
	if len(observed) == 0 {
		return nil, errors.New("qqplot: no observed values")
	}

	if !sort.Float64sAreSorted(observed) {
		observed = append([]float64(nil), observed...)
		sort.Float64s(observed)
	}

	p := &Plot{
		Expected: Expected(len(observed)),
		Observed: observed,
	}

	var err error
	if p.Lambda, err = Lambda(observed); err != nil {
		return nil, err
	}

	xBound, yBound := floats.Max(p.Expected), floats.Max(p.Observed)
	p.DiagonalEnd = math.Min(xBound, yBound)

	p.Bounds = Bounds{X: xBound, Y: yBound}
	if bounds != nil {
		p.Bounds = *bounds
		if xBound > bounds.X || yBound > bounds.Y {
			p.Bounds = Bounds{X: math.Max(xBound, bounds.X), Y: math.Max(yBound, bounds.Y)}
			log.Warnf("Set bound %v is smaller than the p-values' bound (%v, %v), defaulting to native bound", *bounds, xBound, yBound)
		}
	}

	return p, nil
}

// FromSource reads the observed values and builds the plot.
func FromSource(ctx context.Context, src Source, bounds *Bounds) (*Plot, error) {
	observed, err := ObservedFrom(ctx, src)
	if err != nil {
		return nil, err
	}

	p, err := New(observed, bounds)
	if err != nil {
		return nil, err
	}
	log.Printf("QQ plot of %d p-values, lambda GC %.4f", len(observed), p.Lambda)

	return p, nil
}
