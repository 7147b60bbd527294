// Package manhattan lays out genome-wide association results as a Manhattan
// plot: one column per chromosome, -log10(p) on the y axis.
package manhattan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/carbocation/gwasplot/chrpos"
	"github.com/carbocation/gwasplot/normalize"
	"github.com/carbocation/gwasplot/sumstats"
	log "github.com/sirupsen/logrus"
)

// DefaultSignificance is the conventional genome-wide significance threshold.
const DefaultSignificance = 5e-8

// Source provides the records of one chromosome at a time. *sumstats.File
// satisfies it.
type Source interface {
	Chromosome(ctx context.Context, chromosome int) ([]sumstats.SummaryRecord, error)
	NegLog10(rec sumstats.SummaryRecord) (float64, error)
}

type Options struct {
	// Groups of chromosomes; each group becomes its own image. Empty means
	// one group with every chromosome.
	Groups [][]int

	// Assembly, when set (grch37 or grch38), scales positions by chromosome
	// length rather than by the range of positions observed in the file.
	Assembly string

	// Significance is the p-value at which the threshold line is drawn.
	// Zero means DefaultSignificance.
	Significance float64
}

type Point struct {
	X float64
	Y float64
}

// Series is one chromosome's points. X lies in [chromosome-1, chromosome].
type Series struct {
	Chromosome int
	Points     []Point
	MaxY       float64
}

type Group struct {
	Index       int
	Chromosomes []int
	Series      []Series
}

type Plot struct {
	Groups []Group

	// AxisHeight is shared by every group so that the images line up.
	AxisHeight    float64
	SignificanceY float64
}

func DefaultGroups() [][]int {
	all := make([]int, 0, sumstats.MaxChromosome)
	for chr := 1; chr <= sumstats.MaxChromosome; chr++ {
		all = append(all, chr)
	}

	return [][]int{all}
}

// ParseGroups reads chromosome groups as a JSON list of lists, e.g.
// [[1,2,3],[4,5]]. A flat list is treated as a single group.
func ParseGroups(s string) ([][]int, error) {
	if s == "" {
		return DefaultGroups(), nil
	}

	var groups [][]int
	if err := json.Unmarshal([]byte(s), &groups); err != nil {
		var flat []int
		if err2 := json.Unmarshal([]byte(s), &flat); err2 != nil {
			return nil, fmt.Errorf("could not parse chromosome groups %q: %w", s, err)
		}
		groups = [][]int{flat}
	}

	for i, group := range groups {
		if len(group) == 0 {
			return nil, fmt.Errorf("chromosome group %d is empty", i)
		}
		for _, chr := range group {
			if chr < 1 || chr > sumstats.MaxChromosome {
				return nil, fmt.Errorf("chromosome group %d: chromosome %d is outside 1..%d", i, chr, sumstats.MaxChromosome)
			}
		}
	}

	return groups, nil
}

// Build reads each requested chromosome and converts its records to plot
// coordinates. A chromosome that is absent from the file is skipped.
func Build(ctx context.Context, src Source, opts Options) (*Plot, error) {
	groups := opts.Groups
	if len(groups) == 0 {
		groups = DefaultGroups()
	}

	significance := opts.Significance
	if significance == 0 {
		significance = DefaultSignificance
	}
	sigY, err := normalize.NegLog10(significance)
	if err != nil {
		return nil, fmt.Errorf("significance threshold: %w", err)
	}

	plot := &Plot{SignificanceY: sigY}
	maxY := sigY

	for index, chromosomes := range groups {
		group := Group{Index: index, Chromosomes: chromosomes}

		for _, chr := range chromosomes {
			log.Printf("Starting chromosome %d", chr)

			records, err := src.Chromosome(ctx, chr)
			if errors.Is(err, sumstats.ErrChromosomeNotIndexed) {
				log.Printf("No data for chromosome %d", chr)
				continue
			} else if err != nil {
				return nil, err
			}
			if len(records) == 0 {
				log.Printf("No data for chromosome %d", chr)
				continue
			}

			series, err := ChromosomeSeries(chr, records, opts.Assembly, src.NegLog10)
			if err != nil {
				return nil, fmt.Errorf("chromosome %d: %w", chr, err)
			}

			maxY = math.Max(maxY, series.MaxY)
			group.Series = append(group.Series, series)
		}

		plot.Groups = append(plot.Groups, group)
		log.Printf("Finished group %d", index)
	}

	plot.AxisHeight = math.Max(1, math.Ceil(maxY))

	return plot, nil
}

// ChromosomeSeries places one chromosome's records. Without an assembly the
// positions are min-max normalized; a chromosome whose records all share one
// position has no range to normalize over and is placed at its left edge.
func ChromosomeSeries(chromosome int, records []sumstats.SummaryRecord, assembly string, negLog10 func(sumstats.SummaryRecord) (float64, error)) (Series, error) {
	xs := make([]float64, len(records))

	if assembly == "" {
		positions := make([]float64, len(records))
		for i, rec := range records {
			positions[i] = float64(rec.Position)
		}

		normalized, _, err := normalize.MinMax(positions)
		if errors.Is(err, normalize.ErrDegenerateRange) {
			normalized = make([]float64, len(records))
		} else if err != nil {
			return Series{}, err
		}
		xs = normalized
	} else {
		for i, rec := range records {
			frac, err := chrpos.Fraction(assembly, chromosome, rec.Position)
			if err != nil {
				return Series{}, err
			}
			xs[i] = frac
		}
	}

	series := Series{
		Chromosome: chromosome,
		Points:     make([]Point, len(records)),
	}

	for i, rec := range records {
		y, err := negLog10(rec)
		if err != nil {
			return Series{}, err
		}
		series.Points[i] = Point{X: xs[i] + float64(chromosome-1), Y: y}
		series.MaxY = math.Max(series.MaxY, y)
	}

	return series, nil
}
