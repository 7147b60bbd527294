package manhattan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/carbocation/gwasplot/sumstats"
	log "github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type Style struct {
	Width  int
	Height int
	Format string // png or svg

	// Colors alternate between neighboring chromosomes.
	Colors            []string
	SignificanceColor string
	DotWidth          float64
}

func DefaultStyle() Style {
	return Style{
		Width:             1600,
		Height:            600,
		Format:            "png",
		Colors:            []string{"1f77b4", "aec7e8"},
		SignificanceColor: "d62728",
		DotWidth:          1.5,
	}
}

func (s Style) renderer() (chart.RendererProvider, error) {
	switch s.Format {
	case "png", "":
		return chart.PNG, nil
	case "svg":
		return chart.SVG, nil
	}

	return nil, fmt.Errorf("unsupported image format %q; use png or svg", s.Format)
}

func (s Style) extension() string {
	if s.Format == "" {
		return "png"
	}

	return s.Format
}

// Render draws one group.
func (p *Plot) Render(w io.Writer, groupIndex int, style Style) error {
	if groupIndex < 0 || groupIndex >= len(p.Groups) {
		return fmt.Errorf("group %d does not exist; there are %d groups", groupIndex, len(p.Groups))
	}
	group := p.Groups[groupIndex]

	rp, err := style.renderer()
	if err != nil {
		return err
	}

	if len(style.Colors) == 0 {
		style.Colors = DefaultStyle().Colors
	}

	if len(group.Chromosomes) == 0 {
		return fmt.Errorf("group %d has no chromosomes", groupIndex)
	}

	chromosomes := append([]int(nil), group.Chromosomes...)
	sort.Ints(chromosomes)
	xMin, xMax := float64(chromosomes[0]-1), float64(chromosomes[len(chromosomes)-1])

	ticks := chromosomeTicks(chromosomes, xMin, xMax)

	series := make([]chart.Series, 0, len(group.Series)+1)
	for _, s := range group.Series {
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, pt := range s.Points {
			xs[i], ys[i] = pt.X, pt.Y
		}

		series = append(series, chart.ContinuousSeries{
			Name: fmt.Sprintf("Chromosome_%d", s.Chromosome),
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    style.DotWidth,
				DotColor:    drawing.ColorFromHex(style.Colors[(s.Chromosome-1)%len(style.Colors)]),
			},
			XValues: xs,
			YValues: ys,
		})
	}

	// The threshold line also guarantees that a group without data still
	// has a series to draw.
	series = append(series, chart.ContinuousSeries{
		Name: "Significance",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex(style.SignificanceColor),
			StrokeWidth:     1,
			StrokeDashArray: []float64{5, 5},
		},
		XValues: []float64{xMin, xMax},
		YValues: []float64{p.SignificanceY, p.SignificanceY},
	})

	graph := chart.Chart{
		Width:  style.Width,
		Height: style.Height,
		XAxis: chart.XAxis{
			Name:  "Chromosomes",
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "-log10(pvalue)",
			Range: &chart.ContinuousRange{Min: 0, Max: p.AxisHeight},
		},
		Series: series,
	}

	return graph.Render(rp, w)
}

// chromosomeTicks labels the middle of each chromosome. go-chart takes the x
// range from the ticks, so the unlabeled group edges are always included.
func chromosomeTicks(sorted []int, xMin, xMax float64) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(sorted)+2)
	ticks = append(ticks, chart.Tick{Value: xMin})
	for _, chr := range sorted {
		ticks = append(ticks, chart.Tick{Value: float64(chr) - 0.5, Label: sumstats.ChromosomeLabel(chr)})
	}

	return append(ticks, chart.Tick{Value: xMax})
}

// WriteFiles renders every group to <dir>/<name>__<index>.<format> and
// returns the paths written.
func (p *Plot) WriteFiles(dir, name string, style Style) ([]string, error) {
	paths := make([]string, 0, len(p.Groups))

	for i := range p.Groups {
		path := filepath.Join(dir, fmt.Sprintf("%s__%d.%s", name, p.Groups[i].Index, style.extension()))

		if err := writeFile(path, func(w io.Writer) error { return p.Render(w, i, style) }); err != nil {
			return paths, err
		}
		log.Printf("Wrote %s", path)
		paths = append(paths, path)
	}

	return paths, nil
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}
