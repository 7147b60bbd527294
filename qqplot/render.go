package qqplot

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type Style struct {
	Width     int
	Height    int
	Format    string // png or svg
	Color     string
	AxisColor string
	DotWidth  float64
	LineWidth float64
}

func DefaultStyle() Style {
	return Style{
		Width:     800,
		Height:    800,
		Format:    "png",
		Color:     "1f77b4",
		AxisColor: "333333",
		DotWidth:  2,
		LineWidth: 1,
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

func (p *Plot) Render(w io.Writer, style Style) error {
	rp, err := style.renderer()
	if err != nil {
		return err
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("lambda GC = %.3f", p.Lambda),
		Width:  style.Width,
		Height: style.Height,
		XAxis: chart.XAxis{
			Name:  "Theoretical -log10",
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(1, math.Ceil(p.Bounds.X))},
		},
		YAxis: chart.YAxis{
			Name:  "Observed -log10",
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(1, math.Ceil(p.Bounds.Y))},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Diagonal",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex(style.AxisColor),
					StrokeWidth: style.LineWidth,
				},
				XValues: []float64{0, p.DiagonalEnd},
				YValues: []float64{0, p.DiagonalEnd},
			},
			chart.ContinuousSeries{
				Name: "QQ",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    style.DotWidth,
					DotColor:    drawing.ColorFromHex(style.Color),
				},
				XValues: p.Expected,
				YValues: p.Observed,
			},
		},
	}

	return graph.Render(rp, w)
}

// WriteFile renders the plot to path.
func (p *Plot) WriteFile(path string, style Style) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := p.Render(f, style); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}
