package manhattan

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/carbocation/gwasplot/normalize"
	"github.com/carbocation/gwasplot/sumstats"
	"github.com/stretchr/testify/require"
)

type fakeSource map[int][]sumstats.SummaryRecord

func (f fakeSource) Chromosome(ctx context.Context, chromosome int) ([]sumstats.SummaryRecord, error) {
	records, exists := f[chromosome]
	if !exists {
		return nil, fmt.Errorf("chromosome %d: %w", chromosome, sumstats.ErrChromosomeNotIndexed)
	}

	return records, nil
}

func (f fakeSource) NegLog10(rec sumstats.SummaryRecord) (float64, error) {
	return normalize.NegLog10(rec.P)
}

func TestParseGroups(t *testing.T) {
	for _, v := range []struct {
		Input    string
		Expected [][]int
	}{
		{"[[1,2,3],[4,5]]", [][]int{{1, 2, 3}, {4, 5}}},
		{"[22, 23]", [][]int{{22, 23}}},
		{"", DefaultGroups()},
	} {
		got, err := ParseGroups(v.Input)
		require.NoError(t, err, v.Input)
		require.Equal(t, v.Expected, got, v.Input)
	}

	for _, input := range []string{"[[0]]", "[[]]", "[[24]]", "chr1"} {
		_, err := ParseGroups(input)
		require.Error(t, err, input)
	}
}

func TestBuild(t *testing.T) {
	src := fakeSource{
		1: {
			{Chromosome: 1, VariantID: "rs1", Position: 100, P: 0.5},
			{Chromosome: 1, VariantID: "rs2", Position: 200, P: 2e-9},
		},
		2: {
			{Chromosome: 2, VariantID: "rs3", Position: 50, P: 0.1},
		},
	}

	plot, err := Build(context.Background(), src, Options{Groups: [][]int{{1, 2, 3}}})
	require.NoError(t, err)
	require.Len(t, plot.Groups, 1)

	group := plot.Groups[0]
	require.Len(t, group.Series, 2, "chromosome 3 has no data and is skipped")

	chr1 := group.Series[0]
	require.Len(t, chr1.Points, 2)
	require.Equal(t, 0.0, chr1.Points[0].X)
	require.InDelta(t, 0.30103, chr1.Points[0].Y, 1e-5)
	require.Equal(t, 1.0, chr1.Points[1].X)
	require.InDelta(t, 8.69897, chr1.Points[1].Y, 1e-5)

	// A single record cannot be normalized, so it sits at the left edge
	chr2 := group.Series[1]
	require.Equal(t, 1.0, chr2.Points[0].X)

	require.Equal(t, 9.0, plot.AxisHeight)
	require.InDelta(t, 7.30103, plot.SignificanceY, 1e-5)
}

func TestBuildAssemblyScaling(t *testing.T) {
	src := fakeSource{
		2: {{Chromosome: 2, VariantID: "rs1", Position: 121599686, P: 0.01}},
	}

	plot, err := Build(context.Background(), src, Options{Groups: [][]int{{2}}, Assembly: "grch37"})
	require.NoError(t, err)
	require.InDelta(t, 1.5, plot.Groups[0].Series[0].Points[0].X, 1e-6)

	_, err = Build(context.Background(), src, Options{Groups: [][]int{{2}}, Assembly: "hg1"})
	require.Error(t, err)
}

func TestBuildDomainError(t *testing.T) {
	src := fakeSource{
		1: {{Chromosome: 1, VariantID: "rs1", Position: 1, P: 0}},
	}

	_, err := Build(context.Background(), src, Options{})
	require.ErrorIs(t, err, normalize.ErrDomain)
}

func TestBuildFromFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "gwas.txt")
	require.NoError(t, os.WriteFile(path, []byte("CHR SNP BP P\n1 rs1 100 0.5\n1 rs2 200 0.01\n2 rs3 50 0.3\n"), 0o644))

	f, err := sumstats.Open(ctx, path, sumstats.Layouts["DEFAULT"], nil)
	require.NoError(t, err)

	plot, err := Build(ctx, f, Options{})
	require.NoError(t, err)
	require.Len(t, plot.Groups[0].Series, 2)
	require.Equal(t, 8.0, plot.AxisHeight)

	paths, err := plot.WriteFiles(t.TempDir(), "gwas", DefaultStyle())
	require.NoError(t, err)
	require.Len(t, paths, 1)
	require.Equal(t, "gwas__0.png", filepath.Base(paths[0]))
}

func TestRender(t *testing.T) {
	src := fakeSource{
		1: {
			{Chromosome: 1, VariantID: "rs1", Position: 100, P: 0.5},
			{Chromosome: 1, VariantID: "rs2", Position: 200, P: 1e-9},
		},
	}

	plot, err := Build(context.Background(), src, Options{Groups: [][]int{{1, 2}, {3}}})
	require.NoError(t, err)

	style := DefaultStyle()
	style.Width, style.Height = 400, 200

	var png bytes.Buffer
	require.NoError(t, plot.Render(&png, 0, style))
	require.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))

	// Group 1 has no data at all
	png.Reset()
	require.NoError(t, plot.Render(&png, 1, style))

	style.Format = "svg"
	var svg bytes.Buffer
	require.NoError(t, plot.Render(&svg, 0, style))
	require.Contains(t, svg.String(), "<svg")

	style.Format = "blend"
	require.Error(t, plot.Render(&svg, 0, style))
	require.Error(t, plot.Render(&svg, 5, DefaultStyle()))
}

func TestRenderSingleChromosomeGroups(t *testing.T) {
	src := fakeSource{
		1: {
			{Chromosome: 1, VariantID: "rs1", Position: 100, P: 0.5},
			{Chromosome: 1, VariantID: "rs2", Position: 200, P: 1e-3},
		},
		2: {
			{Chromosome: 2, VariantID: "rs3", Position: 50, P: 0.2},
		},
	}

	plot, err := Build(context.Background(), src, Options{Groups: [][]int{{1}, {2}, {3}, {1, 3}}})
	require.NoError(t, err)

	style := DefaultStyle()
	style.Width, style.Height = 400, 200

	for i := range plot.Groups {
		var png bytes.Buffer
		if err := plot.Render(&png, i, style); err != nil {
			t.Fatalf("group %d (%v): %v", i, plot.Groups[i].Chromosomes, err)
		}
		require.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))
	}

	paths, err := plot.WriteFiles(t.TempDir(), "single", style)
	require.NoError(t, err)
	require.Len(t, paths, 4)
}

func TestChromosomeTicks(t *testing.T) {
	ticks := chromosomeTicks([]int{23}, 22, 23)
	require.Len(t, ticks, 3)
	require.Equal(t, 22.0, ticks[0].Value)
	require.Equal(t, "X", ticks[1].Label)
	require.Equal(t, 22.5, ticks[1].Value)
	require.Equal(t, 23.0, ticks[2].Value)

	plot := &Plot{Groups: []Group{{Index: 0}}, AxisHeight: 8}
	require.Error(t, plot.Render(&bytes.Buffer{}, 0, DefaultStyle()))
}
