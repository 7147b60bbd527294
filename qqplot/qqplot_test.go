package qqplot

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/gwasplot/sumstats"
	"github.com/stretchr/testify/require"
)

func TestExpected(t *testing.T) {
	got := Expected(4)
	expected := []float64{0, -math.Log10(0.75), -math.Log10(0.5), -math.Log10(0.25)}

	for i := range expected {
		if math.Abs(got[i]-expected[i]) > 1e-12 {
			t.Fatalf("Expected %v, got %v", expected, got)
		}
	}
}

func TestParseBounds(t *testing.T) {
	for _, v := range []struct {
		Input    string
		Expected *Bounds
	}{
		{"", nil},
		{"None", nil},
		{"10,20", &Bounds{10, 20}},
		{"(8.5, 12)", &Bounds{8.5, 12}},
	} {
		got, err := ParseBounds(v.Input)
		require.NoError(t, err, v.Input)
		require.Equal(t, v.Expected, got, v.Input)
	}

	for _, input := range []string{"1", "a,b", "1,2,3"} {
		_, err := ParseBounds(input)
		require.Error(t, err, input)
	}
}

// uniform returns -log10 of the p-values i/n, which are exactly what the
// null expects.
func uniform(n int) []float64 {
	return Expected(n)
}

func TestLambdaUnderNull(t *testing.T) {
	lambda, err := Lambda(uniform(1001))
	require.NoError(t, err)
	require.InDelta(t, 1.0, lambda, 0.01)

	_, err = Lambda(nil)
	require.Error(t, err)
}

func TestLambdaInflated(t *testing.T) {
	inflated := uniform(1001)
	for i := range inflated {
		inflated[i] *= 2
	}

	lambda, err := Lambda(inflated)
	require.NoError(t, err)
	require.Greater(t, lambda, 1.5)
}

func TestNewBounds(t *testing.T) {
	observed := []float64{3, 0.1, 1}

	p, err := New(observed, nil)
	require.NoError(t, err)
	require.Equal(t, []float64{0.1, 1, 3}, p.Observed)
	require.InDelta(t, math.Log10(3), p.Bounds.X, 1e-12)
	require.Equal(t, 3.0, p.Bounds.Y)
	require.InDelta(t, math.Log10(3), p.DiagonalEnd, 1e-12)

	// Big enough fixed bounds win
	p, err = New(observed, &Bounds{X: 5, Y: 5})
	require.NoError(t, err)
	require.Equal(t, Bounds{X: 5, Y: 5}, p.Bounds)

	// Too small: fall back to the data
	p, err = New(observed, &Bounds{X: 5, Y: 2})
	require.NoError(t, err)
	require.Equal(t, Bounds{X: 5, Y: 3}, p.Bounds)

	_, err = New(nil, nil)
	require.Error(t, err)
}

func TestFromFileAndRender(t *testing.T) {
	ctx := context.Background()

	b := strings.Builder{}
	b.WriteString("CHR SNP BP P\n")
	for i := 1; i <= 200; i++ {
		fmt.Fprintf(&b, "%d rs%d %d %g\n", 1+i/20, i, i*100, float64(i)/200)
	}
	path := filepath.Join(t.TempDir(), "gwas.txt")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	f, err := sumstats.Open(ctx, path, sumstats.Layouts["DEFAULT"], nil)
	require.NoError(t, err)

	p, err := FromSource(ctx, f, nil)
	require.NoError(t, err)
	require.Len(t, p.Observed, 200)
	require.Len(t, p.Expected, 200)
	for i := range p.Observed {
		require.InDelta(t, p.Expected[i], p.Observed[i], 1e-9)
	}

	style := DefaultStyle()
	style.Width, style.Height = 300, 300

	var png bytes.Buffer
	require.NoError(t, p.Render(&png, style))
	require.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))

	require.NoError(t, p.WriteFile(filepath.Join(t.TempDir(), "qq.svg"), Style{Width: 300, Height: 300, Format: "svg", DotWidth: 1, LineWidth: 1, Color: "000000", AxisColor: "000000"}))
}

func TestFromFileReadsOnlyPValues(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "gwas.txt")
	contents := "CHR SNP BP P\n1 rs1 100 0.5\n2 rs2 NA 0.1\nX rs3 300 0.01\nY rs4 10 0.2\nMT rs5 20 0.9\nGL000192.1 rs6 30 0.3\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	f, err := sumstats.Open(ctx, path, sumstats.Layouts["DEFAULT"], nil)
	require.NoError(t, err)

	observed, err := ObservedFrom(ctx, f)
	require.NoError(t, err)
	require.Len(t, observed, 6)
	require.InDelta(t, 2.0, observed[len(observed)-1], 1e-9)

	// A bad p-value still fails the scan
	require.NoError(t, os.WriteFile(path, []byte("CHR SNP BP P\n1 rs1 100 NA\n"), 0o644))
	f, err = sumstats.Open(ctx, path, sumstats.Layouts["DEFAULT"], nil)
	require.NoError(t, err)
	_, err = ObservedFrom(ctx, f)
	require.ErrorIs(t, err, sumstats.ErrParse)
}
