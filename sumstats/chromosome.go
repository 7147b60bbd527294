package sumstats

import (
	"strconv"
	"strings"
)

// MaxChromosome is the highest chromosome number plotted by default; X is
// numbered 23.
const MaxChromosome = 23

// Sex and mitochondrial chromosomes follow PLINK's numbering. Only X is
// plotted; the others sort after it and end the scans that reach them.
var chromosomeNames = map[string]int{
	"X":  23,
	"Y":  24,
	"XY": 25,
	"MT": 26,
	"M":  26,
}

// ParseChromosome accepts "1", "01", "chr1", "X", "Y", "XY" and "MT".
func ParseChromosome(s string) (int, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "chr"), "CHR")

	if chr, exists := chromosomeNames[strings.ToUpper(s)]; exists {
		return chr, nil
	}

	return strconv.Atoi(s)
}

// ChromosomeLabel is the inverse of ParseChromosome for axis labels.
func ChromosomeLabel(chromosome int) string {
	switch chromosome {
	case 23:
		return "X"
	case 24:
		return "Y"
	case 25:
		return "XY"
	case 26:
		return "MT"
	}

	return strconv.Itoa(chromosome)
}
