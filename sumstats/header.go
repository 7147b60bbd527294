package sumstats

import (
	"fmt"
	"strings"
)

// HeaderNames are the logical column names requested by the caller.
type HeaderNames struct {
	Chromosome string
	SNP        string
	Position   string
	PValue     string
}

func (h HeaderNames) list() []string {
	return []string{h.Chromosome, h.SNP, h.Position, h.PValue}
}

// HeaderIndexMap holds the zero-based physical index of each logical column.
type HeaderIndexMap struct {
	Chromosome int
	SNP        int
	Position   int
	PValue     int
}

// width is the minimum number of fields a data line needs.
func (h HeaderIndexMap) width() int {
	max := h.Chromosome
	for _, v := range []int{h.SNP, h.Position, h.PValue} {
		if v > max {
			max = v
		}
	}

	return max + 1
}

// ResolveHeader finds each requested name in the header and returns the
// indices in request order. When a name occurs more than once, its first
// occurrence is used.
func ResolveHeader(header []string, names HeaderNames) (HeaderIndexMap, error) {
	indexes := make([]int, 0, 4)
	seen := make(map[int]string)

	for _, name := range names.list() {
		idx := indexOf(header, name)
		if idx < 0 {
			return HeaderIndexMap{}, &MissingColumnError{Name: name, Header: header}
		}
		if prior, exists := seen[idx]; exists {
			return HeaderIndexMap{}, fmt.Errorf("%w: %s and %s both map to column %d", ErrDuplicateColumn, prior, name, idx)
		}
		seen[idx] = name
		indexes = append(indexes, idx)
	}

	return HeaderIndexMap{
		Chromosome: indexes[0],
		SNP:        indexes[1],
		Position:   indexes[2],
		PValue:     indexes[3],
	}, nil
}

func indexOf(header []string, name string) int {
	for i, v := range header {
		if v == name {
			return i
		}
	}

	return -1
}

// splitter returns the field splitting function for a delimiter. A zero
// delimiter splits on runs of whitespace.
func splitter(delim rune) func(string) []string {
	if delim == 0 {
		return strings.Fields
	}

	sep := string(delim)
	return func(line string) []string {
		fields := strings.Split(line, sep)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		return fields
	}
}
