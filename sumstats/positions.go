package sumstats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ChromosomePositions maps a chromosome to the decoded-stream offset of its
// first record. Chromosomes without records have no entry.
type ChromosomePositions map[int]int64

// Chromosomes returns the indexed chromosomes in ascending order.
func (p ChromosomePositions) Chromosomes() []int {
	out := make([]int, 0, len(p))
	for chr := range p {
		out = append(out, chr)
	}
	sort.Ints(out)

	return out
}

// Validate checks that offsets are non-negative and non-decreasing in
// chromosome order, as they must be for a file sorted by chromosome.
func (p ChromosomePositions) Validate() error {
	last := int64(-1)
	lastChr := 0
	for _, chr := range p.Chromosomes() {
		offset := p[chr]
		if offset < 0 {
			return fmt.Errorf("chromosome %d has negative offset %d", chr, offset)
		}
		if offset < last {
			return fmt.Errorf("%w: chromosome %d starts at %d, before chromosome %d at %d", ErrUnsorted, chr, offset, lastChr, last)
		}
		last, lastChr = offset, chr
	}

	return nil
}

// Equal reports whether both indexes hold identical entries.
func (p ChromosomePositions) Equal(other ChromosomePositions) bool {
	if len(p) != len(other) {
		return false
	}
	for chr, offset := range p {
		if o, exists := other[chr]; !exists || o != offset {
			return false
		}
	}

	return true
}

// BuildPositions scans the file once, recording the offset of the first
// record of each chromosome. A chromosome lower than the one before it means
// the file is not sorted, and fails the build. The scan ends once
// MaxChromosome has been located, or at the first chromosome beyond it, so
// trailing Y or MT rows are never read.
func (f *File) BuildPositions(ctx context.Context) (ChromosomePositions, error) {
	rc, err := f.source.OpenAt(ctx, f.dataStart)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	positions := make(ChromosomePositions)
	lr := newLineReader(rc, f.dataStart)
	prev := 0

	for {
		line, start, err := lr.next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Path(), err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		chr, err := parseChromosomeField(f.split(line), f.index, start)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Path(), err)
		}

		if chr < prev {
			return nil, fmt.Errorf("%s: %w: chromosome %d follows chromosome %d at byte %d", f.Path(), ErrUnsorted, chr, prev, start)
		}

		if chr > MaxChromosome {
			break
		}

		if chr > prev {
			positions[chr] = start
			log.Printf("Determined position of chromosome %d: %d", chr, start)
			prev = chr
		}

		if chr == MaxChromosome {
			break
		}
	}

	return positions, nil
}

// SetPositions supplies a precomputed index so that BuildPositions is never
// run for this file.
func (f *File) SetPositions(p ChromosomePositions) error {
	if err := p.Validate(); err != nil {
		return err
	}
	f.positions = p

	return nil
}

// Positions returns the index, building it on first use.
func (f *File) Positions(ctx context.Context) (ChromosomePositions, error) {
	if f.positions != nil {
		return f.positions, nil
	}

	p, err := f.BuildPositions(ctx)
	if err != nil {
		return nil, err
	}
	f.positions = p

	return p, nil
}

// FormatPositions renders the index as a JSON object with keys in chromosome
// order, e.g. {"1": 13, "2": 55}.
func FormatPositions(p ChromosomePositions) string {
	b := strings.Builder{}
	b.WriteString("{")
	for i, chr := range p.Chromosomes() {
		if i != 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %d", strconv.Itoa(chr), p[chr])
	}
	b.WriteString("}")

	return b.String()
}

var bareIntegerKey = regexp.MustCompile(`([{,]\s*)(\d+)\s*:`)

// ParsePositions reads a textual index. Both JSON and the dictionary literal
// form with bare integer keys ({1: 0, 2: 1234}) are accepted. Blank input,
// "{}" and "None" return a nil index, meaning the index must be built.
func ParsePositions(s string) (ChromosomePositions, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "None" || s == "{}" {
		return nil, nil
	}

	var raw map[string]int64
	if err := json.Unmarshal([]byte(bareIntegerKey.ReplaceAllString(s, `$1"$2":`)), &raw); err != nil {
		return nil, fmt.Errorf("could not parse chromosome positions %q: %w", s, err)
	}

	out := make(ChromosomePositions, len(raw))
	for key, offset := range raw {
		chr, err := ParseChromosome(key)
		if err != nil {
			return nil, fmt.Errorf("could not parse chromosome positions: key %q: %w", key, err)
		}
		out[chr] = offset
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}

	return out, nil
}
