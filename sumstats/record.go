package sumstats

import (
	"fmt"
	"strconv"
)

// SummaryRecord is one variant's row. P holds whatever the p-value column
// holds: a raw p-value, or -log10(p) for layouts with NegLog10P set.
type SummaryRecord struct {
	Chromosome int
	VariantID  string
	Position   int64
	P          float64
}

func parseRecord(fields []string, idx HeaderIndexMap, offset int64) (SummaryRecord, error) {
	if len(fields) < idx.width() {
		return SummaryRecord{}, &ParseError{
			Offset: offset,
			Column: "line",
			Value:  fmt.Sprint(fields),
			Err:    fmt.Errorf("expected at least %d fields, found %d", idx.width(), len(fields)),
		}
	}

	chr, err := parseChromosomeField(fields, idx, offset)
	if err != nil {
		return SummaryRecord{}, err
	}

	pos, err := strconv.ParseInt(fields[idx.Position], 10, 64)
	if err != nil {
		return SummaryRecord{}, &ParseError{Offset: offset, Column: "position", Value: fields[idx.Position], Err: err}
	}

	p, err := strconv.ParseFloat(fields[idx.PValue], 64)
	if err != nil {
		return SummaryRecord{}, &ParseError{Offset: offset, Column: "p-value", Value: fields[idx.PValue], Err: err}
	}

	return SummaryRecord{
		Chromosome: chr,
		VariantID:  fields[idx.SNP],
		Position:   pos,
		P:          p,
	}, nil
}

func parseChromosomeField(fields []string, idx HeaderIndexMap, offset int64) (int, error) {
	if len(fields) <= idx.Chromosome {
		return 0, &ParseError{
			Offset: offset,
			Column: "chromosome",
			Err:    fmt.Errorf("expected at least %d fields, found %d", idx.Chromosome+1, len(fields)),
		}
	}

	chr, err := ParseChromosome(fields[idx.Chromosome])
	if err != nil {
		return 0, &ParseError{Offset: offset, Column: "chromosome", Value: fields[idx.Chromosome], Err: err}
	}

	return chr, nil
}

// parsePValueRecord requires only the p-value. Chromosome and position are
// filled in when they parse and left zero otherwise, so rows such as MT or an
// NA position still contribute their p-value to whole-file statistics.
func parsePValueRecord(fields []string, idx HeaderIndexMap, offset int64) (SummaryRecord, error) {
	if len(fields) <= idx.PValue {
		return SummaryRecord{}, &ParseError{
			Offset: offset,
			Column: "p-value",
			Value:  fmt.Sprint(fields),
			Err:    fmt.Errorf("expected at least %d fields, found %d", idx.PValue+1, len(fields)),
		}
	}

	p, err := strconv.ParseFloat(fields[idx.PValue], 64)
	if err != nil {
		return SummaryRecord{}, &ParseError{Offset: offset, Column: "p-value", Value: fields[idx.PValue], Err: err}
	}

	rec := SummaryRecord{P: p}
	if idx.SNP < len(fields) {
		rec.VariantID = fields[idx.SNP]
	}
	if idx.Chromosome < len(fields) {
		rec.Chromosome, _ = ParseChromosome(fields[idx.Chromosome])
	}
	if idx.Position < len(fields) {
		rec.Position, _ = strconv.ParseInt(fields[idx.Position], 10, 64)
	}

	return rec, nil
}
