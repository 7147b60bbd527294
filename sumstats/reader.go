package sumstats

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Reader yields the records of one chromosome, or of the whole file. Use it
// like a bufio.Scanner:
//
//	for r.Next() {
//		rec := r.Record()
//	}
//	if err := r.Err(); err != nil {
type Reader struct {
	rc     io.ReadCloser
	lines  *lineReader
	split  func(string) []string
	index  HeaderIndexMap
	target int // zero reads every record
	parse  func([]string, HeaderIndexMap, int64) (SummaryRecord, error)

	record SummaryRecord
	done   bool
	err    error
}

// ReadChromosome positions a Reader at the start of chromosome's block.
// Chromosome 1 is read from just after the header. Any other chromosome needs
// an index entry (the index is built if none was supplied); an absent entry is
// ErrChromosomeNotIndexed.
//
// The scan ends at the first record with a higher chromosome. Records with a
// lower chromosome are skipped, so on a sorted file the Reader yields exactly
// the records whose chromosome equals the target.
func (f *File) ReadChromosome(ctx context.Context, chromosome int) (*Reader, error) {
	if chromosome < 1 {
		return nil, fmt.Errorf("invalid chromosome %d", chromosome)
	}

	start := f.dataStart
	if chromosome != 1 {
		positions, err := f.Positions(ctx)
		if err != nil {
			return nil, err
		}

		offset, exists := positions[chromosome]
		if !exists {
			return nil, fmt.Errorf("%s: chromosome %d: %w", f.Path(), chromosome, ErrChromosomeNotIndexed)
		}
		start = offset
	}

	return f.readerAt(ctx, start, chromosome, parseRecord)
}

// All returns a Reader over every record in the file. Every field must parse.
func (f *File) All(ctx context.Context) (*Reader, error) {
	return f.readerAt(ctx, f.dataStart, 0, parseRecord)
}

// PValues returns a Reader over every record in the file that only insists on
// the p-value column. Chromosome and position are zero where they do not
// parse.
func (f *File) PValues(ctx context.Context) (*Reader, error) {
	return f.readerAt(ctx, f.dataStart, 0, parsePValueRecord)
}

func (f *File) readerAt(ctx context.Context, offset int64, target int, parse func([]string, HeaderIndexMap, int64) (SummaryRecord, error)) (*Reader, error) {
	rc, err := f.source.OpenAt(ctx, offset)
	if err != nil {
		return nil, err
	}

	return &Reader{
		rc:     rc,
		lines:  newLineReader(rc, offset),
		split:  f.split,
		index:  f.index,
		target: target,
		parse:  parse,
	}, nil
}

// Next advances to the next record. It returns false at the end of the
// chromosome's block, at end of file, or on error.
func (r *Reader) Next() bool {
	if r.done {
		return false
	}

	for {
		line, start, err := r.lines.next()
		if err == io.EOF {
			return r.finish(nil)
		} else if err != nil {
			return r.finish(err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		rec, err := r.parse(r.split(line), r.index, start)
		if err != nil {
			return r.finish(err)
		}

		if r.target != 0 {
			if rec.Chromosome > r.target {
				return r.finish(nil)
			}
			if rec.Chromosome < r.target {
				continue
			}
		}

		r.record = rec
		return true
	}
}

func (r *Reader) finish(err error) bool {
	r.done = true
	r.err = err

	return false
}

func (r *Reader) Record() SummaryRecord {
	return r.record
}

func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) Close() error {
	return r.rc.Close()
}

// Chromosome reads every record of one chromosome. A malformed line fails the
// whole call; no partial result is returned.
func (f *File) Chromosome(ctx context.Context, chromosome int) ([]SummaryRecord, error) {
	r, err := f.ReadChromosome(ctx, chromosome)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out := make([]SummaryRecord, 0)
	for r.Next() {
		out = append(out, r.Record())
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("%s: chromosome %d: %w", f.Path(), chromosome, err)
	}

	return out, nil
}
