// Package sumstats reads GWAS summary statistics files that are sorted by
// chromosome, jumping straight to a chromosome's block of records through a
// byte-offset index.
package sumstats

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gwasplot"
	"github.com/carbocation/gwasplot/normalize"
)

// File is an opened summary statistics file with its header resolved.
// Every read opens and closes its own handle on the underlying source.
type File struct {
	source    *gwasplot.Source
	layout    Layout
	columns   []string
	index     HeaderIndexMap
	split     func(string) []string
	dataStart int64

	positions ChromosomePositions
}

// Open reads the header of path and resolves the layout's columns against it.
// A missing column fails here, before any data is scanned. client may be nil
// unless path is a gs:// path.
func Open(ctx context.Context, path string, layout Layout, client *storage.Client) (*File, error) {
	src, err := gwasplot.NewSource(ctx, path, client)
	if err != nil {
		return nil, err
	}

	return OpenSource(ctx, src, layout)
}

func OpenSource(ctx context.Context, src *gwasplot.Source, layout Layout) (*File, error) {
	rc, err := src.OpenAt(ctx, 0)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	lr := newLineReader(rc, 0)
	headerLine, _, err := lr.next()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: file is empty", src.Path)
	} else if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", src.Path, err)
	}

	f := &File{
		source:    src,
		layout:    layout,
		dataStart: lr.offset,
	}

	f.split = splitter(layout.Delimiter)
	f.columns = f.split(headerLine)

	if layout.Delimiter == 0 && len(f.columns) == 1 {
		// Not whitespace delimited; try to work out what it is.
		if delim, ok := gwasplot.DetermineDelimiter(strings.NewReader(headerLine)); ok {
			if cols := splitter(delim)(headerLine); len(cols) > 1 {
				f.layout.Delimiter = delim
				f.split = splitter(delim)
				f.columns = cols
			}
		}
	}

	f.index, err = ResolveHeader(f.columns, layout.Names)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Path, err)
	}

	return f, nil
}

func (f *File) Path() string {
	return f.source.Path
}

// Columns returns the decoded header.
func (f *File) Columns() []string {
	return append([]string(nil), f.columns...)
}

func (f *File) Header() HeaderIndexMap {
	return f.index
}

func (f *File) Layout() Layout {
	return f.layout
}

// DataStart is the offset of the first byte after the header line.
func (f *File) DataStart() int64 {
	return f.dataStart
}

func (f *File) Source() *gwasplot.Source {
	return f.source
}

// NegLog10 returns the record's p-value on the -log10 scale, whether or not
// the file already stores it that way.
func (f *File) NegLog10(rec SummaryRecord) (float64, error) {
	if f.layout.NegLog10P {
		return rec.P, nil
	}

	y, err := normalize.NegLog10(rec.P)
	if err != nil {
		return 0, fmt.Errorf("%s at %d: %w", rec.VariantID, rec.Position, err)
	}

	return y, nil
}
