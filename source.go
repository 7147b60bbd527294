package gwasplot

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// Source is a delimited text file, possibly compressed and possibly stored in
// Google Storage, addressed by byte offsets into its decoded text.
type Source struct {
	Path     string
	DataType DataType
	Size     int64 // Size of the stored (not decoded) file

	client *storage.Client
}

// NewSource inspects path once to learn its size and compression.
func NewSource(ctx context.Context, path string, client *storage.Client) (*Source, error) {
	raw, size, err := OpenSeeker(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer raw.Close()

	src := &Source{
		Path:     path,
		DataType: DataTypeFromPath(path),
		Size:     size,
		client:   client,
	}

	if src.DataType == DataTypeInvalid {
		src.DataType, err = sniffDataType(bufio.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	return src, nil
}

// OpenAt returns the decoded text of the source starting at offset. Plain
// files seek directly. Compressed files are decoded from the start and the
// first offset bytes are discarded.
func (s *Source) OpenAt(ctx context.Context, offset int64) (io.ReadCloser, error) {
	raw, _, err := OpenSeeker(ctx, s.Path, s.client)
	if err != nil {
		return nil, err
	}

	if !s.DataType.Compressed() {
		if _, err := raw.Seek(offset, io.SeekStart); err != nil {
			raw.Close()
			return nil, fmt.Errorf("%s: seek to %d: %w", s.Path, offset, err)
		}
		return raw, nil
	}

	dec, err := NewDecompressingReader(s.DataType, bufio.NewReaderSize(raw, 1<<20))
	if err != nil {
		raw.Close()
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}

	rc := &stackedReadCloser{Reader: dec, closers: []io.Closer{dec, raw}}

	if offset > 0 {
		if _, err := io.CopyN(io.Discard, dec, offset); err != nil {
			rc.Close()
			if err == io.EOF {
				return nil, fmt.Errorf("%s: offset %d is beyond the end of the decoded stream", s.Path, offset)
			}
			return nil, fmt.Errorf("%s: skip to %d: %w", s.Path, offset, err)
		}
	}

	return rc, nil
}

// stackedReadCloser closes a decoder and the file beneath it, in order.
type stackedReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReadCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
