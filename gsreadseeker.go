package gwasplot

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
)

type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// GSReadSeekCloser decorates a Google Storage object handle with io.Reader,
// io.Seeker and io.Closer. Derived from
// https://github.com/googleapis/google-cloud-go/issues/1124#issuecomment-419070541
type GSReadSeekCloser struct {
	*storage.ObjectHandle
	Context context.Context
	r       *storage.Reader
	pos     int64 // offset of the next byte returned by Read
	size    int64
}

func (s *GSReadSeekCloser) Read(buf []byte) (int, error) {
	if s.pos >= s.size {
		return 0, io.EOF
	}

	var err error
	if s.r == nil {
		// The -1 length reads through to the end of the object.
		s.r, err = s.NewRangeReader(s.Context, s.pos, -1)
		if err != nil {
			return 0, err
		}
	}

	n, err := s.r.Read(buf)
	s.pos += int64(n)

	return n, err
}

// Seek closes the current range reader; the next Read opens a new one at the
// requested offset.
func (s *GSReadSeekCloser) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64

	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = s.pos + offset
	case io.SeekEnd:
		newOffset = s.size + offset
	default:
		return 0, fmt.Errorf("io.Seeker 'whence' value %d is not implemented", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("seek to negative offset %d", newOffset)
	}

	if newOffset == s.pos {
		return s.pos, nil
	}

	if err := s.closeReader(); err != nil {
		return 0, err
	}
	s.pos = newOffset

	return s.pos, nil
}

func (s *GSReadSeekCloser) closeReader() error {
	if s.r == nil {
		return nil
	}
	err := s.r.Close()
	s.r = nil

	return err
}

func (s *GSReadSeekCloser) Close() error {
	return s.closeReader()
}

// IsGoogleStoragePath reports whether path names a gs:// object.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// OpenSeeker opens a local file, or a gs:// object when a storage client is
// provided, and reports its size in bytes.
func OpenSeeker(ctx context.Context, path string, client *storage.Client) (ReadSeekCloser, int64, error) {
	if IsGoogleStoragePath(path) {
		if client == nil {
			return nil, 0, fmt.Errorf("%s: a Google Storage client is required to read gs:// paths", path)
		}

		// Detect the bucket and the path to the actual file
		pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
		if len(pathParts) != 2 {
			return nil, 0, fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
		}

		handle := client.Bucket(pathParts[0]).Object(pathParts[1])

		// Make a hard call to get the filesize
		attrs, err := handle.Attrs(ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", path, err)
		}

		return &GSReadSeekCloser{
			ObjectHandle: handle,
			Context:      ctx,
			size:         attrs.Size,
		}, attrs.Size, nil
	}

	f, err := os.Open(ExpandHome(path))
	if err != nil {
		return nil, 0, err
	}
	fstat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}

	return f, fstat.Size(), nil
}

// NewStorageClientIfNeeded returns a default-credential storage client when
// any of the paths is a gs:// path, and nil otherwise.
func NewStorageClientIfNeeded(ctx context.Context, paths ...string) (*storage.Client, error) {
	for _, path := range paths {
		if IsGoogleStoragePath(path) {
			return storage.NewClient(ctx)
		}
	}

	return nil, nil
}
