package gwasplot

import (
	"bufio"
	"compress/bzip2"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/pgzip"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeBZip2
)

func (dt DataType) String() string {
	switch dt {
	case DataTypeNoCompression:
		return "uncompressed"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeBZip2:
		return "bzip2"
	}

	return "invalid"
}

// Compressed is true when offsets into the decoded stream cannot be reached by
// seeking the underlying file.
func (dt DataType) Compressed() bool {
	return dt != DataTypeNoCompression && dt != DataTypeInvalid
}

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType attempts to detect the data type of a stream by checking
// against a set of known data types. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475 . Unix compress (.Z, 0x1f 0x9d)
// is LZW with resets that compress/lzw cannot read, so it is treated as
// plain text and fails at the header.
func DetectDataType(r io.Reader) (DataType, error) {
	buff := make([]byte, 6)
	n, err := io.ReadFull(r, buff)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return DataTypeInvalid, err
	}

	return matchSignature(buff[:n]), nil
}

func matchSignature(buff []byte) DataType {
Outer:
	for dt, sig := range byteCodeSigs {
		if len(buff) < len(sig) {
			continue
		}
		for position := range sig {
			if buff[position] != sig[position] {
				continue Outer
			}
		}
		return dt
	}

	return DataTypeNoCompression
}

// DataTypeFromPath trusts a .gz suffix. Anything else has to be sniffed.
func DataTypeFromPath(path string) DataType {
	if strings.HasSuffix(path, ".gz") {
		return DataTypeGzip
	}

	return DataTypeInvalid
}

// NewDecompressingReader wraps r with the decoder for dt. Uncompressed data is
// returned as-is, with a no-op Close.
func NewDecompressingReader(dt DataType, r io.Reader) (io.ReadCloser, error) {
	switch dt {
	case DataTypeGzip:
		return pgzip.NewReader(r)
	case DataTypeZip:
		zr := zipstream.NewReader(r)
		if _, err := zr.Next(); err == io.EOF {
			return nil, fmt.Errorf("zip archive has no entries")
		} else if err != nil {
			return nil, err
		}
		// Only the first entry is read
		return &readCloserFaker{zr}, nil
	case DataTypeBZip2:
		return &readCloserFaker{bzip2.NewReader(r)}, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(r, 0)
		if err != nil {
			return nil, err
		}
		return &readCloserFaker{reader}, nil
	case DataTypeNoCompression:
		return &readCloserFaker{r}, nil
	}

	return nil, fmt.Errorf("no decoder for data type %v", dt)
}

// sniffDataType peeks at the head of r without consuming it.
func sniffDataType(r *bufio.Reader) (DataType, error) {
	buff, err := r.Peek(6)
	if err != nil && err != io.EOF {
		return DataTypeInvalid, err
	}

	return matchSignature(buff), nil
}

// readCloserFaker "upgrades" readers that don't need to be closed
type readCloserFaker struct {
	io.Reader
}

func (c *readCloserFaker) Close() error {
	return nil
}
