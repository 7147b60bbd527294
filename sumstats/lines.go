package sumstats

import (
	"bufio"
	"bytes"
	"io"
)

// maxLineLength bounds a single line of a summary statistics file.
const maxLineLength = 16 << 20

// lineReader reads lines while tracking the decoded-stream offset at which
// each line starts.
type lineReader struct {
	scanner *bufio.Scanner
	offset  int64
}

func newLineReader(r io.Reader, offset int64) *lineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	scanner.Split(scanLinesNondestructive)

	return &lineReader{
		scanner: scanner,
		offset:  offset,
	}
}

// next returns the line without its line ending, and the offset of its first
// byte. At the end of the stream it returns io.EOF.
func (l *lineReader) next() (line string, start int64, err error) {
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return "", l.offset, err
		}
		return "", l.offset, io.EOF
	}

	b := l.scanner.Bytes()
	start = l.offset
	l.offset += int64(len(b))

	return string(dropCRLF(b)), start, nil
}

// scanLinesNondestructive does not destroy the \n or the possible \r\n from a
// line, so that offsets can be computed from token lengths. Otherwise it is
// like bufio.ScanLines.
func scanLinesNondestructive(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		// We have a full newline-terminated line.
		return i + 1, data[0 : i+1], nil
	}
	// If we're at EOF, we have a final, non-terminated line. Return it.
	if atEOF {
		return len(data), data, nil
	}
	// Request more data.
	return 0, nil, nil
}

func dropCRLF(b []byte) []byte {
	b = bytes.TrimSuffix(b, []byte{'\n'})
	return bytes.TrimSuffix(b, []byte{'\r'})
}
