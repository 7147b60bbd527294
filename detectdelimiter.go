package gwasplot

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file. ok is false if no candidate
// was found.
func DetermineDelimiter(r io.Reader) (delim rune, ok bool) {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 && len(delimiters[0]) > 0 {
		return rune(delimiters[0][0]), true
	}

	return ',', false
}
