package sumstats

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingColumn        = errors.New("column not found in header")
	ErrDuplicateColumn      = errors.New("two logical columns resolve to the same header column")
	ErrChromosomeNotIndexed = errors.New("chromosome not present in position index")
	ErrUnsorted             = errors.New("file is not sorted by chromosome")
	ErrParse                = errors.New("could not parse field")
)

// MissingColumnError names the requested column and everything that was
// actually found in the header, for diagnosis.
type MissingColumnError struct {
	Name   string
	Header []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s was not found in [%s]", e.Name, strings.Join(e.Header, " "))
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}

// ParseError describes a data line that could not be converted.
type ParseError struct {
	Offset int64  // Decoded-stream offset of the offending line
	Column string // Logical column name, e.g. "position"
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line at byte %d: %s %q: %v", e.Offset, e.Column, e.Value, e.Err)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
