package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn indicates that a required header was not found.
	ErrMissingColumn = errors.New("dataset: missing column")

	// ErrMalformed indicates a cell that is empty or not numeric where a number is required.
	ErrMalformed = errors.New("dataset: malformed value")

	// ErrYearOrder indicates duplicate or descending years.
	ErrYearOrder = errors.New("dataset: years must be unique and ascending")

	// ErrEmpty indicates a file with a header but no data rows.
	ErrEmpty = errors.New("dataset: no rows")
)

// RowError locates a failure in the source file. Line is 1-based and counts
// the header.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %q: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
