package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the dataset file does not exist.
	ErrNotFound = errors.New("dataset file not found")
	// ErrUnsupportedFormat indicates no source can read the file extension.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrMalformed indicates rows that cannot be parsed (bad quoting, wrong field count).
	ErrMalformed = errors.New("malformed dataset")
	// ErrNoRows indicates a file with a header but no data rows.
	ErrNoRows = errors.New("dataset has no rows")
	// ErrMissingColumn indicates the header lacks one or more required columns.
	ErrMissingColumn = errors.New("dataset is missing required columns")
)

// LoadError wraps any failure to read the dataset. Load failures are fatal for the
// dashboard and are shown to the user verbatim.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "load dataset"
	}
	if e.Path == "" {
		return fmt.Sprintf("load dataset: %v", e.Err)
	}
	return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
