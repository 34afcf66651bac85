package core

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers wrap them with context and test with errors.Is.
var (
	// ErrPrecondition means a required directory is absent.
	ErrPrecondition = errors.New("precondition failed")

	// ErrUnsupportedFormat means an input file has an unrecognised suffix.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrFormat means an input file could not be parsed into its declared shape.
	ErrFormat = errors.New("invalid file format")

	// ErrMissingColumn means a declared or designated column is not in the input.
	ErrMissingColumn = errors.New("missing required column")

	// ErrHeaderMismatch means rows were appended to a file with a different header.
	ErrHeaderMismatch = errors.New("header mismatch")
)

// ValidationError describes a single cell that failed to parse at load time.
type ValidationError struct {
	Line    int    // 1-indexed line (delimited) or record number (record array)
	Field   string // Column name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("line %d: %s: %s %q", e.Line, e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Unwrap lets errors.Is match ErrFormat.
func (e *ValidationError) Unwrap() error {
	return ErrFormat
}
