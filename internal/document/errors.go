package document

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat indicates a file extension with no matching format.
var ErrUnknownFormat = errors.New("unknown document format")

// ParseError represents an error while decoding a styles document.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Format is the format the file was decoded as.
	Format Format
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s (%s): %s", e.Path, e.Format, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
