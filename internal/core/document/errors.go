package document

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrAlreadyOpen is returned when a path is already bound to an open document.
	ErrAlreadyOpen = errors.New("file is already open")
	// ErrUntitled is returned by Save for a document that has no path yet.
	ErrUntitled = errors.New("document has no file path")
	// ErrNoDocument is returned for an index outside the open documents.
	ErrNoDocument = errors.New("no such document")
)

// IOError reports a file that could not be read or written. The document
// state is unchanged when it is returned.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports file content that is not a valid case document. No
// document is created when it is returned.
type ParseError struct {
	Path   string
	Offset int64 // byte offset of a syntax error, or -1
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("parse %s at offset %d: %v", e.Path, e.Offset, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func newParseError(path string, err error) *ParseError {
	pe := &ParseError{Path: path, Offset: -1, Err: err}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		pe.Offset = syntaxErr.Offset
	}
	return pe
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsIOError reports whether err wraps an *IOError.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}

// IsParseError reports whether err wraps a *ParseError.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}
