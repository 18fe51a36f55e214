package tailwind

import (
	"errors"
	"fmt"

	"github.com/tdewolff/parse/v2"
)

// SyntaxError reports malformed stylesheet input.
type SyntaxError struct {
	File    string
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

func newSyntaxError(file string, err error) *SyntaxError {
	var perr *parse.Error
	if errors.As(err, &perr) {
		return &SyntaxError{File: file, Line: perr.Line, Column: perr.Column, Message: perr.Message}
	}
	return &SyntaxError{File: file, Message: err.Error()}
}

// ImportError reports an @import that could not be resolved.
type ImportError struct {
	From string
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%s: failed to find %q: %v", e.From, e.Path, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
