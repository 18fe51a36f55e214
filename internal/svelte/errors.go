package svelte

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// ParseError is a markup syntax error.
type ParseError struct {
	Pos     int
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

func newParseError(src string, pos int, format string, args ...any) *ParseError {
	if pos > len(src) {
		pos = len(src)
	}
	line, col, _ := parse.Position(strings.NewReader(src), pos)
	return &ParseError{Pos: pos, Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
}
