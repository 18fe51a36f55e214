package svelte

import (
	"errors"
	"io"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// scanExpression lexes JavaScript starting at start up to the closing brace
// that ends the expression. It returns the offset of that brace and the
// string literals met on the way.
func scanExpression(src string, start int) (int, []Node, error) {
	l := js.NewLexer(parse.NewInputString(src[start:]))
	var lits []Node
	depth := 0
	off := start
	prev := js.ErrorToken
	for {
		tt, data := l.Next()
		if (tt == js.DivToken || tt == js.DivEqToken) && regexpAllowed(prev) {
			tt, data = l.RegExp()
		}
		switch tt {
		case js.ErrorToken:
			if err := l.Err(); errors.Is(err, io.EOF) {
				return 0, nil, newParseError(src, len(src), "expected '}' to close the expression")
			} else if err != nil {
				var perr *parse.Error
				msg := err.Error()
				if errors.As(err, &perr) {
					msg = perr.Message
				}
				return 0, nil, newParseError(src, off+len(data), "%s", msg)
			}
		case js.OpenBraceToken:
			depth++
		case js.CloseBraceToken:
			if depth == 0 {
				return off, lits, nil
			}
			depth--
		case js.StringToken:
			lits = append(lits, &Literal{
				Start: off,
				End:   off + len(data),
				Quote: data[0],
				Value: string(data[1 : len(data)-1]),
			})
		}
		if tt != js.WhitespaceToken && tt != js.LineTerminatorToken && tt != js.CommentToken && tt != js.CommentLineTerminatorToken {
			prev = tt
		}
		off += len(data)
	}
}

// regexpAllowed reports whether a slash after prev starts a regular
// expression rather than a division.
func regexpAllowed(prev js.TokenType) bool {
	if js.IsIdentifier(prev) || js.IsNumeric(prev) {
		return false
	}
	switch prev {
	case js.StringToken, js.CloseParenToken, js.CloseBracketToken, js.CloseBraceToken, js.TemplateToken,
		js.TemplateEndToken, js.RegExpToken, js.ThisToken, js.TrueToken, js.FalseToken, js.NullToken:
		return false
	}
	return true
}

// expression parses the expression that starts at start and returns it with
// the offset of its closing brace.
func expression(src string, start int) (*Expression, int, error) {
	end, lits, err := scanExpression(src, start)
	if err != nil {
		return nil, 0, err
	}
	return &Expression{Start: start, End: end, Source: src[start:end], Nodes: lits}, end, nil
}
