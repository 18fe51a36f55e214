package format

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

type token struct {
	tt    js.TokenType
	text  string
	start int
}

func (t token) end() int { return t.start + len(t.text) }

// lex splits src into JavaScript tokens, whitespace and comments included.
func lex(src string) ([]token, error) {
	l := js.NewLexer(parse.NewInputString(src))
	var toks []token
	off := 0
	prev := js.ErrorToken
	for {
		tt, data := l.Next()
		if (tt == js.DivToken || tt == js.DivEqToken) && regexpAllowed(prev) {
			tt, data = l.RegExp()
		}
		if tt == js.ErrorToken {
			err := l.Err()
			if err == nil || errors.Is(err, io.EOF) {
				return toks, nil
			}
			msg := err.Error()
			var perr *parse.Error
			if errors.As(err, &perr) {
				msg = perr.Message
			}
			line, col, _ := parse.Position(strings.NewReader(src), off+len(data))
			return nil, fmt.Errorf("%d:%d: %s", line, col, msg)
		}
		toks = append(toks, token{tt: tt, text: string(data), start: off})
		if !trivia(tt) {
			prev = tt
		}
		off += len(data)
	}
}

func trivia(tt js.TokenType) bool {
	switch tt {
	case js.WhitespaceToken, js.LineTerminatorToken, js.CommentToken, js.CommentLineTerminatorToken:
		return true
	}
	return false
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

// formatJS applies the token level rules and re-indents src by base levels.
func formatJS(src string, opts Options, base int) (string, error) {
	toks, err := lex(src)
	if err != nil {
		return "", err
	}
	code := rewriteTokens(toks, opts)
	if code != src {
		if toks, err = lex(code); err != nil {
			return "", err
		}
	}
	return reindent(code, verbatimTokens(toks), opts, base), nil
}

func rewriteTokens(toks []token, opts Options) string {
	var sb strings.Builder
	for i, t := range toks {
		switch t.tt {
		case js.StringToken:
			sb.WriteString(requote(t.text, opts.SingleQuote))
			continue
		case js.CommaToken:
			if opts.TrailingComma == "none" && closesList(toks[i+1:]) {
				continue
			}
		}
		sb.WriteString(t.text)
	}
	return sb.String()
}

// closesList reports whether the next significant token ends a list.
func closesList(rest []token) bool {
	for _, t := range rest {
		if trivia(t.tt) {
			continue
		}
		switch t.tt {
		case js.CloseParenToken, js.CloseBracketToken, js.CloseBraceToken:
			return true
		}
		return false
	}
	return false
}

// requote switches a string literal to the preferred quote when that needs
// no extra escaping.
func requote(s string, single bool) string {
	want, other := byte('"'), byte('\'')
	if single {
		want, other = other, want
	}
	if len(s) < 2 || s[0] == want {
		return s
	}
	body := s[1 : len(s)-1]
	if strings.IndexByte(body, want) >= 0 || strings.Contains(body, `\`+string(other)) {
		return s
	}
	return string(want) + body + string(want)
}

// verbatimTokens returns the template literals and multi-line comments.
func verbatimTokens(toks []token) regions {
	var rs regions
	for _, t := range toks {
		switch t.tt {
		case js.TemplateToken, js.TemplateStartToken, js.TemplateMiddleToken, js.TemplateEndToken,
			js.CommentLineTerminatorToken:
			rs = append(rs, region{t.start, t.end()})
		}
	}
	return rs
}
