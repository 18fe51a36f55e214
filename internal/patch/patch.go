// Package patch rewrites the class strings of a Svelte component in place.
// Only text inside class attributes is touched; every other byte of the
// source is preserved.
package patch

import (
	"github.com/yacobolo/twprefix/internal/classes"
	"github.com/yacobolo/twprefix/internal/prefix"
	"github.com/yacobolo/twprefix/internal/svelte"
)

// SpanKind tells where a class-bearing span was found.
type SpanKind string

const (
	SpanAttribute SpanKind = "attribute"
	SpanLiteral   SpanKind = "literal"
	SpanText      SpanKind = "text"
)

// Span is a class-bearing region of the source.
type Span struct {
	Kind       SpanKind
	Start, End int
	Text       string
	Rewritten  string
}

// Result is the outcome of patching one document.
type Result struct {
	Output string
	Spans  []Span
	// Tokens counts the rewritten class tokens.
	Tokens int
}

// Patch returns src with the recognized class tokens prefixed.
func Patch(src string, recognized classes.Set, pfx string) (string, error) {
	res, err := Apply(src, recognized, pfx)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// Apply parses src, walks it with an inside-class state and rewrites every
// class-bearing span. Parse errors are returned unmodified.
func Apply(src string, recognized classes.Set, pfx string) (*Result, error) {
	root, err := svelte.Parse(src)
	if err != nil {
		return nil, err
	}

	buf := NewBuffer(src)
	res := &Result{}
	seen := make(map[[2]int]bool)
	var editErr error
	rewrite := func(kind SpanKind, start, end int) {
		if editErr != nil || seen[[2]int{start, end}] {
			return
		}
		seen[[2]int{start, end}] = true
		text := src[start:end]
		out, n := prefix.RewriteCount(text, recognized, pfx)
		res.Spans = append(res.Spans, Span{Kind: kind, Start: start, End: end, Text: text, Rewritten: out})
		if n == 0 {
			return
		}
		res.Tokens += n
		editErr = buf.Overwrite(start, end, out)
	}

	svelte.Walk(svelte.Node(root), false, func(n svelte.Node, insideClass bool, next func(bool)) {
		switch n := n.(type) {
		case *svelte.Attribute:
			if insideClass || n.Name != "class" {
				return
			}
			if t, ok := n.StaticValue(); ok {
				rewrite(SpanAttribute, t.Start, t.End)
			}
			next(true)
		case *svelte.Literal:
			if insideClass {
				start, end := n.ContentSpan()
				rewrite(SpanLiteral, start, end)
			}
		case *svelte.Text:
			if insideClass {
				rewrite(SpanText, n.Start, n.End)
			}
		}
	})
	if editErr != nil {
		return nil, editErr
	}
	res.Output = buf.String()
	return res, nil
}
