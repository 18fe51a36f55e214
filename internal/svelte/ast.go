// Package svelte parses Svelte component markup into a tree whose nodes
// carry byte offsets into the parsed source, and preprocesses TypeScript
// script blocks into JavaScript.
package svelte

import "strings"

// Node is a markup or expression node. Start and End are byte offsets into
// the source given to Parse; End is exclusive.
type Node interface {
	Span() (start, end int)
	children() []Node
}

// Root is the top-level fragment of a component.
type Root struct {
	Start, End int
	Nodes      []Node
}

// Element is a regular element or a component (<Dialog.Portal>).
type Element struct {
	Start, End  int
	Name        string
	Attributes  []Node
	Nodes       []Node
	SelfClosing bool
}

// Component reports whether the element names a component rather than an
// HTML element.
func (e *Element) Component() bool {
	if e.Name == "" {
		return false
	}
	c := e.Name[0]
	return c >= 'A' && c <= 'Z' || strings.Contains(e.Name, ".")
}

// RawElement is a <script> or <style> block. Its content is not parsed.
type RawElement struct {
	Start, End   int
	Name         string
	Attributes   []Node
	ContentStart int
	ContentEnd   int
	Content      string
}

// Attribute is name="value", name={expr}, a boolean attribute or a
// {shorthand}. Value is nil for boolean attributes and otherwise holds Text
// and ExpressionTag nodes.
type Attribute struct {
	Start, End int
	Name       string
	Value      []Node
	Quote      byte
}

// StaticValue returns the attribute value when it is a single text node.
func (a *Attribute) StaticValue() (*Text, bool) {
	if len(a.Value) != 1 {
		return nil, false
	}
	t, ok := a.Value[0].(*Text)
	return t, ok
}

// SpreadAttribute is {...expr}.
type SpreadAttribute struct {
	Start, End int
	Expression *Expression
}

// Directive is kind:name|modifiers=value, e.g. on:click or class:active.
type Directive struct {
	Start, End int
	Kind       string
	Name       string
	Modifiers  []string
	Value      []Node
}

// Text is raw character data. Entities are not decoded.
type Text struct {
	Start, End int
	Data       string
}

// Comment is an HTML comment; Data excludes the delimiters.
type Comment struct {
	Start, End int
	Data       string
}

// ExpressionTag is {expr} or a special tag such as {@html expr}, in which
// case Kind holds the tag name.
type ExpressionTag struct {
	Start, End int
	Kind       string
	Expression *Expression
}

// Block is a {#kind ...}...{/kind} block split into its branches.
type Block struct {
	Start, End int
	Kind       string
	Branches   []*Branch
}

// Branch is one section of a block: the opening section or an {:else},
// {:else if}, {:then} or {:catch} continuation.
type Branch struct {
	Start, End int
	Kind       string
	Expression *Expression
	Nodes      []Node
}

// Expression is the JavaScript source between braces. Nodes holds the
// string literals found in it.
type Expression struct {
	Start, End int
	Source     string
	Nodes      []Node
}

// Literal is a quoted string literal. Start and End include the quotes;
// Value is the raw text between them.
type Literal struct {
	Start, End int
	Quote      byte
	Value      string
}

// ContentSpan returns the offsets of the text between the quotes.
func (l *Literal) ContentSpan() (start, end int) {
	return l.Start + 1, l.End - 1
}

func (n *Root) Span() (int, int)            { return n.Start, n.End }
func (n *Element) Span() (int, int)         { return n.Start, n.End }
func (n *RawElement) Span() (int, int)      { return n.Start, n.End }
func (n *Attribute) Span() (int, int)       { return n.Start, n.End }
func (n *SpreadAttribute) Span() (int, int) { return n.Start, n.End }
func (n *Directive) Span() (int, int)       { return n.Start, n.End }
func (n *Text) Span() (int, int)            { return n.Start, n.End }
func (n *Comment) Span() (int, int)         { return n.Start, n.End }
func (n *ExpressionTag) Span() (int, int)   { return n.Start, n.End }
func (n *Block) Span() (int, int)           { return n.Start, n.End }
func (n *Branch) Span() (int, int)          { return n.Start, n.End }
func (n *Expression) Span() (int, int)      { return n.Start, n.End }
func (n *Literal) Span() (int, int)         { return n.Start, n.End }

func (n *Root) children() []Node { return n.Nodes }

func (n *Element) children() []Node {
	out := make([]Node, 0, len(n.Attributes)+len(n.Nodes))
	out = append(out, n.Attributes...)
	return append(out, n.Nodes...)
}

func (n *RawElement) children() []Node { return n.Attributes }
func (n *Attribute) children() []Node  { return n.Value }
func (n *Directive) children() []Node  { return n.Value }
func (n *Text) children() []Node       { return nil }
func (n *Comment) children() []Node    { return nil }
func (n *Literal) children() []Node    { return nil }
func (n *Expression) children() []Node { return n.Nodes }

func (n *SpreadAttribute) children() []Node { return exprChildren(n.Expression) }
func (n *ExpressionTag) children() []Node   { return exprChildren(n.Expression) }

func (n *Block) children() []Node {
	out := make([]Node, len(n.Branches))
	for i, b := range n.Branches {
		out[i] = b
	}
	return out
}

func (n *Branch) children() []Node {
	return append(exprChildren(n.Expression), n.Nodes...)
}

func exprChildren(e *Expression) []Node {
	if e == nil {
		return nil
	}
	return []Node{e}
}

// Walk visits n and its descendants depth first. visit receives each node
// with its state and a next function: next(s) visits the node's children
// with state s. If visit does not call next, the children are visited with
// the node's own state.
func Walk[S any](n Node, state S, visit func(n Node, state S, next func(S))) {
	descended := false
	next := func(s S) {
		descended = true
		for _, c := range n.children() {
			Walk(c, s, visit)
		}
	}
	visit(n, state, next)
	if !descended {
		for _, c := range n.children() {
			Walk(c, state, visit)
		}
	}
}
