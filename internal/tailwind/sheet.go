package tailwind

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type nodeKind int

const (
	ruleNode nodeKind = iota
	atRuleNode
	declNode
	rawNode
)

// node is one item of a parsed stylesheet.
type node struct {
	kind     nodeKind
	selector string // ruleNode
	name     string // atRuleNode, lowercase with "@"
	prelude  string // atRuleNode
	block    bool   // atRuleNode has a body
	prop     string // declNode
	value    string // declNode, rawNode
	children []*node
}

func (n *node) add(c *node) {
	n.children = append(n.children, c)
}

func (n *node) clone() *node {
	c := *n
	c.children = make([]*node, len(n.children))
	for i, ch := range n.children {
		c.children[i] = ch.clone()
	}
	return &c
}

// Decl is a single CSS declaration.
type Decl struct {
	Property string
	Value    string
}

func declNodes(decls []Decl) []*node {
	out := make([]*node, len(decls))
	for i, d := range decls {
		out[i] = &node{kind: declNode, prop: d.Property, value: d.Value}
	}
	return out
}

// joinTokens concatenates grammar values the way the parser normalized them.
func joinTokens(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// parseSheet parses src into nodes. file is only used for error reporting.
func parseSheet(src, file string) ([]*node, error) {
	p := css.NewParser(parse.NewInputString(src), false)
	root := &node{kind: atRuleNode, block: true}
	stack := []*node{root}
	top := func() *node { return stack[len(stack)-1] }
	pop := func() {
		if len(stack) > 1 {
			stack = stack[:len(stack)-1]
		}
	}

	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if p.HasParseError() {
				return nil, newSyntaxError(file, p.Err())
			}
			return root.children, nil
		case css.CommentGrammar:
			// dropped
		case css.AtRuleGrammar:
			top().add(&node{kind: atRuleNode, name: string(data), prelude: joinTokens(p.Values())})
		case css.BeginAtRuleGrammar:
			n := &node{kind: atRuleNode, name: string(data), prelude: joinTokens(p.Values()), block: true}
			top().add(n)
			stack = append(stack, n)
		case css.QualifiedRuleGrammar:
			top().add(&node{kind: ruleNode, selector: joinTokens(p.Values())})
		case css.BeginRulesetGrammar:
			n := &node{kind: ruleNode, selector: joinTokens(p.Values())}
			top().add(n)
			stack = append(stack, n)
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			pop()
		case css.DeclarationGrammar:
			top().add(&node{kind: declNode, prop: string(data), value: joinTokens(p.Values())})
		case css.CustomPropertyGrammar:
			value := ""
			if vals := p.Values(); len(vals) > 0 {
				value = strings.TrimSpace(string(vals[0].Data))
			}
			top().add(&node{kind: declNode, prop: string(data), value: value})
		case css.TokenGrammar:
			t := top()
			if n := len(t.children); n > 0 && t.children[n-1].kind == rawNode {
				t.children[n-1].value += string(data)
			} else {
				t.add(&node{kind: rawNode, value: string(data)})
			}
		}
	}
}

// loader inlines @import rules relative to the importing file.
type loader struct {
	visited map[string]bool
}

// load parses src (located at from) and recursively splices imported sheets
// in place of their @import rule.
func (l *loader) load(src, from string) ([]*node, error) {
	nodes, err := parseSheet(src, from)
	if err != nil {
		return nil, err
	}
	out := make([]*node, 0, len(nodes))
	for _, n := range nodes {
		if n.kind != atRuleNode || n.name != "@import" || n.block {
			out = append(out, n)
			continue
		}
		target := importTarget(n.prelude)
		if directive, ok := packageDirective(target); ok {
			out = append(out, &node{kind: atRuleNode, name: "@tailwind", prelude: directive})
			continue
		}
		if target == "" || isRemote(target) {
			out = append(out, n)
			continue
		}
		path := target
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(from), target)
		}
		path = filepath.Clean(path)
		if l.visited[path] {
			continue
		}
		l.visited[path] = true

		// #nosec G304 - import paths come from the configured stylesheet
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, &ImportError{From: from, Path: target, Err: err}
		}
		imported, err := l.load(string(content), path)
		if err != nil {
			return nil, err
		}
		out = append(out, imported...)
	}
	return out, nil
}

// importTarget extracts the URL from an @import prelude.
// Handles: "url"; 'url'; url("url"); url(url). Media queries are ignored.
func importTarget(prelude string) string {
	s := strings.TrimSpace(prelude)
	if strings.HasPrefix(s, "url(") {
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return ""
		}
		return unquote(strings.TrimSpace(s[4:end]))
	}
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		if end := strings.IndexByte(s[1:], s[0]); end >= 0 {
			return s[1 : end+1]
		}
	}
	return ""
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func isRemote(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "//")
}

// packageDirective maps "tailwindcss/base" style imports to directives.
func packageDirective(target string) (string, bool) {
	switch strings.TrimSuffix(target, ".css") {
	case "tailwindcss/base":
		return "base", true
	case "tailwindcss/components":
		return "components", true
	case "tailwindcss/utilities":
		return "utilities", true
	}
	return "", false
}

// printSheet serializes nodes as indented CSS.
func printSheet(nodes []*node) string {
	var sb strings.Builder
	for i, n := range nodes {
		if i > 0 {
			sb.WriteByte('\n')
		}
		printNode(&sb, n, 0)
	}
	return sb.String()
}

func printNode(sb *strings.Builder, n *node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.kind {
	case declNode:
		fmt.Fprintf(sb, "%s%s: %s;\n", indent, n.prop, n.value)
	case rawNode:
		fmt.Fprintf(sb, "%s%s\n", indent, strings.TrimSpace(n.value))
	case ruleNode:
		fmt.Fprintf(sb, "%s%s {\n", indent, n.selector)
		for _, c := range n.children {
			printNode(sb, c, depth+1)
		}
		fmt.Fprintf(sb, "%s}\n", indent)
	case atRuleNode:
		head := n.name
		if n.prelude != "" {
			head += " " + n.prelude
		}
		if !n.block {
			fmt.Fprintf(sb, "%s%s;\n", indent, head)
			return
		}
		fmt.Fprintf(sb, "%s%s {\n", indent, head)
		for _, c := range n.children {
			printNode(sb, c, depth+1)
		}
		fmt.Fprintf(sb, "%s}\n", indent)
	}
}
