package tailwind

import "sort"

// Tree is the object form of a stylesheet: rule selectors and at-rule
// heads ("@media (min-width: 640px)") mapped to their contents.
type Tree map[string]*Entry

// Entry holds the declarations and nested rules under one key.
type Entry struct {
	Declarations map[string]string
	Children     Tree
}

// Keys returns the tree's keys in lexical order.
func (t Tree) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Objectify parses CSS text into a Tree. Repeated keys merge.
func Objectify(cssText string) (Tree, error) {
	nodes, err := parseSheet(cssText, "<generated>")
	if err != nil {
		return nil, err
	}
	t := make(Tree)
	t.addNodes(nodes)
	return t, nil
}

func (t Tree) entry(key string) *Entry {
	e, ok := t[key]
	if !ok {
		e = &Entry{Declarations: make(map[string]string)}
		t[key] = e
	}
	return e
}

func (t Tree) addNodes(nodes []*node) {
	for _, n := range nodes {
		switch n.kind {
		case ruleNode:
			t.entry(n.selector).addNodes(n.children)
		case atRuleNode:
			t.entry(atRuleHead(n)).addNodes(n.children)
		}
	}
}

func (e *Entry) addNodes(nodes []*node) {
	var nested []*node
	for _, n := range nodes {
		if n.kind == declNode {
			e.Declarations[n.prop] = n.value
			continue
		}
		nested = append(nested, n)
	}
	if len(nested) == 0 {
		return
	}
	if e.Children == nil {
		e.Children = make(Tree)
	}
	e.Children.addNodes(nested)
}
