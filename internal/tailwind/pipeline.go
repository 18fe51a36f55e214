// Package tailwind is a content-driven utility CSS generator. It expands
// @tailwind directives and @layer blocks of a stylesheet into the rules used
// by a set of content sources, and returns the result as CSS text or as an
// object tree.
package tailwind

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Pipeline generates utility CSS. It is safe for concurrent use.
type Pipeline struct {
	registry *Registry
	variants *variantSet
	log      *zap.Logger
}

// RunOptions configures one run.
type RunOptions struct {
	// From is the path of the stylesheet; relative @imports resolve against it.
	From string
	// Content holds the sources scanned for class candidates.
	Content []string
	// Plugins register utilities for this run only.
	Plugins []Plugin
}

// New builds a pipeline for cfg.
func New(cfg Config, log *zap.Logger) (*Pipeline, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.DarkMode != "" && cfg.DarkMode != "media" && cfg.DarkMode != "class" {
		return nil, fmt.Errorf("invalid dark-mode %q (expected media or class)", cfg.DarkMode)
	}
	reg, err := newRegistry(cfg)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		registry: reg,
		variants: newVariantSet(cfg),
		log:      log.Named("tailwind"),
	}, nil
}

// Run generates CSS for src and returns it in object form.
func (p *Pipeline) Run(src string, opts RunOptions) (Tree, error) {
	out, err := p.Generate(src, opts)
	if err != nil {
		return nil, err
	}
	return Objectify(out)
}

// Generate expands src and returns the resulting stylesheet.
func (p *Pipeline) Generate(src string, opts RunOptions) (string, error) {
	from := opts.From
	if from == "" {
		from = "<input>"
	}
	l := &loader{visited: map[string]bool{filepath.Clean(from): true}}
	nodes, err := l.load(src, from)
	if err != nil {
		return "", err
	}

	reg := p.registry
	if len(opts.Plugins) > 0 {
		reg = reg.clone()
		for _, plugin := range opts.Plugins {
			plugin(reg)
		}
	}
	g := &generator{registry: reg, variants: p.variants}

	var top []*node
	layers := make(map[string][]*node)
	directives := make(map[string]bool)
	for _, n := range nodes {
		if n.kind == atRuleNode && n.name == "@layer" && n.block {
			switch n.prelude {
			case "base", "components", "utilities":
				layers[n.prelude] = append(layers[n.prelude], n.children...)
				continue
			}
		}
		if n.kind == atRuleNode && n.name == "@tailwind" {
			directives[n.prelude] = true
		}
		top = append(top, n)
	}
	for _, name := range []string{"base", "components", "utilities"} {
		if len(layers[name]) > 0 && !directives[name] {
			return "", &SyntaxError{File: from, Message: fmt.Sprintf(
				"`@layer %s` is used but no matching `@tailwind %s` directive is present", name, name)}
		}
	}
	g.custom = []layerIndex{indexLayer(layers["components"]), indexLayer(layers["utilities"])}

	candidates := Candidates(opts.Content...)
	var generated []generatedRule
	for _, c := range candidates {
		generated = append(generated, g.candidate(c)...)
	}
	sortGenerated(generated)
	p.log.Debug("generated utilities",
		zap.String("from", from),
		zap.Int("candidates", len(candidates)),
		zap.Int("rules", len(generated)))

	var out []*node
	for _, n := range top {
		if n.kind != atRuleNode || n.name != "@tailwind" {
			out = append(out, n)
			continue
		}
		switch n.prelude {
		case "base":
			out = append(out, baseReset()...)
			out = append(out, layers["base"]...)
		case "components":
			out = append(out, emit(generated, 0)...)
		case "utilities":
			out = append(out, emit(generated, 1)...)
		case "variants", "screens":
			// variant rules are emitted with their utilities
		default:
			return "", &SyntaxError{File: from, Message: fmt.Sprintf("unknown directive `@tailwind %s`", n.prelude)}
		}
	}

	out, err = g.expandApply(out)
	if err != nil {
		return "", &SyntaxError{File: from, Message: err.Error()}
	}
	return printSheet(out), nil
}

// layerRule is a rule from a components or utilities layer.
type layerRule struct {
	rule     *node
	wrappers []string
	order    int
}

// layerIndex maps a class name to the layer rules mentioning it.
type layerIndex map[string][]layerRule

func indexLayer(nodes []*node) layerIndex {
	idx := make(layerIndex)
	order := 0
	var walk func(nodes []*node, wrappers []string)
	walk = func(nodes []*node, wrappers []string) {
		for _, n := range nodes {
			switch n.kind {
			case ruleNode:
				for _, class := range selectorClasses(n.selector) {
					idx[class] = append(idx[class], layerRule{rule: n, wrappers: wrappers, order: order})
				}
				order++
			case atRuleNode:
				if n.block {
					walk(n.children, append(slices.Clip(wrappers), atRuleHead(n)))
				}
			}
		}
	}
	walk(nodes, nil)
	return idx
}

func atRuleHead(n *node) string {
	if n.prelude == "" {
		return n.name
	}
	return n.name + " " + n.prelude
}

// selectorClasses returns the unescaped class names in a selector.
func selectorClasses(sel string) []string {
	var out []string
	for i := 0; i < len(sel); i++ {
		if sel[i] != '.' {
			continue
		}
		j := i + 1
		for j < len(sel) {
			c := sel[j]
			if c == '\\' && j+1 < len(sel) {
				j += 2
				continue
			}
			if c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80 {
				j++
				continue
			}
			break
		}
		if j > i+1 {
			out = append(out, unescape(sel[i+1:j]))
		}
		i = j - 1
	}
	return out
}

type generatedRule struct {
	layer int
	media []string
	ranks []int
	order int
	name  string
	rule  *node
}

type generator struct {
	registry *Registry
	variants *variantSet
	custom   []layerIndex
}

// parseCandidate splits a candidate into resolved variants and a utility name.
func (g *generator) parseCandidate(c string) (vars []variant, util string, important bool, ok bool) {
	parts := splitTopLevel(c, ':')
	util = parts[len(parts)-1]
	if util == "" {
		return nil, "", false, false
	}
	if strings.HasPrefix(util, "!") {
		util, important = util[1:], true
	}
	for _, name := range parts[:len(parts)-1] {
		v, found := g.variants.lookup(name)
		if !found {
			return nil, "", false, false
		}
		vars = append(vars, v)
	}
	return vars, util, important, util != ""
}

// applyVariants applies variants right to left and returns the selector and
// the at-rule heads wrapping it, outermost first.
func applyVariants(sel string, vars []variant) (string, []string, []int) {
	var media []string
	ranks := make([]int, 0, len(vars))
	for i := len(vars) - 1; i >= 0; i-- {
		v := vars[i]
		if v.selector != nil {
			sel = v.selector(sel)
		}
		if v.media != "" {
			media = append([]string{v.media}, media...)
		}
		ranks = append(ranks, v.rank)
	}
	return sel, media, ranks
}

func (g *generator) candidate(c string) []generatedRule {
	vars, util, important, ok := g.parseCandidate(c)
	if !ok {
		return nil
	}
	classSel := "." + Escape(c)
	var out []generatedRule

	for layer, idx := range g.custom {
		for _, lr := range idx[util] {
			rule := lr.rule.clone()
			rule.selector = replaceClass(rule.selector, util, c)
			if important {
				markImportant(rule)
			}
			sel, media, ranks := applyVariants(rule.selector, vars)
			rule.selector = sel
			out = append(out, generatedRule{
				layer: layer,
				media: append(media, lr.wrappers...),
				ranks: ranks,
				order: lr.order,
				name:  c,
				rule:  rule,
			})
		}
	}

	if u, ok := g.registry.Resolve(util); ok {
		sel, media, ranks := applyVariants(classSel, vars)
		rule := &node{kind: ruleNode, selector: sel + u.Suffix, children: declNodes(u.Decls)}
		if important {
			markImportant(rule)
		}
		out = append(out, generatedRule{layer: 1, media: media, ranks: ranks, order: 10000 + u.Order, name: c, rule: rule})
	}
	return out
}

func markImportant(rule *node) {
	for _, ch := range rule.children {
		if ch.kind == declNode && !strings.HasSuffix(ch.value, "!important") {
			ch.value += " !important"
		}
	}
}

// replaceClass swaps the class name in a selector for the escaped candidate.
func replaceClass(sel, class, candidate string) string {
	from := "." + Escape(class)
	to := "." + Escape(candidate)
	var sb strings.Builder
	for {
		i := strings.Index(sel, from)
		if i < 0 {
			sb.WriteString(sel)
			return sb.String()
		}
		end := i + len(from)
		if end < len(sel) && isIdentByte(sel[end]) {
			sb.WriteString(sel[:end])
			sel = sel[end:]
			continue
		}
		sb.WriteString(sel[:i])
		sb.WriteString(to)
		sel = sel[end:]
	}
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' || c == '\\' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' || c >= 0x80
}

func sortGenerated(gs []generatedRule) {
	sort.SliceStable(gs, func(i, j int) bool {
		a, b := gs[i], gs[j]
		if a.layer != b.layer {
			return a.layer < b.layer
		}
		if c := slices.Compare(a.ranks, b.ranks); c != 0 {
			if len(a.ranks) != len(b.ranks) {
				return len(a.ranks) < len(b.ranks)
			}
			return c < 0
		}
		if a.order != b.order {
			return a.order < b.order
		}
		return a.name < b.name
	})
}

// emit turns generated rules of one layer into nodes, sharing at-rule
// wrappers between neighbours with the same wrappers.
func emit(gs []generatedRule, layer int) []*node {
	var out []*node
	var prevMedia []string
	var prevInner *node
	for _, g := range gs {
		if g.layer != layer {
			continue
		}
		if len(g.media) == 0 {
			out = append(out, g.rule)
			prevMedia, prevInner = nil, nil
			continue
		}
		if prevInner != nil && slices.Equal(prevMedia, g.media) {
			prevInner.add(g.rule)
			continue
		}
		var outer, inner *node
		for _, head := range g.media {
			name, prelude, _ := strings.Cut(head, " ")
			w := &node{kind: atRuleNode, name: name, prelude: prelude, block: true}
			if outer == nil {
				outer = w
			} else {
				inner.add(w)
			}
			inner = w
		}
		inner.add(g.rule)
		out = append(out, outer)
		prevMedia, prevInner = g.media, inner
	}
	return out
}

func baseReset() []*node {
	return []*node{
		{kind: ruleNode, selector: "*,::before,::after", children: declNodes([]Decl{
			{"box-sizing", "border-box"},
			{"border-width", "0"},
			{"border-style", "solid"},
			{"border-color", "currentColor"},
			{"--tw-translate-x", "0"},
			{"--tw-translate-y", "0"},
			{"--tw-rotate", "0"},
			{"--tw-skew-x", "0"},
			{"--tw-skew-y", "0"},
			{"--tw-scale-x", "1"},
			{"--tw-scale-y", "1"},
			{"--tw-ring-offset-width", "0px"},
			{"--tw-ring-offset-color", "#fff"},
			{"--tw-ring-color", "rgb(59 130 246 / 0.5)"},
			{"--tw-ring-offset-shadow", "0 0 #0000"},
			{"--tw-ring-shadow", "0 0 #0000"},
			{"--tw-shadow", "0 0 #0000"},
		})},
		{kind: ruleNode, selector: "html", children: declNodes([]Decl{
			{"line-height", "1.5"},
			{"-webkit-text-size-adjust", "100%"},
			{"font-family", "ui-sans-serif, system-ui, sans-serif"},
		})},
		{kind: ruleNode, selector: "body", children: declNodes([]Decl{
			{"margin", "0"},
			{"line-height", "inherit"},
		})},
		{kind: ruleNode, selector: "[hidden]", children: declNodes([]Decl{{"display", "none"}})},
	}
}

// expandApply replaces @apply rules with the declarations of the named
// utilities. Variant utilities become sibling rules.
func (g *generator) expandApply(nodes []*node) ([]*node, error) {
	out := make([]*node, 0, len(nodes))
	for _, n := range nodes {
		switch {
		case n.kind == ruleNode:
			extra, err := g.applyRule(n)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
			out = append(out, extra...)
		case n.kind == atRuleNode && n.block:
			children, err := g.expandApply(n.children)
			if err != nil {
				return nil, err
			}
			n.children = children
			out = append(out, n)
		default:
			out = append(out, n)
		}
	}
	return out, nil
}

func (g *generator) applyRule(rule *node) ([]*node, error) {
	var children, extra []*node
	for _, ch := range rule.children {
		if ch.kind != atRuleNode || ch.name != "@apply" {
			children = append(children, ch)
			continue
		}
		fields := strings.Fields(ch.prelude)
		important := false
		if n := len(fields); n > 0 && fields[n-1] == "!important" {
			important, fields = true, fields[:n-1]
		}
		for _, class := range fields {
			vars, util, imp, ok := g.parseCandidate(class)
			if !ok {
				return nil, fmt.Errorf("the `%s` class does not exist", class)
			}
			decls, ok := g.applyDecls(util)
			if !ok {
				return nil, fmt.Errorf("the `%s` class does not exist. If `%s` is a custom class, "+
					"make sure it is defined within a `@layer` directive", util, util)
			}
			nodes := declNodes(decls)
			if important || imp {
				markImportant(&node{children: nodes})
			}
			if len(vars) == 0 {
				children = append(children, nodes...)
				continue
			}
			sel, media, _ := applyVariants(rule.selector, vars)
			wrapped := &node{kind: ruleNode, selector: sel, children: nodes}
			for i := len(media) - 1; i >= 0; i-- {
				name, prelude, _ := strings.Cut(media[i], " ")
				wrapped = &node{kind: atRuleNode, name: name, prelude: prelude, block: true, children: []*node{wrapped}}
			}
			extra = append(extra, wrapped)
		}
	}
	rule.children = children
	return extra, nil
}

// applyDecls returns the declarations a utility contributes to @apply.
func (g *generator) applyDecls(util string) ([]Decl, bool) {
	if u, ok := g.registry.Resolve(util); ok && u.Suffix == "" {
		return u.Decls, true
	}
	for _, idx := range g.custom {
		rules := idx[util]
		if len(rules) == 0 {
			continue
		}
		var decls []Decl
		for _, ch := range rules[0].rule.children {
			if ch.kind == declNode {
				decls = append(decls, Decl{ch.prop, ch.value})
			}
		}
		return decls, true
	}
	return nil, false
}
