package tailwind

import (
	"strings"
)

// variant transforms a rule: it either rewrites the selector or wraps the
// rule in an at-rule.
type variant struct {
	rank     int
	selector func(sel string) string
	media    string
}

var pseudoClasses = []struct {
	name   string
	pseudo string
}{
	{"first", ":first-child"},
	{"last", ":last-child"},
	{"odd", ":nth-child(odd)"},
	{"even", ":nth-child(even)"},
	{"visited", ":visited"},
	{"checked", ":checked"},
	{"required", ":required"},
	{"invalid", ":invalid"},
	{"placeholder", "::placeholder"},
	{"before", "::before"},
	{"after", "::after"},
	{"focus-within", ":focus-within"},
	{"hover", ":hover"},
	{"focus", ":focus"},
	{"focus-visible", ":focus-visible"},
	{"active", ":active"},
	{"disabled", ":disabled"},
}

var ariaStates = []string{"checked", "disabled", "expanded", "hidden", "pressed", "readonly", "required", "selected"}

func suffixSelector(s string) func(string) string {
	return func(sel string) string { return appendToSelectors(sel, s) }
}

// appendToSelectors appends s to every selector of a comma separated list.
func appendToSelectors(sel, s string) string {
	parts := splitTopLevel(sel, ',')
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p) + s
	}
	return strings.Join(parts, ",")
}

func prefixSelector(s string) func(string) string {
	return func(sel string) string {
		parts := splitTopLevel(sel, ',')
		for i, p := range parts {
			parts[i] = s + strings.TrimSpace(p)
		}
		return strings.Join(parts, ",")
	}
}

// variantSet resolves variant names for one configuration.
type variantSet struct {
	static map[string]variant
}

func newVariantSet(cfg Config) *variantSet {
	vs := &variantSet{static: make(map[string]variant)}
	rank := 0
	next := func() int {
		rank++
		return rank
	}
	for _, pc := range pseudoClasses {
		vs.static[pc.name] = variant{rank: next(), selector: suffixSelector(pc.pseudo)}
	}
	for _, state := range []string{"hover", "focus"} {
		vs.static["group-"+state] = variant{rank: next(), selector: prefixSelector(".group:" + state + " ")}
		vs.static["peer-"+state] = variant{rank: next(), selector: prefixSelector(".peer:" + state + " ~ ")}
	}
	for _, state := range ariaStates {
		vs.static["aria-"+state] = variant{rank: next(), selector: suffixSelector(`[aria-` + state + `="true"]`)}
	}
	vs.static["motion-safe"] = variant{rank: next(), media: "@media (prefers-reduced-motion: no-preference)"}
	vs.static["motion-reduce"] = variant{rank: next(), media: "@media (prefers-reduced-motion: reduce)"}
	if cfg.DarkMode == "class" {
		vs.static["dark"] = variant{rank: next(), selector: prefixSelector(".dark ")}
	} else {
		vs.static["dark"] = variant{rank: next(), media: "@media (prefers-color-scheme: dark)"}
	}
	for _, s := range cfg.sortedScreens() {
		vs.static[s.name] = variant{rank: next(), media: "@media (min-width: " + s.min + ")"}
	}
	vs.static["print"] = variant{rank: next(), media: "@media print"}
	return vs
}

// lookup resolves a variant name, including data-[...] and aria-[...].
func (vs *variantSet) lookup(name string) (variant, bool) {
	if v, ok := vs.static[name]; ok {
		return v, true
	}
	for _, attr := range []string{"data", "aria"} {
		rest, ok := strings.CutPrefix(name, attr+"-")
		if !ok || !isArbitrary(rest) {
			continue
		}
		inner, _ := arbitraryValue(rest)
		if inner == "" {
			return variant{}, false
		}
		return variant{rank: 900, selector: suffixSelector("[" + attr + "-" + inner + "]")}, true
	}
	return variant{}, false
}
