// Package classes holds the recognized utility class set shared by the
// extractor, the token rewriter and the reporting code.
package classes

import (
	"sort"
	"strings"
)

// Set is a set of normalized utility class names.
type Set map[string]struct{}

// NewSet returns a set containing names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name into the set.
func (s Set) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether name is a member.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// HasPartial reports whether some member starts with token and ends with "]".
// Members like "data-[state=open]:bg-accent[data-state=open]" keep the
// attribute selector after normalization, so the source token is only a prefix.
func (s Set) HasPartial(token string) bool {
	for name := range s {
		if strings.HasPrefix(name, token) && strings.HasSuffix(name, "]") {
			return true
		}
	}
	return false
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
