// Package prefix rewrites class strings, prefixing the base name of every
// recognized utility token.
package prefix

import (
	"strings"

	"github.com/yacobolo/twprefix/internal/classes"
)

// Default is the prefix used when none is configured.
const Default = "TW-PREFIX-"

// Parts is a class token split into its variant chain, base name and
// opacity modifier. Variant and Modifier are nil when absent.
type Parts struct {
	Variant  *string
	Base     string
	Modifier *string
}

// String reassembles the token as variant:base/modifier.
func (p Parts) String() string {
	return p.WithPrefix("")
}

// WithPrefix reassembles the token with prefix inserted before the base name.
func (p Parts) WithPrefix(prefix string) string {
	var sb strings.Builder
	if p.Variant != nil {
		sb.WriteString(*p.Variant)
		sb.WriteByte(':')
	}
	sb.WriteString(prefix)
	sb.WriteString(p.Base)
	if p.Modifier != nil {
		sb.WriteByte('/')
		sb.WriteString(*p.Modifier)
	}
	return sb.String()
}

// SplitClassName decomposes a token. The modifier is everything after the
// first "/", the base is the last ":" segment of what precedes it, and the
// variant is the rest of the segments rejoined with ":".
func SplitClassName(token string) Parts {
	if !strings.ContainsAny(token, "/:") {
		return Parts{Base: token}
	}

	rest := token
	var modifier *string
	if i := strings.IndexByte(token, '/'); i >= 0 {
		rest = token[:i]
		m := token[i+1:]
		modifier = &m
	}

	if !strings.Contains(rest, ":") {
		return Parts{Base: rest, Modifier: modifier}
	}

	segments := strings.Split(rest, ":")
	base := segments[len(segments)-1]
	var variant *string
	if v := strings.Join(segments[:len(segments)-1], ":"); v != "" {
		variant = &v
	}
	return Parts{Variant: variant, Base: base, Modifier: modifier}
}

// Matches reports whether token is recognized, either exactly or as the
// prefix of a member ending in "]".
func Matches(token string, recognized classes.Set) bool {
	return recognized.Has(token) || recognized.HasPartial(token)
}

// Token rewrites a single token, returning it unchanged when unrecognized.
func Token(token string, recognized classes.Set, prefix string) string {
	if !Matches(token, recognized) {
		return token
	}
	return SplitClassName(token).WithPrefix(prefix)
}

// Rewrite splits text on single spaces, rewrites every recognized token and
// joins the result back with single spaces. Empty tokens are kept so runs of
// spaces survive unchanged.
func Rewrite(text string, recognized classes.Set, prefix string) string {
	out, _ := RewriteCount(text, recognized, prefix)
	return out
}

// RewriteCount is Rewrite that also reports how many tokens changed.
func RewriteCount(text string, recognized classes.Set, prefix string) (string, int) {
	tokens := strings.Split(text, " ")
	changed := 0
	for i, tok := range tokens {
		if tok == "" {
			continue
		}
		if next := Token(tok, recognized, prefix); next != tok {
			tokens[i] = next
			changed++
		}
	}
	return strings.Join(tokens, " "), changed
}
