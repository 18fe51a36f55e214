package tailwind

import (
	"strings"
	"unicode"
)

// Candidates scans contents for strings that may be utility classes. It is
// deliberately generous: anything that does not resolve to a utility is
// dropped later.
func Candidates(contents ...string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(tok string) {
		tok = strings.TrimRight(tok, ":.,")
		if tok == "" || tok == "-" {
			return
		}
		if _, ok := seen[tok]; ok {
			return
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}

	for _, content := range contents {
		var cur strings.Builder
		depth := 0
		flush := func() {
			add(cur.String())
			cur.Reset()
			depth = 0
		}
		for _, r := range content {
			switch {
			case unicode.IsSpace(r), r == '"', r == '\'', r == '`':
				flush()
			case depth > 0:
				cur.WriteRune(r)
				if r == '[' {
					depth++
				} else if r == ']' {
					depth--
				}
			case r == '[':
				depth++
				cur.WriteRune(r)
			case strings.ContainsRune("<>{}();,=", r):
				flush()
			default:
				cur.WriteRune(r)
			}
		}
		flush()
	}
	return out
}

// splitTopLevel splits s on sep outside square brackets and parentheses.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(':
			depth++
		case ']', ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// Escape escapes a class name for use in a selector, like CSS.escape.
func Escape(name string) string {
	var sb strings.Builder
	for i, r := range name {
		switch {
		case r == 0:
			sb.WriteString("�")
		case r >= '0' && r <= '9' && (i == 0 || i == 1 && name[0] == '-'):
			sb.WriteString(`\3`)
			sb.WriteRune(r)
			sb.WriteByte(' ')
		case i == 0 && r == '-' && len(name) == 1:
			sb.WriteString(`\-`)
		case r >= 0x80, r == '-', r == '_',
			r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			sb.WriteRune(r)
		default:
			sb.WriteByte('\\')
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// unescape removes CSS escapes from an identifier.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			sb.WriteByte(s[i])
			continue
		}
		j := i + 1
		for j < len(s) && j < i+7 && isHex(s[j]) {
			j++
		}
		if j == i+1 {
			sb.WriteByte(s[j])
			i = j
			continue
		}
		var code rune
		for _, c := range s[i+1 : j] {
			code = code*16 + hexVal(byte(c))
		}
		sb.WriteRune(code)
		if j < len(s) && s[j] == ' ' {
			j++
		}
		i = j - 1
	}
	return sb.String()
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexVal(c byte) rune {
	switch {
	case c >= '0' && c <= '9':
		return rune(c - '0')
	case c >= 'a' && c <= 'f':
		return rune(c-'a') + 10
	default:
		return rune(c-'A') + 10
	}
}
