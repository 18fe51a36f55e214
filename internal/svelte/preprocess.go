package svelte

import (
	"regexp"
	"strings"
)

// Transpiler converts TypeScript source to JavaScript.
type Transpiler interface {
	Transpile(src, filename string) (string, error)
}

var (
	// scriptRe matches comments and script blocks the way the Svelte
	// preprocessor does, so scripts inside comments are left alone.
	scriptRe = regexp.MustCompile(`(?s)<!--.*?-->|<script(\s[^>]*)?>(.*?)</script>`)
	langRe   = regexp.MustCompile(`\s+lang\s*=\s*(?:"(?:ts|typescript)"|'(?:ts|typescript)'|(?:ts|typescript)\b)`)
)

// Preprocess transpiles the body of every <script lang="ts"> block to
// JavaScript and drops the lang attribute. "void 0" in the transpiled code
// is written as "undefined". Other markup is returned unchanged.
func Preprocess(src, filename string, t Transpiler) (string, error) {
	var sb strings.Builder
	last := 0
	for _, m := range scriptRe.FindAllStringSubmatchIndex(src, -1) {
		if strings.HasPrefix(src[m[0]:m[1]], "<!--") {
			continue
		}
		attrs := ""
		if m[2] >= 0 {
			attrs = src[m[2]:m[3]]
		}
		if !langRe.MatchString(attrs) {
			continue
		}
		body := src[m[4]:m[5]]
		js, err := t.Transpile(body, filename)
		if err != nil {
			return "", err
		}
		js = strings.ReplaceAll(js, "void 0", "undefined")
		if strings.HasPrefix(body, "\n") && !strings.HasPrefix(js, "\n") {
			js = "\n" + js
		}

		sb.WriteString(src[last:m[0]])
		sb.WriteString("<script")
		sb.WriteString(langRe.ReplaceAllString(attrs, ""))
		sb.WriteString(">")
		sb.WriteString(js)
		sb.WriteString("</script>")
		last = m[1]
	}
	sb.WriteString(src[last:])
	return sb.String(), nil
}
