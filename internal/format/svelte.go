package format

import (
	"fmt"
	"regexp"
	"strings"
)

// blockRe matches the parts of a component that are not plain markup.
// Group 2 holds the body of a script, group 4 of a style, group 6 of a pre
// and group 8 of a textarea.
var blockRe = regexp.MustCompile(`(?is)<!--.*?-->` +
	`|<script(\s[^>]*)?>(.*?)</script\s*>` +
	`|<style(\s[^>]*)?>(.*?)</style\s*>` +
	`|<pre(\s[^>]*)?>(.*?)</pre\s*>` +
	`|<textarea(\s[^>]*)?>(.*?)</textarea\s*>`)

// formatSvelte formats script blocks as JavaScript, style blocks by
// indentation only, and re-indents the markup around them. Comments and
// the contents of pre and textarea elements are kept verbatim.
func formatSvelte(src string, opts Options) (string, error) {
	var sb strings.Builder
	last := 0
	for _, m := range blockRe.FindAllStringSubmatchIndex(src, -1) {
		var (
			kind       string
			start, end int
			f          func(string) (string, error)
		)
		switch {
		case m[4] >= 0:
			kind, start, end = "script", m[4], m[5]
			f = func(code string) (string, error) {
				return formatJS(code, opts, 1)
			}
		case m[8] >= 0:
			kind, start, end = "style", m[8], m[9]
			f = func(code string) (string, error) {
				return reindent(code, nil, opts, 1), nil
			}
		default:
			continue
		}
		body, err := formatBody(src[start:end], opts, f)
		if err != nil {
			line := strings.Count(src[:start], "\n")
			return "", fmt.Errorf("%s block at line %d: %w", kind, line+1, err)
		}
		sb.WriteString(src[last:start])
		sb.WriteString(body)
		last = end
	}
	sb.WriteString(src[last:])
	out := sb.String()

	out = reindent(out, verbatimBlocks(out), opts, 0)
	if opts.BracketSameLine {
		out = joinBrackets(out, verbatimBlocks(out), opts)
	}
	return out, nil
}

// formatBody formats the contents of a script or style element and puts them
// on their own lines.
func formatBody(body string, opts Options, f func(string) (string, error)) (string, error) {
	code := trimBlankLines(body)
	if code == "" {
		return body, nil
	}
	out, err := f(code)
	if err != nil {
		return "", err
	}
	return "\n" + strings.TrimRight(out, " \t\n") + "\n", nil
}

func trimBlankLines(s string) string {
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 || strings.TrimSpace(s[:i]) != "" {
			break
		}
		s = s[i+1:]
	}
	return strings.TrimRight(s, " \t\n")
}

// verbatimBlocks returns the regions of out that markup re-indentation must
// not touch.
func verbatimBlocks(out string) regions {
	var rs regions
	for _, m := range blockRe.FindAllStringSubmatchIndex(out, -1) {
		switch {
		case m[4] >= 0:
			rs = append(rs, region{m[4], m[5]})
		case m[8] >= 0:
			rs = append(rs, region{m[8], m[9]})
		case m[12] >= 0:
			rs = append(rs, region{m[12], m[13] + 1})
		case m[16] >= 0:
			rs = append(rs, region{m[16], m[17] + 1})
		default:
			rs = append(rs, region{m[0], m[1]})
		}
	}
	return rs
}

// joinBrackets moves a closing bracket that sits alone on its line to the end
// of the previous line when the result fits the print width.
func joinBrackets(src string, verbatim regions, opts Options) string {
	lines := strings.Split(src, "\n")
	out := lines[:0]
	off := 0
	for _, line := range lines {
		start := off
		off += len(line) + 1
		t := strings.TrimSpace(line)
		if (t == ">" || t == "/>") && len(out) > 0 && !verbatim.inside(start) {
			prev := out[len(out)-1]
			joined := prev + ">"
			if t == "/>" {
				joined = prev + " />"
			}
			if strings.TrimSpace(prev) != "" && width(joined, opts.TabWidth) <= opts.PrintWidth {
				out[len(out)-1] = joined
				continue
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
