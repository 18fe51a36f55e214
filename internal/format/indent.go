package format

import "strings"

// region is a byte range whose interior must be kept verbatim.
type region struct{ start, end int }

type regions []region

// inside reports whether off lies strictly within one of the regions.
func (rs regions) inside(off int) bool {
	for _, r := range rs {
		if r.start < off && off < r.end {
			return true
		}
	}
	return false
}

// reindent rewrites the leading whitespace of every line into the indent
// unit of opts. The indent unit of src is detected from its lines and the
// least indented line ends up at level base. Lines starting inside a
// verbatim region are copied as is, and trailing whitespace is trimmed only
// where the line ends outside one.
func reindent(src string, verbatim regions, opts Options, base int) string {
	lines := strings.Split(src, "\n")
	keep := make([]bool, len(lines))
	keepTail := make([]bool, len(lines))
	off := 0
	for i, line := range lines {
		keep[i] = verbatim.inside(off)
		keepTail[i] = verbatim.inside(off + len(line))
		off += len(line) + 1
	}
	unit := detectUnit(lines, keep, opts.TabWidth)
	ind := opts.indent()

	levels := make([]int, len(lines))
	minLevel := -1
	for i, line := range lines {
		if keep[i] {
			continue
		}
		if !keepTail[i] {
			line = strings.TrimRight(line, " \t")
		}
		lines[i] = line
		if strings.TrimSpace(line) == "" && !keepTail[i] {
			levels[i] = -1
			continue
		}
		tabs, spaces, _ := leading(line)
		levels[i] = tabs + spaces/unit
		if minLevel < 0 || levels[i] < minLevel {
			minLevel = levels[i]
		}
	}

	for i, line := range lines {
		switch {
		case keep[i]:
		case levels[i] < 0:
			lines[i] = ""
		default:
			_, spaces, rest := leading(line)
			lines[i] = strings.Repeat(ind, base+levels[i]-minLevel) + strings.Repeat(" ", spaces%unit) + rest
		}
	}
	return strings.Join(lines, "\n")
}

// leading splits the indentation off line.
func leading(line string) (tabs, spaces int, rest string) {
	i := 0
	for ; i < len(line); i++ {
		switch line[i] {
		case '\t':
			tabs++
		case ' ':
			spaces++
		default:
			return tabs, spaces, line[i:]
		}
	}
	return tabs, spaces, ""
}

// detectUnit returns the number of spaces that make one indentation level.
// Tab-indented input counts tabWidth spaces per level; space-indented input
// uses the greatest common divisor of its indentation widths.
func detectUnit(lines []string, skip []bool, tabWidth int) int {
	unit := 0
	for i, line := range lines {
		if skip[i] || strings.TrimSpace(line) == "" {
			continue
		}
		tabs, spaces, _ := leading(line)
		if tabs > 0 {
			return tabWidth
		}
		if spaces > 0 {
			unit = gcd(unit, spaces)
		}
	}
	if unit == 0 {
		return tabWidth
	}
	return unit
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// width is the display width of line with tabs expanded.
func width(line string, tabWidth int) int {
	n := 0
	for _, r := range line {
		if r == '\t' {
			n += tabWidth
		} else {
			n++
		}
	}
	return n
}
