package patch

import (
	"fmt"
	"sort"
	"strings"
)

type edit struct {
	start, end int
	text       string
}

// Buffer collects replacements addressed by offsets into the original text
// and applies them in one pass.
type Buffer struct {
	src   string
	edits []edit
}

// NewBuffer returns a buffer over src.
func NewBuffer(src string) *Buffer {
	return &Buffer{src: src}
}

// Overwrite replaces src[start:end] with text. Overwriting the identical
// range again replaces the earlier text; a partial overlap is an error.
func (b *Buffer) Overwrite(start, end int, text string) error {
	if start < 0 || end > len(b.src) || start > end {
		return fmt.Errorf("edit range [%d,%d) is outside the source (length %d)", start, end, len(b.src))
	}
	for i, e := range b.edits {
		if e.start == start && e.end == end {
			b.edits[i].text = text
			return nil
		}
		if start < e.end && e.start < end {
			return fmt.Errorf("edit [%d,%d) overlaps edit [%d,%d)", start, end, e.start, e.end)
		}
	}
	b.edits = append(b.edits, edit{start: start, end: end, text: text})
	return nil
}

// Len returns the number of distinct edits.
func (b *Buffer) Len() int {
	return len(b.edits)
}

// String returns the source with all edits applied.
func (b *Buffer) String() string {
	if len(b.edits) == 0 {
		return b.src
	}
	edits := append([]edit(nil), b.edits...)
	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var sb strings.Builder
	sb.Grow(len(b.src))
	last := 0
	for _, e := range edits {
		sb.WriteString(b.src[last:e.start])
		sb.WriteString(e.text)
		last = e.end
	}
	sb.WriteString(b.src[last:])
	return sb.String()
}
