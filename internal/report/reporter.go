package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Options configure a Reporter.
type Options struct {
	UseColors  bool
	PrintLines bool
	PrintStage bool
	// Verbose lists every processed file, not only failures.
	Verbose bool
}

// Reporter prints run results for humans.
type Reporter struct {
	w    io.Writer
	opts Options
}

// NewReporter returns a reporter writing to w.
func NewReporter(w io.Writer, opts Options) *Reporter {
	return &Reporter{w: w, opts: opts}
}

// ShouldUseColors reports whether output should be colored. force wins,
// NO_COLOR disables colors, CI variables and terminals enable them.
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		return true
	}
	return false
}

// PrintFiles lists processed files. Unchanged files are listed only in
// verbose mode.
func (r *Reporter) PrintFiles(files []File) {
	for _, f := range files {
		switch {
		case f.Failed:
			fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleRed, "FAIL", r.opts.UseColors), f.Path)
		case f.Changed || r.opts.Verbose:
			target := f.Path
			if f.Output != "" && f.Output != f.Path {
				target = f.Path + " -> " + f.Output
			}
			fmt.Fprintf(r.w, "%s %s %s\n",
				RenderStyle(StyleGreen, "ok  ", r.opts.UseColors),
				target,
				RenderStyle(StyleGray, fmt.Sprintf("(%s, %s)",
					pluralizeCount(f.Classes, "class", "classes"),
					pluralizeCount(f.Tokens, "token", "tokens")), r.opts.UseColors))
		}
	}
}

// PrintIssues prints issues sorted by file, line and column.
func (r *Reporter) PrintIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i].Pos, issues[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue prints "file:line:col: message (stage)" and the source line
// with a caret under the column.
func (r *Reporter) printIssue(issue Issue) {
	location := issue.Pos.Filename + ":"
	if issue.Pos.Line > 0 {
		location = fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)
	}

	stage := ""
	if r.opts.PrintStage && issue.Stage != "" {
		stage = fmt.Sprintf(" (%s)", issue.Stage)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.opts.UseColors),
		issue.Text,
		RenderStyle(StyleGray, stage, r.opts.UseColors))

	if r.opts.PrintLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}
		caret := buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.opts.UseColors))
	}
}

// buildCaretIndicator returns a "^" aligned with column, copying the tabs of
// the source line so the caret lines up in any terminal.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}
	prefixLen := min(column-1, len(sourceLine))

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}
	return padding.String() + "^"
}

// PrintSummary prints the run totals and the issue count per stage.
func (r *Reporter) PrintSummary(s Summary, issues []Issue) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintf(r.w, "%s processed (%s changed, %s skipped), %s rewritten\n",
		pluralizeCount(s.FilesProcessed, "file", "files"),
		pluralizeCount(s.FilesChanged, "file", "files"),
		pluralizeCount(s.FilesSkipped, "file", "files"),
		pluralizeCount(s.Tokens, "token", "tokens"))

	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(r.w, "%s:\n", RenderStyle(StyleRed, pluralizeCount(len(issues), "issue", "issues"), r.opts.UseColors))

	stageCounts := make(map[string]int)
	for _, issue := range issues {
		stageCounts[issue.Stage]++
	}
	stages := make([]string, 0, len(stageCounts))
	for stage := range stageCounts {
		stages = append(stages, stage)
	}
	sort.Strings(stages)
	for _, stage := range stages {
		fmt.Fprintf(r.w, "* %s: %d\n", stage, stageCounts[stage])
	}
}

func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
