package twprefix

import (
	"errors"
	"strings"

	"github.com/yacobolo/twprefix/internal/report"
	"github.com/yacobolo/twprefix/internal/svelte"
	"github.com/yacobolo/twprefix/internal/tailwind"
)

// Issue is a file failure in golangci-lint format.
type Issue = report.Issue

// Issues returns one issue per failed file.
func (r *RunResult) Issues() []Issue {
	var issues []Issue
	for _, f := range r.Files {
		if f.Err != nil {
			issues = append(issues, issueFor(f.Path, f.Err))
		}
	}
	return issues
}

// issueFor locates err in the file it came from. Parse, stylesheet and
// compiler errors carry a position; other errors point at the file.
func issueFor(path string, err error) Issue {
	issue := Issue{
		Text:     err.Error(),
		Severity: report.SeverityError,
		Pos:      report.IssuePos{Filename: path},
	}
	var text string
	var fe *FileError
	if errors.As(err, &fe) {
		issue.Stage = fe.Stage
		issue.Text = fe.Err.Error()
		text = fe.text
	}

	var (
		perr *svelte.ParseError
		serr *tailwind.SyntaxError
		terr *TranspileError
	)
	switch {
	case errors.As(err, &perr):
		issue.Text = perr.Message
		issue.Pos.Line, issue.Pos.Column = perr.Line, perr.Column
		issue.SourceLines = sourceLine(text, perr.Line)
	case errors.As(err, &terr) && len(terr.Diagnostics) > 0:
		d := terr.Diagnostics[0]
		issue.Text = d.Text
		if n := len(terr.Diagnostics) - 1; n > 0 {
			issue.Text += " (and " + pluralize(n, "more error", "more errors") + ")"
		}
		issue.Pos.Line, issue.Pos.Column = d.Line, d.Column
		issue.SourceLines = sourceLine(text, d.Line)
	case errors.As(err, &serr):
		issue.Text = serr.Message
		issue.Pos = report.IssuePos{Filename: serr.File, Line: serr.Line, Column: serr.Column}
	}
	return issue
}

// sourceLine returns line n (1-based) of text.
func sourceLine(text string, n int) []string {
	if n <= 0 || text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if n > len(lines) {
		return nil
	}
	return []string{strings.TrimRight(lines[n-1], "\r")}
}
