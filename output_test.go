package twprefix

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/twprefix/internal/report"
	"github.com/yacobolo/twprefix/internal/svelte"
	"github.com/yacobolo/twprefix/internal/tailwind"
	"github.com/yacobolo/twprefix/internal/transpile"
)

func TestIssueFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Issue
	}{
		{
			name: "parse error",
			err: &FileError{
				Path:  "a.svelte",
				Stage: report.StageParse,
				Err:   &svelte.ParseError{Pos: 9, Line: 2, Column: 3, Message: "<div> was left open"},
				text:  "<p></p>\n  <div>\n",
			},
			want: Issue{
				Stage:       report.StageParse,
				Text:        "<div> was left open",
				Severity:    report.SeverityError,
				SourceLines: []string{"  <div>"},
				Pos:         report.IssuePos{Filename: "a.svelte", Line: 2, Column: 3},
			},
		},
		{
			name: "compiler diagnostics",
			err: &FileError{
				Path:  "b.ts",
				Stage: report.StageTranspile,
				Err: &TranspileError{Filename: "b.ts", Diagnostics: []transpile.Diagnostic{
					{File: "b.ts", Line: 1, Column: 10, Text: "Unexpected \"=\""},
					{File: "b.ts", Line: 2, Column: 1, Text: "Unexpected end of file"},
				}},
				text: "const a: = ;\n",
			},
			want: Issue{
				Stage:       report.StageTranspile,
				Text:        "Unexpected \"=\" (and 1 more error)",
				Severity:    report.SeverityError,
				SourceLines: []string{"const a: = ;"},
				Pos:         report.IssuePos{Filename: "b.ts", Line: 1, Column: 10},
			},
		},
		{
			name: "stylesheet error points at the stylesheet",
			err: &FileError{
				Path:  "c.svelte",
				Stage: report.StageCSS,
				Err:   &tailwind.SyntaxError{File: "app.pcss", Line: 4, Column: 2, Message: "unclosed block"},
			},
			want: Issue{
				Stage:    report.StageCSS,
				Text:     "unclosed block",
				Severity: report.SeverityError,
				Pos:      report.IssuePos{Filename: "app.pcss", Line: 4, Column: 2},
			},
		},
		{
			name: "read error",
			err:  &FileError{Path: "d.svelte", Stage: report.StageRead, Err: os.ErrPermission},
			want: Issue{
				Stage:    report.StageRead,
				Text:     os.ErrPermission.Error(),
				Severity: report.SeverityError,
				Pos:      report.IssuePos{Filename: "d.svelte"},
			},
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: Issue{
				Text:     "boom",
				Severity: report.SeverityError,
				Pos:      report.IssuePos{Filename: "e.svelte"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.want.Pos.Filename
			if fe, ok := tt.err.(*FileError); ok {
				path = fe.Path
			}
			assert.Equal(t, tt.want, issueFor(path, tt.err))
		})
	}
}

func TestSourceLine(t *testing.T) {
	text := "one\r\ntwo\nthree"
	assert.Equal(t, []string{"one"}, sourceLine(text, 1))
	assert.Equal(t, []string{"three"}, sourceLine(text, 3))
	assert.Nil(t, sourceLine(text, 4))
	assert.Nil(t, sourceLine(text, 0))
	assert.Nil(t, sourceLine("", 1))
}

func sampleRunResult() *RunResult {
	return &RunResult{
		Stats: ScanStats{FilesDiscovered: 4, FilesProcessed: 3, FilesSkipped: 1},
		Files: []FileResult{
			{Path: "src/a.svelte", Output: "out/a.svelte", Classes: 3, Tokens: 4, Changed: true},
			{Path: "src/b.ts", Output: "out/b.js", Changed: true},
			{Path: "src/c.svelte", Output: "out/c.svelte", Err: &FileError{
				Path:  "src/c.svelte",
				Stage: report.StageParse,
				Err:   &svelte.ParseError{Line: 1, Column: 1, Message: "<div> was left open"},
				text:  "<div>",
			}},
		},
	}
}

func TestRunResultSummary(t *testing.T) {
	assert.Equal(t, report.Summary{
		FilesDiscovered: 4,
		FilesProcessed:  3,
		FilesSkipped:    1,
		FilesChanged:    2,
		FilesFailed:     1,
		Tokens:          4,
	}, sampleRunResult().Summary())
}

func TestWriteOutputText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleRunResult(), OutputText, OutputOptions{}))

	out := buf.String()
	assert.Contains(t, out, "out/a.svelte")
	assert.Contains(t, out, "FAIL src/c.svelte")
	assert.Contains(t, out, "src/c.svelte:1:1: <div> was left open (parse)")
	assert.Contains(t, out, "3 files processed")
	assert.NotContains(t, out, "\x1b[")
}

func TestWriteOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleRunResult(), OutputJSON, OutputOptions{}))

	var got report.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 1, got.Summary.FilesFailed)
	require.Len(t, got.Files, 3)
	assert.True(t, got.Files[2].Failed)
	require.Len(t, got.Issues, 1)
	assert.Equal(t, "src/c.svelte", got.Issues[0].File)
}

func TestDetermineOutputFormat(t *testing.T) {
	assert.Equal(t, OutputJSON, DetermineOutputFormat("json"))
	assert.Equal(t, OutputText, DetermineOutputFormat("text"))
	assert.Equal(t, OutputText, DetermineOutputFormat(""))
	assert.Equal(t, OutputText, DetermineOutputFormat("xml"))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "1 file", pluralize(1, "file", "files"))
	assert.Equal(t, "0 files", pluralize(0, "file", "files"))
}
