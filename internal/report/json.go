package report

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput is the machine-readable report schema.
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   Summary     `json:"summary"`
	Files     []File      `json:"files"`
	Issues    []JSONIssue `json:"issues"`
}

// JSONIssue is a single issue in the JSON report.
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Stage    string `json:"stage"`
	Source   string `json:"source,omitempty"`
}

// WriteJSON writes the run result as indented JSON.
func WriteJSON(w io.Writer, s Summary, files []File, issues []Issue) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildJSONOutput(s, files, issues, time.Now()))
}

func buildJSONOutput(s Summary, files []File, issues []Issue, now time.Time) JSONOutput {
	jsonIssues := make([]JSONIssue, len(issues))
	for i, issue := range issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		jsonIssues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Stage:    issue.Stage,
			Source:   source,
		}
	}
	if files == nil {
		files = []File{}
	}
	return JSONOutput{
		Version:   "1.0",
		Timestamp: now.Format(time.RFC3339),
		Summary:   s,
		Files:     files,
		Issues:    jsonIssues,
	}
}
