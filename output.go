package twprefix

import (
	"fmt"
	"io"

	"github.com/yacobolo/twprefix/internal/report"
)

// OutputFormat selects how a run is reported.
type OutputFormat string

const (
	// OutputText prints file lines and golangci-lint style issues.
	OutputText OutputFormat = "text"
	// OutputJSON prints the machine-readable report.
	OutputJSON OutputFormat = "json"
)

// DetermineOutputFormat maps a requested format name to an OutputFormat.
// Unknown or empty names fall back to text.
func DetermineOutputFormat(requested string) OutputFormat {
	switch requested {
	case "json":
		return OutputJSON
	default:
		return OutputText
	}
}

// OutputOptions tune the text report.
type OutputOptions struct {
	UseColors bool
	Verbose   bool
}

// WriteOutput writes the run result in the requested format.
func WriteOutput(w io.Writer, result *RunResult, format OutputFormat, opts OutputOptions) error {
	files := result.reportFiles()
	issues := result.Issues()

	if format == OutputJSON {
		return report.WriteJSON(w, result.Summary(), files, issues)
	}

	r := report.NewReporter(w, report.Options{
		UseColors:  opts.UseColors,
		PrintLines: true,
		PrintStage: true,
		Verbose:    opts.Verbose,
	})
	r.PrintFiles(files)
	if len(issues) > 0 {
		fmt.Fprintln(w)
	}
	r.PrintIssues(issues)
	r.PrintSummary(result.Summary(), issues)
	return nil
}

// Summary returns the totals of the run.
func (r *RunResult) Summary() report.Summary {
	s := report.Summary{
		FilesDiscovered: r.Stats.FilesDiscovered,
		FilesProcessed:  len(r.Files),
		FilesSkipped:    r.Stats.FilesSkipped,
	}
	for _, f := range r.Files {
		switch {
		case f.Err != nil:
			s.FilesFailed++
		case f.Changed:
			s.FilesChanged++
		}
		s.Tokens += f.Tokens
	}
	return s
}

func (r *RunResult) reportFiles() []report.File {
	files := make([]report.File, len(r.Files))
	for i, f := range r.Files {
		files[i] = report.File{
			Path:    f.Path,
			Output:  f.Output,
			Classes: f.Classes,
			Tokens:  f.Tokens,
			Changed: f.Changed,
			Failed:  f.Err != nil,
		}
	}
	return files
}

func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
