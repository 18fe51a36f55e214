package twprefix

import (
	"fmt"
	"strings"

	"github.com/yacobolo/twprefix/internal/transpile"
)

// PreprocessError reports a Svelte file whose scripts could not be
// preprocessed.
type PreprocessError struct {
	Filename string
	Err      error
}

func (e *PreprocessError) Error() string {
	return fmt.Sprintf("error preprocessing Svelte file: %s\n%v", e.Filename, e.Err)
}

func (e *PreprocessError) Unwrap() error {
	return e.Err
}

// TranspileError reports the compiler diagnostics of a TypeScript file.
type TranspileError struct {
	Filename    string
	Diagnostics []transpile.Diagnostic
}

func (e *TranspileError) Error() string {
	lines := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		lines[i] = d.String()
	}
	return fmt.Sprintf("error compiling TypeScript to JavaScript for file: %s\n%s", e.Filename, strings.Join(lines, "\n"))
}

// FileError records the stage at which a batch run failed on a file.
type FileError struct {
	Path  string
	Stage string
	Err   error

	// text is the document the error's line numbers refer to.
	text string
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
