// Package transpile converts TypeScript to JavaScript with esbuild.
package transpile

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.uber.org/zap"
)

// tsconfig keeps imports that are only used from markup; the compiler cannot
// see those uses and would otherwise drop them.
const tsconfig = `{"compilerOptions":{"preserveValueImports":true,"useDefineForClassFields":true}}`

// Diagnostic is one compiler message.
type Diagnostic struct {
	File   string
	Line   int
	Column int
	Text   string
}

func (d Diagnostic) String() string {
	if d.Line == 0 {
		return d.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Line, d.Column, d.Text)
}

// Error reports the diagnostics of a failed transpilation.
type Error struct {
	Filename    string
	Diagnostics []Diagnostic
}

func (e *Error) Error() string {
	lines := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// Transpiler converts TypeScript modules to ESNext JavaScript.
type Transpiler struct {
	log *zap.Logger
}

// New returns a transpiler.
func New(log *zap.Logger) *Transpiler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Transpiler{log: log.Named("transpile")}
}

// Transpile converts src. Any compiler error fails the whole file.
func (t *Transpiler) Transpile(src, filename string) (string, error) {
	result := api.Transform(src, api.TransformOptions{
		Loader:        api.LoaderTS,
		Target:        api.ESNext,
		Sourcefile:    filename,
		TsconfigRaw:   tsconfig,
		LegalComments: api.LegalCommentsInline,
	})
	for _, w := range result.Warnings {
		t.log.Debug("transpile warning", zap.String("file", filename), zap.String("warning", diagnostic(filename, w).String()))
	}
	if len(result.Errors) > 0 {
		diags := make([]Diagnostic, len(result.Errors))
		for i, m := range result.Errors {
			diags[i] = diagnostic(filename, m)
		}
		return "", &Error{Filename: filename, Diagnostics: diags}
	}
	return string(result.Code), nil
}

func diagnostic(filename string, m api.Message) Diagnostic {
	d := Diagnostic{File: filename, Text: m.Text}
	if loc := m.Location; loc != nil {
		if loc.File != "" {
			d.File = loc.File
		}
		d.Line = loc.Line
		d.Column = loc.Column + 1
	}
	return d
}
