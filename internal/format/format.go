// Package format normalizes the layout of generated Svelte and JavaScript
// files: indentation, quotes, trailing commas and line endings.
package format

import (
	"fmt"
	"strings"
)

// Languages understood by Format.
const (
	LanguageSvelte = "svelte"
	LanguageJS     = "js"
)

// Options control the output layout. The names follow the usual formatter
// settings so a project can copy its existing configuration.
type Options struct {
	Language        string `koanf:"-"`
	UseTabs         bool   `koanf:"use-tabs"`
	TabWidth        int    `koanf:"tab-width"`
	SingleQuote     bool   `koanf:"single-quote"`
	TrailingComma   string `koanf:"trailing-comma"`
	PrintWidth      int    `koanf:"print-width"`
	EndOfLine       string `koanf:"end-of-line"`
	BracketSameLine bool   `koanf:"bracket-same-line"`
}

// DefaultOptions returns the settings used for generated registry files.
func DefaultOptions() Options {
	return Options{
		Language:      LanguageSvelte,
		UseTabs:       true,
		TabWidth:      4,
		TrailingComma: "es5",
		PrintWidth:    100,
		EndOfLine:     "lf",
	}
}

// Validate reports the first invalid option.
func (o Options) Validate() error {
	switch o.Language {
	case LanguageSvelte, LanguageJS:
	default:
		return fmt.Errorf("unknown language %q", o.Language)
	}
	switch o.TrailingComma {
	case "none", "es5", "all":
	default:
		return fmt.Errorf("unknown trailing-comma %q (want none, es5 or all)", o.TrailingComma)
	}
	switch o.EndOfLine {
	case "lf", "crlf", "cr", "auto":
	default:
		return fmt.Errorf("unknown end-of-line %q (want lf, crlf, cr or auto)", o.EndOfLine)
	}
	if o.TabWidth <= 0 {
		return fmt.Errorf("tab-width must be positive, got %d", o.TabWidth)
	}
	if o.PrintWidth <= 0 {
		return fmt.Errorf("print-width must be positive, got %d", o.PrintWidth)
	}
	return nil
}

func (o Options) indent() string {
	if o.UseTabs {
		return "\t"
	}
	return strings.Repeat(" ", o.TabWidth)
}

// Format returns text laid out according to opts.
func Format(text string, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	eol := lineEnding(text, opts.EndOfLine)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out string
	var err error
	switch opts.Language {
	case LanguageJS:
		out, err = formatJS(text, opts, 0)
	default:
		out, err = formatSvelte(text, opts)
	}
	if err != nil {
		return "", err
	}

	out = strings.TrimRight(out, " \t\n")
	if out == "" {
		return "", nil
	}
	out = strings.TrimLeft(out, "\n") + "\n"
	if eol != "\n" {
		out = strings.ReplaceAll(out, "\n", eol)
	}
	return out, nil
}

func lineEnding(text, mode string) string {
	switch mode {
	case "crlf":
		return "\r\n"
	case "cr":
		return "\r"
	case "auto":
		if i := strings.IndexAny(text, "\r\n"); i >= 0 {
			if text[i] == '\n' {
				return "\n"
			}
			if strings.HasPrefix(text[i:], "\r\n") {
				return "\r\n"
			}
			return "\r"
		}
	}
	return "\n"
}
