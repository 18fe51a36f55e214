package twprefix

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/twprefix/internal/classes"
	"github.com/yacobolo/twprefix/internal/extract"
	"github.com/yacobolo/twprefix/internal/format"
	"github.com/yacobolo/twprefix/internal/patch"
	"github.com/yacobolo/twprefix/internal/prefix"
	"github.com/yacobolo/twprefix/internal/report"
	"github.com/yacobolo/twprefix/internal/svelte"
	"github.com/yacobolo/twprefix/internal/tailwind"
	"github.com/yacobolo/twprefix/internal/transpile"
)

// Rewriter prefixes the utility classes of components against one base
// stylesheet. It holds no per-document state and is safe for concurrent use.
type Rewriter struct {
	cfg        Config
	css        string
	extractor  *extract.Extractor
	transpiler *transpile.Transpiler
	log        *zap.Logger
}

// Result is the outcome of processing one document.
type Result struct {
	Output string
	// Classes is the number of recognized classes.
	Classes int
	// Tokens is the number of rewritten class tokens.
	Tokens int
}

// New returns a Rewriter for cfg. The base stylesheet is read once.
func New(cfg Config) (*Rewriter, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Prefix == "" {
		cfg.Prefix = prefix.Default
	}
	if cfg.Format.Language == "" {
		cfg.Format.Language = format.LanguageSvelte
	}
	if !cfg.SkipFormat {
		if err := cfg.Format.Validate(); err != nil {
			return nil, fmt.Errorf("format options: %w", err)
		}
	}

	css := cfg.Stylesheet
	from := ""
	if cfg.CSSEntry != "" {
		abs, err := filepath.Abs(cfg.CSSEntry)
		if err != nil {
			return nil, fmt.Errorf("resolving stylesheet path: %w", err)
		}
		from = abs
		if css == "" {
			data, err := os.ReadFile(cfg.CSSEntry)
			if err != nil {
				return nil, fmt.Errorf("reading stylesheet: %w", err)
			}
			css = string(data)
		}
	}

	pipeline, err := tailwind.New(cfg.Tailwind, log)
	if err != nil {
		return nil, fmt.Errorf("tailwind config: %w", err)
	}

	return &Rewriter{
		cfg:        cfg,
		css:        css,
		extractor:  extract.New(pipeline, from, log),
		transpiler: transpile.New(log),
		log:        log,
	}, nil
}

// Preprocess transpiles the TypeScript scripts of a Svelte component.
func (r *Rewriter) Preprocess(src, filename string) (string, error) {
	out, err := svelte.Preprocess(src, filename, r.transpiler)
	if err != nil {
		return "", &PreprocessError{Filename: filename, Err: err}
	}
	return out, nil
}

// Classes returns the recognized classes of a Svelte component.
func (r *Rewriter) Classes(src, filename string) (classes.Set, error) {
	code, err := r.Preprocess(src, filename)
	if err != nil {
		return nil, err
	}
	return r.extractor.Extract(code, r.css)
}

// GroupedClasses returns the recognized classes of a Svelte component
// grouped by the category of the properties they set.
func (r *Rewriter) GroupedClasses(src, filename string) (map[Category][]string, error) {
	code, err := r.Preprocess(src, filename)
	if err != nil {
		return nil, err
	}
	tree, err := r.extractor.Tree(code, r.css)
	if err != nil {
		return nil, err
	}
	return GroupClasses(extract.Declarations(tree)), nil
}

// AddPrefix preprocesses a Svelte component and prefixes every recognized
// class inside its class attributes. Pipeline and parse errors are returned
// unmodified.
func (r *Rewriter) AddPrefix(src, filename string) (string, error) {
	res, err := r.addPrefix(src, filename)
	if err != nil {
		var fe *FileError
		if errors.As(err, &fe) {
			return "", fe.Err
		}
		return "", err
	}
	return res.Output, nil
}

func (r *Rewriter) addPrefix(src, filename string) (*Result, error) {
	code, err := r.Preprocess(src, filename)
	if err != nil {
		return nil, &FileError{Path: filename, Stage: report.StagePreprocess, Err: err, text: src}
	}
	set, err := r.extractor.Extract(code, r.css)
	if err != nil {
		return nil, &FileError{Path: filename, Stage: report.StageCSS, Err: err, text: code}
	}
	res, err := patch.Apply(code, set, r.cfg.Prefix)
	if err != nil {
		return nil, &FileError{Path: filename, Stage: report.StageParse, Err: err, text: code}
	}
	r.log.Debug("prefixed classes",
		zap.String("file", filename),
		zap.Int("classes", len(set)),
		zap.Int("spans", len(res.Spans)),
		zap.Int("tokens", res.Tokens))
	return &Result{Output: res.Output, Classes: len(set), Tokens: res.Tokens}, nil
}

// TransformContent turns a registry file into its JavaScript form: Svelte
// components have their scripts transpiled, TypeScript modules are
// transpiled, and the result is formatted.
func (r *Rewriter) TransformContent(src, filename string) (string, error) {
	var code string
	var err error
	switch languageOf(filename) {
	case langSvelte:
		code, err = r.Preprocess(src, filename)
	case langTS:
		code, err = r.transpile(src, filename)
	case langJS:
		code = src
	default:
		return "", fmt.Errorf("%s: unsupported file type", filename)
	}
	if err != nil {
		return "", err
	}
	return r.format(code, filename)
}

// Process runs the full rewrite for one file: prefixing for components,
// transpiling for TypeScript, then formatting. Errors are *FileError values
// naming the failed stage.
func (r *Rewriter) Process(src, filename string) (*Result, error) {
	res := &Result{Output: src}
	switch languageOf(filename) {
	case langSvelte:
		prefixed, err := r.addPrefix(src, filename)
		if err != nil {
			return nil, err
		}
		res = prefixed
	case langTS:
		code, err := r.transpile(src, filename)
		if err != nil {
			return nil, &FileError{Path: filename, Stage: report.StageTranspile, Err: err, text: src}
		}
		res.Output = code
	case langJS:
	default:
		return nil, &FileError{Path: filename, Stage: report.StageRead, Err: errors.New("unsupported file type")}
	}

	out, err := r.format(res.Output, filename)
	if err != nil {
		return nil, &FileError{Path: filename, Stage: report.StageFormat, Err: err, text: res.Output}
	}
	res.Output = out
	return res, nil
}

func (r *Rewriter) transpile(src, filename string) (string, error) {
	out, err := r.transpiler.Transpile(src, filename)
	var terr *transpile.Error
	if errors.As(err, &terr) {
		return "", &TranspileError{Filename: filename, Diagnostics: terr.Diagnostics}
	}
	return out, err
}

func (r *Rewriter) format(code, filename string) (string, error) {
	if r.cfg.SkipFormat {
		return code, nil
	}
	opts := r.cfg.Format
	opts.Language = format.LanguageJS
	if languageOf(filename) == langSvelte {
		opts.Language = format.LanguageSvelte
	}
	return format.Format(code, opts)
}

type language int

const (
	langOther language = iota
	langSvelte
	langTS
	langJS
)

func languageOf(filename string) language {
	switch {
	case strings.HasSuffix(filename, ".d.ts"):
		return langOther
	case strings.HasSuffix(filename, ".svelte"):
		return langSvelte
	case strings.HasSuffix(filename, ".ts"):
		return langTS
	case strings.HasSuffix(filename, ".js"):
		return langJS
	}
	return langOther
}

// OutputName returns the name a file is written under: TypeScript modules
// become JavaScript modules.
func OutputName(filename string) string {
	if languageOf(filename) == langTS {
		return strings.TrimSuffix(filename, ".ts") + ".js"
	}
	return filename
}
