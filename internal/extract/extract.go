// Package extract derives the set of recognized utility classes for a piece
// of content by running the CSS pipeline over it and collecting the class
// selectors it generates.
package extract

import (
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/twprefix/internal/classes"
	"github.com/yacobolo/twprefix/internal/tailwind"
)

// Extractor runs the pipeline for one base stylesheet location.
type Extractor struct {
	pipeline *tailwind.Pipeline
	from     string
	log      *zap.Logger
}

// New returns an extractor. from is the path of the base stylesheet and is
// used to resolve its relative @imports.
func New(pipeline *tailwind.Pipeline, from string, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{pipeline: pipeline, from: from, log: log.Named("extract")}
}

// Extract returns the normalized classes the pipeline generates for content
// when run over cssEntrySource. Pipeline errors are returned unmodified.
func (e *Extractor) Extract(content, cssEntrySource string) (classes.Set, error) {
	tree, err := e.Tree(content, cssEntrySource)
	if err != nil {
		return nil, err
	}
	set := Selectors(tree)
	e.log.Debug("extracted classes", zap.Int("selectors", len(tree)), zap.Int("classes", len(set)))
	return set, nil
}

// Tree runs the pipeline with content as its only content source and no
// plugins, and returns the object form of the generated stylesheet.
func (e *Extractor) Tree(content, cssEntrySource string) (tailwind.Tree, error) {
	return e.pipeline.Run(cssEntrySource, tailwind.RunOptions{
		From:    e.from,
		Content: []string{content},
	})
}

// Selectors collects the class selectors of a rule tree: top-level class
// keys, and class keys one level below at-rule keys.
func Selectors(tree tailwind.Tree) classes.Set {
	set := make(classes.Set)
	for key, entry := range tree {
		switch {
		case strings.HasPrefix(key, "."):
			set.Add(Normalize(key))
		case strings.HasPrefix(key, "@"):
			for nested := range entry.Children {
				if strings.HasPrefix(nested, ".") {
					set.Add(Normalize(nested))
				}
			}
		}
	}
	return set
}

// Normalize turns a raw class selector into a bare class token. The marker
// and every backslash are removed; a selector with exactly three ":"
// segments keeps only the first two.
func Normalize(key string) string {
	if key == "" {
		return ""
	}
	stripped := strings.ReplaceAll(key[1:], `\`, "")
	parts := strings.Split(stripped, ":")
	if len(parts) == 3 {
		return parts[0] + ":" + parts[1]
	}
	return stripped
}

// Declarations maps every class of the tree to the declarations generated
// for it, merged across at-rules.
func Declarations(tree tailwind.Tree) map[string]map[string]string {
	out := make(map[string]map[string]string)
	add := func(key string, e *tailwind.Entry) {
		class := Normalize(key)
		decls, ok := out[class]
		if !ok {
			decls = make(map[string]string)
			out[class] = decls
		}
		for prop, value := range e.Declarations {
			decls[prop] = value
		}
	}
	for key, entry := range tree {
		switch {
		case strings.HasPrefix(key, "."):
			add(key, entry)
		case strings.HasPrefix(key, "@"):
			for nested, e := range entry.Children {
				if strings.HasPrefix(nested, ".") {
					add(nested, e)
				}
			}
		}
	}
	return out
}
