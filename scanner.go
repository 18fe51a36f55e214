package twprefix

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanStats tracks file discovery.
type ScanStats struct {
	FilesDiscovered int // files matched by the globs
	FilesProcessed  int // files handed to the rewriter
	FilesSkipped    int // generated, vendored, ignored or unsupported files
}

// input is a discovered file and the directory its glob is rooted at.
type input struct {
	path string
	base string
}

// skippedDirs never hold registry sources.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".svelte-kit":  true,
	"build":        true,
	"dist":         true,
}

// loadGitIgnore compiles path, or returns nil when it does not exist.
func loadGitIgnore(path string) *ignore.GitIgnore {
	if path == "" {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}

// shouldSkipFile reports whether path is excluded from a run.
//
// Files are skipped when they sit below a build or dependency directory,
// are not a supported source type, or, for relative paths, are ignored by
// the project's .gitignore.
func shouldSkipFile(path string, gi *ignore.GitIgnore) bool {
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if skippedDirs[seg] {
			return true
		}
	}
	if languageOf(path) == langOther {
		return true
	}
	if gi != nil && !filepath.IsAbs(path) && gi.MatchesPath(path) {
		return true
	}
	return false
}

// expandGlobPatterns expands the patterns into the files to process.
func expandGlobPatterns(patterns []string, gi *ignore.GitIgnore) ([]input, ScanStats, error) {
	var inputs []input
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if shouldSkipFile(match, gi) {
				stats.FilesSkipped++
				continue
			}
			inputs = append(inputs, input{path: match, base: filepath.FromSlash(base)})
			stats.FilesProcessed++
		}
	}

	return inputs, stats, nil
}

// outputPath returns where the rewritten file goes. With outDir the layout
// below the glob base is preserved.
func outputPath(in input, outDir string) string {
	name := OutputName(in.path)
	if outDir == "" {
		return name
	}
	rel, err := filepath.Rel(in.base, name)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(name)
	}
	return filepath.Join(outDir, rel)
}
