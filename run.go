package twprefix

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/twprefix/internal/report"
)

// RunConfig selects the files of a batch run and where results go.
type RunConfig struct {
	// Paths are doublestar globs.
	Paths []string `koanf:"paths"`
	// OutDir receives the results with the layout below each glob's base
	// directory preserved.
	OutDir string `koanf:"out-dir"`
	// InPlace writes results next to their sources.
	InPlace bool `koanf:"in-place"`
	// Jobs bounds the number of files processed at once.
	Jobs int `koanf:"jobs"`
	// KeepGoing processes every file and reports all failures instead of
	// stopping at the first.
	KeepGoing bool `koanf:"keep-going"`
	// IgnoreFile is the gitignore file consulted for relative paths.
	IgnoreFile string `koanf:"-"`
}

// FileResult is the outcome of one file of a run.
type FileResult struct {
	Path    string
	Output  string // path the result was (or would be) written to
	Content string
	Classes int
	Tokens  int
	Changed bool
	Err     error
}

// RunResult collects a batch run.
type RunResult struct {
	Files []FileResult
	Stats ScanStats
}

// Failed returns the number of files that failed.
func (r *RunResult) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Run processes every file matched by rc.Paths. Files run concurrently,
// at most rc.Jobs at a time. Without KeepGoing the first failure stops new
// files from being scheduled and is returned; with it, all failures are
// returned combined. The result lists every file that was processed.
func (r *Rewriter) Run(ctx context.Context, rc RunConfig) (*RunResult, error) {
	if rc.OutDir != "" && rc.InPlace {
		return nil, errors.New("out-dir and in-place are mutually exclusive")
	}
	ignoreFile := rc.IgnoreFile
	if ignoreFile == "" {
		ignoreFile = ".gitignore"
	}
	inputs, stats, err := expandGlobPatterns(rc.Paths, loadGitIgnore(ignoreFile))
	if err != nil {
		return nil, fmt.Errorf("expanding paths: %w", err)
	}
	r.log.Debug("discovered files",
		zap.Int("discovered", stats.FilesDiscovered),
		zap.Int("processing", stats.FilesProcessed),
		zap.Int("skipped", stats.FilesSkipped))

	jobs := rc.Jobs
	if jobs <= 0 {
		jobs = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	results := make([]FileResult, len(inputs))
	var (
		mu   sync.Mutex
		errs error
	)
	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			results[i] = r.processFile(in, rc)
			ferr := results[i].Err
			if ferr == nil {
				return nil
			}
			r.log.Debug("file failed", zap.String("file", in.path), zap.Error(ferr))
			if !rc.KeepGoing {
				return ferr
			}
			mu.Lock()
			errs = multierr.Append(errs, ferr)
			mu.Unlock()
			return nil
		})
	}
	werr := g.Wait()

	done := results[:0]
	for _, res := range results {
		if res.Path != "" {
			done = append(done, res)
		}
	}
	if werr == nil {
		werr = errs
	}
	if werr == nil {
		werr = ctx.Err()
	}
	return &RunResult{Files: done, Stats: stats}, werr
}

func (r *Rewriter) processFile(in input, rc RunConfig) FileResult {
	fr := FileResult{Path: in.path, Output: outputPath(in, rc.OutDir)}

	src, err := os.ReadFile(in.path)
	if err != nil {
		fr.Err = &FileError{Path: in.path, Stage: report.StageRead, Err: err}
		return fr
	}
	res, err := r.Process(string(src), in.path)
	if err != nil {
		fr.Err = err
		return fr
	}
	fr.Content = res.Output
	fr.Classes = res.Classes
	fr.Tokens = res.Tokens
	fr.Changed = res.Output != string(src) || fr.Output != in.path

	if rc.OutDir == "" && !rc.InPlace {
		return fr
	}
	if err := os.MkdirAll(filepath.Dir(fr.Output), 0o755); err != nil {
		fr.Err = &FileError{Path: in.path, Stage: report.StageWrite, Err: err}
		return fr
	}
	if err := os.WriteFile(fr.Output, []byte(res.Output), 0o644); err != nil {
		fr.Err = &FileError{Path: in.path, Stage: report.StageWrite, Err: err}
	}
	return fr
}
