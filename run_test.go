package twprefix

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/yacobolo/twprefix/internal/svelte"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func registryTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/lib/a.svelte":          "<div class=\"flex p-4\">hi</div>\n",
		"src/lib/b.ts":              "export const n: number = 1;\n",
		"src/lib/c.d.ts":            "export declare const n: number;\n",
		"src/node_modules/x.svelte": "<div class=\"flex\"></div>\n",
		"src/readme.md":             "# registry\n",
	})
	return root
}

func TestRunOutDir(t *testing.T) {
	root := registryTree(t)
	out := filepath.Join(root, "out")
	rw := newTestRewriter(t)

	res, err := rw.Run(context.Background(), RunConfig{
		Paths:      []string{filepath.Join(root, "src", "**", "*")},
		OutDir:     out,
		Jobs:       2,
		IgnoreFile: filepath.Join(root, "missing.gitignore"),
	})
	require.NoError(t, err)

	assert.Equal(t, ScanStats{FilesDiscovered: 5, FilesProcessed: 2, FilesSkipped: 3}, res.Stats)
	require.Len(t, res.Files, 2)
	assert.Zero(t, res.Failed())

	got, err := os.ReadFile(filepath.Join(out, "lib", "a.svelte"))
	require.NoError(t, err)
	assert.Equal(t, "<div class=\"TW-PREFIX-flex TW-PREFIX-p-4\">hi</div>\n", string(got))

	got, err = os.ReadFile(filepath.Join(out, "lib", "b.js"))
	require.NoError(t, err)
	assert.Equal(t, "export const n = 1;\n", string(got))

	summary := res.Summary()
	assert.Equal(t, 2, summary.FilesChanged)
	assert.Equal(t, 2, summary.Tokens)
}

func TestRunInPlace(t *testing.T) {
	root := registryTree(t)
	rw := newTestRewriter(t)

	_, err := rw.Run(context.Background(), RunConfig{
		Paths:      []string{filepath.Join(root, "src", "lib", "*.{svelte,ts}")},
		InPlace:    true,
		IgnoreFile: filepath.Join(root, "missing.gitignore"),
	})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(root, "src", "lib", "a.svelte"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "TW-PREFIX-flex")
	assert.FileExists(t, filepath.Join(root, "src", "lib", "b.js"))
	assert.FileExists(t, filepath.Join(root, "src", "lib", "b.ts"))
}

func TestRunWithoutDestinationWritesNothing(t *testing.T) {
	root := registryTree(t)
	rw := newTestRewriter(t)

	res, err := rw.Run(context.Background(), RunConfig{
		Paths:      []string{filepath.Join(root, "src", "lib", "*")},
		IgnoreFile: filepath.Join(root, "missing.gitignore"),
	})
	require.NoError(t, err)
	require.Len(t, res.Files, 2)
	for _, f := range res.Files {
		assert.NotEmpty(t, f.Content)
	}
	assert.NoFileExists(t, filepath.Join(root, "src", "lib", "b.js"))

	src, err := os.ReadFile(filepath.Join(root, "src", "lib", "a.svelte"))
	require.NoError(t, err)
	assert.Equal(t, "<div class=\"flex p-4\">hi</div>\n", string(src))
}

func TestRunFailures(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.svelte": "<div class=\"flex\">\n",
		"b.svelte": "<p>\n",
		"c.svelte": "<p class=\"flex\"></p>\n",
	})
	paths := []string{filepath.Join(root, "*.svelte")}
	ignoreFile := filepath.Join(root, "missing.gitignore")

	t.Run("keep going collects every failure", func(t *testing.T) {
		rw := newTestRewriter(t)
		res, err := rw.Run(context.Background(), RunConfig{
			Paths: paths, Jobs: 3, KeepGoing: true, IgnoreFile: ignoreFile,
		})
		require.Error(t, err)
		assert.Len(t, multierr.Errors(err), 2)
		var perr *svelte.ParseError
		assert.ErrorAs(t, err, &perr)

		require.Len(t, res.Files, 3)
		assert.Equal(t, 2, res.Failed())
		issues := res.Issues()
		require.Len(t, issues, 2)
		for _, issue := range issues {
			assert.Equal(t, "parse", issue.Stage)
			assert.NotZero(t, issue.Pos.Line)
		}
	})

	t.Run("first failure stops the run", func(t *testing.T) {
		rw := newTestRewriter(t)
		res, err := rw.Run(context.Background(), RunConfig{
			Paths: paths, Jobs: 1, IgnoreFile: ignoreFile,
		})
		require.Error(t, err)
		assert.Len(t, multierr.Errors(err), 1)
		var fe *FileError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, filepath.Join(root, "a.svelte"), fe.Path)
		assert.Equal(t, 1, res.Failed())
	})
}

func TestRunRejectsConflictingDestinations(t *testing.T) {
	rw := newTestRewriter(t)
	_, err := rw.Run(context.Background(), RunConfig{
		Paths:   []string{"*.svelte"},
		OutDir:  t.TempDir(),
		InPlace: true,
	})
	require.Error(t, err)
}

func TestRunCanceled(t *testing.T) {
	root := registryTree(t)
	rw := newTestRewriter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := rw.Run(ctx, RunConfig{
		Paths:      []string{filepath.Join(root, "src", "lib", "*")},
		IgnoreFile: filepath.Join(root, "missing.gitignore"),
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Files)
}
