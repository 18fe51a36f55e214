package twprefix

import (
	"os"
	"path/filepath"
	"testing"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldSkipFile(t *testing.T) {
	gi := ignore.CompileIgnoreLines("generated/", "*.gen.svelte")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"component", "src/lib/ui/button/button.svelte", false},
		{"typescript module", "src/lib/ui/button/index.ts", false},
		{"javascript module", "src/lib/utils.js", false},
		{"declaration file", "src/app.d.ts", true},
		{"stylesheet", "src/app.pcss", true},
		{"node_modules", "node_modules/bits-ui/dist/a.svelte", true},
		{"svelte-kit output", ".svelte-kit/generated/root.svelte", true},
		{"build output", "src/build/a.js", true},
		{"gitignored directory", "generated/a.svelte", true},
		{"gitignored pattern", "src/a.gen.svelte", true},
		{"absolute paths ignore gitignore", "/abs/generated/a.svelte", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldSkipFile(filepath.FromSlash(tt.path), gi))
		})
	}

	assert.False(t, shouldSkipFile("generated/a.svelte", nil))
}

func TestLoadGitIgnore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gitignore")
	require.NoError(t, os.WriteFile(path, []byte("out/\n"), 0o644))

	gi := loadGitIgnore(path)
	require.NotNil(t, gi)
	assert.True(t, gi.MatchesPath("out/a.svelte"))

	assert.Nil(t, loadGitIgnore(filepath.Join(dir, "missing")))
	assert.Nil(t, loadGitIgnore(""))
}

func TestExpandGlobPatterns(t *testing.T) {
	root := registryTree(t)

	inputs, stats, err := expandGlobPatterns([]string{
		filepath.Join(root, "src", "lib", "*.svelte"),
		filepath.Join(root, "src", "**", "*.svelte"),
	}, nil)
	require.NoError(t, err)

	// a.svelte matches both patterns but is only taken once.
	assert.Equal(t, ScanStats{FilesDiscovered: 2, FilesProcessed: 1, FilesSkipped: 1}, stats)
	require.Len(t, inputs, 1)
	assert.Equal(t, filepath.Join(root, "src", "lib", "a.svelte"), inputs[0].path)
	assert.Equal(t, filepath.Join(root, "src", "lib"), inputs[0].base)

	_, _, err = expandGlobPatterns([]string{"src/[.svelte"}, nil)
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		in     input
		outDir string
		want   string
	}{
		{
			name: "in place keeps the path",
			in:   input{path: "src/lib/a.svelte", base: "src"},
			want: "src/lib/a.svelte",
		},
		{
			name: "in place renames typescript",
			in:   input{path: "src/lib/b.ts", base: "src"},
			want: "src/lib/b.js",
		},
		{
			name:   "out dir preserves layout below the base",
			in:     input{path: "src/lib/ui/a.svelte", base: "src/lib"},
			outDir: "out",
			want:   "out/ui/a.svelte",
		},
		{
			name:   "out dir renames typescript",
			in:     input{path: "src/lib/b.ts", base: "src"},
			outDir: "out",
			want:   "out/lib/b.js",
		},
		{
			name:   "file outside the base is flattened",
			in:     input{path: "other/a.svelte", base: "src"},
			outDir: "out",
			want:   "out/a.svelte",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := input{path: filepath.FromSlash(tt.in.path), base: filepath.FromSlash(tt.in.base)}
			assert.Equal(t, filepath.FromSlash(tt.want), outputPath(in, filepath.FromSlash(tt.outDir)))
		})
	}
}
