package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/yacobolo/twprefix/internal/classes"
	"github.com/yacobolo/twprefix/internal/tailwind"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{".flex", "flex"},
		{`.md\:flex`, "md:flex"},
		{`.hover\:opacity-100:hover`, "hover:opacity-100"},
		{`.sm\:hover\:bg-red-500`, "sm:hover"},
		{".sm:hover:bg-red-500", "sm:hover"},
		{`.w-1\/2`, "w-1/2"},
		{`.data-\[state\=open\]\:bg-accent[data-state=open]`, "data-[state=open]:bg-accent[data-state=open]"},
		{`.a\:b\:c\:d`, "a:b:c:d"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := Normalize(tt.key)
			assert.Equal(t, tt.want, got)
			if got != "" {
				assert.Equal(t, got, Normalize("."+got), "normalizing twice changes %q", got)
			}
		})
	}
}

func TestSelectors(t *testing.T) {
	tree := tailwind.Tree{
		"@media (min-width: 768px)": {Children: tailwind.Tree{
			`.md\:flex`: {Declarations: map[string]string{"display": "flex"}},
			"@supports (display: grid)": {Children: tailwind.Tree{
				".deep": {Declarations: map[string]string{}},
			}},
		}},
		".mt-4": {Declarations: map[string]string{"margin-top": "1rem"}},
		"body":  {Declarations: map[string]string{"margin": "0"}},
	}

	assert.Equal(t, classes.NewSet("md:flex", "mt-4"), Selectors(tree))
}

func newExtractor(t *testing.T, from string) *Extractor {
	t.Helper()
	p, err := tailwind.New(tailwind.DefaultConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	return New(p, from, zaptest.NewLogger(t))
}

func TestExtract(t *testing.T) {
	const css = "@tailwind base;\n@tailwind components;\n@tailwind utilities;\n"
	const content = `<div class="flex mt-4 md:grid hover:bg-red-500/50 custom-thing">Hello</div>`

	got, err := newExtractor(t, "").Extract(content, css)
	require.NoError(t, err)

	for _, want := range []string{"flex", "mt-4", "md:grid", "hover:bg-red-500/50"} {
		assert.True(t, got.Has(want), "missing %q in %v", want, got.Sorted())
	}
	assert.False(t, got.Has("custom-thing"))
	assert.False(t, got.Has("grid"))
}

func TestExtractResolvesImportsFromEntryPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "buttons.css"),
		[]byte("@layer components { .btn { padding: 1rem; } }\n"), 0644))
	entry := filepath.Join(dir, "app.css")
	css := "@import \"./buttons.css\";\n@tailwind components;\n@tailwind utilities;\n"

	got, err := newExtractor(t, entry).Extract("btn flex", css)
	require.NoError(t, err)
	assert.True(t, got.Has("btn"))
	assert.True(t, got.Has("flex"))
}

func TestExtractPropagatesPipelineErrors(t *testing.T) {
	_, err := newExtractor(t, filepath.Join(t.TempDir(), "app.css")).Extract("flex", `@import "./missing.css";`)
	var importErr *tailwind.ImportError
	require.ErrorAs(t, err, &importErr)
}

func TestDeclarations(t *testing.T) {
	tree := tailwind.Tree{
		".p-4": {Declarations: map[string]string{"padding": "1rem"}},
		"@media (min-width:768px)": {Children: tailwind.Tree{
			`.md\:p-4`: {Declarations: map[string]string{"padding": "1rem"}},
		}},
		"@media (prefers-color-scheme:dark)": {Children: tailwind.Tree{
			`.dark\:text-white`: {Declarations: map[string]string{"color": "#fff"}},
		}},
		`.dark\:text-white`: {Declarations: map[string]string{"--tw-text-opacity": "1"}},
	}

	assert.Equal(t, map[string]map[string]string{
		"p-4":             {"padding": "1rem"},
		"md:p-4":          {"padding": "1rem"},
		"dark:text-white": {"color": "#fff", "--tw-text-opacity": "1"},
	}, Declarations(tree))
}
