package tailwind

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/net/html"
)

const entryCSS = `@tailwind base;
@tailwind components;
@tailwind utilities;
`

func newTestPipeline(t *testing.T, mutate ...func(*Config)) *Pipeline {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Colors["accent"] = "hsl(var(--accent) / <alpha-value>)"
	cfg.Colors["background"] = "hsl(var(--background) / <alpha-value>)"
	for _, m := range mutate {
		m(&cfg)
	}
	p, err := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	return p
}

func TestRunProducesUsedUtilities(t *testing.T) {
	p := newTestPipeline(t)

	tree, err := p.Run(entryCSS, RunOptions{
		Content: []string{`<div class="flex hover:opacity-100 sm:rounded-lg unknown-thing">`},
	})
	require.NoError(t, err)

	require.Contains(t, tree, ".flex")
	assert.Equal(t, "flex", tree[".flex"].Declarations["display"])
	require.Contains(t, tree, `.hover\:opacity-100:hover`)
	assert.Equal(t, "1", tree[`.hover\:opacity-100:hover`].Declarations["opacity"])

	media, ok := tree["@media (min-width:640px)"]
	require.True(t, ok, "keys: %v", tree.Keys())
	require.Contains(t, media.Children, `.sm\:rounded-lg`)
	assert.Equal(t, "0.5rem", media.Children[`.sm\:rounded-lg`].Declarations["border-radius"])

	assert.NotContains(t, tree, ".unknown-thing")
	assert.NotContains(t, tree, ".grid")
}

func TestGenerateVariantsAndValues(t *testing.T) {
	p := newTestPipeline(t)

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "data attribute variant",
			content: "data-[state=open]:bg-accent",
			want:    []string{`.data-\[state\=open\]\:bg-accent[data-state=open] {`, "background-color: hsl(var(--accent) / 1);"},
		},
		{
			name:    "opacity modifier on hex color",
			content: "bg-red-500/50",
			want:    []string{`.bg-red-500\/50 {`, "background-color: rgb(239 68 68 / 0.5);"},
		},
		{
			name:    "opacity modifier on alpha placeholder",
			content: "bg-background/80",
			want:    []string{"background-color: hsl(var(--background) / 0.8);"},
		},
		{
			name:    "arbitrary values",
			content: "left-[50%] translate-x-[-50%]",
			want:    []string{`.left-\[50\%\] {`, "left: 50%;", `.translate-x-\[-50\%\] {`, "--tw-translate-x: -50%;"},
		},
		{
			name:    "negative spacing",
			content: "-mt-4",
			want:    []string{".-mt-4 {", "margin-top: -1rem;"},
		},
		{
			name:    "fraction",
			content: "w-1/2",
			want:    []string{`.w-1\/2 {`, "width: 50%;"},
		},
		{
			name:    "font size with line height",
			content: "text-sm",
			want:    []string{"font-size: 0.875rem;", "line-height: 1.25rem;"},
		},
		{
			name:    "stacked pseudo variants",
			content: "hover:focus:underline",
			want:    []string{`.hover\:focus\:underline:focus:hover {`},
		},
		{
			name:    "responsive variant wraps media",
			content: "md:flex",
			want:    []string{"@media (min-width: 768px) {", `.md\:flex {`},
		},
		{
			name:    "group variant",
			content: "group-hover:block",
			want:    []string{`.group:hover .group-hover\:block {`},
		},
		{
			name:    "important",
			content: "!hidden",
			want:    []string{"display: none !important;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			css, err := p.Generate(entryCSS, RunOptions{Content: []string{tt.content}})
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, css, w)
			}
		})
	}
}

func TestGenerateDarkModeClass(t *testing.T) {
	p := newTestPipeline(t, func(c *Config) { c.DarkMode = "class" })

	tree, err := p.Run(entryCSS, RunOptions{Content: []string{"dark:bg-black"}})
	require.NoError(t, err)
	assert.Contains(t, tree, `.dark .dark\:bg-black`)
}

func TestNewRejectsUnknownDarkMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DarkMode = "selector"
	_, err := New(cfg, nil)
	require.Error(t, err)
}

func TestLayersAndImports(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "components.css"), []byte(`
@layer components {
  .btn { padding: 1rem; }
  .card { border-width: 1px; }
}
@layer base {
  body { @apply bg-white text-sm; }
}
`), 0644))
	entry := filepath.Join(dir, "main.css")
	src := "@import \"./components.css\";\n" + entryCSS + ".always { color: red; }\n"
	p := newTestPipeline(t)

	tree, err := p.Run(src, RunOptions{From: entry, Content: []string{"btn hover:btn"}})
	require.NoError(t, err)

	assert.Contains(t, tree, ".btn")
	assert.Contains(t, tree, `.hover\:btn:hover`)
	assert.NotContains(t, tree, ".card")
	assert.Contains(t, tree, ".always")
	require.Contains(t, tree, "body")
	assert.Equal(t, "#fff", tree["body"].Declarations["background-color"])
	assert.Equal(t, "0.875rem", tree["body"].Declarations["font-size"])
}

func TestImportCycleIsSkipped(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.css")
	b := filepath.Join(dir, "b.css")
	require.NoError(t, os.WriteFile(a, []byte(`@import "b.css"; .a { color: red; }`), 0644))
	require.NoError(t, os.WriteFile(b, []byte(`@import "a.css"; .b { color: blue; }`), 0644))

	src, err := os.ReadFile(a)
	require.NoError(t, err)
	tree, err := newTestPipeline(t).Run(string(src), RunOptions{From: a})
	require.NoError(t, err)
	assert.Contains(t, tree, ".a")
	assert.Contains(t, tree, ".b")
}

func TestPipelineErrors(t *testing.T) {
	p := newTestPipeline(t)

	t.Run("missing import", func(t *testing.T) {
		_, err := p.Run(`@import "./nope.css";`, RunOptions{From: filepath.Join(t.TempDir(), "main.css")})
		var importErr *ImportError
		require.ErrorAs(t, err, &importErr)
		assert.Equal(t, "./nope.css", importErr.Path)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("layer without directive", func(t *testing.T) {
		_, err := p.Run("@layer utilities { .x { color: red; } }", RunOptions{})
		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		assert.Contains(t, syntaxErr.Message, "@tailwind utilities")
	})

	t.Run("malformed declaration", func(t *testing.T) {
		_, err := p.Run(".a { color }", RunOptions{})
		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		assert.Equal(t, 1, syntaxErr.Line)
	})

	t.Run("unknown apply class", func(t *testing.T) {
		_, err := p.Run(entryCSS+".a { @apply not-a-utility; }", RunOptions{})
		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		assert.Contains(t, syntaxErr.Message, "not-a-utility")
	})
}

func TestPluginsAndConfigUtilities(t *testing.T) {
	p := newTestPipeline(t, func(c *Config) {
		c.Utilities["text-balance"] = "text-wrap: balance;"
	})
	plugin := func(r *Registry) {
		r.AddStatic("scrollbar-none", Decl{Property: "scrollbar-width", Value: "none"})
	}

	tree, err := p.Run(entryCSS, RunOptions{Content: []string{"text-balance scrollbar-none"}, Plugins: []Plugin{plugin}})
	require.NoError(t, err)
	assert.Equal(t, "balance", tree[".text-balance"].Declarations["text-wrap"])
	assert.Equal(t, "none", tree[".scrollbar-none"].Declarations["scrollbar-width"])

	tree, err = p.Run(entryCSS, RunOptions{Content: []string{"scrollbar-none"}})
	require.NoError(t, err)
	assert.NotContains(t, tree, ".scrollbar-none")
}

func TestGeneratedSelectorsMatchMarkup(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body>
<div id="dialog" class="data-[state=open]:bg-accent left-[50%] w-1/2" data-state="open"></div>
<div id="closed" class="data-[state=open]:bg-accent" data-state="closed"></div>
</body></html>`))
	require.NoError(t, err)

	p := newTestPipeline(t)
	tree, err := p.Run(entryCSS, RunOptions{Content: []string{"data-[state=open]:bg-accent left-[50%] w-1/2"}})
	require.NoError(t, err)

	for _, key := range []string{`.data-\[state\=open\]\:bg-accent[data-state=open]`, `.left-\[50\%\]`, `.w-1\/2`} {
		t.Run(key, func(t *testing.T) {
			require.Contains(t, tree, key)
			sel, err := cascadia.Parse(key)
			require.NoError(t, err)
			matches := cascadia.QueryAll(doc, sel)
			require.Len(t, matches, 1)
			assert.Equal(t, "dialog", attr(matches[0], "id"))
		})
	}
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func TestCandidates(t *testing.T) {
	got := Candidates(`<div class="flex {cond ? 'p-4' : 'm-2'}">`, "data-[state=open]:bg-accent w-[calc(100%_-_2rem)]")
	require.Equal(t, []string{"div", "class", "flex", "cond", "?", "p-4", "m-2",
		"data-[state=open]:bg-accent", "w-[calc(100%_-_2rem)]"}, got)
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"flex", "flex"},
		{"md:flex", `md\:flex`},
		{"2xl:flex", `\32 xl\:flex`},
		{"w-1/2", `w-1\/2`},
		{"-mt-4", "-mt-4"},
		{"left-[50%]", `left-\[50\%\]`},
		{"data-[state=open]:x", `data-\[state\=open\]\:x`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, Escape(tt.in))
			require.Equal(t, tt.in, unescape(Escape(tt.in)))
		})
	}
}
