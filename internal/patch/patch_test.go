package patch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/twprefix/internal/classes"
	"github.com/yacobolo/twprefix/internal/svelte"
)

func TestPatch(t *testing.T) {
	recognized := classes.NewSet("flex", "mt-4", "hover:bg-red-500/50", "sr-only",
		"data-[state=open]:bg-accent[data-state=open]")

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "static attribute",
			src:  `<div class="flex mt-4 custom"></div>`,
			want: `<div class="P-flex P-mt-4 custom"></div>`,
		},
		{
			name: "variant and modifier",
			src:  `<a class="hover:bg-red-500/50">x</a>`,
			want: `<a class="hover:P-bg-red-500/50">x</a>`,
		},
		{
			name: "partial match",
			src:  `<div class="data-[state=open]:bg-accent"></div>`,
			want: `<div class="data-[state=open]:P-bg-accent"></div>`,
		},
		{
			name: "expression literals keep their quotes",
			src:  `<div class={cn("flex", cond ? 'mt-4' : "custom", other)}></div>`,
			want: `<div class={cn("P-flex", cond ? 'P-mt-4' : "custom", other)}></div>`,
		},
		{
			name: "quoted value with expressions",
			src:  `<div class="flex {open ? 'mt-4' : ''} custom  sr-only"></div>`,
			want: `<div class="P-flex {open ? 'P-mt-4' : ''} custom  P-sr-only"></div>`,
		},
		{
			name: "string expression",
			src:  `<X class={"flex mt-4"} />`,
			want: `<X class={"P-flex P-mt-4"} />`,
		},
		{
			name: "escaped quotes stay part of the token",
			src:  `<X class={"flex \"mt-4\""} />`,
			want: `<X class={"P-flex \"mt-4\""} />`,
		},
		{
			name: "nested ternary",
			src:  `<span class={a ? "flex" : b ? "mt-4" : "sr-only"}>Close</span>`,
			want: `<span class={a ? "P-flex" : b ? "P-mt-4" : "P-sr-only"}>Close</span>`,
		},
		{
			name: "class directive and other attributes untouched",
			src:  `<div class:flex={on} title="flex mt-4" data-class="flex">flex {"mt-4"}</div>`,
			want: `<div class:flex={on} title="flex mt-4" data-class="flex">flex {"mt-4"}</div>`,
		},
		{
			name: "inside blocks",
			src:  "{#if a}\n\t<p class=\"flex\">flex</p>\n{:else}\n\t<p class={`mt-4`}></p>\n{/if}",
			want: "{#if a}\n\t<p class=\"P-flex\">flex</p>\n{:else}\n\t<p class={`mt-4`}></p>\n{/if}",
		},
		{
			name: "script and style untouched",
			src:  "<script>const c = \"flex\";</script><style>.flex { color: red; }</style><b class=\"flex\"></b>",
			want: "<script>const c = \"flex\";</script><style>.flex { color: red; }</style><b class=\"P-flex\"></b>",
		},
		{
			name: "unquoted value",
			src:  `<i class=flex></i>`,
			want: `<i class=P-flex></i>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Patch(tt.src, recognized, "P-")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPatchWithoutClassAttributesIsIdentity(t *testing.T) {
	recognized := classes.NewSet("flex", "mt-4", "grid")
	sources := []string{
		"",
		"<p>flex mt-4</p>",
		`<div id="flex" style="grid"><span>{"flex"}</span></div>`,
		"<!-- class=\"flex\" -->\n<script>let a = 'flex';</script>",
		`<Button variant="flex" {...$$restProps} />`,
	}
	for _, src := range sources {
		got, err := Patch(src, recognized, "P-")
		require.NoError(t, err)
		assert.Equal(t, src, got)
	}
}

func TestApplyReportsSpans(t *testing.T) {
	src := `<div class="flex {x ? 'mt-4' : 'other'}"><p class="flex"></p></div>`
	res, err := Apply(src, classes.NewSet("flex", "mt-4"), "P-")
	require.NoError(t, err)

	assert.Equal(t, 3, res.Tokens)
	var kinds []SpanKind
	for _, s := range res.Spans {
		kinds = append(kinds, s.Kind)
		assert.Equal(t, s.Text, src[s.Start:s.End])
	}
	assert.Equal(t, []SpanKind{SpanText, SpanLiteral, SpanLiteral, SpanAttribute}, kinds)
}

func TestPatchPropagatesParseErrors(t *testing.T) {
	_, err := Patch(`<div class="flex">`, classes.NewSet("flex"), "P-")
	var perr *svelte.ParseError
	require.ErrorAs(t, err, &perr)
}

const dialog = `<script>
import { Dialog as DialogPrimitive } from "bits-ui";
import * as Dialog from ".";
import { cn, flyAndScale } from "$lib/utils";
import { X } from "lucide-svelte";
let className = undefined;
export let transition = flyAndScale;
const isOpen = false;
const condA = false;
const condB = true;
const condC = true;
export { className as class };
</script>

<Dialog.Portal>
<Dialog.Overlay />
<DialogPrimitive.Content
	{transition}
	class={cn(
		"fixed left-[50%] top-[50%] z-50 grid w-full max-w-lg translate-x-[-50%] translate-y-[-50%] gap-4 border bg-background p-6 shadow-lg sm:rounded-lg md:w-full",
		isOpen ? "sm:gap-6" : "sm:gap-4",
		condA ? "cn-condA" : condB ? "cnCondB" : condC ? "cnCondC" : "cnCondAlt",
		className
	)}
	{...$$restProps}
>
	<slot />
	<DialogPrimitive.Close
		class="absolute right-4 top-4 rounded-sm opacity-70 ring-offset-background transition-opacity hover:opacity-100 focus:outline-none focus:ring-2 focus:ring-ring focus:ring-offset-2 disabled:pointer-events-none data-[state=open]:bg-accent data-[state=open]:text-muted-foreground"
	>
		<X class={"h-4 w-4"} />
		<span class={true ? "sr-only" : "sr-a"}>Close</span>
	</DialogPrimitive.Close>
</DialogPrimitive.Content>
</Dialog.Portal>`

func TestPatchDialog(t *testing.T) {
	recognized := classes.NewSet(
		"fixed", "left-[50%]", "top-[50%]", "z-50", "grid", "w-full", "max-w-lg", "translate-x-[-50%]",
		"translate-y-[-50%]", "gap-4", "border", "bg-background", "p-6", "shadow-lg", "sm:rounded-lg",
		"md:w-full", "sm:gap-6", "sm:gap-4", "absolute", "right-4", "top-4", "rounded-sm", "opacity-70",
		"ring-offset-background", "transition-opacity", "hover:opacity-100", "focus:outline-none",
		"focus:ring-2", "focus:ring-ring", "focus:ring-offset-2", "disabled:pointer-events-none",
		"data-[state=open]:bg-accent[data-state=open]", "data-[state=open]:text-muted-foreground[data-state=open]",
		"h-4", "w-4", "sr-only",
	)

	res, err := Apply(dialog, recognized, "TW-PREFIX-")
	require.NoError(t, err)
	got := res.Output

	for _, want := range []string{
		`"TW-PREFIX-fixed TW-PREFIX-left-[50%] TW-PREFIX-top-[50%] TW-PREFIX-z-50 TW-PREFIX-grid TW-PREFIX-w-full ` +
			`TW-PREFIX-max-w-lg TW-PREFIX-translate-x-[-50%] TW-PREFIX-translate-y-[-50%] TW-PREFIX-gap-4 ` +
			`TW-PREFIX-border TW-PREFIX-bg-background TW-PREFIX-p-6 TW-PREFIX-shadow-lg sm:TW-PREFIX-rounded-lg ` +
			`md:TW-PREFIX-w-full"`,
		`isOpen ? "sm:TW-PREFIX-gap-6" : "sm:TW-PREFIX-gap-4"`,
		`condA ? "cn-condA" : condB ? "cnCondB" : condC ? "cnCondC" : "cnCondAlt"`,
		`data-[state=open]:TW-PREFIX-bg-accent data-[state=open]:TW-PREFIX-text-muted-foreground"`,
		`hover:TW-PREFIX-opacity-100 focus:TW-PREFIX-outline-none`,
		`<X class={"TW-PREFIX-h-4 TW-PREFIX-w-4"} />`,
		`<span class={true ? "TW-PREFIX-sr-only" : "sr-a"}>Close</span>`,
	} {
		assert.Contains(t, got, want)
	}

	script := dialog[:strings.Index(dialog, "</script>")]
	assert.True(t, strings.HasPrefix(got, script), "script block changed")
	assert.Equal(t, strings.Count(dialog, "\n"), strings.Count(got, "\n"))
	assert.Equal(t, 36, res.Tokens)
}

func TestBuffer(t *testing.T) {
	t.Run("edits apply by original offsets in any order", func(t *testing.T) {
		b := NewBuffer("abcdef")
		require.NoError(t, b.Overwrite(4, 5, "EE"))
		require.NoError(t, b.Overwrite(0, 1, ""))
		require.NoError(t, b.Overwrite(2, 3, "C"))
		assert.Equal(t, "bCdEEf", b.String())
		assert.Equal(t, 3, b.Len())
	})

	t.Run("identical range replaces", func(t *testing.T) {
		b := NewBuffer("abc")
		require.NoError(t, b.Overwrite(1, 2, "x"))
		require.NoError(t, b.Overwrite(1, 2, "y"))
		assert.Equal(t, "ayc", b.String())
		assert.Equal(t, 1, b.Len())
	})

	t.Run("partial overlap fails", func(t *testing.T) {
		b := NewBuffer("abcdef")
		require.NoError(t, b.Overwrite(1, 4, "x"))
		require.Error(t, b.Overwrite(3, 5, "y"))
		require.Error(t, b.Overwrite(0, 2, "y"))
	})

	t.Run("out of range fails", func(t *testing.T) {
		b := NewBuffer("abc")
		require.Error(t, b.Overwrite(2, 4, "x"))
		require.Error(t, b.Overwrite(2, 1, "x"))
	})

	t.Run("no edits", func(t *testing.T) {
		assert.Equal(t, "abc", NewBuffer("abc").String())
	})
}
