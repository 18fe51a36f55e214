// Package twprefix prefixes the utility classes of Svelte components.
//
// The classes a component uses are recognized by running a Tailwind-style
// CSS pipeline over the component, and every recognized token inside a
// class attribute is rewritten with a prefix, so generated components can
// tell their own utilities apart from classes passed in by callers:
//
//	flex                 -> TW-PREFIX-flex
//	hover:bg-red-500/50  -> hover:TW-PREFIX-bg-red-500/50
//
// # Rewriting a component
//
//	rw, err := twprefix.New(twprefix.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	out, err := rw.AddPrefix(src, "Dialog.svelte")
//
// # Batch runs
//
// Run rewrites every file matched by a set of globs, transpiling
// TypeScript and formatting the output:
//
//	result, err := rw.Run(ctx, twprefix.RunConfig{
//		Paths:  []string{"src/lib/registry/**/*.{svelte,ts}"},
//		OutDir: "static/registry",
//		Jobs:   4,
//	})
//
// # CLI Tool
//
// twprefix also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/twprefix/cmd/twprefix@latest
package twprefix
