package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/twprefix"
)

// errFilesFailed is returned when a run reported failed files.
var errFilesFailed = errors.New("one or more files failed")

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [paths...]",
	Short: "Prefix utility classes and compile registry files",
	Long: `Rewrite Svelte components and TypeScript modules matched by the given
glob patterns. Components get their recognized classes prefixed, TypeScript
is compiled to JavaScript, and every result is formatted.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runRewrite,
}

func init() {
	addRewriteFlags(rewriteCmd)
}

// addRewriteFlags registers the rewrite flags. The root command carries them
// too since it runs rewrite by default.
func addRewriteFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("out-dir", "", "Directory receiving the results (layout below each glob base is kept)")
	f.Bool("in-place", false, "Write results next to their sources")
	f.Int("jobs", 4, "Files processed at once")
	f.Bool("keep-going", false, "Process every file and report all failures")
	f.Bool("format", true, "Format the results")
	f.String("output-format", "text", "Output format: text|json")
}

func runRewrite(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	opts, err := buildRewriteOptions(args)
	if err != nil {
		return err
	}
	cfg.SkipFormat = !opts.Format

	rw, err := twprefix.New(cfg)
	if err != nil {
		return err
	}

	result, runErr := rw.Run(cmd.Context(), opts.RunConfig)
	if result == nil {
		return runErr
	}

	if !k.Bool("quiet") {
		format := twprefix.DetermineOutputFormat(opts.OutputFormat)
		if err := twprefix.WriteOutput(cmd.OutOrStdout(), result, format, twprefix.OutputOptions{
			UseColors: useColors(),
			Verbose:   k.Bool("verbose"),
		}); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	if result.Failed() > 0 {
		return errFilesFailed
	}
	return runErr
}
