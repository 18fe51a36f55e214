package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/twprefix"
	"github.com/yacobolo/twprefix/internal/report"
)

var classesCmd = &cobra.Command{
	Use:   "classes FILE",
	Short: "List the utility classes recognized in a component",
	Long: `Print the classes of a Svelte component that the base stylesheet
generates, one per line, or grouped by the kind of properties they set.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runClasses,
}

func init() {
	classesCmd.Flags().Bool("group", false, "Group classes by property category")
}

func runClasses(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	cfg.SkipFormat = true

	rw, err := twprefix.New(cfg)
	if err != nil {
		return err
	}
	// #nosec G304 - the component path is given on the command line
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	group, _ := cmd.Flags().GetBool("group")
	if !group {
		set, err := rw.Classes(string(src), args[0])
		if err != nil {
			return err
		}
		for _, name := range set.Sorted() {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	groups, err := rw.GroupedClasses(string(src), args[0])
	if err != nil {
		return err
	}
	colors := useColors()
	for _, cat := range twprefix.Categories {
		names := groups[cat]
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s (%d)\n", report.RenderStyle(report.StyleCyan, string(cat), colors), len(names))
		for _, name := range names {
			fmt.Fprintf(out, "  %s\n", name)
		}
	}
	return nil
}
