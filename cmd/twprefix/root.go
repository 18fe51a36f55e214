package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "twprefix [paths...]",
	Short: "Prefix Tailwind utility classes in Svelte registry components",
	Long: `Rewrite Svelte components so every class generated by the base
stylesheet carries a prefix. TypeScript scripts and modules are compiled
to JavaScript and the results are formatted.`,
	Args: cobra.ArbitraryArgs,
	// Default behavior: run rewrite when no subcommand is given.
	// We must call loadConfig here because PreRunE of rewriteCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runRewrite(cmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", defaultConfigPath, "Config file path")
	rootCmd.PersistentFlags().String("prefix", "", "Class prefix (default \"TW-PREFIX-\")")
	rootCmd.PersistentFlags().String("css", "", "Base stylesheet (default \"./simple.pcss\")")

	addRewriteFlags(rootCmd)

	rootCmd.AddCommand(rewriteCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
