package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .twprefix.yaml config file",
	Long:  `Create a .twprefix.yaml configuration file in the current directory with the registry defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# twprefix configuration

# Shared settings
prefix: TW-PREFIX-
css: ./simple.pcss
verbose: false

# Batch rewrite settings
rewrite:
  paths:
    - "src/lib/registry/**/*.{svelte,ts,js}"
  out-dir: ""              # empty with in-place false: report only
  in-place: false
  jobs: 4
  keep-going: false
  format: true
  output-format: text      # text | json

# Formatter settings
format:
  use-tabs: true
  tab-width: 4
  single-quote: false
  trailing-comma: es5      # none | es5 | all
  print-width: 100
  end-of-line: lf          # lf | crlf | cr | auto
  bracket-same-line: false

# Theme additions, merged over the built-in theme
tailwind:
  dark-mode: media         # media | class
  colors:
    border: "hsl(var(--border) / <alpha-value>)"
    input: "hsl(var(--input) / <alpha-value>)"
    ring: "hsl(var(--ring) / <alpha-value>)"
    background: "hsl(var(--background) / <alpha-value>)"
    foreground: "hsl(var(--foreground) / <alpha-value>)"
    accent: "hsl(var(--accent) / <alpha-value>)"
    muted-foreground: "hsl(var(--muted-foreground) / <alpha-value>)"
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
