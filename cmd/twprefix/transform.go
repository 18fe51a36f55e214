package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/twprefix"
)

var transformCmd = &cobra.Command{
	Use:   "transform FILE",
	Short: "Compile and format a file without prefixing",
	Long: `Compile the TypeScript of a component or module to JavaScript, format
the result and print it. Classes are left untouched.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		// No stylesheet is needed without prefixing.
		cfg.CSSEntry = ""

		rw, err := twprefix.New(cfg)
		if err != nil {
			return err
		}
		// #nosec G304 - the file path is given on the command line
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		out, err := rw.TransformContent(string(src), args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}
