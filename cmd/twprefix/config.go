package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/yacobolo/twprefix"
	"github.com/yacobolo/twprefix/internal/report"
)

const defaultConfigPath = ".twprefix.yaml"

var k = koanf.New(".")

// defaultPaths are rewritten when neither arguments nor rewrite.paths are
// given.
var defaultPaths = []string{"src/lib/registry/**/*.{svelte,ts,js}"}

// flagKeys maps command flags to the config keys they override. Flags not
// listed share their name with a top-level key.
var flagKeys = map[string]string{
	"out-dir":       "rewrite.out-dir",
	"in-place":      "rewrite.in-place",
	"jobs":          "rewrite.jobs",
	"keep-going":    "rewrite.keep-going",
	"format":        "rewrite.format",
	"output-format": "rewrite.output-format",
}

// configSections are the nested sections environment variables can address.
var configSections = map[string]bool{
	"rewrite":  true,
	"format":   true,
	"tailwind": true,
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Only flags set on the command line are loaded. Defaults come from the
	// config builders so that unset flags never shadow the config file.
	fs := cmd.Flags()
	provider := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, any) {
		if !f.Changed || f.Name == "config" {
			return "", nil
		}
		key := f.Name
		if mapped, ok := flagKeys[key]; ok {
			key = mapped
		}
		return key, posflag.FlagVal(fs, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("TWPREFIX_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key:
//
//	TWPREFIX_REWRITE_JOBS     -> rewrite.jobs
//	TWPREFIX_FORMAT_USE_TABS  -> format.use-tabs
//	TWPREFIX_PREFIX           -> prefix
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "TWPREFIX_"))
	if section, rest, ok := strings.Cut(s, "_"); ok && configSections[section] {
		return section + "." + strings.ReplaceAll(rest, "_", "-")
	}
	return strings.ReplaceAll(s, "_", "-")
}

// rewriteOptions holds the rewrite section of the configuration.
type rewriteOptions struct {
	twprefix.RunConfig `koanf:",squash"`

	Format       bool   `koanf:"format"`
	OutputFormat string `koanf:"output-format"`
}

// buildConfig constructs the library's Config from koanf state.
func buildConfig(log *zap.Logger) (twprefix.Config, error) {
	cfg := twprefix.DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Logger = log
	return cfg, nil
}

// buildRewriteOptions constructs the run options from koanf state. Paths
// given as arguments replace the configured ones.
func buildRewriteOptions(args []string) (rewriteOptions, error) {
	opts := rewriteOptions{
		RunConfig:    twprefix.RunConfig{Jobs: 4},
		Format:       true,
		OutputFormat: string(twprefix.OutputText),
	}
	if err := k.Unmarshal("rewrite", &opts); err != nil {
		return opts, fmt.Errorf("decoding rewrite config: %w", err)
	}
	if len(args) > 0 {
		opts.Paths = args
	}
	if len(opts.Paths) == 0 {
		opts.Paths = defaultPaths
	}
	return opts, nil
}

// useColors reports whether reports and logs are colored.
func useColors() bool {
	return report.ShouldUseColors(k.Bool("color"))
}

// setup builds the logger and library config shared by every command.
func setup(cmd *cobra.Command) (twprefix.Config, *zap.Logger, error) {
	log := newLogger(cmd.ErrOrStderr(), k.Bool("verbose"), useColors())
	cfg, err := buildConfig(log)
	return cfg, log, err
}
