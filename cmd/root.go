// Package cmd implements the CLI commands for clip-to-notion using Cobra.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gaurav-prasanna/clip-to-notion/config"
	"github.com/gaurav-prasanna/clip-to-notion/logging"
	"github.com/spf13/cobra"
)

// Persistent flag variables.
var (
	flagConfigPath string
	flagDebug      bool
)

var rootCmd = &cobra.Command{
	Use:   "clip-to-notion",
	Short: "clip-to-notion — save a web page to a Notion database",
	Long: `clip-to-notion fetches a web page, reads its title and Open Graph metadata,
and creates a page for it in a Notion database.

Usage:
  clip-to-notion init
  clip-to-notion run <url> [--tags a,b]`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(flagDebug, cmd.ErrOrStderr())
		return config.LoadDotEnv()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Config file (default: ~/.config/clip-to-notion/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

// Execute runs the root command. It is the only place that terminates
// the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err)

	var missing *config.MissingError
	if errors.As(err, &missing) {
		fmt.Fprintln(w, "Hint:", missing.Suggestion())
	}
}

// configPath resolves the --config flag or the default location.
func configPath() (string, error) {
	if flagConfigPath != "" {
		return flagConfigPath, nil
	}
	return config.DefaultPath()
}

// loadConfig loads and validates the configuration for a run.
func loadConfig() (config.Config, error) {
	path, err := configPath()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}
