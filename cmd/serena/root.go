// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for serena.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Raheem-19/serena/internal/config"
	"github.com/Raheem-19/serena/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "serena",
		Short: "Bootstrap and launch the Serena dashboard",
		Long: TitleStyle.Render("serena") + SubtitleStyle.Render(" - AI-powered coding agent toolkit") + `

serena bootstraps everything the dashboard needs: it verifies a Python 3
interpreter is available, provisions an isolated virtual environment,
installs the serena package in editable mode along with the dashboard
packages, and hands control to the long-running dashboard process.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'serena install' once from the repository root
  2. Run 'serena run' to start the dashboard
  3. Open the printed dashboard URL in your browser

` + SubtitleStyle.Render("Examples:") + `
  serena install            Provision the environment and install packages
  serena run                Launch the dashboard
  serena config show        Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/serena/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig applies the --config override before any command loads
// configuration.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}
}

// loadConfig loads the configuration, falling back to defaults with a
// warning when the config file cannot be read.
func loadConfig() *config.Config {
	cfg, path, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		cfg = config.DefaultConfig()
	}

	// Apply verbose from config if not set via flag
	if cfg.UI.Verbose && !verbose {
		verbose = true
	}

	if path != "" {
		newLogger().Debug("configuration loaded", "path", path)
	}
	return cfg
}

// newLogger creates the diagnostic logger on stderr; user-facing status
// lines go to stdout instead.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "serena",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
