// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for freight.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"freight-cli/internal/config"
	"freight-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "freight",
		Short: "Publish packages and documentation to the freight registry",
		Long: TitleStyle.Render("freight") + SubtitleStyle.Render(" - package publishing for the freight registry") + `

freight packages your project into a reproducible release tarball,
builds its documentation, and publishes both to the freight registry.
Published versions can be reverted (un-published) within the
registry's grace window.

Projects are described by a 'freight.toml' manifest in the project
root.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'freight init' to create a freight.toml
  2. Fill in name, version, and the files to publish
  3. Run 'freight publish' to publish the package and its docs

` + SubtitleStyle.Render("Examples:") + `
  freight publish                  Publish the package and its docs
  freight publish package          Publish only the package
  freight publish docs             Build and publish only the docs
  freight publish --revert 1.2.3   Revert a published version
  freight build                    Build the release tarball locally
  freight config show              Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/freight/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(newPublishCommand())
	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newCompletionCommand())
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
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

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	// Load configuration. A broken config file must never block the command;
	// defaults apply and the problem is surfaced as a warning.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
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
