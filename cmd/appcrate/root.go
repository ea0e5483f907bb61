// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for appcrate.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"appcrate-cli/internal/config"
	"appcrate-cli/internal/issue"

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

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// engineFlag overrides the configured container engine
	engineFlag string

	// loadedCfg is the configuration resolved by initRootConfig. It is
	// never nil after initialization; config errors fall back to defaults.
	loadedCfg = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "appcrate",
		Short: "Package single-file apps into runnable container snapshots",
		Long: TitleStyle.Render("appcrate") + SubtitleStyle.Render(" - Package single-file apps into runnable container snapshots") + `

appcrate takes one application file plus a plain-text dependency manifest
and bakes them into an immutable container image: base runtime, installed
dependencies, the app file, and a fixed entry command. Running a snapshot
always starts from that exact state.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Write your app as a single file (bot.py, tool.js, script.rb, ...)
  2. List its dependencies one per line in a manifest next to it
  3. Build and run with: appcrate up bot.py

` + SubtitleStyle.Render("Examples:") + `
  appcrate build bot.py     Build a snapshot image
  appcrate run bot.py       Run an already-built snapshot
  appcrate up bot.py        Build if needed, then run
  appcrate inspect bot.py   Show the planned Dockerfile and tag
  appcrate images           List snapshots managed by appcrate`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/appcrate/config.toml)")
	rootCmd.PersistentFlags().StringVar(&engineFlag, "engine", "", "container engine to use (auto, podman, docker)")

	// Add subcommands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(imagesCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
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
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	cfg, _, err := config.LoadWithPath(context.Background(), config.LoadOptions{
		ConfigFilePath: cfgFile,
	})
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		return
	}

	loadedCfg = cfg

	// Apply verbose from config if not set via flag
	if !verbose {
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

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
