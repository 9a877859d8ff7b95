package cmd

import (
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	// Global flags
	configPath string
	verbose    bool
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var rootCmd = &cobra.Command{
	Use:   "versiongate",
	Short: "Version-bump gate for pull requests",
	Long: `A CI gate that decides whether a pull request's dependency changes
obligate a package version bump, and verifies that the bump happened.

It compares the manifest and lockfile between the base and head revisions,
filters out metadata-only lockfile churn, resolves the files touched by the
PR's commits (honoring an opt-out keyword in commit messages), and fails
the check when a required version increment is missing.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
