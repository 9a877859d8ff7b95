package cmd

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/versiongate/application"
	"github.com/rios0rios0/versiongate/config"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	baseRef     string
	headRef     string
	includeDev  bool
	skipKeyword string
	sourceType  string
	repoDir     string
	ghOwner     string
	ghRepo      string
	ghPR        int
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the version-bump gate against a pull request",
	Long: `Classify the dependency changes between the base and head revisions
and verify that the declared package version was incremented when required.

The command exits non-zero when a version bump is required but the
manifest's version field did not increase.`,
	RunE: runCheck,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	checkCmd.Flags().StringVar(&baseRef, "base", "", "Base revision (hex hash; default: last release tag / PR base)")
	checkCmd.Flags().StringVar(&headRef, "head", "", "Head revision (hex hash; default: HEAD / PR head)")
	checkCmd.Flags().BoolVar(&includeDev, "include-dev", false, "Require a bump for devDependencies changes too")
	checkCmd.Flags().StringVar(&skipKeyword, "skip-keyword", "", "Commits whose message contains this keyword are ignored")
	checkCmd.Flags().StringVar(&sourceType, "source", "", "Change source (git, github)")
	checkCmd.Flags().StringVar(&repoDir, "repo-dir", "", "Path to the local checkout (git source)")
	checkCmd.Flags().StringVar(&ghOwner, "owner", "", "Repository owner (github source)")
	checkCmd.Flags().StringVar(&ghRepo, "repo", "", "Repository name (github source)")
	checkCmd.Flags().IntVar(&ghPR, "pr", 0, "Pull request number (github source)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	svc := injectCheckService()

	result, err := svc.Run(ctx, cfg, application.RunOptions{
		BaseRef: baseRef,
		HeadRef: headRef,
		Verbose: verbose,
	})
	if err != nil {
		return err
	}

	if result.BumpRequired && !result.VersionIncremented {
		return fmt.Errorf(
			"version bump required but not found (base %q, head %q)",
			result.BaseVersion, result.HeadVersion,
		)
	}
	return nil
}

// loadConfig reads the configuration file (if any) and applies CLI
// overrides. Running without a config file checks the local checkout in the
// current directory.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	path := configPath
	if path == "" {
		found, err := config.FindConfigFile()
		if err == nil {
			path = found
		}
	}
	if path != "" {
		logger.Infof("Using config file: %s", path)
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	applyFlagOverrides(cmd, cfg)

	if cfg.Source.Type == config.SourceGitHub && cfg.Source.Token == "" {
		cfg.Source.Token = config.TokenFromEnv()
		if cfg.Source.Token == "" {
			return nil, errors.New(
				"no auth token found for the github source; set source.token or GITHUB_TOKEN/GH_TOKEN",
			)
		}
	}

	return cfg, nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if sourceType != "" {
		cfg.Source.Type = sourceType
	}
	if repoDir != "" {
		cfg.Source.RepoDir = repoDir
	}
	if ghOwner != "" {
		cfg.Source.Owner = ghOwner
	}
	if ghRepo != "" {
		cfg.Source.Repo = ghRepo
	}
	if ghPR != 0 {
		cfg.Source.PullRequest = ghPR
	}
	if cmd.Flags().Changed("include-dev") {
		cfg.Check.IncludeDevDependencies = includeDev
	}
	if cmd.Flags().Changed("skip-keyword") {
		cfg.Check.SkipKeyword = skipKeyword
	}
}
