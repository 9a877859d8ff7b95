package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/versiongate/application"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the changed files the gate would consider",
	Long: `Resolve the file lists of the pull request's commits (honoring the
skip keyword), union them, and print every path together with whether the
relevance filter keeps it. Useful for debugging why a PR does or does not
trigger the version check.`,
	RunE: runFiles,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	filesCmd.Flags().StringVar(&baseRef, "base", "", "Base revision (hex hash; default: last release tag / PR base)")
	filesCmd.Flags().StringVar(&headRef, "head", "", "Head revision (hex hash; default: HEAD / PR head)")
	filesCmd.Flags().StringVar(&skipKeyword, "skip-keyword", "", "Commits whose message contains this keyword are ignored")
	filesCmd.Flags().StringVar(&sourceType, "source", "", "Change source (git, github)")
	filesCmd.Flags().StringVar(&repoDir, "repo-dir", "", "Path to the local checkout (git source)")
	filesCmd.Flags().StringVar(&ghOwner, "owner", "", "Repository owner (github source)")
	filesCmd.Flags().StringVar(&ghRepo, "repo", "", "Repository name (github source)")
	filesCmd.Flags().IntVar(&ghPR, "pr", 0, "Pull request number (github source)")
	rootCmd.AddCommand(filesCmd)
}

func runFiles(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	svc := injectCheckService()

	changed, relevant, err := svc.ResolveFiles(ctx, cfg, application.RunOptions{
		BaseRef: baseRef,
		HeadRef: headRef,
		Verbose: verbose,
	})
	if err != nil {
		return err
	}

	relevantSet := make(map[string]bool, len(relevant))
	for _, file := range relevant {
		relevantSet[file] = true
	}

	for _, file := range changed.Files {
		marker := " "
		if relevantSet[file] {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, file)
	}
	fmt.Printf(
		"\n%d files (%d relevant), %d of %d commits skipped\n",
		len(changed.Files), len(relevant), changed.SkippedCommits, changed.TotalCommits,
	)
	return nil
}
