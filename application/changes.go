package application

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/versiongate/domain"
)

// FileFetcher returns the paths touched by a single commit.
type FileFetcher func(ctx context.Context, sha string) ([]string, error)

// ResolveChangedFiles partitions the pull request's commits by the skip
// keyword, fetches the file list of every non-skipped commit, and unions the
// results. Fetches run concurrently since they are independent reads; each
// goroutine writes only its own slot and the merge happens after the join,
// so the dedup set never sees concurrent writers.
//
// A single commit's fetch failure is isolated: that commit contributes an
// empty file list and the aggregation carries on. One flaky lookup must not
// fail the whole PR check.
func ResolveChangedFiles(
	ctx context.Context,
	commits []domain.Commit,
	skipKeyword string,
	fetch FileFetcher,
	log domain.Logger,
) domain.ChangedFiles {
	included, skipped := partitionCommits(commits, skipKeyword)

	perCommit := make([][]string, len(included))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, commit := range included {
		group.Go(func() error {
			files, err := fetch(groupCtx, commit.SHA)
			if err != nil {
				log.Warnf("Failed to list files for commit %s: %v (treating as empty)", commit.SHA, err)
				return nil
			}
			perCommit[i] = files
			return nil
		})
	}
	// Individual failures are swallowed above, so the only purpose of Wait
	// here is the join.
	_ = group.Wait()

	seen := make(map[string]struct{})
	for _, files := range perCommit {
		for _, file := range files {
			seen[file] = struct{}{}
		}
	}

	union := make([]string, 0, len(seen))
	for file := range seen {
		union = append(union, file)
	}
	sort.Strings(union)

	return domain.ChangedFiles{
		Files:          union,
		SkippedCommits: skipped,
		TotalCommits:   len(commits),
	}
}

// partitionCommits returns the commits whose files should be aggregated and
// the number of commits excluded by the skip keyword. The keyword match is a
// case-insensitive substring check; an empty keyword disables skipping.
func partitionCommits(commits []domain.Commit, skipKeyword string) ([]domain.Commit, int) {
	if skipKeyword == "" {
		return commits, 0
	}

	keyword := strings.ToLower(skipKeyword)
	included := make([]domain.Commit, 0, len(commits))
	skipped := 0

	for _, commit := range commits {
		if strings.Contains(strings.ToLower(commit.Message), keyword) {
			skipped++
			continue
		}
		included = append(included, commit)
	}

	return included, skipped
}
