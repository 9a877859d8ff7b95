package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/versiongate/application"
	"github.com/rios0rios0/versiongate/domain"
	testdoubles "github.com/rios0rios0/versiongate/test"
	"github.com/rios0rios0/versiongate/test/domain/entitybuilders"
)

func TestResolveChangedFiles(t *testing.T) {
	t.Parallel()

	t.Run("should union files from non-skipped commits only", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		src := &testdoubles.SpyChangeSource{
			CommitFileLists: map[string][]string{
				"aaaaaaa": {"a.js"},
				"bbbbbbb": {"b.js"},
				"ccccccc": {"a.js"},
			},
		}
		builder := entitybuilders.NewCommitBuilder()
		commits := []domain.Commit{
			builder.WithSHA("aaaaaaa").WithMessage("chore: generated assets [no-version-check]").BuildCommit(),
			builder.WithSHA("bbbbbbb").WithMessage("feat: add endpoint").BuildCommit(),
			builder.WithSHA("ccccccc").WithMessage("fix: handler").BuildCommit(),
		}
		log := &testdoubles.SpyLogger{}

		// when
		changed := application.ResolveChangedFiles(ctx, commits, "[no-version-check]", src.CommitFiles, log)

		// then: a.js still appears because commit 3 (not skipped) touched it
		assert.Equal(t, []string{"a.js", "b.js"}, changed.Files)
		assert.Equal(t, 1, changed.SkippedCommits)
		assert.Equal(t, 3, changed.TotalCommits)
		assert.NotContains(t, src.CommitFilesCalls, "aaaaaaa")
	})

	t.Run("should match the skip keyword case-insensitively", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		src := &testdoubles.SpyChangeSource{
			CommitFileLists: map[string][]string{"aaaaaaa": {"a.js"}},
		}
		commits := []domain.Commit{
			{SHA: "aaaaaaa", Message: "chore: stuff [SKIP-Version]"},
		}

		// when
		changed := application.ResolveChangedFiles(
			ctx, commits, "[skip-version]", src.CommitFiles, &testdoubles.SpyLogger{},
		)

		// then
		assert.Empty(t, changed.Files)
		assert.Equal(t, 1, changed.SkippedCommits)
	})

	t.Run("should disable skipping when the keyword is empty", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		src := &testdoubles.SpyChangeSource{
			CommitFileLists: map[string][]string{"aaaaaaa": {"a.js"}},
		}
		commits := []domain.Commit{
			{SHA: "aaaaaaa", Message: "anything at all"},
		}

		// when
		changed := application.ResolveChangedFiles(
			ctx, commits, "", src.CommitFiles, &testdoubles.SpyLogger{},
		)

		// then
		assert.Equal(t, []string{"a.js"}, changed.Files)
		assert.Zero(t, changed.SkippedCommits)
	})

	t.Run("should deduplicate a path touched by two commits", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		src := &testdoubles.SpyChangeSource{
			CommitFileLists: map[string][]string{
				"aaaaaaa": {"x.js"},
				"bbbbbbb": {"x.js"},
			},
		}
		builder := entitybuilders.NewCommitBuilder()
		commits := []domain.Commit{
			builder.WithSHA("aaaaaaa").WithMessage("feat: one").BuildCommit(),
			builder.WithSHA("bbbbbbb").WithMessage("feat: two").BuildCommit(),
		}

		// when
		changed := application.ResolveChangedFiles(
			ctx, commits, "", src.CommitFiles, &testdoubles.SpyLogger{},
		)

		// then
		assert.Equal(t, []string{"x.js"}, changed.Files)
	})

	t.Run("should isolate a single commit's fetch failure", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		src := &testdoubles.SpyChangeSource{
			CommitFileLists: map[string][]string{"bbbbbbb": {"b.js"}},
			CommitFilesErrs: map[string]error{"aaaaaaa": errors.New("api timeout")},
		}
		commits := []domain.Commit{
			{SHA: "aaaaaaa", Message: "feat: one"},
			{SHA: "bbbbbbb", Message: "feat: two"},
		}
		log := &testdoubles.SpyLogger{}

		// when
		changed := application.ResolveChangedFiles(ctx, commits, "", src.CommitFiles, log)

		// then: the failing commit contributes nothing, the rest survives
		assert.Equal(t, []string{"b.js"}, changed.Files)
		require.Len(t, log.WarnMessages, 1)
		assert.Contains(t, log.WarnMessages[0], "aaaaaaa")
	})

	t.Run("should handle an empty commit list", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		src := &testdoubles.SpyChangeSource{}

		// when
		changed := application.ResolveChangedFiles(
			ctx, nil, "skip", src.CommitFiles, &testdoubles.SpyLogger{},
		)

		// then
		assert.Empty(t, changed.Files)
		assert.Zero(t, changed.TotalCommits)
	})
}
