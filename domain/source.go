package domain

import "context"

// ChangeSource abstracts the version-control collaborator: everything the
// gate needs to know about a pull request lives behind this interface, so
// the classifiers never touch git or a hosting API directly.
type ChangeSource interface {
	// Name returns the source identifier (e.g. "git", "github").
	Name() string

	// BaseRevision returns the merge-base side of the pull request when the
	// caller did not name one explicitly.
	BaseRevision(ctx context.Context) (string, error)

	// HeadRevision returns the tip of the pull request branch when the
	// caller did not name one explicitly.
	HeadRevision(ctx context.Context) (string, error)

	// FileAtRevision returns the content of a file as it existed at the
	// given revision. The boolean is false when the file did not exist at
	// that revision; that is not an error.
	FileAtRevision(ctx context.Context, path, revision string) (string, bool, error)

	// PullRequestCommits lists the commits that make up the pull request,
	// oldest first. The sanitized revision pair bounds the range for plain
	// git sources; sources that track a hosted pull request may ignore it.
	PullRequestCommits(ctx context.Context, baseRef, headRef string) ([]Commit, error)

	// CommitFiles returns the paths touched by a single commit.
	CommitFiles(ctx context.Context, sha string) ([]string, error)
}
