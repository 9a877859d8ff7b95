// Package git implements domain.ChangeSource on top of a local repository
// checkout using go-git. No git binary is invoked; revisions and paths are
// still sanitized upstream because they name objects inside the repository.
package git

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/rios0rios0/versiongate/domain"
	"github.com/rios0rios0/versiongate/infrastructure/source"
)

const sourceName = "git"

// Source reads pull request data from a local repository checkout.
type Source struct {
	repo *gogit.Repository
	log  domain.Logger
}

// New opens the repository at cfg.RepoDir.
func New(cfg source.Config, log domain.Logger) (domain.ChangeSource, error) {
	repo, err := gogit.PlainOpen(cfg.RepoDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %q: %w", cfg.RepoDir, err)
	}
	return &Source{repo: repo, log: log}, nil
}

func (s *Source) Name() string { return sourceName }

// HeadRevision returns the commit the working tree currently points at.
func (s *Source) HeadRevision(_ context.Context) (string, error) {
	head, err := s.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// BaseRevision returns the commit of the most recent semantic-version tag,
// i.e. the last released state of the package.
func (s *Source) BaseRevision(_ context.Context) (string, error) {
	hash, tag, err := s.latestReleaseTag()
	if err != nil {
		return "", err
	}
	s.log.Infof("Using latest release tag %q as base revision", tag)
	return hash.String(), nil
}

// FileAtRevision returns the content of a file at the given revision, or
// found=false when the file did not exist there.
func (s *Source) FileAtRevision(_ context.Context, path, revision string) (string, bool, error) {
	commit, err := s.commitAt(revision)
	if err != nil {
		return "", false, err
	}

	file, err := commit.File(path)
	if errors.Is(err, object.ErrFileNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q at %s: %w", path, revision, err)
	}

	content, err := file.Contents()
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q at %s: %w", path, revision, err)
	}
	return content, true, nil
}

// PullRequestCommits walks the history from head down to base and returns
// the commits in between, oldest first. The base is expected to be an
// ancestor of head (the branch was rebased or freshly cut).
func (s *Source) PullRequestCommits(_ context.Context, baseRef, headRef string) ([]domain.Commit, error) {
	baseCommit, err := s.commitAt(baseRef)
	if err != nil {
		return nil, err
	}
	headCommit, err := s.commitAt(headRef)
	if err != nil {
		return nil, err
	}

	iter, err := s.repo.Log(&gogit.LogOptions{From: headCommit.Hash})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history from %s: %w", headRef, err)
	}
	defer iter.Close()

	var commits []domain.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if c.Hash == baseCommit.Hash {
			return storer.ErrStop
		}
		commits = append(commits, domain.Commit{
			SHA:     c.Hash.String(),
			Message: c.Message,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history from %s: %w", headRef, err)
	}

	// The log walks newest-first; callers expect oldest-first.
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
	return commits, nil
}

// CommitFiles returns the paths touched by a single commit, diffed against
// its first parent. A root commit contributes every file in its tree.
func (s *Source) CommitFiles(ctx context.Context, sha string) ([]string, error) {
	commit, err := s.commitAt(sha)
	if err != nil {
		return nil, err
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load tree of %s: %w", sha, err)
	}

	if commit.NumParents() == 0 {
		return allTreeFiles(tree)
	}

	parent, err := commit.Parent(0)
	if err != nil {
		return nil, fmt.Errorf("failed to load parent of %s: %w", sha, err)
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load parent tree of %s: %w", sha, err)
	}

	changes, err := parentTree.DiffContext(ctx, tree)
	if err != nil {
		return nil, fmt.Errorf("failed to diff %s against its parent: %w", sha, err)
	}

	files := make([]string, 0, len(changes))
	for _, change := range changes {
		name := change.To.Name
		if name == "" {
			// Deletion: only the From side carries the path.
			name = change.From.Name
		}
		files = append(files, name)
	}
	return files, nil
}

// commitAt resolves a (possibly abbreviated) hash to its commit object.
func (s *Source) commitAt(revision string) (*object.Commit, error) {
	hash, err := s.repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %q: %w", revision, err)
	}
	commit, err := s.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %q: %w", revision, err)
	}
	return commit, nil
}

func allTreeFiles(tree *object.Tree) ([]string, error) {
	var files []string
	err := tree.Files().ForEach(func(f *object.File) error {
		files = append(files, f.Name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tree files: %w", err)
	}
	return files, nil
}
