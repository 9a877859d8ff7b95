// Package github implements domain.ChangeSource against the GitHub API for
// a specific pull request, for use inside CI where no full local history is
// available.
package github

import (
	"context"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/versiongate/domain"
	"github.com/rios0rios0/versiongate/infrastructure/source"
)

const (
	sourceName = "github"
	perPage    = 100
)

// Source reads pull request data from the GitHub API.
type Source struct {
	client *gh.Client
	owner  string
	repo   string
	number int
	log    domain.Logger
}

// New creates a GitHub source for the pull request named in cfg.
func New(cfg source.Config, log domain.Logger) (domain.ChangeSource, error) {
	if cfg.Owner == "" || cfg.Repo == "" || cfg.PullRequest <= 0 {
		return nil, fmt.Errorf(
			"github source requires owner, repo and pull request number, got %q/%q #%d",
			cfg.Owner, cfg.Repo, cfg.PullRequest,
		)
	}

	client := gh.NewClient(nil)
	if cfg.Token != "" {
		client = client.WithAuthToken(cfg.Token)
	}

	return &Source{
		client: client,
		owner:  cfg.Owner,
		repo:   cfg.Repo,
		number: cfg.PullRequest,
		log:    log,
	}, nil
}

func (s *Source) Name() string { return sourceName }

// BaseRevision returns the SHA of the pull request's base branch tip.
func (s *Source) BaseRevision(ctx context.Context) (string, error) {
	pr, err := s.pullRequest(ctx)
	if err != nil {
		return "", err
	}
	return pr.GetBase().GetSHA(), nil
}

// HeadRevision returns the SHA of the pull request's head.
func (s *Source) HeadRevision(ctx context.Context) (string, error) {
	pr, err := s.pullRequest(ctx)
	if err != nil {
		return "", err
	}
	return pr.GetHead().GetSHA(), nil
}

// FileAtRevision fetches file content at a ref via the contents API.
func (s *Source) FileAtRevision(ctx context.Context, path, revision string) (string, bool, error) {
	fileContent, _, resp, err := s.client.Repositories.GetContents(
		ctx, s.owner, s.repo, path,
		&gh.RepositoryContentGetOptions{Ref: revision},
	)
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to fetch %q at %s: %w", path, revision, err)
	}
	if fileContent == nil {
		// The path resolved to a directory.
		return "", false, nil
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", false, fmt.Errorf("failed to decode %q at %s: %w", path, revision, err)
	}
	return content, true, nil
}

// PullRequestCommits lists the PR's commits. The revision hints are ignored:
// the hosted pull request itself defines the range.
func (s *Source) PullRequestCommits(ctx context.Context, _, _ string) ([]domain.Commit, error) {
	var commits []domain.Commit
	opts := &gh.ListOptions{PerPage: perPage}

	for {
		page, resp, err := s.client.PullRequests.ListCommits(
			ctx, s.owner, s.repo, s.number, opts,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits of PR #%d: %w", s.number, err)
		}

		for _, rc := range page {
			commits = append(commits, domain.Commit{
				SHA:     rc.GetSHA(),
				Message: rc.GetCommit().GetMessage(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return commits, nil
}

// CommitFiles returns the paths touched by a single commit.
func (s *Source) CommitFiles(ctx context.Context, sha string) ([]string, error) {
	var files []string
	opts := &gh.ListOptions{PerPage: perPage}

	for {
		commit, resp, err := s.client.Repositories.GetCommit(
			ctx, s.owner, s.repo, sha, opts,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch commit %s: %w", sha, err)
		}

		for _, file := range commit.Files {
			files = append(files, file.GetFilename())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return files, nil
}

func (s *Source) pullRequest(ctx context.Context) (*gh.PullRequest, error) {
	pr, _, err := s.client.PullRequests.Get(ctx, s.owner, s.repo, s.number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch PR #%d: %w", s.number, err)
	}
	return pr, nil
}
