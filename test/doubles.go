// Package testdoubles provides hand-crafted test doubles for the domain
// interfaces, used in place of a mock framework.
package testdoubles

import (
	"context"
	"fmt"
	"sync"

	"github.com/rios0rios0/versiongate/domain"
)

// ---------------------------------------------------------------------------
// SpyChangeSource
// ---------------------------------------------------------------------------

// SpyChangeSource implements domain.ChangeSource as a configurable spy.
// Configure the response fields for the methods your test exercises, then
// inspect the call-tracking fields to verify behavior. CommitFiles is safe
// for concurrent callers since the aggregator fans out per commit.
type SpyChangeSource struct {
	mu sync.Mutex

	// --- identity ---
	SourceName string

	// --- BaseRevision / HeadRevision ---
	Base    string
	BaseErr error
	Head    string
	HeadErr error

	// --- FileAtRevision ---
	// revision -> path -> content; a missing path reports found=false
	Files   map[string]map[string]string
	FileErr error
	// spy: "revision:path" pairs requested
	FetchedFiles []string

	// --- PullRequestCommits ---
	Commits    []domain.Commit
	CommitsErr error

	// --- CommitFiles ---
	CommitFileLists map[string][]string // sha -> files
	CommitFilesErrs map[string]error    // sha -> error
	// spy: SHAs requested
	CommitFilesCalls []string
}

var _ domain.ChangeSource = (*SpyChangeSource)(nil)

func (s *SpyChangeSource) Name() string {
	if s.SourceName == "" {
		return "spy"
	}
	return s.SourceName
}

func (s *SpyChangeSource) BaseRevision(_ context.Context) (string, error) {
	return s.Base, s.BaseErr
}

func (s *SpyChangeSource) HeadRevision(_ context.Context) (string, error) {
	return s.Head, s.HeadErr
}

func (s *SpyChangeSource) FileAtRevision(
	_ context.Context,
	path, revision string,
) (string, bool, error) {
	s.mu.Lock()
	s.FetchedFiles = append(s.FetchedFiles, revision+":"+path)
	s.mu.Unlock()

	if s.FileErr != nil {
		return "", false, s.FileErr
	}
	if atRevision, ok := s.Files[revision]; ok {
		if content, found := atRevision[path]; found {
			return content, true, nil
		}
	}
	return "", false, nil
}

func (s *SpyChangeSource) PullRequestCommits(
	_ context.Context,
	_, _ string,
) ([]domain.Commit, error) {
	return s.Commits, s.CommitsErr
}

func (s *SpyChangeSource) CommitFiles(_ context.Context, sha string) ([]string, error) {
	s.mu.Lock()
	s.CommitFilesCalls = append(s.CommitFilesCalls, sha)
	s.mu.Unlock()

	if err, ok := s.CommitFilesErrs[sha]; ok {
		return nil, err
	}
	if files, ok := s.CommitFileLists[sha]; ok {
		return files, nil
	}
	return nil, nil
}

// ---------------------------------------------------------------------------
// SpyLogger
// ---------------------------------------------------------------------------

// SpyLogger implements domain.Logger and records every formatted message per
// severity, so tests can assert that warnings were (or were not) emitted.
type SpyLogger struct {
	mu sync.Mutex

	DebugMessages []string
	InfoMessages  []string
	WarnMessages  []string
	ErrorMessages []string
}

var _ domain.Logger = (*SpyLogger)(nil)

func (l *SpyLogger) Debugf(format string, args ...any) {
	l.record(&l.DebugMessages, format, args...)
}

func (l *SpyLogger) Infof(format string, args ...any) {
	l.record(&l.InfoMessages, format, args...)
}

func (l *SpyLogger) Warnf(format string, args ...any) {
	l.record(&l.WarnMessages, format, args...)
}

func (l *SpyLogger) Errorf(format string, args ...any) {
	l.record(&l.ErrorMessages, format, args...)
}

func (l *SpyLogger) record(bucket *[]string, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*bucket = append(*bucket, fmt.Sprintf(format, args...))
}
