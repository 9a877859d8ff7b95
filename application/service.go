package application

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/versiongate/config"
	"github.com/rios0rios0/versiongate/domain"
	sourcePkg "github.com/rios0rios0/versiongate/infrastructure/source"
)

// CheckService orchestrates one gate evaluation: sanitize the revision
// pair, classify the manifest and lockfile deltas, aggregate the commit
// file lists, and combine everything into a verdict.
type CheckService struct {
	sourceRegistry *sourcePkg.Registry
	log            domain.Logger
}

// NewCheckService creates a new service with the given source registry and
// injected logger.
func NewCheckService(sourceRegistry *sourcePkg.Registry, log domain.Logger) *CheckService {
	return &CheckService{
		sourceRegistry: sourceRegistry,
		log:            log,
	}
}

// RunOptions holds per-invocation overrides from the CLI.
type RunOptions struct {
	BaseRef string // empty: ask the source
	HeadRef string // empty: ask the source
	Verbose bool
}

// Run executes the full gate evaluation. Sanitizer failures propagate;
// parse and collaborator failures inside the classification path are
// converted into a conservative "assume change" verdict so the caller
// always receives a result from the dependency-change path.
func (s *CheckService) Run(
	ctx context.Context,
	cfg *config.Config,
	opts RunOptions,
) (*domain.CheckResult, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	src, err := s.sourceRegistry.Get(cfg.Source.Type, sourcePkg.Config{
		RepoDir:     cfg.Source.RepoDir,
		Owner:       cfg.Source.Owner,
		Repo:        cfg.Source.Repo,
		PullRequest: cfg.Source.PullRequest,
		Token:       cfg.Source.Token,
	}, s.log)
	if err != nil {
		return nil, fmt.Errorf("failed to create source: %w", err)
	}

	baseRef, headRef, err := s.resolveRevisions(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Checking %s..%s via %s source", shortRef(baseRef), shortRef(headRef), src.Name())

	manifestPath, err := domain.SanitizeFilePath(cfg.Check.ManifestPath, "manifest path")
	if err != nil {
		return nil, err
	}
	lockfilePath, err := domain.SanitizeFilePath(cfg.Check.LockfilePath, "lockfile path")
	if err != nil {
		return nil, err
	}

	includeDev := cfg.Check.IncludeDevDependencies

	manifestVerdict, baseManifest, headManifest := s.classifyManifest(
		ctx, src, manifestPath, baseRef, headRef, includeDev,
	)
	lockfileVerdict := s.classifyLockfile(ctx, src, lockfilePath, baseRef, headRef, includeDev)

	result := &domain.CheckResult{
		Dependency:  combineVerdicts(manifestVerdict, lockfileVerdict),
		BaseVersion: baseManifest.Version(),
		HeadVersion: headManifest.Version(),
	}
	result.VersionIncremented = VersionIncremented(result.BaseVersion, result.HeadVersion, s.log)

	s.aggregateChangedFiles(ctx, src, cfg.Check.SkipKeyword, baseRef, headRef, result)

	result.BumpRequired = result.Dependency.HasChanges || len(result.RelevantFiles) > 0

	s.logVerdict(result)
	return result, nil
}

// ResolveFiles runs only the commit-scoped aggregation and the relevance
// filter. Unlike Run it propagates the commit-listing failure: this is the
// debugging surface, not the gate.
func (s *CheckService) ResolveFiles(
	ctx context.Context,
	cfg *config.Config,
	opts RunOptions,
) (domain.ChangedFiles, []string, error) {
	src, err := s.sourceRegistry.Get(cfg.Source.Type, sourcePkg.Config{
		RepoDir:     cfg.Source.RepoDir,
		Owner:       cfg.Source.Owner,
		Repo:        cfg.Source.Repo,
		PullRequest: cfg.Source.PullRequest,
		Token:       cfg.Source.Token,
	}, s.log)
	if err != nil {
		return domain.ChangedFiles{}, nil, fmt.Errorf("failed to create source: %w", err)
	}

	baseRef, headRef, err := s.resolveRevisions(ctx, src, opts)
	if err != nil {
		return domain.ChangedFiles{}, nil, err
	}

	commits, err := src.PullRequestCommits(ctx, baseRef, headRef)
	if err != nil {
		return domain.ChangedFiles{}, nil, fmt.Errorf("failed to list pull request commits: %w", err)
	}

	changed := ResolveChangedFiles(ctx, commits, cfg.Check.SkipKeyword, src.CommitFiles, s.log)

	var relevant []string
	for _, file := range changed.Files {
		if domain.IsRelevantPath(file) {
			relevant = append(relevant, file)
		}
	}
	return changed, relevant, nil
}

// resolveRevisions fills in missing revision identifiers from the source
// and sanitizes both before they cross into the collaborator.
func (s *CheckService) resolveRevisions(
	ctx context.Context,
	src domain.ChangeSource,
	opts RunOptions,
) (string, string, error) {
	baseRef := opts.BaseRef
	if baseRef == "" {
		resolved, err := src.BaseRevision(ctx)
		if err != nil {
			return "", "", fmt.Errorf("failed to resolve base revision: %w", err)
		}
		baseRef = resolved
	}

	headRef := opts.HeadRef
	if headRef == "" {
		resolved, err := src.HeadRevision(ctx)
		if err != nil {
			return "", "", fmt.Errorf("failed to resolve head revision: %w", err)
		}
		headRef = resolved
	}

	baseRef, err := domain.SanitizeReference(baseRef, "base")
	if err != nil {
		return "", "", err
	}
	headRef, err = domain.SanitizeReference(headRef, "head")
	if err != nil {
		return "", "", err
	}
	return baseRef, headRef, nil
}

// classifyManifest fetches and classifies the manifest pair. Fetch or parse
// failures yield the conservative verdict: the classifier cannot prove the
// absence of a functional change, so it must not wave the PR through.
func (s *CheckService) classifyManifest(
	ctx context.Context,
	src domain.ChangeSource,
	path, baseRef, headRef string,
	includeDev bool,
) (domain.ChangeVerdict, domain.Manifest, domain.Manifest) {
	conservative := domain.ChangeVerdict{ProductionChanged: true}

	baseContent, baseFound, err := src.FileAtRevision(ctx, path, baseRef)
	if err != nil {
		s.log.Warnf("Failed to fetch %s at base: %v (assuming a production change)", path, err)
		return conservative, nil, nil
	}
	headContent, headFound, err := src.FileAtRevision(ctx, path, headRef)
	if err != nil {
		s.log.Warnf("Failed to fetch %s at head: %v (assuming a production change)", path, err)
		return conservative, nil, nil
	}

	if !baseFound && !headFound {
		s.log.Debugf("%s absent at both revisions", path)
		return domain.ChangeVerdict{}, nil, nil
	}

	baseManifest, headManifest := s.parseManifestPair(path, baseContent, headContent, baseFound, headFound)

	// File added or removed between revisions: the pair is changed, but the
	// surviving snapshot still supplies version information.
	if baseFound != headFound {
		return conservative, baseManifest, headManifest
	}

	if baseManifest == nil || headManifest == nil {
		// Parse failure already logged.
		return conservative, baseManifest, headManifest
	}

	verdict := domain.ClassifyManifestChange(baseManifest, headManifest, includeDev)
	return verdict, baseManifest, headManifest
}

func (s *CheckService) parseManifestPair(
	path, baseContent, headContent string,
	baseFound, headFound bool,
) (domain.Manifest, domain.Manifest) {
	var baseManifest, headManifest domain.Manifest

	if baseFound {
		parsed, err := domain.ParseManifest(baseContent)
		if err != nil {
			s.log.Warnf("Base %s: %v (assuming a production change)", path, err)
		}
		baseManifest = parsed
	}
	if headFound {
		parsed, err := domain.ParseManifest(headContent)
		if err != nil {
			s.log.Warnf("Head %s: %v (assuming a production change)", path, err)
		}
		headManifest = parsed
	}
	return baseManifest, headManifest
}

// classifyLockfile mirrors classifyManifest for the lockfile pair.
func (s *CheckService) classifyLockfile(
	ctx context.Context,
	src domain.ChangeSource,
	path, baseRef, headRef string,
	includeDev bool,
) domain.LockfileVerdict {
	conservative := domain.LockfileVerdict{ProductionChanged: true}

	baseContent, baseFound, err := src.FileAtRevision(ctx, path, baseRef)
	if err != nil {
		s.log.Warnf("Failed to fetch %s at base: %v (assuming a production change)", path, err)
		return conservative
	}
	headContent, headFound, err := src.FileAtRevision(ctx, path, headRef)
	if err != nil {
		s.log.Warnf("Failed to fetch %s at head: %v (assuming a production change)", path, err)
		return conservative
	}

	if !baseFound && !headFound {
		s.log.Debugf("%s absent at both revisions", path)
		return domain.LockfileVerdict{}
	}
	if baseFound != headFound {
		return conservative
	}

	baseLock, err := domain.ParseLockfile(baseContent)
	if err != nil {
		s.log.Warnf("Base %s: %v (assuming a production change)", path, err)
		return conservative
	}
	headLock, err := domain.ParseLockfile(headContent)
	if err != nil {
		s.log.Warnf("Head %s: %v (assuming a production change)", path, err)
		return conservative
	}

	verdict := domain.ClassifyLockfileChange(baseLock, headLock, includeDev)
	if verdict.AllMetadataOnly {
		s.log.Debugf("%s deltas were all metadata-only, ignoring", path)
	}
	return verdict
}

// aggregateChangedFiles lists the PR's commits, resolves their file lists,
// and stores the relevance-filtered union on the result. A failure listing
// the commits themselves forces the conservative outcome.
func (s *CheckService) aggregateChangedFiles(
	ctx context.Context,
	src domain.ChangeSource,
	skipKeyword, baseRef, headRef string,
	result *domain.CheckResult,
) {
	commits, err := src.PullRequestCommits(ctx, baseRef, headRef)
	if err != nil {
		s.log.Warnf("Failed to list pull request commits: %v (requiring a version check)", err)
		result.Dependency.HasChanges = true
		result.Dependency.OnlyDevDependencies = false
		return
	}

	changed := ResolveChangedFiles(ctx, commits, skipKeyword, src.CommitFiles, s.log)
	result.SkippedCommits = changed.SkippedCommits
	result.TotalCommits = changed.TotalCommits

	for _, file := range changed.Files {
		if domain.IsRelevantPath(file) {
			result.RelevantFiles = append(result.RelevantFiles, file)
		}
	}
	s.log.Debugf(
		"Resolved %d changed files (%d relevant, %d of %d commits skipped)",
		len(changed.Files), len(result.RelevantFiles), changed.SkippedCommits, changed.TotalCommits,
	)
}

// combineVerdicts folds the manifest and lockfile verdicts into the single
// dependency verdict handed to the outer workflow.
func combineVerdicts(
	manifest domain.ChangeVerdict,
	lockfile domain.LockfileVerdict,
) domain.DependencyVerdict {
	hasChanges := manifest.ProductionChanged || lockfile.ProductionChanged
	return domain.DependencyVerdict{
		HasChanges:          hasChanges,
		OnlyDevDependencies: !hasChanges && (manifest.DevChanged || lockfile.DevChanged),
	}
}

func (s *CheckService) logVerdict(result *domain.CheckResult) {
	switch {
	case !result.BumpRequired && result.Dependency.OnlyDevDependencies:
		s.log.Infof("Only developer dependencies changed, no version bump required")
	case !result.BumpRequired:
		s.log.Infof("No meaningful changes detected, no version bump required")
	case result.VersionIncremented:
		s.log.Infof(
			"Version bump required and satisfied: %s -> %s",
			result.BaseVersion, result.HeadVersion,
		)
	default:
		s.log.Warnf(
			"Version bump required but the declared version did not increase (base %q, head %q)",
			result.BaseVersion, result.HeadVersion,
		)
	}
}

func shortRef(ref string) string {
	const short = 12
	if len(ref) > short {
		return ref[:short]
	}
	return ref
}
