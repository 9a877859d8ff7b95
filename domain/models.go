package domain

// Commit represents a single commit in the pull request under evaluation.
type Commit struct {
	SHA     string
	Message string
}

// ChangeVerdict is the result of comparing the dependency sections of two
// manifest snapshots.
type ChangeVerdict struct {
	ProductionChanged bool
	DevChanged        bool
}

// LockfileVerdict is the result of comparing two lockfile snapshots after
// the metadata-only filter has run.
type LockfileVerdict struct {
	ProductionChanged bool
	DevChanged        bool
	// AllMetadataOnly is true when the snapshots differed but every delta
	// was filtered out as metadata-only (flag flips, hash normalization).
	AllMetadataOnly bool
}

// DependencyVerdict is the combined manifest+lockfile verdict handed to the
// outer workflow.
type DependencyVerdict struct {
	HasChanges          bool
	OnlyDevDependencies bool
}

// ChangedFiles is the aggregated file list resolved from the pull request's
// non-skipped commits.
type ChangedFiles struct {
	Files          []string // deduplicated, sorted
	SkippedCommits int
	TotalCommits   int
}

// CheckResult is the full outcome of one gate evaluation.
type CheckResult struct {
	Dependency         DependencyVerdict
	RelevantFiles      []string
	SkippedCommits     int
	TotalCommits       int
	BumpRequired       bool
	BaseVersion        string
	HeadVersion        string
	VersionIncremented bool
}
