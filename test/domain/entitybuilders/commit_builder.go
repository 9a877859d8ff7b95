package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/versiongate/domain"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// CommitBuilder helps create test commits with a fluent interface.
type CommitBuilder struct {
	*testkit.BaseBuilder
	sha     string
	message string
}

// NewCommitBuilder creates a new commit builder with sensible defaults.
func NewCommitBuilder() *CommitBuilder {
	return &CommitBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		sha:         "a3f5b2c9d8e7f6a5b4c3d2e1f0a9b8c7d6e5f4a3",
		message:     "feat: add feature",
	}
}

// WithSHA sets the commit hash.
func (b *CommitBuilder) WithSHA(sha string) *CommitBuilder {
	b.sha = sha
	return b
}

// WithMessage sets the commit message.
func (b *CommitBuilder) WithMessage(message string) *CommitBuilder {
	b.message = message
	return b
}

// Build creates the commit (satisfies testkit.Builder interface).
func (b *CommitBuilder) Build() interface{} {
	return b.BuildCommit()
}

// BuildCommit creates the commit with a concrete return type.
func (b *CommitBuilder) BuildCommit() domain.Commit {
	return domain.Commit{
		SHA:     b.sha,
		Message: b.message,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *CommitBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.sha = "a3f5b2c9d8e7f6a5b4c3d2e1f0a9b8c7d6e5f4a3"
	b.message = "feat: add feature"
	return b
}

// Clone creates a deep copy of the CommitBuilder.
func (b *CommitBuilder) Clone() testkit.Builder {
	return &CommitBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		sha:         b.sha,
		message:     b.message,
	}
}
