package source

import (
	"fmt"

	"github.com/rios0rios0/versiongate/domain"
)

// Config carries the connection details a source factory needs. Which
// fields matter depends on the source type.
type Config struct {
	RepoDir     string // git: path to the local checkout
	Owner       string // github
	Repo        string // github
	PullRequest int    // github
	Token       string // github
}

// Factory is a constructor function that creates a ChangeSource for the
// given connection details.
type Factory func(cfg Config, log domain.Logger) (domain.ChangeSource, error)

// Registry manages all registered change-source implementations.
type Registry struct {
	sources map[string]Factory
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]Factory),
	}
}

// Register adds a source factory under the given name (e.g. "git").
func (r *Registry) Register(name string, factory Factory) {
	r.sources[name] = factory
}

// Get returns a configured source instance for the given name.
func (r *Registry) Get(name string, cfg Config, log domain.Logger) (domain.ChangeSource, error) {
	factory, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %q", name)
	}
	return factory(cfg, log)
}

// Names returns the list of registered source names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	return names
}
