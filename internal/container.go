package internal

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/versiongate/application"
	"github.com/rios0rios0/versiongate/infrastructure/logging"
	sourcePkg "github.com/rios0rios0/versiongate/infrastructure/source"
	gitSource "github.com/rios0rios0/versiongate/infrastructure/source/git"
	ghSource "github.com/rios0rios0/versiongate/infrastructure/source/github"
)

// RegisterProviders registers all constructors with the DIG container,
// bottom-up: logger -> source registry -> service.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(logging.NewLogrusLogger); err != nil {
		return err
	}
	if err := container.Provide(newSourceRegistry); err != nil {
		return err
	}
	if err := container.Provide(application.NewCheckService); err != nil {
		return err
	}
	return nil
}

// newSourceRegistry builds the registry with every known change source.
func newSourceRegistry() *sourcePkg.Registry {
	registry := sourcePkg.NewRegistry()
	registry.Register("git", gitSource.New)
	registry.Register("github", ghSource.New)
	return registry
}
