package cmd

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/versiongate/application"
	"github.com/rios0rios0/versiongate/internal"
)

// injectCheckService assembles the check service through the DIG container.
func injectCheckService() *application.CheckService {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var service *application.CheckService
	if err := container.Invoke(func(svc *application.CheckService) {
		service = svc
	}); err != nil {
		panic(err)
	}

	return service
}
