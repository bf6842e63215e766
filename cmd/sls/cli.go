// Where: cli/cmd/sls/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"

	"github.com/poruru-code/sls-cli/internal/command"
	"github.com/poruru-code/sls-cli/internal/infra/interaction"
	"github.com/poruru-code/sls-cli/internal/infra/provider"
)

var (
	getwd            = os.Getwd
	newClientFactory = provider.NewClientFactory
)

// buildDependencies constructs the runtime dependencies required by the CLI.
// SDK clients and the docker client are created lazily by the provider
// factory, so nothing here touches the network.
func buildDependencies() (command.Dependencies, error) {
	projectDir, err := getwd()
	if err != nil {
		return command.Dependencies{}, err
	}

	clients := newClientFactory()
	providers := provider.NewFactory()
	providers.Clients = clients

	return command.Dependencies{
		Out:      os.Stdout,
		ErrOut:   os.Stderr,
		In:       os.Stdin,
		Prompter: interaction.HuhPrompter{},
		Getwd:    func() (string, error) { return projectDir, nil },
		Invoke: command.InvokeDeps{
			Providers: providers,
			Clients:   clients,
			Getenv:    os.Getenv,
		},
	}, nil
}
