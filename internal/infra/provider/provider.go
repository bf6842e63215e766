// Where: cli/internal/infra/provider/provider.go
// What: Provider selection and endpoint resolution.
// Why: Build the FunctionInvoker matching the service's provider block.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/poruru-code/sls-cli/internal/domain/service"
	"github.com/poruru-code/sls-cli/internal/infra/envutil"
	"github.com/poruru-code/sls-cli/internal/ports"
)

var (
	// ErrUnsupportedProvider is returned for provider names without an implementation.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	errLocalEndpointRequired = errors.New("local provider requires an endpoint")
)

// DefaultLocalContainerPort is the Lambda API port inside the emulator container.
const DefaultLocalContainerPort = 8080

// Settings is the resolved provider configuration for one invocation.
type Settings struct {
	Provider service.Provider
	Region   string
	Profile  string
}

// Factory builds FunctionInvokers.
type Factory struct {
	Clients ClientFactory
	// NewDockerClient is only called when a compose lookup is needed.
	NewDockerClient func() (DockerClient, error)
	Getenv          func(string) string
}

// NewFactory returns a Factory wired to the SDK and docker.
func NewFactory() Factory {
	return Factory{
		Clients:         NewClientFactory(),
		NewDockerClient: NewDockerClient,
		Getenv: func(suffix string) string {
			return envutil.GetHostEnv(suffix)
		},
	}
}

// New returns the invoker for settings.Provider.Name.
func (f Factory) New(ctx context.Context, settings Settings) (ports.FunctionInvoker, error) {
	if f.Clients == nil {
		return nil, fmt.Errorf("client factory is not configured")
	}
	name := strings.ToLower(strings.TrimSpace(settings.Provider.Name))
	switch name {
	case service.ProviderAWS:
		client, err := f.Clients.Lambda(ctx, ClientConfig{
			Region:      settings.Region,
			Profile:     settings.Profile,
			Endpoint:    strings.TrimSpace(settings.Provider.Endpoint),
			Credentials: settings.Provider.Credentials,
		})
		if err != nil {
			return nil, err
		}
		return lambdaInvoker{client: client}, nil
	case service.ProviderLocal:
		endpoint, err := f.LocalEndpoint(ctx, settings.Provider)
		if err != nil {
			return nil, err
		}
		client, err := f.Clients.Lambda(ctx, ClientConfig{
			Region:      settings.Region,
			Endpoint:    endpoint,
			Local:       true,
			Credentials: settings.Provider.Credentials,
		})
		if err != nil {
			return nil, err
		}
		return lambdaInvoker{client: client}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, settings.Provider.Name)
	}
}

// LocalEndpoint resolves the local Lambda endpoint: provider.endpoint, then
// SLS_LOCAL_ENDPOINT, then the published port of the compose service.
func (f Factory) LocalEndpoint(ctx context.Context, p service.Provider) (string, error) {
	if endpoint := strings.TrimSpace(p.Endpoint); endpoint != "" {
		return endpoint, nil
	}
	if f.Getenv != nil {
		if endpoint := f.Getenv("LOCAL_ENDPOINT"); endpoint != "" {
			return endpoint, nil
		}
	}
	if p.Compose.IsZero() {
		return "", errLocalEndpointRequired
	}
	if f.NewDockerClient == nil {
		return "", fmt.Errorf("docker client is not configured")
	}
	dockerClient, err := f.NewDockerClient()
	if err != nil {
		return "", err
	}
	if closer, ok := dockerClient.(io.Closer); ok {
		defer closer.Close()
	}
	containerPort := p.Compose.Port
	if containerPort <= 0 {
		containerPort = DefaultLocalContainerPort
	}
	port, err := NewPortResolver(dockerClient).Resolve(ctx, PortRequest{
		Project:       strings.TrimSpace(p.Compose.Project),
		Service:       strings.TrimSpace(p.Compose.Service),
		ContainerPort: containerPort,
	})
	if err != nil {
		return "", fmt.Errorf("resolve local endpoint: %w", err)
	}
	return fmt.Sprintf("http://127.0.0.1:%d", port), nil
}
