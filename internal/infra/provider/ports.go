// Where: cli/internal/infra/provider/ports.go
// What: Published port discovery for local emulator containers.
// Why: Find the host port Docker Compose assigned to the Lambda endpoint.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

const (
	composeProjectLabel = "com.docker.compose.project"
	composeServiceLabel = "com.docker.compose.service"
)

// DockerClient is the subset of the Docker SDK used for port lookup.
type DockerClient interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
}

// NewDockerClient creates a Docker SDK client from the environment.
func NewDockerClient() (DockerClient, error) {
	dockerClient, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}
	return dockerClient, nil
}

type PortRequest struct {
	Project       string
	Service       string
	ContainerPort int
}

type PortResolver interface {
	Resolve(ctx context.Context, request PortRequest) (int, error)
}

// NewPortResolver returns a PortResolver backed by docker.
func NewPortResolver(client DockerClient) PortResolver {
	return dockerPortResolver{Client: client}
}

type dockerPortResolver struct {
	Client DockerClient
}

func (r dockerPortResolver) Resolve(ctx context.Context, request PortRequest) (int, error) {
	if r.Client == nil {
		return 0, fmt.Errorf("docker client is nil")
	}
	if strings.TrimSpace(request.Service) == "" {
		return 0, fmt.Errorf("compose service is required")
	}
	if request.ContainerPort <= 0 {
		return 0, fmt.Errorf("container port is required")
	}

	opts := container.ListOptions{}
	if request.Project != "" {
		labelFilter := filters.NewArgs()
		labelFilter.Add("label", fmt.Sprintf("%s=%s", composeProjectLabel, request.Project))
		opts.Filters = labelFilter
	}
	containers, err := r.Client.ContainerList(ctx, opts)
	if err != nil {
		return 0, fmt.Errorf("list containers: %w", err)
	}

	for _, ctr := range containers {
		if ctr.Labels == nil {
			continue
		}
		if request.Project != "" && ctr.Labels[composeProjectLabel] != request.Project {
			continue
		}
		if ctr.Labels[composeServiceLabel] != request.Service {
			continue
		}
		for _, port := range ctr.Ports {
			if int(port.PrivatePort) != request.ContainerPort {
				continue
			}
			if port.PublicPort > 0 {
				return int(port.PublicPort), nil
			}
		}
	}

	return 0, fmt.Errorf("published port not found for %s:%d", request.Service, request.ContainerPort)
}
