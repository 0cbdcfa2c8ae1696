package docker

import (
	"context"
	"fmt"
	"strings"

	dockerclient "github.com/moby/moby/client"
)

// Client wraps the underlying Docker SDK client.
type Client struct {
	cli *dockerclient.Client
}

// NewClient creates a docker client using environment variables and API negotiation.
func NewClient() (*Client, error) {
	cli, err := dockerclient.New(dockerclient.FromEnv)
	if err != nil {
		return nil, err
	}
	return &Client{cli: cli}, nil
}

func (c *Client) Close() error {
	if c.cli == nil {
		return nil
	}
	return c.cli.Close()
}

// Ping checks connectivity to the Docker daemon.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.cli.Ping(ctx, dockerclient.PingOptions{})
	return err
}

// RunningContainer is one row of the running-container listing.
type RunningContainer struct {
	Name string
	Port string
}

// ListRunning returns the running containers with their first published host
// port, the summary shown after a successful start.
func (c *Client) ListRunning(ctx context.Context) ([]RunningContainer, error) {
	containers, err := c.cli.ContainerList(ctx, dockerclient.ContainerListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing containers: %w", err)
	}

	var running []RunningContainer
	for _, item := range containers.Items {
		name := ""
		if len(item.Names) > 0 {
			name = strings.TrimPrefix(item.Names[0], "/")
		}

		port := "no ports"
		for _, p := range item.Ports {
			if p.PublicPort != 0 {
				port = fmt.Sprintf("%d", p.PublicPort)
				break
			}
		}

		running = append(running, RunningContainer{Name: name, Port: port})
	}
	return running, nil
}
