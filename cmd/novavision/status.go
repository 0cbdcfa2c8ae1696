package main

import (
	"context"
	"fmt"

	"novavision/internal/docker"
	"novavision/internal/logger"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List running containers and their published ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := docker.NewClient()
			if err != nil {
				return fmt.Errorf("connecting to docker: %w", err)
			}
			defer cli.Close()

			if err := cli.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("docker daemon is not reachable: %w", err)
			}
			return listContainers(cmd.Context(), cli)
		},
	}
}

func listContainers(ctx context.Context, cli *docker.Client) error {
	running, err := cli.ListRunning(ctx)
	if err != nil {
		return err
	}
	if len(running) == 0 {
		logger.Info("No running containers found.")
		return nil
	}

	logger.Info("Running containers and ports:")
	for _, c := range running {
		logger.Info("  %s -> Port: %s", c.Name, c.Port)
	}
	return nil
}

// printRunningContainers is the best-effort listing shown after a start; a
// missing docker socket only warns instead of failing the command.
func printRunningContainers(ctx context.Context) {
	cli, err := docker.NewClient()
	if err != nil {
		logger.Warn("Cannot query Docker for running containers: %v", err)
		return
	}
	defer cli.Close()

	if err := listContainers(ctx, cli); err != nil {
		logger.Warn("Cannot list running containers: %v", err)
	}
}
