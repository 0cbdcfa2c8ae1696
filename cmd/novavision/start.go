package main

import (
	"log/slog"
	"strings"

	"novavision/internal"
	"novavision/internal/compose"
	"novavision/internal/logger"

	"github.com/spf13/cobra"
)

func newStartCmd() *cobra.Command {
	var appID string

	cmd := &cobra.Command{
		Use:   "start [server|app]",
		Short: "Start the server or an app via Docker Compose",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := compose.ParseTarget(args[0])
			if err != nil {
				return err
			}
			if target == compose.TargetApp {
				if err := requireAppID(appID); err != nil {
					return err
				}
			}
			ctx := cmd.Context()

			composeFile, err := resolveComposeFile(target, appID)
			if err != nil {
				return err
			}

			services, err := compose.LoadServices(ctx, composeFile)
			if err != nil {
				return err
			}
			logger.Info("Starting services: %s", strings.Join(services, ", "))

			runner := compose.NewRunner(slog.Default())
			if err := runner.Up(ctx, composeFile); err != nil {
				return err
			}
			logger.Success("%s is up", target)

			printRunningContainers(ctx)
			return nil
		},
	}

	cmd.Flags().StringVar(&appID, "id", "", "app identifier (required for app)")
	return cmd
}

// resolveComposeFile maps a target to its compose file under the home dir.
func resolveComposeFile(target compose.Target, appID string) (string, error) {
	homeDir := internal.GetHomeDir()
	if target == compose.TargetApp {
		return compose.AppProject(homeDir, appID)
	}
	return compose.ServerProject(homeDir)
}
