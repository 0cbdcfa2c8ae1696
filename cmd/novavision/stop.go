package main

import (
	"log/slog"

	"novavision/internal/compose"
	"novavision/internal/logger"

	"github.com/spf13/cobra"
)

func newStopCmd() *cobra.Command {
	var appID string

	cmd := &cobra.Command{
		Use:   "stop [server|app]",
		Short: "Stop the server or an app via Docker Compose",
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

			composeFile, err := resolveComposeFile(target, appID)
			if err != nil {
				return err
			}

			runner := compose.NewRunner(slog.Default())
			if err := runner.Down(cmd.Context(), composeFile); err != nil {
				return err
			}
			logger.Success("%s is down", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&appID, "id", "", "app identifier (required for app)")
	return cmd
}
