package main

import (
	"fmt"

	"novavision/internal/logger"

	"github.com/spf13/cobra"
)

func newDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy <app-id>",
		Short: "Deploy an app to this device (coming soon)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return fmt.Errorf("app id must not be empty")
			}
			logger.Warn("deploy is not implemented yet (coming soon); app %q was not deployed", args[0])
			return nil
		},
	}
}
