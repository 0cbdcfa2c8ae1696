package main

import (
	"log/slog"
	"strings"

	"novavision/internal"
	"novavision/internal/device"
	"novavision/internal/installer"
	"novavision/internal/logger"
	"novavision/internal/registry"

	"github.com/spf13/cobra"
)

func newInstallCmd() *cobra.Command {
	var (
		host    string
		wanHost string
		port    string
	)

	cmd := &cobra.Command{
		Use:   "install [edge|local|cloud] <token>",
		Short: "Register this device and download the server bundle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Argument shape is checked before anything touches the network.
			deviceType, err := device.ParseType(args[0])
			if err != nil {
				return err
			}
			userToken := args[1]
			ctx := cmd.Context()

			if deviceType == device.TypeCloud {
				if wanHost == "" {
					wanHost, err = askWANHost(cmd)
					if err != nil {
						return err
					}
				}
				if port == "" {
					port = askPort()
				}
			}

			reg := device.NewRegistration(deviceType, port, wanHost)
			client := registry.NewClient(host, slog.Default())
			inst := installer.New(client, internal.GetHomeDir(), slog.Default())

			var spin *logger.Spinner
			progress := func(u installer.ProgressUpdate) {
				if spin != nil {
					spin.Stop()
					spin = nil
				}
				if u.Status == "complete" {
					return
				}
				spin = logger.StartSpinner(u.Message)
			}
			defer func() {
				if spin != nil {
					spin.Stop()
				}
			}()

			state, err := inst.Install(ctx, userToken, host, reg, progress)
			if err != nil {
				return err
			}

			logger.Success("Device %s registered as %s", state.UUID, state.Type)
			logger.Success("Server bundle installed to %s", internal.GetServerDir())
			logger.Info("Run 'novavision start server' to bring the server up.")
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", registry.DefaultHost, "backend host URL")
	cmd.Flags().StringVar(&wanHost, "wan-host", "", "WAN host for cloud devices (skips detection)")
	cmd.Flags().StringVar(&port, "port", "", "server API port (default "+device.DefaultAPIPort+")")
	return cmd
}

// askWANHost detects the public address and lets the user confirm or replace
// it, matching the interactive cloud install flow.
func askWANHost(cmd *cobra.Command) (string, error) {
	detected, err := registry.PublicIP(cmd.Context())
	if err != nil {
		return "", err
	}
	logger.Info("Detected WAN HOST: %s", detected)

	switch strings.ToLower(logger.Question("Would you like to use the detected WAN HOST? (y/n):")) {
	case "y", "":
		return detected, nil
	case "n":
		return logger.Question("Enter WAN HOST:"), nil
	default:
		logger.Warn("Invalid input, using detected WAN HOST")
		return detected, nil
	}
}

func askPort() string {
	switch strings.ToLower(logger.Question("Default port is " + device.DefaultAPIPort + ". Would you like to use it? (y/n):")) {
	case "y", "":
		return device.DefaultAPIPort
	case "n":
		return logger.Question("Enter port:")
	default:
		logger.Warn("Invalid input, using default port")
		return device.DefaultAPIPort
	}
}
