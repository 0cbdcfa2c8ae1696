package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"novavision/internal/logger"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time via ldflags
	version = "0.0.0-dev"

	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "novavision",
		Short:         "NovaVision device management CLI",
		Long:          "Registers this device with the NovaVision backend and manages the server and app Docker Compose environments.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable diagnostic logging")

	rootCmd.AddCommand(
		newInstallCmd(),
		newStartCmd(),
		newStopCmd(),
		newDeployCmd(),
		newStatusCmd(),
	)

	// Ctrl-C cancels whatever compose or the backend client is doing.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

// setupLogging configures structured diagnostics. User-facing messages go
// through the console logger; slog only surfaces with --verbose.
func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// requireAppID enforces that app-scoped operations name their app.
func requireAppID(appID string) error {
	if appID == "" {
		return fmt.Errorf("--id is required when operating on an app")
	}
	return nil
}
