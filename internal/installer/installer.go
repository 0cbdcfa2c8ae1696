package installer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"novavision/internal/device"
	"novavision/internal/registry"
	"novavision/internal/system"
)

// ProgressUpdate represents an installation progress update
type ProgressUpdate struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ProgressCallback is called with progress updates during installation
type ProgressCallback func(ProgressUpdate)

// Installer drives the full install flow: register the device, upload the
// host inventory, download the server bundle and unpack it into the home dir.
type Installer struct {
	registry *registry.Client
	homeDir  string
	logger   *slog.Logger
}

// New creates an installer rooted at homeDir (normally ~/.novavision).
func New(reg *registry.Client, homeDir string, logger *slog.Logger) *Installer {
	return &Installer{
		registry: reg,
		homeDir:  homeDir,
		logger:   logger,
	}
}

// Install runs the whole flow and persists the resulting device state. Either
// every step succeeds or the error names the step that broke.
func (i *Installer) Install(ctx context.Context, userToken, host string, reg device.Registration, progress ProgressCallback) (*device.State, error) {
	logger := i.logger.With("device_type", reg.Type)
	logger.Info("starting installation")

	if progress == nil {
		progress = func(ProgressUpdate) {} // No-op if not provided
	}

	if err := os.MkdirAll(i.homeDir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", i.homeDir, err)
	}

	progress(ProgressUpdate{Status: "registering", Message: "Registering device"})
	registered, err := i.registry.RegisterDevice(ctx, userToken, reg)
	if err != nil {
		logger.Error("registration failed", "error", err)
		return nil, err
	}
	logger.Info("device registered", "uuid", registered.UUID)

	progress(ProgressUpdate{Status: "initializing", Message: "Uploading host inventory"})
	info := system.Collect()
	if err := i.registry.InitializeDevice(ctx, registered.AccessToken, info); err != nil {
		logger.Error("initialization failed", "error", err)
		return nil, err
	}

	progress(ProgressUpdate{Status: "downloading", Message: "Downloading server bundle"})
	fileID, err := i.registry.GetServerFileID(ctx, registered.AccessToken)
	if err != nil {
		logger.Error("bundle lookup failed", "error", err)
		return nil, err
	}

	zipPath := filepath.Join(i.homeDir, "temp.zip")
	// The temp zip is removed even when extraction fails.
	defer os.Remove(zipPath)

	if err := i.registry.DownloadFile(ctx, registered.AccessToken, fileID, zipPath); err != nil {
		logger.Error("bundle download failed", "error", err)
		return nil, err
	}

	progress(ProgressUpdate{Status: "extracting", Message: "Extracting server bundle"})
	if err := extractZip(zipPath, i.homeDir); err != nil {
		logger.Error("bundle extraction failed", "error", err)
		return nil, fmt.Errorf("extracting server bundle: %w", err)
	}

	progress(ProgressUpdate{Status: "configuring", Message: "Writing server configuration"})
	serverDir := filepath.Join(i.homeDir, "Server")
	envFile := filepath.Join(serverDir, ".env")
	if err := patchEnvFile(envFile, "ROOT_PATH", serverDir); err != nil {
		logger.Error("env patch failed", "error", err)
		return nil, fmt.Errorf("updating %s: %w", envFile, err)
	}

	state := &device.State{
		UUID:        registered.UUID,
		Token:       registered.AccessToken,
		Host:        host,
		Type:        reg.Type,
		InstalledAt: time.Now().UTC(),
	}
	statePath := filepath.Join(i.homeDir, "config.yaml")
	if err := device.SaveState(statePath, state); err != nil {
		logger.Error("state save failed", "error", err)
		return nil, err
	}

	logger.Info("installation complete", "uuid", registered.UUID, "path", i.homeDir)
	progress(ProgressUpdate{Status: "complete", Message: "Installation complete"})
	return state, nil
}
