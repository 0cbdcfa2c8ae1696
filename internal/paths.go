package internal

import (
	"os"
	"path/filepath"
)

// GetHomeDir returns the novavision home directory from environment or default (~/.novavision)
func GetHomeDir() string {
	if dir := os.Getenv("NOVAVISION_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".novavision"
	}
	return filepath.Join(home, ".novavision")
}

// GetServerDir returns the directory the server bundle is extracted into
func GetServerDir() string {
	return filepath.Join(GetHomeDir(), "Server")
}

// GetStateFile returns the path of the persisted device state
func GetStateFile() string {
	return filepath.Join(GetHomeDir(), "config.yaml")
}
