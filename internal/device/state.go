package device

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// State is the registration result persisted after a successful install so
// later commands know which device this host is.
type State struct {
	UUID        string    `yaml:"uuid"`
	Token       string    `yaml:"token"`
	Host        string    `yaml:"host"`
	Type        Type      `yaml:"type"`
	InstalledAt time.Time `yaml:"installed_at"`
}

// LoadState reads the persisted device state.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading device state: %w", err)
	}
	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing device state: %w", err)
	}
	return &st, nil
}

// SaveState writes the device state, creating parent directories as needed.
// The file carries the device token, so it is not group/world readable.
func SaveState(path string, st *State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding device state: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing device state: %w", err)
	}
	return nil
}
