package device

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	saved := &State{
		UUID:        "dev-1234",
		Token:       "device-token",
		Host:        "https://backend.example/",
		Type:        TypeEdge,
		InstalledAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, SaveState(path, saved))

	loaded, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, saved.UUID, loaded.UUID)
	assert.Equal(t, saved.Token, loaded.Token)
	assert.Equal(t, saved.Host, loaded.Host)
	assert.Equal(t, saved.Type, loaded.Type)
	assert.True(t, saved.InstalledAt.Equal(loaded.InstalledAt))
}

func TestSaveStatePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveState(path, &State{UUID: "dev", Token: "secret"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "state file carries the device token")
}

func TestLoadStateMissing(t *testing.T) {
	_, err := LoadState(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
