package installer

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"novavision/internal/device"
	"novavision/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBackend serves the whole install flow: registration, initialization,
// bundle lookup and bundle download.
func newBackend(t *testing.T, bundle []byte) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/device/data/register-device", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "user-token", r.URL.Query().Get("access-token"))
		w.Write([]byte(`{"uuid":"dev-42","access-token":"device-token"}`))
	})
	mux.HandleFunc("/api/device/data/initialize-device", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "device-token", r.URL.Query().Get("access-token"))
		require.NoError(t, r.ParseForm())
		assert.NotEmpty(t, r.PostForm.Get("serial"))
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/api/device/data/get-server", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"file-7"`))
	})
	mux.HandleFunc("/api/storage/default/get-file", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "file-7", r.URL.Query().Get("id"))
		w.Write(bundle)
	})
	return httptest.NewServer(mux)
}

func serverBundle(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := map[string]string{
		"Server/.env":                         "ROOT_PATH=/placeholder\nAPI_PORT=7001\n",
		"Server/release-1/docker-compose.yml": "services:\n  api:\n    image: nginx\n",
	}
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestInstall(t *testing.T) {
	srv := newBackend(t, serverBundle(t))
	defer srv.Close()

	homeDir := filepath.Join(t.TempDir(), ".novavision")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := registry.NewClient(srv.URL, logger)
	inst := New(client, homeDir, logger)

	var statuses []string
	progress := func(u ProgressUpdate) { statuses = append(statuses, u.Status) }

	reg := device.NewRegistration(device.TypeLocal, "", "")
	state, err := inst.Install(context.Background(), "user-token", srv.URL, reg, progress)
	require.NoError(t, err)

	assert.Equal(t, "dev-42", state.UUID)
	assert.Equal(t, "device-token", state.Token)
	assert.Equal(t, device.TypeLocal, state.Type)
	assert.False(t, state.InstalledAt.IsZero())

	// Bundle extracted, temp zip cleaned up.
	assert.FileExists(t, filepath.Join(homeDir, "Server", "release-1", "docker-compose.yml"))
	assert.NoFileExists(t, filepath.Join(homeDir, "temp.zip"))

	// ROOT_PATH rewritten to the local server dir, other lines untouched.
	env, err := os.ReadFile(filepath.Join(homeDir, "Server", ".env"))
	require.NoError(t, err)
	assert.Contains(t, string(env), "ROOT_PATH="+filepath.Join(homeDir, "Server")+"\n")
	assert.Contains(t, string(env), "API_PORT=7001")
	assert.NotContains(t, string(env), "/placeholder")

	// State persisted for later commands.
	persisted, err := device.LoadState(filepath.Join(homeDir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "dev-42", persisted.UUID)

	assert.Equal(t, []string{"registering", "initializing", "downloading", "extracting", "configuring", "complete"}, statuses)
}

func TestInstallRegistrationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	homeDir := filepath.Join(t.TempDir(), ".novavision")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	inst := New(registry.NewClient(srv.URL, logger), homeDir, logger)

	_, err := inst.Install(context.Background(), "bad-token", srv.URL, device.NewRegistration(device.TypeLocal, "", ""), nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "401") || strings.Contains(err.Error(), "invalid token"))

	// Nothing half-installed.
	assert.NoFileExists(t, filepath.Join(homeDir, "config.yaml"))
}

func TestInstallBadBundle(t *testing.T) {
	srv := newBackend(t, []byte("this is not a zip"))
	defer srv.Close()

	homeDir := filepath.Join(t.TempDir(), ".novavision")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	inst := New(registry.NewClient(srv.URL, logger), homeDir, logger)

	_, err := inst.Install(context.Background(), "user-token", srv.URL, device.NewRegistration(device.TypeLocal, "", ""), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extracting server bundle")

	// The broken download does not linger.
	assert.NoFileExists(t, filepath.Join(homeDir, "temp.zip"))
}
