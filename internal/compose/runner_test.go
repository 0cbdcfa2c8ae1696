package compose

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureExec swaps execCommand for one that records invocations and runs a
// no-op instead of docker.
func captureExec(t *testing.T) *[][]string {
	t.Helper()

	var calls [][]string
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		calls = append(calls, append([]string{name}, args...))
		return exec.CommandContext(ctx, "true")
	}
	t.Cleanup(func() { execCommand = exec.CommandContext })
	return &calls
}

func testRunner() *Runner {
	return NewRunner(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRunnerUp(t *testing.T) {
	calls := captureExec(t)

	err := testRunner().Up(context.Background(), "/srv/docker-compose.yml")
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"docker", "compose", "-f", "/srv/docker-compose.yml", "up", "-d"}, (*calls)[0])
}

func TestRunnerDown(t *testing.T) {
	calls := captureExec(t)

	err := testRunner().Down(context.Background(), "/srv/docker-compose.yml")
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"docker", "compose", "-f", "/srv/docker-compose.yml", "down"}, (*calls)[0])
}

func TestRunnerSurfacesFailure(t *testing.T) {
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "false")
	}
	t.Cleanup(func() { execCommand = exec.CommandContext })

	err := testRunner().Up(context.Background(), "/srv/docker-compose.yml")
	assert.Error(t, err)
}
