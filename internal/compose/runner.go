package compose

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// execCommand wraps exec.CommandContext for testability.
var execCommand = exec.CommandContext

// Runner invokes the docker compose plugin for a project. Compose output is
// streamed through so failures surface verbatim.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a compose runner.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logger}
}

// Up starts a compose project detached.
func (r *Runner) Up(ctx context.Context, composeFile string) error {
	return r.run(ctx, "-f", composeFile, "up", "-d")
}

// Down stops a compose project.
func (r *Runner) Down(ctx context.Context, composeFile string) error {
	return r.run(ctx, "-f", composeFile, "down")
}

func (r *Runner) run(ctx context.Context, args ...string) error {
	full := append([]string{"compose"}, args...)
	r.logger.Info("running docker compose", "args", full)

	cmd := execCommand(ctx, "docker", full...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker %v: %w", full, err)
	}
	return nil
}
