package compose

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/compose-spec/compose-go/v2/cli"
	yamlv3 "gopkg.in/yaml.v3"
)

// Target selects which compose project an operation acts on.
type Target string

const (
	TargetServer Target = "server"
	TargetApp    Target = "app"
)

// ParseTarget validates a start/stop target argument.
func ParseTarget(s string) (Target, error) {
	switch Target(s) {
	case TargetServer, TargetApp:
		return Target(s), nil
	default:
		return "", fmt.Errorf("invalid target %q (must be server or app)", s)
	}
}

// composeFileNames are probed in order inside a project directory.
var composeFileNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// ServerProject locates the server's compose file under homeDir. The bundle
// extracts to Server/<release>/, so the server project is the first directory
// inside Server.
func ServerProject(homeDir string) (string, error) {
	serverRoot, err := firstSubdir(filepath.Join(homeDir, "Server"))
	if err != nil {
		return "", fmt.Errorf("locating server project: %w (run 'novavision install' first)", err)
	}
	return composeFileIn(serverRoot)
}

// AppProject locates the compose file of the app named appID, which lives in
// a directory of that name inside the server project.
func AppProject(homeDir, appID string) (string, error) {
	serverRoot, err := firstSubdir(filepath.Join(homeDir, "Server"))
	if err != nil {
		return "", fmt.Errorf("locating server project: %w (run 'novavision install' first)", err)
	}

	appDir := filepath.Join(serverRoot, appID)
	info, err := os.Stat(appDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("app %q is not installed under %s", appID, serverRoot)
	}
	return composeFileIn(appDir)
}

func firstSubdir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("no project directory inside %s", dir)
}

func composeFileIn(dir string) (string, error) {
	for _, name := range composeFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no compose file found in %s", dir)
}

// LoadServices loads a compose file and returns its service names, sorted.
// A broken project fails here instead of half-way through `docker compose up`.
func LoadServices(ctx context.Context, composeFile string) ([]string, error) {
	opts, err := cli.NewProjectOptions(
		[]string{composeFile},
		cli.WithDotEnv,
		cli.WithInterpolation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("project options: %w", err)
	}

	project, err := cli.ProjectFromOptions(ctx, opts)
	if err != nil {
		// Some shipped bundles carry compose files the strict loader rejects
		// but docker compose accepts; fall back to a raw parse.
		return servicesFallback(composeFile)
	}

	names := make([]string, 0, len(project.Services))
	for name := range project.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// servicesFallback extracts service names with a plain YAML parse.
func servicesFallback(composeFile string) ([]string, error) {
	data, err := os.ReadFile(composeFile)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Services map[string]any `yaml:"services"`
	}
	if err := yamlv3.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", composeFile, err)
	}
	if len(raw.Services) == 0 {
		return nil, fmt.Errorf("%s declares no services", composeFile)
	}

	names := make([]string, 0, len(raw.Services))
	for name := range raw.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
