package installer

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// extractZip unpacks src into dest, refusing entries that would escape dest.
func extractZip(src, dest string) error {
	reader, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if err := extractEntry(file, dest); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(file *zip.File, dest string) error {
	target := filepath.Join(dest, file.Name)

	// Zip-slip guard: the joined path must stay inside dest.
	if target != dest && !strings.HasPrefix(target, dest+string(os.PathSeparator)) {
		return fmt.Errorf("archive entry %q escapes destination", file.Name)
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	in, err := file.Open()
	if err != nil {
		return fmt.Errorf("opening archive entry %q: %w", file.Name, err)
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("extracting %q: %w", file.Name, err)
	}
	return nil
}

// patchEnvFile sets key=value in a dotenv-style file, replacing an existing
// line or appending one. The file is created when missing; other lines are
// left untouched.
func patchEnvFile(path, key, value string) error {
	var lines []string

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	case os.IsNotExist(err):
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
	default:
		return err
	}

	replaced := false
	for idx, line := range lines {
		if strings.HasPrefix(line, key+"=") {
			lines[idx] = key + "=" + value
			replaced = true
		}
	}
	if !replaced {
		lines = append(lines, key+"="+value)
	}

	// Drop a leading empty line left over from an empty file.
	if len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}

	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}
