package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Find walks up from start (a file or a directory) to locate setlint.toml.
func Find(start string) (path string, ok bool, err error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover combines Find and Load. Without a file it returns Default() and
// an empty path.
func Discover(start string) (Config, string, []Warning, error) {
	path, ok, err := Find(start)
	if err != nil {
		return Config{}, "", nil, err
	}
	if !ok {
		return Default(), "", nil, nil
	}
	cfg, warnings, err := Load(path)
	if err != nil {
		return Config{}, path, warnings, err
	}
	return cfg, path, warnings, nil
}
