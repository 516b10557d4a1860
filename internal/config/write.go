package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrExists is returned by WriteDefault when the file is already there.
var ErrExists = errors.New("setlint.toml already exists")

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefault writes Default() into dir/setlint.toml and returns the path.
func WriteDefault(dir string, force bool) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%s: %w (use --force to overwrite)", path, ErrExists)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return path, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	data, err := Encode(Default())
	if err != nil {
		return path, err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return path, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
