package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Load when the config file does not exist.
var ErrNotFound = errors.New("config file not found")

// ResolvePath expands environment variables and a leading '~' in path.
func ResolvePath(path string) (string, error) {
	p := os.ExpandEnv(path)
	if p == "" || p[0] != '~' {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if p == "~" {
		return home, nil
	}
	if !strings.HasPrefix(p, "~/") {
		// ~user is not supported
		return p, nil
	}
	return filepath.Join(home, p[2:]), nil
}
