package datadir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default data directory name under $HOME.
	DefaultDirName = ".bookchat"

	// EnvVar is the environment variable that overrides the data directory.
	EnvVar = "BOOKCHAT_DATA_DIR"
)

// Resolve returns the data directory path, creating it with 0700 permissions
// if it doesn't already exist.
//
// Resolution priority:
//  1. BOOKCHAT_DATA_DIR environment variable
//  2. configValue argument
//  3. ~/.bookchat/
func Resolve(configValue string) (string, error) {
	root, err := resolveRoot(configValue)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(root, 0700); err != nil {
		return "", fmt.Errorf("failed to create data directory %s: %w", root, err)
	}
	return root, nil
}

// FilePath returns the full path to a file inside the data directory,
// ensuring the directory exists.
func FilePath(configValue, filename string) (string, error) {
	dir, err := Resolve(configValue)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filename), nil
}

// resolveRoot determines the root path without creating it.
func resolveRoot(configValue string) (string, error) {
	dir := os.Getenv(EnvVar)
	if dir == "" {
		dir = configValue
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, DefaultDirName)
	}
	return dir, nil
}
