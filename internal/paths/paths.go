package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvHome overrides the data directory outright.
	EnvHome = "WELLNESS_HOME"

	envXDGConfig = "XDG_CONFIG_HOME"
	dotConfig    = ".config"
	appName      = "wellness"
	dbName       = "wellness.db"
)

// Dir resolves the data directory: $WELLNESS_HOME, then
// $XDG_CONFIG_HOME/wellness, then ~/.config/wellness.
func Dir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return filepath.Clean(dir), nil
	}
	if base := os.Getenv(envXDGConfig); base != "" && filepath.IsAbs(base) {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve data directory: %w", err)
	}
	return filepath.Join(home, dotConfig, appName), nil
}

// DB returns the SQLite file path, creating its directory if needed.
func DB() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return filepath.Join(dir, dbName), nil
}
