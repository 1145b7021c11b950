package config

import (
	"os"
	"path/filepath"
)

// GetRuntimePath resolves the runtime directory before any config struct is
// parsed; the .env file loaded from here may itself define LORO_* variables.
func GetRuntimePath() string {
	path := os.Getenv("LORO_RUNTIME_PATH")
	if path == "" {
		path = ".lorobot"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
