// pkg/paths/paths.go
// Package paths resolves per-user locations for flow configuration.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "flow"

// ConfigDir returns the directory holding user level flow settings.
// Order: XDG_CONFIG_HOME/flow, then the platform default.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("AppData"); appData != "" {
			return filepath.Join(appData, "Flow")
		}
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// ConfigFile is the config file read when --config is not given. It may not exist.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
