// Package where resolves the directories and files rover keeps on disk.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/gwillem/rover/pkg/filesystem"
)

// App is the directory name used under the user config dir.
const App = "rover"

// EnvConfigPath overrides the config directory.
const EnvConfigPath = "ROVER_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config returns the config directory, creating it if needed.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return ensureDir(filepath.Join(base, App))
}

// Logs returns the log directory.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Settings returns the path of the persisted connection settings.
func Settings() string {
	return filepath.Join(Config(), "settings.json")
}
