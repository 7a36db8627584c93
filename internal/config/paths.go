package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names an explicit config file
	EnvConfigPath = "DYNASTY_CONFIG"
	// ConfigFileName is the config file looked for in the working directory
	ConfigFileName = "dynasty.yaml"
	// ConfigDirName is the directory under each config root
	ConfigDirName = "dynasty"

	configDirFile = "config.yaml"
)

// DatasetFileNames are the dataset files picked up when no source is
// configured, in priority order
var DatasetFileNames = []string{"data.json", "families.json", "families.yaml", "families.yml", "families.md"}

// configDirs lists the per-user and system config directories, highest
// priority first: $XDG_CONFIG_HOME/dynasty, ~/.config/dynasty, /etc/dynasty
func configDirs() []string {
	var dirs []string
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		dirs = append(dirs, filepath.Join(xdgHome, ConfigDirName))
	}
	if home := os.Getenv("HOME"); home != "" {
		dirs = append(dirs, filepath.Join(home, ".config", ConfigDirName))
	}
	return append(dirs, filepath.Join("/etc", ConfigDirName))
}

// FindConfigPath returns $DYNASTY_CONFIG when it exists, then ./dynasty.yaml,
// then config.yaml in the first config directory that has one. Returns empty
// string if no config file found.
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" && fileExists(path) {
		return path
	}
	if path := firstExisting([]string{"."}, ConfigFileName); path != "" {
		return path
	}
	return firstExisting(configDirs(), configDirFile)
}

// FindDatasetPath returns the first of DatasetFileNames found in the working
// directory or a config directory, or empty string
func FindDatasetPath() string {
	return firstExisting(append([]string{"."}, configDirs()...), DatasetFileNames...)
}

// EnsureConfigDir creates the directory holding configPath
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0o755)
}

// firstExisting checks each name in each dir, dirs outermost
func firstExisting(dirs []string, names ...string) string {
	for _, dir := range dirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if !fileExists(path) {
				continue
			}
			if dir == "." {
				if abs, err := filepath.Abs(path); err == nil {
					return abs
				}
			}
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
