package config

import (
	"os"
	"path/filepath"
)

// GetHomePath returns the gearscan data directory: $GEARSCAN_HOME or
// ~/.gearscan
func GetHomePath() string {
	if home := os.Getenv("GEARSCAN_HOME"); home != "" {
		return ExpandPath(home)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "~/.gearscan" // Fallback to unexpanded path
	}
	return filepath.Join(homeDir, ".gearscan")
}

// GetSettingsPath returns the path to the settings file
func GetSettingsPath() string {
	return filepath.Join(GetHomePath(), "settings.json")
}

// GetDBPath returns the path to the session database
func GetDBPath() string {
	return filepath.Join(GetHomePath(), "state.db")
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if len(path) == 1 {
			return homeDir
		}
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
