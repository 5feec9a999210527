package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "daybook"

// GetDataDir resolves the base directory for journal storage. DAYBOOK_DIR
// wins, then the XDG data home, then ~/.local/share.
func GetDataDir() string {
	if explicit := os.Getenv("DAYBOOK_DIR"); explicit != "" {
		return explicit
	}

	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home := xdg.Home
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), appName)
			}
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, appName)
}

// GetDBPath returns the path to the SQLite database file.
func GetDBPath() string {
	return filepath.Join(GetDataDir(), appName+".db")
}

// GetConfigPath returns the config file location. DAYBOOK_CONFIG wins over
// the XDG config home.
func GetConfigPath() string {
	if explicit := os.Getenv("DAYBOOK_CONFIG"); explicit != "" {
		return explicit
	}

	xdg.Reload()

	configHome := xdg.ConfigHome
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), appName, "config.yaml")
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, appName, "config.yaml")
}
