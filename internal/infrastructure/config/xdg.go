package config

import (
	"os"
	"path/filepath"
)

const (
	appName      = "sysparse"
	databaseName = "sysparse.sqlite"
	configName   = "config.toml"
	schemaName   = "config.schema.json"
)

// XDGDirs holds the XDG Base Directory paths for the application.
type XDGDirs struct {
	ConfigHome string
	DataHome   string
	StateHome  string
}

// GetXDGDirs returns the XDG Base Directory paths for sysparse:
// - $XDG_CONFIG_HOME/sysparse (default: ~/.config/sysparse)
// - $XDG_DATA_HOME/sysparse (default: ~/.local/share/sysparse)
// - $XDG_STATE_HOME/sysparse (default: ~/.local/state/sysparse)
//
// With ENV=dev everything lives under ./.dev/sysparse.
func GetXDGDirs() (*XDGDirs, error) {
	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		devDir := filepath.Join(cwd, ".dev", appName)
		return &XDGDirs{ConfigHome: devDir, DataHome: devDir, StateHome: devDir}, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return &XDGDirs{
		ConfigHome: filepath.Join(xdgBase("XDG_CONFIG_HOME", homeDir, ".config"), appName),
		DataHome:   filepath.Join(xdgBase("XDG_DATA_HOME", homeDir, ".local", "share"), appName),
		StateHome:  filepath.Join(xdgBase("XDG_STATE_HOME", homeDir, ".local", "state"), appName),
	}, nil
}

func xdgBase(env, home string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// GetConfigDir returns the XDG config directory for sysparse.
func GetConfigDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.ConfigHome, nil
}

// GetDataDir returns the XDG data directory for sysparse.
func GetDataDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.DataHome, nil
}

// GetStateDir returns the XDG state directory for sysparse.
func GetStateDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.StateHome, nil
}

// GetLogDir returns the log directory. Logs are state, not data.
func GetLogDir() (string, error) {
	stateDir, err := GetStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, "logs"), nil
}

// GetConfigFile returns the path to the main configuration file.
func GetConfigFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configName), nil
}

// GetDatabaseFile returns the path of the unit catalog database.
func GetDatabaseFile() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, databaseName), nil
}

// EnsureDirectories creates the XDG directories if they don't exist.
func EnsureDirectories() error {
	dirs, err := GetXDGDirs()
	if err != nil {
		return err
	}
	for _, dir := range []string{dirs.ConfigHome, dirs.DataHome, dirs.StateHome} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
	}
	return nil
}

// GetManDir returns the user man page directory ($XDG_DATA_HOME/man/man1).
func GetManDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgBase("XDG_DATA_HOME", homeDir, ".local", "share"), "man", "man1"), nil
}
