// Package paths resolves the configuration directory and the address book
// data file location.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// appName names the per-user configuration directory.
const appName = "addressbook"

// Default data file names, created in the working directory.
const (
	DefaultJSONLFile  = "addressbook.jsonl"
	DefaultSQLiteFile = "addressbook.db"
)

// Environment variable names for location overrides.
const (
	EnvConfigDir = "ADDRESSBOOK_CONFIG_DIR"
	EnvDataFile  = "ADDRESSBOOK_DATA_FILE"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/addressbook (fallback ~/.config/addressbook)
// macOS:   ~/Library/Application Support/addressbook
// Windows: %APPDATA%/addressbook
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
}

// DefaultDataFile returns the data file name used for backend when nothing
// else is configured.
func DefaultDataFile(backend string) string {
	if backend == types.BackendSQLite {
		return DefaultSQLiteFile
	}
	return DefaultJSONLFile
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > ADDRESSBOOK_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataFile returns the data file path following the precedence chain:
// flag > configYAMLValue > ADDRESSBOOK_DATA_FILE env > DefaultDataFile(backend)
// in the working directory.
func ResolveDataFile(flag, configYAMLValue, backend string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataFile); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataFile(backend)), nil
}
