// Package paths resolves the configuration directory and the directory
// scenario files are looked up in.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user configuration directory.
const appName = "propdeco"

// Environment variable names for directory overrides.
const (
	EnvConfigDir   = "PROPDECO_CONFIG_DIR"
	EnvScenarioDir = "PROPDECO_SCENARIO_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/propdeco (fallback ~/.config/propdeco)
// macOS:   ~/Library/Application Support/propdeco
// Windows: %APPDATA%/propdeco
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

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > PROPDECO_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveScenarioDir returns the directory relative scenario paths are
// resolved against: flag > configYAMLValue > PROPDECO_SCENARIO_DIR env > the
// working directory.
func ResolveScenarioDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvScenarioDir); env != "" {
		return filepath.Abs(env)
	}
	return platformDir.getwd()
}

// ScenarioPath resolves a scenario file argument. Absolute paths are returned
// cleaned; relative ones are joined onto dir.
func ScenarioPath(dir, arg string) string {
	if filepath.IsAbs(arg) {
		return filepath.Clean(arg)
	}
	return filepath.Join(dir, arg)
}
