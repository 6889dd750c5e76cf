// File: internal/config/config_desktop.go
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// defaultConfigPath returns the path to the config file on desktop platforms
func defaultConfigPath() (string, error) {
	if dir := os.Getenv("CLIPDECK_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "config.yaml"), nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(configDir, "Clipdeck", "config.yaml"), nil
	case "darwin":
		return filepath.Join(configDir, "com.berrythewa.clipdeck", "config.yaml"), nil
	default:
		return filepath.Join(configDir, "clipdeck", "config.yaml"), nil
	}
}

// defaultRuntimeDir returns where the daemon socket lives
func defaultRuntimeDir() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}
	return os.TempDir(), nil
}
