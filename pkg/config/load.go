package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file. An explicit
// path overrides the standard search locations; passing "" searches the
// working directory and the OS config directory.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Aurifex")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Aurifex")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "aurifex")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "aurifex")
	}
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) validate() error {
	if c.Units != "mm" {
		return fmt.Errorf("config: unsupported units %q, only mm is supported", c.Units)
	}
	if c.Mesh.ShankSegments < 3 {
		return fmt.Errorf("config: shank_segments must be at least 3, got %d", c.Mesh.ShankSegments)
	}
	if c.Metal.Default == "custom" && c.Metal.CustomDensity <= 0 {
		return fmt.Errorf("config: custom metal needs a positive custom_density")
	}
	return nil
}
