// Package config handles application configuration loading.
package config

// Config holds all application settings.
type Config struct {
	Language string        `yaml:"language"`
	Units    string        `yaml:"units"`
	Metal    MetalConfig   `yaml:"metal"`
	Mesh     MeshConfig    `yaml:"mesh"`
	Logging  LoggingConfig `yaml:"logging"`
}

// MetalConfig holds weight-estimation settings.
type MetalConfig struct {
	Default       string  `yaml:"default"`        // localization key of the default alloy
	CustomDensity float64 `yaml:"custom_density"` // g/cm³, used when default is "custom"
}

// MeshConfig holds shank and tessellation defaults.
type MeshConfig struct {
	ShankSegments int `yaml:"shank_segments"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Language: "en",
		Units:    "mm",
		Metal: MetalConfig{
			Default: "14kt_white",
		},
		Mesh: MeshConfig{
			ShankSegments: 32,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
