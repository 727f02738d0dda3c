package config

import (
	"time"
)

// Config represents the complete configuration for the dataset loader.
type Config struct {
	// Data configuration
	Data DataConfig `yaml:"data" validate:"required"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging,omitempty" validate:"omitempty"`
}

// DataConfig holds configuration for dataset discovery and fallback.
type DataConfig struct {
	// Base directory holding dataset files
	Dir string `yaml:"dir" validate:"required"`

	// Per-family override paths, keyed by family name (gsm8k, mathqa, mawps, custom)
	FamilyPaths map[string]string `yaml:"family_paths,omitempty" validate:"omitempty"`

	// Whether missing datasets may be fetched from their upstream source
	AllowDownload bool `yaml:"allow_download"`

	// Whether missing datasets may fall back to built-in sample data
	AllowSamples bool `yaml:"allow_samples"`

	// Timeout for dataset downloads
	DownloadTimeout time.Duration `yaml:"download_timeout,omitempty" validate:"omitempty,min=1s"`
}

// LoggingConfig holds configuration for the logging system.
type LoggingConfig struct {
	// Log level (DEBUG, INFO, WARN, ERROR, FATAL)
	Level string `yaml:"level,omitempty" validate:"omitempty,oneof=DEBUG INFO WARN ERROR FATAL"`

	// Optional log file path; empty means console only
	File string `yaml:"file,omitempty"`

	// Whether console output uses ANSI colors
	Color bool `yaml:"color"`
}

// GetDefaultConfig returns the default configuration for the loader.
func GetDefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:             "data",
			AllowDownload:   false,
			AllowSamples:    true,
			DownloadTimeout: 60 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "INFO",
			Color: true,
		},
	}
}
