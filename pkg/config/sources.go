package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Source represents a configuration source.
type Source interface {
	// Load loads configuration from the source into the provided config
	Load(config *Config) error

	// Name returns the name of the source
	Name() string
}

// FileSource loads configuration from a YAML file.
type FileSource struct {
	path string
}

// NewFileSource creates a new file source for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the name of the file source.
func (fs *FileSource) Name() string {
	return "file"
}

// Load parses the YAML file and merges it into config. A missing file is
// not an error; the config keeps its current values.
func (fs *FileSource) Load(config *Config) error {
	if !fileExists(fs.path) {
		return nil
	}

	data, err := os.ReadFile(fs.path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", fs.path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML from %s: %w", fs.path, err)
	}

	return nil
}

// EnvironmentSource loads configuration from environment variables.
type EnvironmentSource struct {
	prefix string
}

// NewEnvironmentSource creates a new environment source.
func NewEnvironmentSource() *EnvironmentSource {
	return &EnvironmentSource{prefix: "MATHDATA_"}
}

// NewEnvironmentSourceWithPrefix creates a new environment source with custom prefix.
func NewEnvironmentSourceWithPrefix(prefix string) *EnvironmentSource {
	return &EnvironmentSource{prefix: prefix}
}

// Name returns the name of the environment source.
func (es *EnvironmentSource) Name() string {
	return "environment"
}

// Load applies recognized environment variables over config.
func (es *EnvironmentSource) Load(config *Config) error {
	if v, ok := es.lookup("DATA_DIR"); ok {
		config.Data.Dir = v
	}
	if v, ok := es.lookup("ALLOW_DOWNLOAD"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sALLOW_DOWNLOAD: %q", es.prefix, v)
		}
		config.Data.AllowDownload = b
	}
	if v, ok := es.lookup("ALLOW_SAMPLES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sALLOW_SAMPLES: %q", es.prefix, v)
		}
		config.Data.AllowSamples = b
	}
	if v, ok := es.lookup("DOWNLOAD_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration for %sDOWNLOAD_TIMEOUT: %q", es.prefix, v)
		}
		config.Data.DownloadTimeout = d
	}
	if v, ok := es.lookup("LOG_LEVEL"); ok {
		config.Logging.Level = strings.ToUpper(v)
	}
	if v, ok := es.lookup("LOG_FILE"); ok {
		config.Logging.File = v
	}

	// Per-family override paths: MATHDATA_GSM8K_PATH etc.
	for _, family := range []string{"gsm8k", "mathqa", "mawps", "custom"} {
		key := strings.ToUpper(family) + "_PATH"
		if v, ok := es.lookup(key); ok {
			if config.Data.FamilyPaths == nil {
				config.Data.FamilyPaths = make(map[string]string)
			}
			config.Data.FamilyPaths[family] = v
		}
	}

	return nil
}

func (es *EnvironmentSource) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(es.prefix + key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// LoadConfig builds a configuration from defaults, then an optional YAML
// file, then environment overrides, and validates the result.
func LoadConfig(path string) (*Config, error) {
	config := GetDefaultConfig()

	sources := []Source{NewEnvironmentSource()}
	if path != "" {
		sources = []Source{NewFileSource(path), NewEnvironmentSource()}
	}

	for _, src := range sources {
		if err := src.Load(config); err != nil {
			return nil, fmt.Errorf("config source %s: %w", src.Name(), err)
		}
	}

	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
