package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.Equal(t, "data", cfg.Data.Dir)
	assert.False(t, cfg.Data.AllowDownload)
	assert.True(t, cfg.Data.AllowSamples)
	assert.Equal(t, 60*time.Second, cfg.Data.DownloadTimeout)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mathdata.yaml")
	content := `
data:
  dir: /tmp/datasets
  allow_download: true
  family_paths:
    gsm8k: /tmp/datasets/gsm8k_override.jsonl
logging:
  level: DEBUG
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/datasets", cfg.Data.Dir)
	assert.True(t, cfg.Data.AllowDownload)
	assert.Equal(t, "/tmp/datasets/gsm8k_override.jsonl", cfg.Data.FamilyPaths["gsm8k"])
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	// Unspecified fields keep defaults
	assert.True(t, cfg.Data.AllowSamples)
}

func TestLoadConfigMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.Data.Dir)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("MATHDATA_DATA_DIR", "/env/datasets")
	t.Setenv("MATHDATA_ALLOW_DOWNLOAD", "true")
	t.Setenv("MATHDATA_LOG_LEVEL", "warn")
	t.Setenv("MATHDATA_MAWPS_PATH", "/env/mawps.json")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/env/datasets", cfg.Data.Dir)
	assert.True(t, cfg.Data.AllowDownload)
	assert.Equal(t, "WARN", cfg.Logging.Level)
	assert.Equal(t, "/env/mawps.json", cfg.Data.FamilyPaths["mawps"])
}

func TestLoadConfigInvalidEnvBoolean(t *testing.T) {
	t.Setenv("MATHDATA_ALLOW_DOWNLOAD", "not-a-bool")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MATHDATA_ALLOW_DOWNLOAD")
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data: [not a mapping"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
