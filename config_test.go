package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	return file
}

func TestLoadConfig(t *testing.T) {
	file := writeConfigFile(t, `
log_level: debug
server:
  listen: "127.0.0.1:8099"
  shutdown_timeout_sec: 5
  rate_limit:
    enabled: true
    bucket_size: 10
    refill_token_per_sec: 2.5
detector:
  profiles_dir: testdata/profiles
  short_words: 10
  short_text_limit: 80
  sample_words: 30
metric:
  listen: "127.0.0.1:9199"
`)

	cfg, err := loadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:8099", cfg.Server.Listen)
	assert.Equal(t, 5, cfg.Server.ShutdownTimeoutSec)
	assert.True(t, cfg.Server.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.Server.RateLimit.BucketSize)
	assert.Equal(t, 2.5, cfg.Server.RateLimit.RefillTPS)
	assert.Equal(t, "testdata/profiles", cfg.Detector.ProfilesDir)
	assert.Equal(t, 10, cfg.Detector.ShortWords)
	assert.Equal(t, 80, cfg.Detector.ShortTextLimit)
	assert.Equal(t, 30, cfg.Detector.SampleWords)
	assert.Equal(t, "127.0.0.1:9199", cfg.Metric.Listen)
}

func TestLoadConfigDefaults(t *testing.T) {
	file := writeConfigFile(t, "log_level: warning\n")

	cfg, err := loadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, "warning", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeoutSec)
	assert.False(t, cfg.Server.RateLimit.Enabled)
	assert.Empty(t, cfg.Detector.ProfilesDir)
	assert.Zero(t, cfg.Detector.ShortWords)
	assert.Equal(t, ":9090", cfg.Metric.Listen)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadConfigBadYaml(t *testing.T) {
	file := writeConfigFile(t, "server: [broken\n")
	_, err := loadConfig(file)
	require.Error(t, err)
}
