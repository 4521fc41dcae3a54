package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Marshal(t *testing.T) {
	cfg := Default()
	cfg.HTTP.Timeout = 45 * time.Second
	cfg.Cache.TTL = 2 * time.Hour

	data, err := cfg.Marshal()
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "timeout: 45s")
	assert.Contains(t, out, "ttl: 2h0m0s")
	assert.Contains(t, out, "version: 7.1-preview.1")
	assert.NotContains(t, out, "auth:")
	assert.NotContains(t, out, "proxy_url")
}

func TestConfig_Redacted(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Redacted().Auth.Token)

	cfg.Auth.Token = "secret"
	red := cfg.Redacted()
	assert.Equal(t, "****", red.Auth.Token)
	assert.Equal(t, "secret", cfg.Auth.Token)
}

func TestSave_RoundTrip(t *testing.T) {
	isolateEnv(t)
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Auth.Token = "pat"
	cfg.API.Version = "7.0"
	cfg.HTTP.MaxRetries = 3
	cfg.HTTP.Timeout = 30 * time.Second
	cfg.Cache.Enabled = true
	cfg.Logging.Level = "debug"

	require.NoError(t, Save(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	v := viper.New()
	v.SetConfigFile(path)
	loaded, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "pat", loaded.Auth.Token)
	assert.Equal(t, "7.0", loaded.API.Version)
	assert.Equal(t, 3, loaded.HTTP.MaxRetries)
	assert.Equal(t, 30*time.Second, loaded.HTTP.Timeout)
	assert.True(t, loaded.Cache.Enabled)
	assert.Equal(t, "debug", loaded.Logging.Level)
}

func TestSave_RejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "xml"

	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.Error(t, Save(cfg, path))
	assert.NoFileExists(t, path)
}
