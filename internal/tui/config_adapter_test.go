package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/ado2tf/internal/config"
)

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{
		Auth: config.AuthConfig{Token: "pat"},
		API:  config.APIConfig{Version: "7.0"},
		HTTP: config.HTTPConfig{
			Timeout:    60 * time.Second,
			MaxRetries: 3,
			UserAgent:  "ado2tf-test",
			ProxyURL:   "http://proxy:8080",
		},
		Cache: config.CacheConfig{
			Enabled:   true,
			TTL:       48 * time.Hour,
			Directory: "/tmp/cache",
		},
		Output: config.OutputConfig{Progress: true},
		Logging: config.LoggingConfig{
			Level:  "debug",
			Format: "json",
		},
	}

	values := FromConfig(cfg)

	assert.Equal(t, "pat", values.Token)
	assert.Equal(t, "7.0", values.APIVersion)
	assert.Equal(t, "1m0s", values.Timeout)
	assert.Equal(t, "3", values.MaxRetries)
	assert.Equal(t, "ado2tf-test", values.UserAgent)
	assert.Equal(t, "http://proxy:8080", values.ProxyURL)
	assert.True(t, values.CacheEnabled)
	assert.Equal(t, "48h0m0s", values.CacheTTL)
	assert.Equal(t, "/tmp/cache", values.CacheDirectory)
	assert.True(t, values.Progress)
	assert.Equal(t, "debug", values.LogLevel)
	assert.Equal(t, "json", values.LogFormat)
}

func TestFromConfig_Nil(t *testing.T) {
	values := FromConfig(nil)
	assert.Equal(t, config.DefaultAPIVersion, values.APIVersion)
	assert.Equal(t, "1m30s", values.Timeout)
	assert.Equal(t, "0", values.MaxRetries)
}

func TestToConfig(t *testing.T) {
	values := &ConfigValues{
		Token:          "pat",
		APIVersion:     " 7.1 ",
		Timeout:        "30s",
		MaxRetries:     "2",
		UserAgent:      "agent",
		CacheEnabled:   true,
		CacheTTL:       "24h",
		CacheDirectory: "~/.ado2tf/cache",
		Progress:       false,
		LogLevel:       "warn",
		LogFormat:      "pretty",
	}

	cfg, err := values.ToConfig()
	require.NoError(t, err)

	assert.Equal(t, "pat", cfg.Auth.Token)
	assert.Equal(t, "7.1", cfg.API.Version)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 2, cfg.HTTP.MaxRetries)
	assert.Equal(t, "agent", cfg.HTTP.UserAgent)
	assert.Empty(t, cfg.HTTP.ProxyURL)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "~/.ado2tf/cache", cfg.Cache.Directory)
	assert.False(t, cfg.Output.Progress)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "pretty", cfg.Logging.Format)
}

func TestToConfig_EmptyFieldsUseDefaults(t *testing.T) {
	cfg, err := (&ConfigValues{}).ToConfig()
	require.NoError(t, err)

	assert.Equal(t, config.DefaultAPIVersion, cfg.API.Version)
	assert.Equal(t, config.DefaultTimeout, cfg.HTTP.Timeout)
	assert.Equal(t, config.DefaultMaxRetries, cfg.HTTP.MaxRetries)
	assert.Equal(t, config.DefaultCacheTTL, cfg.Cache.TTL)
	assert.Equal(t, config.CacheDir(), cfg.Cache.Directory)
	assert.Equal(t, config.DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, config.DefaultLogFormat, cfg.Logging.Format)
}

func TestToConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values ConfigValues
	}{
		{name: "invalid_timeout", values: ConfigValues{Timeout: "soon"}},
		{name: "invalid_cache_ttl", values: ConfigValues{CacheTTL: "30"}},
		{name: "invalid_max_retries", values: ConfigValues{MaxRetries: "many"}},
		{name: "invalid_log_level", values: ConfigValues{LogLevel: "trace"}},
		{name: "invalid_log_format", values: ConfigValues{LogFormat: "text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.values.ToConfig()
			assert.Error(t, err)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	original := config.Default()
	original.Auth.Token = "pat"
	original.HTTP.MaxRetries = 4
	original.Cache.Enabled = true

	cfg, err := FromConfig(original).ToConfig()
	require.NoError(t, err)
	assert.Equal(t, original, cfg)
}
