package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// TokenEnvVar is the environment variable holding the personal access token
	TokenEnvVar = "AZURE_DEVOPS_EXT_PAT"

	// EnvPrefix is the prefix for ADO2TF_* environment overrides
	EnvPrefix = "ADO2TF"

	// API defaults
	DefaultAPIVersion = "7.1-preview.1"

	// HTTP defaults
	DefaultTimeout    = 90 * time.Second
	DefaultMaxRetries = 0

	// Cache defaults
	DefaultCacheEnabled = false
	DefaultCacheTTL     = time.Hour

	// Output defaults
	DefaultProgress = true

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ado2tf"
	}
	return filepath.Join(home, ".ado2tf")
}

// CacheDir returns the cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		API: APIConfig{
			Version: DefaultAPIVersion,
		},
		HTTP: HTTPConfig{
			Timeout:    DefaultTimeout,
			MaxRetries: DefaultMaxRetries,
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			TTL:       DefaultCacheTTL,
			Directory: CacheDir(),
		},
		Output: OutputConfig{
			Progress: DefaultProgress,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
