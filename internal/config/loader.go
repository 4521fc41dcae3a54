package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DotEnvFile is loaded from the working directory before reading the environment
const DotEnvFile = ".env"

// Load loads configuration from file, environment, and defaults.
// Uses the global viper instance to access CLI flag bindings.
func Load() (*Config, error) {
	if err := LoadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}
	return LoadFrom(viper.GetViper())
}

// LoadFrom loads configuration through the given viper instance
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// An explicit --config file wins over the search paths
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// Environment variables (ADO2TF_*)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("auth.token", TokenEnvVar, EnvPrefix+"_AUTH_TOKEN"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set are left untouched; a missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("auth.token", "")

	v.SetDefault("api.version", DefaultAPIVersion)

	v.SetDefault("http.timeout", DefaultTimeout)
	v.SetDefault("http.max_retries", DefaultMaxRetries)
	v.SetDefault("http.user_agent", "")
	v.SetDefault("http.proxy_url", "")

	v.SetDefault("cache.enabled", DefaultCacheEnabled)
	v.SetDefault("cache.ttl", DefaultCacheTTL)
	v.SetDefault("cache.directory", CacheDir())

	v.SetDefault("output.progress", DefaultProgress)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0755)
}
