package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/quantmind-br/ado2tf/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Auth    AuthConfig    `mapstructure:"auth" yaml:"auth"`
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	HTTP    HTTPConfig    `mapstructure:"http" yaml:"http"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// AuthConfig holds the Azure DevOps personal access token
type AuthConfig struct {
	Token string `mapstructure:"token" yaml:"token"`
}

// APIConfig contains REST API settings
type APIConfig struct {
	Version string `mapstructure:"version" yaml:"version"`
}

// HTTPConfig contains transport settings
type HTTPConfig struct {
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxRetries int           `mapstructure:"max_retries" yaml:"max_retries"`
	UserAgent  string        `mapstructure:"user_agent" yaml:"user_agent"`
	ProxyURL   string        `mapstructure:"proxy_url" yaml:"proxy_url"`
}

// CacheConfig contains page cache settings
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	Progress bool `mapstructure:"progress" yaml:"progress"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration, replacing out-of-range values with defaults
func (c *Config) Validate() error {
	c.Auth.Token = strings.TrimSpace(c.Auth.Token)
	if strings.TrimSpace(c.API.Version) == "" {
		c.API.Version = DefaultAPIVersion
	}
	if c.HTTP.Timeout < time.Second {
		c.HTTP.Timeout = DefaultTimeout
	}
	if c.HTTP.MaxRetries < 0 {
		c.HTTP.MaxRetries = DefaultMaxRetries
	}
	if c.Cache.TTL < time.Minute {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.Directory == "" {
		c.Cache.Directory = CacheDir()
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	case "":
		c.Logging.Level = DefaultLogLevel
	default:
		return fmt.Errorf("invalid logging.level %q (use debug, info, warn or error)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "pretty", "json":
	case "":
		c.Logging.Format = DefaultLogFormat
	default:
		return fmt.Errorf("invalid logging.format %q (use pretty or json)", c.Logging.Format)
	}
	return nil
}

// RequireToken returns the access token or a ConfigurationError when it is unset
func (c *Config) RequireToken() (string, error) {
	if c.Auth.Token == "" {
		return "", domain.NewConfigurationError(TokenEnvVar, domain.ErrMissingToken)
	}
	return c.Auth.Token, nil
}
