package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quantmind-br/ado2tf/internal/config"
)

// ConfigValues holds form values that map to Config struct.
// Numeric and duration fields are stored as strings for form editing.
type ConfigValues struct {
	Token string

	APIVersion string

	Timeout    string
	MaxRetries string
	UserAgent  string
	ProxyURL   string

	CacheEnabled   bool
	CacheTTL       string
	CacheDirectory string

	Progress bool

	LogLevel  string
	LogFormat string
}

// FromConfig converts a Config to ConfigValues for form editing.
// A nil config yields the defaults.
func FromConfig(cfg *config.Config) *ConfigValues {
	if cfg == nil {
		cfg = config.Default()
	}
	return &ConfigValues{
		Token: cfg.Auth.Token,

		APIVersion: cfg.API.Version,

		Timeout:    formatDuration(cfg.HTTP.Timeout),
		MaxRetries: strconv.Itoa(cfg.HTTP.MaxRetries),
		UserAgent:  cfg.HTTP.UserAgent,
		ProxyURL:   cfg.HTTP.ProxyURL,

		CacheEnabled:   cfg.Cache.Enabled,
		CacheTTL:       formatDuration(cfg.Cache.TTL),
		CacheDirectory: cfg.Cache.Directory,

		Progress: cfg.Output.Progress,

		LogLevel:  cfg.Logging.Level,
		LogFormat: cfg.Logging.Format,
	}
}

// ToConfig converts ConfigValues back to a validated Config
func (v *ConfigValues) ToConfig() (*config.Config, error) {
	timeout, err := parseDurationOrDefault(v.Timeout, config.DefaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout: %w", err)
	}

	maxRetries, err := parseIntOrDefault(v.MaxRetries, config.DefaultMaxRetries)
	if err != nil {
		return nil, fmt.Errorf("invalid max_retries: %w", err)
	}

	cacheTTL, err := parseDurationOrDefault(v.CacheTTL, config.DefaultCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid cache_ttl: %w", err)
	}

	cfg := &config.Config{
		Auth: config.AuthConfig{
			Token: v.Token,
		},
		API: config.APIConfig{
			Version: strings.TrimSpace(v.APIVersion),
		},
		HTTP: config.HTTPConfig{
			Timeout:    timeout,
			MaxRetries: maxRetries,
			UserAgent:  strings.TrimSpace(v.UserAgent),
			ProxyURL:   strings.TrimSpace(v.ProxyURL),
		},
		Cache: config.CacheConfig{
			Enabled:   v.CacheEnabled,
			TTL:       cacheTTL,
			Directory: strings.TrimSpace(v.CacheDirectory),
		},
		Output: config.OutputConfig{
			Progress: v.Progress,
		},
		Logging: config.LoggingConfig{
			Level:  v.LogLevel,
			Format: v.LogFormat,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

func parseDurationOrDefault(s string, defaultVal time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(s)
}

func parseIntOrDefault(s string, defaultVal int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}
