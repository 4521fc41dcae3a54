package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with durations rendered as strings so the
// written file reads the same way a hand-written one would.
type fileConfig struct {
	Auth struct {
		Token string `yaml:"token,omitempty"`
	} `yaml:"auth,omitempty"`
	API struct {
		Version string `yaml:"version"`
	} `yaml:"api"`
	HTTP struct {
		Timeout    string `yaml:"timeout"`
		MaxRetries int    `yaml:"max_retries"`
		UserAgent  string `yaml:"user_agent,omitempty"`
		ProxyURL   string `yaml:"proxy_url,omitempty"`
	} `yaml:"http"`
	Cache struct {
		Enabled   bool   `yaml:"enabled"`
		TTL       string `yaml:"ttl"`
		Directory string `yaml:"directory"`
	} `yaml:"cache"`
	Output struct {
		Progress bool `yaml:"progress"`
	} `yaml:"output"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// Marshal renders the configuration as YAML readable by LoadFrom
func (c *Config) Marshal() ([]byte, error) {
	var f fileConfig
	f.Auth.Token = c.Auth.Token
	f.API.Version = c.API.Version
	f.HTTP.Timeout = c.HTTP.Timeout.String()
	f.HTTP.MaxRetries = c.HTTP.MaxRetries
	f.HTTP.UserAgent = c.HTTP.UserAgent
	f.HTTP.ProxyURL = c.HTTP.ProxyURL
	f.Cache.Enabled = c.Cache.Enabled
	f.Cache.TTL = c.Cache.TTL.String()
	f.Cache.Directory = c.Cache.Directory
	f.Output.Progress = c.Output.Progress
	f.Logging.Level = c.Logging.Level
	f.Logging.Format = c.Logging.Format
	return yaml.Marshal(&f)
}

// Redacted returns a copy with the access token masked
func (c *Config) Redacted() *Config {
	cp := *c
	if cp.Auth.Token != "" {
		cp.Auth.Token = "****"
	}
	return &cp
}

// Save validates cfg and writes it to path, creating parent directories.
// The file is written with 0600 permissions since it may hold a token.
func Save(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
