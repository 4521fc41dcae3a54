package tui

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Validation error messages
var (
	ErrRequired      = errors.New("this field is required")
	ErrInvalidNumber = errors.New("must be a valid number")
	ErrInvalidRange  = errors.New("value out of valid range")
)

var apiVersionPattern = regexp.MustCompile(`^\d+\.\d+(-preview(\.\d+)?)?$`)

// ValidateRequired ensures a string value is not empty
func ValidateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrRequired
	}
	return nil
}

// ValidateDuration validates that a string can be parsed as a time.Duration
func ValidateDuration(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil // Empty is valid (will use default)
	}
	_, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration format (use: 30s, 5m, 1h): %w", err)
	}
	return nil
}

// ValidateIntRange validates that a string represents an integer within a range
func ValidateIntRange(min, max int) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return ErrInvalidNumber
		}
		if n < min || n > max {
			return fmt.Errorf("%w: must be between %d and %d", ErrInvalidRange, min, max)
		}
		return nil
	}
}

// ValidateAPIVersion accepts versions such as 7.1 or 7.1-preview.1
func ValidateAPIVersion(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !apiVersionPattern.MatchString(s) {
		return fmt.Errorf("invalid api version %q (use e.g. 7.1 or 7.1-preview.1)", s)
	}
	return nil
}

// ValidateProxyURL accepts empty or an http, https, or socks5 URL with a host
func ValidateProxyURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid proxy URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "socks5":
	default:
		return fmt.Errorf("invalid proxy scheme %q (use http, https or socks5)", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("proxy URL must include a host")
	}
	return nil
}

// ValidateLogLevel validates log level values
func ValidateLogLevel(s string) error {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("invalid log level: must be one of debug, info, warn, error")
}

// ValidateLogFormat validates log format values
func ValidateLogFormat(s string) error {
	switch strings.ToLower(s) {
	case "json", "pretty":
		return nil
	}
	return fmt.Errorf("invalid log format: must be json or pretty")
}
