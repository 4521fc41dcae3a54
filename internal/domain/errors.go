package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrMissingToken indicates no personal access token was configured
	ErrMissingToken = errors.New("access token is not set")

	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited indicates rate limiting was encountered
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout indicates a timeout occurred
	ErrTimeout = errors.New("timeout")

	// ErrInvalidJSON indicates a payload is not valid JSON
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrNoInput indicates no generator input was supplied
	ErrNoInput = errors.New("no JSON input provided")

	// ErrUnknownKind indicates an unsupported resource kind
	ErrUnknownKind = errors.New("unknown resource kind")
)

// ConfigurationError reports a missing or invalid configuration value
type ConfigurationError struct {
	Key string
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for %s: %v", e.Key, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(key string, err error) *ConfigurationError {
	return &ConfigurationError{Key: key, Err: err}
}

// TransportError represents an HTTP-level failure for a page URL
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("request to %s failed: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new TransportError
func NewTransportError(url string, statusCode int, err error) *TransportError {
	return &TransportError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}

// DecodeError indicates a response body or input file is not valid JSON.
// Source is the URL or file path the payload came from.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode JSON from %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a new DecodeError
func NewDecodeError(source string, err error) *DecodeError {
	if err == nil {
		err = ErrInvalidJSON
	}
	return &DecodeError{Source: source, Err: err}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IOError wraps a file read or write failure
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

// RetryableError indicates an error that can be retried
type RetryableError struct {
	Err        error
	RetryAfter int // Seconds to wait before retry, 0 if unknown
}

func (e *RetryableError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("retryable error (retry after %ds): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("retryable error: %v", e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	var retryable *RetryableError
	if errors.As(err, &retryable) {
		return true
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return false
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		switch transportErr.StatusCode {
		case 429, 503, 502, 504:
			return true
		}
		if transportErr.StatusCode >= 520 && transportErr.StatusCode <= 530 {
			return true
		}
	}

	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTimeout)
}
