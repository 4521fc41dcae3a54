package domain

//go:generate mockgen -source=interfaces.go -destination=../mocks/domain.go -package=mocks

import (
	"context"
	"net/http"
	"time"
)

// PageGetter performs one authenticated GET for the paginator
type PageGetter interface {
	// GetWithHeaders fetches a URL with the given request headers
	GetWithHeaders(ctx context.Context, url string, headers map[string]string) (*Response, error)
}

// Response represents an HTTP response
type Response struct {
	StatusCode  int         `json:"status_code"`
	Body        []byte      `json:"body"`
	Headers     http.Header `json:"headers,omitempty"`
	ContentType string      `json:"content_type,omitempty"`
	URL         string      `json:"url"`
	FromCache   bool        `json:"-"`
}

// Cache defines the interface for page caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Has checks if a key exists in cache
	Has(ctx context.Context, key string) bool
	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error
	// Close releases cache resources
	Close() error
}
