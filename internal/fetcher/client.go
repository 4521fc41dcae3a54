package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/quantmind-br/ado2tf/internal/cache"
	"github.com/quantmind-br/ado2tf/internal/domain"
)

// Ensure Client implements domain.PageGetter
var _ domain.PageGetter = (*Client)(nil)

// Client is the HTTP client used for Azure DevOps REST calls
type Client struct {
	tlsClient    tls_client.HttpClient
	userAgent    string
	retrier      *Retrier
	cache        domain.Cache
	cacheEnabled bool
	cacheTTL     time.Duration
}

// ClientOptions contains options for creating a Client
type ClientOptions struct {
	Timeout     time.Duration
	MaxRetries  int
	EnableCache bool
	CacheTTL    time.Duration
	Cache       domain.Cache
	UserAgent   string
	ProxyURL    string
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		Timeout:     90 * time.Second,
		MaxRetries:  0,
		EnableCache: false,
		CacheTTL:    time.Hour,
		UserAgent:   "",
		ProxyURL:    "",
	}
}

// NewClient creates a new HTTP client
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 90 * time.Second
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}

	tlsOpts := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(opts.Timeout.Seconds())),
		tls_client.WithClientProfile(profiles.Chrome_131),
	}

	if opts.ProxyURL != "" {
		tlsOpts = append(tlsOpts, tls_client.WithProxyUrl(opts.ProxyURL))
	}

	tlsClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), tlsOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tls client: %w", err)
	}

	retrier := NewRetrier(RetrierOptions{
		MaxRetries:      opts.MaxRetries,
		InitialInterval: 1 * time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
	})

	return &Client{
		tlsClient:    tlsClient,
		userAgent:    opts.UserAgent,
		retrier:      retrier,
		cache:        opts.Cache,
		cacheEnabled: opts.EnableCache,
		cacheTTL:     opts.CacheTTL,
	}, nil
}

// Get fetches a URL with default headers only
func (c *Client) Get(ctx context.Context, url string) (*domain.Response, error) {
	return c.GetWithHeaders(ctx, url, nil)
}

// GetWithHeaders fetches a URL with custom headers.
// Status codes of 400 and above are returned as *domain.TransportError.
func (c *Client) GetWithHeaders(ctx context.Context, url string, extraHeaders map[string]string) (*domain.Response, error) {
	key := cache.PageKey(url, cache.Fingerprint(extraHeaders[HeaderAuthorization]))

	if c.cacheEnabled && c.cache != nil {
		if cached, err := c.getFromCache(ctx, key); err == nil {
			return cached, nil
		}
	}

	resp, err := RetryWithValue(ctx, c.retrier, func() (*domain.Response, error) {
		return c.doRequest(ctx, url, extraHeaders)
	})
	if err != nil {
		return nil, err
	}

	if c.cacheEnabled && c.cache != nil {
		_ = c.saveToCache(ctx, key, resp)
	}

	return resp, nil
}

// doRequest performs a single HTTP request
func (c *Client) doRequest(ctx context.Context, targetURL string, extraHeaders map[string]string) (*domain.Response, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, targetURL, nil)
	if err != nil {
		return nil, domain.NewTransportError(targetURL, 0, fmt.Errorf("failed to create request: %w", err))
	}

	for k, v := range defaultHeaders(c.userAgent) {
		req.Header.Set(k, v)
	}
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.tlsClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Join(ctxErr, err)
		}
		return nil, domain.NewTransportError(targetURL, 0, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Drain a little of the body so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		transportErr := domain.NewTransportError(targetURL, resp.StatusCode, fmt.Errorf("HTTP %d", resp.StatusCode))
		if ShouldRetryStatus(resp.StatusCode) {
			return nil, &domain.RetryableError{
				Err:        transportErr,
				RetryAfter: int(ParseRetryAfter(resp.Header.Get("Retry-After")).Seconds()),
			}
		}
		return nil, transportErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewTransportError(targetURL, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err))
	}

	// Convert fhttp.Header to http.Header
	httpHeaders := make(http.Header, len(resp.Header))
	for k, v := range resp.Header {
		httpHeaders[http.CanonicalHeaderKey(k)] = v
	}

	return &domain.Response{
		StatusCode:  resp.StatusCode,
		Body:        body,
		Headers:     httpHeaders,
		ContentType: resp.Header.Get("Content-Type"),
		URL:         targetURL,
		FromCache:   false,
	}, nil
}

// Close releases client resources
func (c *Client) Close() error {
	// TLS client doesn't have a Close method, but we keep this for interface compliance
	return nil
}

// getFromCache retrieves a response from cache
func (c *Client) getFromCache(ctx context.Context, key string) (*domain.Response, error) {
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	entry, err := cache.UnmarshalEntry(data)
	if err != nil || entry.IsExpired() {
		_ = c.cache.Delete(ctx, key)
		return nil, domain.ErrCacheMiss
	}

	return entry.Response(), nil
}

// saveToCache saves a response to cache
func (c *Client) saveToCache(ctx context.Context, key string, resp *domain.Response) error {
	data, err := cache.NewEntry(resp, c.cacheTTL).Marshal()
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, key, data, c.cacheTTL)
}

// SetCache sets the cache implementation
func (c *Client) SetCache(pageCache domain.Cache) {
	c.cache = pageCache
}

// SetCacheEnabled enables or disables caching
func (c *Client) SetCacheEnabled(enabled bool) {
	c.cacheEnabled = enabled
}
