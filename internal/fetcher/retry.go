package fetcher

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/quantmind-br/ado2tf/internal/domain"
)

// Retrier handles retry logic with exponential backoff.
// MaxRetries of zero runs the operation exactly once.
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
}

// RetrierOptions contains options for creating a Retrier
type RetrierOptions struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// DefaultRetrierOptions returns default retrier options
func DefaultRetrierOptions() RetrierOptions {
	return RetrierOptions{
		MaxRetries:      0,
		InitialInterval: 1 * time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
	}
}

// NewRetrier creates a new Retrier with the given options
func NewRetrier(opts RetrierOptions) *Retrier {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = 1 * time.Second
	}
	if opts.MaxInterval <= 0 {
		opts.MaxInterval = 30 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}

	return &Retrier{
		maxRetries:      opts.MaxRetries,
		initialInterval: opts.InitialInterval,
		maxInterval:     opts.MaxInterval,
		multiplier:      opts.Multiplier,
	}
}

// MaxRetries returns how many retries follow the first attempt
func (r *Retrier) MaxRetries() int {
	return r.maxRetries
}

// newBackoff creates a new exponential backoff
func (r *Retrier) newBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.Multiplier = r.multiplier
	b.RandomizationFactor = 0.5
	b.Reset()

	return backoff.WithMaxRetries(b, uint64(r.maxRetries))
}

// Retry executes an operation with exponential backoff
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	_, err := RetryWithValue(ctx, r, func() (struct{}, error) {
		return struct{}{}, operation()
	})
	return err
}

// RetryWithValue executes an operation with exponential backoff and returns a value.
// The returned error is the last operation error with any retry marker removed.
func RetryWithValue[T any](ctx context.Context, r *Retrier, operation func() (T, error)) (T, error) {
	var result T
	var lastErr error

	b := backoff.WithContext(r.newBackoff(), ctx)

	err := backoff.Retry(func() error {
		var err error
		result, err = operation()
		if err == nil {
			lastErr = nil
			return nil
		}

		lastErr = err

		if !domain.IsRetryable(err) {
			return backoff.Permanent(err)
		}

		// Honour a server-supplied delay before the backoff interval starts
		var retryable *domain.RetryableError
		if r.maxRetries > 0 && errors.As(err, &retryable) && retryable.RetryAfter > 0 {
			wait := time.Duration(retryable.RetryAfter) * time.Second
			if wait > r.maxInterval {
				wait = r.maxInterval
			}
			if sleepErr := sleepContext(ctx, wait); sleepErr != nil {
				return backoff.Permanent(sleepErr)
			}
		}

		return err
	}, b)

	if err == nil {
		return result, nil
	}
	if lastErr == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return result, err
	}
	return result, unwrapRetryable(lastErr)
}

// unwrapRetryable strips the retry marker so callers see the underlying error
func unwrapRetryable(err error) error {
	var retryable *domain.RetryableError
	if errors.As(err, &retryable) && retryable.Err != nil {
		return retryable.Err
	}
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ShouldRetryStatus returns true if the HTTP status code should be retried
func ShouldRetryStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}

	// Cloudflare-style origin errors (520-530)
	return statusCode >= 520 && statusCode <= 530
}

// ParseRetryAfter parses the Retry-After header value, either delay-seconds or an HTTP date
func ParseRetryAfter(retryAfter string) time.Duration {
	retryAfter = strings.TrimSpace(retryAfter)
	if retryAfter == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil {
		if seconds <= 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}

	if at, err := http.ParseTime(retryAfter); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
