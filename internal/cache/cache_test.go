package cache

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quantmind-br/ado2tf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEntry_IsExpired tests entry expiration
func TestEntry_IsExpired(t *testing.T) {
	tests := []struct {
		name     string
		entry    *Entry
		expected bool
	}{
		{
			name:     "not expired",
			entry:    &Entry{ExpiresAt: time.Now().Add(1 * time.Hour)},
			expected: false,
		},
		{
			name:     "expired",
			entry:    &Entry{ExpiresAt: time.Now().Add(-1 * time.Hour)},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.entry.IsExpired())
		})
	}
}

// TestEntry_TTL tests remaining time-to-live
func TestEntry_TTL(t *testing.T) {
	live := &Entry{ExpiresAt: time.Now().Add(1 * time.Hour)}
	assert.GreaterOrEqual(t, live.TTL(), 59*time.Minute)
	assert.LessOrEqual(t, live.TTL(), 61*time.Minute)

	expired := &Entry{ExpiresAt: time.Now().Add(-1 * time.Hour)}
	assert.Equal(t, time.Duration(0), expired.TTL())
}

func TestEntry_RoundTrip(t *testing.T) {
	headers := http.Header{}
	headers.Set("X-Ms-Continuationtoken", "tok2")
	resp := &domain.Response{
		StatusCode:  200,
		Body:        []byte(`{"value":[1]}`),
		Headers:     headers,
		ContentType: "application/json",
		URL:         "https://dev.azure.com/org/_apis/projects",
	}

	entry := NewEntry(resp, time.Hour)
	data, err := entry.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEntry(data)
	require.NoError(t, err)
	assert.False(t, decoded.IsExpired())

	restored := decoded.Response()
	assert.True(t, restored.FromCache)
	assert.Equal(t, resp.Body, restored.Body)
	assert.Equal(t, resp.URL, restored.URL)
	assert.Equal(t, "tok2", restored.Headers.Get("x-ms-continuationtoken"))
}

func TestUnmarshalEntry_Invalid(t *testing.T) {
	_, err := UnmarshalEntry([]byte("not json"))
	assert.Error(t, err)
}

// TestDefaultOptions tests default options
func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Empty(t, opts.Directory)
	assert.False(t, opts.InMemory)
	assert.False(t, opts.Logger)
}

// TestGenerateKey tests key generation
func TestGenerateKey(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		same bool
	}{
		{
			name: "host case is ignored",
			a:    "https://DEV.AZURE.COM/org/_apis/projects",
			b:    "https://dev.azure.com/org/_apis/projects",
			same: true,
		},
		{
			name: "default port is ignored",
			a:    "https://dev.azure.com:443/org",
			b:    "https://dev.azure.com/org",
			same: true,
		},
		{
			name: "fragment is ignored",
			a:    "https://dev.azure.com/org#top",
			b:    "https://dev.azure.com/org",
			same: true,
		},
		{
			name: "continuation token distinguishes pages",
			a:    "https://dev.azure.com/org/_apis/projects?continuationToken=a",
			b:    "https://dev.azure.com/org/_apis/projects?continuationToken=b",
			same: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka, kb := GenerateKey(tt.a), GenerateKey(tt.b)
			assert.Len(t, ka, 64)
			if tt.same {
				assert.Equal(t, ka, kb)
			} else {
				assert.NotEqual(t, ka, kb)
			}
		})
	}
}

func TestNormalizeForKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://dev.azure.com", "https://dev.azure.com/"},
		{"https://dev.azure.com/org/../org/_apis", "https://dev.azure.com/org/_apis"},
		{"http://localhost:80/api?x=1", "http://localhost/api?x=1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeForKey(tt.input))
		})
	}
}

func TestPageKey(t *testing.T) {
	url := "https://dev.azure.com/org/_apis/projects"

	anonymous := PageKey(url, "")
	assert.Equal(t, "page:"+GenerateKey(url), anonymous)

	withToken := PageKey(url, Fingerprint("pat-1"))
	assert.NotEqual(t, anonymous, withToken)
	assert.NotEqual(t, withToken, PageKey(url, Fingerprint("pat-2")))
}

func TestFingerprint(t *testing.T) {
	assert.Empty(t, Fingerprint(""))
	fp := Fingerprint("secret")
	assert.Len(t, fp, 8)
	assert.NotContains(t, fp, "secret")
	assert.Equal(t, fp, Fingerprint("secret"))
}

// TestNewBadgerCache tests creating cache
func TestNewBadgerCache(t *testing.T) {
	t.Run("creates in-memory cache", func(t *testing.T) {
		cache, err := NewBadgerCache(Options{InMemory: true})
		require.NoError(t, err)
		assert.NotNil(t, cache)
		require.NoError(t, cache.Close())
	})

	t.Run("creates file-based cache with temp directory", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "nested", "cache")
		cache, err := NewBadgerCache(Options{Directory: tmpDir})
		require.NoError(t, err)
		require.NoError(t, cache.Close())

		_, err = os.Stat(tmpDir)
		assert.NoError(t, err)
	})

	t.Run("creates file-based cache in default location", func(t *testing.T) {
		tmpDir := t.TempDir()
		t.Setenv("HOME", tmpDir)

		cache, err := NewBadgerCache(Options{})
		require.NoError(t, err)
		require.NoError(t, cache.Close())

		_, err = os.Stat(filepath.Join(tmpDir, ".ado2tf", "cache"))
		assert.NoError(t, err)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		cache, err := NewBadgerCache(Options{InMemory: true})
		require.NoError(t, err)
		require.NoError(t, cache.Close())
		assert.NoError(t, cache.Close())
	})
}

// TestBadgerCache_GetSet tests storing and retrieving values
func TestBadgerCache_GetSet(t *testing.T) {
	cache, err := NewBadgerCache(Options{InMemory: true})
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()

	value, err := cache.Get(ctx, "page:missing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.Nil(t, value)

	require.NoError(t, cache.Set(ctx, "page:a", []byte("first"), time.Hour))
	require.NoError(t, cache.Set(ctx, "page:b", []byte("no ttl"), 0))

	got, err := cache.Get(ctx, "page:a")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)

	require.NoError(t, cache.Set(ctx, "page:a", []byte("second"), time.Hour))
	got, err = cache.Get(ctx, "page:a")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)

	got, err = cache.Get(ctx, "page:b")
	require.NoError(t, err)
	assert.Equal(t, []byte("no ttl"), got)
}

// TestBadgerCache_HasDelete tests existence checks and removal
func TestBadgerCache_HasDelete(t *testing.T) {
	cache, err := NewBadgerCache(Options{InMemory: true})
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	assert.False(t, cache.Has(ctx, "k"))

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Hour))
	assert.True(t, cache.Has(ctx, "k"))

	require.NoError(t, cache.Delete(ctx, "k"))
	assert.False(t, cache.Has(ctx, "k"))

	assert.NoError(t, cache.Delete(ctx, "never-set"))
}

// TestBadgerCache_ClearSizeStats tests maintenance helpers
func TestBadgerCache_ClearSizeStats(t *testing.T) {
	cache, err := NewBadgerCache(Options{InMemory: true})
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, cache.Set(ctx, k, []byte(k), time.Hour))
	}

	assert.Equal(t, int64(3), cache.Size())
	stats := cache.Stats()
	assert.Equal(t, int64(3), stats["entries"])
	assert.Contains(t, stats, "lsm_size")
	assert.Contains(t, stats, "vlog_size")

	require.NoError(t, cache.Clear())
	assert.Equal(t, int64(0), cache.Size())
}

// TestBadgerCache_ContextCancellation tests that cancelled contexts short-circuit reads and writes
func TestBadgerCache_ContextCancellation(t *testing.T) {
	cache, err := NewBadgerCache(Options{InMemory: true})
	require.NoError(t, err)
	defer cache.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, cache.Set(ctx, "k", []byte("v"), time.Hour), context.Canceled)
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
