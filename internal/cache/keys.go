package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path"
	"strings"
)

// GenerateKey generates a cache key from a URL
// The key is a SHA256 hash of the normalized URL
func GenerateKey(rawURL string) string {
	normalized := normalizeForKey(rawURL)
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

// GenerateKeyWithPrefix generates a cache key with a prefix
func GenerateKeyWithPrefix(prefix, rawURL string) string {
	key := GenerateKey(rawURL)
	return prefix + ":" + key
}

// normalizeForKey normalizes a URL for consistent key generation.
// The query string is kept: continuation tokens and api-version select different pages.
func normalizeForKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	if u.Scheme == "" {
		u.Scheme = "https"
	}

	u.Host = strings.ToLower(u.Host)

	// Remove default ports
	if (u.Scheme == "http" && u.Port() == "80") ||
		(u.Scheme == "https" && u.Port() == "443") {
		u.Host = u.Hostname()
	}

	if u.Path == "" {
		u.Path = "/"
	} else {
		u.Path = path.Clean(u.Path)
	}

	u.Fragment = ""

	return u.String()
}

// PrefixPage is the key prefix for cached API pages
const PrefixPage = "page"

// PageKey generates a cache key for an API page.
// Pages fetched with different tokens share a URL, so the token fingerprint is mixed in.
func PageKey(url, tokenFingerprint string) string {
	if tokenFingerprint == "" {
		return GenerateKeyWithPrefix(PrefixPage, url)
	}
	return GenerateKeyWithPrefix(PrefixPage+":"+tokenFingerprint, url)
}

// Fingerprint returns a short, non-reversible tag for a secret
func Fingerprint(secret string) string {
	if secret == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(hash[:4])
}
