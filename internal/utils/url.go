package utils

import (
	"net/url"
	"strings"
)

// AppendQueryParam appends key=value to a URL, choosing "&" when the URL
// already carries a query string and "?" otherwise. The value is query-escaped.
func AppendQueryParam(rawURL, key, value string) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + key + "=" + url.QueryEscape(value)
}

// IsHTTPURL checks if a URL uses HTTP or HTTPS
func IsHTTPURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// RedactURL strips user info from a URL so it can be logged
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.User == nil {
		return rawURL
	}
	u.User = nil
	return u.String()
}
