package fetcher

import (
	"encoding/base64"
	"fmt"

	"github.com/quantmind-br/ado2tf/pkg/version"
)

// Header names used against the Azure DevOps REST API
const (
	HeaderAuthorization     = "Authorization"
	HeaderAccept            = "Accept"
	HeaderUserAgent         = "User-Agent"
	HeaderContinuationToken = "x-ms-continuationtoken"
	// HeaderContinuationTokenAlt is the spelling some older endpoints use
	HeaderContinuationTokenAlt = "ContinuationToken"
)

// BasicAuth returns the Authorization value for a personal access token.
// The username half is left empty.
func BasicAuth(token string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(":"+token))
}

// AcceptJSON returns the Accept value pinning the API version
func AcceptJSON(apiVersion string) string {
	return fmt.Sprintf("application/json; api-version=%s", apiVersion)
}

// APIHeaders returns the headers every paginated request carries
func APIHeaders(token, apiVersion string) map[string]string {
	return map[string]string{
		HeaderAuthorization: BasicAuth(token),
		HeaderAccept:        AcceptJSON(apiVersion),
	}
}

// defaultHeaders returns headers applied before caller-supplied ones
func defaultHeaders(userAgent string) map[string]string {
	if userAgent == "" {
		userAgent = version.UserAgent()
	}
	return map[string]string{
		HeaderUserAgent: userAgent,
		HeaderAccept:    "application/json",
	}
}
