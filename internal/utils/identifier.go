package utils

import (
	"regexp"
	"strings"
)

// Identifier fallbacks used when a name has no usable characters
const (
	FallbackProject       = "unnamed_project"
	FallbackRepository    = "unnamed_repository"
	FallbackVariableGroup = "unnamed_variablegroup"
	FallbackProjectRef    = "unnamed_project_ref"
)

// nonIdentifierRunRegex matches every maximal run of characters outside [a-z0-9]
var nonIdentifierRunRegex = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizeIdentifier turns a display name into a Terraform block label.
//
// The name is lowercased, each run of characters outside [a-z0-9] collapses
// to a single underscore, and leading/trailing underscores are trimmed. When
// nothing is left the fallback is returned unchanged. The result is stable
// under repeated application.
func SanitizeIdentifier(name, fallback string) string {
	id := nonIdentifierRunRegex.ReplaceAllString(strings.ToLower(name), "_")
	id = strings.Trim(id, "_")
	if id == "" {
		return fallback
	}
	return id
}
