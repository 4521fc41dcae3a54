package app

import (
	"net/url"
	"strings"

	"github.com/quantmind-br/ado2tf/internal/terraform"
)

// listing endpoints are matched on the path segments that follow "_apis"
var kindPatterns = []struct {
	segments []string
	kind     terraform.Kind
}{
	{segments: []string{"distributedtask", "variablegroups"}, kind: terraform.KindVariableGroup},
	{segments: []string{"git", "repositories"}, kind: terraform.KindRepository},
	{segments: []string{"projects"}, kind: terraform.KindProject},
}

// DetectKind infers the resource kind returned by an Azure DevOps listing URL.
// Only collection endpoints and single-item lookups match; sub-resources such as
// /_apis/git/repositories/{id}/refs do not.
func DetectKind(rawURL string) (terraform.Kind, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return 0, false
	}

	segments := strings.Split(strings.Trim(strings.ToLower(u.Path), "/"), "/")
	apis := -1
	for i, s := range segments {
		if s == "_apis" {
			apis = i
			break
		}
	}
	if apis < 0 {
		return 0, false
	}
	rest := segments[apis+1:]

	for _, p := range kindPatterns {
		if len(rest) < len(p.segments) || len(rest) > len(p.segments)+1 {
			continue
		}
		if equalSegments(rest[:len(p.segments)], p.segments) {
			return p.kind, true
		}
	}
	return 0, false
}

func equalSegments(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
