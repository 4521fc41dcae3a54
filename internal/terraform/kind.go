package terraform

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/ado2tf/internal/domain"
)

// Kind is the closed set of resource kinds a block can be rendered for
type Kind int

const (
	KindProject Kind = iota + 1
	KindRepository
	KindVariableGroup
)

// Kinds returns every supported kind in a stable order
func Kinds() []Kind {
	return []Kind{KindProject, KindRepository, KindVariableGroup}
}

// String returns the canonical CLI name of the kind
func (k Kind) String() string {
	switch k {
	case KindProject:
		return "project"
	case KindRepository:
		return "repository"
	case KindVariableGroup:
		return "variablegroup"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ResourceType returns the azuredevops provider resource type
func (k Kind) ResourceType() string {
	switch k {
	case KindProject:
		return "azuredevops_project"
	case KindRepository:
		return "azuredevops_git_repository"
	case KindVariableGroup:
		return "azuredevops_variable_group"
	}
	return ""
}

// ParseKind resolves a kind name or alias, case-insensitively
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "project", "projects":
		return KindProject, nil
	case "repository", "repositories", "repo", "repos":
		return KindRepository, nil
	case "variablegroup", "variablegroups", "variable-group", "variable_group", "vg":
		return KindVariableGroup, nil
	}
	return 0, fmt.Errorf("%w: %q (use project, repository or variablegroup)", domain.ErrUnknownKind, s)
}
