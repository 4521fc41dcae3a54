package terraform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quantmind-br/ado2tf/internal/domain"
	"github.com/tidwall/gjson"
)

// Block is the rendered resource and import text for one entity
type Block struct {
	Kind       Kind
	Identifier string
	ImportID   string
	Resource   string
	Import     string
}

// Handler renders entities of a single kind
type Handler interface {
	Kind() Kind
	// RequiredFields lists dotted paths that must be truthy, in reporting order
	RequiredFields() []string
	// Render assumes RequiredFields were already checked
	Render(e Entity) *Block
}

// HandlerFor returns the handler of a kind
func HandlerFor(kind Kind) (Handler, error) {
	switch kind {
	case KindProject:
		return projectHandler{}, nil
	case KindRepository:
		return repositoryHandler{}, nil
	case KindVariableGroup:
		return variableGroupHandler{}, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownKind, kind)
}

// Render produces the resource and import blocks for one entity.
// A missing or empty required field yields a *domain.ValidationError and no block.
func Render(kind Kind, entity Entity) (*Block, error) {
	h, err := HandlerFor(kind)
	if err != nil {
		return nil, err
	}
	if missing := entity.FirstMissing(h.RequiredFields()...); missing != "" {
		return nil, domain.NewValidationError(missing, fmt.Sprintf("required %s field is missing or empty", kind))
	}
	return h.Render(entity), nil
}

// importBlock renders the import block binding an existing object to a resource label
func importBlock(kind Kind, id, identifier string) string {
	return fmt.Sprintf("\nimport {\n  id = \"%s\"\n  to = %s.%s\n}\n", id, kind.ResourceType(), identifier)
}

// parentReference renders the project_id expression pointing at a project resource label
func parentReference(projectIdentifier string) string {
	return fmt.Sprintf("azuredevops_project.%s.id", projectIdentifier)
}

// jsonLiteral renders a value as a JSON literal suitable for an HCL attribute.
// Strings keep HTML characters and non-ASCII text unescaped; absent or null values become "".
func jsonLiteral(v gjson.Result) string {
	if !v.Exists() || v.Type == gjson.Null {
		return `""`
	}
	if v.Type != gjson.String {
		return v.Raw
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v.Str); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// RenderAll renders every entity in order, stopping at the first failure.
// The error names the zero-based index of the entity that failed.
func RenderAll(kind Kind, entities []Entity) ([]*Block, error) {
	blocks := make([]*Block, 0, len(entities))
	for i, entity := range entities {
		block, err := Render(kind, entity)
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// Join concatenates the resource texts and the import texts of blocks, in order
func Join(blocks []*Block) (resources, imports string) {
	var r, i strings.Builder
	for _, block := range blocks {
		r.WriteString(block.Resource)
		i.WriteString(block.Import)
	}
	return r.String(), i.String()
}
