package terraform

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/ado2tf/internal/utils"
)

type repositoryHandler struct{}

func (repositoryHandler) Kind() Kind { return KindRepository }

func (repositoryHandler) RequiredFields() []string {
	return []string{"id", "name", "project.id", "project.name"}
}

// Render emits a repository that is initialised once and then never reconciled or destroyed
func (repositoryHandler) Render(e Entity) *Block {
	name := e.String("name", "")
	identifier := utils.SanitizeIdentifier(name, utils.FallbackRepository)
	parent := utils.SanitizeIdentifier(e.String("project.name", ""), utils.FallbackProjectRef)
	importID := e.String("project.id", "") + "/" + e.String("id", "")

	var b strings.Builder
	fmt.Fprintf(&b, "\nresource \"%s\" \"%s\" {\n", KindRepository.ResourceType(), identifier)
	fmt.Fprintf(&b, "  project_id = %s\n", parentReference(parent))
	fmt.Fprintf(&b, "  name       = \"%s\"\n", name)
	b.WriteString("\n")
	b.WriteString("  initialization {\n")
	b.WriteString("    init_type = \"Clean\"\n")
	b.WriteString("  }\n")
	b.WriteString("\n")
	b.WriteString("  lifecycle {\n")
	b.WriteString("    ignore_changes = [\n")
	b.WriteString("      initialization,\n")
	b.WriteString("    ]\n")
	b.WriteString("    prevent_destroy = true\n")
	b.WriteString("  }\n")
	b.WriteString("}\n")

	return &Block{
		Kind:       KindRepository,
		Identifier: identifier,
		ImportID:   importID,
		Resource:   b.String(),
		Import:     importBlock(KindRepository, importID, identifier),
	}
}
