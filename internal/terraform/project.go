package terraform

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/ado2tf/internal/utils"
)

// Project defaults applied when the listing omits a field
const (
	DefaultVisibility       = "private"
	DefaultVersionControl   = "Git"
	DefaultWorkItemTemplate = "Agile"
)

type projectHandler struct{}

func (projectHandler) Kind() Kind { return KindProject }

func (projectHandler) RequiredFields() []string {
	return []string{"id", "name"}
}

func (projectHandler) Render(e Entity) *Block {
	name := e.String("name", "")
	identifier := utils.SanitizeIdentifier(name, utils.FallbackProject)
	id := e.String("id", "")

	var b strings.Builder
	fmt.Fprintf(&b, "\nresource \"%s\" \"%s\" {\n", KindProject.ResourceType(), identifier)
	fmt.Fprintf(&b, "  name               = \"%s\"\n", name)
	fmt.Fprintf(&b, "  description        = %s\n", jsonLiteral(e.Get("description")))
	fmt.Fprintf(&b, "  visibility         = \"%s\"\n", e.String("visibility", DefaultVisibility))
	fmt.Fprintf(&b, "  version_control    = \"%s\"\n", e.String("capabilities.versioncontrol.sourceControlType", DefaultVersionControl))
	fmt.Fprintf(&b, "  work_item_template = \"%s\"\n", e.String("capabilities.processTemplate.templateName", DefaultWorkItemTemplate))
	b.WriteString("}\n")

	return &Block{
		Kind:       KindProject,
		Identifier: identifier,
		ImportID:   id,
		Resource:   b.String(),
		Import:     importBlock(KindProject, id, identifier),
	}
}
