package terraform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quantmind-br/ado2tf/internal/utils"
	"github.com/tidwall/gjson"
)

type variableGroupHandler struct{}

func (variableGroupHandler) Kind() Kind { return KindVariableGroup }

func (variableGroupHandler) RequiredFields() []string {
	return []string{"id", "name", "projectReference.id", "projectReference.name"}
}

func (variableGroupHandler) Render(e Entity) *Block {
	name := e.String("name", "")
	identifier := utils.SanitizeIdentifier(name, utils.FallbackVariableGroup)
	parent := utils.SanitizeIdentifier(e.String("projectReference.name", ""), utils.FallbackProjectRef)
	importID := e.String("projectReference.id", "") + "/" + e.String("id", "")

	var b strings.Builder
	fmt.Fprintf(&b, "\nresource \"%s\" \"%s\" {\n", KindVariableGroup.ResourceType(), identifier)
	fmt.Fprintf(&b, "  project_id = %s\n", parentReference(parent))
	fmt.Fprintf(&b, "  name       = \"%s\"\n", name)
	b.WriteString("\n")
	b.WriteString("  variable {\n")
	writeVariables(&b, e.Get("variables"))
	b.WriteString("  }\n")
	b.WriteString("}\n")

	return &Block{
		Kind:       KindVariableGroup,
		Identifier: identifier,
		ImportID:   importID,
		Resource:   b.String(),
		Import:     importBlock(KindVariableGroup, importID, identifier),
	}
}

// writeVariables emits one entry per member of the variables object, in document order.
// Values are quoted as-is; embedded quotes are not escaped.
func writeVariables(b *strings.Builder, variables gjson.Result) {
	if !variables.IsObject() {
		return
	}
	variables.ForEach(func(key, data gjson.Result) bool {
		value := ""
		if v := data.Get("value"); v.Exists() && v.Type != gjson.Null {
			value = scalarText(v)
		}
		fmt.Fprintf(b, "    %s = {\n", key.String())
		fmt.Fprintf(b, "      value     = \"%s\"\n", value)
		fmt.Fprintf(b, "      is_secret = %s\n", secretLiteral(data.Get("isSecret")))
		b.WriteString("    }\n")
		return true
	})
}

// scalarText renders a variable value as text. Booleans print as True/False
// and floats in their shortest round-trip form; objects and arrays stay raw JSON.
func scalarText(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.True:
		return "True"
	case gjson.False:
		return "False"
	case gjson.Number:
		return numberText(v.Raw)
	}
	return v.Raw
}

// numberText keeps integers verbatim and formats anything with a fraction or
// exponent as a float: 1e3 is "1000.0", 1.50 is "1.5", 1e16 is "1e+16".
func numberText(raw string) string {
	if !strings.ContainsAny(raw, ".eE") {
		return raw
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// secretLiteral renders the secrecy flag as a lowercase literal, false when absent
func secretLiteral(v gjson.Result) string {
	switch v.Type {
	case gjson.True:
		return "true"
	case gjson.Null, gjson.False:
		return "false"
	}
	if !v.Exists() {
		return "false"
	}
	return strings.ToLower(v.String())
}
