package terraform

import (
	"strings"

	"github.com/quantmind-br/ado2tf/internal/domain"
	"github.com/tidwall/gjson"
)

// Entity is a read-only view over one raw JSON object.
// Field order is the order of the underlying document.
type Entity struct {
	raw gjson.Result
}

// NewEntity wraps raw JSON, which must be an object
func NewEntity(raw []byte) (Entity, error) {
	if !gjson.ValidBytes(raw) {
		return Entity{}, domain.NewDecodeError("entity", nil)
	}
	return EntityFromResult(gjson.ParseBytes(raw))
}

// EntityFromResult wraps an already parsed JSON value, which must be an object
func EntityFromResult(r gjson.Result) (Entity, error) {
	if !r.IsObject() {
		return Entity{}, domain.NewValidationError("entity", "expected a JSON object")
	}
	return Entity{raw: r}, nil
}

// Get returns the value at a dotted path
func (e Entity) Get(path string) gjson.Result {
	return e.raw.Get(path)
}

// String returns the value at path as text, or def when it is absent or null
func (e Entity) String(path, def string) string {
	v := e.raw.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return def
	}
	return v.String()
}

// Raw returns the underlying JSON text
func (e Entity) Raw() string {
	return e.raw.Raw
}

// FirstMissing returns the first path whose value is not truthy, or "" when all are present
func (e Entity) FirstMissing(paths ...string) string {
	for _, path := range paths {
		if !Truthy(e.raw.Get(path)) {
			return path
		}
	}
	return ""
}

// Truthy reports whether a value counts as present: not absent, null, false,
// zero, an empty string, or an empty array or object.
func Truthy(v gjson.Result) bool {
	if !v.Exists() {
		return false
	}
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	case gjson.JSON:
		inner := strings.TrimSpace(v.Raw)
		if len(inner) < 2 {
			return false
		}
		return strings.TrimSpace(inner[1:len(inner)-1]) != ""
	}
	return false
}
