package terraform

import (
	"testing"

	"github.com/quantmind-br/ado2tf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestNewEntity(t *testing.T) {
	e, err := NewEntity([]byte(`{"id":"1","project":{"name":"P"}}`))
	require.NoError(t, err)
	assert.Equal(t, "1", e.String("id", ""))
	assert.Equal(t, "P", e.String("project.name", ""))
	assert.Equal(t, `{"id":"1","project":{"name":"P"}}`, e.Raw())

	_, err = NewEntity([]byte(`{"id":`))
	assert.ErrorIs(t, err, domain.ErrInvalidJSON)

	_, err = NewEntity([]byte(`[1]`))
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestEntity_String(t *testing.T) {
	e, err := NewEntity([]byte(`{"a":"x","b":null,"c":"","n":7}`))
	require.NoError(t, err)

	assert.Equal(t, "x", e.String("a", "def"))
	assert.Equal(t, "def", e.String("b", "def"))
	assert.Equal(t, "", e.String("c", "def"))
	assert.Equal(t, "7", e.String("n", "def"))
	assert.Equal(t, "def", e.String("missing", "def"))
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		json     string
		expected bool
	}{
		{`null`, false},
		{`false`, false},
		{`true`, true},
		{`0`, false},
		{`0.0`, false},
		{`12`, true},
		{`""`, false},
		{`"a"`, true},
		{`[]`, false},
		{`[ ]`, false},
		{`[0]`, true},
		{`{}`, false},
		{`{ }`, false},
		{`{"a":1}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truthy(gjson.Parse(tt.json)))
		})
	}

	assert.False(t, Truthy(gjson.Get(`{}`, "missing")))
}

func TestEntity_FirstMissing(t *testing.T) {
	e, err := NewEntity([]byte(`{"id":"1","name":"","project":{"id":"9"}}`))
	require.NoError(t, err)

	assert.Equal(t, "", e.FirstMissing("id"))
	assert.Equal(t, "name", e.FirstMissing("id", "name", "project.name"))
	assert.Equal(t, "project.name", e.FirstMissing("id", "project.id", "project.name"))
}
