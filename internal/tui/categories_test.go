package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCategoryByID(t *testing.T) {
	tests := []struct {
		id       string
		expected string
	}{
		{id: "auth", expected: "Authentication"},
		{id: "api", expected: "API"},
		{id: "http", expected: "HTTP"},
		{id: "cache", expected: "Cache"},
		{id: "output", expected: "Output"},
		{id: "logging", expected: "Logging"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			cat := GetCategoryByID(tt.id)
			if assert.NotNil(t, cat) {
				assert.Equal(t, tt.expected, cat.Name)
			}
		})
	}

	t.Run("invalid_id", func(t *testing.T) {
		assert.Nil(t, GetCategoryByID("nonexistent"))
	})
}

func TestGetCategoryNames(t *testing.T) {
	names := GetCategoryNames()

	assert.Len(t, names, len(Categories))
	assert.Equal(t, "Authentication", names[0])
	assert.Equal(t, "Logging", names[len(names)-1])
}

func TestEveryCategoryHasForm(t *testing.T) {
	values := FromConfig(nil)
	for _, cat := range Categories {
		assert.NotNil(t, GetFormForCategory(cat.ID, values), cat.ID)
	}
	assert.Nil(t, GetFormForCategory("unknown", values))
}
