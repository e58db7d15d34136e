package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefBuilders(t *testing.T) {
	assert.Equal(t, "#/components/schemas/Pet", SchemaRef("Pet"))
	assert.Equal(t, "#/components/schemas/a~1b", SchemaRef("a/b"))
	assert.Equal(t, "#/securityDefinitions/oauth", SecuritySchemeRef("oauth", true))
	assert.Equal(t, "#/components/securitySchemes/oauth", SecuritySchemeRef("oauth", false))
	assert.Equal(t, "#/securityDefinitions/a~1b", SecuritySchemeRef("a/b", true))
	assert.Equal(t, "#/components/securitySchemes/oauth/read:pets", ScopeRef(SecuritySchemeRef("oauth", false), "read:pets"))
	assert.Equal(t, "#/tags/pets", TagRef("pets"))
	assert.Equal(t, "#/definitions/a~1b~0c", JoinRef(RefPrefixDefinitions, "a/b~c"))
}

func TestIsInternalRef(t *testing.T) {
	assert.True(t, IsInternalRef("#/components/schemas/Pet"))
	assert.False(t, IsInternalRef("pet.yaml#/Pet"))
	assert.False(t, IsInternalRef("#Pet"))
	assert.False(t, IsInternalRef(""))
}

func TestTrimRef(t *testing.T) {
	tests := []struct {
		name   string
		ref    string
		prefix string
		want   string
		ok     bool
	}{
		{"plain name", "#/components/schemas/Pet", RefPrefixSchemas, "Pet", true},
		{"escaped slash", "#/components/schemas/a~1b", RefPrefixSchemas, "a/b", true},
		{"escaped tilde", "#/definitions/a~0b", RefPrefixDefinitions, "a~b", true},
		{"wrong table", "#/components/responses/Pet", RefPrefixSchemas, "", false},
		{"nested pointer", "#/components/schemas/Pet/properties/id", RefPrefixSchemas, "", false},
		{"empty name", "#/components/schemas/", RefPrefixSchemas, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TrimRef(tt.ref, tt.prefix)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
