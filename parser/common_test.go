package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

type testSecured struct {
	Security []SecurityRequirement
}

func (s *testSecured) UnmarshalNode(d *Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, Fields{"security": SecurityRequirements(&s.Security)}, nil)
}

func (s *testSecured) MarshalNode() *yaml.Node {
	return NewMapping().Set("security", SecurityRequirementsNode(s.Security)).Node()
}

func TestSecurityRequirements(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []SecurityRequirement
		out  string
	}{
		{
			name: "absent",
			in:   `{}`,
			want: nil,
			out:  `{}`,
		},
		{
			name: "empty list clears",
			in:   `{"security":[]}`,
			want: []SecurityRequirement{},
			out:  `{"security":[]}`,
		},
		{
			name: "optional requirement",
			in:   `{"security":[{}]}`,
			want: []SecurityRequirement{{}},
			out:  `{"security":[{}]}`,
		},
		{
			name: "null scopes become empty",
			in:   `{"security":[{"oauth":["read"],"key":null}]}`,
			want: []SecurityRequirement{{"oauth": {"read"}, "key": {}}},
			out:  `{"security":[{"key":[],"oauth":["read"]}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseWithOptions[testSecured](WithBytes([]byte(tt.in)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Security)

			out, err := MarshalJSON(doc)
			require.NoError(t, err)
			assert.Equal(t, tt.out, string(out))
		})
	}

	t.Run("scopes must be strings", func(t *testing.T) {
		_, err := ParseWithOptions[testSecured](WithBytes([]byte(`{"security":[{"oauth":[{"a":1}]}]}`)))
		require.Error(t, err)
		assert.ErrorContains(t, err, "#.security[0][oauth][0]")
	})
}

func TestServerVariableEnum(t *testing.T) {
	absent, err := ParseWithOptions[ServerVariable](WithBytes([]byte(`default: a`)))
	require.NoError(t, err)
	assert.Nil(t, absent.Enum)

	empty, err := ParseWithOptions[ServerVariable](WithBytes([]byte(`{default: a, enum: []}`)))
	require.NoError(t, err)
	assert.NotNil(t, empty.Enum)
	assert.Empty(t, empty.Enum)

	out, err := MarshalJSON(empty)
	require.NoError(t, err)
	assert.Equal(t, `{"enum":[],"default":"a"}`, string(out))
}

func TestInfoRequiredFields(t *testing.T) {
	_, err := ParseWithOptions[Info](WithBytes([]byte(`title: t`)))
	require.Error(t, err)
	assert.ErrorContains(t, err, "missing field `version`")

	info, err := ParseWithOptions[Info](WithBytes([]byte(`{title: t, version: "1.0", license: {name: MIT}, x-id: 7}`)))
	require.NoError(t, err)
	require.NotNil(t, info.License)
	assert.Equal(t, "MIT", info.License.Name)
	assert.Equal(t, Extensions{"x-id": int64(7)}, info.Extensions)
}

func TestExternalDocsRequiresURL(t *testing.T) {
	_, err := ParseWithOptions[ExternalDocs](WithBytes([]byte(`description: d`)))
	require.Error(t, err)
	assert.ErrorContains(t, err, "missing field `url`")
}
