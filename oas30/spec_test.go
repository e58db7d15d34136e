package oas30

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oascheck/internal/testutil"
	"github.com/erraggy/oascheck/oaserrors"
	"github.com/erraggy/oascheck/parser"
)

func mustParse(t *testing.T, doc string, opts ...parser.Option) *Spec {
	t.Helper()
	spec, err := Parse([]byte(doc), opts...)
	require.NoError(t, err)
	return spec
}

func loadPetstore(t *testing.T) *Spec {
	t.Helper()
	return testutil.ParseFixture(t, "petstore.yaml", Parse)
}

func TestParsePetstore(t *testing.T) {
	spec := loadPetstore(t)

	assert.Equal(t, parser.OASVersion303, spec.OpenAPI)
	assert.Equal(t, "Petstore", spec.Info.Title)
	require.Len(t, spec.Servers, 1)
	assert.Equal(t, []string{"api", "staging"}, spec.Servers[0].Variables["env"].Enum)

	pets := spec.Paths["/pets"]
	require.NotNil(t, pets.Get)
	require.NotNil(t, pets.Post)
	assert.Nil(t, pets.Put)
	assert.Equal(t, "listPets", pets.Get.OperationID)
	assert.NotNil(t, pets.Get.Responses.Default)
	assert.Equal(t, []string{"200"}, pets.Get.Responses.SortedCodes())

	var methods []string
	for method := range pets.Operations() {
		methods = append(methods, method)
	}
	assert.Equal(t, []string{"get", "post"}, methods)

	pet := spec.Components.Schemas["Pet"]
	require.NotNil(t, pet.Value)
	obj, ok := pet.Value.Variant.(*ObjectSchema)
	require.True(t, ok)
	assert.Equal(t, []string{"id", "name"}, obj.Required)
	assert.Equal(t, "#/components/schemas/Tag", obj.Properties["tag"].Ref.Ref)
	id, ok := obj.Properties["id"].Value.Variant.(*IntegerSchema)
	require.True(t, ok)
	assert.Equal(t, "int64", id.Format)

	oauth := spec.Components.SecuritySchemes["oauth"].Value
	require.NotNil(t, oauth)
	assert.Equal(t, map[string]string{"read": "Read pets", "write": "Write pets"}, oauth.Scopes())
	assert.True(t, oauth.DeclaresScope("read"))
	assert.False(t, oauth.DeclaresScope("admin"))

	cb := spec.Components.Callbacks["PetEvent"].Value
	require.NotNil(t, cb)
	assert.Contains(t, cb.Paths, "{$request.body#/callbackUrl}")
}

func TestPetstoreRoundTrip(t *testing.T) {
	testutil.AssertRoundTrip(t, loadPetstore(t), Parse)
}

func TestParseVersion(t *testing.T) {
	const rest = "\ninfo: {title: t, version: v}\npaths: {}\n"

	spec := mustParse(t, `openapi: "3.0"`+rest)
	assert.Equal(t, parser.OASVersion304, spec.OpenAPI)

	_, err := Parse([]byte(`openapi: "3.1.0"` + rest))
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown variant `3.1.0`, expected one of `3.0.0`, `3.0.1`, `3.0.2`, `3.0.3`, `3.0.4`, `3.0`")
}

func TestParseErrors(t *testing.T) {
	const head = "openapi: \"3.0.3\"\ninfo: {title: t, version: v}\n"

	tests := []struct {
		name    string
		body    string
		strict  bool
		wantErr string
	}{
		{
			name:    "missing paths",
			body:    "",
			wantErr: "missing field `paths`",
		},
		{
			name:    "unknown integer format",
			body:    "paths: {}\ncomponents:\n  schemas:\n    S: {type: integer, format: int128}\n",
			wantErr: "unknown variant `int128`",
		},
		{
			name:    "unknown schema type",
			body:    "paths: {}\ncomponents:\n  schemas:\n    S: {type: strin}\n",
			wantErr: "unknown variant `strin`",
		},
		{
			name:    "security scheme without type",
			body:    "paths: {}\ncomponents:\n  securitySchemes:\n    s: {name: k, in: header}\n",
			wantErr: "missing field `type`",
		},
		{
			name:    "api key without location",
			body:    "paths: {}\ncomponents:\n  securitySchemes:\n    s: {type: apiKey, name: k}\n",
			wantErr: "missing field `in`",
		},
		{
			name:    "oauth2 flow without scopes",
			body:    "paths: {}\ncomponents:\n  securitySchemes:\n    s: {type: oauth2, flows: {password: {tokenUrl: 'https://x'}}}\n",
			wantErr: "missing field `scopes`",
		},
		{
			name:    "response code out of range",
			body:    "paths:\n  /a:\n    get:\n      responses:\n        \"600\": {description: x}\n",
			wantErr: "unknown field `600`",
		},
		{
			name:    "body parameter",
			body:    "paths:\n  /a:\n    parameters:\n      - {name: b, in: body}\n",
			wantErr: "unknown variant `body`",
		},
		{
			name:    "style not allowed in path",
			body:    "paths:\n  /a/{id}:\n    parameters:\n      - {name: id, in: path, required: true, style: form}\n",
			wantErr: "unknown variant `form`",
		},
		{
			name:    "custom method is decoded as an operation",
			body:    "paths:\n  /a:\n    fetch: {}\n",
			wantErr: "#.paths[/a].fetch",
		},
		{
			name:    "custom method repeated after lower-casing",
			body:    "paths:\n  /a:\n    search: {responses: {}}\n    SEARCH: {responses: {}}\n",
			wantErr: "duplicate field `search`",
		},
		{
			name:    "operation without responses",
			body:    "paths:\n  /a:\n    get: {}\n",
			wantErr: "missing field `responses`",
		},
		{
			name:    "unknown field in strict mode",
			body:    "paths:\n  /a:\n    get:\n      foo: 1\n      responses: {}\n",
			strict:  true,
			wantErr: "unknown field `foo`",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(head+tt.body), parser.WithStrictFields(tt.strict))
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)

			var decodeErr *oaserrors.DecodeError
			assert.True(t, errors.As(err, &decodeErr))
		})
	}
}

func TestParseLenientDropsUnknownFields(t *testing.T) {
	spec := mustParse(t, `openapi: "3.0.3"
info: {title: t, version: v}
paths:
  /a:
    GET:
      foo: 1
      responses: {}
`)
	item := spec.Paths["/a"]
	require.NotNil(t, item.Get)
	assert.Equal(t, 0, item.Get.Responses.Len())
}

func TestParseCustomMethods(t *testing.T) {
	spec := mustParse(t, docHead+`paths:
  /a:
    SEARCH:
      operationId: searchA
      responses: {"200": {description: ok}}
    get:
      responses: {"200": {description: ok}}
`)

	item := spec.Paths["/a"]
	require.Contains(t, item.CustomMethods, "search")
	assert.Equal(t, "searchA", item.CustomMethods["search"].OperationID)

	var methods []string
	for method := range item.Operations() {
		methods = append(methods, method)
	}
	assert.Equal(t, []string{"get", "search"}, methods)

	testutil.AssertRoundTrip(t, spec, Parse)

	data, err := parser.MarshalYAML(spec)
	require.NoError(t, err)
	out := string(data)
	require.Contains(t, out, "search:")
	assert.Less(t, strings.Index(out, "get:"), strings.Index(out, "search:"))
}
