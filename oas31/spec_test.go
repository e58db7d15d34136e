package oas31

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oascheck/internal/testutil"
	"github.com/erraggy/oascheck/oaserrors"
	"github.com/erraggy/oascheck/parser"
	"github.com/erraggy/oascheck/validator"
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

	assert.Equal(t, parser.OASVersion310, spec.OpenAPI)
	assert.Equal(t, "A pet store with webhooks", spec.Info.Summary)
	require.NotNil(t, spec.Info.License)
	assert.Equal(t, "MIT", spec.Info.License.Identifier)
	assert.Equal(t, "https://spec.openapis.org/oas/3.1/dialect/base", spec.JSONSchemaDialect)

	byID := spec.Paths["/pets/{petId}"]
	assert.True(t, byID.IsRef())
	assert.Equal(t, "#/components/pathItems/PetById", byID.Ref.Ref)

	pets := spec.Paths["/pets"].Value
	require.NotNil(t, pets)
	require.NotNil(t, pets.Get)
	require.NotNil(t, pets.Get.Responses)
	assert.Equal(t, []string{"200"}, pets.Get.Responses.SortedCodes())

	hook := spec.Webhooks["newPet"].Value
	require.NotNil(t, hook)
	require.NotNil(t, hook.Post)
	assert.Equal(t, "onNewPet", hook.Post.OperationID)

	item := spec.Components.PathItems["PetById"].Value
	require.NotNil(t, item)
	require.NotNil(t, item.Get)
	assert.Equal(t, "showPetById", item.Get.OperationID)

	pet, ok := spec.Components.Schemas["Pet"].Value.Variant.(*ObjectSchema)
	require.True(t, ok)
	nickname, ok := pet.Properties["nickname"].Value.Variant.(*MultiSchema)
	require.True(t, ok)
	assert.Equal(t, KindMulti, nickname.Kind())
	assert.Equal(t, []string{TypeString, TypeNull}, nickname.Types)
	id, ok := pet.Properties["id"].Value.Variant.(*IntegerSchema)
	require.True(t, ok)
	require.NotNil(t, id.ExclusiveMinimum)
	assert.Equal(t, int64(0), *id.ExclusiveMinimum)
	assert.Contains(t, pet.PatternProperties, "^x-")

	list, ok := pets.Get.Responses.Codes["200"].Value.Content["application/json"].Schema.Value.Variant.(*ArraySchema)
	require.True(t, ok)
	require.NotNil(t, list.Items)
	require.NotNil(t, list.Items.Value)
	assert.Equal(t, "#/components/schemas/Pet", list.Items.Value.Ref.Ref)

	mtls := spec.Components.SecuritySchemes["mtls"].Value
	require.NotNil(t, mtls)
	assert.Equal(t, SecurityTypeMutualTLS, mtls.Type)
	assert.Equal(t, validator.ScopesFree, mtls.ScopeMode())
	assert.Equal(t, validator.ScopesDeclared, spec.Components.SecuritySchemes["oauth"].Value.ScopeMode())

	cb := spec.Components.Callbacks["PetEvent"].Value
	require.NotNil(t, cb)
	assert.Equal(t, "#/components/pathItems/EventHook", cb.Paths["{$request.body#/callbackUrl}"].Ref.Ref)
}

func TestPetstoreRoundTrip(t *testing.T) {
	testutil.AssertRoundTrip(t, loadPetstore(t), Parse)
}

func TestParseVersion(t *testing.T) {
	const rest = "\ninfo: {title: t, version: v}\npaths: {}\n"

	spec := mustParse(t, `openapi: "3.1"`+rest)
	assert.Equal(t, parser.OASVersion312, spec.OpenAPI)

	_, err := Parse([]byte(`openapi: "3.0.3"` + rest))
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown variant `3.0.3`")
}

func TestParseSchemaVariants(t *testing.T) {
	spec := mustParse(t, `openapi: "3.1.0"
info: {title: t, version: v}
components:
  schemas:
    Tuple:
      type: array
      prefixItems:
        - {type: string}
        - {type: number, exclusiveMaximum: 1.5}
      items: false
    Open:
      type: object
      unevaluatedProperties: true
      propertyNames: {type: string, pattern: '^[a-z]+$'}
    Fixed:
      const: 3
      examples: [3]
`)

	tuple, ok := spec.Components.Schemas["Tuple"].Value.Variant.(*ArraySchema)
	require.True(t, ok)
	require.Len(t, tuple.PrefixItems, 2)
	num, ok := tuple.PrefixItems[1].Value.Variant.(*NumberSchema)
	require.True(t, ok)
	require.NotNil(t, num.ExclusiveMaximum)
	assert.InDelta(t, 1.5, *num.ExclusiveMaximum, 0)
	require.NotNil(t, tuple.Items)
	require.NotNil(t, tuple.Items.Bool)
	assert.False(t, *tuple.Items.Bool)

	open, ok := spec.Components.Schemas["Open"].Value.Variant.(*ObjectSchema)
	require.True(t, ok)
	require.NotNil(t, open.UnevaluatedProperties)
	assert.True(t, *open.UnevaluatedProperties.Bool)
	require.NotNil(t, open.PropertyNames)

	fixed, ok := spec.Components.Schemas["Fixed"].Value.Variant.(*ObjectSchema)
	require.True(t, ok)
	assert.Equal(t, int64(3), fixed.Const)
	assert.Equal(t, []any{int64(3)}, fixed.Examples)
}

func TestParseErrors(t *testing.T) {
	const head = "openapi: \"3.1.0\"\ninfo: {title: t, version: v}\n"

	tests := []struct {
		name    string
		body    string
		strict  bool
		wantErr string
	}{
		{
			name:    "unknown security type",
			body:    "components:\n  securitySchemes:\n    s: {type: mtls}\n",
			wantErr: "unknown variant `mtls`",
		},
		{
			name:    "nullable is not a 3.1 keyword",
			body:    "components:\n  schemas:\n    S: {type: string, nullable: true}\n",
			strict:  true,
			wantErr: "unknown field `nullable`",
		},
		{
			name:    "boolean exclusive bound",
			body:    "components:\n  schemas:\n    S: {type: integer, exclusiveMinimum: true}\n",
			wantErr: "#.components.schemas[S].exclusiveMinimum",
		},
		{
			name:    "type list of non strings",
			body:    "components:\n  schemas:\n    S: {type: [{a: 1}]}\n",
			wantErr: "#.components.schemas[S].type[0]",
		},
		{
			name:    "custom method in webhook is decoded as an operation",
			body:    "webhooks:\n  w:\n    fetch: {tags: {a: 1}}\n",
			wantErr: "#.webhooks[w].fetch.tags",
		},
		{
			name:    "mutualTLS fields in strict mode",
			body:    "components:\n  securitySchemes:\n    s: {type: mutualTLS, scheme: basic}\n",
			strict:  true,
			wantErr: "unknown field `scheme`",
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

func TestParseOperationWithoutResponses(t *testing.T) {
	spec := mustParse(t, `openapi: "3.1.0"
info: {title: t, version: v}
paths:
  /a:
    get: {}
`)
	item := spec.Paths["/a"].Value
	require.NotNil(t, item)
	require.NotNil(t, item.Get)
	assert.Nil(t, item.Get.Responses)
}
