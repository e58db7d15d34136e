package oas2

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

	assert.Equal(t, parser.OASVersion20, spec.Swagger)
	assert.Equal(t, "petstore.example.com:8080", spec.Host)
	assert.Equal(t, "/v1", spec.BasePath)
	assert.Equal(t, []string{SchemeHTTPS, SchemeWSS}, spec.Schemes)
	assert.Len(t, spec.Paths, 3)

	list := spec.Paths["/pets"].Get
	require.NotNil(t, list)
	require.Len(t, list.Parameters, 2)
	assert.Equal(t, "#/parameters/limit", list.Parameters[0].Ref.Ref)

	status := list.Parameters[1].Value
	require.NotNil(t, status)
	arr, ok := status.Value.(*ArrayValue)
	require.True(t, ok)
	assert.Equal(t, parser.CollectionMulti, arr.CollectionFormat)
	require.NotNil(t, arr.Items)
	item, ok := arr.Items.Value.(*StringValue)
	require.True(t, ok)
	assert.Equal(t, []string{"available", "sold"}, item.Enum)

	ok200 := list.Responses.Codes["200"].Value
	require.NotNil(t, ok200)
	rate, ok := ok200.Headers["X-Rate-Limit"].Value.(*IntegerValue)
	require.True(t, ok)
	assert.Equal(t, parser.FormatInt32, rate.Format)
	assert.Contains(t, ok200.Examples, "application/json")
	require.NotNil(t, list.Responses.Default)
	assert.Equal(t, "#/responses/Error", list.Responses.Default.Ref.Ref)

	create := spec.Paths["/pets"].Post
	require.NotNil(t, create)
	body := create.Parameters[0].Value
	require.NotNil(t, body)
	assert.Equal(t, InBody, body.In)
	assert.Nil(t, body.Value)
	require.NotNil(t, body.Schema)
	assert.Equal(t, "#/definitions/NewPet", body.Schema.Ref.Ref)

	upload := spec.Paths["/pets/{petId}/photo"].Post
	require.NotNil(t, upload)
	photo := upload.Parameters[1].Value
	require.NotNil(t, photo)
	assert.Equal(t, TypeFile, photo.Value.Kind())
	file, ok := upload.Responses.Codes["200"].Value.Schema.Value.Variant.(*FileSchema)
	require.True(t, ok)
	assert.Equal(t, TypeFile, file.Kind())

	limit, ok := spec.Parameters["limit"].Value.(*IntegerValue)
	require.True(t, ok)
	require.NotNil(t, limit.Minimum)
	require.NotNil(t, limit.Maximum)
	assert.Equal(t, int64(1), *limit.Minimum)
	assert.Equal(t, int64(100), *limit.Maximum)

	pet, ok := spec.Definitions["Pet"].Variant.(*ObjectSchema)
	require.True(t, ok)
	require.Len(t, pet.AllOf, 2)
	assert.Equal(t, "#/definitions/NewPet", pet.AllOf[0].Ref.Ref)

	oauth := spec.SecurityDefinitions["oauth"]
	assert.Equal(t, FlowAccessCode, oauth.Flow)
	assert.Equal(t, map[string]string{"read": "Read pets", "write": "Modify pets"}, oauth.Scopes)
	assert.Equal(t, validator.ScopesDeclared, oauth.ScopeMode())
	basic := spec.SecurityDefinitions["basic"]
	assert.Equal(t, validator.ScopesForbidden, basic.ScopeMode())
}

func TestPetstoreRoundTrip(t *testing.T) {
	testutil.AssertRoundTrip(t, loadPetstore(t), Parse)
}

func TestParseVersion(t *testing.T) {
	const rest = "\ninfo: {title: t, version: v}\npaths: {}\n"

	spec := mustParse(t, "swagger: 2.0"+rest)
	assert.Equal(t, parser.OASVersion20, spec.Swagger)

	_, err := Parse([]byte(`swagger: "3.0.0"` + rest))
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown variant `3.0.0`")

	_, err = Parse([]byte(`openapi: "3.0.0"` + rest))
	require.Error(t, err)
	assert.ErrorContains(t, err, "missing field `swagger`")
}

func TestParseErrors(t *testing.T) {
	const head = "swagger: \"2.0\"\ninfo: {title: t, version: v}\n"

	tests := []struct {
		name    string
		body    string
		strict  bool
		wantErr string
	}{
		{
			name:    "unknown transfer scheme",
			body:    "schemes: [ftp]\npaths: {}\n",
			wantErr: "#.schemes[0]",
		},
		{
			name:    "cookie parameters are 3.x only",
			body:    "paths: {}\nparameters:\n  p: {name: p, in: cookie, type: string}\n",
			wantErr: "unknown variant `cookie`",
		},
		{
			name:    "file outside formData",
			body:    "paths: {}\nparameters:\n  p: {name: p, in: query, type: file}\n",
			wantErr: "unknown variant `file`",
		},
		{
			name:    "non-body parameter without type",
			body:    "paths: {}\nparameters:\n  p: {name: p, in: query}\n",
			wantErr: "missing field `type`",
		},
		{
			name:    "array without items",
			body:    "paths: {}\nparameters:\n  p: {name: p, in: query, type: array}\n",
			wantErr: "missing field `items`",
		},
		{
			name:    "body without schema",
			body:    "paths: {}\nparameters:\n  p: {name: p, in: body}\n",
			wantErr: "missing field `schema`",
		},
		{
			name:    "unknown collection format",
			body:    "paths: {}\nparameters:\n  p: {name: p, in: query, type: array, collectionFormat: json, items: {type: string}}\n",
			wantErr: "unknown variant `json`",
		},
		{
			name:    "password flow without token url",
			body:    "paths: {}\nsecurityDefinitions:\n  o: {type: oauth2, flow: password, scopes: {}}\n",
			wantErr: "missing field `tokenUrl`",
		},
		{
			name:    "unknown flow",
			body:    "paths: {}\nsecurityDefinitions:\n  o: {type: oauth2, flow: code, scopes: {}}\n",
			wantErr: "unknown variant `code`",
		},
		{
			name:    "http is a 3.x scheme type",
			body:    "paths: {}\nsecurityDefinitions:\n  h: {type: http, scheme: basic}\n",
			wantErr: "unknown variant `http`",
		},
		{
			name:    "basic scheme fields in strict mode",
			body:    "paths: {}\nsecurityDefinitions:\n  b: {type: basic, name: n}\n",
			strict:  true,
			wantErr: "unknown field `name`",
		},
		{
			name:    "operation without responses",
			body:    "paths:\n  /a:\n    get: {}\n",
			wantErr: "missing field `responses`",
		},
		{
			name:    "trace has no fixed slot but is still an operation",
			body:    "paths:\n  /a:\n    trace: {}\n",
			wantErr: "#.paths[/a].trace",
		},
		{
			name:    "integer bound is not a number",
			body:    "paths: {}\ndefinitions:\n  D: {type: integer, minimum: 1.5}\n",
			wantErr: "#.definitions[D].minimum",
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

func TestParseSchemaWithoutType(t *testing.T) {
	spec := mustParse(t, `swagger: "2.0"
info: {title: t, version: v}
paths: {}
definitions:
  Any: {description: anything}
  Flag: {type: boolean, default: false}
`)

	anything, ok := spec.Definitions["Any"].Variant.(*ObjectSchema)
	require.True(t, ok)
	assert.Equal(t, "anything", anything.Description)

	flag, ok := spec.Definitions["Flag"].Variant.(*BooleanSchema)
	require.True(t, ok)
	require.NotNil(t, flag.Default)
	assert.False(t, *flag.Default)
}
