package oas2

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oascheck/oaserrors"
	"github.com/erraggy/oascheck/validator"
)

func validationErrors(t *testing.T, spec *Spec, opts ...validator.Option) []string {
	t.Helper()
	err := spec.Validate(opts...)
	if err == nil {
		return nil
	}
	var vErr *oaserrors.ValidationError
	require.True(t, errors.As(err, &vErr), "unexpected error type %T: %v", err, err)
	return vErr.Errors
}

const docHead = `swagger: "2.0"
info: {title: t, version: v}
`

func TestValidatePetstore(t *testing.T) {
	spec := loadPetstore(t)
	assert.NoError(t, spec.Validate())
	assert.NoError(t, spec.Validate(validator.WithFlags(validator.NoFlags)))
}

func TestValidateRoot(t *testing.T) {
	spec := mustParse(t, docHead+`host: https://example.com
basePath: v1
consumes: [json]
paths:
  /a/{x}/{x}: {}
  pets: {}
`)

	assert.Equal(t, []string{
		"#.host: must match pattern `" + hostRegex.String() + "`, found `https://example.com`",
		"#.basePath: must start with `/`, found `v1`",
		"#.consumes[0]: must be a valid media type, found `json`",
		"#.paths[/a/{x}/{x}]: invalid path template: duplicate parameter name `x`",
		"#.paths: `pets` must start with `/`",
	}, validationErrors(t, spec))
}

func TestValidateHost(t *testing.T) {
	tests := []struct {
		host  string
		valid bool
	}{
		{"example.com", true},
		{"example.com:8080", true},
		{"127.0.0.1", true},
		{"example.com:port", false},
		{"{tenant}.example.com", false},
		{"example.com/v1", false},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.valid, hostRegex.MatchString(tt.host))
		})
	}
}

func TestValidateOperations(t *testing.T) {
	spec := mustParse(t, docHead+`paths:
  /a:
    get:
      operationId: dup
      tags: [missing]
      produces: [json]
      parameters:
        - {name: a, in: body, schema: {type: string}}
        - {name: b, in: body, schema: {type: string}}
      responses: {}
    put:
      operationId: dup
      responses:
        "200": {description: ""}
        "404": {$ref: '#/responses/Missing'}
`)

	assert.Equal(t, []string{
		"#.paths[/a].put.operationId: `dup` already in use",
		"#.paths[/a].get.tags[0]: `missing` not found in spec",
		"#.paths[/a].get.produces[0]: must be a valid media type, found `json`",
		"#.paths[/a].get.parameters: only one body parameter allowed, found 2",
		"#.paths[/a].get.responses: must not be empty",
		"#.paths[/a].put.responses.200.description: must not be empty",
		"#.paths[/a].put.responses.404.$ref: `#/responses/Missing` not found",
	}, validationErrors(t, spec))

	assert.Equal(t, []string{
		"#.paths[/a].get.produces[0]: must be a valid media type, found `json`",
		"#.paths[/a].get.parameters: only one body parameter allowed, found 2",
		"#.paths[/a].get.responses: must not be empty",
		"#.paths[/a].put.responses.404.$ref: `#/responses/Missing` not found",
	}, validationErrors(t, spec, validator.WithFlag(
		validator.IgnoreNonUniqOperationIDs,
		validator.IgnoreMissingTags,
		validator.IgnoreEmptyResponseDescription,
	)))
}

func TestValidateBodyParameterByReference(t *testing.T) {
	spec := mustParse(t, docHead+`paths:
  /a:
    parameters:
      - $ref: '#/parameters/payload'
      - {name: inline, in: body, schema: {type: object}}
    post:
      responses: {default: {description: d}}
parameters:
  payload: {name: payload, in: body, schema: {type: object}}
`)

	assert.Equal(t, []string{
		"#.paths[/a].parameters: only one body parameter allowed, found 2",
	}, validationErrors(t, spec))
}

func TestValidateParameters(t *testing.T) {
	spec := mustParse(t, docHead+`paths:
  /a/{id}:
    get:
      responses: {default: {description: d}}
    parameters:
      - {name: id, in: path, type: string}
      - {name: h, in: header, type: string, allowEmptyValue: true}
      - {name: q, in: query, type: string, allowEmptyValue: true}
      - name: list
        in: header
        type: array
        collectionFormat: multi
        items:
          type: array
          collectionFormat: multi
          items: {type: integer, minimum: 5, maximum: 1}
      - {name: n, in: query, type: number, multipleOf: 0}
      - {name: s, in: formData, type: string, pattern: '['}
      - {name: "", in: query, type: boolean}
`)

	_, patternErr := regexp.Compile("[")
	require.Error(t, patternErr)

	const base = "#.paths[/a/{id}].parameters"
	assert.Equal(t, []string{
		base + "[0].id: must be required",
		base + "[1].allowEmptyValue: must not allow empty value",
		base + "[3].collectionFormat: `multi` is not allowed in `header`",
		base + "[3].items.collectionFormat: `multi` is not allowed in `items`",
		base + "[3].items.items.minimum: must be less than or equal to `maximum`",
		base + "[4].multipleOf: must be greater than 0, found `0`",
		base + "[5].pattern: pattern `[` is invalid: " + patternErr.Error(),
		base + "[6].name: must not be empty",
	}, validationErrors(t, spec))
}

func TestValidateHeaders(t *testing.T) {
	spec := mustParse(t, docHead+`paths:
  /a:
    get:
      responses:
        "200":
          description: ok
          headers:
            X-Ids:
              type: array
              collectionFormat: multi
              items: {type: string}
            X-Len: {type: string, minLength: 2, maxLength: 1}
          examples:
            text: hello
`)

	assert.Equal(t, []string{
		"#.paths[/a].get.responses.200.headers[X-Ids].collectionFormat: `multi` is not allowed in `header`",
		"#.paths[/a].get.responses.200.headers[X-Len].minLength: must be less than or equal to `maxLength`",
		"#.paths[/a].get.responses.200.examples[text]: must be a valid media type",
	}, validationErrors(t, spec))
}

func TestValidatePathItemRef(t *testing.T) {
	spec := mustParse(t, docHead+`paths:
  /a: {$ref: '#/paths/~1b'}
  /b:
    get:
      operationId: b
      tags: [nope]
      responses: {default: {description: d}}
  /c: {$ref: '#/paths/~1nope'}
`)

	assert.Equal(t, []string{
		"#/paths/~1b.get.tags[0]: `nope` not found in spec",
		"#.paths[/b].get.tags[0]: `nope` not found in spec",
		"#.paths[/c].$ref: `#/paths/~1nope` not found",
	}, validationErrors(t, spec))
}

func TestValidateSecurity(t *testing.T) {
	spec := mustParse(t, docHead+`paths:
  /a:
    get:
      security:
        - basic: [admin]
        - oauth: [read, delete]
        - missing: []
      responses: {default: {description: d}}
securityDefinitions:
  basic: {type: basic}
  oauth:
    type: oauth2
    flow: implicit
    authorizationUrl: not-a-url
    scopes: {read: r, write: w}
`)

	assert.Equal(t, []string{
		"#.paths[/a].get.security[0][basic]: scopes must be empty for non-oauth2 scheme",
		"#/securityDefinitions/oauth.authorizationUrl: must be a valid URL, found `not-a-url`",
		"#.paths[/a].get.security[1][oauth]: scope `delete` not found in spec by reference `#/securityDefinitions/oauth`",
		"#.paths[/a].get.security[2][missing].$ref: `#/securityDefinitions/missing` not found",
		"#.securityDefinitions[oauth].authorizationUrl: must be a valid URL, found `not-a-url`",
		"#/securityDefinitions/oauth/write: unused",
	}, validationErrors(t, spec))

	assert.Equal(t, []string{
		"#.paths[/a].get.security[0][basic]: scopes must be empty for non-oauth2 scheme",
		"#.paths[/a].get.security[1][oauth]: scope `delete` not found in spec by reference `#/securityDefinitions/oauth`",
		"#.paths[/a].get.security[2][missing].$ref: `#/securityDefinitions/missing` not found",
	}, validationErrors(t, spec, validator.WithFlag(validator.IgnoreInvalidUrls, validator.IgnoreUnusedSecuritySchemes)))
}

func TestValidateScopesOfEscapedSchemeName(t *testing.T) {
	spec := mustParse(t, docHead+`paths:
  /a:
    get:
      security:
        - a/b: [read]
      responses: {default: {description: d}}
securityDefinitions:
  a/b:
    type: oauth2
    flow: implicit
    authorizationUrl: https://auth.example.com
    scopes: {read: r, write: w}
`)

	assert.Equal(t, []string{
		"#/securityDefinitions/a~1b/write: unused",
	}, validationErrors(t, spec))
}

func TestValidateDefinitions(t *testing.T) {
	spec := mustParse(t, docHead+`paths:
  /a:
    get:
      responses:
        "200":
          description: ok
          schema: {$ref: '#/definitions/Used'}
definitions:
  Used:
    type: object
    properties:
      tags: {type: array, items: {$ref: '#/definitions/Nope'}}
  Bad:
    type: object
    discriminator: kind
    properties:
      name: {type: string, minLength: 3, maxLength: 1}
    allOf:
      - {$ref: '#/definitions/Base'}
  Base: {type: integer, multipleOf: -1}
parameters:
  extra: {name: extra, in: query, type: string}
responses:
  Gone: {description: gone}
tags:
  - name: idle
`)

	assert.Equal(t, []string{
		"#/definitions/Used.properties.tags.items.$ref: `#/definitions/Nope` not found",
		"#/tags/idle: unused",
		"#/definitions/Bad: unused",
		"#.definitions[Bad].properties.name.minLength: must be less than or equal to `maxLength`",
		"#/definitions/Base.multipleOf: must be greater than 0, found `-1`",
		"#.definitions[Bad].discriminator: `kind` is not a declared property",
		"#.definitions[Base].multipleOf: must be greater than 0, found `-1`",
		"#/parameters/extra: unused",
		"#/responses/Gone: unused",
	}, validationErrors(t, spec))

	assert.Equal(t, []string{
		"#/definitions/Used.properties.tags.items.$ref: `#/definitions/Nope` not found",
		"#.definitions[Bad].properties.name.minLength: must be less than or equal to `maxLength`",
		"#/definitions/Base.multipleOf: must be greater than 0, found `-1`",
		"#.definitions[Bad].discriminator: `kind` is not a declared property",
		"#.definitions[Base].multipleOf: must be greater than 0, found `-1`",
	}, validationErrors(t, spec, validator.WithFlag(
		validator.IgnoreUnusedTags,
		validator.IgnoreUnusedSchemas,
		validator.IgnoreUnusedParameters,
		validator.IgnoreUnusedResponses,
	)))
}

func TestValidateCustomMethods(t *testing.T) {
	spec := mustParse(t, docHead+`paths:
  /a:
    get:
      operationId: dup
      responses: {default: {description: d}}
    TRACE:
      operationId: dup
      tags: [nope]
      responses: {default: {description: d}}
`)

	require.Contains(t, spec.Paths["/a"].CustomMethods, "trace")
	assert.Equal(t, []string{
		"#.paths[/a].trace.operationId: `dup` already in use",
		"#.paths[/a].trace.tags[0]: `nope` not found in spec",
	}, validationErrors(t, spec))
}
