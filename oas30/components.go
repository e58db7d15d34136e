package oas30

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
	"github.com/erraggy/oascheck/validator"
)

// Components holds the reusable objects of a document. Every entry is
// expected to be referenced from the paths at least once.
type Components struct {
	Schemas         map[string]parser.RefOr[Schema]
	Responses       map[string]parser.RefOr[Response]
	Parameters      map[string]parser.RefOr[Parameter]
	Examples        map[string]parser.RefOr[Example]
	RequestBodies   map[string]parser.RefOr[RequestBody]
	Headers         map[string]parser.RefOr[Header]
	SecuritySchemes map[string]parser.RefOr[SecurityScheme]
	Links           map[string]parser.RefOr[Link]
	Callbacks       map[string]parser.RefOr[Callback]
	Extensions      parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (c *Components) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, parser.Fields{
		"schemas":         parser.MapOf(&c.Schemas),
		"responses":       parser.MapOf(&c.Responses),
		"parameters":      parser.MapOf(&c.Parameters),
		"examples":        parser.MapOf(&c.Examples),
		"requestBodies":   parser.MapOf(&c.RequestBodies),
		"headers":         parser.MapOf(&c.Headers),
		"securitySchemes": parser.MapOf(&c.SecuritySchemes),
		"links":           parser.MapOf(&c.Links),
		"callbacks":       parser.MapOf(&c.Callbacks),
	}, &c.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (c *Components) MarshalNode() *yaml.Node {
	return parser.NewMapping().
		Set("schemas", parser.MapNode(c.Schemas)).
		Set("responses", parser.MapNode(c.Responses)).
		Set("parameters", parser.MapNode(c.Parameters)).
		Set("examples", parser.MapNode(c.Examples)).
		Set("requestBodies", parser.MapNode(c.RequestBodies)).
		Set("headers", parser.MapNode(c.Headers)).
		Set("securitySchemes", parser.MapNode(c.SecuritySchemes)).
		Set("links", parser.MapNode(c.Links)).
		Set("callbacks", parser.MapNode(c.Callbacks)).
		Extensions(c.Extensions).
		Node()
}

// ValidateWithContext implements validator.Validatable. It runs after the
// paths were walked: any entry whose reference was not visited by then is
// unused.
func (c *Components) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	root := ctx.Root
	validator.Sweep(ctx, validator.Table{Field: "schemas", Prefix: pathutil.RefPrefixSchemas, Flag: validator.IgnoreUnusedSchemas, CheckNames: true}, c.Schemas, path, root.resolveSchema)
	validator.Sweep(ctx, validator.Table{Field: "responses", Prefix: pathutil.RefPrefixResponses3, Flag: validator.IgnoreUnusedResponses, CheckNames: true}, c.Responses, path, root.resolveResponse)
	validator.Sweep(ctx, validator.Table{Field: "parameters", Prefix: pathutil.RefPrefixParameters3, Flag: validator.IgnoreUnusedParameters, CheckNames: true}, c.Parameters, path, root.resolveParameter)
	validator.Sweep(ctx, validator.Table{Field: "examples", Prefix: pathutil.RefPrefixExamples, Flag: validator.IgnoreUnusedExamples, CheckNames: true}, c.Examples, path, root.resolveExample)
	validator.Sweep(ctx, validator.Table{Field: "requestBodies", Prefix: pathutil.RefPrefixRequestBodies, Flag: validator.IgnoreUnusedRequestBodies, CheckNames: true}, c.RequestBodies, path, root.resolveRequestBody)
	validator.Sweep(ctx, validator.Table{Field: "headers", Prefix: pathutil.RefPrefixHeaders, Flag: validator.IgnoreUnusedHeaders, CheckNames: true}, c.Headers, path, root.resolveHeader)

	validator.Sweep(ctx, validator.Table{Field: "securitySchemes", Prefix: pathutil.RefPrefixSecuritySchemes, Flag: validator.IgnoreUnusedSecuritySchemes, CheckNames: true}, c.SecuritySchemes, path, root.resolveSecurityScheme)
	for _, name := range parser.SortedKeys(c.SecuritySchemes) {
		ref := pathutil.SecuritySchemeRef(name, false)
		scheme, err := root.resolveSecurityScheme(ref)
		if err != nil || scheme.Type != SecurityTypeOAuth2 {
			continue
		}
		validator.SweepKeys(ctx, scheme.Scopes(), ref+"/", validator.IgnoreUnusedSecuritySchemes)
	}

	validator.Sweep(ctx, validator.Table{Field: "links", Prefix: pathutil.RefPrefixLinks, Flag: validator.IgnoreUnusedLinks, CheckNames: true}, c.Links, path, root.resolveLink)
	validator.Sweep(ctx, validator.Table{Field: "callbacks", Prefix: pathutil.RefPrefixCallbacks, Flag: validator.IgnoreUnusedCallbacks, CheckNames: true}, c.Callbacks, path, root.resolveCallback)
}
