package oas2

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascheck/internal/httputil"
	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
	"github.com/erraggy/oascheck/validator"
)

// Response describes a single response of an operation.
type Response struct {
	Description string
	Schema      *parser.RefOr[Schema]
	Headers     map[string]Header
	// Examples maps MIME types to example payloads.
	Examples   map[string]any
	Extensions parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (r *Response) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, parser.Fields{
		"description": parser.String(&r.Description),
		"schema":      parser.IntoPtr(&r.Schema),
		"headers":     parser.MapOf(&r.Headers),
		"examples":    parser.AnyMap(&r.Examples),
	}, &r.Extensions, "description")
}

// MarshalNode implements parser.Marshaler.
func (r *Response) MarshalNode() *yaml.Node {
	return parser.NewMapping().
		RequiredString("description", r.Description).
		Set("schema", parser.NodeOf(r.Schema)).
		Set("headers", parser.MapNode(r.Headers)).
		AnyMap("examples", r.Examples).
		Extensions(r.Extensions).
		Node()
}

// ValidateWithContext implements validator.Validatable.
func (r *Response) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	if !ctx.Has(validator.IgnoreEmptyResponseDescription) {
		validator.RequiredString(ctx, r.Description, pathutil.Field(path, "description"))
	}
	validateSchemaRef(ctx, r.Schema, pathutil.Field(path, "schema"))

	headers := pathutil.Field(path, "headers")
	for _, name := range parser.SortedKeys(r.Headers) {
		h := r.Headers[name]
		h.ValidateWithContext(ctx, pathutil.Key(headers, name))
	}

	examples := pathutil.Field(path, "examples")
	for _, mime := range parser.SortedKeys(r.Examples) {
		if !httputil.IsValidMediaType(mime) {
			ctx.Error(pathutil.Key(examples, mime), "must be a valid media type")
		}
	}
}
