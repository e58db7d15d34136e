package oas31

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
	"github.com/erraggy/oascheck/validator"
)

// MediaType describes the payload of one content type.
type MediaType struct {
	Schema     *parser.RefOr[Schema]
	Example    any
	Examples   map[string]parser.RefOr[Example]
	Encoding   map[string]Encoding
	Extensions parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (m *MediaType) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, parser.Fields{
		"schema":   parser.IntoPtr(&m.Schema),
		"example":  parser.Any(&m.Example),
		"examples": parser.MapOf(&m.Examples),
		"encoding": parser.MapOf(&m.Encoding),
	}, &m.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (m *MediaType) MarshalNode() *yaml.Node {
	return parser.NewMapping().
		Set("schema", parser.NodeOf(m.Schema)).
		Any("example", m.Example).
		Set("examples", parser.MapNode(m.Examples)).
		Set("encoding", parser.MapNode(m.Encoding)).
		Extensions(m.Extensions).
		Node()
}

// ValidateWithContext implements validator.Validatable.
func (m *MediaType) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	validateSchemaRef(ctx, m.Schema, pathutil.Field(path, "schema"))
	validator.Exclusive(ctx, m.Example != nil, m.Examples != nil, path, "example and examples are mutually exclusive")
	validateExamples(ctx, m.Examples, path)

	encoding := pathutil.Field(path, "encoding")
	for _, name := range parser.SortedKeys(m.Encoding) {
		enc := m.Encoding[name]
		enc.ValidateWithContext(ctx, pathutil.Key(encoding, name))
	}
}

// Encoding describes how one property of a multipart or form body is
// serialized.
type Encoding struct {
	ContentType   string
	Headers       map[string]parser.RefOr[Header]
	Style         string
	Explode       *bool
	AllowReserved bool
	Extensions    parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (e *Encoding) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, parser.Fields{
		"contentType":   parser.String(&e.ContentType),
		"headers":       parser.MapOf(&e.Headers),
		"style":         parser.Enum(&e.Style, stylesByLocation[InQuery]...),
		"explode":       parser.BoolPtr(&e.Explode),
		"allowReserved": parser.Bool(&e.AllowReserved),
	}, &e.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (e *Encoding) MarshalNode() *yaml.Node {
	return parser.NewMapping().
		String("contentType", e.ContentType).
		Set("headers", parser.MapNode(e.Headers)).
		String("style", e.Style).
		BoolPtr("explode", e.Explode).
		Bool("allowReserved", e.AllowReserved).
		Extensions(e.Extensions).
		Node()
}

// ValidateWithContext implements validator.Validatable.
func (e *Encoding) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	validateHeaders(ctx, e.Headers, path)
}

func validateHeaders(ctx *validator.Context[*Spec], headers map[string]parser.RefOr[Header], path string) {
	field := pathutil.Field(path, "headers")
	for _, name := range parser.SortedKeys(headers) {
		h := headers[name]
		validator.ValidateRefOr(ctx, &h, pathutil.Key(field, name), ctx.Root.resolveHeader)
	}
}

// RequestBody describes the body of a request.
type RequestBody struct {
	Description string
	Content     map[string]MediaType
	Required    bool
	Extensions  parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (b *RequestBody) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, parser.Fields{
		"description": parser.String(&b.Description),
		"content":     parser.MapOf(&b.Content),
		"required":    parser.Bool(&b.Required),
	}, &b.Extensions, "content")
}

// MarshalNode implements parser.Marshaler.
func (b *RequestBody) MarshalNode() *yaml.Node {
	content := parser.MapNode(b.Content)
	if content == nil {
		content = parser.NewMapping().Node()
	}
	return parser.NewMapping().
		String("description", b.Description).
		Set("content", content).
		Bool("required", b.Required).
		Extensions(b.Extensions).
		Node()
}

// ValidateWithContext implements validator.Validatable.
func (b *RequestBody) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	if len(b.Content) == 0 {
		ctx.Error(path, ".content: must not be empty")
	}
	validateContent(ctx, b.Content, pathutil.Field(path, "content"))
}

// Example is an Example Object. Value and ExternalValue are mutually
// exclusive.
type Example struct {
	Summary       string
	Description   string
	Value         any
	ExternalValue string
	Extensions    parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (e *Example) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, parser.Fields{
		"summary":       parser.String(&e.Summary),
		"description":   parser.String(&e.Description),
		"value":         parser.Any(&e.Value),
		"externalValue": parser.String(&e.ExternalValue),
	}, &e.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (e *Example) MarshalNode() *yaml.Node {
	return parser.NewMapping().
		String("summary", e.Summary).
		String("description", e.Description).
		Any("value", e.Value).
		String("externalValue", e.ExternalValue).
		Extensions(e.Extensions).
		Node()
}

// ValidateWithContext implements validator.Validatable.
func (e *Example) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	validator.Exclusive(ctx, e.Value != nil, e.ExternalValue != "", path, "value and externalValue are mutually exclusive")
	validator.OptionalURL(ctx, e.ExternalValue, pathutil.Field(path, "externalValue"))
}
