package oas31

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
	"github.com/erraggy/oascheck/validator"
)

// Parameter locations.
const (
	InQuery  = "query"
	InHeader = "header"
	InPath   = "path"
	InCookie = "cookie"
)

var parameterLocations = []string{InQuery, InHeader, InPath, InCookie}

// stylesByLocation lists the serialization styles each location accepts.
var stylesByLocation = map[string][]string{
	InPath:   {"matrix", "label", "simple"},
	InQuery:  {"form", "spaceDelimited", "pipeDelimited", "deepObject"},
	InHeader: {"simple"},
	InCookie: {"form"},
}

// Parameter is a Parameter Object. In selects the location and with it
// the accepted styles.
type Parameter struct {
	Name            string
	In              string
	Description     string
	Required        bool
	Deprecated      bool
	AllowEmptyValue bool
	Representation
	Extensions parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (p *Parameter) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	n = parser.Resolve(n)
	if in := parser.Lookup(n, "in"); in != nil {
		if err := parser.Enum(&p.In, parameterLocations...)(d, in, pathutil.Field(path, "in")); err != nil {
			return err
		}
	}
	return d.Object(n, path, p.Representation.fields(parser.Fields{
		"name":            parser.String(&p.Name),
		"in":              discriminant,
		"description":     parser.String(&p.Description),
		"required":        parser.Bool(&p.Required),
		"deprecated":      parser.Bool(&p.Deprecated),
		"allowEmptyValue": parser.Bool(&p.AllowEmptyValue),
	}, stylesByLocation[p.In]), &p.Extensions, "name", "in")
}

// MarshalNode implements parser.Marshaler.
func (p *Parameter) MarshalNode() *yaml.Node {
	out := parser.NewMapping().
		RequiredString("name", p.Name).
		RequiredString("in", p.In).
		String("description", p.Description).
		Bool("required", p.Required).
		Bool("deprecated", p.Deprecated).
		Bool("allowEmptyValue", p.AllowEmptyValue)
	return p.Representation.marshal(out).Extensions(p.Extensions).Node()
}

// ValidateWithContext implements validator.Validatable.
func (p *Parameter) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	validator.RequiredString(ctx, p.Name, pathutil.Field(path, "name"))
	if p.In == InPath && !p.Required {
		ctx.Errorf(path, ".%s: must be required", p.Name)
	}
	p.Representation.validate(ctx, path)
}

// Header is a Header Object: a parameter without name and location.
type Header struct {
	Description     string
	Required        bool
	Deprecated      bool
	AllowEmptyValue bool
	Representation
	Extensions parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (h *Header) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, h.Representation.fields(parser.Fields{
		"description":     parser.String(&h.Description),
		"required":        parser.Bool(&h.Required),
		"deprecated":      parser.Bool(&h.Deprecated),
		"allowEmptyValue": parser.Bool(&h.AllowEmptyValue),
	}, stylesByLocation[InHeader]), &h.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (h *Header) MarshalNode() *yaml.Node {
	out := parser.NewMapping().
		String("description", h.Description).
		Bool("required", h.Required).
		Bool("deprecated", h.Deprecated).
		Bool("allowEmptyValue", h.AllowEmptyValue)
	return h.Representation.marshal(out).Extensions(h.Extensions).Node()
}

// ValidateWithContext implements validator.Validatable.
func (h *Header) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	h.Representation.validate(ctx, path)
}

// Representation describes how a parameter or header value is
// serialized: by a schema and a style, or by a single content entry.
type Representation struct {
	Style         string
	Explode       *bool
	AllowReserved bool
	Schema        *parser.RefOr[Schema]
	Example       any
	Examples      map[string]parser.RefOr[Example]
	Content       map[string]MediaType
}

func (r *Representation) fields(f parser.Fields, styles []string) parser.Fields {
	if len(styles) > 0 {
		f["style"] = parser.Enum(&r.Style, styles...)
	} else {
		f["style"] = parser.String(&r.Style)
	}
	f["explode"] = parser.BoolPtr(&r.Explode)
	f["allowReserved"] = parser.Bool(&r.AllowReserved)
	f["schema"] = parser.IntoPtr(&r.Schema)
	f["example"] = parser.Any(&r.Example)
	f["examples"] = parser.MapOf(&r.Examples)
	f["content"] = parser.MapOf(&r.Content)
	return f
}

func (r *Representation) marshal(out *parser.Mapping) *parser.Mapping {
	return out.
		String("style", r.Style).
		BoolPtr("explode", r.Explode).
		Bool("allowReserved", r.AllowReserved).
		Set("schema", parser.NodeOf(r.Schema)).
		Any("example", r.Example).
		Set("examples", parser.MapNode(r.Examples)).
		Set("content", parser.MapNode(r.Content))
}

func (r *Representation) validate(ctx *validator.Context[*Spec], path string) {
	validator.Exclusive(ctx, r.Schema != nil, r.Content != nil, path, "schema and content are mutually exclusive")
	if r.Content != nil && len(r.Content) != 1 {
		ctx.Errorf(path, ".content: must have exactly one entry, found %d", len(r.Content))
	}
	validator.Exclusive(ctx, r.Example != nil, r.Examples != nil, path, "example and examples are mutually exclusive")

	validateSchemaRef(ctx, r.Schema, pathutil.Field(path, "schema"))
	validateExamples(ctx, r.Examples, path)
	validateContent(ctx, r.Content, pathutil.Field(path, "content"))
}

func validateExamples(ctx *validator.Context[*Spec], examples map[string]parser.RefOr[Example], path string) {
	field := pathutil.Field(path, "examples")
	for _, name := range parser.SortedKeys(examples) {
		ex := examples[name]
		validator.ValidateRefOr(ctx, &ex, pathutil.Key(field, name), ctx.Root.resolveExample)
	}
}

// validateContent validates a media type table at "{field}[name]".
func validateContent(ctx *validator.Context[*Spec], content map[string]MediaType, field string) {
	for _, name := range parser.SortedKeys(content) {
		mt := content[name]
		mt.ValidateWithContext(ctx, pathutil.Key(field, name))
	}
}
