package oas2

import (
	"slices"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
	"github.com/erraggy/oascheck/validator"
)

// Parameter locations.
const (
	InQuery    = "query"
	InHeader   = "header"
	InPath     = "path"
	InFormData = "formData"
	InBody     = "body"
)

var parameterLocations = []string{InBody, InHeader, InQuery, InPath, InFormData}

var formDataTypes = append(slices.Clone(valueTypes), TypeFile)

// Parameter is a Parameter Object. A body parameter carries a Schema;
// any other location carries a typed Value.
type Parameter struct {
	Name        string
	In          string
	Description string
	Required    bool

	// body
	Schema *parser.RefOr[Schema]

	// query, header, path and formData
	AllowEmptyValue bool
	Value           Value

	Extensions parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (p *Parameter) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	n = parser.Resolve(n)
	in := parser.Lookup(n, "in")
	if in == nil {
		if n == nil || n.Kind != yaml.MappingNode {
			return d.Object(n, path, nil, nil)
		}
		return d.Errorf(n, path, "missing field `in`")
	}
	if err := parser.Enum(&p.In, parameterLocations...)(d, in, pathutil.Field(path, "in")); err != nil {
		return err
	}

	fields := parser.Fields{
		"name":        parser.String(&p.Name),
		"in":          discriminant,
		"description": parser.String(&p.Description),
		"required":    parser.Bool(&p.Required),
	}
	if p.In == InBody {
		fields["schema"] = parser.IntoPtr(&p.Schema)
		return d.Object(n, path, fields, &p.Extensions, "name", "in", "schema")
	}

	fields["allowEmptyValue"] = parser.Bool(&p.AllowEmptyValue)
	types := valueTypes
	if p.In == InFormData {
		types = formDataTypes
	}
	v, err := decodeValue(d, n, path, types, fields, &p.Extensions, "name", "in")
	p.Value = v
	return err
}

// MarshalNode implements parser.Marshaler.
func (p *Parameter) MarshalNode() *yaml.Node {
	out := parser.NewMapping().
		RequiredString("name", p.Name).
		RequiredString("in", p.In).
		String("description", p.Description).
		Bool("required", p.Required)
	if p.In == InBody {
		schema := parser.NodeOf(p.Schema)
		if schema == nil {
			schema = parser.NewMapping().Node()
		}
		out.Set("schema", schema)
	} else {
		out.Bool("allowEmptyValue", p.AllowEmptyValue)
		marshalValue(out, p.Value)
	}
	return out.Extensions(p.Extensions).Node()
}

// ValidateWithContext implements validator.Validatable.
func (p *Parameter) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	validator.RequiredString(ctx, p.Name, pathutil.Field(path, "name"))
	if p.In == InPath && !p.Required {
		ctx.Errorf(path, ".%s: must be required", p.Name)
	}
	if p.In == InBody {
		validateSchemaRef(ctx, p.Schema, pathutil.Field(path, "schema"))
		return
	}
	if p.AllowEmptyValue && p.In != InQuery && p.In != InFormData {
		ctx.Error(path, ".allowEmptyValue: must not allow empty value")
	}
	if p.Value != nil {
		p.Value.validate(ctx, path, p.In)
	}
}

// validateParameters validates a parameter list at "{path}.parameters[i]"
// and returns the number of body parameters it holds.
func validateParameters(ctx *validator.Context[*Spec], params []parser.RefOr[Parameter], path string) int {
	field := pathutil.Field(path, "parameters")
	bodies := 0
	for i := range params {
		validator.ValidateRefOr(ctx, &params[i], pathutil.Index(field, i), ctx.Root.resolveParameter)
		if p := params[i].Value; p != nil && p.In == InBody {
			bodies++
		} else if params[i].IsRef() {
			if p, err := ctx.Root.resolveParameter(params[i].Ref.Ref); err == nil && p.In == InBody {
				bodies++
			}
		}
	}
	return bodies
}

// Header describes a response header: a typed value with a description.
type Header struct {
	Description string
	Value       Value
	Extensions  parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (h *Header) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	v, err := decodeValue(d, n, path, valueTypes, parser.Fields{
		"description": parser.String(&h.Description),
	}, &h.Extensions)
	h.Value = v
	return err
}

// MarshalNode implements parser.Marshaler.
func (h *Header) MarshalNode() *yaml.Node {
	out := parser.NewMapping().String("description", h.Description)
	return marshalValue(out, h.Value).Extensions(h.Extensions).Node()
}

// ValidateWithContext implements validator.Validatable.
func (h *Header) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	if h.Value != nil {
		h.Value.validate(ctx, path, InHeader)
	}
}
