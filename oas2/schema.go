package oas2

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
	"github.com/erraggy/oascheck/validator"
)

// Type names of schemas and typed values.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeNull    = "null"
	// TypeFile is accepted by response schemas and formData parameters.
	TypeFile = "file"
)

var schemaTypes = []string{TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeArray, TypeObject, TypeNull, TypeFile}

// Schema is a Schema Object. The "type" key selects the variant; a
// schema without one is an object.
type Schema struct {
	Variant SchemaVariant
}

// SchemaVariant is implemented by the variants of Schema only.
type SchemaVariant interface {
	parser.Marshaler
	// Kind returns the type name of the variant.
	Kind() string
	validate(ctx *validator.Context[*Spec], path string)
}

type schemaVariant interface {
	SchemaVariant
	parser.Unmarshaler
}

// NewSchema wraps v.
func NewSchema(v SchemaVariant) *Schema {
	return &Schema{Variant: v}
}

// UnmarshalNode implements parser.Unmarshaler.
func (s *Schema) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	n = parser.Resolve(n)
	var v schemaVariant = &ObjectSchema{}
	if typ := parser.Lookup(n, "type"); typ != nil {
		name, err := d.ScalarString(typ, pathutil.Field(path, "type"))
		if err != nil {
			return err
		}
		if v = newTypedSchema(name); v == nil {
			return d.Errorf(typ, pathutil.Field(path, "type"), "unknown variant `%s`, expected %s", name, parser.ExpectedOneOf(schemaTypes...))
		}
	}
	if err := v.UnmarshalNode(d, n, path); err != nil {
		return err
	}
	s.Variant = v
	return nil
}

func newTypedSchema(name string) schemaVariant {
	switch name {
	case TypeString:
		return &StringSchema{}
	case TypeInteger:
		return &IntegerSchema{}
	case TypeNumber:
		return &NumberSchema{}
	case TypeBoolean:
		return &BooleanSchema{}
	case TypeArray:
		return &ArraySchema{}
	case TypeObject:
		return &ObjectSchema{}
	case TypeNull:
		return &NullSchema{}
	case TypeFile:
		return &FileSchema{}
	}
	return nil
}

// MarshalNode implements parser.Marshaler.
func (s *Schema) MarshalNode() *yaml.Node {
	if s.Variant == nil {
		return parser.NewMapping().Node()
	}
	return s.Variant.MarshalNode()
}

// ValidateWithContext implements validator.Validatable.
func (s *Schema) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	if s.Variant != nil {
		s.Variant.validate(ctx, path)
	}
}

func validateSchemaRef(ctx *validator.Context[*Spec], r *parser.RefOr[Schema], path string) {
	validator.ValidateRefOr(ctx, r, path, ctx.Root.resolveSchema)
}

// discriminant accepts a key that was read ahead to select a variant.
func discriminant(d *parser.Decoder, n *yaml.Node, path string) error {
	_, err := d.ScalarString(n, path)
	return err
}

// Metadata holds the annotation keywords every variant accepts.
type Metadata struct {
	Title        string
	Description  string
	ReadOnly     bool
	XML          *parser.XML
	ExternalDocs *parser.ExternalDocs
	Example      any
	Extensions   parser.Extensions
}

func (m *Metadata) fields(f parser.Fields) parser.Fields {
	f["type"] = discriminant
	f["title"] = parser.String(&m.Title)
	f["description"] = parser.String(&m.Description)
	f["readOnly"] = parser.Bool(&m.ReadOnly)
	f["xml"] = parser.IntoPtr(&m.XML)
	f["externalDocs"] = parser.IntoPtr(&m.ExternalDocs)
	f["example"] = parser.Any(&m.Example)
	return f
}

func (m *Metadata) head(typ string) *parser.Mapping {
	return parser.NewMapping().
		RequiredString("type", typ).
		String("title", m.Title).
		String("description", m.Description)
}

func (m *Metadata) tail(out *parser.Mapping) *yaml.Node {
	return out.
		Bool("readOnly", m.ReadOnly).
		Set("xml", parser.NodeOf(m.XML)).
		Set("externalDocs", parser.NodeOf(m.ExternalDocs)).
		Any("example", m.Example).
		Extensions(m.Extensions).
		Node()
}

func (m *Metadata) validate(ctx *validator.Context[*Spec], path string) {
	validator.ExternalDocs(ctx, m.ExternalDocs, pathutil.Field(path, "externalDocs"))
	validator.XML(ctx, m.XML, pathutil.Field(path, "xml"))
}

// StringSchema is a schema of type string.
type StringSchema struct {
	Format    string
	Default   *string
	Enum      []string
	MinLength *uint64
	MaxLength *uint64
	Pattern   string
	Metadata
}

// Kind implements SchemaVariant.
func (s *StringSchema) Kind() string { return TypeString }

// UnmarshalNode implements parser.Unmarshaler.
func (s *StringSchema) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, s.Metadata.fields(parser.Fields{
		"format":    parser.String(&s.Format),
		"default":   parser.StringPtr(&s.Default),
		"enum":      parser.Strings(&s.Enum),
		"minLength": parser.Uint(&s.MinLength),
		"maxLength": parser.Uint(&s.MaxLength),
		"pattern":   parser.String(&s.Pattern),
	}), &s.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (s *StringSchema) MarshalNode() *yaml.Node {
	return s.tail(s.head(TypeString).
		String("format", s.Format).
		StringPtr("default", s.Default).
		Strings("enum", s.Enum).
		Uint("minLength", s.MinLength).
		Uint("maxLength", s.MaxLength).
		String("pattern", s.Pattern))
}

func (s *StringSchema) validate(ctx *validator.Context[*Spec], path string) {
	s.Metadata.validate(ctx, path)
	if s.Pattern != "" {
		validator.Pattern(ctx, s.Pattern, pathutil.Field(path, "pattern"))
	}
	validator.Range(ctx, path, "minLength", s.MinLength, "maxLength", s.MaxLength)
}

// IntegerSchema is a schema of type integer.
type IntegerSchema struct {
	// Format is int32, int64 or empty.
	Format           string
	Default          *int64
	Enum             []int64
	Minimum          *int64
	ExclusiveMinimum bool
	Maximum          *int64
	ExclusiveMaximum bool
	MultipleOf       *float64
	Metadata
}

// Kind implements SchemaVariant.
func (s *IntegerSchema) Kind() string { return TypeInteger }

// UnmarshalNode implements parser.Unmarshaler.
func (s *IntegerSchema) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, s.Metadata.fields(parser.Fields{
		"format":           parser.Enum(&s.Format, parser.IntegerFormats...),
		"default":          parser.Int(&s.Default),
		"enum":             parser.Ints(&s.Enum),
		"minimum":          parser.Int(&s.Minimum),
		"exclusiveMinimum": parser.Bool(&s.ExclusiveMinimum),
		"maximum":          parser.Int(&s.Maximum),
		"exclusiveMaximum": parser.Bool(&s.ExclusiveMaximum),
		"multipleOf":       parser.Float(&s.MultipleOf),
	}), &s.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (s *IntegerSchema) MarshalNode() *yaml.Node {
	return s.tail(s.head(TypeInteger).
		String("format", s.Format).
		Int("default", s.Default).
		Ints("enum", s.Enum).
		Int("minimum", s.Minimum).
		Bool("exclusiveMinimum", s.ExclusiveMinimum).
		Int("maximum", s.Maximum).
		Bool("exclusiveMaximum", s.ExclusiveMaximum).
		Float("multipleOf", s.MultipleOf))
}

func (s *IntegerSchema) validate(ctx *validator.Context[*Spec], path string) {
	s.Metadata.validate(ctx, path)
	validator.Range(ctx, path, "minimum", s.Minimum, "maximum", s.Maximum)
	validator.Positive(ctx, s.MultipleOf, pathutil.Field(path, "multipleOf"))
}

// NumberSchema is a schema of type number.
type NumberSchema struct {
	// Format is float, double or empty.
	Format           string
	Default          *float64
	Enum             []float64
	Minimum          *float64
	ExclusiveMinimum bool
	Maximum          *float64
	ExclusiveMaximum bool
	MultipleOf       *float64
	Metadata
}

// Kind implements SchemaVariant.
func (s *NumberSchema) Kind() string { return TypeNumber }

// UnmarshalNode implements parser.Unmarshaler.
func (s *NumberSchema) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, s.Metadata.fields(parser.Fields{
		"format":           parser.Enum(&s.Format, parser.NumberFormats...),
		"default":          parser.Float(&s.Default),
		"enum":             parser.Floats(&s.Enum),
		"minimum":          parser.Float(&s.Minimum),
		"exclusiveMinimum": parser.Bool(&s.ExclusiveMinimum),
		"maximum":          parser.Float(&s.Maximum),
		"exclusiveMaximum": parser.Bool(&s.ExclusiveMaximum),
		"multipleOf":       parser.Float(&s.MultipleOf),
	}), &s.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (s *NumberSchema) MarshalNode() *yaml.Node {
	return s.tail(s.head(TypeNumber).
		String("format", s.Format).
		Float("default", s.Default).
		Floats("enum", s.Enum).
		Float("minimum", s.Minimum).
		Bool("exclusiveMinimum", s.ExclusiveMinimum).
		Float("maximum", s.Maximum).
		Bool("exclusiveMaximum", s.ExclusiveMaximum).
		Float("multipleOf", s.MultipleOf))
}

func (s *NumberSchema) validate(ctx *validator.Context[*Spec], path string) {
	s.Metadata.validate(ctx, path)
	validator.Range(ctx, path, "minimum", s.Minimum, "maximum", s.Maximum)
	validator.Positive(ctx, s.MultipleOf, pathutil.Field(path, "multipleOf"))
}

// BooleanSchema is a schema of type boolean.
type BooleanSchema struct {
	Default *bool
	Metadata
}

// Kind implements SchemaVariant.
func (s *BooleanSchema) Kind() string { return TypeBoolean }

// UnmarshalNode implements parser.Unmarshaler.
func (s *BooleanSchema) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, s.Metadata.fields(parser.Fields{
		"default": parser.BoolPtr(&s.Default),
	}), &s.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (s *BooleanSchema) MarshalNode() *yaml.Node {
	return s.tail(s.head(TypeBoolean).BoolPtr("default", s.Default))
}

func (s *BooleanSchema) validate(ctx *validator.Context[*Spec], path string) {
	s.Metadata.validate(ctx, path)
}

// ArraySchema is a schema of type array.
type ArraySchema struct {
	Items       *parser.RefOr[Schema]
	Default     []any
	MinItems    *uint64
	MaxItems    *uint64
	UniqueItems bool
	Metadata
}

// Kind implements SchemaVariant.
func (s *ArraySchema) Kind() string { return TypeArray }

// UnmarshalNode implements parser.Unmarshaler.
func (s *ArraySchema) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, s.Metadata.fields(parser.Fields{
		"items":       parser.IntoPtr(&s.Items),
		"default":     parser.Anys(&s.Default),
		"minItems":    parser.Uint(&s.MinItems),
		"maxItems":    parser.Uint(&s.MaxItems),
		"uniqueItems": parser.Bool(&s.UniqueItems),
	}), &s.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (s *ArraySchema) MarshalNode() *yaml.Node {
	return s.tail(s.head(TypeArray).
		Set("items", parser.NodeOf(s.Items)).
		Anys("default", s.Default).
		Uint("minItems", s.MinItems).
		Uint("maxItems", s.MaxItems).
		Bool("uniqueItems", s.UniqueItems))
}

func (s *ArraySchema) validate(ctx *validator.Context[*Spec], path string) {
	s.Metadata.validate(ctx, path)
	validateSchemaRef(ctx, s.Items, pathutil.Field(path, "items"))
	validator.Range(ctx, path, "minItems", s.MinItems, "maxItems", s.MaxItems)
}

// ObjectSchema is a schema of type object, and the variant of a schema
// without a type. AllOf composes it from other schemas; 2.0 has no other
// composition keyword.
type ObjectSchema struct {
	Properties           map[string]parser.RefOr[Schema]
	Required             []string
	AdditionalProperties *parser.BoolOr[parser.RefOr[Schema]]
	AllOf                []parser.RefOr[Schema]
	// Discriminator names the property that carries the concrete type.
	Discriminator string
	Default       map[string]any
	MinProperties *uint64
	MaxProperties *uint64
	Metadata
}

// Kind implements SchemaVariant.
func (s *ObjectSchema) Kind() string { return TypeObject }

// UnmarshalNode implements parser.Unmarshaler.
func (s *ObjectSchema) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, s.Metadata.fields(parser.Fields{
		"properties":           parser.MapOf(&s.Properties),
		"required":             parser.Strings(&s.Required),
		"additionalProperties": parser.IntoPtr(&s.AdditionalProperties),
		"allOf":                parser.SliceOf(&s.AllOf),
		"discriminator":        parser.String(&s.Discriminator),
		"default":              parser.AnyMap(&s.Default),
		"minProperties":        parser.Uint(&s.MinProperties),
		"maxProperties":        parser.Uint(&s.MaxProperties),
	}), &s.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (s *ObjectSchema) MarshalNode() *yaml.Node {
	return s.tail(s.head(TypeObject).
		Set("properties", parser.MapNode(s.Properties)).
		Strings("required", s.Required).
		Set("additionalProperties", parser.NodeOf(s.AdditionalProperties)).
		Set("allOf", parser.SliceNode(s.AllOf)).
		String("discriminator", s.Discriminator).
		AnyMap("default", s.Default).
		Uint("minProperties", s.MinProperties).
		Uint("maxProperties", s.MaxProperties))
}

func (s *ObjectSchema) validate(ctx *validator.Context[*Spec], path string) {
	s.Metadata.validate(ctx, path)
	props := pathutil.Field(path, "properties")
	for _, name := range parser.SortedKeys(s.Properties) {
		prop := s.Properties[name]
		validateSchemaRef(ctx, &prop, pathutil.Field(props, name))
	}
	if ap := s.AdditionalProperties; ap != nil && ap.Value != nil {
		validateSchemaRef(ctx, ap.Value, pathutil.Field(path, "additionalProperties"))
	}
	allOf := pathutil.Field(path, "allOf")
	for i := range s.AllOf {
		validateSchemaRef(ctx, &s.AllOf[i], pathutil.Index(allOf, i))
	}
	validator.Range(ctx, path, "minProperties", s.MinProperties, "maxProperties", s.MaxProperties)
	if s.Discriminator != "" && len(s.Properties) > 0 {
		if _, ok := s.Properties[s.Discriminator]; !ok {
			ctx.Errorf(path, ".discriminator: `%s` is not a declared property", s.Discriminator)
		}
	}
}

// NullSchema is a schema of type null.
type NullSchema struct {
	Metadata
}

// Kind implements SchemaVariant.
func (s *NullSchema) Kind() string { return TypeNull }

// UnmarshalNode implements parser.Unmarshaler.
func (s *NullSchema) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, s.Metadata.fields(parser.Fields{}), &s.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (s *NullSchema) MarshalNode() *yaml.Node {
	return s.tail(s.head(TypeNull))
}

func (s *NullSchema) validate(ctx *validator.Context[*Spec], path string) {
	s.Metadata.validate(ctx, path)
}

// FileSchema is the schema of a file download response.
type FileSchema struct {
	Metadata
}

// Kind implements SchemaVariant.
func (s *FileSchema) Kind() string { return TypeFile }

// UnmarshalNode implements parser.Unmarshaler.
func (s *FileSchema) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, s.Metadata.fields(parser.Fields{}), &s.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (s *FileSchema) MarshalNode() *yaml.Node {
	return s.tail(s.head(TypeFile))
}

func (s *FileSchema) validate(ctx *validator.Context[*Spec], path string) {
	s.Metadata.validate(ctx, path)
}
