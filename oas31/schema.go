package oas31

import (
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
	"github.com/erraggy/oascheck/validator"
)

// Schema type names.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeNull    = "null"
)

// Composition keywords, in decode trial order.
const (
	KeywordAllOf = "allOf"
	KeywordAnyOf = "anyOf"
	KeywordOneOf = "oneOf"
	KeywordNot   = "not"
)

// KindMulti is the Kind of a schema whose "type" is a list.
const KindMulti = "multi"

var schemaTypes = []string{TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeArray, TypeNull, TypeObject}

// Schema is a Schema Object. It holds exactly one variant.
//
// Decoding is an ordered trial: a composition keyword wins over any type,
// then a "type" list selects MultiSchema, then a single "type" selects a
// primitive variant. A schema without "type" is an object.
type Schema struct {
	Variant SchemaVariant
}

// SchemaVariant is implemented by the variants of Schema only.
type SchemaVariant interface {
	parser.Marshaler
	// Kind returns the composition keyword or type name of the variant.
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
	var v schemaVariant
	switch {
	case parser.HasKey(n, KeywordAllOf):
		v = &CompositeSchema{Keyword: KeywordAllOf}
	case parser.HasKey(n, KeywordAnyOf):
		v = &CompositeSchema{Keyword: KeywordAnyOf}
	case parser.HasKey(n, KeywordOneOf):
		v = &CompositeSchema{Keyword: KeywordOneOf}
	case parser.HasKey(n, KeywordNot):
		v = &NotSchema{}
	default:
		typ := parser.Resolve(parser.Lookup(n, "type"))
		if typ == nil {
			v = &ObjectSchema{}
			break
		}
		if typ.Kind == yaml.SequenceNode {
			v = &MultiSchema{}
			break
		}
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
	case TypeNull:
		return &NullSchema{}
	case TypeObject:
		return &ObjectSchema{}
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

// validateBoolOrSchema validates the schema arm of a keyword that also
// accepts a boolean.
func validateBoolOrSchema(ctx *validator.Context[*Spec], b *parser.BoolOr[parser.RefOr[Schema]], path string) {
	if b != nil && b.Value != nil {
		validateSchemaRef(ctx, b.Value, path)
	}
}

// Metadata holds the annotation keywords every variant accepts. There is
// no nullable: 3.1 spells it as a "null" member of a type list.
type Metadata struct {
	Title        string
	Description  string
	ReadOnly     bool
	WriteOnly    bool
	Deprecated   bool
	XML          *parser.XML
	ExternalDocs *parser.ExternalDocs
	Example      any
	Examples     []any
	Const        any
	Extensions   parser.Extensions
}

func (m *Metadata) fields(f parser.Fields) parser.Fields {
	f["title"] = parser.String(&m.Title)
	f["description"] = parser.String(&m.Description)
	f["readOnly"] = parser.Bool(&m.ReadOnly)
	f["writeOnly"] = parser.Bool(&m.WriteOnly)
	f["deprecated"] = parser.Bool(&m.Deprecated)
	f["xml"] = parser.IntoPtr(&m.XML)
	f["externalDocs"] = parser.IntoPtr(&m.ExternalDocs)
	f["example"] = parser.Any(&m.Example)
	f["examples"] = parser.Anys(&m.Examples)
	f["const"] = parser.Any(&m.Const)
	return f
}

func (m *Metadata) head(out *parser.Mapping) *parser.Mapping {
	return out.
		String("title", m.Title).
		String("description", m.Description)
}

func (m *Metadata) tail(out *parser.Mapping) *yaml.Node {
	return out.
		Any("const", m.Const).
		Bool("readOnly", m.ReadOnly).
		Bool("writeOnly", m.WriteOnly).
		Bool("deprecated", m.Deprecated).
		Set("xml", parser.NodeOf(m.XML)).
		Set("externalDocs", parser.NodeOf(m.ExternalDocs)).
		Any("example", m.Example).
		Anys("examples", m.Examples).
		Extensions(m.Extensions).
		Node()
}

func (m *Metadata) validate(ctx *validator.Context[*Spec], path string) {
	validator.ExternalDocs(ctx, m.ExternalDocs, pathutil.Field(path, "externalDocs"))
	validator.XML(ctx, m.XML, pathutil.Field(path, "xml"))
}

// discriminant accepts a key that was read ahead to select a variant.
func discriminant(d *parser.Decoder, n *yaml.Node, path string) error {
	_, err := d.ScalarString(n, path)
	return err
}

// CompositeSchema combines member schemas with allOf, anyOf or oneOf.
type CompositeSchema struct {
	Keyword       string
	Schemas       []parser.RefOr[Schema]
	Discriminator *Discriminator
	// Type is an optional sibling "type" keyword, kept for round trips.
	Type string
	Metadata
}

// Kind implements SchemaVariant.
func (c *CompositeSchema) Kind() string { return c.Keyword }

// UnmarshalNode implements parser.Unmarshaler.
func (c *CompositeSchema) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, c.Metadata.fields(parser.Fields{
		c.Keyword:       parser.SliceOf(&c.Schemas),
		"discriminator": parser.IntoPtr(&c.Discriminator),
		"type":          parser.String(&c.Type),
	}), &c.Extensions, c.Keyword)
}

// MarshalNode implements parser.Marshaler.
func (c *CompositeSchema) MarshalNode() *yaml.Node {
	schemas := parser.SliceNode(c.Schemas)
	if schemas == nil {
		schemas = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	}
	out := parser.NewMapping().String("type", c.Type)
	c.head(out).
		Set(c.Keyword, schemas).
		Set("discriminator", parser.NodeOf(c.Discriminator))
	return c.tail(out)
}

func (c *CompositeSchema) validate(ctx *validator.Context[*Spec], path string) {
	c.Metadata.validate(ctx, path)
	field := pathutil.Field(path, c.Keyword)
	for i := range c.Schemas {
		validateSchemaRef(ctx, &c.Schemas[i], pathutil.Index(field, i))
	}
	if c.Discriminator != nil {
		c.Discriminator.ValidateWithContext(ctx, pathutil.Field(path, "discriminator"))
	}
}

// NotSchema negates a schema.
type NotSchema struct {
	Not  parser.RefOr[Schema]
	Type string
	Metadata
}

// Kind implements SchemaVariant.
func (s *NotSchema) Kind() string { return KeywordNot }

// UnmarshalNode implements parser.Unmarshaler.
func (s *NotSchema) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, s.Metadata.fields(parser.Fields{
		KeywordNot: parser.Into(&s.Not),
		"type":     parser.String(&s.Type),
	}), &s.Extensions, KeywordNot)
}

// MarshalNode implements parser.Marshaler.
func (s *NotSchema) MarshalNode() *yaml.Node {
	out := parser.NewMapping().String("type", s.Type)
	s.head(out).Set(KeywordNot, s.Not.MarshalNode())
	return s.tail(out)
}

func (s *NotSchema) validate(ctx *validator.Context[*Spec], path string) {
	s.Metadata.validate(ctx, path)
	validateSchemaRef(ctx, &s.Not, pathutil.Field(path, KeywordNot))
}

// MultiSchema is a schema whose "type" lists several types, such as
// ["string", "null"]. Type-specific keywords are not modelled.
type MultiSchema struct {
	Types   []string
	Default any
	Metadata
}

// Kind implements SchemaVariant.
func (s *MultiSchema) Kind() string { return KindMulti }

// UnmarshalNode implements parser.Unmarshaler.
func (s *MultiSchema) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, s.Metadata.fields(parser.Fields{
		"type":    parser.Strings(&s.Types),
		"default": parser.Any(&s.Default),
	}), &s.Extensions, "type")
}

// MarshalNode implements parser.Marshaler.
func (s *MultiSchema) MarshalNode() *yaml.Node {
	types := parser.StringsNode(s.Types)
	if types == nil {
		types = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	}
	out := parser.NewMapping().Set("type", types)
	s.head(out).Any("default", s.Default)
	return s.tail(out)
}

func (s *MultiSchema) validate(ctx *validator.Context[*Spec], path string) {
	typePath := pathutil.Field(path, "type")
	seen := make(map[string]bool, len(s.Types))
	for _, t := range s.Types {
		if newTypedSchema(t) == nil {
			ctx.Errorf(typePath, "type `%s` is not supported", t)
		}
		if seen[t] {
			ctx.Errorf(typePath, "type `%s` is not unique", t)
		}
		seen[t] = true
	}
	s.Metadata.validate(ctx, path)
}

// StringSchema is a schema of type string. Formats are open.
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
		"type":      discriminant,
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
	out := parser.NewMapping().String("type", TypeString)
	s.head(out).
		String("format", s.Format).
		StringPtr("default", s.Default).
		Strings("enum", s.Enum).
		Uint("minLength", s.MinLength).
		Uint("maxLength", s.MaxLength).
		String("pattern", s.Pattern)
	return s.tail(out)
}

func (s *StringSchema) validate(ctx *validator.Context[*Spec], path string) {
	s.Metadata.validate(ctx, path)
	if s.Pattern != "" {
		validator.Pattern(ctx, s.Pattern, pathutil.Field(path, "pattern"))
	}
	validator.Range(ctx, path, "minLength", s.MinLength, "maxLength", s.MaxLength)
}

// IntegerSchema is a schema of type integer. The exclusive bounds are
// numbers, as in JSON Schema 2020-12.
type IntegerSchema struct {
	// Format is int32, int64 or empty.
	Format           string
	Default          *int64
	Enum             []int64
	Minimum          *int64
	ExclusiveMinimum *int64
	Maximum          *int64
	ExclusiveMaximum *int64
	MultipleOf       *float64
	Metadata
}

// Kind implements SchemaVariant.
func (s *IntegerSchema) Kind() string { return TypeInteger }

// UnmarshalNode implements parser.Unmarshaler.
func (s *IntegerSchema) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, s.Metadata.fields(parser.Fields{
		"type":             discriminant,
		"format":           parser.Enum(&s.Format, parser.IntegerFormats...),
		"default":          parser.Int(&s.Default),
		"enum":             parser.Ints(&s.Enum),
		"minimum":          parser.Int(&s.Minimum),
		"exclusiveMinimum": parser.Int(&s.ExclusiveMinimum),
		"maximum":          parser.Int(&s.Maximum),
		"exclusiveMaximum": parser.Int(&s.ExclusiveMaximum),
		"multipleOf":       parser.Float(&s.MultipleOf),
	}), &s.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (s *IntegerSchema) MarshalNode() *yaml.Node {
	out := parser.NewMapping().String("type", TypeInteger)
	s.head(out).
		String("format", s.Format).
		Int("default", s.Default).
		Ints("enum", s.Enum).
		Int("minimum", s.Minimum).
		Int("exclusiveMinimum", s.ExclusiveMinimum).
		Int("maximum", s.Maximum).
		Int("exclusiveMaximum", s.ExclusiveMaximum).
		Float("multipleOf", s.MultipleOf)
	return s.tail(out)
}

func (s *IntegerSchema) validate(ctx *validator.Context[*Spec], path string) {
	s.Metadata.validate(ctx, path)
	validator.Range(ctx, path, "minimum", s.Minimum, "maximum", s.Maximum)
	validator.Range(ctx, path, "exclusiveMinimum", s.ExclusiveMinimum, "exclusiveMaximum", s.ExclusiveMaximum)
	validator.Positive(ctx, s.MultipleOf, pathutil.Field(path, "multipleOf"))
}

// NumberSchema is a schema of type number.
type NumberSchema struct {
	// Format is float, double or empty.
	Format           string
	Default          *float64
	Enum             []float64
	Minimum          *float64
	ExclusiveMinimum *float64
	Maximum          *float64
	ExclusiveMaximum *float64
	MultipleOf       *float64
	Metadata
}

// Kind implements SchemaVariant.
func (s *NumberSchema) Kind() string { return TypeNumber }

// UnmarshalNode implements parser.Unmarshaler.
func (s *NumberSchema) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, s.Metadata.fields(parser.Fields{
		"type":             discriminant,
		"format":           parser.Enum(&s.Format, parser.NumberFormats...),
		"default":          parser.Float(&s.Default),
		"enum":             parser.Floats(&s.Enum),
		"minimum":          parser.Float(&s.Minimum),
		"exclusiveMinimum": parser.Float(&s.ExclusiveMinimum),
		"maximum":          parser.Float(&s.Maximum),
		"exclusiveMaximum": parser.Float(&s.ExclusiveMaximum),
		"multipleOf":       parser.Float(&s.MultipleOf),
	}), &s.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (s *NumberSchema) MarshalNode() *yaml.Node {
	out := parser.NewMapping().String("type", TypeNumber)
	s.head(out).
		String("format", s.Format).
		Float("default", s.Default).
		Floats("enum", s.Enum).
		Float("minimum", s.Minimum).
		Float("exclusiveMinimum", s.ExclusiveMinimum).
		Float("maximum", s.Maximum).
		Float("exclusiveMaximum", s.ExclusiveMaximum).
		Float("multipleOf", s.MultipleOf)
	return s.tail(out)
}

func (s *NumberSchema) validate(ctx *validator.Context[*Spec], path string) {
	s.Metadata.validate(ctx, path)
	validator.Range(ctx, path, "minimum", s.Minimum, "maximum", s.Maximum)
	validator.Range(ctx, path, "exclusiveMinimum", s.ExclusiveMinimum, "exclusiveMaximum", s.ExclusiveMaximum)
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
		"type":    discriminant,
		"default": parser.BoolPtr(&s.Default),
	}), &s.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (s *BooleanSchema) MarshalNode() *yaml.Node {
	out := parser.NewMapping().String("type", TypeBoolean)
	s.head(out).BoolPtr("default", s.Default)
	return s.tail(out)
}

func (s *BooleanSchema) validate(ctx *validator.Context[*Spec], path string) {
	s.Metadata.validate(ctx, path)
}

// ArraySchema is a schema of type array. Items may be a boolean: false
// forbids elements beyond PrefixItems.
type ArraySchema struct {
	PrefixItems []parser.RefOr[Schema]
	Items       *parser.BoolOr[parser.RefOr[Schema]]
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
		"type":        discriminant,
		"prefixItems": parser.SliceOf(&s.PrefixItems),
		"items":       parser.IntoPtr(&s.Items),
		"default":     parser.Anys(&s.Default),
		"minItems":    parser.Uint(&s.MinItems),
		"maxItems":    parser.Uint(&s.MaxItems),
		"uniqueItems": parser.Bool(&s.UniqueItems),
	}), &s.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (s *ArraySchema) MarshalNode() *yaml.Node {
	out := parser.NewMapping().String("type", TypeArray)
	s.head(out).
		Set("prefixItems", parser.SliceNode(s.PrefixItems)).
		Set("items", parser.NodeOf(s.Items)).
		Anys("default", s.Default).
		Uint("minItems", s.MinItems).
		Uint("maxItems", s.MaxItems).
		Bool("uniqueItems", s.UniqueItems)
	return s.tail(out)
}

func (s *ArraySchema) validate(ctx *validator.Context[*Spec], path string) {
	s.Metadata.validate(ctx, path)
	prefix := pathutil.Field(path, "prefixItems")
	for i := range s.PrefixItems {
		validateSchemaRef(ctx, &s.PrefixItems[i], pathutil.Index(prefix, i))
	}
	validateBoolOrSchema(ctx, s.Items, pathutil.Field(path, "items"))
	validator.Range(ctx, path, "minItems", s.MinItems, "maxItems", s.MaxItems)
}

// ObjectSchema is a schema of type object, and the variant of a schema
// without a type.
type ObjectSchema struct {
	Properties            map[string]parser.RefOr[Schema]
	PatternProperties     map[string]parser.RefOr[Schema]
	Required              []string
	AdditionalProperties  *parser.BoolOr[parser.RefOr[Schema]]
	UnevaluatedProperties *parser.BoolOr[parser.RefOr[Schema]]
	PropertyNames         *parser.RefOr[Schema]
	Default               map[string]any
	MinProperties         *uint64
	MaxProperties         *uint64
	Metadata
}

// Kind implements SchemaVariant.
func (s *ObjectSchema) Kind() string { return TypeObject }

// UnmarshalNode implements parser.Unmarshaler.
func (s *ObjectSchema) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, s.Metadata.fields(parser.Fields{
		"type":                  discriminant,
		"properties":            parser.MapOf(&s.Properties),
		"patternProperties":     parser.MapOf(&s.PatternProperties),
		"required":              parser.Strings(&s.Required),
		"additionalProperties":  parser.IntoPtr(&s.AdditionalProperties),
		"unevaluatedProperties": parser.IntoPtr(&s.UnevaluatedProperties),
		"propertyNames":         parser.IntoPtr(&s.PropertyNames),
		"default":               parser.AnyMap(&s.Default),
		"minProperties":         parser.Uint(&s.MinProperties),
		"maxProperties":         parser.Uint(&s.MaxProperties),
	}), &s.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (s *ObjectSchema) MarshalNode() *yaml.Node {
	out := parser.NewMapping().String("type", TypeObject)
	s.head(out).
		Set("properties", parser.MapNode(s.Properties)).
		Set("patternProperties", parser.MapNode(s.PatternProperties)).
		Strings("required", s.Required).
		Set("additionalProperties", parser.NodeOf(s.AdditionalProperties)).
		Set("unevaluatedProperties", parser.NodeOf(s.UnevaluatedProperties)).
		Set("propertyNames", parser.NodeOf(s.PropertyNames)).
		AnyMap("default", s.Default).
		Uint("minProperties", s.MinProperties).
		Uint("maxProperties", s.MaxProperties)
	return s.tail(out)
}

func (s *ObjectSchema) validate(ctx *validator.Context[*Spec], path string) {
	s.Metadata.validate(ctx, path)
	props := pathutil.Field(path, "properties")
	for _, name := range parser.SortedKeys(s.Properties) {
		prop := s.Properties[name]
		validateSchemaRef(ctx, &prop, pathutil.Field(props, name))
	}
	patterns := pathutil.Field(path, "patternProperties")
	for _, pattern := range parser.SortedKeys(s.PatternProperties) {
		prop := s.PatternProperties[pattern]
		propPath := pathutil.Key(patterns, pattern)
		validator.Pattern(ctx, pattern, propPath)
		validateSchemaRef(ctx, &prop, propPath)
	}
	validateBoolOrSchema(ctx, s.AdditionalProperties, pathutil.Field(path, "additionalProperties"))
	validateBoolOrSchema(ctx, s.UnevaluatedProperties, pathutil.Field(path, "unevaluatedProperties"))
	validateSchemaRef(ctx, s.PropertyNames, pathutil.Field(path, "propertyNames"))
	validator.Range(ctx, path, "minProperties", s.MinProperties, "maxProperties", s.MaxProperties)
	if s.closed() {
		for _, name := range s.Required {
			if _, ok := s.Properties[name]; !ok {
				ctx.Errorf(path, ".required: `%s` is not a declared property", name)
			}
		}
	}
}

// closed reports whether the object declares properties and forbids any
// other. Pattern properties may admit further names.
func (s *ObjectSchema) closed() bool {
	ap := s.AdditionalProperties
	return len(s.Properties) > 0 && len(s.PatternProperties) == 0 && ap != nil && ap.Bool != nil && !*ap.Bool
}

// NullSchema is a schema of type null.
type NullSchema struct {
	Metadata
}

// Kind implements SchemaVariant.
func (s *NullSchema) Kind() string { return TypeNull }

// UnmarshalNode implements parser.Unmarshaler.
func (s *NullSchema) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, s.Metadata.fields(parser.Fields{"type": discriminant}), &s.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (s *NullSchema) MarshalNode() *yaml.Node {
	out := parser.NewMapping().String("type", TypeNull)
	return s.tail(s.head(out))
}

func (s *NullSchema) validate(ctx *validator.Context[*Spec], path string) {
	s.Metadata.validate(ctx, path)
}

// Discriminator names the property that selects a composition member.
type Discriminator struct {
	PropertyName string
	Mapping      map[string]string
	Extensions   parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (d *Discriminator) UnmarshalNode(dec *parser.Decoder, n *yaml.Node, path string) error {
	return dec.Object(n, path, parser.Fields{
		"propertyName": parser.String(&d.PropertyName),
		"mapping":      parser.StringMap(&d.Mapping),
	}, &d.Extensions, "propertyName")
}

// MarshalNode implements parser.Marshaler.
func (d *Discriminator) MarshalNode() *yaml.Node {
	return parser.NewMapping().
		RequiredString("propertyName", d.PropertyName).
		StringMap("mapping", d.Mapping).
		Extensions(d.Extensions).
		Node()
}

// ValidateWithContext implements validator.Validatable.
func (d *Discriminator) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	validator.RequiredString(ctx, d.PropertyName, pathutil.Field(path, "propertyName"))
	mapping := pathutil.Field(path, "mapping")
	for _, key := range parser.SortedKeys(d.Mapping) {
		validator.ValidateRef(ctx, DiscriminatorRef(d.Mapping[key]), pathutil.Key(mapping, key), ctx.Root.resolveSchema)
	}
}

// DiscriminatorRef turns a discriminator mapping value into a reference.
// Values with neither "#" nor "/" are schema names.
func DiscriminatorRef(value string) string {
	if value == "" || strings.ContainsAny(value, "#/") {
		return value
	}
	return pathutil.SchemaRef(value)
}
