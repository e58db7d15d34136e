package oas2

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
	"github.com/erraggy/oascheck/validator"
)

// valueTypes are the types a header, an items object or a non-body
// parameter may declare. Only formData parameters add TypeFile.
var valueTypes = []string{TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeArray}

// inItems is the location passed to Value.validate for nested items.
const inItems = "items"

// Value is the typed part of a non-body parameter, a header or an items
// object. The "type" key selects the variant.
type Value interface {
	// Kind returns the type name of the variant.
	Kind() string
	fields(f parser.Fields) parser.Fields
	marshal(out *parser.Mapping) *parser.Mapping
	// validate checks the value of something located in "in", one of the
	// parameter locations or "items".
	validate(ctx *validator.Context[*Spec], path, in string)
}

func newValue(name string) Value {
	switch name {
	case TypeString:
		return &StringValue{}
	case TypeInteger:
		return &IntegerValue{}
	case TypeNumber:
		return &NumberValue{}
	case TypeBoolean:
		return &BooleanValue{}
	case TypeArray:
		return &ArrayValue{}
	case TypeFile:
		return &FileValue{}
	}
	return nil
}

// decodeValue decodes mapping n as an object with the fixed fields and
// the keywords of the Value variant its "type" selects among allowed.
func decodeValue(d *parser.Decoder, n *yaml.Node, path string, allowed []string, fields parser.Fields, ext *parser.Extensions, required ...string) (Value, error) {
	n = parser.Resolve(n)
	typ := parser.Lookup(n, "type")
	if typ == nil {
		if n == nil || n.Kind != yaml.MappingNode {
			return nil, d.Object(n, path, nil, nil)
		}
		return nil, d.Errorf(n, path, "missing field `type`")
	}
	var name string
	if err := parser.Enum(&name, allowed...)(d, typ, pathutil.Field(path, "type")); err != nil {
		return nil, err
	}

	v := newValue(name)
	fields["type"] = discriminant
	if err := d.Object(n, path, v.fields(fields), ext, required...); err != nil {
		return nil, err
	}
	if arr, ok := v.(*ArrayValue); ok && arr.Items == nil {
		return nil, d.Errorf(n, path, "missing field `items`")
	}
	return v, nil
}

// marshalValue writes the type key and the keywords of v after out.
func marshalValue(out *parser.Mapping, v Value) *parser.Mapping {
	if v == nil {
		return out
	}
	return v.marshal(out.RequiredString("type", v.Kind()))
}

// Items describes the elements of an array value.
type Items struct {
	Value      Value
	Extensions parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (i *Items) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	v, err := decodeValue(d, n, path, valueTypes, parser.Fields{}, &i.Extensions, "type")
	i.Value = v
	return err
}

// MarshalNode implements parser.Marshaler.
func (i *Items) MarshalNode() *yaml.Node {
	return marshalValue(parser.NewMapping(), i.Value).Extensions(i.Extensions).Node()
}

func (i *Items) validate(ctx *validator.Context[*Spec], path string) {
	if i.Value != nil {
		i.Value.validate(ctx, path, inItems)
	}
}

// StringValue is a value of type string.
type StringValue struct {
	Format    string
	Default   *string
	Enum      []string
	MinLength *uint64
	MaxLength *uint64
	Pattern   string
}

// Kind implements Value.
func (v *StringValue) Kind() string { return TypeString }

func (v *StringValue) fields(f parser.Fields) parser.Fields {
	f["format"] = parser.String(&v.Format)
	f["default"] = parser.StringPtr(&v.Default)
	f["enum"] = parser.Strings(&v.Enum)
	f["minLength"] = parser.Uint(&v.MinLength)
	f["maxLength"] = parser.Uint(&v.MaxLength)
	f["pattern"] = parser.String(&v.Pattern)
	return f
}

func (v *StringValue) marshal(out *parser.Mapping) *parser.Mapping {
	return out.
		String("format", v.Format).
		StringPtr("default", v.Default).
		Strings("enum", v.Enum).
		Uint("minLength", v.MinLength).
		Uint("maxLength", v.MaxLength).
		String("pattern", v.Pattern)
}

func (v *StringValue) validate(ctx *validator.Context[*Spec], path, _ string) {
	if v.Pattern != "" {
		validator.Pattern(ctx, v.Pattern, pathutil.Field(path, "pattern"))
	}
	validator.Range(ctx, path, "minLength", v.MinLength, "maxLength", v.MaxLength)
}

// IntegerValue is a value of type integer.
type IntegerValue struct {
	Format           string
	Default          *int64
	Enum             []int64
	Minimum          *int64
	ExclusiveMinimum bool
	Maximum          *int64
	ExclusiveMaximum bool
	MultipleOf       *float64
}

// Kind implements Value.
func (v *IntegerValue) Kind() string { return TypeInteger }

func (v *IntegerValue) fields(f parser.Fields) parser.Fields {
	f["format"] = parser.Enum(&v.Format, parser.IntegerFormats...)
	f["default"] = parser.Int(&v.Default)
	f["enum"] = parser.Ints(&v.Enum)
	f["minimum"] = parser.Int(&v.Minimum)
	f["exclusiveMinimum"] = parser.Bool(&v.ExclusiveMinimum)
	f["maximum"] = parser.Int(&v.Maximum)
	f["exclusiveMaximum"] = parser.Bool(&v.ExclusiveMaximum)
	f["multipleOf"] = parser.Float(&v.MultipleOf)
	return f
}

func (v *IntegerValue) marshal(out *parser.Mapping) *parser.Mapping {
	return out.
		String("format", v.Format).
		Int("default", v.Default).
		Ints("enum", v.Enum).
		Int("minimum", v.Minimum).
		Bool("exclusiveMinimum", v.ExclusiveMinimum).
		Int("maximum", v.Maximum).
		Bool("exclusiveMaximum", v.ExclusiveMaximum).
		Float("multipleOf", v.MultipleOf)
}

func (v *IntegerValue) validate(ctx *validator.Context[*Spec], path, _ string) {
	validator.Range(ctx, path, "minimum", v.Minimum, "maximum", v.Maximum)
	validator.Positive(ctx, v.MultipleOf, pathutil.Field(path, "multipleOf"))
}

// NumberValue is a value of type number.
type NumberValue struct {
	Format           string
	Default          *float64
	Enum             []float64
	Minimum          *float64
	ExclusiveMinimum bool
	Maximum          *float64
	ExclusiveMaximum bool
	MultipleOf       *float64
}

// Kind implements Value.
func (v *NumberValue) Kind() string { return TypeNumber }

func (v *NumberValue) fields(f parser.Fields) parser.Fields {
	f["format"] = parser.Enum(&v.Format, parser.NumberFormats...)
	f["default"] = parser.Float(&v.Default)
	f["enum"] = parser.Floats(&v.Enum)
	f["minimum"] = parser.Float(&v.Minimum)
	f["exclusiveMinimum"] = parser.Bool(&v.ExclusiveMinimum)
	f["maximum"] = parser.Float(&v.Maximum)
	f["exclusiveMaximum"] = parser.Bool(&v.ExclusiveMaximum)
	f["multipleOf"] = parser.Float(&v.MultipleOf)
	return f
}

func (v *NumberValue) marshal(out *parser.Mapping) *parser.Mapping {
	return out.
		String("format", v.Format).
		Float("default", v.Default).
		Floats("enum", v.Enum).
		Float("minimum", v.Minimum).
		Bool("exclusiveMinimum", v.ExclusiveMinimum).
		Float("maximum", v.Maximum).
		Bool("exclusiveMaximum", v.ExclusiveMaximum).
		Float("multipleOf", v.MultipleOf)
}

func (v *NumberValue) validate(ctx *validator.Context[*Spec], path, _ string) {
	validator.Range(ctx, path, "minimum", v.Minimum, "maximum", v.Maximum)
	validator.Positive(ctx, v.MultipleOf, pathutil.Field(path, "multipleOf"))
}

// BooleanValue is a value of type boolean.
type BooleanValue struct {
	Default *bool
}

// Kind implements Value.
func (v *BooleanValue) Kind() string { return TypeBoolean }

func (v *BooleanValue) fields(f parser.Fields) parser.Fields {
	f["default"] = parser.BoolPtr(&v.Default)
	return f
}

func (v *BooleanValue) marshal(out *parser.Mapping) *parser.Mapping {
	return out.BoolPtr("default", v.Default)
}

func (v *BooleanValue) validate(*validator.Context[*Spec], string, string) {}

// ArrayValue is a value of type array. Items is required.
type ArrayValue struct {
	Items *Items
	// CollectionFormat is csv (the default), ssv, tsv, pipes or multi.
	CollectionFormat string
	Default          []any
	MinItems         *uint64
	MaxItems         *uint64
	UniqueItems      bool
}

// Kind implements Value.
func (v *ArrayValue) Kind() string { return TypeArray }

func (v *ArrayValue) fields(f parser.Fields) parser.Fields {
	f["items"] = parser.IntoPtr(&v.Items)
	f["collectionFormat"] = parser.Enum(&v.CollectionFormat, parser.CollectionFormats...)
	f["default"] = parser.Anys(&v.Default)
	f["minItems"] = parser.Uint(&v.MinItems)
	f["maxItems"] = parser.Uint(&v.MaxItems)
	f["uniqueItems"] = parser.Bool(&v.UniqueItems)
	return f
}

func (v *ArrayValue) marshal(out *parser.Mapping) *parser.Mapping {
	return out.
		Set("items", parser.NodeOf(v.Items)).
		String("collectionFormat", v.CollectionFormat).
		Anys("default", v.Default).
		Uint("minItems", v.MinItems).
		Uint("maxItems", v.MaxItems).
		Bool("uniqueItems", v.UniqueItems)
}

// validate allows the multi collection format in query and formData
// parameters only.
func (v *ArrayValue) validate(ctx *validator.Context[*Spec], path, in string) {
	if v.CollectionFormat == parser.CollectionMulti && in != InQuery && in != InFormData {
		ctx.Errorf(path, ".collectionFormat: `multi` is not allowed in `%s`", in)
	}
	validator.Range(ctx, path, "minItems", v.MinItems, "maxItems", v.MaxItems)
	if v.Items != nil {
		v.Items.validate(ctx, pathutil.Field(path, "items"))
	}
}

// FileValue is a formData parameter of type file.
type FileValue struct{}

// Kind implements Value.
func (v *FileValue) Kind() string { return TypeFile }

func (v *FileValue) fields(f parser.Fields) parser.Fields { return f }

func (v *FileValue) marshal(out *parser.Mapping) *parser.Mapping { return out }

func (v *FileValue) validate(*validator.Context[*Spec], string, string) {}
