package parser

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/oaserrors"
	"go.yaml.in/yaml/v4"
)

// Unmarshaler is implemented by every typed entity of a document tree.
// path is the location path of n, used to locate decode errors.
type Unmarshaler interface {
	UnmarshalNode(d *Decoder, n *yaml.Node, path string) error
}

// Field decodes the value node of one mapping key.
type Field func(d *Decoder, n *yaml.Node, path string) error

// Fields maps the fixed field names of an object to their decoders.
type Fields map[string]Field

// Decoder turns yaml.Node trees into typed entities.
//
// A Decoder never partially succeeds: the first structural violation
// (duplicate key, unknown discriminant value, type mismatch, and unknown
// field in strict mode) is returned as a located *oaserrors.DecodeError.
type Decoder struct {
	strict bool
}

// NewDecoder returns a Decoder. In strict mode keys that are neither fixed
// fields nor extensions are rejected instead of dropped.
func NewDecoder(strict bool) *Decoder {
	return &Decoder{strict: strict}
}

// Strict reports whether unknown fields are rejected.
func (d *Decoder) Strict() bool {
	return d.strict
}

// Errorf returns a *oaserrors.DecodeError located at n.
func (d *Decoder) Errorf(n *yaml.Node, path, format string, args ...any) error {
	err := &oaserrors.DecodeError{
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
	if n != nil {
		err.Line = n.Line
		err.Column = n.Column
	}
	return err
}

// Resolve follows aliases and unwraps document nodes.
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

// IsNull reports whether n is absent or an explicit null.
func IsNull(n *yaml.Node) bool {
	n = Resolve(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

// HasKey reports whether mapping node n contains key.
func HasKey(n *yaml.Node, key string) bool {
	return Lookup(n, key) != nil
}

// Lookup returns the value node stored under key in mapping node n.
func Lookup(n *yaml.Node, key string) *yaml.Node {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return Resolve(n.Content[i+1])
		}
	}
	return nil
}

// kindName describes a node for type-mismatch messages.
func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return "null"
		case "!!bool":
			return "boolean `" + n.Value + "`"
		case "!!int":
			return "integer `" + n.Value + "`"
		case "!!float":
			return "floating point `" + n.Value + "`"
		default:
			return "string `" + n.Value + "`"
		}
	default:
		return "an unsupported node"
	}
}

func (d *Decoder) typeError(n *yaml.Node, path, expected string) error {
	return d.Errorf(n, path, "invalid type: %s, expected %s", kindName(n), expected)
}

// Object decodes mapping node n. Keys listed in fields go to their decoder,
// "x-" keys go to ext, and any other key is dropped, or rejected in strict
// mode. Every key listed in required must be present. A key repeated within
// n is rejected.
func (d *Decoder) Object(n *yaml.Node, path string, fields Fields, ext *Extensions, required ...string) error {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		if n == nil {
			return d.Errorf(nil, path, "invalid type: null, expected a mapping")
		}
		return d.typeError(n, path, "a mapping")
	}

	seen := make(map[string]struct{}, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		key := k.Value
		if _, dup := seen[key]; dup {
			return d.Errorf(k, path, "duplicate field `%s`", key)
		}
		seen[key] = struct{}{}

		if f, ok := fields[key]; ok {
			if err := f(d, Resolve(v), pathutil.Field(path, key)); err != nil {
				return err
			}
			continue
		}
		if IsExtensionKey(key) {
			if ext == nil {
				continue
			}
			val, err := d.Value(v, pathutil.Field(path, key))
			if err != nil {
				return err
			}
			if *ext == nil {
				*ext = make(Extensions)
			}
			(*ext)[key] = val
			continue
		}
		if d.strict {
			return d.Errorf(k, path, "unknown field `%s`, expected %s", key, expectedFields(fields, ext != nil))
		}
	}

	for _, r := range required {
		if _, ok := seen[r]; !ok {
			return d.Errorf(n, path, "missing field `%s`", r)
		}
	}
	return nil
}

func expectedFields(fields Fields, extensions bool) string {
	names := make([]string, 0, len(fields)+1)
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)
	if extensions {
		names = append(names, ExtensionPrefix+"...")
	}
	return ExpectedOneOf(names...)
}

// ExpectedOneOf renders an accepted-values list: "one of `a`, `b`".
func ExpectedOneOf(names ...string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "`" + name + "`"
	}
	return "one of " + strings.Join(quoted, ", ")
}

// Entries iterates the key/value pairs of mapping node n, rejecting repeated
// keys. A null node yields no entries.
func (d *Decoder) Entries(n *yaml.Node, path string, fn func(k, v *yaml.Node) error) error {
	n = Resolve(n)
	if IsNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return d.typeError(n, path, "a mapping")
	}
	seen := make(map[string]struct{}, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if _, dup := seen[k.Value]; dup {
			return d.Errorf(k, path, "duplicate field `%s`", k.Value)
		}
		seen[k.Value] = struct{}{}
		if err := fn(k, Resolve(n.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

// Items iterates the elements of sequence node n. A null node yields none.
func (d *Decoder) Items(n *yaml.Node, path string, fn func(i int, v *yaml.Node) error) error {
	n = Resolve(n)
	if IsNull(n) {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		return d.typeError(n, path, "a sequence")
	}
	for i, v := range n.Content {
		if err := fn(i, Resolve(v)); err != nil {
			return err
		}
	}
	return nil
}

// ScalarString returns the text of scalar node n.
func (d *Decoder) ScalarString(n *yaml.Node, path string) (string, error) {
	n = Resolve(n)
	if IsNull(n) {
		return "", nil
	}
	if n.Kind != yaml.ScalarNode {
		return "", d.typeError(n, path, "a string")
	}
	return n.Value, nil
}

// ScalarBool decodes a boolean scalar.
func (d *Decoder) ScalarBool(n *yaml.Node, path string) (bool, error) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.ShortTag() != "!!bool" {
		if n == nil {
			return false, d.Errorf(nil, path, "invalid type: null, expected a boolean")
		}
		return false, d.typeError(n, path, "a boolean")
	}
	b, err := strconv.ParseBool(strings.ToLower(n.Value))
	if err != nil {
		return false, d.typeError(n, path, "a boolean")
	}
	return b, nil
}

// ScalarInt decodes an integer scalar. Floating point scalars with an
// integral value are accepted.
func (d *Decoder) ScalarInt(n *yaml.Node, path string) (int64, error) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		if n == nil {
			return 0, d.Errorf(nil, path, "invalid type: null, expected an integer")
		}
		return 0, d.typeError(n, path, "an integer")
	}
	switch n.ShortTag() {
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return 0, d.Errorf(n, path, "invalid value: integer `%s` is out of range", n.Value)
		}
		return i, nil
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<63 {
			return int64(f), nil
		}
	}
	return 0, d.typeError(n, path, "an integer")
}

// ScalarFloat decodes a numeric scalar.
func (d *Decoder) ScalarFloat(n *yaml.Node, path string) (float64, error) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		if n == nil {
			return 0, d.Errorf(nil, path, "invalid type: null, expected a number")
		}
		return 0, d.typeError(n, path, "a number")
	}
	switch n.ShortTag() {
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err == nil {
			return float64(i), nil
		}
	case "!!float":
		if f, ok := parseYAMLFloat(n.Value); ok {
			return f, nil
		}
	}
	return 0, d.typeError(n, path, "a number")
}

func parseYAMLFloat(s string) (float64, bool) {
	switch strings.ToLower(strings.TrimPrefix(s, "+")) {
	case ".inf":
		return math.Inf(1), true
	case "-.inf":
		return math.Inf(-1), true
	case ".nan":
		return math.NaN(), true
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// String decodes a string field. Any scalar is accepted as its text.
func String(dst *string) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		s, err := d.ScalarString(n, path)
		*dst = s
		return err
	}
}

// Enum decodes a string field restricted to allowed values.
func Enum(dst *string, allowed ...string) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		s, err := d.ScalarString(n, path)
		if err != nil {
			return err
		}
		if !slices.Contains(allowed, s) {
			return d.Errorf(n, path, "unknown variant `%s`, expected %s", s, ExpectedOneOf(allowed...))
		}
		*dst = s
		return nil
	}
}

// Bool decodes a boolean field. An explicit null leaves dst false.
func Bool(dst *bool) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		if IsNull(n) {
			return nil
		}
		b, err := d.ScalarBool(n, path)
		*dst = b
		return err
	}
}

// StringPtr decodes an optional string field whose empty value is
// meaningful.
func StringPtr(dst **string) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		if IsNull(n) {
			return nil
		}
		s, err := d.ScalarString(n, path)
		if err != nil {
			return err
		}
		*dst = &s
		return nil
	}
}

// BoolPtr decodes an optional boolean field whose false value is
// meaningful.
func BoolPtr(dst **bool) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		if IsNull(n) {
			return nil
		}
		b, err := d.ScalarBool(n, path)
		if err != nil {
			return err
		}
		*dst = &b
		return nil
	}
}

// Int decodes an optional integer field.
func Int(dst **int64) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		if IsNull(n) {
			return nil
		}
		i, err := d.ScalarInt(n, path)
		if err != nil {
			return err
		}
		*dst = &i
		return nil
	}
}

// Uint decodes an optional non-negative integer field.
func Uint(dst **uint64) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		if IsNull(n) {
			return nil
		}
		i, err := d.ScalarInt(n, path)
		if err != nil {
			return err
		}
		if i < 0 {
			return d.Errorf(n, path, "invalid value: integer `%d`, expected a non-negative integer", i)
		}
		u := uint64(i)
		*dst = &u
		return nil
	}
}

// Float decodes an optional numeric field.
func Float(dst **float64) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		if IsNull(n) {
			return nil
		}
		f, err := d.ScalarFloat(n, path)
		if err != nil {
			return err
		}
		*dst = &f
		return nil
	}
}

// Strings decodes a sequence of strings. A present but empty sequence
// yields a non-nil empty slice so that it survives re-encoding.
func Strings(dst *[]string) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		if IsNull(n) {
			return nil
		}
		out := []string{}
		err := d.Items(n, path, func(i int, v *yaml.Node) error {
			s, err := d.ScalarString(v, pathutil.Index(path, i))
			out = append(out, s)
			return err
		})
		*dst = out
		return err
	}
}

// Ints decodes a sequence of integers.
func Ints(dst *[]int64) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		if IsNull(n) {
			return nil
		}
		out := []int64{}
		err := d.Items(n, path, func(i int, v *yaml.Node) error {
			x, err := d.ScalarInt(v, pathutil.Index(path, i))
			out = append(out, x)
			return err
		})
		*dst = out
		return err
	}
}

// Floats decodes a sequence of numbers.
func Floats(dst *[]float64) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		if IsNull(n) {
			return nil
		}
		out := []float64{}
		err := d.Items(n, path, func(i int, v *yaml.Node) error {
			x, err := d.ScalarFloat(v, pathutil.Index(path, i))
			out = append(out, x)
			return err
		})
		*dst = out
		return err
	}
}

// StringMap decodes a mapping of strings.
func StringMap(dst *map[string]string) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		if IsNull(n) {
			return nil
		}
		out := map[string]string{}
		err := d.Entries(n, path, func(k, v *yaml.Node) error {
			s, err := d.ScalarString(v, pathutil.Key(path, k.Value))
			out[k.Value] = s
			return err
		})
		*dst = out
		return err
	}
}

// Any decodes a free-form value.
func Any(dst *any) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		v, err := d.Value(n, path)
		*dst = v
		return err
	}
}

// AnyMap decodes a mapping of free-form values.
func AnyMap(dst *map[string]any) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		if IsNull(n) {
			return nil
		}
		out := map[string]any{}
		err := d.Entries(n, path, func(k, v *yaml.Node) error {
			val, err := d.Value(v, pathutil.Key(path, k.Value))
			out[k.Value] = val
			return err
		})
		*dst = out
		return err
	}
}

// Anys decodes a sequence of free-form values.
func Anys(dst *[]any) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		if IsNull(n) {
			return nil
		}
		out := []any{}
		err := d.Items(n, path, func(i int, v *yaml.Node) error {
			val, err := d.Value(v, pathutil.Index(path, i))
			out = append(out, val)
			return err
		})
		*dst = out
		return err
	}
}

// Decode decodes n into a new T.
func Decode[T any, PT interface {
	*T
	Unmarshaler
}](d *Decoder, n *yaml.Node, path string) (T, error) {
	var v T
	err := PT(&v).UnmarshalNode(d, n, path)
	return v, err
}

// Into decodes an embedded entity.
func Into[T any, PT interface {
	*T
	Unmarshaler
}](dst *T) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		return PT(dst).UnmarshalNode(d, n, path)
	}
}

// IntoPtr decodes an optional entity. An explicit null leaves dst nil.
func IntoPtr[T any, PT interface {
	*T
	Unmarshaler
}](dst **T) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		if IsNull(n) {
			return nil
		}
		v := new(T)
		if err := PT(v).UnmarshalNode(d, n, path); err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// IntoMapEntry decodes an entity and stores it in *dst under key. The map
// is allocated on first use and a null value stores nothing.
func IntoMapEntry[T any, PT interface {
	*T
	Unmarshaler
}](dst *map[string]*T, key string) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		var v *T
		if err := IntoPtr[T, PT](&v)(d, n, path); err != nil || v == nil {
			return err
		}
		if *dst == nil {
			*dst = make(map[string]*T)
		}
		(*dst)[key] = v
		return nil
	}
}

// SliceOf decodes a sequence of entities.
func SliceOf[T any, PT interface {
	*T
	Unmarshaler
}](dst *[]T) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		if IsNull(n) {
			return nil
		}
		out := []T{}
		err := d.Items(n, path, func(i int, v *yaml.Node) error {
			var item T
			if err := PT(&item).UnmarshalNode(d, v, pathutil.Index(path, i)); err != nil {
				return err
			}
			out = append(out, item)
			return nil
		})
		if err != nil {
			return err
		}
		*dst = out
		return nil
	}
}

// MapOf decodes a mapping of entities keyed by name.
func MapOf[T any, PT interface {
	*T
	Unmarshaler
}](dst *map[string]T) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		if IsNull(n) {
			return nil
		}
		out := map[string]T{}
		err := d.Entries(n, path, func(k, v *yaml.Node) error {
			var item T
			if err := PT(&item).UnmarshalNode(d, v, pathutil.Key(path, k.Value)); err != nil {
				return err
			}
			out[k.Value] = item
			return nil
		})
		if err != nil {
			return err
		}
		*dst = out
		return nil
	}
}
