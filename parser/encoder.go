package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"go.yaml.in/yaml/v4"
)

// Marshaler is implemented by every typed entity of a document tree.
// The returned node is a fresh tree owned by the caller.
type Marshaler interface {
	MarshalNode() *yaml.Node
}

// Mapping builds a mapping node with keys in insertion order. The setters
// skip absent values so that optional fields are omitted on write.
type Mapping struct {
	node *yaml.Node
}

// NewMapping returns an empty mapping builder.
func NewMapping() *Mapping {
	return &Mapping{node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

// Node returns the built mapping node.
func (m *Mapping) Node() *yaml.Node {
	return m.node
}

// Set appends key with value v. A nil v is skipped.
func (m *Mapping) Set(key string, v *yaml.Node) *Mapping {
	if v == nil {
		return m
	}
	m.node.Content = append(m.node.Content, StringNode(key), v)
	return m
}

// String appends a non-empty string.
func (m *Mapping) String(key, v string) *Mapping {
	if v == "" {
		return m
	}
	return m.Set(key, StringNode(v))
}

// RequiredString appends a string even when empty.
func (m *Mapping) RequiredString(key, v string) *Mapping {
	return m.Set(key, StringNode(v))
}

// Bool appends a true boolean.
func (m *Mapping) Bool(key string, v bool) *Mapping {
	if !v {
		return m
	}
	return m.Set(key, BoolNode(v))
}

// StringPtr appends an optional string, empty or not.
func (m *Mapping) StringPtr(key string, v *string) *Mapping {
	if v == nil {
		return m
	}
	return m.Set(key, StringNode(*v))
}

// BoolPtr appends an optional boolean, false or not.
func (m *Mapping) BoolPtr(key string, v *bool) *Mapping {
	if v == nil {
		return m
	}
	return m.Set(key, BoolNode(*v))
}

// Int appends an optional integer.
func (m *Mapping) Int(key string, v *int64) *Mapping {
	if v == nil {
		return m
	}
	return m.Set(key, IntNode(*v))
}

// Uint appends an optional non-negative integer.
func (m *Mapping) Uint(key string, v *uint64) *Mapping {
	if v == nil {
		return m
	}
	return m.Set(key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(*v, 10)})
}

// Float appends an optional number.
func (m *Mapping) Float(key string, v *float64) *Mapping {
	if v == nil {
		return m
	}
	return m.Set(key, FloatNode(*v))
}

// Strings appends a string sequence. A nil slice is skipped, an empty one
// is kept.
func (m *Mapping) Strings(key string, v []string) *Mapping {
	return m.Set(key, StringsNode(v))
}

// Ints appends an integer sequence. A nil slice is skipped.
func (m *Mapping) Ints(key string, v []int64) *Mapping {
	if v == nil {
		return m
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, i := range v {
		seq.Content = append(seq.Content, IntNode(i))
	}
	return m.Set(key, seq)
}

// Floats appends a number sequence. A nil slice is skipped.
func (m *Mapping) Floats(key string, v []float64) *Mapping {
	if v == nil {
		return m
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, f := range v {
		seq.Content = append(seq.Content, FloatNode(f))
	}
	return m.Set(key, seq)
}

// StringMap appends a string mapping with keys in ascending order.
func (m *Mapping) StringMap(key string, v map[string]string) *Mapping {
	if v == nil {
		return m
	}
	inner := NewMapping()
	for _, k := range SortedKeys(v) {
		inner.Set(k, StringNode(v[k]))
	}
	return m.Set(key, inner.Node())
}

// Any appends a free-form value. A nil value is skipped.
func (m *Mapping) Any(key string, v any) *Mapping {
	if v == nil {
		return m
	}
	return m.Set(key, ValueNode(v))
}

// AnyMap appends a mapping of free-form values with keys in ascending
// order. A nil map is skipped.
func (m *Mapping) AnyMap(key string, v map[string]any) *Mapping {
	if v == nil {
		return m
	}
	return m.Set(key, ValueNode(v))
}

// Anys appends a sequence of free-form values.
func (m *Mapping) Anys(key string, v []any) *Mapping {
	if v == nil {
		return m
	}
	return m.Set(key, ValueNode(v))
}

// Extensions appends the "x-" entries of ext in ascending key order.
func (m *Mapping) Extensions(ext Extensions) *Mapping {
	for _, k := range SortedKeys(ext) {
		if IsExtensionKey(k) {
			m.Set(k, ValueNode(ext[k]))
		}
	}
	return m
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// StringNode encodes a string scalar.
func StringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// BoolNode encodes a boolean scalar.
func BoolNode(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}

// IntNode encodes an integer scalar.
func IntNode(i int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(i, 10)}
}

// NullNode encodes null.
func NullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// StringsNode encodes a string sequence; nil yields nil.
func StringsNode(v []string) *yaml.Node {
	if v == nil {
		return nil
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, s := range v {
		seq.Content = append(seq.Content, StringNode(s))
	}
	return seq
}

// NodeOf encodes an optional entity; nil yields nil.
func NodeOf[T any, PT interface {
	*T
	Marshaler
}](v *T) *yaml.Node {
	if v == nil {
		return nil
	}
	return PT(v).MarshalNode()
}

// SliceNode encodes a sequence of entities; nil yields nil.
func SliceNode[T any, PT interface {
	*T
	Marshaler
}](s []T) *yaml.Node {
	if s == nil {
		return nil
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for i := range s {
		seq.Content = append(seq.Content, PT(&s[i]).MarshalNode())
	}
	return seq
}

// MapNode encodes a mapping of entities with keys in ascending order;
// nil yields nil.
func MapNode[T any, PT interface {
	*T
	Marshaler
}](m map[string]T) *yaml.Node {
	if m == nil {
		return nil
	}
	out := NewMapping()
	for _, k := range SortedKeys(m) {
		v := m[k]
		out.Set(k, PT(&v).MarshalNode())
	}
	return out.Node()
}

// MarshalYAML renders v as a YAML document.
func MarshalYAML(v Marshaler) ([]byte, error) {
	out, err := yaml.Marshal(v.MarshalNode())
	if err != nil {
		return nil, fmt.Errorf("parser: failed to marshal YAML: %w", err)
	}
	return out, nil
}

// MarshalJSON renders v as compact JSON.
func MarshalJSON(v Marshaler) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v.MarshalNode()); err != nil {
		return nil, fmt.Errorf("parser: failed to marshal JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalJSONIndent renders v as indented JSON.
func MarshalJSONIndent(v Marshaler, prefix, indent string) ([]byte, error) {
	data, err := MarshalJSON(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
