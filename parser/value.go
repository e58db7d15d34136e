package parser

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/oascheck/internal/pathutil"
	"go.yaml.in/yaml/v4"
)

// Value decodes a free-form JSON-equivalent value: mappings become
// map[string]any, sequences []any, and scalars string, int64, float64,
// bool or nil. Repeated mapping keys are rejected.
func (d *Decoder) Value(n *yaml.Node, path string) (any, error) {
	n = Resolve(n)
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		err := d.Entries(n, path, func(k, v *yaml.Node) error {
			val, err := d.Value(v, pathutil.Field(path, k.Value))
			out[k.Value] = val
			return err
		})
		return out, err
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for i, item := range n.Content {
			val, err := d.Value(item, pathutil.Index(path, i))
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	case yaml.ScalarNode:
		return scalarValue(n), nil
	default:
		return nil, d.typeError(n, path, "a value")
	}
}

func scalarValue(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		if b, err := strconv.ParseBool(strings.ToLower(n.Value)); err == nil {
			return b
		}
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return f
		}
	case "!!float":
		if f, ok := parseYAMLFloat(n.Value); ok {
			return f
		}
	}
	return n.Value
}

// ValueNode encodes a free-form value produced by Decoder.Value. Mapping
// keys are emitted in ascending order.
func ValueNode(v any) *yaml.Node {
	switch val := v.(type) {
	case nil:
		return NullNode()
	case string:
		return StringNode(val)
	case bool:
		return BoolNode(val)
	case int:
		return IntNode(int64(val))
	case int64:
		return IntNode(val)
	case int32:
		return IntNode(int64(val))
	case uint64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(val, 10)}
	case float32:
		return FloatNode(float64(val))
	case float64:
		return FloatNode(val)
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			seq.Content = append(seq.Content, ValueNode(item))
		}
		return seq
	case []string:
		return StringsNode(val)
	case map[string]any:
		m := NewMapping()
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			m.Set(k, ValueNode(val[k]))
		}
		return m.Node()
	case Marshaler:
		return val.MarshalNode()
	default:
		return StringNode(fmt.Sprint(val))
	}
}

// FloatNode encodes a float. Integral values keep a trailing ".0" so the
// scalar still resolves as a float.
func FloatNode(f float64) *yaml.Node {
	var s string
	switch {
	case math.IsInf(f, 1):
		s = ".inf"
	case math.IsInf(f, -1):
		s = "-.inf"
	case math.IsNaN(f):
		s = ".nan"
	default:
		s = strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEn") {
			s += ".0"
		}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}
}
