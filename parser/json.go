package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"go.yaml.in/yaml/v4"
)

// writeJSON writes a node tree as compact JSON, keeping mapping key order
// and honoring scalar tags.
func writeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	n = Resolve(n)
	if n == nil {
		buf.WriteString("null")
		return nil
	}

	switch n.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, n.Content[i].Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		return writeJSONScalar(buf, n)

	default:
		return fmt.Errorf("unsupported node kind %v at line %d", n.Kind, n.Line)
	}
}

func writeJSONScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		buf.WriteString("null")
	case "!!bool":
		switch v := scalarValue(n).(type) {
		case bool:
			buf.WriteString(strconv.FormatBool(v))
		default:
			return writeJSONString(buf, n.Value)
		}
	case "!!int":
		switch v := scalarValue(n).(type) {
		case int64:
			buf.WriteString(strconv.FormatInt(v, 10))
		case float64:
			return writeJSONFloat(buf, v)
		default:
			return writeJSONString(buf, n.Value)
		}
	case "!!float":
		f, ok := parseYAMLFloat(n.Value)
		if !ok {
			return writeJSONString(buf, n.Value)
		}
		return writeJSONFloat(buf, f)
	default:
		return writeJSONString(buf, n.Value)
	}
	return nil
}

func writeJSONFloat(buf *bytes.Buffer, f float64) error {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Errorf("unsupported value: %v", f)
	}
	buf.WriteString(FloatNode(f).Value)
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
