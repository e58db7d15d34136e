package parser

import (
	"fmt"

	"go.yaml.in/yaml/v4"
)

// BoolOr holds exactly one of a boolean or a value of T: "no constraint",
// "any constraint" or a specific schema.
type BoolOr[T any] struct {
	Bool  *bool
	Value *T
}

// NewBool returns a BoolOr holding b.
func NewBool[T any](b bool) BoolOr[T] {
	return BoolOr[T]{Bool: &b}
}

// UnmarshalNode implements Unmarshaler. A boolean scalar is tried first,
// anything else is decoded as T.
func (b *BoolOr[T]) UnmarshalNode(d *Decoder, n *yaml.Node, path string) error {
	n = Resolve(n)
	if n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == "!!bool" {
		v, err := d.ScalarBool(n, path)
		if err != nil {
			return err
		}
		b.Bool, b.Value = &v, nil
		return nil
	}

	v := new(T)
	u, ok := any(v).(Unmarshaler)
	if !ok {
		return fmt.Errorf("parser: %T does not implement Unmarshaler", v)
	}
	if err := u.UnmarshalNode(d, n, path); err != nil {
		return err
	}
	b.Bool, b.Value = nil, v
	return nil
}

// MarshalNode implements Marshaler.
func (b *BoolOr[T]) MarshalNode() *yaml.Node {
	if b.Bool != nil {
		return BoolNode(*b.Bool)
	}
	if m, ok := any(b.Value).(Marshaler); ok && b.Value != nil {
		return m.MarshalNode()
	}
	return NullNode()
}
