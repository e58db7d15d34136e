package parser

import (
	"fmt"

	"github.com/erraggy/oascheck/internal/pathutil"
	"go.yaml.in/yaml/v4"
)

// RefKey is the wire key of a reference record.
const RefKey = "$ref"

// Reference is a pointer to an entity stored elsewhere: an in-document
// fragment ("#/components/schemas/Pet") or an external URI that is
// recognized but never dereferenced.
type Reference struct {
	Ref         string
	Summary     string
	Description string
}

// IsInternal reports whether the reference points into the current document.
func (r *Reference) IsInternal() bool {
	return pathutil.IsInternalRef(r.Ref)
}

// UnmarshalNode implements Unmarshaler. Siblings of "$ref" other than
// summary and description are ignored even in strict mode.
func (r *Reference) UnmarshalNode(d *Decoder, n *yaml.Node, path string) error {
	if d.strict {
		d = NewDecoder(false)
	}
	return d.Object(n, path, Fields{
		RefKey:        String(&r.Ref),
		"summary":     String(&r.Summary),
		"description": String(&r.Description),
	}, nil, RefKey)
}

// MarshalNode implements Marshaler.
func (r *Reference) MarshalNode() *yaml.Node {
	return NewMapping().
		RequiredString(RefKey, r.Ref).
		String("summary", r.Summary).
		String("description", r.Description).
		Node()
}

// RefOr holds exactly one of a Reference or an inline value of T.
// T must implement Unmarshaler and Marshaler through its pointer.
type RefOr[T any] struct {
	Ref   *Reference
	Value *T
}

// NewRef returns a RefOr holding a reference to ref.
func NewRef[T any](ref string) RefOr[T] {
	return RefOr[T]{Ref: &Reference{Ref: ref}}
}

// NewValue returns a RefOr holding v inline.
func NewValue[T any](v *T) RefOr[T] {
	return RefOr[T]{Value: v}
}

// IsRef reports whether the reference variant is held.
func (r RefOr[T]) IsRef() bool {
	return r.Ref != nil
}

// UnmarshalNode implements Unmarshaler. The narrower reference shape is
// tried first: a mapping carrying "$ref" is a Reference, anything else is
// decoded as T.
func (r *RefOr[T]) UnmarshalNode(d *Decoder, n *yaml.Node, path string) error {
	n = Resolve(n)
	if HasKey(n, RefKey) {
		ref := new(Reference)
		if err := ref.UnmarshalNode(d, n, path); err != nil {
			return err
		}
		r.Ref, r.Value = ref, nil
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
	r.Ref, r.Value = nil, v
	return nil
}

// MarshalNode implements Marshaler. The held variant is written untagged.
func (r *RefOr[T]) MarshalNode() *yaml.Node {
	if r.Ref != nil {
		return r.Ref.MarshalNode()
	}
	if m, ok := any(r.Value).(Marshaler); ok && r.Value != nil {
		return m.MarshalNode()
	}
	return NullNode()
}
