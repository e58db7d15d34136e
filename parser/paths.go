package parser

import (
	"cmp"
	"slices"
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascheck/internal/httputil"
	"github.com/erraggy/oascheck/internal/pathutil"
)

// responseKeys lists the accepted keys of a response table for errors.
var responseKeys = append([]string{"default", ExtensionPrefix + "..."}, httputil.StatusCodeRanges...)

// Responses is a container for the expected responses of an operation.
// Keys other than "default", extensions and status codes within
// [100..599] are rejected in both lenient and strict mode.
type Responses[T any] struct {
	Default *RefOr[T]
	// Codes is keyed by the canonical decimal status code, so "0200" in
	// the input is stored as "200".
	Codes      map[string]RefOr[T]
	Extensions Extensions
}

// Len returns the number of responses, default included.
func (r *Responses[T]) Len() int {
	n := len(r.Codes)
	if r.Default != nil {
		n++
	}
	return n
}

// SortedCodes returns the status codes in ascending numeric order.
func (r *Responses[T]) SortedCodes() []string {
	codes := SortedKeys(r.Codes)
	slices.SortStableFunc(codes, func(a, b string) int {
		x, _ := strconv.Atoi(a)
		y, _ := strconv.Atoi(b)
		return cmp.Compare(x, y)
	})
	return codes
}

// UnmarshalNode implements Unmarshaler.
func (r *Responses[T]) UnmarshalNode(d *Decoder, n *yaml.Node, path string) error {
	*r = Responses[T]{}
	return d.Entries(n, path, func(k, v *yaml.Node) error {
		key := k.Value
		switch {
		case key == "default":
			def := new(RefOr[T])
			if err := def.UnmarshalNode(d, v, pathutil.Field(path, key)); err != nil {
				return err
			}
			r.Default = def
		case IsExtensionKey(key):
			val, err := d.Value(v, pathutil.Field(path, key))
			if err != nil {
				return err
			}
			if r.Extensions == nil {
				r.Extensions = make(Extensions)
			}
			r.Extensions[key] = val
		default:
			code, ok := httputil.ParseStatusCode(key)
			if !ok {
				return d.Errorf(k, path, "unknown field `%s`, expected %s", key, ExpectedOneOf(responseKeys...))
			}
			canonical := strconv.Itoa(code)
			if _, dup := r.Codes[canonical]; dup {
				return d.Errorf(k, path, "duplicate field `%s`", key)
			}
			var entry RefOr[T]
			if err := entry.UnmarshalNode(d, v, pathutil.Field(path, canonical)); err != nil {
				return err
			}
			if r.Codes == nil {
				r.Codes = make(map[string]RefOr[T])
			}
			r.Codes[canonical] = entry
		}
		return nil
	})
}

// MarshalNode implements Marshaler. The default response comes first,
// then codes in ascending order, then extensions.
func (r *Responses[T]) MarshalNode() *yaml.Node {
	out := NewMapping()
	if r.Default != nil {
		out.Set("default", r.Default.MarshalNode())
	}
	for _, code := range r.SortedCodes() {
		entry := r.Codes[code]
		out.Set(code, entry.MarshalNode())
	}
	return out.Extensions(r.Extensions).Node()
}

// PathItem decodes a path item mapping. Keys in fields are fixed fields
// and "x-" keys go to ext. Every other key names an operation: it is
// lower-cased and handed to operation, so "GET" and "get" select the same
// slot and repeat each other. Methods outside the fixed slots of a version
// are kept too.
func (d *Decoder) PathItem(n *yaml.Node, path string, fields Fields, operation func(method string) Field, ext *Extensions) error {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		if n == nil {
			return d.Errorf(nil, path, "invalid type: null, expected a mapping")
		}
		return d.typeError(n, path, "a mapping")
	}

	seen := make(map[string]struct{}, len(n.Content)/2)
	methods := make(map[string]struct{})
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		key := k.Value
		if f, ok := fields[key]; ok {
			if _, dup := seen[key]; dup {
				return d.Errorf(k, path, "duplicate field `%s`", key)
			}
			seen[key] = struct{}{}
			if err := f(d, Resolve(v), pathutil.Field(path, key)); err != nil {
				return err
			}
			continue
		}
		if IsExtensionKey(key) {
			if _, dup := seen[key]; dup {
				return d.Errorf(k, path, "duplicate field `%s`", key)
			}
			seen[key] = struct{}{}
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

		method := NormalizeMethod(key)
		if _, dup := methods[method]; dup {
			return d.Errorf(k, path, "duplicate field `%s`", method)
		}
		methods[method] = struct{}{}
		if err := operation(method)(d, Resolve(v), pathutil.Field(path, method)); err != nil {
			return err
		}
	}
	return nil
}
