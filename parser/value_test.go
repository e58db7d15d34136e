package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

type valueHolder struct {
	Value any
}

func (v *valueHolder) UnmarshalNode(d *Decoder, n *yaml.Node, path string) error {
	val, err := d.Value(n, path)
	v.Value = val
	return err
}

func (v *valueHolder) MarshalNode() *yaml.Node {
	return ValueNode(v.Value)
}

func TestValueRoundTrip(t *testing.T) {
	input := `{"a":[1,2.5,"three",true,null],"b":{"nested":{"deep":-4}},"c":1.0}`
	h, err := decodeNode[valueHolder](t, input)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"a": []any{int64(1), 2.5, "three", true, nil},
		"b": map[string]any{"nested": map[string]any{"deep": int64(-4)}},
		"c": 1.0,
	}, h.Value)

	out, err := MarshalJSON(&h)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,2.5,"three",true,null],"b":{"nested":{"deep":-4}},"c":1.0}`, string(out))

	again, err := decodeNode[valueHolder](t, string(out))
	require.NoError(t, err)
	assert.Equal(t, h.Value, again.Value)
}

func TestValueDuplicateKeys(t *testing.T) {
	_, err := decodeNode[valueHolder](t, "{a: 1, a: 2}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate field `a`")
}

func TestMarshalYAML(t *testing.T) {
	obj := &testObject{Foo: "200", Tags: []string{"true", "x"}, Extensions: Extensions{"x-n": int64(1)}}
	out, err := MarshalYAML(obj)
	require.NoError(t, err)

	back, err := parseTestObject(t, string(out))
	require.NoError(t, err)
	assert.Equal(t, obj, back)
}

func TestMarshalJSONIndent(t *testing.T) {
	out, err := MarshalJSONIndent(&testObject{Foo: "bar"}, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"foo\": \"bar\"\n}", string(out))
}

func TestJSONRejectsNonFinite(t *testing.T) {
	inf, err := decodeNode[valueHolder](t, "x: .inf")
	require.NoError(t, err)
	_, err = MarshalJSON(&inf)
	assert.Error(t, err)
}
