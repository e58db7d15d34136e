package parser

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/erraggy/oascheck/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

// testObject is a minimal entity with one required field and extensions.
type testObject struct {
	Foo        string
	Count      *int64
	Tags       []string
	Extensions Extensions
}

func (o *testObject) UnmarshalNode(d *Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, Fields{
		"foo":   String(&o.Foo),
		"count": Int(&o.Count),
		"tags":  Strings(&o.Tags),
	}, &o.Extensions, "foo")
}

func (o *testObject) MarshalNode() *yaml.Node {
	return NewMapping().
		RequiredString("foo", o.Foo).
		Int("count", o.Count).
		Strings("tags", o.Tags).
		Extensions(o.Extensions).
		Node()
}

func parseTestObject(t *testing.T, input string, opts ...Option) (*testObject, error) {
	t.Helper()
	return ParseWithOptions[testObject](append(opts, WithBytes([]byte(input)))...)
}

func TestExtensionRoundTrip(t *testing.T) {
	t.Run("extensions are kept", func(t *testing.T) {
		obj, err := parseTestObject(t, `{"foo":"bar","x-added":2}`)
		require.NoError(t, err)
		assert.Equal(t, "bar", obj.Foo)
		assert.Equal(t, Extensions{"x-added": int64(2)}, obj.Extensions)

		out, err := MarshalJSON(obj)
		require.NoError(t, err)
		assert.JSONEq(t, `{"foo":"bar","x-added":2}`, string(out))
		assert.Equal(t, `{"foo":"bar","x-added":2}`, string(out))
	})

	t.Run("unknown fields are dropped", func(t *testing.T) {
		obj, err := parseTestObject(t, `{"foo":"bar","skipped":1,"x-added":2}`)
		require.NoError(t, err)
		assert.Equal(t, Extensions{"x-added": int64(2)}, obj.Extensions)

		out, err := MarshalJSON(obj)
		require.NoError(t, err)
		assert.Equal(t, `{"foo":"bar","x-added":2}`, string(out))
	})

	t.Run("no extensions yields nil map", func(t *testing.T) {
		obj, err := parseTestObject(t, `{"foo":"bar"}`)
		require.NoError(t, err)
		assert.Nil(t, obj.Extensions)
	})

	t.Run("entries without prefix are not encoded", func(t *testing.T) {
		obj := &testObject{Foo: "bar", Extensions: Extensions{"x-b": "2", "plain": 1, "x-a": true}}
		out, err := MarshalJSON(obj)
		require.NoError(t, err)
		assert.Equal(t, `{"foo":"bar","x-a":true,"x-b":"2"}`, string(out))
	})
}

func TestDuplicateFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
	}{
		{"extension key", "foo: bar\nx-a: 1\nx-a: 2\n", "x-a"},
		{"fixed field", "foo: bar\nfoo: baz\n", "foo"},
		{"json extension key", `{"foo":"bar","x-dup":1,"x-dup":1}`, "x-dup"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseTestObject(t, tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrDecode)

			var decErr *oaserrors.DecodeError
			require.True(t, errors.As(err, &decErr))
			assert.Equal(t, "duplicate field `"+tt.key+"`", decErr.Message)
			assert.Positive(t, decErr.Line)
		})
	}
}

func TestStrictFields(t *testing.T) {
	_, err := parseTestObject(t, "foo: bar\nskipped: 1\n", WithStrictFields(true))
	require.Error(t, err)

	var decErr *oaserrors.DecodeError
	require.True(t, errors.As(err, &decErr))
	assert.Equal(t, "unknown field `skipped`, expected one of `count`, `foo`, `tags`, `x-...`", decErr.Message)
	assert.Equal(t, 2, decErr.Line)
	assert.Equal(t, 1, decErr.Column)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"missing required field", "count: 1\n", "missing field `foo`"},
		{"not a mapping", "- a\n- b\n", "invalid type: a sequence, expected a mapping"},
		{"wrong scalar type", "foo: bar\ncount: abc\n", "invalid type: string `abc`, expected an integer"},
		{"wrong collection type", "foo: bar\ntags: abc\n", "invalid type: string `abc`, expected a sequence"},
		{"empty document", "", "empty document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseTestObject(t, tt.input)
			require.Error(t, err)
			var decErr *oaserrors.DecodeError
			require.True(t, errors.As(err, &decErr))
			assert.Equal(t, tt.message, decErr.Message)
		})
	}

	t.Run("malformed input keeps cause", func(t *testing.T) {
		_, err := parseTestObject(t, "foo: [unclosed\n")
		require.Error(t, err)
		var decErr *oaserrors.DecodeError
		require.True(t, errors.As(err, &decErr))
		assert.Equal(t, "malformed document", decErr.Message)
		assert.NotNil(t, decErr.Cause)
	})
}

func TestScalarCoercion(t *testing.T) {
	obj, err := parseTestObject(t, "foo: 3.0\ncount: 16\ntags: []\n")
	require.NoError(t, err)
	assert.Equal(t, "3.0", obj.Foo)
	require.NotNil(t, obj.Count)
	assert.Equal(t, int64(16), *obj.Count)
	assert.NotNil(t, obj.Tags)
	assert.Empty(t, obj.Tags)

	out, err := MarshalJSON(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"foo":"3.0","count":16,"tags":[]}`, string(out))
}

func TestParseOptions(t *testing.T) {
	t.Run("requires a source", func(t *testing.T) {
		_, err := ParseWithOptions[testObject]()
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})

	t.Run("rejects two sources", func(t *testing.T) {
		_, err := ParseWithOptions[testObject](WithBytes([]byte("foo: a")), WithReader(strings.NewReader("foo: b")))
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})

	t.Run("reads from reader", func(t *testing.T) {
		obj, err := ParseWithOptions[testObject](WithReader(strings.NewReader("foo: from-reader")))
		require.NoError(t, err)
		assert.Equal(t, "from-reader", obj.Foo)
	})

	t.Run("logs through slog adapter", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
		_, err := parseTestObject(t, "foo: bar", WithLogger(logger))
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "decoded document")
	})
}

func TestEntriesRejectDuplicates(t *testing.T) {
	root, err := ParseNode([]byte("a: 1\nb: 2\na: 3\n"))
	require.NoError(t, err)

	var keys []string
	err = NewDecoder(false).Entries(root, "#", func(k, _ *yaml.Node) error {
		keys = append(keys, k.Value)
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate field `a`")
	assert.Equal(t, []string{"a", "b"}, keys)
}
