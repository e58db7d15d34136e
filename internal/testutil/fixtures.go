// Package testutil provides fixture helpers for the version package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oascheck/parser"
)

// ReadFixture returns the contents of testdata/name relative to the
// calling package.
func ReadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err, "failed to read fixture %s", name)
	return data
}

// ParseFixture reads testdata/name and decodes it with parse.
func ParseFixture[T any](t *testing.T, name string, parse func([]byte, ...parser.Option) (T, error)) T {
	t.Helper()
	doc, err := parse(ReadFixture(t, name))
	require.NoError(t, err, "failed to parse fixture %s", name)
	return doc
}

// AssertRoundTrip encodes doc as JSON and as YAML and checks that decoding
// each output with parse yields a value equal to doc.
func AssertRoundTrip[T parser.Marshaler](t *testing.T, doc T, parse func([]byte, ...parser.Option) (T, error)) {
	t.Helper()

	encoders := map[string]func(parser.Marshaler) ([]byte, error){
		"json": parser.MarshalJSON,
		"yaml": parser.MarshalYAML,
	}
	for _, format := range []string{"json", "yaml"} {
		data, err := encoders[format](doc)
		require.NoError(t, err, format)
		again, err := parse(data)
		require.NoError(t, err, "%s output did not decode:\n%s", format, data)
		assert.Equal(t, doc, again, format)
	}
}
