package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oascheck/parser"
)

func TestReadFixture(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "testdata"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "testdata", "info.yaml"), []byte("title: t\nversion: v\n"), 0o600))
	t.Chdir(dir)

	assert.Equal(t, []byte("title: t\nversion: v\n"), ReadFixture(t, "info.yaml"))

	info := ParseFixture(t, "info.yaml", parseInfo)
	assert.Equal(t, "t", info.Title)
	assert.Equal(t, "v", info.Version)
}

func TestAssertRoundTrip(t *testing.T) {
	info := &parser.Info{
		Title:      "t",
		Version:    "v",
		Extensions: parser.Extensions{"x-audience": "internal"},
	}
	AssertRoundTrip(t, info, parseInfo)
}

func parseInfo(data []byte, opts ...parser.Option) (*parser.Info, error) {
	return parser.ParseWithOptions[parser.Info](append([]parser.Option{parser.WithBytes(data)}, opts...)...)
}
