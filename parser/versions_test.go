package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input string
		line  []OASVersion
		want  OASVersion
		ok    bool
	}{
		{"2.0", VersionLine20, OASVersion20, true},
		{"2", VersionLine20, Unknown, false},
		{"3.0.2", VersionLine30, OASVersion302, true},
		{"3.0", VersionLine30, OASVersion304, true},
		{"3.0.9", VersionLine30, Unknown, false},
		{"3.1.0", VersionLine30, Unknown, false},
		{"3.1", VersionLine31, OASVersion312, true},
		{"3.1.1", VersionLine31, OASVersion311, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseVersion(tt.input, tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

type versionHolder struct {
	Version OASVersion
}

func (v *versionHolder) UnmarshalNode(d *Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, Fields{"openapi": VersionField(&v.Version, VersionLine30)}, nil, "openapi")
}

func TestVersionField(t *testing.T) {
	v, err := decodeNode[versionHolder](t, "openapi: 3.0")
	require.NoError(t, err)
	assert.Equal(t, OASVersion304, v.Version)
	assert.Equal(t, "3.0.4", v.Version.String())

	_, err = decodeNode[versionHolder](t, "openapi: 3.2.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown variant `3.2.0`, expected one of `3.0.0`, `3.0.1`, `3.0.2`, `3.0.3`, `3.0.4`, `3.0`")

	_, err = decodeNode[versionHolder](t, "info: {}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing field `openapi`")
}

func TestNormalizeMethod(t *testing.T) {
	assert.Equal(t, "get", NormalizeMethod("GET"))
	assert.Equal(t, "patch", NormalizeMethod("Patch"))
	assert.Equal(t, "trace", NormalizeMethod("trace"))
}
