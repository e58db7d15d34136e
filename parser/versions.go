package parser

import (
	"slices"
	"strings"

	"go.yaml.in/yaml/v4"
)

// OASVersion represents each canonical version of the OpenAPI Specification that may be found at:
// https://github.com/OAI/OpenAPI-Specification/releases
type OASVersion int

const (
	// Unknown represents an unknown or invalid OAS version
	Unknown OASVersion = iota
	// OASVersion20 OpenAPI Specification Version 2.0 (Swagger)
	OASVersion20
	// OASVersion300 OpenAPI Specification Version 3.0.0
	OASVersion300
	// OASVersion301  OpenAPI Specification Version 3.0.1
	OASVersion301
	// OASVersion302  OpenAPI Specification Version 3.0.2
	OASVersion302
	// OASVersion303  OpenAPI Specification Version 3.0.3
	OASVersion303
	// OASVersion304  OpenAPI Specification Version 3.0.4
	OASVersion304
	// OASVersion310  OpenAPI Specification Version 3.1.0
	OASVersion310
	// OASVersion311  OpenAPI Specification Version 3.1.1
	OASVersion311
	// OASVersion312  OpenAPI Specification Version 3.1.2
	OASVersion312
)

// Version lines accepted by each document root.
var (
	VersionLine20 = []OASVersion{OASVersion20}
	VersionLine30 = []OASVersion{OASVersion300, OASVersion301, OASVersion302, OASVersion303, OASVersion304}
	VersionLine31 = []OASVersion{OASVersion310, OASVersion311, OASVersion312}
)

var versionToString = map[OASVersion]string{
	OASVersion20:  "2.0",
	OASVersion300: "3.0.0",
	OASVersion301: "3.0.1",
	OASVersion302: "3.0.2",
	OASVersion303: "3.0.3",
	OASVersion304: "3.0.4",
	OASVersion310: "3.1.0",
	OASVersion311: "3.1.1",
	OASVersion312: "3.1.2",
}

// String returns the canonical version string, or "unknown".
func (v OASVersion) String() string {
	if s, ok := versionToString[v]; ok {
		return s
	}
	return "unknown"
}

// series returns "major.minor" of a canonical version string.
func series(s string) string {
	if i := strings.LastIndexByte(s, '.'); i > 0 && strings.Count(s, ".") == 2 {
		return s[:i]
	}
	return s
}

// ParseVersion resolves s against a version line. An exact match wins;
// otherwise a bare "major.minor" alias resolves to the newest patch of
// that series in the line, its canonical default.
func ParseVersion(s string, line []OASVersion) (OASVersion, bool) {
	for _, v := range line {
		if v.String() == s {
			return v, true
		}
	}
	var found OASVersion
	for _, v := range line {
		if series(v.String()) == s && v > found {
			found = v
		}
	}
	return found, found != Unknown
}

// acceptedVersions lists the canonical strings and aliases of a line.
func acceptedVersions(line []OASVersion) []string {
	out := make([]string, 0, len(line)+1)
	var aliases []string
	for _, v := range line {
		s := v.String()
		out = append(out, s)
		if a := series(s); a != s && !slices.Contains(aliases, a) {
			aliases = append(aliases, a)
		}
	}
	return append(out, aliases...)
}

// VersionField decodes the version discriminant of a document root.
func VersionField(dst *OASVersion, line []OASVersion) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		s, err := d.ScalarString(n, path)
		if err != nil {
			return err
		}
		v, ok := ParseVersion(s, line)
		if !ok {
			return d.Errorf(n, path, "unknown variant `%s`, expected %s", s, ExpectedOneOf(acceptedVersions(line)...))
		}
		*dst = v
		return nil
	}
}
