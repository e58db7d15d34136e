// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import (
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// InternalPrefix marks a reference into the current document.
const InternalPrefix = "#/"

// OAS 2.0 reference prefixes
const (
	RefPrefixDefinitions         = "#/definitions/"
	RefPrefixParameters          = "#/parameters/"
	RefPrefixResponses           = "#/responses/"
	RefPrefixSecurityDefinitions = "#/securityDefinitions/"
	RefPrefixTags                = "#/tags/"
)

// OAS 3.x reference prefixes
const (
	RefPrefixSchemas         = "#/components/schemas/"
	RefPrefixParameters3     = "#/components/parameters/"
	RefPrefixResponses3      = "#/components/responses/"
	RefPrefixExamples        = "#/components/examples/"
	RefPrefixRequestBodies   = "#/components/requestBodies/"
	RefPrefixHeaders         = "#/components/headers/"
	RefPrefixSecuritySchemes = "#/components/securitySchemes/"
	RefPrefixLinks           = "#/components/links/"
	RefPrefixCallbacks       = "#/components/callbacks/"
	RefPrefixPathItems       = "#/components/pathItems/"
)

// JoinRef appends an escaped component name to a reference prefix.
func JoinRef(prefix, name string) string {
	return prefix + jsonpointer.Escape(name)
}

// TagRef builds "#/tags/{name}". Tag names are not escaped; they are
// never resolved through a pointer, only matched as visited keys.
func TagRef(name string) string {
	return RefPrefixTags + name
}

// SchemaRef builds "#/components/schemas/{name}" (OAS 3.x).
func SchemaRef(name string) string {
	return RefPrefixSchemas + jsonpointer.Escape(name)
}

// SecuritySchemeRef builds the appropriate security scheme ref.
// If oas2 is true, returns "#/securityDefinitions/{name}", otherwise "#/components/securitySchemes/{name}".
func SecuritySchemeRef(name string, oas2 bool) string {
	if oas2 {
		return RefPrefixSecurityDefinitions + jsonpointer.Escape(name)
	}
	return RefPrefixSecuritySchemes + jsonpointer.Escape(name)
}

// ScopeRef builds the visited key of one OAuth2 scope below its scheme ref.
func ScopeRef(schemeRef, scope string) string {
	return schemeRef + "/" + scope
}

// IsInternalRef reports whether ref points into the current document.
func IsInternalRef(ref string) bool {
	return strings.HasPrefix(ref, InternalPrefix)
}

// TrimRef strips prefix from ref and returns the unescaped component name.
// ok is false when ref does not carry the prefix or names a nested pointer
// below the component (e.g. "#/components/schemas/Pet/properties/id").
func TrimRef(ref, prefix string) (name string, ok bool) {
	rest, found := strings.CutPrefix(ref, prefix)
	if !found || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	p, err := jsonpointer.New("/" + rest)
	if err != nil {
		return "", false
	}
	tokens := p.DecodedTokens()
	if len(tokens) != 1 {
		return "", false
	}
	return tokens[0], true
}
