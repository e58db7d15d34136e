// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides the two path vocabularies used while validating
// OpenAPI documents.
//
// # Location Paths
//
// Location paths prefix every validation message. They start at the
// document root "#" and grow by field name, index and map key:
//
//	p := pathutil.Field("#", "paths")   // "#.paths"
//	p = pathutil.Key(p, "/pets")        // "#.paths[/pets]"
//	p = pathutil.Field(p, "get")        // "#.paths[/pets].get"
//	p = pathutil.Index(p, 0)            // "#.paths[/pets].get[0]"
//
// # Reference Builders
//
// Canonical reference strings double as visited-set keys, so a component
// reached through a $ref and the same component met by the unused sweep
// must produce byte-identical strings. The builders escape names per
// RFC 6901 so that "a/b" becomes "a~1b":
//
//	ref := pathutil.SchemaRef("Pet")                               // "#/components/schemas/Pet"
//	ref := pathutil.JoinRef(pathutil.RefPrefixDefinitions, "a/b")  // "#/definitions/a~1b"
//
// SecuritySchemeRef picks the OAS 2.0 or 3.x table:
//
//	ref := pathutil.SecuritySchemeRef("oauth", true)   // "#/securityDefinitions/oauth"
//	ref := pathutil.SecuritySchemeRef("oauth", false)  // "#/components/securitySchemes/oauth"
//
// [TrimRef] reverses a builder: it strips a prefix and unescapes the name.
package pathutil
