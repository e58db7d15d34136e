// Package oas31 models OpenAPI 3.1.x documents.
//
// The model follows package oas30 with the 3.1 additions: webhooks,
// reusable path items, jsonSchemaDialect, mutualTLS security schemes and
// the JSON Schema 2020-12 keywords the validator inspects. Path items in
// paths, webhooks and callbacks may be references to
// "#/components/pathItems/{name}".
//
// A document needs at least one of paths, webhooks or components; paths
// alone are no longer required. The alias "3.1" decodes as 3.1.2.
//
// A schema whose "type" is a list decodes as a MultiSchema. Its members
// must be known type names and must not repeat.
package oas31
