// Package oas2 models Swagger 2.0 documents.
//
// Parse decodes a document from YAML or JSON; Spec.Validate walks it once
// and reports every finding. Reusable objects live in four root tables
// (definitions, parameters, responses and securityDefinitions) whose
// entries are always inline and are referenced as "#/definitions/{name}",
// "#/parameters/{name}", "#/responses/{name}" and
// "#/securityDefinitions/{name}".
//
// Non-body parameters, headers and items are typed values: the "type" key
// selects a Value variant that carries the keywords valid for it. Body
// parameters carry a schema instead.
package oas2
