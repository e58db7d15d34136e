// Package oas30 models OpenAPI 3.0.x documents.
//
// Parse decodes a document into a Spec and Spec.Validate checks what the
// wire format cannot express: references resolve, reusable components are
// used, operation identifiers are unique, and the structural rules of the
// 3.0 line hold.
//
//	spec, err := oas30.Parse(data)
//	if err != nil {
//		return err // *oaserrors.DecodeError: the document could not be typed
//	}
//	if err := spec.Validate(validator.WithFlag(validator.IgnoreUnusedTags)); err != nil {
//		return err // *oaserrors.ValidationError: every finding of the pass
//	}
//
// The "openapi" field accepts 3.0.0 through 3.0.4; the alias "3.0"
// decodes as 3.0.4.
//
// Schemas are decoded by ordered trial. A schema carrying allOf, anyOf,
// oneOf or not is a composition whatever its type; otherwise "type"
// selects the variant, and a schema without "type" is an ObjectSchema.
package oas30
