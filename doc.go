// Package oascheck parses and validates API description documents written
// against Swagger 2.0, OpenAPI 3.0.x and OpenAPI 3.1.x.
//
// # Overview
//
// Each version has its own package with a typed document tree:
//
//   - oas2: Swagger 2.0 (https://spec.openapis.org/oas/v2.0.html)
//   - oas30: OpenAPI 3.0.0 through 3.0.4 (https://spec.openapis.org/oas/v3.0.4.html)
//   - oas31: OpenAPI 3.1.0 through 3.1.2 (https://spec.openapis.org/oas/v3.1.2.html)
//
// The caller picks the version. Documents are never sniffed.
//
// Two packages carry the machinery shared by every version:
//
//   - parser: the YAML/JSON codec, located decode errors, references and
//     the value types that look the same in every version
//   - validator: the validation context, relaxation flags and check helpers
//
// Errors returned by both stages are defined in oaserrors.
//
// # Quick Start
//
// Parse and validate a 3.0 document:
//
//	import (
//		"github.com/erraggy/oascheck/oas30"
//		"github.com/erraggy/oascheck/validator"
//	)
//
//	spec, err := oas30.Parse(data)
//	if err != nil {
//		log.Fatal(err) // *oaserrors.DecodeError
//	}
//	if err := spec.Validate(validator.WithFlag(validator.IgnoreUnusedSchemas)); err != nil {
//		fmt.Println(err) // *oaserrors.ValidationError
//	}
//
// Decoding stops at the first problem and reports where it happened.
// Validation collects every problem in one ordered list.
//
// # Strict fields
//
// Unknown fields are dropped by default. Pass parser.WithStrictFields(true)
// to reject them:
//
//	spec, err := oas31.Parse(data, parser.WithStrictFields(true))
//
// # Flags
//
// validator.DefaultFlags ignores unused path items. validator.NoFlags is the
// strictest setting. validator.IgnoreUnused and
// validator.IgnoreEmptyRequiredFields are presets for common relaxations.
// Flags can also be parsed from their string form with validator.ParseFlags.
//
// # Encoding
//
// Every document tree encodes back to YAML or JSON with parser.MarshalYAML
// and parser.MarshalJSON. Fixed fields come first in a stable order and
// extensions follow in key order.
package oascheck
