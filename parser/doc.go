// Package parser provides the document codec shared by the oas2, oas30 and
// oas31 packages.
//
// Documents are read as YAML or JSON into a yaml.Node tree and then decoded
// by hand into typed entities. Every entity implements Unmarshaler and
// Marshaler; the Decoder helpers take care of the rules all entities share:
//
//   - fixed fields are dispatched through a Fields table
//   - "x-" keys are collected into an Extensions map
//   - a repeated key is rejected, whether fixed field or extension
//   - unknown keys are dropped, or rejected when WithStrictFields is set
//   - every failure is a located *oaserrors.DecodeError
//
// # Quick Start
//
// Version packages wrap ParseWithOptions with their own root type:
//
//	spec, err := parser.ParseWithOptions[oas30.Spec](
//		parser.WithBytes(data),
//		parser.WithStrictFields(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Polymorphic Values
//
// RefOr holds either a Reference or an inline value and decodes the
// reference shape first. BoolOr holds either a boolean or an inline value
// and decodes the boolean first. Both encode the held variant untagged.
//
// # Encoding
//
// MarshalYAML and MarshalJSON render any Marshaler. Map-valued fields are
// written in ascending key order and extensions follow the fixed fields,
// so re-encoding a decoded document is deterministic.
//
// # Logging
//
// Pass WithLogger to receive debug records. NewSlogAdapter wraps a
// *slog.Logger; the default discards everything.
package parser
