// Package oaserrors provides structured error types for the oascheck library.
//
// Import path: github.com/erraggy/oascheck/oaserrors
//
// The two failure classes of the library are kept disjoint:
//
//   - [DecodeError]: the document could not be typed at all (malformed input,
//     duplicate keys, unknown discriminant values, bad version string). It is
//     fatal, single, and located by line and column.
//   - [ValidationError]: the document was typed but is not conformant. It
//     carries the complete ordered list of violations found in one pass.
//
// Two supporting types complete the set:
//
//   - [ReferenceError]: a classified $ref resolution failure (not found, or
//     external and therefore unsupported)
//   - [ConfigError]: invalid functional options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrDecode]: Matches any [DecodeError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrExternalReference]: Matches [ReferenceError] with External=true
//   - [ErrValidation]: Matches any [ValidationError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage
//
//	spec, err := oas30.Parse(data)
//	if err != nil {
//	    var decErr *oaserrors.DecodeError
//	    if errors.As(err, &decErr) {
//	        fmt.Printf("line %d: %s\n", decErr.Line, decErr.Message)
//	    }
//	    return err
//	}
//	if err := spec.Validate(); err != nil {
//	    var valErr *oaserrors.ValidationError
//	    if errors.As(err, &valErr) {
//	        for _, msg := range valErr.Errors {
//	            fmt.Println(msg)
//	        }
//	    }
//	}
package oaserrors
