// Package validator provides the validation pass shared by the oas2, oas30
// and oas31 packages.
//
// A pass walks a decoded document from its root, recursing through every
// entity that implements Validatable. Each entity appends its findings to a
// Context prefixed with its location path, e.g.
//
//	#.paths[/pets].get.responses.200.description: must not be empty
//
// Findings never stop the walk, so one pass reports the complete problem
// set.
//
// # References
//
// ValidateRefOr resolves a reference the first time its pointer string is
// visited and validates the target with the pointer as location path. A
// shared component is therefore validated, and its findings reported, once
// per pass however many references point at it, and reference cycles
// terminate.
//
// # Unused Components
//
// After the walk, Sweep compares each reusable-component table against the
// visited set and reports every entry no reference reached as "unused" at
// its canonical reference. Unused entries are validated as well.
//
// # Relaxation Flags
//
// Flags disables individual rule classes:
//
//	err := spec.Validate(validator.WithFlag(validator.IgnoreUnused))
//
// The default set is DefaultFlags; NoFlags is the strictest.
package validator
