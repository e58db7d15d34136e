// Package options provides shared utilities for option validation across packages.
package options

import "github.com/erraggy/oascheck/oaserrors"

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is set.
// Returns a *oaserrors.ConfigError naming option when zero or more than one
// source is set.
func ValidateSingleInputSource(option string, sources ...bool) error {
	count := 0
	for _, set := range sources {
		if set {
			count++
		}
	}

	switch {
	case count == 0:
		return &oaserrors.ConfigError{Option: option, Message: "must specify an input source"}
	case count > 1:
		return &oaserrors.ConfigError{Option: option, Message: "must specify exactly one input source", Value: count}
	}
	return nil
}
