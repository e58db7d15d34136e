package parser

import "strings"

// ExtensionPrefix marks vendor extension keys.
const ExtensionPrefix = "x-"

// Extensions holds the "x-" keys of one object. Decoding collects only
// prefixed keys and rejects a repeated one; encoding emits them after the
// fixed fields in ascending key order and skips any entry that lost its
// prefix.
type Extensions map[string]any

// IsExtensionKey reports whether key belongs to the extension namespace.
func IsExtensionKey(key string) bool {
	return strings.HasPrefix(key, ExtensionPrefix)
}

// Get returns the value stored under key.
func (e Extensions) Get(key string) (any, bool) {
	v, ok := e[key]
	return v, ok
}
