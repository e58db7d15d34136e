package validator

import (
	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
)

// Table describes one reusable-component table for Sweep.
type Table struct {
	// Field is the wire name of the table, e.g. "schemas".
	Field string
	// Prefix is the reference prefix of its entries.
	Prefix string
	// Flag suppresses the unused report.
	Flag Flags
	// CheckNames enables the component name shape check.
	CheckNames bool
}

// Sweep reports every entry of table whose canonical reference was never
// visited as unused, then validates each entry at "{path}.{field}[name]".
// Entries are visited in ascending name order. Unused entries are still
// validated.
func Sweep[D, T any, PT interface {
	*T
	Validatable[D]
}](ctx *Context[D], t Table, entries map[string]parser.RefOr[T], path string, resolve func(ref string) (*T, error)) {
	field := pathutil.Field(path, t.Field)
	for _, name := range parser.SortedKeys(entries) {
		ref := pathutil.JoinRef(t.Prefix, name)
		if !ctx.IsVisited(ref) && !ctx.Has(t.Flag) {
			ctx.Error(ref, "unused")
		}
		if t.CheckNames {
			Matches(ctx, name, ComponentNameRegex, pathutil.Key(field, name))
		}
		entry := entries[name]
		ValidateRefOr[D, T, PT](ctx, &entry, pathutil.Key(field, name), resolve)
	}
}

// SweepValues is Sweep for a table whose entries are always inline.
func SweepValues[D, T any, PT interface {
	*T
	Validatable[D]
}](ctx *Context[D], t Table, entries map[string]T, path string) {
	field := pathutil.Field(path, t.Field)
	for _, name := range parser.SortedKeys(entries) {
		ref := pathutil.JoinRef(t.Prefix, name)
		if !ctx.IsVisited(ref) && !ctx.Has(t.Flag) {
			ctx.Error(ref, "unused")
		}
		if t.CheckNames {
			Matches(ctx, name, ComponentNameRegex, pathutil.Key(field, name))
		}
		entry := entries[name]
		PT(&entry).ValidateWithContext(ctx, pathutil.Key(field, name))
	}
}

// SweepKeys reports each key whose canonical reference below prefix was
// never visited. It is used for entries with no validation of their own,
// such as OAuth2 scopes.
func SweepKeys[D, V any](ctx *Context[D], keys map[string]V, prefix string, flag Flags) {
	if ctx.Has(flag) {
		return
	}
	for _, k := range parser.SortedKeys(keys) {
		ref := prefix + k
		if !ctx.IsVisited(ref) {
			ctx.Error(ref, "unused")
		}
	}
}
