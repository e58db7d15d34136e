package validator

import (
	"errors"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/oaserrors"
	"github.com/erraggy/oascheck/parser"
)

// Validatable is implemented by every entity that validates itself
// against a document of type D.
type Validatable[D any] interface {
	ValidateWithContext(ctx *Context[D], path string)
}

// maxRefHops bounds how many references-to-references Resolve follows.
const maxRefHops = 32

// Resolve looks ref up in a component table keyed by name below prefix.
// An entry that is itself a reference is followed; a chain that loops or
// leaves the table resolves to not found. A ref outside the document is an
// external reference error.
func Resolve[T any](ref, prefix string, table map[string]parser.RefOr[T]) (*T, error) {
	if !pathutil.IsInternalRef(ref) {
		return nil, &oaserrors.ReferenceError{Ref: ref, External: true}
	}
	current := ref
	for range maxRefHops {
		name, ok := pathutil.TrimRef(current, prefix)
		if !ok {
			break
		}
		entry, ok := table[name]
		if !ok {
			break
		}
		if entry.Ref == nil {
			if entry.Value == nil {
				break
			}
			return entry.Value, nil
		}
		current = entry.Ref.Ref
	}
	return nil, &oaserrors.ReferenceError{Ref: ref}
}

// Lookup is Resolve for a table whose entries are always inline.
func Lookup[T any](ref, prefix string, table map[string]T) (*T, error) {
	if !pathutil.IsInternalRef(ref) {
		return nil, &oaserrors.ReferenceError{Ref: ref, External: true}
	}
	name, ok := pathutil.TrimRef(ref, prefix)
	if !ok {
		return nil, &oaserrors.ReferenceError{Ref: ref}
	}
	v, ok := table[name]
	if !ok {
		return nil, &oaserrors.ReferenceError{Ref: ref}
	}
	return &v, nil
}

// ValidateRefOr validates an inline value at path, or the target of a
// reference at the reference string itself.
func ValidateRefOr[D, T any, PT interface {
	*T
	Validatable[D]
}](ctx *Context[D], r *parser.RefOr[T], path string, resolve func(ref string) (*T, error)) {
	if r == nil {
		return
	}
	if r.Ref == nil {
		if r.Value != nil {
			PT(r.Value).ValidateWithContext(ctx, path)
		}
		return
	}
	ValidateRef[D, T, PT](ctx, r.Ref.Ref, path, resolve)
}

// ValidateRef validates the target of ref. The target is resolved and
// validated only the first time ref is visited, so each component is
// expanded at most once per pass whatever the number of references to it.
func ValidateRef[D, T any, PT interface {
	*T
	Validatable[D]
}](ctx *Context[D], ref, path string, resolve func(ref string) (*T, error)) {
	if ref == "" {
		ctx.Error(path, ".$ref: must not be empty")
		return
	}
	if !ctx.Visit(ref) {
		return
	}

	target, err := resolve(ref)
	if err == nil {
		PT(target).ValidateWithContext(ctx, ref)
		return
	}

	var refErr *oaserrors.ReferenceError
	if errors.As(err, &refErr) && refErr.External {
		if !ctx.Has(IgnoreExternalReferences) {
			ctx.Errorf(path, ".$ref: %s", refErr.Error())
		}
		return
	}
	ctx.Errorf(path, ".$ref: `%s` not found", ref)
}
