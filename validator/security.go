package validator

import (
	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
)

// ScopeMode says how a security scheme treats the scopes a requirement
// lists for it.
type ScopeMode int

const (
	// ScopesForbidden rejects any listed scope.
	ScopesForbidden ScopeMode = iota
	// ScopesFree accepts any listed scope, such as OpenID Connect scopes
	// or role names.
	ScopesFree
	// ScopesDeclared requires every listed scope to be declared by one of
	// the scheme's OAuth2 flows.
	ScopesDeclared
)

// ScopedScheme is a security scheme as seen by a requirement.
type ScopedScheme[D any] interface {
	Validatable[D]
	ScopeMode() ScopeMode
	// DeclaresScope reports whether any flow declares scope.
	DeclaresScope(scope string) bool
}

// SecurityRequirements validates the requirements at
// "{path}.security[i][name]". Each name is validated as a reference to
// the scheme below prefix. Scopes requested from an OAuth2 scheme must be
// declared and are marked used at "{scheme ref}/{scope}".
func SecurityRequirements[D, T any, PT interface {
	*T
	ScopedScheme[D]
}](ctx *Context[D], reqs []parser.SecurityRequirement, path, prefix string, resolve func(ref string) (*T, error)) {
	for i, req := range reqs {
		reqPath := pathutil.Index(pathutil.Field(path, "security"), i)
		for _, name := range parser.SortedKeys(req) {
			namePath := pathutil.Key(reqPath, name)
			ref := pathutil.JoinRef(prefix, name)
			ValidateRef[D, T, PT](ctx, ref, namePath, resolve)

			scopes := req[name]
			if len(scopes) == 0 {
				continue
			}
			scheme, err := resolve(ref)
			if err != nil {
				continue
			}
			switch PT(scheme).ScopeMode() {
			case ScopesForbidden:
				ctx.Error(namePath, "scopes must be empty for non-oauth2 scheme")
			case ScopesDeclared:
				for _, scope := range scopes {
					ctx.Visit(pathutil.ScopeRef(ref, scope))
					if !PT(scheme).DeclaresScope(scope) {
						ctx.Errorf(namePath, "scope `%s` not found in spec by reference `%s`", scope, ref)
					}
				}
			}
		}
	}
}
