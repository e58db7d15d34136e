package validator

import (
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/oascheck/internal/httputil"
	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
)

// Info validates the info object shared by every version.
func Info[D any](ctx *Context[D], info *parser.Info, path string) {
	if !ctx.Has(IgnoreEmptyInfoTitle) {
		RequiredString(ctx, info.Title, pathutil.Field(path, "title"))
	}
	if !ctx.Has(IgnoreEmptyInfoVersion) {
		RequiredString(ctx, info.Version, pathutil.Field(path, "version"))
	}
	OptionalURL(ctx, info.TermsOfService, pathutil.Field(path, "termsOfService"))
	if c := info.Contact; c != nil {
		contactPath := pathutil.Field(path, "contact")
		OptionalURL(ctx, c.URL, pathutil.Field(contactPath, "url"))
		Email(ctx, c.Email, pathutil.Field(contactPath, "email"))
	}
	if l := info.License; l != nil {
		licensePath := pathutil.Field(path, "license")
		RequiredString(ctx, l.Name, pathutil.Field(licensePath, "name"))
		OptionalURL(ctx, l.URL, pathutil.Field(licensePath, "url"))
		Exclusive(ctx, l.Identifier != "", l.URL != "", licensePath, ".identifier: must not be used together with url")
	}
}

// ExternalDocs validates an external documentation link. An empty url is
// tolerated under IgnoreEmptyExternalDocumentationURL.
func ExternalDocs[D any](ctx *Context[D], docs *parser.ExternalDocs, path string) {
	if docs == nil {
		return
	}
	if docs.URL == "" && ctx.Has(IgnoreEmptyExternalDocumentationURL) {
		return
	}
	URL(ctx, docs.URL, pathutil.Field(path, "url"))
}

// XML validates the namespace of an XML object.
func XML[D any](ctx *Context[D], x *parser.XML, path string) {
	if x != nil {
		OptionalURL(ctx, x.Namespace, pathutil.Field(path, "namespace"))
	}
}

// Tag validates one declared tag.
func Tag[D any](ctx *Context[D], tag *parser.Tag, path string) {
	RequiredString(ctx, tag.Name, pathutil.Field(path, "name"))
	ExternalDocs(ctx, tag.ExternalDocs, pathutil.Field(path, "externalDocs"))
}

// OperationTags checks the tags of the operation at path against the
// declared tags. A declared tag is validated once, at "#/tags/{name}".
func OperationTags[D any](ctx *Context[D], tags []string, declared []parser.Tag, path string) {
	for i, name := range tags {
		tagPath := pathutil.Index(pathutil.Field(path, "tags"), i)
		RequiredString(ctx, name, tagPath)
		if name == "" {
			continue
		}
		idx := slices.IndexFunc(declared, func(t parser.Tag) bool { return t.Name == name })
		if idx < 0 {
			if !ctx.Has(IgnoreMissingTags) {
				ctx.Errorf(tagPath, "`%s` not found in spec", name)
			}
			continue
		}
		ref := pathutil.TagRef(name)
		if ctx.Visit(ref) {
			Tag(ctx, &declared[idx], ref)
		}
	}
}

// SweepTags reports every declared tag no operation referenced, unless
// IgnoreUnusedTags is set, and validates it. A repeated name is visited
// once.
func SweepTags[D any](ctx *Context[D], tags []parser.Tag) {
	for i := range tags {
		ref := pathutil.TagRef(tags[i].Name)
		if !ctx.Visit(ref) {
			continue
		}
		if !ctx.Has(IgnoreUnusedTags) {
			ctx.Error(ref, "unused")
		}
		Tag(ctx, &tags[i], ref)
	}
}

// OperationID registers the identifier of the operation at path. A
// repeat is reported at path unless IgnoreNonUniqOperationIDs is set.
func OperationID[D any](ctx *Context[D], id, path string) {
	if id == "" {
		return
	}
	if !ctx.RegisterOperation(id) && !ctx.Has(IgnoreNonUniqOperationIDs) {
		ctx.Errorf(path, ".operationId: `%s` already in use", id)
	}
}

// Servers validates a server list at "{path}.servers[i]".
func Servers[D any](ctx *Context[D], servers []parser.Server, path string) {
	for i := range servers {
		Server(ctx, &servers[i], pathutil.Index(pathutil.Field(path, "servers"), i))
	}
}

// Server validates a server. Every template variable of the url must be
// declared, and every declared variable must be used by the url unless
// IgnoreUnusedServerVariables is set.
func Server[D any](ctx *Context[D], s *parser.Server, path string) {
	RequiredString(ctx, s.URL, pathutil.Field(path, "url"))

	unused := make(map[string]struct{}, len(s.Variables))
	for _, name := range parser.SortedKeys(s.Variables) {
		v := s.Variables[name]
		serverVariable(ctx, &v, pathutil.Key(pathutil.Field(path, "variables"), name))
		unused[name] = struct{}{}
	}

	for _, name := range pathutil.TemplateVars(s.URL) {
		if _, ok := s.Variables[name]; !ok {
			ctx.Errorf(path, ".url: `%s` is not defined in `variables`", name)
			continue
		}
		delete(unused, name)
	}

	if ctx.Has(IgnoreUnusedServerVariables) {
		return
	}
	for _, name := range parser.SortedKeys(unused) {
		ctx.Errorf(path, ".variables[%s]: unused in `url`", name)
	}
}

func serverVariable[D any](ctx *Context[D], v *parser.ServerVariable, path string) {
	RequiredString(ctx, v.Default, pathutil.Field(path, "default"))
	switch {
	case v.Enum == nil:
	case len(v.Enum) == 0:
		ctx.Error(path, ".enum: must not be empty")
	case !slices.Contains(v.Enum, v.Default):
		ctx.Errorf(path, ".default: `%s` must be in enum values: %s", v.Default, quoteList(v.Enum))
	}
}

// quoteList renders values as ["a", "b"].
func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// MediaTypes reports every entry of a MIME type list that is not a valid
// media type.
func MediaTypes[D any](ctx *Context[D], types []string, path string) {
	for i, t := range types {
		if !httputil.IsValidMediaType(t) {
			ctx.Errorf(pathutil.Index(path, i), "must be a valid media type, found `%s`", t)
		}
	}
}

// Responses validates a response table: the default response at
// "{path}.default" and each code at "{path}.{code}" in ascending order.
func Responses[D, T any, PT interface {
	*T
	Validatable[D]
}](ctx *Context[D], r *parser.Responses[T], path string, resolve func(ref string) (*T, error)) {
	if r == nil {
		return
	}
	ValidateRefOr[D, T, PT](ctx, r.Default, pathutil.Field(path, "default"), resolve)
	for _, code := range r.SortedCodes() {
		if _, ok := httputil.ParseStatusCode(code); !ok {
			ctx.Errorf(path, "name must be an integer within [100..599] range, found `%s`", code)
		}
		entry := r.Codes[code]
		ValidateRefOr[D, T, PT](ctx, &entry, pathutil.Field(path, code), resolve)
	}
}
