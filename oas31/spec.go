package oas31

import (
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
	"github.com/erraggy/oascheck/validator"
)

// Spec is the root of an OpenAPI 3.1.x document.
type Spec struct {
	// OpenAPI is the document version. "3.1" decodes as 3.1.2.
	OpenAPI           parser.OASVersion
	Info              parser.Info
	JSONSchemaDialect string
	Servers           []parser.Server
	Paths             map[string]parser.RefOr[PathItem]
	Webhooks          map[string]parser.RefOr[PathItem]
	Components        *Components
	Security          []parser.SecurityRequirement
	Tags              []parser.Tag
	ExternalDocs      *parser.ExternalDocs
	Extensions        parser.Extensions
}

// Parse decodes an OpenAPI 3.1 document from YAML or JSON.
func Parse(data []byte, opts ...parser.Option) (*Spec, error) {
	return parser.ParseWithOptions[Spec](append([]parser.Option{parser.WithBytes(data)}, opts...)...)
}

// UnmarshalNode implements parser.Unmarshaler.
func (s *Spec) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, parser.Fields{
		"openapi":           parser.VersionField(&s.OpenAPI, parser.VersionLine31),
		"info":              parser.Into(&s.Info),
		"jsonSchemaDialect": parser.String(&s.JSONSchemaDialect),
		"servers":           parser.SliceOf(&s.Servers),
		"paths":             parser.MapOf(&s.Paths),
		"webhooks":          parser.MapOf(&s.Webhooks),
		"components":        parser.IntoPtr(&s.Components),
		"security":          parser.SecurityRequirements(&s.Security),
		"tags":              parser.SliceOf(&s.Tags),
		"externalDocs":      parser.IntoPtr(&s.ExternalDocs),
	}, &s.Extensions, "openapi", "info")
}

// MarshalNode implements parser.Marshaler.
func (s *Spec) MarshalNode() *yaml.Node {
	return parser.NewMapping().
		RequiredString("openapi", s.OpenAPI.String()).
		Set("info", s.Info.MarshalNode()).
		String("jsonSchemaDialect", s.JSONSchemaDialect).
		Set("servers", parser.SliceNode(s.Servers)).
		Set("paths", parser.MapNode(s.Paths)).
		Set("webhooks", parser.MapNode(s.Webhooks)).
		Set("components", parser.NodeOf(s.Components)).
		Set("security", parser.SecurityRequirementsNode(s.Security)).
		Set("tags", parser.SliceNode(s.Tags)).
		Set("externalDocs", parser.NodeOf(s.ExternalDocs)).
		Extensions(s.Extensions).
		Node()
}

// Validate runs one validation pass over the document.
func (s *Spec) Validate(opts ...validator.Option) error {
	return validator.Validate(s, opts...)
}

// ValidateWithContext implements validator.Validatable.
func (s *Spec) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	validator.Info(ctx, &s.Info, pathutil.Field(path, "info"))
	validator.OptionalURL(ctx, s.JSONSchemaDialect, pathutil.Field(path, "jsonSchemaDialect"))
	validator.Servers(ctx, s.Servers, path)

	s.registerOperations(ctx, path)

	pathsPath := pathutil.Field(path, "paths")
	for _, name := range parser.SortedKeys(s.Paths) {
		itemPath := pathutil.Key(pathsPath, name)
		if !strings.HasPrefix(name, "/") {
			ctx.Error(itemPath, "must start with `/`")
		}
		validator.PathTemplate(ctx, name, itemPath)
		item := s.Paths[name]
		validator.ValidateRefOr(ctx, &item, itemPath, s.resolvePathItem)
	}

	webhooksPath := pathutil.Field(path, "webhooks")
	for _, name := range parser.SortedKeys(s.Webhooks) {
		item := s.Webhooks[name]
		validator.ValidateRefOr(ctx, &item, pathutil.Key(webhooksPath, name), s.resolvePathItem)
	}

	validator.SecurityRequirements[*Spec, SecurityScheme](ctx, s.Security, path, pathutil.RefPrefixSecuritySchemes, s.resolveSecurityScheme)

	if s.Components != nil {
		s.Components.ValidateWithContext(ctx, pathutil.Field(path, "components"))
	}
	if s.Paths == nil && s.Webhooks == nil && s.Components == nil {
		ctx.Error(path, "at least one of `paths`, `webhooks` or `components` must be used")
	}
	validator.ExternalDocs(ctx, s.ExternalDocs, pathutil.Field(path, "externalDocs"))
	validator.SweepTags(ctx, s.Tags)
}

// registerOperations records the operation identifiers of every inline
// path item: paths, then webhooks, then components.pathItems. A reference
// entry is skipped; its target is registered where it is declared.
func (s *Spec) registerOperations(ctx *validator.Context[*Spec], path string) {
	tables := []struct {
		field string
		items map[string]parser.RefOr[PathItem]
	}{
		{"paths", s.Paths},
		{"webhooks", s.Webhooks},
		{"components.pathItems", s.components().PathItems},
	}
	for _, t := range tables {
		field := pathutil.Field(path, t.field)
		for _, name := range parser.SortedKeys(t.items) {
			item := t.items[name].Value
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				validator.OperationID(ctx, op.OperationID, pathutil.Field(pathutil.Key(field, name), method))
			}
		}
	}
}

func (s *Spec) components() *Components {
	if s.Components == nil {
		return &Components{}
	}
	return s.Components
}

func (s *Spec) resolveSchema(ref string) (*Schema, error) {
	return validator.Resolve(ref, pathutil.RefPrefixSchemas, s.components().Schemas)
}

func (s *Spec) resolveResponse(ref string) (*Response, error) {
	return validator.Resolve(ref, pathutil.RefPrefixResponses3, s.components().Responses)
}

func (s *Spec) resolveParameter(ref string) (*Parameter, error) {
	return validator.Resolve(ref, pathutil.RefPrefixParameters3, s.components().Parameters)
}

func (s *Spec) resolveExample(ref string) (*Example, error) {
	return validator.Resolve(ref, pathutil.RefPrefixExamples, s.components().Examples)
}

func (s *Spec) resolveRequestBody(ref string) (*RequestBody, error) {
	return validator.Resolve(ref, pathutil.RefPrefixRequestBodies, s.components().RequestBodies)
}

func (s *Spec) resolveHeader(ref string) (*Header, error) {
	return validator.Resolve(ref, pathutil.RefPrefixHeaders, s.components().Headers)
}

func (s *Spec) resolveSecurityScheme(ref string) (*SecurityScheme, error) {
	return validator.Resolve(ref, pathutil.RefPrefixSecuritySchemes, s.components().SecuritySchemes)
}

func (s *Spec) resolveLink(ref string) (*Link, error) {
	return validator.Resolve(ref, pathutil.RefPrefixLinks, s.components().Links)
}

func (s *Spec) resolveCallback(ref string) (*Callback, error) {
	return validator.Resolve(ref, pathutil.RefPrefixCallbacks, s.components().Callbacks)
}

func (s *Spec) resolvePathItem(ref string) (*PathItem, error) {
	return validator.Resolve(ref, pathutil.RefPrefixPathItems, s.components().PathItems)
}
