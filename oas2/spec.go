package oas2

import (
	"regexp"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
	"github.com/erraggy/oascheck/validator"
)

// Transfer protocols of the API.
const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
	SchemeWS    = "ws"
	SchemeWSS   = "wss"
)

var transferSchemes = []string{SchemeHTTP, SchemeHTTPS, SchemeWS, SchemeWSS}

// hostRegex matches a host name or IP with an optional port, without
// scheme, path or template variables.
var hostRegex = regexp.MustCompile(`^[^{}/ :\\]+(?::\d+)?$`)

// Spec is the root of a Swagger 2.0 document.
type Spec struct {
	// Swagger is always 2.0.
	Swagger             parser.OASVersion
	Info                parser.Info
	Host                string
	BasePath            string
	Schemes             []string
	Consumes            []string
	Produces            []string
	Paths               map[string]PathItem
	Definitions         map[string]Schema
	Parameters          map[string]Parameter
	Responses           map[string]Response
	SecurityDefinitions map[string]SecurityScheme
	Security            []parser.SecurityRequirement
	Tags                []parser.Tag
	ExternalDocs        *parser.ExternalDocs
	Extensions          parser.Extensions
}

// Parse decodes a Swagger 2.0 document from YAML or JSON.
func Parse(data []byte, opts ...parser.Option) (*Spec, error) {
	return parser.ParseWithOptions[Spec](append([]parser.Option{parser.WithBytes(data)}, opts...)...)
}

// enums decodes a sequence of strings restricted to allowed values.
func enums(dst *[]string, allowed ...string) parser.Field {
	return func(d *parser.Decoder, n *yaml.Node, path string) error {
		if parser.IsNull(n) {
			return nil
		}
		out := []string{}
		err := d.Items(n, path, func(i int, v *yaml.Node) error {
			var s string
			if err := parser.Enum(&s, allowed...)(d, v, pathutil.Index(path, i)); err != nil {
				return err
			}
			out = append(out, s)
			return nil
		})
		if err != nil {
			return err
		}
		*dst = out
		return nil
	}
}

// UnmarshalNode implements parser.Unmarshaler.
func (s *Spec) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, parser.Fields{
		"swagger":             parser.VersionField(&s.Swagger, parser.VersionLine20),
		"info":                parser.Into(&s.Info),
		"host":                parser.String(&s.Host),
		"basePath":            parser.String(&s.BasePath),
		"schemes":             enums(&s.Schemes, transferSchemes...),
		"consumes":            parser.Strings(&s.Consumes),
		"produces":            parser.Strings(&s.Produces),
		"paths":               parser.MapOf(&s.Paths),
		"definitions":         parser.MapOf(&s.Definitions),
		"parameters":          parser.MapOf(&s.Parameters),
		"responses":           parser.MapOf(&s.Responses),
		"securityDefinitions": parser.MapOf(&s.SecurityDefinitions),
		"security":            parser.SecurityRequirements(&s.Security),
		"tags":                parser.SliceOf(&s.Tags),
		"externalDocs":        parser.IntoPtr(&s.ExternalDocs),
	}, &s.Extensions, "swagger", "info", "paths")
}

// MarshalNode implements parser.Marshaler.
func (s *Spec) MarshalNode() *yaml.Node {
	paths := parser.MapNode(s.Paths)
	if paths == nil {
		paths = parser.NewMapping().Node()
	}
	return parser.NewMapping().
		RequiredString("swagger", s.Swagger.String()).
		Set("info", s.Info.MarshalNode()).
		String("host", s.Host).
		String("basePath", s.BasePath).
		Strings("schemes", s.Schemes).
		Strings("consumes", s.Consumes).
		Strings("produces", s.Produces).
		Set("paths", paths).
		Set("definitions", parser.MapNode(s.Definitions)).
		Set("parameters", parser.MapNode(s.Parameters)).
		Set("responses", parser.MapNode(s.Responses)).
		Set("securityDefinitions", parser.MapNode(s.SecurityDefinitions)).
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

// ValidateWithContext implements validator.Validatable. Operation
// identifiers are registered before any path is walked, so a path item
// reached both inline and by reference registers its operations once. The
// root tables are swept last, once every reference from the paths was
// followed.
func (s *Spec) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	validator.Info(ctx, &s.Info, pathutil.Field(path, "info"))
	if s.Host != "" {
		validator.Matches(ctx, s.Host, hostRegex, pathutil.Field(path, "host"))
	}
	if s.BasePath != "" && !strings.HasPrefix(s.BasePath, "/") {
		ctx.Errorf(path, ".basePath: must start with `/`, found `%s`", s.BasePath)
	}
	validator.MediaTypes(ctx, s.Consumes, pathutil.Field(path, "consumes"))
	validator.MediaTypes(ctx, s.Produces, pathutil.Field(path, "produces"))

	pathsPath := pathutil.Field(path, "paths")
	names := parser.SortedKeys(s.Paths)
	for _, name := range names {
		item := s.Paths[name]
		for method, op := range item.Operations() {
			validator.OperationID(ctx, op.OperationID, pathutil.Field(pathutil.Key(pathsPath, name), method))
		}
	}
	for _, name := range names {
		if !strings.HasPrefix(name, "/") {
			ctx.Errorf(pathsPath, "`%s` must start with `/`", name)
		}
		itemPath := pathutil.Key(pathsPath, name)
		validator.PathTemplate(ctx, name, itemPath)
		item := s.Paths[name]
		item.ValidateWithContext(ctx, itemPath)
	}

	validator.ExternalDocs(ctx, s.ExternalDocs, pathutil.Field(path, "externalDocs"))
	validator.SecurityRequirements(ctx, s.Security, path, pathutil.RefPrefixSecurityDefinitions, s.resolveSecurityScheme)

	validator.SweepTags(ctx, s.Tags)
	validator.SweepValues(ctx, validator.Table{Field: "definitions", Prefix: pathutil.RefPrefixDefinitions, Flag: validator.IgnoreUnusedSchemas}, s.Definitions, path)
	validator.SweepValues(ctx, validator.Table{Field: "parameters", Prefix: pathutil.RefPrefixParameters, Flag: validator.IgnoreUnusedParameters}, s.Parameters, path)
	validator.SweepValues(ctx, validator.Table{Field: "responses", Prefix: pathutil.RefPrefixResponses, Flag: validator.IgnoreUnusedResponses}, s.Responses, path)
	validator.SweepValues(ctx, validator.Table{Field: "securityDefinitions", Prefix: pathutil.RefPrefixSecurityDefinitions, Flag: validator.IgnoreUnusedSecuritySchemes}, s.SecurityDefinitions, path)
	for _, name := range parser.SortedKeys(s.SecurityDefinitions) {
		scheme := s.SecurityDefinitions[name]
		if scheme.Type == SecurityTypeOAuth2 {
			validator.SweepKeys(ctx, scheme.Scopes, pathutil.SecuritySchemeRef(name, true)+"/", validator.IgnoreUnusedSecuritySchemes)
		}
	}
}

func (s *Spec) resolveSchema(ref string) (*Schema, error) {
	return validator.Lookup(ref, pathutil.RefPrefixDefinitions, s.Definitions)
}

func (s *Spec) resolveParameter(ref string) (*Parameter, error) {
	return validator.Lookup(ref, pathutil.RefPrefixParameters, s.Parameters)
}

func (s *Spec) resolveResponse(ref string) (*Response, error) {
	return validator.Lookup(ref, pathutil.RefPrefixResponses, s.Responses)
}

func (s *Spec) resolveSecurityScheme(ref string) (*SecurityScheme, error) {
	return validator.Lookup(ref, pathutil.RefPrefixSecurityDefinitions, s.SecurityDefinitions)
}

// resolvePathItem resolves "#/paths/{escaped path}".
func (s *Spec) resolvePathItem(ref string) (*PathItem, error) {
	return validator.Lookup(ref, refPrefixPaths, s.Paths)
}

const refPrefixPaths = "#/paths/"
