package oas2

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
	"github.com/erraggy/oascheck/validator"
)

// Security scheme types.
const (
	SecurityTypeBasic  = "basic"
	SecurityTypeAPIKey = "apiKey"
	SecurityTypeOAuth2 = "oauth2"
)

var securityTypes = []string{SecurityTypeBasic, SecurityTypeAPIKey, SecurityTypeOAuth2}

// OAuth2 flows.
const (
	FlowImplicit    = "implicit"
	FlowPassword    = "password"
	FlowApplication = "application"
	FlowAccessCode  = "accessCode"
)

var oauthFlows = []string{FlowImplicit, FlowPassword, FlowApplication, FlowAccessCode}

// API key locations.
var apiKeyLocations = []string{InHeader, InQuery}

// flowURLs reports which endpoint URLs a flow carries.
func flowURLs(flow string) (authURL, tokenURL bool) {
	switch flow {
	case FlowImplicit:
		return true, false
	case FlowPassword, FlowApplication:
		return false, true
	case FlowAccessCode:
		return true, true
	}
	return false, false
}

// SecurityScheme is a Security Scheme Object. Type selects which of the
// other fields apply, and for oauth2 Flow selects the endpoint URLs.
type SecurityScheme struct {
	Type        string
	Description string

	// apiKey
	Name string
	In   string

	// oauth2
	Flow             string
	AuthorizationURL string
	TokenURL         string
	Scopes           map[string]string

	Extensions parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (s *SecurityScheme) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	n = parser.Resolve(n)
	typ := parser.Lookup(n, "type")
	if typ == nil {
		if n == nil || n.Kind != yaml.MappingNode {
			return d.Object(n, path, nil, nil)
		}
		return d.Errorf(n, path, "missing field `type`")
	}
	if err := parser.Enum(&s.Type, securityTypes...)(d, typ, pathutil.Field(path, "type")); err != nil {
		return err
	}

	fields := parser.Fields{
		"type":        discriminant,
		"description": parser.String(&s.Description),
	}
	var required []string
	switch s.Type {
	case SecurityTypeAPIKey:
		fields["name"] = parser.String(&s.Name)
		fields["in"] = parser.Enum(&s.In, apiKeyLocations...)
		required = []string{"name", "in"}
	case SecurityTypeOAuth2:
		flow := parser.Lookup(n, "flow")
		if flow == nil {
			return d.Errorf(n, path, "missing field `flow`")
		}
		if err := parser.Enum(&s.Flow, oauthFlows...)(d, flow, pathutil.Field(path, "flow")); err != nil {
			return err
		}
		fields["flow"] = discriminant
		fields["scopes"] = parser.StringMap(&s.Scopes)
		required = []string{"flow", "scopes"}
		authURL, tokenURL := flowURLs(s.Flow)
		if authURL {
			fields["authorizationUrl"] = parser.String(&s.AuthorizationURL)
			required = append(required, "authorizationUrl")
		}
		if tokenURL {
			fields["tokenUrl"] = parser.String(&s.TokenURL)
			required = append(required, "tokenUrl")
		}
	}
	return d.Object(n, path, fields, &s.Extensions, required...)
}

// MarshalNode implements parser.Marshaler.
func (s *SecurityScheme) MarshalNode() *yaml.Node {
	out := parser.NewMapping().
		RequiredString("type", s.Type).
		String("description", s.Description)
	switch s.Type {
	case SecurityTypeAPIKey:
		out.RequiredString("name", s.Name).RequiredString("in", s.In)
	case SecurityTypeOAuth2:
		out.RequiredString("flow", s.Flow)
		authURL, tokenURL := flowURLs(s.Flow)
		if authURL {
			out.RequiredString("authorizationUrl", s.AuthorizationURL)
		}
		if tokenURL {
			out.RequiredString("tokenUrl", s.TokenURL)
		}
		scopes := parser.NewMapping()
		for _, k := range parser.SortedKeys(s.Scopes) {
			scopes.Set(k, parser.StringNode(s.Scopes[k]))
		}
		out.Set("scopes", scopes.Node())
	}
	return out.Extensions(s.Extensions).Node()
}

// ValidateWithContext implements validator.Validatable.
func (s *SecurityScheme) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	switch s.Type {
	case SecurityTypeAPIKey:
		validator.RequiredString(ctx, s.Name, pathutil.Field(path, "name"))
	case SecurityTypeOAuth2:
		authURL, tokenURL := flowURLs(s.Flow)
		if authURL {
			validator.URL(ctx, s.AuthorizationURL, pathutil.Field(path, "authorizationUrl"))
		}
		if tokenURL {
			validator.URL(ctx, s.TokenURL, pathutil.Field(path, "tokenUrl"))
		}
	}
}

// ScopeMode implements validator.ScopedScheme.
func (s *SecurityScheme) ScopeMode() validator.ScopeMode {
	if s.Type == SecurityTypeOAuth2 {
		return validator.ScopesDeclared
	}
	return validator.ScopesForbidden
}

// DeclaresScope implements validator.ScopedScheme.
func (s *SecurityScheme) DeclaresScope(scope string) bool {
	_, ok := s.Scopes[scope]
	return ok
}
