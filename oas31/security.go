package oas31

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
	"github.com/erraggy/oascheck/validator"
)

// Security scheme types.
const (
	SecurityTypeAPIKey        = "apiKey"
	SecurityTypeHTTP          = "http"
	SecurityTypeOAuth2        = "oauth2"
	SecurityTypeOpenIDConnect = "openIdConnect"
	SecurityTypeMutualTLS     = "mutualTLS"
)

var securityTypes = []string{SecurityTypeAPIKey, SecurityTypeHTTP, SecurityTypeMutualTLS, SecurityTypeOAuth2, SecurityTypeOpenIDConnect}

// API key locations.
var apiKeyLocations = []string{"query", "header", "cookie"}

// SecurityScheme is a Security Scheme Object. Type selects which of the
// other fields apply; the fields of other types are rejected in strict mode.
// A mutualTLS scheme carries no fields beyond its description.
type SecurityScheme struct {
	Type        string
	Description string

	// apiKey
	Name string
	In   string

	// http
	Scheme       string
	BearerFormat string

	// oauth2
	Flows *OAuthFlows

	// openIdConnect
	OpenIDConnectURL string

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
	case SecurityTypeHTTP:
		fields["scheme"] = parser.String(&s.Scheme)
		fields["bearerFormat"] = parser.String(&s.BearerFormat)
		required = []string{"scheme"}
	case SecurityTypeOAuth2:
		fields["flows"] = parser.IntoPtr(&s.Flows)
		required = []string{"flows"}
	case SecurityTypeOpenIDConnect:
		fields["openIdConnectUrl"] = parser.String(&s.OpenIDConnectURL)
		required = []string{"openIdConnectUrl"}
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
	case SecurityTypeHTTP:
		out.RequiredString("scheme", s.Scheme).String("bearerFormat", s.BearerFormat)
	case SecurityTypeOAuth2:
		flows := parser.NodeOf(s.Flows)
		if flows == nil {
			flows = parser.NewMapping().Node()
		}
		out.Set("flows", flows)
	case SecurityTypeOpenIDConnect:
		out.RequiredString("openIdConnectUrl", s.OpenIDConnectURL)
	}
	return out.Extensions(s.Extensions).Node()
}

// ValidateWithContext implements validator.Validatable.
func (s *SecurityScheme) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	switch s.Type {
	case SecurityTypeAPIKey:
		validator.RequiredString(ctx, s.Name, pathutil.Field(path, "name"))
	case SecurityTypeHTTP:
		validator.RequiredString(ctx, s.Scheme, pathutil.Field(path, "scheme"))
	case SecurityTypeOAuth2:
		s.Flows.validate(ctx, pathutil.Field(path, "flows"))
	case SecurityTypeOpenIDConnect:
		validator.URL(ctx, s.OpenIDConnectURL, pathutil.Field(path, "openIdConnectUrl"))
	}
}

// ScopeMode implements validator.ScopedScheme. Only OAuth2 scopes must be
// declared; any other scheme may list role names.
func (s *SecurityScheme) ScopeMode() validator.ScopeMode {
	if s.Type == SecurityTypeOAuth2 {
		return validator.ScopesDeclared
	}
	return validator.ScopesFree
}

// DeclaresScope implements validator.ScopedScheme.
func (s *SecurityScheme) DeclaresScope(scope string) bool {
	_, ok := s.Scopes()[scope]
	return ok
}

// Scopes returns the union of the scopes declared by every flow.
func (s *SecurityScheme) Scopes() map[string]string {
	out := make(map[string]string)
	if s.Flows == nil {
		return out
	}
	for _, f := range s.Flows.all() {
		for k, v := range f.flow.Scopes {
			out[k] = v
		}
	}
	return out
}

// OAuthFlows configures the supported OAuth2 flows.
type OAuthFlows struct {
	Implicit          *OAuthFlow
	Password          *OAuthFlow
	ClientCredentials *OAuthFlow
	AuthorizationCode *OAuthFlow
	Extensions        parser.Extensions
}

type namedFlow struct {
	name     string
	flow     *OAuthFlow
	authURL  bool
	tokenURL bool
}

// all returns the present flows in declaration order.
func (f *OAuthFlows) all() []namedFlow {
	flows := []namedFlow{
		{"implicit", f.Implicit, true, false},
		{"password", f.Password, false, true},
		{"clientCredentials", f.ClientCredentials, false, true},
		{"authorizationCode", f.AuthorizationCode, true, true},
	}
	out := flows[:0]
	for _, nf := range flows {
		if nf.flow != nil {
			out = append(out, nf)
		}
	}
	return out
}

// flowField decodes one flow; keys beyond scopes depend on its kind.
func flowField(dst **OAuthFlow, authURL, tokenURL bool) parser.Field {
	return func(d *parser.Decoder, n *yaml.Node, path string) error {
		if parser.IsNull(n) {
			return nil
		}
		f := &OAuthFlow{}
		fields := parser.Fields{
			"refreshUrl": parser.String(&f.RefreshURL),
			"scopes":     parser.StringMap(&f.Scopes),
		}
		required := []string{"scopes"}
		if authURL {
			fields["authorizationUrl"] = parser.String(&f.AuthorizationURL)
			required = append(required, "authorizationUrl")
		}
		if tokenURL {
			fields["tokenUrl"] = parser.String(&f.TokenURL)
			required = append(required, "tokenUrl")
		}
		if err := d.Object(n, path, fields, &f.Extensions, required...); err != nil {
			return err
		}
		*dst = f
		return nil
	}
}

// UnmarshalNode implements parser.Unmarshaler.
func (f *OAuthFlows) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, parser.Fields{
		"implicit":          flowField(&f.Implicit, true, false),
		"password":          flowField(&f.Password, false, true),
		"clientCredentials": flowField(&f.ClientCredentials, false, true),
		"authorizationCode": flowField(&f.AuthorizationCode, true, true),
	}, &f.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (f *OAuthFlows) MarshalNode() *yaml.Node {
	out := parser.NewMapping()
	for _, nf := range f.all() {
		out.Set(nf.name, nf.flow.marshal(nf.authURL, nf.tokenURL))
	}
	return out.Extensions(f.Extensions).Node()
}

func (f *OAuthFlows) validate(ctx *validator.Context[*Spec], path string) {
	var flows []namedFlow
	if f != nil {
		flows = f.all()
	}
	if len(flows) == 0 {
		ctx.Error(path, "must not be empty")
		return
	}
	for _, nf := range flows {
		flowPath := pathutil.Field(path, nf.name)
		if nf.authURL {
			validator.URL(ctx, nf.flow.AuthorizationURL, pathutil.Field(flowPath, "authorizationUrl"))
		}
		if nf.tokenURL {
			validator.URL(ctx, nf.flow.TokenURL, pathutil.Field(flowPath, "tokenUrl"))
		}
		validator.OptionalURL(ctx, nf.flow.RefreshURL, pathutil.Field(flowPath, "refreshUrl"))
	}
}

// OAuthFlow is the configuration of one OAuth2 flow. Which URLs are
// present depends on the flow it is stored under.
type OAuthFlow struct {
	AuthorizationURL string
	TokenURL         string
	RefreshURL       string
	Scopes           map[string]string
	Extensions       parser.Extensions
}

func (f *OAuthFlow) marshal(authURL, tokenURL bool) *yaml.Node {
	out := parser.NewMapping()
	if authURL {
		out.RequiredString("authorizationUrl", f.AuthorizationURL)
	}
	if tokenURL {
		out.RequiredString("tokenUrl", f.TokenURL)
	}
	scopes := parser.NewMapping()
	for _, k := range parser.SortedKeys(f.Scopes) {
		scopes.Set(k, parser.StringNode(f.Scopes[k]))
	}
	return out.
		String("refreshUrl", f.RefreshURL).
		Set("scopes", scopes.Node()).
		Extensions(f.Extensions).
		Node()
}
