package parser

import (
	"github.com/erraggy/oascheck/internal/pathutil"
	"go.yaml.in/yaml/v4"
)

// Info provides metadata about the API
// Common across all OAS versions (2.0, 3.0, 3.1)
type Info struct {
	Title          string
	Description    string
	TermsOfService string
	Contact        *Contact
	License        *License
	Version        string
	// OAS 3.1+ additions
	Summary    string
	Extensions Extensions
}

// UnmarshalNode implements Unmarshaler.
func (i *Info) UnmarshalNode(d *Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, Fields{
		"title":          String(&i.Title),
		"summary":        String(&i.Summary),
		"description":    String(&i.Description),
		"termsOfService": String(&i.TermsOfService),
		"contact":        IntoPtr(&i.Contact),
		"license":        IntoPtr(&i.License),
		"version":        String(&i.Version),
	}, &i.Extensions, "title", "version")
}

// MarshalNode implements Marshaler.
func (i *Info) MarshalNode() *yaml.Node {
	return NewMapping().
		RequiredString("title", i.Title).
		String("summary", i.Summary).
		String("description", i.Description).
		String("termsOfService", i.TermsOfService).
		Set("contact", NodeOf(i.Contact)).
		Set("license", NodeOf(i.License)).
		RequiredString("version", i.Version).
		Extensions(i.Extensions).
		Node()
}

// Contact information for the exposed API
type Contact struct {
	Name       string
	URL        string
	Email      string
	Extensions Extensions
}

// UnmarshalNode implements Unmarshaler.
func (c *Contact) UnmarshalNode(d *Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, Fields{
		"name":  String(&c.Name),
		"url":   String(&c.URL),
		"email": String(&c.Email),
	}, &c.Extensions)
}

// MarshalNode implements Marshaler.
func (c *Contact) MarshalNode() *yaml.Node {
	return NewMapping().
		String("name", c.Name).
		String("url", c.URL).
		String("email", c.Email).
		Extensions(c.Extensions).
		Node()
}

// License information for the exposed API
type License struct {
	Name       string
	URL        string
	Identifier string // OAS 3.1+
	Extensions Extensions
}

// UnmarshalNode implements Unmarshaler.
func (l *License) UnmarshalNode(d *Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, Fields{
		"name":       String(&l.Name),
		"identifier": String(&l.Identifier),
		"url":        String(&l.URL),
	}, &l.Extensions, "name")
}

// MarshalNode implements Marshaler.
func (l *License) MarshalNode() *yaml.Node {
	return NewMapping().
		RequiredString("name", l.Name).
		String("identifier", l.Identifier).
		String("url", l.URL).
		Extensions(l.Extensions).
		Node()
}

// ExternalDocs allows referencing external documentation
type ExternalDocs struct {
	Description string
	URL         string
	Extensions  Extensions
}

// UnmarshalNode implements Unmarshaler.
func (e *ExternalDocs) UnmarshalNode(d *Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, Fields{
		"description": String(&e.Description),
		"url":         String(&e.URL),
	}, &e.Extensions, "url")
}

// MarshalNode implements Marshaler.
func (e *ExternalDocs) MarshalNode() *yaml.Node {
	return NewMapping().
		String("description", e.Description).
		RequiredString("url", e.URL).
		Extensions(e.Extensions).
		Node()
}

// Tag adds metadata to a single tag used by operations
type Tag struct {
	Name         string
	Description  string
	ExternalDocs *ExternalDocs
	Extensions   Extensions
}

// UnmarshalNode implements Unmarshaler.
func (t *Tag) UnmarshalNode(d *Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, Fields{
		"name":         String(&t.Name),
		"description":  String(&t.Description),
		"externalDocs": IntoPtr(&t.ExternalDocs),
	}, &t.Extensions, "name")
}

// MarshalNode implements Marshaler.
func (t *Tag) MarshalNode() *yaml.Node {
	return NewMapping().
		RequiredString("name", t.Name).
		String("description", t.Description).
		Set("externalDocs", NodeOf(t.ExternalDocs)).
		Extensions(t.Extensions).
		Node()
}

// Server represents a Server object (OAS 3.0+)
type Server struct {
	URL         string
	Description string
	Variables   map[string]ServerVariable
	Extensions  Extensions
}

// UnmarshalNode implements Unmarshaler.
func (s *Server) UnmarshalNode(d *Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, Fields{
		"url":         String(&s.URL),
		"description": String(&s.Description),
		"variables":   MapOf(&s.Variables),
	}, &s.Extensions, "url")
}

// MarshalNode implements Marshaler.
func (s *Server) MarshalNode() *yaml.Node {
	return NewMapping().
		RequiredString("url", s.URL).
		String("description", s.Description).
		Set("variables", MapNode(s.Variables)).
		Extensions(s.Extensions).
		Node()
}

// ServerVariable represents a Server Variable object (OAS 3.0+)
type ServerVariable struct {
	// Enum is nil when absent. A present but empty list is kept empty.
	Enum        []string
	Default     string
	Description string
	Extensions  Extensions
}

// UnmarshalNode implements Unmarshaler.
func (v *ServerVariable) UnmarshalNode(d *Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, Fields{
		"enum":        Strings(&v.Enum),
		"default":     String(&v.Default),
		"description": String(&v.Description),
	}, &v.Extensions, "default")
}

// MarshalNode implements Marshaler.
func (v *ServerVariable) MarshalNode() *yaml.Node {
	return NewMapping().
		Strings("enum", v.Enum).
		RequiredString("default", v.Default).
		String("description", v.Description).
		Extensions(v.Extensions).
		Node()
}

// XML describes the XML representation of a schema property.
type XML struct {
	Name       string
	Namespace  string
	Prefix     string
	Attribute  bool
	Wrapped    bool
	Extensions Extensions
}

// UnmarshalNode implements Unmarshaler.
func (x *XML) UnmarshalNode(d *Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, Fields{
		"name":      String(&x.Name),
		"namespace": String(&x.Namespace),
		"prefix":    String(&x.Prefix),
		"attribute": Bool(&x.Attribute),
		"wrapped":   Bool(&x.Wrapped),
	}, &x.Extensions)
}

// MarshalNode implements Marshaler.
func (x *XML) MarshalNode() *yaml.Node {
	return NewMapping().
		String("name", x.Name).
		String("namespace", x.Namespace).
		String("prefix", x.Prefix).
		Bool("attribute", x.Attribute).
		Bool("wrapped", x.Wrapped).
		Extensions(x.Extensions).
		Node()
}

// SecurityRequirement maps security scheme names to the scopes an
// operation requests. An empty requirement makes security optional.
type SecurityRequirement map[string][]string

// SecurityRequirements decodes a list of security requirements. A present
// but empty list is kept so that it can clear a root-level declaration.
func SecurityRequirements(dst *[]SecurityRequirement) Field {
	return func(d *Decoder, n *yaml.Node, path string) error {
		if IsNull(n) {
			return nil
		}
		out := []SecurityRequirement{}
		err := d.Items(n, path, func(i int, v *yaml.Node) error {
			itemPath := pathutil.Index(path, i)
			req := SecurityRequirement{}
			err := d.Entries(v, itemPath, func(k, scopes *yaml.Node) error {
				var names []string
				if err := Strings(&names)(d, scopes, pathutil.Key(itemPath, k.Value)); err != nil {
					return err
				}
				if names == nil {
					names = []string{}
				}
				req[k.Value] = names
				return nil
			})
			out = append(out, req)
			return err
		})
		if err != nil {
			return err
		}
		*dst = out
		return nil
	}
}

// SecurityRequirementsNode encodes a list of security requirements; nil
// yields nil.
func SecurityRequirementsNode(reqs []SecurityRequirement) *yaml.Node {
	if reqs == nil {
		return nil
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, req := range reqs {
		m := NewMapping()
		for _, name := range SortedKeys(req) {
			scopes := req[name]
			if scopes == nil {
				scopes = []string{}
			}
			m.Set(name, StringsNode(scopes))
		}
		seq.Content = append(seq.Content, m.Node())
	}
	return seq
}
