package oas31

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
	"github.com/erraggy/oascheck/validator"
)

// Response describes a single response of an operation.
type Response struct {
	Description string
	Headers     map[string]parser.RefOr[Header]
	Content     map[string]MediaType
	Links       map[string]parser.RefOr[Link]
	Extensions  parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (r *Response) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, parser.Fields{
		"description": parser.String(&r.Description),
		"headers":     parser.MapOf(&r.Headers),
		"content":     parser.MapOf(&r.Content),
		"links":       parser.MapOf(&r.Links),
	}, &r.Extensions, "description")
}

// MarshalNode implements parser.Marshaler.
func (r *Response) MarshalNode() *yaml.Node {
	return parser.NewMapping().
		RequiredString("description", r.Description).
		Set("headers", parser.MapNode(r.Headers)).
		Set("content", parser.MapNode(r.Content)).
		Set("links", parser.MapNode(r.Links)).
		Extensions(r.Extensions).
		Node()
}

// ValidateWithContext implements validator.Validatable. Content entries
// are reported under ".mediaTypes".
func (r *Response) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	if !ctx.Has(validator.IgnoreEmptyResponseDescription) {
		validator.RequiredString(ctx, r.Description, pathutil.Field(path, "description"))
	}
	validateHeaders(ctx, r.Headers, path)
	validateContent(ctx, r.Content, pathutil.Field(path, "mediaTypes"))

	links := pathutil.Field(path, "links")
	for _, name := range parser.SortedKeys(r.Links) {
		link := r.Links[name]
		validator.ValidateRefOr(ctx, &link, pathutil.Key(links, name), ctx.Root.resolveLink)
	}
}

// Link describes a design-time relation from a response to an operation.
type Link struct {
	OperationRef string
	OperationID  string
	Parameters   map[string]any
	RequestBody  any
	Description  string
	Server       *parser.Server
	Extensions   parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (l *Link) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, parser.Fields{
		"operationRef": parser.String(&l.OperationRef),
		"operationId":  parser.String(&l.OperationID),
		"parameters":   parser.AnyMap(&l.Parameters),
		"requestBody":  parser.Any(&l.RequestBody),
		"description":  parser.String(&l.Description),
		"server":       parser.IntoPtr(&l.Server),
	}, &l.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (l *Link) MarshalNode() *yaml.Node {
	return parser.NewMapping().
		String("operationRef", l.OperationRef).
		String("operationId", l.OperationID).
		AnyMap("parameters", l.Parameters).
		Any("requestBody", l.RequestBody).
		String("description", l.Description).
		Set("server", parser.NodeOf(l.Server)).
		Extensions(l.Extensions).
		Node()
}

// ValidateWithContext implements validator.Validatable. An operationId
// must name an operation of the document's paths.
func (l *Link) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	validator.Exclusive(ctx, l.OperationRef != "", l.OperationID != "", path, "operationRef and operationId are mutually exclusive")
	if l.OperationID != "" && !ctx.HasOperation(l.OperationID) {
		ctx.Errorf(path, ".operationId: missing operation with id `%s`", l.OperationID)
	}
	if l.Server != nil {
		validator.Server(ctx, l.Server, pathutil.Field(path, "server"))
	}
}
