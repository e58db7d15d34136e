package oas2

import (
	"iter"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
	"github.com/erraggy/oascheck/validator"
)

// PathItem describes the operations available on a single path. 2.0 has
// no trace slot, so a trace operation is kept in CustomMethods.
type PathItem struct {
	Ref        string
	Get        *Operation
	Put        *Operation
	Post       *Operation
	Delete     *Operation
	Options    *Operation
	Head       *Operation
	Patch      *Operation
	Parameters []parser.RefOr[Parameter]
	Extensions parser.Extensions

	// CustomMethods holds operations under methods without a fixed slot,
	// keyed by lower-cased method.
	CustomMethods map[string]*Operation
}

func (p *PathItem) slot(method string) **Operation {
	switch method {
	case parser.MethodGet:
		return &p.Get
	case parser.MethodPut:
		return &p.Put
	case parser.MethodPost:
		return &p.Post
	case parser.MethodDelete:
		return &p.Delete
	case parser.MethodOptions:
		return &p.Options
	case parser.MethodHead:
		return &p.Head
	case parser.MethodPatch:
		return &p.Patch
	}
	return nil
}

// Operations yields the present operations in method order.
func (p *PathItem) Operations() iter.Seq2[string, *Operation] {
	return func(yield func(string, *Operation) bool) {
		for _, method := range parser.Methods20 {
			if op := *p.slot(method); op != nil && !yield(method, op) {
				return
			}
		}
		for _, method := range parser.SortedKeys(p.CustomMethods) {
			if !yield(method, p.CustomMethods[method]) {
				return
			}
		}
	}
}

// UnmarshalNode implements parser.Unmarshaler.
func (p *PathItem) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.PathItem(n, path, parser.Fields{
		parser.RefKey: parser.String(&p.Ref),
		"parameters":  parser.SliceOf(&p.Parameters),
	}, func(method string) parser.Field {
		if slot := p.slot(method); slot != nil {
			return parser.IntoPtr(slot)
		}
		return parser.IntoMapEntry(&p.CustomMethods, method)
	}, &p.Extensions)
}

// MarshalNode implements parser.Marshaler.
func (p *PathItem) MarshalNode() *yaml.Node {
	out := parser.NewMapping().String(parser.RefKey, p.Ref)
	for method, op := range p.Operations() {
		out.Set(method, op.MarshalNode())
	}
	return out.
		Set("parameters", parser.SliceNode(p.Parameters)).
		Extensions(p.Extensions).
		Node()
}

// ValidateWithContext implements validator.Validatable. Only one body
// parameter is allowed per list.
func (p *PathItem) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	if p.Ref != "" {
		validator.ValidateRef(ctx, p.Ref, path, ctx.Root.resolvePathItem)
	}
	for method, op := range p.Operations() {
		op.ValidateWithContext(ctx, pathutil.Field(path, method))
	}
	if n := validateParameters(ctx, p.Parameters, path); n > 1 {
		ctx.Errorf(path, ".parameters: only one body parameter allowed, found %d", n)
	}
}

// Operation describes a single API operation on a path.
type Operation struct {
	Tags         []string
	Summary      string
	Description  string
	ExternalDocs *parser.ExternalDocs
	OperationID  string
	Consumes     []string
	Produces     []string
	Parameters   []parser.RefOr[Parameter]
	Responses    parser.Responses[Response]
	Schemes      []string
	Deprecated   bool
	Security     []parser.SecurityRequirement
	Extensions   parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (o *Operation) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, parser.Fields{
		"tags":         parser.Strings(&o.Tags),
		"summary":      parser.String(&o.Summary),
		"description":  parser.String(&o.Description),
		"externalDocs": parser.IntoPtr(&o.ExternalDocs),
		"operationId":  parser.String(&o.OperationID),
		"consumes":     parser.Strings(&o.Consumes),
		"produces":     parser.Strings(&o.Produces),
		"parameters":   parser.SliceOf(&o.Parameters),
		"responses":    parser.Into(&o.Responses),
		"schemes":      enums(&o.Schemes, transferSchemes...),
		"deprecated":   parser.Bool(&o.Deprecated),
		"security":     parser.SecurityRequirements(&o.Security),
	}, &o.Extensions, "responses")
}

// MarshalNode implements parser.Marshaler.
func (o *Operation) MarshalNode() *yaml.Node {
	return parser.NewMapping().
		Strings("tags", o.Tags).
		String("summary", o.Summary).
		String("description", o.Description).
		Set("externalDocs", parser.NodeOf(o.ExternalDocs)).
		String("operationId", o.OperationID).
		Strings("consumes", o.Consumes).
		Strings("produces", o.Produces).
		Set("parameters", parser.SliceNode(o.Parameters)).
		Set("responses", o.Responses.MarshalNode()).
		Strings("schemes", o.Schemes).
		Bool("deprecated", o.Deprecated).
		Set("security", parser.SecurityRequirementsNode(o.Security)).
		Extensions(o.Extensions).
		Node()
}

// ValidateWithContext implements validator.Validatable.
func (o *Operation) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	validator.OperationTags(ctx, o.Tags, ctx.Root.Tags, path)
	validator.MediaTypes(ctx, o.Consumes, pathutil.Field(path, "consumes"))
	validator.MediaTypes(ctx, o.Produces, pathutil.Field(path, "produces"))

	if n := validateParameters(ctx, o.Parameters, path); n > 1 {
		ctx.Errorf(path, ".parameters: only one body parameter allowed, found %d", n)
	}

	if o.Responses.Len() == 0 {
		ctx.Error(path, ".responses: must not be empty")
	}
	validator.Responses(ctx, &o.Responses, pathutil.Field(path, "responses"), ctx.Root.resolveResponse)

	validator.SecurityRequirements(ctx, o.Security, path, pathutil.RefPrefixSecurityDefinitions, ctx.Root.resolveSecurityScheme)
	validator.ExternalDocs(ctx, o.ExternalDocs, pathutil.Field(path, "externalDocs"))
}
