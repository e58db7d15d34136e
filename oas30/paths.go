package oas30

import (
	"iter"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/parser"
	"github.com/erraggy/oascheck/validator"
)

// PathItem describes the operations available on a single path. Keys
// other than the fixed fields are HTTP methods, matched case-insensitively.
type PathItem struct {
	Ref         string
	Summary     string
	Description string
	Get         *Operation
	Put         *Operation
	Post        *Operation
	Delete      *Operation
	Options     *Operation
	Head        *Operation
	Patch       *Operation
	Trace       *Operation
	Servers     []parser.Server
	Parameters  []parser.RefOr[Parameter]
	Extensions  parser.Extensions

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
	case parser.MethodTrace:
		return &p.Trace
	}
	return nil
}

// Operations yields the present operations keyed by lower-case method,
// in get, put, post, delete, options, head, patch, trace order, followed
// by custom methods in key order.
func (p *PathItem) Operations() iter.Seq2[string, *Operation] {
	return func(yield func(string, *Operation) bool) {
		for _, method := range parser.Methods30 {
			op := *p.slot(method)
			if op == nil {
				continue
			}
			if !yield(method, op) {
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
		"summary":     parser.String(&p.Summary),
		"description": parser.String(&p.Description),
		"servers":     parser.SliceOf(&p.Servers),
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
	out := parser.NewMapping().
		String(parser.RefKey, p.Ref).
		String("summary", p.Summary).
		String("description", p.Description)
	for method, op := range p.Operations() {
		out.Set(method, op.MarshalNode())
	}
	return out.
		Set("servers", parser.SliceNode(p.Servers)).
		Set("parameters", parser.SliceNode(p.Parameters)).
		Extensions(p.Extensions).
		Node()
}

// ValidateWithContext implements validator.Validatable.
func (p *PathItem) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	if p.Ref != "" {
		validator.ValidateRef(ctx, p.Ref, path, ctx.Root.resolvePathItem)
	}
	for method, op := range p.Operations() {
		op.ValidateWithContext(ctx, pathutil.Field(path, method))
	}
	validator.Servers(ctx, p.Servers, path)
	validateParameters(ctx, p.Parameters, path)
}

func validateParameters(ctx *validator.Context[*Spec], params []parser.RefOr[Parameter], path string) {
	field := pathutil.Field(path, "parameters")
	for i := range params {
		validator.ValidateRefOr(ctx, &params[i], pathutil.Index(field, i), ctx.Root.resolveParameter)
	}
}

// Operation describes a single API operation on a path.
type Operation struct {
	Tags         []string
	Summary      string
	Description  string
	ExternalDocs *parser.ExternalDocs
	OperationID  string
	Parameters   []parser.RefOr[Parameter]
	RequestBody  *parser.RefOr[RequestBody]
	Responses    parser.Responses[Response]
	Callbacks    map[string]parser.RefOr[Callback]
	Deprecated   bool
	// Security overrides the root requirements when non-nil. An empty
	// list removes them.
	Security   []parser.SecurityRequirement
	Servers    []parser.Server
	Extensions parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (o *Operation) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	return d.Object(n, path, parser.Fields{
		"tags":         parser.Strings(&o.Tags),
		"summary":      parser.String(&o.Summary),
		"description":  parser.String(&o.Description),
		"externalDocs": parser.IntoPtr(&o.ExternalDocs),
		"operationId":  parser.String(&o.OperationID),
		"parameters":   parser.SliceOf(&o.Parameters),
		"requestBody":  parser.IntoPtr(&o.RequestBody),
		"responses":    parser.Into(&o.Responses),
		"callbacks":    parser.MapOf(&o.Callbacks),
		"deprecated":   parser.Bool(&o.Deprecated),
		"security":     parser.SecurityRequirements(&o.Security),
		"servers":      parser.SliceOf(&o.Servers),
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
		Set("parameters", parser.SliceNode(o.Parameters)).
		Set("requestBody", parser.NodeOf(o.RequestBody)).
		Set("responses", o.Responses.MarshalNode()).
		Set("callbacks", parser.MapNode(o.Callbacks)).
		Bool("deprecated", o.Deprecated).
		Set("security", parser.SecurityRequirementsNode(o.Security)).
		Set("servers", parser.SliceNode(o.Servers)).
		Extensions(o.Extensions).
		Node()
}

// ValidateWithContext implements validator.Validatable. The operation
// identifier is not checked here; the root registers every identifier
// before the paths are walked.
func (o *Operation) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	validator.OperationTags(ctx, o.Tags, ctx.Root.Tags, path)
	validateParameters(ctx, o.Parameters, path)
	validator.ValidateRefOr(ctx, o.RequestBody, pathutil.Field(path, "requestBody"), ctx.Root.resolveRequestBody)
	validator.Servers(ctx, o.Servers, path)

	callbacks := pathutil.Field(path, "callbacks")
	for _, name := range parser.SortedKeys(o.Callbacks) {
		cb := o.Callbacks[name]
		validator.ValidateRefOr(ctx, &cb, pathutil.Key(callbacks, name), ctx.Root.resolveCallback)
	}

	if o.Responses.Len() == 0 {
		ctx.Error(path, ".responses: must not be empty")
	}
	validator.Responses(ctx, &o.Responses, pathutil.Field(path, "responses"), ctx.Root.resolveResponse)

	validator.ExternalDocs(ctx, o.ExternalDocs, pathutil.Field(path, "externalDocs"))
	validator.SecurityRequirements(ctx, o.Security, path, pathutil.RefPrefixSecuritySchemes, ctx.Root.resolveSecurityScheme)
}

// Callback maps runtime expressions to the path items of out-of-band
// requests.
type Callback struct {
	Paths      map[string]PathItem
	Extensions parser.Extensions
}

// UnmarshalNode implements parser.Unmarshaler.
func (c *Callback) UnmarshalNode(d *parser.Decoder, n *yaml.Node, path string) error {
	*c = Callback{}
	return d.Entries(n, path, func(k, v *yaml.Node) error {
		if parser.IsExtensionKey(k.Value) {
			val, err := d.Value(v, pathutil.Field(path, k.Value))
			if err != nil {
				return err
			}
			if c.Extensions == nil {
				c.Extensions = make(parser.Extensions)
			}
			c.Extensions[k.Value] = val
			return nil
		}
		var item PathItem
		if err := item.UnmarshalNode(d, v, pathutil.Key(path, k.Value)); err != nil {
			return err
		}
		if c.Paths == nil {
			c.Paths = make(map[string]PathItem)
		}
		c.Paths[k.Value] = item
		return nil
	})
}

// MarshalNode implements parser.Marshaler.
func (c *Callback) MarshalNode() *yaml.Node {
	out := parser.NewMapping()
	for _, expr := range parser.SortedKeys(c.Paths) {
		item := c.Paths[expr]
		out.Set(expr, item.MarshalNode())
	}
	return out.Extensions(c.Extensions).Node()
}

// ValidateWithContext implements validator.Validatable.
func (c *Callback) ValidateWithContext(ctx *validator.Context[*Spec], path string) {
	for _, expr := range parser.SortedKeys(c.Paths) {
		item := c.Paths[expr]
		item.ValidateWithContext(ctx, pathutil.Key(path, expr))
	}
}
