package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oascheck/oaserrors"
)

// Context carries the state of one validation pass over a document of
// type D. It is created by Validate and must not be shared between passes.
type Context[D any] struct {
	// Root is the document being validated. References resolve against it.
	Root D

	flags      Flags
	visited    map[string]struct{}
	operations map[string]struct{}
	errors     []string
}

// NewContext returns an empty context over root.
func NewContext[D any](root D, flags Flags) *Context[D] {
	return &Context[D]{
		Root:       root,
		flags:      flags,
		visited:    make(map[string]struct{}),
		operations: make(map[string]struct{}),
	}
}

// Error appends "path: msg". When msg starts with "." it names a nested
// field and is appended without a separator: "path.field: ...".
func (c *Context[D]) Error(path, msg string) {
	if strings.HasPrefix(msg, ".") {
		c.errors = append(c.errors, path+msg)
		return
	}
	c.errors = append(c.errors, path+": "+msg)
}

// Errorf is the formatted form of Error.
func (c *Context[D]) Errorf(path, format string, args ...any) {
	c.Error(path, fmt.Sprintf(format, args...))
}

// Visit marks path as visited and reports whether it was new.
func (c *Context[D]) Visit(path string) bool {
	if _, ok := c.visited[path]; ok {
		return false
	}
	c.visited[path] = struct{}{}
	return true
}

// IsVisited reports whether path was visited.
func (c *Context[D]) IsVisited(path string) bool {
	_, ok := c.visited[path]
	return ok
}

// Has reports whether every flag in f is set.
func (c *Context[D]) Has(f Flags) bool {
	return c.flags.Has(f)
}

// Flags returns the relaxation flags of the pass.
func (c *Context[D]) Flags() Flags {
	return c.flags
}

// RegisterOperation records an operation identifier and reports whether it
// was new. Identifiers live apart from visited paths.
func (c *Context[D]) RegisterOperation(id string) bool {
	if _, ok := c.operations[id]; ok {
		return false
	}
	c.operations[id] = struct{}{}
	return true
}

// HasOperation reports whether id was registered.
func (c *Context[D]) HasOperation(id string) bool {
	_, ok := c.operations[id]
	return ok
}

// Errors returns a copy of the errors collected so far, in report order.
func (c *Context[D]) Errors() []string {
	return slices.Clone(c.errors)
}

// VisitedCount returns the number of distinct visited paths.
func (c *Context[D]) VisitedCount() int {
	return len(c.visited)
}

// Err returns nil when no error was collected, otherwise a
// *oaserrors.ValidationError holding them.
func (c *Context[D]) Err() error {
	if len(c.errors) == 0 {
		return nil
	}
	return &oaserrors.ValidationError{Errors: c.Errors()}
}
