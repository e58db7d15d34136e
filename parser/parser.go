package parser

import (
	"fmt"
	"io"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/oaserrors"
	"go.yaml.in/yaml/v4"
)

// ParseNode parses YAML or JSON input into the root node of a document.
// Syntax errors and empty input surface as *oaserrors.DecodeError.
func ParseNode(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &oaserrors.DecodeError{
			Path:    pathutil.Root,
			Message: "malformed document",
			Cause:   err,
		}
	}
	root := Resolve(&doc)
	if root == nil || root.Kind == 0 || IsNull(root) {
		return nil, &oaserrors.DecodeError{Path: pathutil.Root, Message: "empty document"}
	}
	return root, nil
}

// ParseWithOptions decodes one document into a new T. The root type, and
// with it the document version, is chosen by the caller.
//
// Example:
//
//	spec, err := parser.ParseWithOptions[oas30.Spec](
//	    parser.WithBytes(data),
//	    parser.WithStrictFields(true),
//	)
func ParseWithOptions[T any, PT interface {
	*T
	Unmarshaler
}](opts ...Option) (*T, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	data := cfg.bytes
	if cfg.reader != nil {
		data, err = io.ReadAll(cfg.reader)
		if err != nil {
			return nil, fmt.Errorf("parser: failed to read input: %w", err)
		}
	}

	root, err := ParseNode(data)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}

	doc := new(T)
	d := NewDecoder(cfg.strictFields)
	if err := PT(doc).UnmarshalNode(d, root, pathutil.Root); err != nil {
		cfg.logger.Debug("decode failed", "error", err)
		return nil, fmt.Errorf("parser: %w", err)
	}

	cfg.logger.Debug("decoded document",
		"type", fmt.Sprintf("%T", doc),
		"bytes", len(data),
		"strict", cfg.strictFields,
	)
	return doc, nil
}
