package spec

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Document is a parsed OpenAPI v3 document with member order preserved.
type Document struct {
	Root     *Node
	Location string
}

// NewDocument wraps an already decoded tree.
func NewDocument(root *Node) *Document {
	if root == nil {
		root = NewObject()
	}
	return &Document{Root: root}
}

// ParseDocument decodes raw JSON or YAML bytes.
func ParseDocument(data []byte) (*Document, error) {
	root, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return NewDocument(root), nil
}

// FromOpenAPI3 converts a kin-openapi document. kin-openapi keeps paths and
// schemas in maps, so member order follows its marshalled (sorted) output.
func FromOpenAPI3(doc *openapi3.T) (*Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("spec: nil openapi3 document")
	}
	// kin-openapi implements the encoding/json Marshaler contract.
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("spec: marshal openapi3 document: %w", err)
	}
	return ParseDocument(data)
}

// OpenAPIVersion returns the "openapi" field.
func (d *Document) OpenAPIVersion() string { return d.Root.Get("openapi").StringValue() }

// Title returns info.title.
func (d *Document) Title() string { return d.Root.Path("info", "title").StringValue() }

// Paths returns the paths object, or nil.
func (d *Document) Paths() *Node {
	p := d.Root.Get("paths")
	if !p.IsObject() {
		return nil
	}
	return p
}

// Schemas returns components.schemas, or nil.
func (d *Document) Schemas() *Node {
	s := d.Root.Path("components", "schemas")
	if !s.IsObject() {
		return nil
	}
	return s
}
