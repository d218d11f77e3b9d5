package spec

import "strings"

// SchemaKind is the facet of a schema that drives type resolution.
type SchemaKind uint8

const (
	// SchemaDynamic covers absent, malformed and unrecognized shapes.
	SchemaDynamic SchemaKind = iota
	SchemaRef
	SchemaPrimitive
	SchemaArray
	SchemaObject
	SchemaComposition
)

// Composition keywords in the order they are consulted.
var CompositionKeywords = []string{"allOf", "oneOf", "anyOf"}

// Composition is one allOf/oneOf/anyOf keyword with its object branches.
type Composition struct {
	Keyword  string
	Branches []*Schema
}

// Property is a named member of an object schema. Schema is nil when the
// member value is not an object.
type Property struct {
	Name   string
	Schema *Schema
}

// Schema is a schema object decoded from a Node. Facets that are absent or
// malformed in the source are left at their zero value.
type Schema struct {
	Ref           string
	Type          string
	Description   string
	Items         *Schema
	HasItems      bool
	Properties    []Property
	HasProperties bool
	Required      []string
	Compositions  []Composition

	node *Node
}

// NewSchema decodes n. It returns nil when n is not an object.
func NewSchema(n *Node) *Schema {
	if !n.IsObject() {
		return nil
	}
	s := &Schema{node: n}
	s.Ref = n.Get("$ref").StringValue()
	s.Type = schemaType(n.Get("type"))
	s.Description = n.Get("description").StringValue()

	if items := n.Get("items"); items.Truthy() {
		s.HasItems = true
		s.Items = NewSchema(items)
	}
	if props := n.Get("properties"); props.IsObject() {
		s.HasProperties = true
		s.Properties = make([]Property, 0, props.Len())
		props.Each(func(key string, value *Node) bool {
			s.Properties = append(s.Properties, Property{Name: key, Schema: NewSchema(value)})
			return true
		})
	}
	s.Required = n.Get("required").Strings()
	for _, kw := range CompositionKeywords {
		list := n.Get(kw)
		if !list.IsArray() {
			continue
		}
		c := Composition{Keyword: kw}
		for _, item := range list.Items {
			if branch := NewSchema(item); branch != nil {
				c.Branches = append(c.Branches, branch)
			}
		}
		s.Compositions = append(s.Compositions, c)
	}
	return s
}

// schemaType accepts both the single-string form and the list form, where
// the first non-null entry wins.
func schemaType(n *Node) string {
	if s, ok := n.Str(); ok {
		return strings.TrimSpace(s)
	}
	for _, t := range n.Strings() {
		if t != "null" {
			return strings.TrimSpace(t)
		}
	}
	return ""
}

// Kind reports which facet drives resolution: a reference first, then the
// declared type, then a composition keyword.
func (s *Schema) Kind() SchemaKind {
	if s == nil {
		return SchemaDynamic
	}
	if s.Ref != "" {
		return SchemaRef
	}
	switch s.Type {
	case "string", "integer", "number", "boolean":
		return SchemaPrimitive
	case "array":
		return SchemaArray
	case "object":
		return SchemaObject
	}
	if len(s.Compositions) > 0 {
		return SchemaComposition
	}
	return SchemaDynamic
}

// Property returns the schema of the named member, or nil.
func (s *Schema) Property(name string) *Schema {
	if s == nil {
		return nil
	}
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// IsRequired reports whether name is listed in required.
func (s *Schema) IsRequired(name string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// FirstComposition returns the first keyword present, in allOf, oneOf, anyOf order.
func (s *Schema) FirstComposition() (Composition, bool) {
	if s == nil || len(s.Compositions) == 0 {
		return Composition{}, false
	}
	return s.Compositions[0], true
}

// Node returns the source node.
func (s *Schema) Node() *Node {
	if s == nil {
		return nil
	}
	return s.node
}
