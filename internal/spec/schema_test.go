package spec

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
)

func mustSchema(t *testing.T, src string) *Schema {
	t.Helper()
	n, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return NewSchema(n)
}

func TestSchema_Kind(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src  string
		want SchemaKind
	}{
		{`{"$ref": "#/components/schemas/A", "type": "string"}`, SchemaRef},
		{`{"type": "integer"}`, SchemaPrimitive},
		{`{"type": ["null", "boolean"]}`, SchemaPrimitive},
		{`{"type": "array", "items": {"type": "string"}}`, SchemaArray},
		{`{"type": "object", "allOf": [{"type": "string"}]}`, SchemaObject},
		{`{"oneOf": [{"type": "string"}]}`, SchemaComposition},
		{`{"type": "file"}`, SchemaDynamic},
		{`{}`, SchemaDynamic},
	}
	for _, tt := range tests {
		if got := mustSchema(t, tt.src).Kind(); got != tt.want {
			t.Errorf("%s: Kind() = %v, want %v", tt.src, got, tt.want)
		}
	}
	var nilSchema *Schema
	if nilSchema.Kind() != SchemaDynamic {
		t.Errorf("nil schema must be dynamic")
	}
	if NewSchema(NewString("x")) != nil {
		t.Errorf("non-object nodes do not decode to a schema")
	}
}

func TestSchema_Facets(t *testing.T) {
	t.Parallel()
	s := mustSchema(t, `{
  "description": "A widget",
  "required": ["name", 3],
  "properties": {"name": {"type": "string"}, "weird": true, "tags": {"type": "array", "items": false}},
  "anyOf": [{"type": "object"}, "skip"],
  "allOf": [{"$ref": "#/components/schemas/Base"}]
}`)
	if s.Description != "A widget" || !s.HasProperties || len(s.Properties) != 3 {
		t.Fatalf("unexpected facets: %+v", s)
	}
	if s.Properties[1].Name != "weird" || s.Properties[1].Schema != nil {
		t.Fatalf("non-object members keep their name with a nil schema")
	}
	if tags := s.Property("tags"); tags == nil || tags.HasItems {
		t.Fatalf("a falsy items value is not an items schema: %+v", tags)
	}
	if !s.IsRequired("name") || s.IsRequired("tags") {
		t.Fatalf("unexpected required set %v", s.Required)
	}
	comp, ok := s.FirstComposition()
	if !ok || comp.Keyword != "allOf" || len(comp.Branches) != 1 || comp.Branches[0].Ref == "" {
		t.Fatalf("allOf must be consulted first, got %+v", comp)
	}
	if len(s.Compositions) != 2 || len(s.Compositions[1].Branches) != 1 {
		t.Fatalf("non-object branches are skipped: %+v", s.Compositions)
	}
	if s.Node() == nil || s.Property("missing") != nil {
		t.Fatalf("unexpected accessors")
	}
}

func TestFromOpenAPI3(t *testing.T) {
	t.Parallel()
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: "Kin", Version: "1"},
		Paths: openapi3.Paths{
			"/widgets": &openapi3.PathItem{
				Get: &openapi3.Operation{
					OperationID: "listWidgets",
					Tags:        []string{"widgets"},
					Responses:   openapi3.NewResponses(),
				},
			},
		},
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"Widget": openapi3.NewObjectSchema().
					WithProperty("name", openapi3.NewStringSchema()).
					NewRef(),
			},
		},
	}

	got, err := FromOpenAPI3(doc)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got.OpenAPIVersion() != "3.0.3" || got.Title() != "Kin" {
		t.Fatalf("unexpected metadata %q %q", got.OpenAPIVersion(), got.Title())
	}
	op := got.Paths().Path("/widgets", "get")
	if op.Get("operationId").StringValue() != "listWidgets" {
		t.Fatalf("operation not carried over: %+v", op)
	}
	widget := NewSchema(got.Schemas().Get("Widget"))
	if widget.Kind() != SchemaObject || widget.Property("name").Kind() != SchemaPrimitive {
		t.Fatalf("schema not carried over: %+v", widget)
	}

	if _, err := FromOpenAPI3(nil); err == nil {
		t.Fatalf("expected an error for a nil document")
	}
}

func TestDocument_Accessors(t *testing.T) {
	t.Parallel()
	doc := NewDocument(nil)
	if doc.Paths() != nil || doc.Schemas() != nil || doc.Title() != "" {
		t.Fatalf("empty document accessors must be empty")
	}
	doc, err := ParseDocument([]byte(`{"paths": [], "components": {"schemas": {"A": {}}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Paths() != nil {
		t.Fatalf("a non-object paths member is ignored")
	}
	if doc.Schemas().Len() != 1 {
		t.Fatalf("expected one schema")
	}
}
