package spec

import (
	"strings"
	"testing"
)

func TestParse_JSONKeepsMemberOrder(t *testing.T) {
	t.Parallel()
	root, err := Parse([]byte("\xef\xbb\xbf" + `{"z": 1, "a": {"y": true, "b": null}, "m": ["x", 2.5e3, false]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := strings.Join(root.Keys, ","); got != "z,a,m" {
		t.Fatalf("unexpected key order %s", got)
	}
	if got := strings.Join(root.Get("a").Keys, ","); got != "y,b" {
		t.Fatalf("unexpected nested order %s", got)
	}
	if root.Get("z").Kind != NumberNode || root.Get("z").Scalar != "1" {
		t.Fatalf("unexpected number node %+v", root.Get("z"))
	}
	if !root.Path("a", "b").IsNull() || root.Path("a", "b") == nil {
		t.Fatalf("expected an explicit null member")
	}
	m := root.Get("m")
	if m.Len() != 3 || m.Items[1].Scalar != "2.5e3" || m.Items[2].Truthy() {
		t.Fatalf("unexpected array %+v", m.Items)
	}
	if got := m.Strings(); len(got) != 1 || got[0] != "x" {
		t.Fatalf("Strings must skip non-strings, got %v", got)
	}
}

func TestParse_JSONDuplicateKeyKeepsFirstPosition(t *testing.T) {
	t.Parallel()
	root, err := Parse([]byte(`{"a": 1, "b": 2, "a": 3}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := strings.Join(root.Keys, ","); got != "a,b" {
		t.Fatalf("unexpected keys %s", got)
	}
	if root.Get("a").Scalar != "3" {
		t.Fatalf("expected last value to win, got %s", root.Get("a").Scalar)
	}
}

func TestParse_JSONErrors(t *testing.T) {
	t.Parallel()
	for _, input := range []string{``, `{"a": }`, `{"a": 1} {"b": 2}`, `[1, 2`} {
		if _, err := Parse([]byte(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestParse_YAML(t *testing.T) {
	t.Parallel()
	src := `
openapi: 3.0.0
base: &base
  type: object
  description: shared
derived:
  <<: *base
  description: own
  enabled: yes
  count: 3
  ratio: 0.5
  nothing: ~
  list:
    - *base
`
	root, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := strings.Join(root.Keys, ","); got != "openapi,base,derived" {
		t.Fatalf("unexpected key order %s", got)
	}
	d := root.Get("derived")
	if got := strings.Join(d.Keys, ","); got != "description,enabled,count,ratio,nothing,list,type" {
		t.Fatalf("unexpected merged keys %s", got)
	}
	if d.Get("description").StringValue() != "own" {
		t.Fatalf("explicit keys must win over merged keys")
	}
	if d.Get("type").StringValue() != "object" {
		t.Fatalf("merge key not applied")
	}
	if d.Get("enabled").Kind != StringNode {
		t.Fatalf("yes is a string in YAML 1.2, got %s", d.Get("enabled").Kind)
	}
	if d.Get("count").Kind != NumberNode || d.Get("ratio").Kind != NumberNode {
		t.Fatalf("expected number nodes")
	}
	if !d.Get("nothing").IsNull() {
		t.Fatalf("expected null")
	}
	if d.Get("list").Items[0].Get("description").StringValue() != "shared" {
		t.Fatalf("alias not expanded")
	}
}

func TestParse_YAMLRejectsRecursiveAlias(t *testing.T) {
	t.Parallel()
	src := `
a: &loop
  self: *loop
`
	if _, err := Parse([]byte(src)); err == nil {
		t.Fatalf("expected an error for a self-referencing anchor")
	}
}

func TestNode_Truthy(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		n    *Node
		want bool
	}{
		{"nil", nil, false},
		{"null", &Node{Kind: NullNode}, false},
		{"false", &Node{Kind: BoolNode, Scalar: "false"}, false},
		{"true", &Node{Kind: BoolNode, Scalar: "true"}, true},
		{"empty string", NewString(""), false},
		{"string", NewString("0"), true},
		{"zero", &Node{Kind: NumberNode, Scalar: "0"}, false},
		{"negative zero float", &Node{Kind: NumberNode, Scalar: "-0.0"}, false},
		{"zero exponent", &Node{Kind: NumberNode, Scalar: "0e10"}, false},
		{"one", &Node{Kind: NumberNode, Scalar: "1"}, true},
		{"fraction", &Node{Kind: NumberNode, Scalar: "0.25"}, true},
		{"empty object", NewObject(), true},
		{"empty array", &Node{Kind: ArrayNode}, true},
	}
	for _, tt := range tests {
		if got := tt.n.Truthy(); got != tt.want {
			t.Errorf("%s: Truthy() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNode_SetKeepsPosition(t *testing.T) {
	t.Parallel()
	n := NewObject()
	n.Set("a", NewString("1"))
	n.Set("b", NewString("2"))
	n.Set("a", NewString("3"))
	if got := strings.Join(n.Keys, ","); got != "a,b" {
		t.Fatalf("unexpected keys %s", got)
	}

	var visited []string
	n.Each(func(key string, value *Node) bool {
		visited = append(visited, key+"="+value.Scalar)
		return false
	})
	if len(visited) != 1 || visited[0] != "a=3" {
		t.Fatalf("Each must stop early, got %v", visited)
	}

	var nilNode *Node
	if nilNode.Get("a") != nil || nilNode.Has("a") || nilNode.Len() != 0 || nilNode.Path("a", "b") != nil {
		t.Fatalf("nil node accessors must be safe")
	}
}
