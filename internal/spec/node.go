package spec

import "strings"

// NodeKind identifies the JSON shape of a Node.
type NodeKind uint8

const (
	NullNode NodeKind = iota
	BoolNode
	NumberNode
	StringNode
	ArrayNode
	ObjectNode
)

func (k NodeKind) String() string {
	switch k {
	case BoolNode:
		return "bool"
	case NumberNode:
		return "number"
	case StringNode:
		return "string"
	case ArrayNode:
		return "array"
	case ObjectNode:
		return "object"
	default:
		return "null"
	}
}

// Node is a JSON value that keeps object members in document order.
// Scalar holds the raw text of strings, numbers and booleans.
type Node struct {
	Kind   NodeKind
	Scalar string
	Items  []*Node
	Keys   []string
	Fields map[string]*Node
}

// NewObject returns an empty object node.
func NewObject() *Node {
	return &Node{Kind: ObjectNode, Fields: map[string]*Node{}}
}

// NewString returns a string node.
func NewString(s string) *Node {
	return &Node{Kind: StringNode, Scalar: s}
}

// Set adds or replaces a member. A replaced member keeps its original position.
func (n *Node) Set(key string, value *Node) {
	if n.Fields == nil {
		n.Fields = map[string]*Node{}
	}
	if _, exists := n.Fields[key]; !exists {
		n.Keys = append(n.Keys, key)
	}
	n.Fields[key] = value
}

// IsObject reports whether n is a non-nil object.
func (n *Node) IsObject() bool { return n != nil && n.Kind == ObjectNode }

// IsArray reports whether n is a non-nil array.
func (n *Node) IsArray() bool { return n != nil && n.Kind == ArrayNode }

// IsNull reports whether n is absent or JSON null.
func (n *Node) IsNull() bool { return n == nil || n.Kind == NullNode }

// Get returns the member named key, or nil when n is not an object or has no such member.
func (n *Node) Get(key string) *Node {
	if !n.IsObject() {
		return nil
	}
	return n.Fields[key]
}

// Has reports whether the object n carries a member named key.
func (n *Node) Has(key string) bool {
	if !n.IsObject() {
		return false
	}
	_, ok := n.Fields[key]
	return ok
}

// Path walks nested object members.
func (n *Node) Path(keys ...string) *Node {
	cur := n
	for _, k := range keys {
		cur = cur.Get(k)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Str returns the value of a string node.
func (n *Node) Str() (string, bool) {
	if n == nil || n.Kind != StringNode {
		return "", false
	}
	return n.Scalar, true
}

// StringValue returns the string value, or "" for any other kind.
func (n *Node) StringValue() string {
	s, _ := n.Str()
	return s
}

// Truthy mirrors loose truthiness of JSON values: null, false, 0 and "" are falsy.
func (n *Node) Truthy() bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case NullNode:
		return false
	case BoolNode:
		return n.Scalar == "true"
	case StringNode:
		return n.Scalar != ""
	case NumberNode:
		s := strings.TrimLeft(strings.TrimPrefix(n.Scalar, "-"), "0.")
		return s != "" && !strings.HasPrefix(strings.ToLower(s), "e")
	default:
		return true
	}
}

// Len returns the number of members or items.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case ObjectNode:
		return len(n.Keys)
	case ArrayNode:
		return len(n.Items)
	default:
		return 0
	}
}

// Each visits object members in document order until fn returns false.
func (n *Node) Each(fn func(key string, value *Node) bool) {
	if !n.IsObject() {
		return
	}
	for _, k := range n.Keys {
		if !fn(k, n.Fields[k]) {
			return
		}
	}
}

// Strings returns the string items of an array node, skipping other kinds.
func (n *Node) Strings() []string {
	if !n.IsArray() {
		return nil
	}
	out := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		if s, ok := item.Str(); ok {
			out = append(out, s)
		}
	}
	return out
}
