package spec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-json-experiment/json/jsontext"
	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON or YAML document into an ordered Node tree.
// Input whose first significant byte is '{' or '[' is decoded as JSON.
func Parse(data []byte) (*Node, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("document is empty")
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return parseJSON(trimmed)
	}
	return parseYAML(data)
}

func parseJSON(data []byte) (*Node, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(data),
		jsontext.AllowDuplicateNames(true),
		jsontext.AllowInvalidUTF8(true),
	)
	root, err := readJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.ReadToken(); err != io.EOF {
		if err == nil {
			return nil, errors.New("unexpected data after top-level value")
		}
		return nil, err
	}
	return root, nil
}

func readJSONValue(dec *jsontext.Decoder) (*Node, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}
	switch tok.Kind() {
	case '{':
		n := NewObject()
		for dec.PeekKind() != '}' {
			keyTok, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			// the token is voided once the decoder moves on
			key := keyTok.String()
			value, err := readJSONValue(dec)
			if err != nil {
				return nil, err
			}
			n.Set(key, value)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return n, nil
	case '[':
		n := &Node{Kind: ArrayNode}
		for dec.PeekKind() != ']' {
			item, err := readJSONValue(dec)
			if err != nil {
				return nil, err
			}
			n.Items = append(n.Items, item)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return n, nil
	case '"':
		return NewString(tok.String()), nil
	case '0':
		return &Node{Kind: NumberNode, Scalar: tok.String()}, nil
	case 't':
		return &Node{Kind: BoolNode, Scalar: "true"}, nil
	case 'f':
		return &Node{Kind: BoolNode, Scalar: "false"}, nil
	case 'n':
		return &Node{Kind: NullNode}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func parseYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, errors.New("document is empty")
	}
	return fromYAML(doc.Content[0], map[*yaml.Node]bool{})
}

// fromYAML converts a yaml.Node, expanding aliases. active holds the aliases
// currently being expanded so that self-referencing anchors are rejected.
func fromYAML(y *yaml.Node, active map[*yaml.Node]bool) (*Node, error) {
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return &Node{Kind: NullNode}, nil
		}
		return fromYAML(y.Content[0], active)
	case yaml.AliasNode:
		if y.Alias == nil {
			return &Node{Kind: NullNode}, nil
		}
		if active[y.Alias] {
			return nil, fmt.Errorf("line %d: alias *%s refers to itself", y.Line, y.Value)
		}
		active[y.Alias] = true
		defer delete(active, y.Alias)
		return fromYAML(y.Alias, active)
	case yaml.SequenceNode:
		n := &Node{Kind: ArrayNode, Items: make([]*Node, 0, len(y.Content))}
		for _, c := range y.Content {
			item, err := fromYAML(c, active)
			if err != nil {
				return nil, err
			}
			n.Items = append(n.Items, item)
		}
		return n, nil
	case yaml.MappingNode:
		n := NewObject()
		var merges []*Node
		for i := 0; i+1 < len(y.Content); i += 2 {
			k, v := y.Content[i], y.Content[i+1]
			value, err := fromYAML(v, active)
			if err != nil {
				return nil, err
			}
			if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
				merges = append(merges, value)
				continue
			}
			n.Set(k.Value, value)
		}
		for _, m := range merges {
			mergeInto(n, m)
		}
		return n, nil
	case yaml.ScalarNode:
		return yamlScalar(y), nil
	default:
		return &Node{Kind: NullNode}, nil
	}
}

// mergeInto applies a "<<" merge source. Explicit keys take precedence.
func mergeInto(dst, src *Node) {
	switch {
	case src.IsObject():
		src.Each(func(key string, value *Node) bool {
			if !dst.Has(key) {
				dst.Set(key, value)
			}
			return true
		})
	case src.IsArray():
		for _, item := range src.Items {
			mergeInto(dst, item)
		}
	}
}

func yamlScalar(y *yaml.Node) *Node {
	switch y.ShortTag() {
	case "!!null":
		return &Node{Kind: NullNode}
	case "!!bool":
		var b bool
		if err := y.Decode(&b); err == nil {
			if b {
				return &Node{Kind: BoolNode, Scalar: "true"}
			}
			return &Node{Kind: BoolNode, Scalar: "false"}
		}
	case "!!int", "!!float":
		return &Node{Kind: NumberNode, Scalar: y.Value}
	}
	return NewString(y.Value)
}
