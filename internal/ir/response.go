package ir

import (
	"strings"

	"github.com/mark3labs/swagger2ts/internal/naming"
	"github.com/mark3labs/swagger2ts/internal/spec"
)

// ResponseType is the inferred payload of an operation.
type ResponseType struct {
	Model   TypeExpr
	Wrapper Wrapper
}

var responsePriority = []string{"200", "201", "default"}

// InferResponse picks the candidate response and resolves the model it
// carries. It reports false when no model can be inferred.
func InferResponse(responses *spec.Node, reg *Registry) (ResponseType, bool) {
	resp := pickResponse(responses)
	if !resp.IsObject() {
		return ResponseType{}, false
	}
	inf := inference{registry: reg}
	var (
		result ResponseType
		found  bool
	)
	resp.Get("content").Each(func(_ string, media *spec.Node) bool {
		schema := spec.NewSchema(media.Get("schema"))
		if schema == nil {
			return true
		}
		if inf.hasListItems(schema, 0) {
			if item, ok := inf.listItemModel(schema); ok {
				result, found = ResponseType{Model: ArrayOf(item), Wrapper: PageWrapper}, true
				return false
			}
		}
		if t, ok := inf.extract(schema, 0); ok {
			result, found = ResponseType{Model: t}, true
			return false
		}
		return true
	})
	return result, found
}

func pickResponse(responses *spec.Node) *spec.Node {
	if !responses.IsObject() {
		return nil
	}
	for _, code := range responsePriority {
		if r := responses.Get(code); !r.IsNull() {
			return r
		}
	}
	if len(responses.Keys) == 0 {
		return nil
	}
	return responses.Get(responses.Keys[0])
}

// inference walks response schemas. Every recursion is bounded by maxDepth.
type inference struct {
	registry *Registry
}

// extract resolves the direct model of s.
func (inf inference) extract(s *spec.Schema, depth int) (TypeExpr, bool) {
	if s == nil || depth > maxDepth {
		return TypeExpr{}, false
	}
	if comp, ok := s.FirstComposition(); ok {
		var candidates []TypeExpr
		for _, branch := range comp.Branches {
			if t, ok := inf.extract(branch, depth+1); ok {
				candidates = append(candidates, t)
			}
		}
		return pickPreferredResponse(candidates)
	}
	if items := listItems(s); items != nil {
		if t, ok := inf.extract(items, depth+1); ok {
			return ArrayOf(t), true
		}
	}
	if data := s.Property("data"); data != nil {
		if t, ok := inf.extract(data, depth+1); ok {
			return t, true
		}
	}
	if s.Ref != "" {
		name, ok := inf.registry.Lookup(naming.RefName(s.Ref))
		if !ok {
			return TypeExpr{}, false
		}
		return RefType(name), true
	}
	if s.Type == "array" && s.Items != nil {
		if t, ok := inf.extract(s.Items, depth+1); ok {
			return ArrayOf(t), true
		}
	}
	return TypeExpr{}, false
}

// listItems returns properties.list.items when present.
func listItems(s *spec.Schema) *spec.Schema {
	list := s.Property("list")
	if list == nil {
		return nil
	}
	return list.Items
}

// hasListItems reports whether a list envelope is reachable through data
// properties and composition branches.
func (inf inference) hasListItems(s *spec.Schema, depth int) bool {
	if s == nil || depth > maxDepth {
		return false
	}
	if listItems(s) != nil {
		return true
	}
	if inf.hasListItems(s.Property("data"), depth+1) {
		return true
	}
	for _, comp := range s.Compositions {
		for _, branch := range comp.Branches {
			if inf.hasListItems(branch, depth+1) {
				return true
			}
		}
	}
	return false
}

// listItemModel collects every list item model reachable from s and picks
// one, preferring a non-generic name.
func (inf inference) listItemModel(s *spec.Schema) (TypeExpr, bool) {
	var candidates []TypeExpr
	inf.collectListItems(s, 0, &candidates)
	return pickPreferredListModel(candidates)
}

func (inf inference) collectListItems(s *spec.Schema, depth int, out *[]TypeExpr) {
	if s == nil || depth > maxDepth {
		return
	}
	if items := listItems(s); items != nil {
		if t, ok := inf.extract(items, depth+1); ok {
			*out = append(*out, t.Element())
		}
	}
	inf.collectListItems(s.Property("data"), depth+1, out)
	for _, comp := range s.Compositions {
		for _, branch := range comp.Branches {
			inf.collectListItems(branch, depth+1, out)
		}
	}
}

// IsGenericName reports names of conventional envelopes: "Response",
// "PageData" and anything ending in either.
func IsGenericName(name string) bool {
	return strings.HasSuffix(name, "Response") || strings.HasSuffix(name, "PageData")
}

func isGeneric(t TypeExpr) bool {
	name, ok := t.Element().BaseName()
	return ok && IsGenericName(name)
}

// pickPreferredResponse prefers an array candidate, then a non-generic one,
// then the first.
func pickPreferredResponse(candidates []TypeExpr) (TypeExpr, bool) {
	if len(candidates) == 0 {
		return TypeExpr{}, false
	}
	for _, c := range candidates {
		if c.Kind == Array {
			return c, true
		}
	}
	return pickPreferredListModel(candidates)
}

// pickPreferredListModel prefers a non-generic candidate, then the first.
func pickPreferredListModel(candidates []TypeExpr) (TypeExpr, bool) {
	if len(candidates) == 0 {
		return TypeExpr{}, false
	}
	for _, c := range candidates {
		if !isGeneric(c) {
			return c, true
		}
	}
	return candidates[0], true
}
