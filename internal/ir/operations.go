package ir

import (
	"strings"

	"github.com/mark3labs/swagger2ts/internal/naming"
	"github.com/mark3labs/swagger2ts/internal/spec"
)

// MergeMode controls how path-item and operation parameters combine.
type MergeMode string

const (
	// MergeAppend concatenates path-item parameters before operation
	// parameters and keeps duplicates.
	MergeAppend MergeMode = "append"
	// MergeOverride lets an operation parameter replace the path-item
	// parameter with the same location and name, in place.
	MergeOverride MergeMode = "override"
)

// DefaultTag groups operations that carry no tags.
const DefaultTag = "default"

// OperationOptions filters and rewrites collected operations.
type OperationOptions struct {
	HiddenPaths    []string
	URLPrefix      string
	ParameterMerge MergeMode
}

// CollectOperations returns every operation of every retained path item,
// in document order.
func CollectOperations(doc *spec.Document, opts OperationOptions) []Operation {
	hidden := make(map[string]bool, len(opts.HiddenPaths))
	for _, p := range opts.HiddenPaths {
		hidden[p] = true
	}
	prefix := NormalizeURLPrefix(opts.URLPrefix)

	var ops []Operation
	doc.Paths().Each(func(path string, item *spec.Node) bool {
		if hidden[path] || !item.IsObject() {
			return true
		}
		shared := item.Get("parameters")
		item.Each(func(key string, value *spec.Node) bool {
			method, ok := methods[key]
			if !ok || !value.IsObject() {
				return true
			}
			ops = append(ops, Operation{
				Method:      method,
				Path:        JoinPath(prefix, path),
				SourcePath:  path,
				Summary:     value.Get("summary").StringValue(),
				OperationID: value.Get("operationId").StringValue(),
				Tags:        operationTags(value.Get("tags")),
				Parameters:  mergeParameters(shared, value.Get("parameters"), opts.ParameterMerge),
				RequestBody: value.Get("requestBody"),
				Responses:   value.Get("responses"),
			})
			return true
		})
		return true
	})
	return ops
}

// NormalizeURLPrefix trims the prefix, ensures a leading slash and drops a
// trailing one. An empty prefix stays empty.
func NormalizeURLPrefix(prefix string) string {
	p := strings.TrimSpace(prefix)
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimSuffix(p, "/")
}

// JoinPath prepends an already normalized prefix to path.
func JoinPath(prefix, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return prefix + path
}

func operationTags(n *spec.Node) []string {
	var tags []string
	for _, t := range n.Strings() {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return []string{DefaultTag}
	}
	return tags
}

func mergeParameters(shared, own *spec.Node, mode MergeMode) []*spec.Node {
	var out []*spec.Node
	if shared.IsArray() {
		out = append(out, shared.Items...)
	}
	if !own.IsArray() {
		return out
	}
	if mode != MergeOverride {
		return append(out, own.Items...)
	}
	index := make(map[string]int, len(out))
	for i, p := range out {
		if key, ok := paramKey(p); ok {
			index[key] = i
		}
	}
	for _, p := range own.Items {
		if key, ok := paramKey(p); ok {
			if i, exists := index[key]; exists {
				out[i] = p
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func paramKey(p *spec.Node) (string, bool) {
	name, in := p.Get("name").StringValue(), p.Get("in").StringValue()
	if name == "" || in == "" {
		return "", false
	}
	return in + ":" + name, true
}

// Project resolves an operation into its emission-ready form.
func Project(op Operation, reg *Registry) OperationModel {
	m := OperationModel{
		Name:    OperationName(op),
		Method:  strings.ToUpper(string(op.Method)),
		Path:    op.Path,
		Summary: op.Summary,
		HasBody: op.RequestBody.Truthy(),
	}
	m.PathParams, m.QueryParams = collectParameters(op.Parameters)
	m.BodyModel = resolveBodyModel(op.RequestBody, reg)
	if resp, ok := InferResponse(op.Responses, reg); ok {
		t := resp.Model
		m.ResponseModel = &t
		m.ResponseWrapper = resp.Wrapper
	}
	return m
}

// OperationName prefers operationId, then summary, when they carry an
// alphanumeric character; otherwise it combines method and path segments.
func OperationName(op Operation) string {
	if naming.HasAlnum(op.OperationID) {
		if name := naming.CamelCase(op.OperationID); name != "" {
			return name
		}
	}
	if naming.HasAlnum(op.Summary) {
		if name := naming.CamelCase(op.Summary); name != "" {
			return name
		}
	}
	path := op.SourcePath
	if path == "" {
		path = op.Path
	}
	tokens := []string{string(op.Method)}
	for _, seg := range strings.Split(path, "/") {
		seg = strings.NewReplacer("{", "", "}", "").Replace(seg)
		tokens = append(tokens, naming.Words(seg)...)
	}
	if name := naming.CamelCase(strings.Join(tokens, " ")); name != "" {
		return name
	}
	return naming.CamelCase(string(op.Method) + "Api")
}

// collectParameters keeps inline path and query parameters. Parameters
// expressed as references are dropped.
func collectParameters(params []*spec.Node) (path, query []ParameterInfo) {
	resolver := NewResolver(nil)
	for _, p := range params {
		if !p.IsObject() || p.Has("$ref") {
			continue
		}
		name := p.Get("name").StringValue()
		if name == "" {
			continue
		}
		loc := ParamLocation(p.Get("in").StringValue())
		if loc != InPath && loc != InQuery {
			continue
		}
		info := ParameterInfo{
			Name:        name,
			Location:    loc,
			Required:    p.Get("required").Truthy(),
			Type:        resolver.Resolve(spec.NewSchema(p.Get("schema")), false),
			Description: p.Get("description").StringValue(),
		}
		if loc == InPath {
			path = append(path, info)
		} else {
			query = append(query, info)
		}
	}
	return path, query
}

// resolveBodyModel takes the first content entry whose schema is a
// reference and looks it up in the registry.
func resolveBodyModel(body *spec.Node, reg *Registry) string {
	var model string
	body.Get("content").Each(func(_ string, media *spec.Node) bool {
		s := spec.NewSchema(media.Get("schema"))
		if s == nil || s.Ref == "" {
			return true
		}
		model, _ = reg.Lookup(naming.RefName(s.Ref))
		return false
	})
	return model
}
