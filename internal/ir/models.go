package ir

import (
	"strings"

	"github.com/mark3labs/swagger2ts/internal/naming"
	"github.com/mark3labs/swagger2ts/internal/spec"
)

// ModelOptions controls folder placement of collected models.
type ModelOptions struct {
	// PackageMap maps a dotted namespace prefix to a folder. An explicit
	// empty value places the model at the models root.
	PackageMap map[string]string
	// CustomFolders maps a raw schema key or a normalized name to a folder.
	CustomFolders map[string]string
}

// CollectModels returns one model per components.schemas entry that has a
// properties map, in document order, together with the name registry.
func CollectModels(doc *spec.Document, opts ModelOptions) ([]ModelDef, *Registry) {
	type entry struct {
		raw    string
		schema *spec.Schema
	}
	var entries []entry
	doc.Schemas().Each(func(key string, value *spec.Node) bool {
		if s := spec.NewSchema(value); s != nil && s.HasProperties {
			entries = append(entries, entry{raw: key, schema: s})
		}
		return true
	})

	names := naming.NewDisambiguator("")
	models := make([]ModelDef, len(entries))
	for i, e := range entries {
		base := naming.ModelName(e.raw)
		models[i] = ModelDef{
			RawName:     e.raw,
			Name:        names.Claim(base),
			Description: e.schema.Description,
			Folder:      resolveModelFolder(e.raw, base, opts),
		}
	}

	reg := NewRegistry(models)
	resolver := NewResolver(reg)
	for i, e := range entries {
		props := naming.NewDisambiguator("")
		models[i].Properties = make([]ModelProperty, 0, len(e.schema.Properties))
		for _, p := range e.schema.Properties {
			prop := ModelProperty{
				Name:         props.Claim(naming.PropertyName(p.Name)),
				OriginalName: p.Name,
				Type:         resolver.Resolve(p.Schema, true),
				Required:     e.schema.IsRequired(p.Name),
			}
			if p.Schema != nil {
				prop.Description = p.Schema.Description
			}
			models[i].Properties = append(models[i].Properties, prop)
		}
	}
	return models, reg
}

// resolveModelFolder applies, first match wins: a custom folder keyed by raw
// name, a custom folder keyed by normalized name, the package map keyed by
// namespace, and finally the models root.
func resolveModelFolder(raw, normalized string, opts ModelOptions) string {
	if f := strings.TrimSpace(opts.CustomFolders[raw]); f != "" {
		return naming.SanitizeFolderPath(f)
	}
	if f := strings.TrimSpace(opts.CustomFolders[normalized]); f != "" {
		return naming.SanitizeFolderPath(f)
	}
	if f, ok := opts.PackageMap[naming.Namespace(raw)]; ok {
		return naming.SanitizeFolderPath(f)
	}
	return ""
}
