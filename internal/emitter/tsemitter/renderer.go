// Package tsemitter renders an emission plan as a TypeScript client: model
// classes with JSON codecs, per-tag request modules, the shared base_http
// module and the barrels tying them together.
package tsemitter

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/mark3labs/swagger2ts/internal/emitter"
)

// HTTPTemplate selects the transport used by the generated request function.
type HTTPTemplate string

const (
	TemplateFetch HTTPTemplate = "fetch"
	TemplateAxios HTTPTemplate = "axios"
)

// BaseHTTPConfig customizes the base_http module.
type BaseHTTPConfig struct {
	Template HTTPTemplate `yaml:"template"`
	// CustomImports are extra lines placed after the built-in imports.
	CustomImports string `yaml:"customImports"`
	// PageResp replaces the default PageData and PageResp declarations.
	PageResp string `yaml:"pageResp"`
	// RequestTemplate replaces the generated request function.
	RequestTemplate string `yaml:"requestTemplate"`
}

// Validate rejects unknown templates. The empty template means fetch.
func (c BaseHTTPConfig) Validate() error {
	switch c.Template {
	case "", TemplateFetch, TemplateAxios:
		return nil
	default:
		return fmt.Errorf("unknown http template %q (want %s or %s)", c.Template, TemplateFetch, TemplateAxios)
	}
}

// baseExports are the names the top-level barrel re-exports from base_http.
var baseExports = []string{
	"request", "buildQuery", "applyPathParams", "BASE_URL",
	"RequestOptions", "PageData", "PageResp",
}

// Renderer implements emitter.Renderer for TypeScript.
type Renderer struct {
	cfg BaseHTTPConfig
}

var _ emitter.Renderer = (*Renderer)(nil)

// New returns a renderer using cfg for the base_http module.
func New(cfg BaseHTTPConfig) *Renderer {
	return &Renderer{cfg: cfg}
}

// ReservedNames lists the identifiers exported by base_http plus the
// keywords a namespace alias cannot take.
func (r *Renderer) ReservedNames() []string {
	names := append([]string(nil), baseExports...)
	for word := range reservedWords {
		names = append(names, word)
	}
	sort.Strings(names)
	return names
}

// Render produces the artifacts in manifest order: base_http, models,
// model barrels, tag modules, then the top-level barrel.
func (r *Renderer) Render(p emitter.Plan) ([]emitter.Artifact, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	var out []emitter.Artifact
	add := func(rel, content string) {
		out = append(out, emitter.Artifact{RelPath: rel, Content: []byte(content)})
	}

	add("base_http.ts", renderBaseHTTP(r.cfg))
	add("base_http.d.ts", renderBaseHTTPDecl(r.cfg))

	for _, m := range p.Models {
		base := path.Join(emitter.ModelsDir, m.RelPath)
		add(base+".ts", renderModel(m))
		add(base+".d.ts", renderModelDecl(m))
	}
	models := renderModelsIndex(p.Models)
	add(path.Join(emitter.ModelsDir, "index.ts"), models)
	add(path.Join(emitter.ModelsDir, "index.d.ts"), models)
	for _, f := range p.Folders {
		index := renderFolderIndex(f)
		add(path.Join(emitter.ModelsDir, f.Folder, "index.ts"), index)
		add(path.Join(emitter.ModelsDir, f.Folder, "index.d.ts"), index)
	}

	for _, tf := range p.Tags {
		impl, decl := renderTag(tf)
		add(path.Join(tf.Dir, "request.ts"), impl)
		add(path.Join(tf.Dir, "request.d.ts"), decl)
	}

	index := renderIndex(p.Tags)
	add("index.ts", index)
	add("index.d.ts", index)
	return out, nil
}

func renderModelsIndex(models []emitter.ModelFile) string {
	if len(models) == 0 {
		return "export {};\n"
	}
	var b strings.Builder
	for _, m := range models {
		fmt.Fprintf(&b, "export * from './%s';\n", m.RelPath)
	}
	return b.String()
}

func renderFolderIndex(f emitter.FolderIndex) string {
	var b strings.Builder
	for _, name := range f.Entries {
		fmt.Fprintf(&b, "export * from './%s';\n", name)
	}
	return b.String()
}

func renderIndex(tags []emitter.TagFile) string {
	lines := []string{
		"export * from './base_http';",
		"export * as models from './models';",
	}
	for _, tf := range tags {
		lines = append(lines, fmt.Sprintf("export * as %s from './%s/request';", tf.Alias, tf.Dir))
	}
	return strings.Join(lines, "\n") + "\n"
}
