// Package emitter turns resolved models and operations into a
// language-neutral emission plan, renders it through a Renderer and writes
// the resulting artifacts.
package emitter

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/mark3labs/swagger2ts/internal/ir"
	"github.com/mark3labs/swagger2ts/internal/naming"
)

// ModelsDir is the folder holding every model below the output root.
const ModelsDir = "models"

// CodecKind says how a property crosses the wire.
type CodecKind uint8

const (
	// Passthrough copies the wire value unchanged.
	Passthrough CodecKind = iota
	// ModelCodec decodes and encodes through the referenced model.
	ModelCodec
	// ModelArrayCodec maps every element through the referenced model.
	ModelArrayCodec
)

// Field is a model property together with its codec.
type Field struct {
	ir.ModelProperty
	Codec CodecKind
	// Model is the referenced model for ModelCodec and ModelArrayCodec.
	Model string
}

// Import is a dependency of one model file.
type Import struct {
	Name string
	// Path is relative to the importing file, without extension.
	Path string
}

// ModelFile is the plan for one model.
type ModelFile struct {
	Model ir.ModelDef
	// RelPath is the path below ModelsDir without extension.
	RelPath string
	Imports []Import
	Fields  []Field
}

// FolderIndex lists the models placed directly in one model subfolder.
type FolderIndex struct {
	Folder  string
	Entries []string
}

// TagGroup is the ordered operation list of one tag.
type TagGroup struct {
	Tag        string
	Operations []ir.OperationModel
}

// TagFile is the plan for one tag's request module.
type TagFile struct {
	Tag   string
	Dir   string
	Alias string
	// Operations carry names unique within the file.
	Operations    []ir.OperationModel
	NeedsModels   bool
	NeedsPageResp bool
}

// Plan is everything a renderer needs to produce the output tree.
type Plan struct {
	Models  []ModelFile
	Folders []FolderIndex
	Tags    []TagFile
}

// PlanOptions configures tag folder placement.
type PlanOptions struct {
	FolderMap map[string]string
	// ReservedAliases are names a tag namespace alias must not take.
	ReservedAliases []string
}

// NewPlan builds the emission plan. Groups are emitted in the given order.
func NewPlan(models []ir.ModelDef, groups []TagGroup, opts PlanOptions) Plan {
	graph := NewGraph(models)
	p := Plan{Models: make([]ModelFile, 0, len(models))}
	for _, m := range models {
		p.Models = append(p.Models, ModelFile{
			Model:   m,
			RelPath: graph.Path(m.Name),
			Imports: graph.Imports(m.Name),
			Fields:  graph.Fields(m),
		})
	}
	p.Folders = folderIndexes(p.Models)

	dirs := naming.NewDisambiguator("-", ModelsDir)
	aliases := naming.NewDisambiguator("", append([]string{ModelsDir}, opts.ReservedAliases...)...)
	for _, g := range groups {
		dir := dirs.Claim(naming.TagDir(g.Tag, opts.FolderMap))
		alias := naming.CamelCase(dir)
		if alias == "" {
			alias = "api"
		}
		p.Tags = append(p.Tags, PlanTag(g.Tag, dir, aliases.Claim(alias), g.Operations))
	}
	return p
}

// PlanTag disambiguates operation names in encounter order before anything
// else reads them, then derives the file's import needs.
func PlanTag(tag, dir, alias string, ops []ir.OperationModel) TagFile {
	names := naming.NewDisambiguator("")
	tf := TagFile{Tag: tag, Dir: dir, Alias: alias, Operations: make([]ir.OperationModel, 0, len(ops))}
	for _, op := range ops {
		op.Name = names.Claim(op.Name)
		if op.UsesModels() {
			tf.NeedsModels = true
		}
		if op.ResponseWrapper == ir.PageWrapper {
			tf.NeedsPageResp = true
		}
		tf.Operations = append(tf.Operations, op)
	}
	return tf
}

func folderIndexes(files []ModelFile) []FolderIndex {
	var (
		out   []FolderIndex
		index = map[string]int{}
	)
	for _, f := range files {
		folder := f.Model.Folder
		if folder == "" {
			continue
		}
		i, ok := index[folder]
		if !ok {
			i = len(out)
			index[folder] = i
			out = append(out, FolderIndex{Folder: folder})
		}
		out[i].Entries = append(out[i].Entries, f.Model.Name)
	}
	return out
}

// Graph is the model dependency graph. Edges follow properties whose type
// names another model directly or as an array element. Cycles are allowed;
// nothing walks the graph transitively.
type Graph struct {
	paths map[string]string
	edges map[string][]string
}

// NewGraph indexes models by name.
func NewGraph(models []ir.ModelDef) *Graph {
	g := &Graph{paths: make(map[string]string, len(models)), edges: make(map[string][]string, len(models))}
	for _, m := range models {
		g.paths[m.Name] = path.Join(m.Folder, m.Name)
	}
	for _, m := range models {
		seen := map[string]bool{m.Name: true}
		for _, p := range m.Properties {
			dep, _, ok := p.Type.ModelRef()
			if !ok || seen[dep] {
				continue
			}
			if _, known := g.paths[dep]; !known {
				continue
			}
			seen[dep] = true
			g.edges[m.Name] = append(g.edges[m.Name], dep)
		}
	}
	return g
}

// Path returns the model's path below ModelsDir.
func (g *Graph) Path(name string) string { return g.paths[name] }

// Dependencies returns the distinct models name depends on, excluding
// itself, in property order.
func (g *Graph) Dependencies(name string) []string { return g.edges[name] }

// Imports resolves each dependency to a path relative to name's folder.
func (g *Graph) Imports(name string) []Import {
	deps := g.edges[name]
	if len(deps) == 0 {
		return nil
	}
	from := path.Dir(g.paths[name])
	out := make([]Import, 0, len(deps))
	for _, dep := range deps {
		out = append(out, Import{Name: dep, Path: RelativeImport(from, g.paths[dep])})
	}
	return out
}

// Fields assigns a codec to every property of m.
func (g *Graph) Fields(m ir.ModelDef) []Field {
	out := make([]Field, 0, len(m.Properties))
	for _, p := range m.Properties {
		f := Field{ModelProperty: p}
		if dep, array, ok := p.Type.ModelRef(); ok {
			if _, known := g.paths[dep]; known {
				f.Model = dep
				f.Codec = ModelCodec
				if array {
					f.Codec = ModelArrayCodec
				}
			}
		}
		out = append(out, f)
	}
	return out
}

// RelativeImport returns a module specifier for target as seen from the
// directory fromDir. Both are slash-separated and relative to one root.
func RelativeImport(fromDir, target string) string {
	rel, err := filepath.Rel(filepath.FromSlash(fromDir), filepath.FromSlash(target))
	if err != nil {
		rel = target
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}
