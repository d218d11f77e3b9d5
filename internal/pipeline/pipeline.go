package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mark3labs/swagger2ts/internal/emitter"
	"github.com/mark3labs/swagger2ts/internal/emitter/tsemitter"
	"github.com/mark3labs/swagger2ts/internal/ir"
	"github.com/mark3labs/swagger2ts/internal/logging"
	"github.com/mark3labs/swagger2ts/internal/spec"
)

// Summary reports one finished run.
type Summary struct {
	TagCount       int
	OperationCount int
	OutputRoot     string
	Files          []emitter.PlannedFile
	Written        int
	Unchanged      int
}

// Generation is the resolved content of a document, before rendering.
type Generation struct {
	Models     []ir.ModelDef
	Registry   *ir.Registry
	Operations []ir.Operation
	Groups     []emitter.TagGroup
	Plan       emitter.Plan
	// OperationCount counts distinct operations that made it into a group.
	OperationCount int
}

// Run executes one generation run.
func Run(ctx context.Context, opts Options, logger *zap.Logger) (*Summary, error) {
	log := logging.OrNop(logger)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	root, err := opts.OutputRoot()
	if err != nil {
		return nil, &ConfigError{Field: "outputDir", Message: err.Error()}
	}

	doc, err := loadDocument(ctx, opts, log)
	if err != nil {
		return nil, err
	}
	log.Debug("document loaded", zap.String("openapi", doc.OpenAPIVersion()), zap.String("title", doc.Title()))

	renderer := tsemitter.New(opts.BaseHTTP)
	gen := Generate(doc, opts, renderer.ReservedNames())
	log.Debug("collected",
		zap.Int("models", len(gen.Models)),
		zap.Int("operations", len(gen.Operations)),
		zap.Int("tags", len(gen.Groups)),
	)

	res, err := emitter.Emit(gen.Plan, renderer, emitter.Options{
		OutDir:    root,
		Overwrite: opts.Overwrite,
		DryRun:    opts.DryRun,
	})
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", root, err)
	}

	sum := &Summary{
		TagCount:       len(gen.Groups),
		OperationCount: gen.OperationCount,
		OutputRoot:     res.OutputRoot,
		Files:          res.Planned,
		Written:        res.Written,
		Unchanged:      res.Unchanged,
	}
	log.Info("generated",
		zap.String("out", sum.OutputRoot),
		zap.Int("tags", sum.TagCount),
		zap.Int("operations", sum.OperationCount),
		zap.Int("written", sum.Written),
		zap.Int("unchanged", sum.Unchanged),
		zap.Bool("dryRun", opts.DryRun),
	)
	return sum, nil
}

func loadDocument(ctx context.Context, opts Options, log *zap.Logger) (*spec.Document, error) {
	if opts.OpenAPI != nil {
		log.Debug("converting in-memory document")
		return spec.FromOpenAPI3(opts.OpenAPI)
	}
	input := opts.InputLocation()
	log.Debug("loading document", zap.String("input", input))
	return spec.Load(ctx, input, opts.Load...)
}

// Generate resolves doc into models, operations and the emission plan.
// It performs no I/O.
func Generate(doc *spec.Document, opts Options, reservedAliases []string) *Generation {
	models, reg := ir.CollectModels(doc, ir.ModelOptions{
		PackageMap:    opts.SchemasPackageMap,
		CustomFolders: opts.CustomModelFolder,
	})
	ops := ir.CollectOperations(doc, ir.OperationOptions{
		HiddenPaths:    opts.HiddenPaths,
		URLPrefix:      opts.URLPrefix,
		ParameterMerge: opts.ParameterMerge,
	})
	groups, count := GroupByTag(ops, reg, opts.IncludeTags, opts.ExcludeTags)
	return &Generation{
		Models:         models,
		Registry:       reg,
		Operations:     ops,
		Groups:         groups,
		OperationCount: count,
		Plan: emitter.NewPlan(models, groups, emitter.PlanOptions{
			FolderMap:       opts.FolderMap,
			ReservedAliases: reservedAliases,
		}),
	}
}

// GroupByTag projects every operation once and appends it to each of its
// tags, in first-seen tag order. Include and exclude filters apply per tag.
// The second result counts operations placed in at least one group.
func GroupByTag(ops []ir.Operation, reg *ir.Registry, include, exclude []string) ([]emitter.TagGroup, int) {
	allowed := tagFilter(include, exclude)
	var (
		groups []emitter.TagGroup
		index  = map[string]int{}
		count  int
	)
	for _, op := range ops {
		model := ir.Project(op, reg)
		placed := false
		for _, tag := range op.Tags {
			if !allowed(tag) {
				continue
			}
			i, ok := index[tag]
			if !ok {
				i = len(groups)
				index[tag] = i
				groups = append(groups, emitter.TagGroup{Tag: tag})
			}
			groups[i].Operations = append(groups[i].Operations, model)
			placed = true
		}
		if placed {
			count++
		}
	}
	return groups, count
}

func tagFilter(include, exclude []string) func(string) bool {
	inc := toSet(include)
	exc := toSet(exclude)
	return func(tag string) bool {
		if _, ok := exc[tag]; ok {
			return false
		}
		if len(inc) == 0 {
			return true
		}
		_, ok := inc[tag]
		return ok
	}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[s] = struct{}{}
	}
	return set
}
