package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bndr/gotabulate"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/mark3labs/swagger2ts/internal/emitter/tsemitter"
	"github.com/mark3labs/swagger2ts/internal/ir"
	"github.com/mark3labs/swagger2ts/internal/logging"
	"github.com/mark3labs/swagger2ts/internal/pipeline"
	"github.com/mark3labs/swagger2ts/internal/spec"
)

// GenerateConfig captures all inputs of one generation run after merging
// defaults, config file values, and CLI overrides.
type GenerateConfig struct {
	Input     string
	Out       string
	Workspace string
	Overwrite bool
	DryRun    bool
	Verbose   bool

	HiddenPaths    []string
	URLPrefix      string
	PackageMap     map[string]string
	ModelFolders   map[string]string
	TagFolders     map[string]string
	IncludeTags    []string
	ExcludeTags    []string
	ParameterMerge string

	HTTPTemplate    string
	CustomImports   string
	PageResp        string
	RequestTemplate string

	Retries int
	Timeout time.Duration

	ConfigPath string

	// invalid holds the entry's configuration error in a batch, where it
	// fails that entry only.
	invalid error
}

func defaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		ParameterMerge: string(ir.MergeAppend),
		HTTPTemplate:   string(tsemitter.TemplateFetch),
	}
}

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a TypeScript client from an OpenAPI document",
		Long: "Generate TypeScript models and per-tag request functions from an OpenAPI v3 document. " +
			"Options can be provided via flags, a swagger2ts.yaml config file, or defaults. " +
			"A config file listing several entries under `swagger` runs them as a batch.",
		Example: strings.TrimSpace(`  swagger2ts generate --input openapi.json --out src/api
  swagger2ts generate --input https://example.com/v3/api-docs --out src/api --url-prefix /api --overwrite
  swagger2ts --config swagger2ts.yaml generate --dry-run`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgs, err := resolveGenerateConfigs(cmd)
			if err != nil {
				return err
			}
			return generateRunner(cmd.Context(), cfgs)
		},
	}

	flags := cmd.Flags()
	flags.String("input", "", "Path or URL to the OpenAPI document (http, https, file:// or a local path)")
	flags.String("out", "", "Output directory, relative to the workspace root")
	flags.String("workspace", "", "Workspace root for relative output paths and config discovery")
	flags.Bool("overwrite", false, "Remove the output directory before writing")
	flags.Bool("dry-run", false, "Preview planned outputs without writing files")
	flags.StringSlice("hide-path", nil, "Exclude these exact paths from generation")
	flags.String("url-prefix", "", "Prefix prepended to every request path")
	flags.StringToString("package-map", nil, "Map a schema namespace prefix to a model folder (ns=folder)")
	flags.StringToString("model-folder", nil, "Place a schema in a model folder (Name=folder)")
	flags.StringToString("tag-folder", nil, "Override the folder of a tag (tag=folder)")
	flags.StringSlice("include-tags", nil, "Only include operations with these tags")
	flags.StringSlice("exclude-tags", nil, "Exclude operations with these tags")
	flags.String("parameter-merge", "", "How operation parameters combine with path parameters (append|override)")
	flags.String("http-template", "", "Transport used by the generated request function (fetch|axios)")
	flags.Int("retries", 0, "Retry failed document downloads this many times")
	flags.Duration("timeout", 0, "Per-request timeout for document downloads (0 disables)")

	return cmd
}

func resolveGenerateConfigs(cmd *cobra.Command) ([]*GenerateConfig, error) {
	flags := cmd.Flags()
	configFlag, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	workspaceFlag, err := flags.GetString("workspace")
	if err != nil {
		return nil, err
	}
	configPath, err := discoverConfig(configFlag, strings.TrimSpace(workspaceFlag))
	if err != nil {
		return nil, err
	}

	entries := []map[string]any{nil}
	if configPath != "" {
		cf, err := readConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		if len(cf.Entries) > 0 {
			entries = cf.Entries
		}
	}

	batch := len(entries) > 1
	cfgs := make([]*GenerateConfig, 0, len(entries))
	for _, entry := range entries {
		cfg := defaultGenerateConfig()
		var entryErr error
		if configPath != "" {
			cfg.ConfigPath = configPath
			if abs, err := filepath.Abs(configPath); err == nil {
				cfg.Workspace = filepath.Dir(abs)
			}
			entryErr = applyConfigEntry(&cfg, entry, configPath)
		}
		if err := applyGenerateFlagOverrides(flags, &cfg); err != nil {
			return nil, err
		}
		cfg.normalize()
		if entryErr == nil {
			entryErr = cfg.validate()
		}
		if entryErr != nil {
			if !batch {
				return nil, entryErr
			}
			cfg.invalid = entryErr
		}
		cfgs = append(cfgs, &cfg)
	}
	return cfgs, nil
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	str := func(name string, dst *string) error {
		if !flags.Changed(name) {
			return nil
		}
		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = strings.TrimSpace(value)
		return nil
	}
	boolean := func(name string, dst *bool) error {
		if !flags.Changed(name) {
			return nil
		}
		value, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*dst = value
		return nil
	}
	slice := func(name string, dst *[]string) error {
		if !flags.Changed(name) {
			return nil
		}
		value, err := flags.GetStringSlice(name)
		if err != nil {
			return err
		}
		*dst = sanitizeTags(value)
		return nil
	}
	mapping := func(name string, dst *map[string]string) error {
		if !flags.Changed(name) {
			return nil
		}
		value, err := flags.GetStringToString(name)
		if err != nil {
			return err
		}
		*dst = value
		return nil
	}

	steps := []error{
		str("input", &cfg.Input),
		str("out", &cfg.Out),
		str("workspace", &cfg.Workspace),
		boolean("overwrite", &cfg.Overwrite),
		boolean("dry-run", &cfg.DryRun),
		boolean("verbose", &cfg.Verbose),
		slice("hide-path", &cfg.HiddenPaths),
		str("url-prefix", &cfg.URLPrefix),
		mapping("package-map", &cfg.PackageMap),
		mapping("model-folder", &cfg.ModelFolders),
		mapping("tag-folder", &cfg.TagFolders),
		slice("include-tags", &cfg.IncludeTags),
		slice("exclude-tags", &cfg.ExcludeTags),
		str("parameter-merge", &cfg.ParameterMerge),
		str("http-template", &cfg.HTTPTemplate),
	}
	if flags.Changed("retries") {
		value, err := flags.GetInt("retries")
		steps = append(steps, err)
		cfg.Retries = value
	}
	if flags.Changed("timeout") {
		value, err := flags.GetDuration("timeout")
		steps = append(steps, err)
		cfg.Timeout = value
	}
	return errors.Join(steps...)
}

func (c *GenerateConfig) normalize() {
	c.Input = strings.TrimSpace(c.Input)
	c.Out = strings.TrimSpace(c.Out)
	c.Workspace = strings.TrimSpace(c.Workspace)
	c.URLPrefix = strings.TrimSpace(c.URLPrefix)
	c.ParameterMerge = strings.ToLower(strings.TrimSpace(c.ParameterMerge))
	if c.ParameterMerge == "" {
		c.ParameterMerge = string(ir.MergeAppend)
	}
	c.HTTPTemplate = strings.ToLower(strings.TrimSpace(c.HTTPTemplate))
	c.IncludeTags = sanitizeTags(c.IncludeTags)
	c.ExcludeTags = sanitizeTags(c.ExcludeTags)
}

func (c *GenerateConfig) validate() error {
	if c.Input == "" {
		return newUsageError("generate: --input is required (set via flag or config file)")
	}
	if c.Out == "" {
		return newUsageError("generate: --out is required (set via flag or config file)")
	}
	if c.Retries < 0 {
		return newUsageError(fmt.Sprintf("generate: --retries must not be negative, got %d", c.Retries))
	}
	opts := c.options()
	if err := opts.Validate(); err != nil {
		return newUsageError("generate: " + err.Error())
	}
	return nil
}

// options maps the CLI config onto pipeline options.
func (c *GenerateConfig) options() pipeline.Options {
	var load []spec.Option
	if c.Retries > 0 {
		load = append(load, spec.WithRetries(c.Retries))
	}
	if c.Timeout > 0 {
		load = append(load, spec.WithHTTPTimeout(c.Timeout))
	}

	return pipeline.Options{
		Input:             c.Input,
		WorkspaceRoot:     c.Workspace,
		OutputDir:         c.Out,
		Overwrite:         c.Overwrite,
		DryRun:            c.DryRun,
		HiddenPaths:       c.HiddenPaths,
		URLPrefix:         c.URLPrefix,
		SchemasPackageMap: c.PackageMap,
		CustomModelFolder: c.ModelFolders,
		FolderMap:         c.TagFolders,
		IncludeTags:       c.IncludeTags,
		ExcludeTags:       c.ExcludeTags,
		ParameterMerge:    ir.MergeMode(c.ParameterMerge),
		BaseHTTP: tsemitter.BaseHTTPConfig{
			Template:        tsemitter.HTTPTemplate(c.HTTPTemplate),
			CustomImports:   c.CustomImports,
			PageResp:        c.PageResp,
			RequestTemplate: c.RequestTemplate,
		},
		Load: load,
	}
}

func runGenerate(ctx context.Context, cfgs []*GenerateConfig) error {
	verbose := false
	for _, c := range cfgs {
		verbose = verbose || c.Verbose
	}
	logger := logging.New(verbose, os.Stderr)
	defer func() { _ = logger.Sync() }()

	if len(cfgs) == 1 {
		cfg := cfgs[0]
		sum, err := pipeline.Run(ctx, cfg.options(), logger)
		if err != nil {
			return friendlyError(err, cfg.Out)
		}
		report(os.Stdout, cfg, sum)
		return nil
	}

	results := make([]pipeline.BatchResult, len(cfgs))
	var (
		entries []pipeline.Options
		slots   []int
	)
	for i, c := range cfgs {
		opts := c.options()
		if c.invalid != nil {
			logger.Warn("skipping invalid entry", zap.Int("entry", i), zap.String("outputDir", c.Out), zap.Error(c.invalid))
			results[i] = pipeline.BatchResult{Options: opts, Err: c.invalid}
			continue
		}
		entries = append(entries, opts)
		slots = append(slots, i)
	}
	for j, r := range pipeline.RunBatch(ctx, entries, logger) {
		results[slots[j]] = r
	}
	fmt.Fprintln(os.Stdout, renderBatchTable(results))
	fmt.Fprintln(os.Stdout, pipeline.FormatBatch(results))
	return pipeline.Err(results)
}

func report(w io.Writer, cfg *GenerateConfig, sum *pipeline.Summary) {
	if cfg.DryRun {
		paths := make([]string, 0, len(sum.Files))
		for _, f := range sum.Files {
			paths = append(paths, f.RelPath)
		}
		printPlan(w, sum.OutputRoot, len(sum.Files), paths)
		return
	}
	fmt.Fprintf(w, "Generated %d tags, %d operations into %s (%d written, %d unchanged)\n",
		sum.TagCount, sum.OperationCount, sum.OutputRoot, sum.Written, sum.Unchanged)
}

func printPlan(w io.Writer, outDir string, count int, relPaths []string) {
	fmt.Fprintf(w, "Planned writes to %s (%d files):\n", outDir, count)
	for _, p := range relPaths {
		fmt.Fprintf(w, "- %s\n", p)
	}
}

func renderBatchTable(results []pipeline.BatchResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status, target, detail := "ok", "", ""
		if r.Err != nil {
			status, target, detail = "failed", r.Options.OutputDir, r.Err.Error()
		} else {
			target = r.Summary.OutputRoot
			detail = fmt.Sprintf("%d tags, %d operations", r.Summary.TagCount, r.Summary.OperationCount)
		}
		rows = append(rows, []string{status, r.Options.Input, target, detail})
	}
	t := gotabulate.Create(rows)
	t.SetHeaders([]string{"Status", "Input", "Output", "Detail"})
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(60)
	return t.Render("grid")
}

// friendlyError maps structured failures onto usage errors with hints.
func friendlyError(err error, outDir string) error {
	var se *spec.SpecError
	if errors.As(err, &se) {
		msg := fmt.Sprintf("spec: %s", se.Message)
		if se.Location != "" {
			msg = fmt.Sprintf("%s\nLocation: %s", msg, se.Location)
		}

		var status *spec.StatusError
		if errors.As(err, &status) {
			msg = fmt.Sprintf("%s\nStatus: %d", msg, status.StatusCode)
		}
		return wrapUsage(msg, err)
	}
	var ce *pipeline.ConfigError
	if errors.As(err, &ce) {
		return wrapUsage("generate: "+ce.Error(), err)
	}
	return wrapOutputError(err, outDir)
}

func wrapOutputError(err error, outDir string) error {
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "permission") || strings.Contains(lower, "read-only") || strings.Contains(lower, "mkdir") || strings.Contains(lower, "rename") || strings.Contains(lower, "filesystem root") {
		return newUsageError(fmt.Sprintf("output error for %s: %s\nHint: choose a different --out or check directory permissions.", outDir, msg))
	}
	return err
}

func sanitizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
