// Package pipeline sequences one generation run: load, collect, project,
// plan, render and write.
package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/mark3labs/swagger2ts/internal/emitter/tsemitter"
	"github.com/mark3labs/swagger2ts/internal/ir"
	"github.com/mark3labs/swagger2ts/internal/spec"
)

// Options configures one generation run.
type Options struct {
	// Input is a URL, file:// URL or local path.
	Input string
	// OpenAPI is an already loaded document. When set it replaces Input.
	OpenAPI *openapi3.T
	// WorkspaceRoot anchors a relative OutputDir. Empty means the cwd.
	WorkspaceRoot string
	OutputDir     string
	Overwrite     bool
	DryRun        bool

	HiddenPaths       []string
	URLPrefix         string
	SchemasPackageMap map[string]string
	CustomModelFolder map[string]string
	FolderMap         map[string]string
	IncludeTags       []string
	ExcludeTags       []string
	ParameterMerge    ir.MergeMode

	BaseHTTP tsemitter.BaseHTTPConfig
	// Load is passed to spec.Load.
	Load []spec.Option
}

// ConfigError reports an invalid option before any I/O happens.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks required fields and option consistency.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.Input) == "" && o.OpenAPI == nil {
		return &ConfigError{Field: "input", Message: "document URL or path is required"}
	}
	if strings.TrimSpace(o.OutputDir) == "" {
		return &ConfigError{Field: "outputDir", Message: "output directory is required"}
	}
	switch o.ParameterMerge {
	case "", ir.MergeAppend, ir.MergeOverride:
	default:
		return &ConfigError{Field: "parameterMerge", Message: fmt.Sprintf("unsupported mode %q (allowed: %s, %s)", o.ParameterMerge, ir.MergeAppend, ir.MergeOverride)}
	}
	if overlap := intersect(o.IncludeTags, o.ExcludeTags); len(overlap) > 0 {
		return &ConfigError{Field: "tags", Message: "include/exclude tags overlap: " + strings.Join(overlap, ", ")}
	}
	if err := o.BaseHTTP.Validate(); err != nil {
		return &ConfigError{Field: "baseHttp", Message: err.Error()}
	}
	return nil
}

// OutputRoot resolves OutputDir against the workspace root.
func (o *Options) OutputRoot() (string, error) {
	out := filepath.Clean(strings.TrimSpace(o.OutputDir))
	if !filepath.IsAbs(out) {
		root := strings.TrimSpace(o.WorkspaceRoot)
		if root == "" {
			root = "."
		}
		out = filepath.Join(root, out)
	}
	return filepath.Abs(out)
}

// InputLocation resolves a relative local Input against the workspace root.
// URLs and absolute paths are returned as given.
func (o *Options) InputLocation() string {
	in := strings.TrimSpace(o.Input)
	root := strings.TrimSpace(o.WorkspaceRoot)
	if root == "" || in == "" || filepath.IsAbs(in) || strings.Contains(in, "://") {
		return in
	}
	return filepath.Join(root, in)
}

func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(a))
	for _, item := range a {
		set[item] = struct{}{}
	}
	var result []string
	for _, item := range b {
		if _, ok := set[item]; ok {
			result = append(result, item)
		}
	}
	return result
}
