package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the workspace when --config is absent.
const DefaultConfigFile = "swagger2ts.yaml"

// configFile is a parsed config file: one raw entry per generation run.
type configFile struct {
	Path    string
	Entries []map[string]any
}

// discoverConfig returns the explicit path, or the default file in the
// workspace when it exists.
func discoverConfig(explicit, workspace string) (string, error) {
	if p := strings.TrimSpace(explicit); p != "" {
		return p, nil
	}
	root := workspace
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		root = wd
	}
	candidate := filepath.Join(root, DefaultConfigFile)
	if st, err := os.Stat(candidate); err == nil && st.Mode().IsRegular() {
		return candidate, nil
	}
	return "", nil
}

func readConfigFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newUsageError(fmt.Sprintf("read config file %q: %v", path, err))
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, newUsageError(fmt.Sprintf("parse config file %q: %v", path, err))
	}
	cf := &configFile{Path: path}
	if raw == nil {
		return cf, nil
	}

	swaggerKey := ""
	for key := range raw {
		if normalizeKey(key) == "swagger" {
			swaggerKey = key
		}
	}
	if swaggerKey == "" {
		cf.Entries = []map[string]any{raw}
		return cf, nil
	}
	for key := range raw {
		if key != swaggerKey {
			return nil, newUsageError(fmt.Sprintf("config file %q: unknown field %q next to %q", path, key, swaggerKey))
		}
	}

	entries, err := swaggerEntries(raw[swaggerKey])
	if err != nil {
		return nil, newUsageError(fmt.Sprintf("config file %q: %s: %v", path, swaggerKey, err))
	}
	cf.Entries = entries
	return cf, nil
}

// swaggerEntries accepts a single entry, a list of entries, or a map whose
// items key holds the list. Null list elements are skipped.
func swaggerEntries(v any) ([]map[string]any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return entryList(val)
	case map[string]any:
		for key, items := range val {
			if normalizeKey(key) != "items" {
				continue
			}
			list, ok := items.([]any)
			if !ok {
				return nil, fmt.Errorf("items: expected list, got %T", items)
			}
			return entryList(list)
		}
		return []map[string]any{val}, nil
	default:
		return nil, fmt.Errorf("expected map or list, got %T", v)
	}
}

func entryList(items []any) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		if item == nil {
			continue
		}
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("entry %d: expected map, got %T", i, item)
		}
		out = append(out, m)
	}
	return out, nil
}

// applyConfigEntry copies the recognized fields of one entry onto cfg.
func applyConfigEntry(cfg *GenerateConfig, entry map[string]any, path string) error {
	keys := make([]string, 0, len(entry))
	for key := range entry {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := entry[key]
		if err := applyConfigField(cfg, key, value); err != nil {
			if errors.Is(err, errUnknownField) {
				return newUsageError(fmt.Sprintf("config file %q: unknown field %q", path, key))
			}
			return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
		}
	}
	return nil
}

var errUnknownField = errors.New("unknown field")

func applyConfigField(cfg *GenerateConfig, key string, value any) error {
	var err error
	switch normalizeKey(key) {
	case "input", "jsonurl", "url":
		cfg.Input, err = valueAsString(value)
	case "out", "outputdir", "output":
		cfg.Out, err = valueAsString(value)
	case "workspace", "workspaceroot":
		cfg.Workspace, err = valueAsString(value)
	case "overwrite", "force":
		cfg.Overwrite, err = valueAsBool(value)
	case "dryrun":
		cfg.DryRun, err = valueAsBool(value)
	case "verbose":
		cfg.Verbose, err = valueAsBool(value)
	case "pathhidden", "hiddenpaths", "hidepaths":
		cfg.HiddenPaths, err = valueAsStringSlice(value)
	case "urlprefix":
		cfg.URLPrefix, err = valueAsString(value)
	case "schemaspackagemap", "packagemap":
		cfg.PackageMap, err = valueAsStringMap(value)
	case "custommodelfolder", "modelfolders":
		cfg.ModelFolders, err = valueAsStringMap(value)
	case "foldermap", "tagfolders":
		cfg.TagFolders, err = valueAsStringMap(value)
	case "includetags":
		var list []string
		list, err = valueAsStringSlice(value)
		cfg.IncludeTags = sanitizeTags(list)
	case "excludetags":
		var list []string
		list, err = valueAsStringSlice(value)
		cfg.ExcludeTags = sanitizeTags(list)
	case "parametermerge":
		cfg.ParameterMerge, err = valueAsString(value)
	case "retries":
		cfg.Retries, err = valueAsInt(value)
	case "timeout":
		cfg.Timeout, err = valueAsDuration(value)
	case "basehttp":
		err = applyBaseHTTP(cfg, value)
	default:
		return errUnknownField
	}
	return err
}

func applyBaseHTTP(cfg *GenerateConfig, value any) error {
	if value == nil {
		return nil
	}
	m, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("expected map, got %T", value)
	}
	for key, v := range m {
		var err error
		switch normalizeKey(key) {
		case "template":
			cfg.HTTPTemplate, err = valueAsString(v)
		case "customimports":
			cfg.CustomImports, err = valueAsText(v)
		case "pageresp":
			cfg.PageResp, err = valueAsText(v)
		case "requesttemplate":
			cfg.RequestTemplate, err = valueAsText(v)
		default:
			return fmt.Errorf("unknown field %q", key)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

// valueAsText keeps multi-line template text as written, or joins a list
// of lines.
func valueAsText(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case nil:
		return "", nil
	case []any:
		lines := make([]string, 0, len(val))
		for idx, elem := range val {
			s, ok := elem.(string)
			if !ok {
				return "", fmt.Errorf("element %d: expected string, got %T", idx, elem)
			}
			lines = append(lines, s)
		}
		return strings.Join(lines, "\n"), nil
	default:
		return "", fmt.Errorf("expected string or list, got %T", v)
	}
}

func valueAsStringSlice(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, nil
		}
		return splitAndTrim(val), nil
	case []any:
		items := make([]string, 0, len(val))
		for idx, elem := range val {
			str, err := valueAsString(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", idx, err)
			}
			if str != "" {
				items = append(items, str)
			}
		}
		return items, nil
	default:
		return nil, fmt.Errorf("expected string or list, got %T", v)
	}
}

// valueAsStringMap keeps empty values; an empty folder mapping is
// meaningful.
func valueAsStringMap(v any) (map[string]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		out := make(map[string]string, len(val))
		for key, elem := range val {
			str, err := valueAsString(elem)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			out[key] = str
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(val))
		switch trimmed {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n":
			return false, nil
		case "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}

func valueAsInt(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

// valueAsDuration accepts a Go duration string or a number of seconds.
func valueAsDuration(v any) (time.Duration, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case int:
		return time.Duration(val) * time.Second, nil
	case float64:
		return time.Duration(val * float64(time.Second)), nil
	case string:
		if strings.TrimSpace(val) == "" {
			return 0, nil
		}
		return time.ParseDuration(strings.TrimSpace(val))
	default:
		return 0, fmt.Errorf("expected duration, got %T", v)
	}
}

func splitAndTrim(csv string) []string {
	parts := strings.Split(csv, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
