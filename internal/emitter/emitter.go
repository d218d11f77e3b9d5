package emitter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Artifact is one generated file.
type Artifact struct {
	// RelPath is slash-separated and relative to the output root.
	RelPath string
	Content []byte
}

// Renderer produces target-language artifacts from a plan.
type Renderer interface {
	// ReservedNames are identifiers the top-level barrel already exports.
	ReservedNames() []string
	Render(p Plan) ([]Artifact, error)
}

// PlannedFile describes an artifact that will be written.
type PlannedFile struct {
	RelPath string
	Size    int
	Mode    os.FileMode
}

// Options controls how artifacts are persisted.
type Options struct {
	OutDir    string
	Overwrite bool
	DryRun    bool
}

// Result reports what was written, or would be in a dry run.
type Result struct {
	OutputRoot string
	Planned    []PlannedFile
	Written    int
	Unchanged  int
}

// Emit renders the plan and persists the artifacts.
func Emit(p Plan, r Renderer, opts Options) (*Result, error) {
	artifacts, err := r.Render(p)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return Write(artifacts, opts)
}

// Write persists artifacts below opts.OutDir in order. With Overwrite the
// output root is removed first. Files whose content is unchanged are left
// untouched.
func Write(artifacts []Artifact, opts Options) (*Result, error) {
	if err := checkUnique(artifacts); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(opts.OutDir)
	if err != nil {
		return nil, fmt.Errorf("resolve out dir: %w", err)
	}
	res := &Result{OutputRoot: abs, Planned: make([]PlannedFile, 0, len(artifacts))}
	for _, a := range artifacts {
		res.Planned = append(res.Planned, PlannedFile{RelPath: a.RelPath, Size: len(a.Content), Mode: 0o644})
	}
	if opts.DryRun {
		return res, nil
	}

	if opts.Overwrite {
		if filepath.Dir(abs) == abs {
			return nil, fmt.Errorf("emitter: refusing to remove filesystem root %q", abs)
		}
		if err := os.RemoveAll(abs); err != nil {
			return nil, fmt.Errorf("remove output directory %s: %w", abs, err)
		}
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}

	for _, a := range artifacts {
		p := filepath.Join(abs, filepath.FromSlash(a.RelPath))
		if existing, err := os.ReadFile(p); err == nil && bytes.Equal(existing, a.Content) {
			res.Unchanged++
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}
		// atomic write via temp file + rename
		tmp := p + ".tmp-" + time.Now().Format("20060102150405")
		if err := os.WriteFile(tmp, a.Content, 0o644); err != nil {
			return nil, fmt.Errorf("write temp %s: %w", a.RelPath, err)
		}
		if err := os.Rename(tmp, p); err != nil {
			_ = os.Remove(tmp)
			return nil, fmt.Errorf("rename %s: %w", a.RelPath, err)
		}
		res.Written++
	}
	return res, nil
}

func checkUnique(artifacts []Artifact) error {
	seen := make(map[string]bool, len(artifacts))
	var dups []string
	for _, a := range artifacts {
		if a.RelPath == "" {
			return errors.New("emitter: artifact with empty path")
		}
		if seen[a.RelPath] {
			dups = append(dups, a.RelPath)
		}
		seen[a.RelPath] = true
	}
	if len(dups) > 0 {
		sort.Strings(dups)
		return fmt.Errorf("emitter: duplicate artifact paths: %v", dups)
	}
	return nil
}
