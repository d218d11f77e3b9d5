package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestInit_WritesSampleConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "swagger2ts.yaml")

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"init", "--out", path})

	if err := root.Execute(); err != nil {
		t.Fatalf("init execute: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "swagger2ts configuration") {
		t.Fatalf("unexpected config contents: %s", s)
	}

	cf, err := readConfigFile(path)
	if err != nil {
		t.Fatalf("sample config must parse: %v", err)
	}
	if len(cf.Entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(cf.Entries))
	}
	cfg := defaultGenerateConfig()
	if err := applyConfigEntry(&cfg, cf.Entries[0], path); err != nil {
		t.Fatalf("apply sample entry: %v", err)
	}
	if cfg.Out != "src/api" || !strings.HasPrefix(cfg.Input, "http://") {
		t.Fatalf("unexpected sample values: %+v", cfg)
	}
}

func TestInit_SampleIsValidYAML(t *testing.T) {
	t.Parallel()
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(sampleConfigYAML), &doc); err != nil {
		t.Fatalf("sample config yaml: %v", err)
	}
	if _, ok := doc["swagger"]; !ok {
		t.Fatalf("sample config must use the swagger key: %v", doc)
	}
}

func TestInit_ExistingWithoutForce(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("prewrite: %v", err)
	}

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"init", "--out", path})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected error for existing file without --force")
	}
	if _, ok := err.(usageError); !ok {
		t.Fatalf("expected usage error, got %T: %v", err, err)
	}

	root = NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"init", "--out", path, "--force"})
	if err := root.Execute(); err != nil {
		t.Fatalf("init --force: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) == "x" {
		t.Fatalf("expected --force to replace the file")
	}
}
