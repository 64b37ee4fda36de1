package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/meshc/pkg/fixmesh"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Output.Dir != "" {
		t.Errorf("expected empty output dir, got %s", cfg.Output.Dir)
	}
	if cfg.Output.Overflow != "wrap" {
		t.Errorf("expected overflow 'wrap', got %s", cfg.Output.Overflow)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meshc.yaml")

	yamlContent := `
output:
  dir: "build/gen"
  overflow: strict

logging:
  level: "debug"
  log_file: "meshc.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Output.Dir != "build/gen" {
		t.Errorf("expected output dir build/gen, got %s", cfg.Output.Dir)
	}
	policy, err := cfg.OverflowPolicy()
	if err != nil {
		t.Fatalf("unexpected policy error: %v", err)
	}
	if policy != fixmesh.OverflowStrict {
		t.Errorf("expected strict policy, got %s", policy)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "meshc.log" {
		t.Errorf("expected log file 'meshc.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partial.yaml")

	if err := os.WriteFile(configPath, []byte("logging:\n  level: warn\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Unset values keep their defaults
	if cfg.Output.Overflow != "wrap" {
		t.Errorf("expected default overflow, got %s", cfg.Output.Overflow)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "output:\n  dir: [unclosed\n  invalid syntax here\n"},
		{"unknown overflow", "output:\n  overflow: clamp\n"},
		{"unknown level", "logging:\n  level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(tmpDir, tt.name+".yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if _, err := LoadFrom(configPath); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFromEmptyPath(t *testing.T) {
	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}
