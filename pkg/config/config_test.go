package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Language != "en" {
		t.Errorf("default language = %q, want en", cfg.Language)
	}
	if cfg.Units != "mm" {
		t.Errorf("default units = %q, want mm", cfg.Units)
	}
	if cfg.Mesh.ShankSegments != 32 {
		t.Errorf("default shank segments = %d, want 32", cfg.Mesh.ShankSegments)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("language: ru\nmetal:\n  default: platinum\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Language != "ru" {
		t.Errorf("language = %q, want ru", cfg.Language)
	}
	if cfg.Metal.Default != "platinum" {
		t.Errorf("metal = %q, want platinum", cfg.Metal.Default)
	}
	// Untouched fields keep their defaults.
	if cfg.Mesh.ShankSegments != 32 {
		t.Errorf("shank segments = %d, want default 32", cfg.Mesh.ShankSegments)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad units", "units: inch\n"},
		{"bad segments", "mesh:\n  shank_segments: 2\n"},
		{"custom without density", "metal:\n  default: custom\n"},
		{"malformed yaml", "language: [unclosed\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected load error")
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
