package config

import (
	"os"
	"path/filepath"
	"testing"
)

// --- Defaults ---

func TestLoad_Defaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if want := filepath.Join(root, DefaultDataDir); cfg.DataDir != want {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, want)
	}
	if want := filepath.Join(root, DefaultFeaturesDir); cfg.FeaturesDir != want {
		t.Errorf("FeaturesDir = %q, want %q", cfg.FeaturesDir, want)
	}
	if cfg.TemplatesDir != "" {
		t.Errorf("TemplatesDir = %q, want empty", cfg.TemplatesDir)
	}
	if want := filepath.Join(root, DefaultDataDir, "workflows.db"); cfg.DatabasePath() != want {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath(), want)
	}
}

// --- YAML file ---

func TestLoad_FromFile(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, DefaultDataDir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "features_dir: specs\ntemplates_dir: my-templates\n"
	if err := os.WriteFile(filepath.Join(dataDir, FileName), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if want := filepath.Join(root, "specs"); cfg.FeaturesDir != want {
		t.Errorf("FeaturesDir = %q, want %q", cfg.FeaturesDir, want)
	}
	if want := filepath.Join(root, "my-templates"); cfg.TemplatesDir != want {
		t.Errorf("TemplatesDir = %q, want %q", cfg.TemplatesDir, want)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, DefaultDataDir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, FileName), []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(root); err == nil {
		t.Error("Load = nil error for malformed yaml, want error")
	}
}

// --- Environment overrides ---

func TestLoad_EnvOverrides(t *testing.T) {
	root := t.TempDir()
	t.Setenv("FEATFLOW_FEATURES_DIR", "env-features")
	t.Setenv("FEATFLOW_DATA_DIR", "/abs/data")

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if want := filepath.Join(root, "env-features"); cfg.FeaturesDir != want {
		t.Errorf("FeaturesDir = %q, want %q", cfg.FeaturesDir, want)
	}
	// Absolute paths are kept as-is.
	if cfg.DataDir != "/abs/data" {
		t.Errorf("DataDir = %q, want /abs/data", cfg.DataDir)
	}
}
