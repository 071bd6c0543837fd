// Package config loads server configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default locations, relative to the project root.
const (
	DefaultDataDir     = ".featflow"
	DefaultFeaturesDir = ".features"
	FileName           = "config.yaml"
	databaseFile       = "workflows.db"
)

// Config is the server's resolved configuration.
type Config struct {
	// ProjectRoot anchors all relative paths. Not read from YAML; set
	// by the caller before Resolve.
	ProjectRoot string `yaml:"-"`

	// DataDir holds the database and config file.
	DataDir string `yaml:"data_dir"`

	// FeaturesDir is the root under which per-project feature
	// directories are created.
	FeaturesDir string `yaml:"features_dir"`

	// TemplatesDir optionally overrides the embedded phase templates.
	TemplatesDir string `yaml:"templates_dir"`

	// LogLevel mirrors the LOG_LEVEL environment variable.
	LogLevel string `yaml:"log_level"`
}

// Load reads the config file under root's data dir, applies defaults
// and environment overrides, and resolves all paths against root.
// A missing config file is not an error; defaults apply.
func Load(root string) (*Config, error) {
	cfg := &Config{
		ProjectRoot: root,
		DataDir:     DefaultDataDir,
		FeaturesDir: DefaultFeaturesDir,
	}

	path := filepath.Join(root, DefaultDataDir, FileName)
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.resolve()
	return cfg, nil
}

// applyEnv lets environment variables win over the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("FEATFLOW_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("FEATFLOW_FEATURES_DIR"); v != "" {
		c.FeaturesDir = v
	}
	if v := os.Getenv("FEATFLOW_TEMPLATES_DIR"); v != "" {
		c.TemplatesDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// resolve makes relative paths absolute under the project root.
func (c *Config) resolve() {
	c.DataDir = c.absolute(c.DataDir)
	c.FeaturesDir = c.absolute(c.FeaturesDir)
	if c.TemplatesDir != "" {
		c.TemplatesDir = c.absolute(c.TemplatesDir)
	}
}

func (c *Config) absolute(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ProjectRoot, path)
}

// DatabasePath is the SQLite file location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, databaseFile)
}
