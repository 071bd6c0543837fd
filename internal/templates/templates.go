// Package templates provides the seed documents copied into every new
// feature directory.
//
// Seeding is literal string substitution, not a templating language:
// each document carries the "[Feature Name]" placeholder token and
// nothing else is interpreted. Documents ship embedded in the binary; a
// project can override any of them by placing a file of the same name
// in its own templates directory.
package templates

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed seeds/*.md
var seedFS embed.FS

// Placeholder is the token replaced with the literal feature name.
const Placeholder = "[Feature Name]"

// SeedNames lists the phase documents seeded into a feature directory,
// one per workflow phase.
var SeedNames = []string{
	"user-stories.md",
	"architecture.md",
	"implementation.md",
	"testing-strategy.md",
}

// Source resolves template documents by name.
type Source interface {
	Read(name string) ([]byte, error)
}

// FileSource reads templates from an override directory, falling back
// to the embedded seeds when a file is absent. An empty dir means
// embedded-only.
type FileSource struct {
	dir string
}

// NewSource creates a template source with the given override
// directory (may be empty).
func NewSource(overrideDir string) *FileSource {
	return &FileSource{dir: overrideDir}
}

// Read returns the named template document.
func (s *FileSource) Read(name string) ([]byte, error) {
	if s.dir != "" {
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("templates: read override %s: %w", name, err)
		}
	}
	data, err := seedFS.ReadFile("seeds/" + name)
	if err != nil {
		return nil, fmt.Errorf("templates: read embedded %s: %w", name, err)
	}
	return data, nil
}

// Substitute replaces every placeholder occurrence with the feature name.
func Substitute(content []byte, featureName string) []byte {
	return []byte(strings.ReplaceAll(string(content), Placeholder, featureName))
}
