// Package features manages the on-disk feature directories: one
// numbered directory per workflow, seeded with phase documents and a
// running checklist.
//
// Directory names follow the `<number>-<type>-<slug>` convention
// (e.g. "3-feat-user-login"). Numbers are unique within a project and
// monotonically increasing; they are never reused, even after a
// workflow is deleted.
package features

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/HendryAvila/featflow/internal/log"
	"github.com/HendryAvila/featflow/internal/templates"
	"github.com/HendryAvila/featflow/internal/workflow"
)

// DefaultWorkflowType is the conventional-commit prefix used when the
// caller doesn't specify one.
const DefaultWorkflowType = "feat"

// numberedDir matches directory names that carry a sequence number.
var numberedDir = regexp.MustCompile(`^(\d+)-`)

// Allocator creates feature directories under a project's features
// root and seeds them from the template source.
type Allocator struct {
	featuresDir string
	source      templates.Source

	mu       sync.Mutex
	projects map[string]*sync.Mutex
}

// NewAllocator creates an Allocator rooted at featuresDir.
func NewAllocator(featuresDir string, source templates.Source) *Allocator {
	return &Allocator{
		featuresDir: featuresDir,
		source:      source,
		projects:    make(map[string]*sync.Mutex),
	}
}

// projectLock returns the mutex serializing allocation for one project.
// Scanning for the next sequence number and creating the directory is
// not atomic; the per-project lock closes that race for in-process
// callers.
func (a *Allocator) projectLock(projectID string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	l, ok := a.projects[projectID]
	if !ok {
		l = &sync.Mutex{}
		a.projects[projectID] = l
	}
	return l
}

// ProjectDir returns the features root for a project.
func (a *Allocator) ProjectDir(projectID string) string {
	return filepath.Join(a.featuresDir, projectID)
}

// Allocate creates the next numbered feature directory for the project
// and seeds it with the phase templates and a context document.
//
// Directory creation failure is fatal: the caller must not create a
// workflow without its directory. Template seeding failures are not —
// the record store is authoritative and the documents are a
// convenience, so an unreadable template is logged and skipped.
func (a *Allocator) Allocate(projectID, workflowID, featureName, workflowType string) (string, error) {
	if workflowType == "" {
		workflowType = DefaultWorkflowType
	}

	lock := a.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	projectDir := a.ProjectDir(projectID)
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return "", fmt.Errorf("features: create project dir: %w", err)
	}

	next, err := a.nextNumber(projectDir)
	if err != nil {
		return "", err
	}

	dirName := fmt.Sprintf("%d-%s-%s", next, workflowType, workflow.Slugify(featureName))
	featureDir := filepath.Join(projectDir, dirName)
	if err := os.MkdirAll(featureDir, 0o755); err != nil {
		return "", fmt.Errorf("features: create feature dir %s: %w", dirName, err)
	}

	a.seedTemplates(featureDir, featureName)
	a.writeContext(featureDir, projectID, workflowID, featureName)

	return featureDir, nil
}

// nextNumber scans existing sibling directories for the highest
// sequence number and returns max+1 (1 when none exist).
func (a *Allocator) nextNumber(projectDir string) (int, error) {
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		return 0, fmt.Errorf("features: scan project dir: %w", err)
	}

	max := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m := numberedDir.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1, nil
}

// seedTemplates copies the phase documents into the feature directory,
// substituting the feature-name placeholder. Missing or unreadable
// templates are skipped with a warning.
func (a *Allocator) seedTemplates(featureDir, featureName string) {
	for _, name := range templates.SeedNames {
		content, err := a.source.Read(name)
		if err != nil {
			log.GetLogger().Warnf("could not seed template %s: %v", name, err)
			continue
		}
		target := filepath.Join(featureDir, name)
		if err := os.WriteFile(target, templates.Substitute(content, featureName), 0o644); err != nil {
			log.GetLogger().Warnf("could not write template %s: %v", name, err)
		}
	}
}

// writeContext creates the free-form context document. Best effort,
// same policy as template seeding.
func (a *Allocator) writeContext(featureDir, projectID, workflowID, featureName string) {
	content := fmt.Sprintf(
		"# %s - Context\n\n"+
			"## Workflow Information\n"+
			"- **Workflow ID**: %s\n"+
			"- **Project ID**: %s\n"+
			"- **Created**: %s\n\n"+
			"## Decision Log\n"+
			"[Record important decisions and context here]\n\n"+
			"## Notes\n"+
			"[Additional notes and considerations]\n",
		featureName, workflowID, projectID, timeNow().UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err := os.WriteFile(filepath.Join(featureDir, "context.md"), []byte(content), 0o644); err != nil {
		log.GetLogger().Warnf("could not write context.md: %v", err)
	}
}

// --- Feature directory inspection ---

// Info describes one feature directory found by a project scan.
type Info struct {
	Directory string `json:"directory"`
	Number    int    `json:"number"`
	Type      string `json:"type"`
	Name      string `json:"name"`
}

// ParseDirName splits a `<number>-<type>-<name>` directory name.
// Returns ok=false for names outside the convention.
func ParseDirName(name string) (Info, bool) {
	parts := strings.SplitN(name, "-", 3)
	if len(parts) < 3 {
		return Info{}, false
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return Info{}, false
	}
	return Info{Directory: name, Number: n, Type: parts[1], Name: parts[2]}, true
}

// List returns the project's feature directories in sequence order.
func (a *Allocator) List(projectID string) ([]Info, error) {
	entries, err := os.ReadDir(a.ProjectDir(projectID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("features: scan project dir: %w", err)
	}

	var result []Info
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, ok := ParseDirName(entry.Name())
		if !ok {
			continue
		}
		result = append(result, info)
	}
	// ReadDir sorts lexically; resort numerically so 10 follows 9.
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}
