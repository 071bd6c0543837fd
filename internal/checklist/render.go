// Package checklist renders and maintains the markdown task checklist
// (tasks.md) that mirrors a workflow's task records.
//
// The document is a convenience view for humans and editor tooling; the
// record store stays authoritative. Every task line carries its record
// id so the two can be kept in sync:
//
//	- [ ] Define user personas and target audience (ID: task_abc)
//	- [x] Create epic-level user stories (ID: task_def) ✅ (Completed: 2026-09-01)
package checklist

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/HendryAvila/featflow/internal/workflow"
)

// FileName is the checklist document inside a feature directory.
const FileName = "tasks.md"

// Path returns the checklist location for a feature directory.
func Path(featureDir string) string {
	return filepath.Join(featureDir, FileName)
}

// Line renders one task as a checklist line.
func Line(t workflow.Task) string {
	if t.Completed {
		date := ""
		if t.CompletedAt != nil && len(*t.CompletedAt) >= 10 {
			date = (*t.CompletedAt)[:10]
		}
		return fmt.Sprintf("- [x] %s (ID: %s) ✅ (Completed: %s)", t.Description, t.ID, date)
	}
	return fmt.Sprintf("- [ ] %s (ID: %s)", t.Description, t.ID)
}

// Render produces the full checklist document, tasks grouped under a
// heading per phase in first-appearance order.
func Render(w workflow.Workflow, tasks []workflow.Task) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Tasks\n\n", w.FeatureName)

	for _, phase := range workflow.PhaseOrder(tasks) {
		fmt.Fprintf(&b, "### %s\n\n", phase)
		for _, t := range tasks {
			if t.Phase != phase {
				continue
			}
			b.WriteString(Line(t))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// Writer persists checklist documents. It satisfies the workflow
// package's checklist hook so new workflows start with a rendered file.
type Writer struct{}

// WriteInitial renders the checklist into the feature directory.
func (Writer) WriteInitial(featureDir string, w workflow.Workflow, tasks []workflow.Task) error {
	return writeFileAtomic(Path(featureDir), Render(w, tasks), 0o644)
}
