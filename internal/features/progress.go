package features

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Checkbox-derived progress, computed straight from the checklist
// document. This is the directory-level view; the record store remains
// the authoritative source for workflow state.

var (
	anyCheckbox  = regexp.MustCompile(`- \[[x ]\]`)
	doneCheckbox = regexp.MustCompile(`- \[x\]`)
)

// Progress summarizes checklist completion for one feature directory.
type Progress struct {
	TotalTasks     int    `json:"total_tasks"`
	CompletedTasks int    `json:"completed_tasks"`
	Percent        int    `json:"progress_percentage"`
	Status         string `json:"status"` // not_started | in_progress | completed
}

// ChecklistProgress counts checkbox lines in the directory's tasks.md.
func (a *Allocator) ChecklistProgress(projectID, featureDirName string) (Progress, error) {
	path := filepath.Join(a.ProjectDir(projectID), featureDirName, "tasks.md")
	content, err := os.ReadFile(path)
	if err != nil {
		return Progress{}, fmt.Errorf("features: read checklist: %w", err)
	}

	total := len(anyCheckbox.FindAll(content, -1))
	done := len(doneCheckbox.FindAll(content, -1))

	p := Progress{TotalTasks: total, CompletedTasks: done}
	if total > 0 {
		p.Percent = int(float64(done)/float64(total)*100 + 0.5)
	}
	switch {
	case total > 0 && done == total:
		p.Status = "completed"
	case done > 0:
		p.Status = "in_progress"
	default:
		p.Status = "not_started"
	}
	return p, nil
}
