package checklist

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/HendryAvila/featflow/internal/log"
	"github.com/HendryAvila/featflow/internal/workflow"
)

// Recorder is the record-store side of a dual write. The workflow
// manager satisfies it.
type Recorder interface {
	CompleteTask(taskID string, notes *string) (workflow.Task, error)
	UncompleteTask(taskID string) (workflow.Task, error)
	AddCustomTask(workflowID, phase, description, priority string) (workflow.Task, error)
}

// SyncResult reports both halves of a dual write independently. The
// record store is authoritative; a false MarkdownUpdated means the
// checklist has drifted and will be healed by the next full render.
type SyncResult struct {
	MarkdownUpdated bool   `json:"markdown_updated"`
	DatabaseUpdated bool   `json:"database_updated"`
	ChatMessage     string `json:"chat_message"`
}

// AddResult is SyncResult plus the id assigned to the new task.
type AddResult struct {
	TaskID string `json:"task_id"`
	SyncResult
}

// Synchronizer applies task changes to the record store and the
// checklist document together, without coupling their failures.
type Synchronizer struct {
	recorder Recorder
}

func NewSynchronizer(recorder Recorder) *Synchronizer {
	return &Synchronizer{recorder: recorder}
}

// completedAnnotation matches the completion marker appended to done
// task lines, so toggling a task is idempotent.
var completedAnnotation = regexp.MustCompile(` ✅ \(Completed: [^)]*\)`)

// UpdateTask records a completion change and rewrites the matching
// checklist line. featureDir may be empty when the workflow has no
// directory; the markdown half is then skipped.
func (s *Synchronizer) UpdateTask(featureDir, taskID string, completed bool, notes *string) (SyncResult, error) {
	var result SyncResult

	var task workflow.Task
	var err error
	if completed {
		task, err = s.recorder.CompleteTask(taskID, notes)
	} else {
		task, err = s.recorder.UncompleteTask(taskID)
	}
	if err != nil {
		return result, err
	}
	result.DatabaseUpdated = true

	if featureDir != "" {
		if mdErr := s.rewriteLine(featureDir, task); mdErr != nil {
			log.GetLogger().Warnf("checklist update skipped for %s: %v", taskID, mdErr)
		} else {
			result.MarkdownUpdated = true
		}
	}

	result.ChatMessage = TaskUpdateMessage(taskID, completed, notes)
	return result, nil
}

// rewriteLine replaces the checklist line carrying the task's id with a
// freshly rendered one.
func (s *Synchronizer) rewriteLine(featureDir string, task workflow.Task) error {
	path := Path(featureDir)
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	marker := fmt.Sprintf("(ID: %s)", task.ID)
	lines := strings.Split(string(content), "\n")
	found := false
	for i, line := range lines {
		if !strings.Contains(line, marker) || !strings.Contains(line, "- [") {
			continue
		}
		lines[i] = Line(task)
		found = true
		break
	}
	if !found {
		return fmt.Errorf("no checklist line for task %s", task.ID)
	}
	return writeFileAtomic(path, []byte(strings.Join(lines, "\n")), 0o644)
}

// AddTask records a new task and appends it to the phase's checklist
// section. A checklist without a matching phase heading is left
// untouched and reported as MarkdownUpdated false.
func (s *Synchronizer) AddTask(featureDir, workflowID, phase, description, priority string) (AddResult, error) {
	var result AddResult

	task, err := s.recorder.AddCustomTask(workflowID, phase, description, priority)
	if err != nil {
		return result, err
	}
	result.TaskID = task.ID
	result.DatabaseUpdated = true

	if featureDir != "" {
		if mdErr := s.appendLine(featureDir, task); mdErr != nil {
			log.GetLogger().Warnf("checklist append skipped for %s: %v", task.ID, mdErr)
		} else {
			result.MarkdownUpdated = true
		}
	}

	result.ChatMessage = TaskAddMessage(task.ID, description, phase)
	return result, nil
}

// appendLine inserts the task at the end of its phase section, before
// the next heading. A missing heading means the section is absent and
// the write is skipped.
func (s *Synchronizer) appendLine(featureDir string, task workflow.Task) error {
	path := Path(featureDir)
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	heading := fmt.Sprintf("### %s", task.Phase)
	lines := strings.Split(string(content), "\n")

	sectionStart := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == heading {
			sectionStart = i
			break
		}
	}
	if sectionStart == -1 {
		return fmt.Errorf("no %q section in checklist", heading)
	}

	newLine := Line(task)

	// Find the last task line of the section.
	insertAt := sectionStart
	for i := sectionStart + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, "#") {
			break
		}
		if strings.HasPrefix(trimmed, "- [") {
			insertAt = i
		}
	}

	updated := make([]string, 0, len(lines)+1)
	updated = append(updated, lines[:insertAt+1]...)
	updated = append(updated, newLine)
	updated = append(updated, lines[insertAt+1:]...)
	return writeFileAtomic(path, []byte(strings.Join(updated, "\n")), 0o644)
}

// ToggleByDescription flips a task's checkbox by matching its
// description text. Markdown only: it serves directories that were
// created without workflow records.
func ToggleByDescription(featureDir, description string, completed bool) error {
	path := Path(featureDir)
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("checklist: read: %w", err)
	}

	checkbox := "- [ ] "
	if completed {
		checkbox = "- [x] "
	}

	lines := strings.Split(string(content), "\n")
	found := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "- [ ] ") && !strings.HasPrefix(trimmed, "- [x] ") {
			continue
		}
		body := completedAnnotation.ReplaceAllString(trimmed[len("- [x] "):], "")
		if !strings.HasPrefix(body, description) {
			continue
		}
		lines[i] = checkbox + body
		if completed {
			lines[i] += fmt.Sprintf(" ✅ (Completed: %s)", timeNow().UTC().Format("2006-01-02"))
		}
		found = true
		break
	}
	if !found {
		return fmt.Errorf("checklist: no task matching %q", description)
	}
	return writeFileAtomic(path, []byte(strings.Join(lines, "\n")), 0o644)
}
