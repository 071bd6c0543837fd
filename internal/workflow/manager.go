package workflow

import (
	"fmt"

	"github.com/HendryAvila/featflow/internal/log"
)

// DirectoryAllocator creates the on-disk feature directory for a new
// workflow and returns its path.
type DirectoryAllocator interface {
	Allocate(projectID, workflowID, featureName, workflowType string) (string, error)
}

// ChecklistWriter renders the initial task checklist into a feature
// directory. Wired in after construction to keep the dependency
// direction one-way.
type ChecklistWriter interface {
	WriteInitial(featureDir string, w Workflow, tasks []Task) error
}

// Manager orchestrates workflow lifecycle: directory allocation, record
// creation, task mutations, and state re-derivation. It is the only
// writer of a workflow's status, current phase, and progress.
type Manager struct {
	store     Store
	allocator DirectoryAllocator
	checklist ChecklistWriter
}

// NewManager creates a Manager over the given store and allocator.
func NewManager(store Store, allocator DirectoryAllocator) *Manager {
	return &Manager{store: store, allocator: allocator}
}

// SetChecklistWriter installs the checklist hook. Optional; without it
// new workflows simply start without a rendered tasks.md.
func (m *Manager) SetChecklistWriter(w ChecklistWriter) {
	m.checklist = w
}

// CreateFeatureWorkflow allocates a feature directory, then creates the
// workflow row plus its task rows in one transaction.
//
// Ordering matters: the directory comes first so a directory failure
// aborts before anything is persisted, and a record failure leaves only
// an orphan directory (harmless, the number is simply consumed).
// Checklist rendering is best effort.
func (m *Manager) CreateFeatureWorkflow(projectID, featureName, workflowType string, template []TemplateTask) (*Workflow, []Task, error) {
	if projectID == "" || featureName == "" {
		return nil, nil, fmt.Errorf("%w: project id and feature name are required", ErrInvalidInput)
	}
	if len(template) == 0 {
		template = DefaultTaskTemplate
	}

	now := timeNow().UTC().Format("2006-01-02T15:04:05Z07:00")
	w := &Workflow{
		ID:           NewWorkflowID(),
		ProjectID:    projectID,
		FeatureName:  featureName,
		Status:       StatusDraft,
		CurrentPhase: InitialPhase,
		Progress:     0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	dir, err := m.allocator.Allocate(projectID, w.ID, featureName, workflowType)
	if err != nil {
		return nil, nil, err
	}
	w.Directory = dir

	tasks := make([]Task, 0, len(template))
	for i, item := range template {
		tasks = append(tasks, Task{
			ID:          NewTaskID(),
			WorkflowID:  w.ID,
			Phase:       item.Phase,
			Description: item.Description,
			Priority:    PriorityMedium,
			Position:    i,
			CreatedAt:   now,
		})
	}

	if err := m.store.CreateWorkflow(w, tasks); err != nil {
		return nil, nil, err
	}

	if m.checklist != nil {
		if err := m.checklist.WriteInitial(dir, *w, tasks); err != nil {
			log.GetLogger().Warnf("initial checklist not written for %s: %v", w.ID, err)
		}
	}

	return w, tasks, nil
}

// GetWorkflow returns one workflow by id.
func (m *Manager) GetWorkflow(id string) (*Workflow, error) {
	return m.store.GetWorkflow(id)
}

// ListWorkflows returns a project's workflows, newest first.
func (m *Manager) ListWorkflows(projectID string) ([]Workflow, error) {
	return m.store.ListWorkflows(projectID)
}

// CompleteTask marks a task done, stamps its completion time, stores
// optional notes, and re-derives the workflow state.
func (m *Manager) CompleteTask(taskID string, notes *string) (Task, error) {
	now := timeNow().UTC().Format("2006-01-02T15:04:05Z07:00")
	if err := m.store.SetTaskCompletion(taskID, true, &now, notes); err != nil {
		return Task{}, err
	}
	return m.afterTaskMutation(taskID)
}

// UncompleteTask reopens a task. Completion time and notes are cleared,
// and the workflow state is re-derived — the phase may move backward.
func (m *Manager) UncompleteTask(taskID string) (Task, error) {
	if err := m.store.SetTaskCompletion(taskID, false, nil, nil); err != nil {
		return Task{}, err
	}
	return m.afterTaskMutation(taskID)
}

func (m *Manager) afterTaskMutation(taskID string) (Task, error) {
	task, err := m.store.GetTask(taskID)
	if err != nil {
		return Task{}, err
	}
	if _, err := m.Recompute(task.WorkflowID); err != nil {
		return Task{}, err
	}
	return *task, nil
}

// AddCustomTask appends a task to a workflow's phase, after the
// template tasks, and re-derives the workflow state.
func (m *Manager) AddCustomTask(workflowID, phase, description, priority string) (Task, error) {
	if phase == "" || description == "" {
		return Task{}, fmt.Errorf("%w: phase and description are required", ErrInvalidInput)
	}
	p := Priority(priority)
	if priority == "" {
		p = PriorityMedium
	}
	if err := ValidatePriority(p); err != nil {
		return Task{}, err
	}
	if _, err := m.store.GetWorkflow(workflowID); err != nil {
		return Task{}, err
	}

	position, err := m.store.NextTaskPosition(workflowID)
	if err != nil {
		return Task{}, err
	}

	task := Task{
		ID:          NewTaskID(),
		WorkflowID:  workflowID,
		Phase:       Phase(phase),
		Description: description,
		Priority:    p,
		Position:    position,
		CreatedAt:   timeNow().UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if err := m.store.InsertTask(&task); err != nil {
		return Task{}, err
	}
	if _, err := m.Recompute(workflowID); err != nil {
		return Task{}, err
	}
	return task, nil
}

// GetTask returns one task by id.
func (m *Manager) GetTask(taskID string) (*Task, error) {
	return m.store.GetTask(taskID)
}

// GetTasks returns a workflow's tasks in template order, optionally
// filtered by phase and completion.
func (m *Manager) GetTasks(workflowID, phase string, completed *bool) ([]Task, error) {
	if _, err := m.store.GetWorkflow(workflowID); err != nil {
		return nil, err
	}
	tasks, err := m.store.TasksForWorkflow(workflowID)
	if err != nil {
		return nil, err
	}

	filtered := tasks[:0]
	for _, t := range tasks {
		if phase != "" && string(t.Phase) != phase {
			continue
		}
		if completed != nil && t.Completed != *completed {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered, nil
}

// DeleteWorkflow removes a workflow and all its tasks. The feature
// directory stays on disk; its number is never reused.
func (m *Manager) DeleteWorkflow(id string) error {
	return m.store.DeleteWorkflow(id)
}

// PhaseStats is the per-phase slice of a workflow summary.
type PhaseStats struct {
	Phase     Phase  `json:"phase"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Tasks     []Task `json:"tasks"`
}

// Summary is the full state of one workflow: the row itself plus task
// counts grouped by phase.
type Summary struct {
	Workflow       Workflow     `json:"workflow"`
	TotalTasks     int          `json:"total_tasks"`
	CompletedTasks int          `json:"completed_tasks"`
	Phases         []PhaseStats `json:"phases"`
}

// GetWorkflowSummary assembles the workflow row with per-phase task
// breakdowns, phases in template order.
func (m *Manager) GetWorkflowSummary(workflowID string) (*Summary, error) {
	w, err := m.store.GetWorkflow(workflowID)
	if err != nil {
		return nil, err
	}
	tasks, err := m.store.TasksForWorkflow(workflowID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Workflow: *w, TotalTasks: len(tasks)}
	for _, phase := range PhaseOrder(tasks) {
		stats := PhaseStats{Phase: phase}
		for _, t := range tasks {
			if t.Phase != phase {
				continue
			}
			stats.Total++
			stats.Tasks = append(stats.Tasks, t)
			if t.Completed {
				stats.Completed++
				summary.CompletedTasks++
			}
		}
		summary.Phases = append(summary.Phases, stats)
	}
	return summary, nil
}

// Recompute derives status, current phase, and progress from the
// workflow's tasks and persists them. Every task mutation funnels
// through here.
func (m *Manager) Recompute(workflowID string) (Derivation, error) {
	tasks, err := m.store.TasksForWorkflow(workflowID)
	if err != nil {
		return Derivation{}, err
	}
	d := Derive(tasks)
	now := timeNow().UTC().Format("2006-01-02T15:04:05Z07:00")
	if err := m.store.UpdateWorkflowState(workflowID, d, now); err != nil {
		return Derivation{}, err
	}
	return d, nil
}
