// Package workflow implements the feature workflow state engine.
//
// A workflow tracks one feature through fixed development phases
// (user-stories → architecture → implementation → testing → completed),
// backed by a checklist of tasks. The workflow's status, current phase,
// and progress are never set directly — they are derived from task
// state after every task mutation (see derive.go).
//
// This package follows the same design principles as the rest of the
// server:
// - SRP: types, derivation, store, and orchestration in separate files
// - DIP: Store is an interface; the manager and tools depend on the abstraction
package workflow

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// --- Status enum ---

// Status tracks the overall lifecycle of a workflow. While work is in
// progress the status mirrors the current phase name; draft and
// completed bracket the phase sequence.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusCompleted Status = "completed"
)

// --- Phases ---

// Phase names a stage of work. Tasks are grouped into phases; the
// ordered set of phases a workflow moves through is exactly the
// distinct phase values of its tasks, in first-introduced order.
type Phase string

const (
	PhaseUserStories    Phase = "user-stories"
	PhaseArchitecture   Phase = "architecture"
	PhaseImplementation Phase = "implementation"
	PhaseTesting        Phase = "testing"
)

// DefaultPhases is the phase order of the default task template.
var DefaultPhases = []Phase{
	PhaseUserStories,
	PhaseArchitecture,
	PhaseImplementation,
	PhaseTesting,
}

// InitialPhase is the phase a freshly created workflow starts in.
const InitialPhase = PhaseUserStories

// --- Priority enum ---

// Priority categorizes how urgent a task is. It is carried through to
// the checklist document but plays no role in phase derivation.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// validPriorities is the set of allowed task priorities.
var validPriorities = map[Priority]bool{
	PriorityLow:      true,
	PriorityMedium:   true,
	PriorityHigh:     true,
	PriorityCritical: true,
}

// ValidatePriority returns an error if the priority is not recognized.
func ValidatePriority(p Priority) error {
	if !validPriorities[p] {
		return fmt.Errorf("%w: priority %q must be one of: low, medium, high, critical", ErrInvalidInput, p)
	}
	return nil
}

// --- Core data structures ---

// Workflow is the root record for a tracked feature.
type Workflow struct {
	ID           string `json:"id"`
	ProjectID    string `json:"project_id"`
	FeatureName  string `json:"feature_name"`
	Status       Status `json:"status"`
	CurrentPhase Phase  `json:"current_phase"`
	Progress     int    `json:"progress"`
	Directory    string `json:"directory,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// Task is a single checklist item belonging to a workflow. Position is
// the task's ordinal within the workflow's template order; derivation
// depends on it, so it is assigned at insert time and never reused.
type Task struct {
	ID          string   `json:"id"`
	WorkflowID  string   `json:"workflow_id"`
	Phase       Phase    `json:"phase"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
	CompletedAt *string  `json:"completed_at,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	Position    int      `json:"position"`
	CreatedAt   string   `json:"created_at"`
}

// --- Default task template ---

// TemplateTask is one entry of the default checklist template.
type TemplateTask struct {
	Phase       Phase
	Description string
}

// DefaultTaskTemplate is the fixed ordered task set inserted for every
// new workflow: six tasks per phase across the four default phases.
// Phase derivation relies on this ordering, so entries for one phase
// are contiguous and phases appear in DefaultPhases order.
var DefaultTaskTemplate = []TemplateTask{
	{PhaseUserStories, "Define problem statement and business value"},
	{PhaseUserStories, "Write primary user stories with acceptance criteria"},
	{PhaseUserStories, "Define functional specifications"},
	{PhaseUserStories, "Specify quality requirements (performance, security, reliability)"},
	{PhaseUserStories, "Identify constraints and dependencies"},
	{PhaseUserStories, "Define success metrics and exclusions"},

	{PhaseArchitecture, "Design high-level system architecture"},
	{PhaseArchitecture, "Define component architecture (frontend/backend)"},
	{PhaseArchitecture, "Design data architecture and database schema"},
	{PhaseArchitecture, "Specify API endpoints and data flow"},
	{PhaseArchitecture, "Define security and performance architecture"},
	{PhaseArchitecture, "Plan deployment and integration strategy"},

	{PhaseImplementation, "Set up basic project structure"},
	{PhaseImplementation, "Implement core backend functionality"},
	{PhaseImplementation, "Create frontend components and UI"},
	{PhaseImplementation, "Integrate frontend with backend APIs"},
	{PhaseImplementation, "Implement error handling and validation"},
	{PhaseImplementation, "Add logging and monitoring"},

	{PhaseTesting, "Write and execute unit tests"},
	{PhaseTesting, "Implement integration tests"},
	{PhaseTesting, "Perform end-to-end testing"},
	{PhaseTesting, "Conduct performance and security testing"},
	{PhaseTesting, "User acceptance testing"},
	{PhaseTesting, "Final validation and documentation"},
}

// --- Identifiers ---

// NewWorkflowID generates a unique workflow identifier.
func NewWorkflowID() string {
	return "workflow_" + uuid.NewString()
}

// NewTaskID generates a unique task identifier. The ID appears verbatim
// in checklist lines, so it must stay free of markdown-significant
// characters.
func NewTaskID() string {
	return "task_" + uuid.NewString()
}

// --- Slug generation ---

// Slugify converts a feature name into the filesystem-safe form used in
// feature directory names: lowercase, whitespace runs become single
// hyphens. Example: "User  Login" → "user-login".
func Slugify(featureName string) string {
	fields := strings.Fields(strings.ToLower(featureName))
	if len(fields) == 0 {
		return "unnamed-feature"
	}
	return strings.Join(fields, "-")
}

// PhaseOrder returns the distinct phases of the given tasks in the
// order they first appear. The task slice must already be in template
// order (position ascending).
func PhaseOrder(tasks []Task) []Phase {
	var order []Phase
	seen := map[Phase]bool{}
	for _, t := range tasks {
		if !seen[t.Phase] {
			seen[t.Phase] = true
			order = append(order, t.Phase)
		}
	}
	return order
}
