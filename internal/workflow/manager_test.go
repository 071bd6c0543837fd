package workflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

// fakeAllocator hands out real temp directories so checklist hooks can
// write into them.
type fakeAllocator struct {
	base  string
	calls int
}

func (f *fakeAllocator) Allocate(projectID, workflowID, featureName, workflowType string) (string, error) {
	f.calls++
	dir := filepath.Join(f.base, projectID, "1-feat-"+Slugify(featureName))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// recordingChecklist captures the initial checklist write.
type recordingChecklist struct {
	dir   string
	tasks int
}

func (r *recordingChecklist) WriteInitial(featureDir string, w Workflow, tasks []Task) error {
	r.dir = featureDir
	r.tasks = len(tasks)
	return nil
}

func newTestManager(t *testing.T) (*Manager, *fakeAllocator, *recordingChecklist) {
	t.Helper()
	store := newTestStore(t)
	alloc := &fakeAllocator{base: t.TempDir()}
	m := NewManager(store, alloc)
	rec := &recordingChecklist{}
	m.SetChecklistWriter(rec)
	return m, alloc, rec
}

// --- CreateFeatureWorkflow ---

func TestCreateFeatureWorkflow_Defaults(t *testing.T) {
	m, alloc, rec := newTestManager(t)

	w, tasks, err := m.CreateFeatureWorkflow("proj", "User Login", "", nil)
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, w.Status)
	assert.Equal(t, InitialPhase, w.CurrentPhase)
	assert.Equal(t, 0, w.Progress)
	assert.NotEmpty(t, w.Directory)
	assert.Equal(t, 1, alloc.calls)
	assert.Len(t, tasks, 24)

	// Initial checklist hook saw the same directory and task set.
	assert.Equal(t, w.Directory, rec.dir)
	assert.Equal(t, 24, rec.tasks)

	// Positions follow template order.
	for i, task := range tasks {
		assert.Equal(t, i, task.Position)
		assert.Equal(t, PriorityMedium, task.Priority)
	}
}

func TestCreateFeatureWorkflow_Validation(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, _, err := m.CreateFeatureWorkflow("", "User Login", "", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, err = m.CreateFeatureWorkflow("proj", "", "", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateFeatureWorkflow_CustomTemplate(t *testing.T) {
	m, _, _ := newTestManager(t)

	template := []TemplateTask{
		{Phase: "design", Description: "Sketch it"},
		{Phase: "build", Description: "Build it"},
	}
	_, tasks, err := m.CreateFeatureWorkflow("proj", "Widget", "", template)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, Phase("design"), tasks[0].Phase)
	assert.Equal(t, Phase("build"), tasks[1].Phase)
}

// --- Task completion and derivation ---

func TestCompleteTask_AdvancesPhase(t *testing.T) {
	m, _, _ := newTestManager(t)

	w, tasks, err := m.CreateFeatureWorkflow("proj", "User Login", "", nil)
	require.NoError(t, err)

	// Complete the whole first phase.
	for _, task := range tasks {
		if task.Phase != PhaseUserStories {
			continue
		}
		_, err := m.CompleteTask(task.ID, nil)
		require.NoError(t, err)
	}

	got, err := m.GetWorkflow(w.ID)
	require.NoError(t, err)
	assert.Equal(t, PhaseArchitecture, got.CurrentPhase)
	assert.Equal(t, Status(PhaseArchitecture), got.Status)
	assert.Equal(t, 25, got.Progress)
}

func TestCompleteAllThenUncomplete_Regression(t *testing.T) {
	m, _, _ := newTestManager(t)

	w, tasks, err := m.CreateFeatureWorkflow("proj", "User Login", "", nil)
	require.NoError(t, err)

	notes := "verified"
	for _, task := range tasks {
		_, err := m.CompleteTask(task.ID, &notes)
		require.NoError(t, err)
	}

	got, err := m.GetWorkflow(w.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, Phase(StatusCompleted), got.CurrentPhase)
	assert.Equal(t, 100, got.Progress)

	// Reopen a first-phase task: phase and status revert.
	reopened, err := m.UncompleteTask(tasks[0].ID)
	require.NoError(t, err)
	assert.False(t, reopened.Completed)
	assert.Nil(t, reopened.CompletedAt)
	assert.Nil(t, reopened.Notes)

	got, err = m.GetWorkflow(w.ID)
	require.NoError(t, err)
	assert.Equal(t, PhaseUserStories, got.CurrentPhase)
	assert.Equal(t, Status(PhaseUserStories), got.Status)
	assert.Equal(t, 96, got.Progress)
}

func TestCompleteTask_NotFound(t *testing.T) {
	m, _, _ := newTestManager(t)
	_, err := m.CompleteTask("task_missing", nil)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

// --- AddCustomTask ---

func TestAddCustomTask(t *testing.T) {
	m, _, _ := newTestManager(t)

	w, _, err := m.CreateFeatureWorkflow("proj", "User Login", "", nil)
	require.NoError(t, err)

	task, err := m.AddCustomTask(w.ID, "testing", "Load test the login endpoint", "high")
	require.NoError(t, err)
	assert.Equal(t, Phase("testing"), task.Phase)
	assert.Equal(t, PriorityHigh, task.Priority)
	assert.Equal(t, 24, task.Position)

	tasks, err := m.GetTasks(w.ID, "", nil)
	require.NoError(t, err)
	assert.Len(t, tasks, 25)

	// Progress accounts for the new task: 0/25 is still 0, but after
	// completing it the denominator is 25.
	_, err = m.CompleteTask(task.ID, nil)
	require.NoError(t, err)
	got, err := m.GetWorkflow(w.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Progress)
}

func TestAddCustomTask_Invalid(t *testing.T) {
	m, _, _ := newTestManager(t)

	w, _, err := m.CreateFeatureWorkflow("proj", "User Login", "", nil)
	require.NoError(t, err)

	_, err = m.AddCustomTask(w.ID, "testing", "desc", "urgent")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = m.AddCustomTask(w.ID, "", "desc", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = m.AddCustomTask("workflow_missing", "testing", "desc", "")
	assert.ErrorIs(t, err, ErrWorkflowNotFound)
}

// --- GetTasks filtering ---

func TestGetTasks_Filters(t *testing.T) {
	m, _, _ := newTestManager(t)

	w, tasks, err := m.CreateFeatureWorkflow("proj", "User Login", "", nil)
	require.NoError(t, err)

	_, err = m.CompleteTask(tasks[0].ID, nil)
	require.NoError(t, err)

	byPhase, err := m.GetTasks(w.ID, string(PhaseArchitecture), nil)
	require.NoError(t, err)
	assert.Len(t, byPhase, 6)

	done := true
	completed, err := m.GetTasks(w.ID, "", &done)
	require.NoError(t, err)
	assert.Len(t, completed, 1)

	open := false
	pending, err := m.GetTasks(w.ID, string(PhaseUserStories), &open)
	require.NoError(t, err)
	assert.Len(t, pending, 5)
}

// --- Summary ---

func TestGetWorkflowSummary(t *testing.T) {
	m, _, _ := newTestManager(t)

	w, tasks, err := m.CreateFeatureWorkflow("proj", "User Login", "", nil)
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		_, err := m.CompleteTask(tasks[i].ID, nil)
		require.NoError(t, err)
	}

	summary, err := m.GetWorkflowSummary(w.ID)
	require.NoError(t, err)
	assert.Equal(t, 24, summary.TotalTasks)
	assert.Equal(t, 6, summary.CompletedTasks)
	require.Len(t, summary.Phases, 4)

	assert.Equal(t, PhaseUserStories, summary.Phases[0].Phase)
	assert.Equal(t, 6, summary.Phases[0].Completed)
	assert.Equal(t, PhaseArchitecture, summary.Phases[1].Phase)
	assert.Equal(t, 0, summary.Phases[1].Completed)
}

// --- DeleteWorkflow ---

func TestManagerDeleteWorkflow(t *testing.T) {
	m, _, _ := newTestManager(t)

	w, _, err := m.CreateFeatureWorkflow("proj", "User Login", "", nil)
	require.NoError(t, err)

	require.NoError(t, m.DeleteWorkflow(w.ID))
	_, err = m.GetWorkflow(w.ID)
	assert.ErrorIs(t, err, ErrWorkflowNotFound)

	assert.ErrorIs(t, m.DeleteWorkflow(w.ID), ErrWorkflowNotFound)
}
