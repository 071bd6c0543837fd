package checklist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/HendryAvila/featflow/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Freeze time for deterministic dates in lines and messages.
	timeNow = func() time.Time {
		return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	}
}

// --- Fixtures ---

func testWorkflow() workflow.Workflow {
	return workflow.Workflow{
		ID:          "workflow_1",
		ProjectID:   "proj",
		FeatureName: "User Login",
	}
}

func testTasks() []workflow.Task {
	return []workflow.Task{
		{ID: "task_1", Phase: "user-stories", Description: "Define personas"},
		{ID: "task_2", Phase: "user-stories", Description: "Write stories"},
		{ID: "task_3", Phase: "architecture", Description: "Design the schema"},
	}
}

func writeInitial(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, Writer{}.WriteInitial(dir, testWorkflow(), testTasks()))
	return dir
}

func readChecklist(t *testing.T, dir string) string {
	t.Helper()
	content, err := os.ReadFile(Path(dir))
	require.NoError(t, err)
	return string(content)
}

// fakeRecorder is the record-store side of a dual write.
type fakeRecorder struct {
	completed   map[string]bool
	added       []workflow.Task
	failNextAdd error
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{completed: map[string]bool{}}
}

func (f *fakeRecorder) CompleteTask(taskID string, notes *string) (workflow.Task, error) {
	f.completed[taskID] = true
	completedAt := "2026-03-15T12:00:00Z"
	return workflow.Task{
		ID: taskID, Phase: "user-stories", Description: "Define personas",
		Completed: true, CompletedAt: &completedAt, Notes: notes,
	}, nil
}

func (f *fakeRecorder) UncompleteTask(taskID string) (workflow.Task, error) {
	f.completed[taskID] = false
	return workflow.Task{
		ID: taskID, Phase: "user-stories", Description: "Define personas",
	}, nil
}

func (f *fakeRecorder) AddCustomTask(workflowID, phase, description, priority string) (workflow.Task, error) {
	if f.failNextAdd != nil {
		return workflow.Task{}, f.failNextAdd
	}
	task := workflow.Task{
		ID: "task_new", WorkflowID: workflowID, Phase: workflow.Phase(phase),
		Description: description, Priority: workflow.Priority(priority),
	}
	f.added = append(f.added, task)
	return task, nil
}

// --- Render ---

func TestRender_Format(t *testing.T) {
	got := string(Render(testWorkflow(), testTasks()))

	assert.True(t, strings.HasPrefix(got, "# User Login Tasks\n"))
	assert.Contains(t, got, "### user-stories\n")
	assert.Contains(t, got, "### architecture\n")
	assert.Contains(t, got, "- [ ] Define personas (ID: task_1)\n")
	assert.Contains(t, got, "- [ ] Design the schema (ID: task_3)\n")

	// Phase sections keep first-appearance order.
	assert.Less(t, strings.Index(got, "### user-stories"), strings.Index(got, "### architecture"))
}

func TestLine_Completed(t *testing.T) {
	completedAt := "2026-03-15T12:00:00Z"
	task := workflow.Task{
		ID: "task_1", Description: "Define personas",
		Completed: true, CompletedAt: &completedAt,
	}
	assert.Equal(t, "- [x] Define personas (ID: task_1) ✅ (Completed: 2026-03-15)", Line(task))
}

// --- UpdateTask ---

func TestUpdateTask_BothSides(t *testing.T) {
	dir := writeInitial(t)
	s := NewSynchronizer(newFakeRecorder())

	result, err := s.UpdateTask(dir, "task_1", true, nil)
	require.NoError(t, err)
	assert.True(t, result.DatabaseUpdated)
	assert.True(t, result.MarkdownUpdated)
	assert.Contains(t, result.ChatMessage, "✅ Completed")

	content := readChecklist(t, dir)
	assert.Contains(t, content, "- [x] Define personas (ID: task_1) ✅ (Completed: 2026-03-15)")
	// Other lines untouched.
	assert.Contains(t, content, "- [ ] Write stories (ID: task_2)")
}

func TestUpdateTask_Reopen(t *testing.T) {
	dir := writeInitial(t)
	s := NewSynchronizer(newFakeRecorder())

	_, err := s.UpdateTask(dir, "task_1", true, nil)
	require.NoError(t, err)
	result, err := s.UpdateTask(dir, "task_1", false, nil)
	require.NoError(t, err)
	assert.True(t, result.MarkdownUpdated)
	assert.Contains(t, result.ChatMessage, "⏳ Reopened")

	content := readChecklist(t, dir)
	assert.Contains(t, content, "- [ ] Define personas (ID: task_1)")
	assert.NotContains(t, content, "✅ (Completed:")
}

func TestUpdateTask_MarkdownMissingIsSoft(t *testing.T) {
	// No checklist file: the database half still succeeds and the
	// markdown half is reported false, not raised.
	s := NewSynchronizer(newFakeRecorder())

	result, err := s.UpdateTask(t.TempDir(), "task_1", true, nil)
	require.NoError(t, err)
	assert.True(t, result.DatabaseUpdated)
	assert.False(t, result.MarkdownUpdated)
}

func TestUpdateTask_NoDirectory(t *testing.T) {
	s := NewSynchronizer(newFakeRecorder())

	result, err := s.UpdateTask("", "task_1", true, nil)
	require.NoError(t, err)
	assert.True(t, result.DatabaseUpdated)
	assert.False(t, result.MarkdownUpdated)
}

// --- AddTask ---

func TestAddTask_ExistingPhase(t *testing.T) {
	dir := writeInitial(t)
	s := NewSynchronizer(newFakeRecorder())

	result, err := s.AddTask(dir, "workflow_1", "user-stories", "Review with stakeholders", "high")
	require.NoError(t, err)
	assert.Equal(t, "task_new", result.TaskID)
	assert.True(t, result.DatabaseUpdated)
	assert.True(t, result.MarkdownUpdated)
	assert.Contains(t, result.ChatMessage, "New Task Added")

	content := readChecklist(t, dir)
	// The new line lands inside the user-stories section, before the
	// architecture heading.
	newIdx := strings.Index(content, "Review with stakeholders (ID: task_new)")
	archIdx := strings.Index(content, "### architecture")
	require.Greater(t, newIdx, 0)
	assert.Less(t, newIdx, archIdx)
}

func TestAddTask_MissingHeadingSkipsMarkdown(t *testing.T) {
	// No "### deployment" heading exists: the record insert still
	// succeeds, the checklist is left untouched, and the skip is
	// reported through the markdown flag rather than an error.
	dir := writeInitial(t)
	s := NewSynchronizer(newFakeRecorder())

	result, err := s.AddTask(dir, "workflow_1", "deployment", "Ship it", "")
	require.NoError(t, err)
	assert.True(t, result.DatabaseUpdated)
	assert.False(t, result.MarkdownUpdated)

	content := readChecklist(t, dir)
	assert.NotContains(t, content, "### deployment")
	assert.NotContains(t, content, "Ship it")
}

func TestAddTask_RecorderFailurePropagates(t *testing.T) {
	dir := writeInitial(t)
	rec := newFakeRecorder()
	rec.failNextAdd = os.ErrPermission
	s := NewSynchronizer(rec)

	_, err := s.AddTask(dir, "workflow_1", "user-stories", "Doomed", "")
	assert.Error(t, err)

	// Markdown untouched on record failure.
	assert.NotContains(t, readChecklist(t, dir), "Doomed")
}

// --- ToggleByDescription ---

func TestToggleByDescription(t *testing.T) {
	dir := writeInitial(t)

	require.NoError(t, ToggleByDescription(dir, "Write stories", true))
	content := readChecklist(t, dir)
	assert.Contains(t, content, "- [x] Write stories (ID: task_2) ✅ (Completed: 2026-03-15)")

	require.NoError(t, ToggleByDescription(dir, "Write stories", false))
	content = readChecklist(t, dir)
	assert.Contains(t, content, "- [ ] Write stories (ID: task_2)")
}

func TestToggleByDescription_Unknown(t *testing.T) {
	dir := writeInitial(t)
	assert.Error(t, ToggleByDescription(dir, "No such task", true))
}

// --- Atomic writes ---

func TestWriteFileAtomic_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.md")
	require.NoError(t, writeFileAtomic(path, []byte("content"), 0o644))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tasks.md", entries[0].Name())
}
