package workflow

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Store defines the persistence interface for workflow and task rows.
// It is pure data access: no derived state logic lives here.
// Abstracted for testability (DIP).
type Store interface {
	CreateWorkflow(w *Workflow, tasks []Task) error
	GetWorkflow(id string) (*Workflow, error)
	ListWorkflows(projectID string) ([]Workflow, error)
	AllWorkflows() ([]Workflow, error)
	UpdateWorkflowState(id string, d Derivation, updatedAt string) error
	InsertTask(t *Task) error
	GetTask(id string) (*Task, error)
	TasksForWorkflow(workflowID string) ([]Task, error)
	SetTaskCompletion(id string, completed bool, completedAt, notes *string) error
	NextTaskPosition(workflowID string) (int, error)
	DeleteWorkflow(id string) error
	Close() error
}

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the workflow database at the
// given path, applies pragmas, and runs migrations. The parent
// directory is created if absent.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("workflow: create data dir: %w", err)
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("workflow: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("workflow: pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("workflow: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS workflows (
			id            TEXT PRIMARY KEY,
			project_id    TEXT    NOT NULL,
			feature_name  TEXT    NOT NULL,
			status        TEXT    NOT NULL DEFAULT 'draft',
			current_phase TEXT    NOT NULL DEFAULT 'user-stories',
			progress      INTEGER NOT NULL DEFAULT 0,
			directory     TEXT    NOT NULL DEFAULT '',
			created_at    TEXT    NOT NULL,
			updated_at    TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_wf_project ON workflows(project_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS workflow_tasks (
			id           TEXT PRIMARY KEY,
			workflow_id  TEXT    NOT NULL,
			phase        TEXT    NOT NULL,
			description  TEXT    NOT NULL,
			priority     TEXT    NOT NULL DEFAULT 'medium',
			completed    INTEGER NOT NULL DEFAULT 0,
			completed_at TEXT,
			notes        TEXT,
			position     INTEGER NOT NULL,
			created_at   TEXT    NOT NULL,
			FOREIGN KEY (workflow_id) REFERENCES workflows(id)
		);

		CREATE INDEX IF NOT EXISTS idx_task_workflow ON workflow_tasks(workflow_id, position);
		CREATE INDEX IF NOT EXISTS idx_task_phase    ON workflow_tasks(workflow_id, phase);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ─── Workflows ───────────────────────────────────────────────────────────────

// CreateWorkflow inserts a workflow row and its initial task set in a
// single transaction, so a storage failure never leaves a workflow
// without its default checklist.
func (s *SQLiteStore) CreateWorkflow(w *Workflow, tasks []Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("workflow: begin create: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO workflows (id, project_id, feature_name, status, current_phase, progress, directory, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.ProjectID, w.FeatureName, w.Status, w.CurrentPhase, w.Progress, w.Directory, w.CreatedAt, w.UpdatedAt,
	); err != nil {
		return fmt.Errorf("workflow: insert workflow: %w", err)
	}

	for i := range tasks {
		if err := insertTask(tx, &tasks[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("workflow: commit create: %w", err)
	}
	return nil
}

// GetWorkflow retrieves a workflow by ID.
func (s *SQLiteStore) GetWorkflow(id string) (*Workflow, error) {
	row := s.db.QueryRow(
		`SELECT id, project_id, feature_name, status, current_phase, progress, directory, created_at, updated_at
		 FROM workflows WHERE id = ?`, id,
	)
	var w Workflow
	if err := row.Scan(&w.ID, &w.ProjectID, &w.FeatureName, &w.Status, &w.CurrentPhase, &w.Progress, &w.Directory, &w.CreatedAt, &w.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("workflow %q: %w", id, ErrWorkflowNotFound)
		}
		return nil, fmt.Errorf("workflow: get %q: %w", id, err)
	}
	return &w, nil
}

// ListWorkflows returns all workflows for a project, newest first.
func (s *SQLiteStore) ListWorkflows(projectID string) ([]Workflow, error) {
	rows, err := s.db.Query(
		`SELECT id, project_id, feature_name, status, current_phase, progress, directory, created_at, updated_at
		 FROM workflows WHERE project_id = ? ORDER BY created_at DESC, id DESC`, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("workflow: list for project %q: %w", projectID, err)
	}
	defer func() { _ = rows.Close() }()

	var result []Workflow
	for rows.Next() {
		var w Workflow
		if err := rows.Scan(&w.ID, &w.ProjectID, &w.FeatureName, &w.Status, &w.CurrentPhase, &w.Progress, &w.Directory, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("workflow: scan workflow row: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// AllWorkflows returns every workflow across projects, newest first.
func (s *SQLiteStore) AllWorkflows() ([]Workflow, error) {
	rows, err := s.db.Query(
		`SELECT id, project_id, feature_name, status, current_phase, progress, directory, created_at, updated_at
		 FROM workflows ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("workflow: list all: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []Workflow
	for rows.Next() {
		var w Workflow
		if err := rows.Scan(&w.ID, &w.ProjectID, &w.FeatureName, &w.Status, &w.CurrentPhase, &w.Progress, &w.Directory, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("workflow: scan workflow row: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// UpdateWorkflowState writes a derivation result back to the workflow
// row. This is the only mutation path for status/current_phase/progress.
func (s *SQLiteStore) UpdateWorkflowState(id string, d Derivation, updatedAt string) error {
	res, err := s.db.Exec(
		`UPDATE workflows SET progress = ?, status = ?, current_phase = ?, updated_at = ? WHERE id = ?`,
		d.Progress, d.Status, d.CurrentPhase, updatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("workflow: update state for %q: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("workflow %q: %w", id, ErrWorkflowNotFound)
	}
	return nil
}

// DeleteWorkflow removes all task rows and then the workflow row in a
// single transaction. Tasks go first to respect the foreign key; the
// transaction prevents the orphaned-workflow state a partial failure
// would otherwise leave behind. The feature directory is untouched.
func (s *SQLiteStore) DeleteWorkflow(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("workflow: begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM workflow_tasks WHERE workflow_id = ?`, id); err != nil {
		return fmt.Errorf("workflow: delete tasks for %q: %w", id, err)
	}

	res, err := tx.Exec(`DELETE FROM workflows WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("workflow: delete workflow %q: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("workflow %q: %w", id, ErrWorkflowNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("workflow: commit delete: %w", err)
	}
	return nil
}

// ─── Tasks ───────────────────────────────────────────────────────────────────

type taskExecer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertTask(db taskExecer, t *Task) error {
	completed := 0
	if t.Completed {
		completed = 1
	}
	if _, err := db.Exec(
		`INSERT INTO workflow_tasks (id, workflow_id, phase, description, priority, completed, completed_at, notes, position, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.WorkflowID, t.Phase, t.Description, t.Priority, completed, t.CompletedAt, t.Notes, t.Position, t.CreatedAt,
	); err != nil {
		return fmt.Errorf("workflow: insert task %q: %w", t.ID, err)
	}
	return nil
}

// InsertTask adds a single task row (custom tasks added after creation).
func (s *SQLiteStore) InsertTask(t *Task) error {
	return insertTask(s.db, t)
}

// GetTask retrieves a task by ID.
func (s *SQLiteStore) GetTask(id string) (*Task, error) {
	row := s.db.QueryRow(
		`SELECT id, workflow_id, phase, description, priority, completed, completed_at, notes, position, created_at
		 FROM workflow_tasks WHERE id = ?`, id,
	)
	t, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task %q: %w", id, ErrTaskNotFound)
		}
		return nil, fmt.Errorf("workflow: get task %q: %w", id, err)
	}
	return t, nil
}

// TasksForWorkflow returns the workflow's tasks in template order.
// Position order is load-bearing: the deriver picks the earliest
// incomplete task from this ordering.
func (s *SQLiteStore) TasksForWorkflow(workflowID string) ([]Task, error) {
	rows, err := s.db.Query(
		`SELECT id, workflow_id, phase, description, priority, completed, completed_at, notes, position, created_at
		 FROM workflow_tasks WHERE workflow_id = ? ORDER BY position ASC`, workflowID,
	)
	if err != nil {
		return nil, fmt.Errorf("workflow: tasks for %q: %w", workflowID, err)
	}
	defer func() { _ = rows.Close() }()

	var result []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("workflow: scan task row: %w", err)
		}
		result = append(result, *t)
	}
	return result, rows.Err()
}

// SetTaskCompletion toggles a task's completed flag. Completing records
// the timestamp and optional notes; uncompleting clears both.
func (s *SQLiteStore) SetTaskCompletion(id string, completed bool, completedAt, notes *string) error {
	completedInt := 0
	if completed {
		completedInt = 1
	}
	if !completed {
		completedAt = nil
		notes = nil
	}
	res, err := s.db.Exec(
		`UPDATE workflow_tasks SET completed = ?, completed_at = ?, notes = ? WHERE id = ?`,
		completedInt, completedAt, notes, id,
	)
	if err != nil {
		return fmt.Errorf("workflow: set completion for task %q: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %q: %w", id, ErrTaskNotFound)
	}
	return nil
}

// NextTaskPosition returns the next free position ordinal for the
// workflow. Positions are monotonically increasing and never reused.
func (s *SQLiteStore) NextTaskPosition(workflowID string) (int, error) {
	var next int
	err := s.db.QueryRow(
		`SELECT COALESCE(MAX(position), -1) + 1 FROM workflow_tasks WHERE workflow_id = ?`, workflowID,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("workflow: next position for %q: %w", workflowID, err)
	}
	return next, nil
}

type rowLike interface {
	Scan(dest ...any) error
}

func scanTask(row rowLike) (*Task, error) {
	var t Task
	var completed int
	if err := row.Scan(&t.ID, &t.WorkflowID, &t.Phase, &t.Description, &t.Priority, &completed, &t.CompletedAt, &t.Notes, &t.Position, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Completed = completed != 0
	return &t, nil
}
