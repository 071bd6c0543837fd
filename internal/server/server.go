// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on
// abstractions. No business logic lives here — only wiring.
package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/HendryAvila/featflow/internal/checklist"
	"github.com/HendryAvila/featflow/internal/config"
	"github.com/HendryAvila/featflow/internal/features"
	"github.com/HendryAvila/featflow/internal/log"
	"github.com/HendryAvila/featflow/internal/prompts"
	"github.com/HendryAvila/featflow/internal/resources"
	"github.com/HendryAvila/featflow/internal/templates"
	"github.com/HendryAvila/featflow/internal/tools"
	"github.com/HendryAvila/featflow/internal/workflow"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the workflow database and must
// be called on shutdown (typically via defer). It is always non-nil.
func New() (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	root, err := findProjectRoot()
	if err != nil {
		return nil, noop, fmt.Errorf("finding project root: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, noop, err
	}

	store, err := workflow.OpenSQLite(cfg.DatabasePath())
	if err != nil {
		return nil, noop, err
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			log.GetLogger().Warnf("workflow store close: %v", err)
		}
	}

	source := templates.NewSource(cfg.TemplatesDir)
	allocator := features.NewAllocator(cfg.FeaturesDir, source)

	manager := workflow.NewManager(store, allocator)
	manager.SetChecklistWriter(checklist.Writer{})
	synchronizer := checklist.NewSynchronizer(manager)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"featflow",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register workflow tools ---

	createTool := tools.NewCreateWorkflowTool(manager)
	s.AddTool(createTool.Definition(), createTool.Handle)

	getTool := tools.NewGetWorkflowTool(manager)
	s.AddTool(getTool.Definition(), getTool.Handle)

	listTool := tools.NewListWorkflowsTool(manager)
	s.AddTool(listTool.Definition(), listTool.Handle)

	deleteTool := tools.NewDeleteWorkflowTool(manager)
	s.AddTool(deleteTool.Definition(), deleteTool.Handle)

	summaryTool := tools.NewWorkflowSummaryTool(manager)
	s.AddTool(summaryTool.Definition(), summaryTool.Handle)

	// --- Register task tools ---

	completeTool := tools.NewCompleteTaskTool(manager)
	s.AddTool(completeTool.Definition(), completeTool.Handle)

	uncompleteTool := tools.NewUncompleteTaskTool(manager)
	s.AddTool(uncompleteTool.Definition(), uncompleteTool.Handle)

	addTaskTool := tools.NewAddTaskTool(manager)
	s.AddTool(addTaskTool.Definition(), addTaskTool.Handle)

	listTasksTool := tools.NewListTasksTool(manager)
	s.AddTool(listTasksTool.Definition(), listTasksTool.Handle)

	// --- Register checklist sync tools ---
	//
	// These maintain the markdown checklist alongside the record store.
	// The store is authoritative; sync failures surface as flags in the
	// result, never as hard errors.

	syncUpdateTool := tools.NewSyncUpdateTaskTool(manager, synchronizer)
	s.AddTool(syncUpdateTool.Definition(), syncUpdateTool.Handle)

	syncAddTool := tools.NewSyncAddTaskTool(manager, synchronizer)
	s.AddTool(syncAddTool.Definition(), syncAddTool.Handle)

	progressTool := tools.NewProgressSummaryTool(manager)
	s.AddTool(progressTool.Definition(), progressTool.Handle)

	checkpointTool := tools.NewCheckpointTool(manager)
	s.AddTool(checkpointTool.Definition(), checkpointTool.Handle)

	// --- Register feature directory tools ---
	//
	// These work from the filesystem alone so they also cover
	// directories whose workflow records are gone.

	listFeaturesTool := tools.NewListFeaturesTool(allocator)
	s.AddTool(listFeaturesTool.Definition(), listFeaturesTool.Handle)

	featureProgressTool := tools.NewFeatureProgressTool(allocator)
	s.AddTool(featureProgressTool.Definition(), featureProgressTool.Handle)

	featureTaskTool := tools.NewFeatureTaskTool(allocator)
	s.AddTool(featureTaskTool.Definition(), featureTaskTool.Handle)

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(store)
	s.AddResource(resourceHandler.WorkflowsResource(), resourceHandler.HandleWorkflows)
	s.AddResource(resourceHandler.TemplateResource(), resourceHandler.HandleTemplate)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used before the store is open.
func noop() {}

// findProjectRoot walks up from the current working directory looking
// for an existing .featflow/ directory. If none is found, returns cwd —
// the data dir is then created there on first use.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	current := dir
	for {
		candidate := filepath.Join(current, config.DefaultDataDir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}

// serverInstructions returns the system instructions that tell the AI
// host how to drive the feature workflow tools.
func serverInstructions() string {
	return `You have access to featflow, a feature workflow MCP server.

## WHEN TO ACTIVATE featflow

Proactively suggest featflow when the user:
- Asks to add a new feature or major enhancement
- Wants to plan multi-phase development work
- Says things like "let's build...", "add a feature for...", "plan out..."

You do NOT need featflow for one-liner changes, questions, or quick fixes.

## THE WORKFLOW MODEL

Every feature moves through fixed phases:
user-stories → architecture → implementation → testing → completed

A workflow is created with create_feature_workflow. This:
1. Allocates a numbered directory (e.g. '3-feat-user-login') under the
   project's features root, seeded with one document per phase plus
   context.md and the tasks.md checklist
2. Inserts the workflow with a default checklist of tasks spanning all
   phases (six per phase)

Status, current phase, and progress are DERIVED from task state — never
set them manually. The earliest incomplete task decides the current
phase; completing or reopening tasks moves the phase forward or
backward automatically.

## KEEPING THE CHECKLIST IN SYNC

Prefer update_task_with_sync and add_task_with_sync over the plain task
tools: they mirror every change into tasks.md so the user can watch
progress in their editor. The result reports markdown_updated and
database_updated separately — the database is authoritative, so a
false markdown_updated is a soft warning, not a failure.

## RECOMMENDED FLOW

1. create_feature_workflow when starting a feature
2. Work through tasks phase by phase, marking each with
   update_task_with_sync
3. get_workflow_summary to review per-phase progress
4. create_checkpoint at the end of each phase before moving on
5. list_project_features for a bird's-eye view of all features

Use the feature-start and feature-status prompts when the user wants a
guided flow.`
}
