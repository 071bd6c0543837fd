package tools

import (
	"context"
	"strings"

	"github.com/HendryAvila/featflow/internal/checklist"
	"github.com/HendryAvila/featflow/internal/workflow"
	"github.com/mark3labs/mcp-go/mcp"
)

// SyncAddTaskTool handles the add_task_with_sync MCP tool.
type SyncAddTaskTool struct {
	manager *workflow.Manager
	sync    *checklist.Synchronizer
}

func NewSyncAddTaskTool(manager *workflow.Manager, sync *checklist.Synchronizer) *SyncAddTaskTool {
	return &SyncAddTaskTool{manager: manager, sync: sync}
}

func (t *SyncAddTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("add_task_with_sync",
		mcp.WithDescription(
			"Add a new task with markdown and database synchronization. The task "+
				"row is inserted and a checklist line is appended to the phase's "+
				"section; without a matching phase heading the checklist is left "+
				"untouched and markdown_updated is false.",
		),
		mcp.WithString("workflow_id",
			mcp.Required(),
			mcp.Description("The workflow ID"),
		),
		mcp.WithString("phase",
			mcp.Required(),
			mcp.Description("The phase this task belongs to"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("Task description"),
		),
		mcp.WithString("priority",
			mcp.Description("Task priority (default: medium)"),
			mcp.Enum("low", "medium", "high", "critical"),
		),
	)
}

type syncAddResponse struct {
	Success bool `json:"success"`
	checklist.AddResult
}

func (t *SyncAddTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workflowID := req.GetString("workflow_id", "")
	phase := strings.TrimSpace(req.GetString("phase", ""))
	description := strings.TrimSpace(req.GetString("description", ""))
	priority := req.GetString("priority", "")

	if workflowID == "" {
		return mcp.NewToolResultError("'workflow_id' is required"), nil
	}
	if phase == "" {
		return mcp.NewToolResultError("'phase' is required"), nil
	}
	if description == "" {
		return mcp.NewToolResultError("'description' is required"), nil
	}

	w, err := t.manager.GetWorkflow(workflowID)
	if err != nil {
		return domainResult(err)
	}

	result, err := t.sync.AddTask(w.Directory, workflowID, phase, description, priority)
	if err != nil {
		return domainResult(err)
	}
	return jsonResult(syncAddResponse{Success: true, AddResult: result})
}
