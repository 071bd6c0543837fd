package tools

import (
	"context"

	"github.com/HendryAvila/featflow/internal/checklist"
	"github.com/HendryAvila/featflow/internal/workflow"
	"github.com/mark3labs/mcp-go/mcp"
)

// SyncUpdateTaskTool handles the update_task_with_sync MCP tool.
// It applies a completion change to the record store and mirrors it
// into the checklist document, reporting both halves independently.
type SyncUpdateTaskTool struct {
	manager *workflow.Manager
	sync    *checklist.Synchronizer
}

func NewSyncUpdateTaskTool(manager *workflow.Manager, sync *checklist.Synchronizer) *SyncUpdateTaskTool {
	return &SyncUpdateTaskTool{manager: manager, sync: sync}
}

func (t *SyncUpdateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("update_task_with_sync",
		mcp.WithDescription(
			"Update a task's completion with markdown and database synchronization. "+
				"The record store is authoritative; a failed markdown write is reported "+
				"as markdown_updated=false, never as an error.",
		),
		mcp.WithString("workflow_id",
			mcp.Required(),
			mcp.Description("The workflow ID"),
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID to update"),
		),
		mcp.WithBoolean("completed",
			mcp.Required(),
			mcp.Description("Whether the task is completed"),
		),
		mcp.WithString("notes",
			mcp.Description("Optional notes about the task update"),
		),
	)
}

type syncUpdateResponse struct {
	Success bool `json:"success"`
	checklist.SyncResult
}

func (t *SyncUpdateTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workflowID := req.GetString("workflow_id", "")
	taskID := req.GetString("task_id", "")
	completed := optionalBool(req, "completed")

	if workflowID == "" {
		return mcp.NewToolResultError("'workflow_id' is required"), nil
	}
	if taskID == "" {
		return mcp.NewToolResultError("'task_id' is required"), nil
	}
	if completed == nil {
		return mcp.NewToolResultError("'completed' is required"), nil
	}

	w, err := t.manager.GetWorkflow(workflowID)
	if err != nil {
		return domainResult(err)
	}

	result, err := t.sync.UpdateTask(w.Directory, taskID, *completed, optionalNotes(req, "notes"))
	if err != nil {
		return domainResult(err)
	}
	return jsonResult(syncUpdateResponse{Success: true, SyncResult: result})
}
