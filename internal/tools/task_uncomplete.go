package tools

import (
	"context"

	"github.com/HendryAvila/featflow/internal/workflow"
	"github.com/mark3labs/mcp-go/mcp"
)

// UncompleteTaskTool handles the uncomplete_workflow_task MCP tool.
// Reopening a task clears its completion time and notes; the workflow
// phase may move backward as a result.
type UncompleteTaskTool struct {
	manager *workflow.Manager
}

func NewUncompleteTaskTool(manager *workflow.Manager) *UncompleteTaskTool {
	return &UncompleteTaskTool{manager: manager}
}

func (t *UncompleteTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("uncomplete_workflow_task",
		mcp.WithDescription(
			"Mark a workflow task as incomplete. Completion time and notes are "+
				"cleared and the workflow state is recomputed — the phase can revert "+
				"to an earlier one.",
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task ID"),
		),
	)
}

func (t *UncompleteTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID := req.GetString("task_id", "")
	if taskID == "" {
		return mcp.NewToolResultError("'task_id' is required"), nil
	}

	task, err := t.manager.UncompleteTask(taskID)
	if err != nil {
		return domainResult(err)
	}
	w, err := t.manager.GetWorkflow(task.WorkflowID)
	if err != nil {
		return domainResult(err)
	}

	return jsonResult(taskMutationResponse{
		Success:  true,
		Message:  "Task reopened",
		Task:     task,
		Workflow: w,
	})
}
