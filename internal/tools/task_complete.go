package tools

import (
	"context"

	"github.com/HendryAvila/featflow/internal/workflow"
	"github.com/mark3labs/mcp-go/mcp"
)

// CompleteTaskTool handles the complete_workflow_task MCP tool.
// Completing a task re-derives the workflow's phase, status, and
// progress from the remaining task state.
type CompleteTaskTool struct {
	manager *workflow.Manager
}

func NewCompleteTaskTool(manager *workflow.Manager) *CompleteTaskTool {
	return &CompleteTaskTool{manager: manager}
}

func (t *CompleteTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("complete_workflow_task",
		mcp.WithDescription(
			"Mark a workflow task as completed. The workflow's current phase, "+
				"status, and progress are recomputed from task state.",
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task ID"),
		),
		mcp.WithString("notes",
			mcp.Description("Optional completion notes"),
		),
	)
}

type taskMutationResponse struct {
	Success  bool               `json:"success"`
	Message  string             `json:"message"`
	Task     workflow.Task      `json:"task"`
	Workflow *workflow.Workflow `json:"workflow"`
}

func (t *CompleteTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID := req.GetString("task_id", "")
	if taskID == "" {
		return mcp.NewToolResultError("'task_id' is required"), nil
	}

	task, err := t.manager.CompleteTask(taskID, optionalNotes(req, "notes"))
	if err != nil {
		return domainResult(err)
	}
	w, err := t.manager.GetWorkflow(task.WorkflowID)
	if err != nil {
		return domainResult(err)
	}

	return jsonResult(taskMutationResponse{
		Success:  true,
		Message:  "Task completed",
		Task:     task,
		Workflow: w,
	})
}
