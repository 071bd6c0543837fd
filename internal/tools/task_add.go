package tools

import (
	"context"
	"strings"

	"github.com/HendryAvila/featflow/internal/workflow"
	"github.com/mark3labs/mcp-go/mcp"
)

// AddTaskTool handles the add_workflow_task MCP tool.
type AddTaskTool struct {
	manager *workflow.Manager
}

func NewAddTaskTool(manager *workflow.Manager) *AddTaskTool {
	return &AddTaskTool{manager: manager}
}

func (t *AddTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("add_workflow_task",
		mcp.WithDescription(
			"Add a custom task to a workflow phase. The task is appended after "+
				"the template tasks and the workflow state is recomputed.",
		),
		mcp.WithString("workflow_id",
			mcp.Required(),
			mcp.Description("Workflow ID"),
		),
		mcp.WithString("phase",
			mcp.Required(),
			mcp.Description("Workflow phase the task belongs to"),
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

type addTaskResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Task    workflow.Task `json:"task"`
}

func (t *AddTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	task, err := t.manager.AddCustomTask(workflowID, phase, description, priority)
	if err != nil {
		return domainResult(err)
	}

	return jsonResult(addTaskResponse{
		Success: true,
		Message: "Task added to phase '" + phase + "'",
		Task:    task,
	})
}
