package tools

import (
	"context"

	"github.com/HendryAvila/featflow/internal/workflow"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListTasksTool handles the get_workflow_tasks MCP tool.
type ListTasksTool struct {
	manager *workflow.Manager
}

func NewListTasksTool(manager *workflow.Manager) *ListTasksTool {
	return &ListTasksTool{manager: manager}
}

func (t *ListTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("get_workflow_tasks",
		mcp.WithDescription("Get a workflow's tasks in template order, optionally filtered"),
		mcp.WithString("workflow_id",
			mcp.Required(),
			mcp.Description("Workflow ID"),
		),
		mcp.WithString("phase",
			mcp.Description("Optional phase filter"),
		),
		mcp.WithBoolean("completed",
			mcp.Description("Optional completion filter"),
		),
	)
}

type listTasksResponse struct {
	Success    bool            `json:"success"`
	WorkflowID string          `json:"workflow_id"`
	Tasks      []workflow.Task `json:"tasks"`
}

func (t *ListTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workflowID := req.GetString("workflow_id", "")
	if workflowID == "" {
		return mcp.NewToolResultError("'workflow_id' is required"), nil
	}

	tasks, err := t.manager.GetTasks(workflowID, req.GetString("phase", ""), optionalBool(req, "completed"))
	if err != nil {
		return domainResult(err)
	}
	if tasks == nil {
		tasks = []workflow.Task{}
	}
	return jsonResult(listTasksResponse{Success: true, WorkflowID: workflowID, Tasks: tasks})
}
