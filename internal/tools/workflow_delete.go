package tools

import (
	"context"

	"github.com/HendryAvila/featflow/internal/workflow"
	"github.com/mark3labs/mcp-go/mcp"
)

// DeleteWorkflowTool handles the delete_feature_workflow MCP tool.
// Removes the workflow and its tasks from the store; the feature
// directory is left on disk so its number is never reused.
type DeleteWorkflowTool struct {
	manager *workflow.Manager
}

func NewDeleteWorkflowTool(manager *workflow.Manager) *DeleteWorkflowTool {
	return &DeleteWorkflowTool{manager: manager}
}

func (t *DeleteWorkflowTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_feature_workflow",
		mcp.WithDescription(
			"Delete a feature workflow and all of its tasks. The on-disk feature "+
				"directory is kept.",
		),
		mcp.WithString("workflow_id",
			mcp.Required(),
			mcp.Description("Workflow ID"),
		),
	)
}

type deleteWorkflowResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (t *DeleteWorkflowTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("workflow_id", "")
	if id == "" {
		return mcp.NewToolResultError("'workflow_id' is required"), nil
	}

	if err := t.manager.DeleteWorkflow(id); err != nil {
		return domainResult(err)
	}
	return jsonResult(deleteWorkflowResponse{Success: true, Message: "Workflow " + id + " deleted"})
}
