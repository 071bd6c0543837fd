package tools

import (
	"context"

	"github.com/HendryAvila/featflow/internal/workflow"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetWorkflowTool handles the get_feature_workflow MCP tool.
type GetWorkflowTool struct {
	manager *workflow.Manager
}

func NewGetWorkflowTool(manager *workflow.Manager) *GetWorkflowTool {
	return &GetWorkflowTool{manager: manager}
}

func (t *GetWorkflowTool) Definition() mcp.Tool {
	return mcp.NewTool("get_feature_workflow",
		mcp.WithDescription("Get details of a feature workflow"),
		mcp.WithString("workflow_id",
			mcp.Required(),
			mcp.Description("Workflow ID"),
		),
	)
}

type getWorkflowResponse struct {
	Success  bool               `json:"success"`
	Workflow *workflow.Workflow `json:"workflow"`
}

func (t *GetWorkflowTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("workflow_id", "")
	if id == "" {
		return mcp.NewToolResultError("'workflow_id' is required"), nil
	}

	w, err := t.manager.GetWorkflow(id)
	if err != nil {
		return domainResult(err)
	}
	return jsonResult(getWorkflowResponse{Success: true, Workflow: w})
}
