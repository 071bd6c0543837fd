package tools

import (
	"context"

	"github.com/HendryAvila/featflow/internal/workflow"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListWorkflowsTool handles the list_feature_workflows MCP tool.
type ListWorkflowsTool struct {
	manager *workflow.Manager
}

func NewListWorkflowsTool(manager *workflow.Manager) *ListWorkflowsTool {
	return &ListWorkflowsTool{manager: manager}
}

func (t *ListWorkflowsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_feature_workflows",
		mcp.WithDescription("List all feature workflows for a project, newest first"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
	)
}

type listWorkflowsResponse struct {
	Success   bool                `json:"success"`
	ProjectID string              `json:"project_id"`
	Workflows []workflow.Workflow `json:"workflows"`
}

func (t *ListWorkflowsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	if projectID == "" {
		return mcp.NewToolResultError("'project_id' is required"), nil
	}

	workflows, err := t.manager.ListWorkflows(projectID)
	if err != nil {
		return domainResult(err)
	}
	if workflows == nil {
		workflows = []workflow.Workflow{}
	}
	return jsonResult(listWorkflowsResponse{Success: true, ProjectID: projectID, Workflows: workflows})
}
