package tools

import (
	"context"

	"github.com/HendryAvila/featflow/internal/workflow"
	"github.com/mark3labs/mcp-go/mcp"
)

// WorkflowSummaryTool handles the get_workflow_summary MCP tool.
type WorkflowSummaryTool struct {
	manager *workflow.Manager
}

func NewWorkflowSummaryTool(manager *workflow.Manager) *WorkflowSummaryTool {
	return &WorkflowSummaryTool{manager: manager}
}

func (t *WorkflowSummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("get_workflow_summary",
		mcp.WithDescription(
			"Get a summary of workflow progress: the workflow row plus task "+
				"counts grouped by phase in template order.",
		),
		mcp.WithString("workflow_id",
			mcp.Required(),
			mcp.Description("Workflow ID"),
		),
	)
}

type workflowSummaryResponse struct {
	Success bool              `json:"success"`
	Summary *workflow.Summary `json:"summary"`
}

func (t *WorkflowSummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("workflow_id", "")
	if id == "" {
		return mcp.NewToolResultError("'workflow_id' is required"), nil
	}

	summary, err := t.manager.GetWorkflowSummary(id)
	if err != nil {
		return domainResult(err)
	}
	return jsonResult(workflowSummaryResponse{Success: true, Summary: summary})
}
