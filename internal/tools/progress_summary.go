package tools

import (
	"context"

	"github.com/HendryAvila/featflow/internal/checklist"
	"github.com/HendryAvila/featflow/internal/workflow"
	"github.com/mark3labs/mcp-go/mcp"
)

// ProgressSummaryTool handles the generate_progress_summary MCP tool.
type ProgressSummaryTool struct {
	manager *workflow.Manager
}

func NewProgressSummaryTool(manager *workflow.Manager) *ProgressSummaryTool {
	return &ProgressSummaryTool{manager: manager}
}

func (t *ProgressSummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_progress_summary",
		mcp.WithDescription("Generate a human-readable progress summary for a workflow"),
		mcp.WithString("workflow_id",
			mcp.Required(),
			mcp.Description("The workflow ID"),
		),
	)
}

type progressSummaryResponse struct {
	Success        bool   `json:"success"`
	WorkflowID     string `json:"workflow_id"`
	TotalTasks     int    `json:"total_tasks"`
	CompletedTasks int    `json:"completed_tasks"`
	Progress       int    `json:"progress"`
	Summary        string `json:"summary"`
}

func (t *ProgressSummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("workflow_id", "")
	if id == "" {
		return mcp.NewToolResultError("'workflow_id' is required"), nil
	}

	summary, err := t.manager.GetWorkflowSummary(id)
	if err != nil {
		return domainResult(err)
	}

	return jsonResult(progressSummaryResponse{
		Success:        true,
		WorkflowID:     id,
		TotalTasks:     summary.TotalTasks,
		CompletedTasks: summary.CompletedTasks,
		Progress:       summary.Workflow.Progress,
		Summary:        checklist.ProgressSummaryMessage(summary.CompletedTasks, summary.TotalTasks),
	})
}
