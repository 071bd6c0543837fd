package tools

import (
	"context"
	"strings"

	"github.com/HendryAvila/featflow/internal/workflow"
	"github.com/mark3labs/mcp-go/mcp"
)

// CreateWorkflowTool handles the create_feature_workflow MCP tool.
// It allocates a numbered feature directory, seeds the phase documents,
// and creates the workflow with its default task checklist.
type CreateWorkflowTool struct {
	manager *workflow.Manager
}

func NewCreateWorkflowTool(manager *workflow.Manager) *CreateWorkflowTool {
	return &CreateWorkflowTool{manager: manager}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateWorkflowTool) Definition() mcp.Tool {
	return mcp.NewTool("create_feature_workflow",
		mcp.WithDescription(
			"Create a new feature workflow for development. Allocates a numbered "+
				"feature directory (e.g. '3-feat-user-login') seeded with phase documents, "+
				"and creates the workflow with its default task checklist spanning "+
				"user-stories, architecture, implementation, and testing.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project ID the feature belongs to"),
		),
		mcp.WithString("feature_name",
			mcp.Required(),
			mcp.Description("Name of the feature. Used for the directory slug and document titles."),
		),
		mcp.WithString("workflow_type",
			mcp.Description("Conventional-commit prefix for the directory name (default: feat)"),
			mcp.Enum("feat", "fix", "refactor", "chore", "docs"),
		),
		mcp.WithString("description",
			mcp.Description("Optional description of the feature"),
		),
	)
}

type createWorkflowResponse struct {
	Success      bool               `json:"success"`
	Message      string             `json:"message"`
	Workflow     *workflow.Workflow `json:"workflow"`
	TasksCreated int                `json:"tasks_created"`
}

// Handle processes the create_feature_workflow tool call.
func (t *CreateWorkflowTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := strings.TrimSpace(req.GetString("project_id", ""))
	featureName := strings.TrimSpace(req.GetString("feature_name", ""))
	workflowType := req.GetString("workflow_type", "")

	if projectID == "" {
		return mcp.NewToolResultError("'project_id' is required"), nil
	}
	if featureName == "" {
		return mcp.NewToolResultError("'feature_name' is required"), nil
	}

	w, tasks, err := t.manager.CreateFeatureWorkflow(projectID, featureName, workflowType, nil)
	if err != nil {
		return domainResult(err)
	}

	return jsonResult(createWorkflowResponse{
		Success:      true,
		Message:      "Feature workflow created for '" + featureName + "'",
		Workflow:     w,
		TasksCreated: len(tasks),
	})
}
