package tools

import (
	"context"

	"github.com/HendryAvila/featflow/internal/features"
	"github.com/mark3labs/mcp-go/mcp"
)

// FeatureProgressTool handles the get_feature_progress MCP tool.
// Progress is counted straight from the checklist's checkboxes, making
// it usable for directories without workflow records.
type FeatureProgressTool struct {
	allocator *features.Allocator
}

func NewFeatureProgressTool(allocator *features.Allocator) *FeatureProgressTool {
	return &FeatureProgressTool{allocator: allocator}
}

func (t *FeatureProgressTool) Definition() mcp.Tool {
	return mcp.NewTool("get_feature_progress",
		mcp.WithDescription("Get checkbox-level progress for one feature directory"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project ID"),
		),
		mcp.WithString("feature_directory",
			mcp.Required(),
			mcp.Description("The feature directory name, e.g. '3-feat-user-login'"),
		),
	)
}

type featureProgressResponse struct {
	Success          bool   `json:"success"`
	FeatureDirectory string `json:"feature_directory"`
	features.Progress
}

func (t *FeatureProgressTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	featureDir := req.GetString("feature_directory", "")

	if projectID == "" {
		return mcp.NewToolResultError("'project_id' is required"), nil
	}
	if featureDir == "" {
		return mcp.NewToolResultError("'feature_directory' is required"), nil
	}

	progress, err := t.allocator.ChecklistProgress(projectID, featureDir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(featureProgressResponse{
		Success:          true,
		FeatureDirectory: featureDir,
		Progress:         progress,
	})
}
