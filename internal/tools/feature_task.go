package tools

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/HendryAvila/featflow/internal/checklist"
	"github.com/HendryAvila/featflow/internal/features"
	"github.com/mark3labs/mcp-go/mcp"
)

// FeatureTaskTool handles the update_feature_task MCP tool. It toggles
// a checklist checkbox by its description text, markdown only — for
// feature directories maintained without workflow records.
type FeatureTaskTool struct {
	allocator *features.Allocator
}

func NewFeatureTaskTool(allocator *features.Allocator) *FeatureTaskTool {
	return &FeatureTaskTool{allocator: allocator}
}

func (t *FeatureTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("update_feature_task",
		mcp.WithDescription(
			"Update a checklist task within a specific feature directory by its "+
				"description text. Touches only the markdown file; use "+
				"update_task_with_sync for record-backed tasks.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project ID"),
		),
		mcp.WithString("feature_directory",
			mcp.Required(),
			mcp.Description("The feature directory name"),
		),
		mcp.WithString("task_description",
			mcp.Required(),
			mcp.Description("The task description to find and update"),
		),
		mcp.WithBoolean("completed",
			mcp.Required(),
			mcp.Description("Whether the task is completed"),
		),
	)
}

type featureTaskResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Completed bool   `json:"completed"`
}

func (t *FeatureTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	featureDir := req.GetString("feature_directory", "")
	description := strings.TrimSpace(req.GetString("task_description", ""))
	completed := optionalBool(req, "completed")

	if projectID == "" {
		return mcp.NewToolResultError("'project_id' is required"), nil
	}
	if featureDir == "" {
		return mcp.NewToolResultError("'feature_directory' is required"), nil
	}
	if description == "" {
		return mcp.NewToolResultError("'task_description' is required"), nil
	}
	if completed == nil {
		return mcp.NewToolResultError("'completed' is required"), nil
	}

	dir := filepath.Join(t.allocator.ProjectDir(projectID), featureDir)
	if err := checklist.ToggleByDescription(dir, description, *completed); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(featureTaskResponse{
		Success:   true,
		Message:   "Task '" + description + "' updated in feature '" + featureDir + "'",
		Completed: *completed,
	})
}
