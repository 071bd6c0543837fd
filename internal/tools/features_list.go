package tools

import (
	"context"

	"github.com/HendryAvila/featflow/internal/features"
	"github.com/HendryAvila/featflow/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListFeaturesTool handles the list_project_features MCP tool. It works
// from the filesystem alone, so it also sees feature directories whose
// workflow records were deleted.
type ListFeaturesTool struct {
	allocator *features.Allocator
}

func NewListFeaturesTool(allocator *features.Allocator) *ListFeaturesTool {
	return &ListFeaturesTool{allocator: allocator}
}

func (t *ListFeaturesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_project_features",
		mcp.WithDescription(
			"List all feature directories for a project with their checklist progress, "+
				"in sequence order.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project ID"),
		),
	)
}

type featureEntry struct {
	features.Info
	features.Progress
}

type listFeaturesResponse struct {
	Success   bool           `json:"success"`
	ProjectID string         `json:"project_id"`
	Features  []featureEntry `json:"features"`
}

func (t *ListFeaturesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	if projectID == "" {
		return mcp.NewToolResultError("'project_id' is required"), nil
	}

	infos, err := t.allocator.List(projectID)
	if err != nil {
		return nil, err
	}

	entries := make([]featureEntry, 0, len(infos))
	for _, info := range infos {
		entry := featureEntry{Info: info}
		progress, err := t.allocator.ChecklistProgress(projectID, info.Directory)
		if err != nil {
			// A directory without a checklist still counts as a feature.
			log.GetLogger().Debugf("no checklist progress for %s: %v", info.Directory, err)
			progress = features.Progress{Status: "not_started"}
		}
		entry.Progress = progress
		entries = append(entries, entry)
	}

	return jsonResult(listFeaturesResponse{Success: true, ProjectID: projectID, Features: entries})
}
