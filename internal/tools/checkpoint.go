package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HendryAvila/featflow/internal/checklist"
	"github.com/HendryAvila/featflow/internal/log"
	"github.com/HendryAvila/featflow/internal/workflow"
	"github.com/mark3labs/mcp-go/mcp"
)

// CheckpointTool handles the create_checkpoint MCP tool. A checkpoint
// is a phase-review gate: the validation message goes back to the
// caller and a dated checkpoint document is dropped into the feature
// directory for the record.
type CheckpointTool struct {
	manager *workflow.Manager
}

func NewCheckpointTool(manager *workflow.Manager) *CheckpointTool {
	return &CheckpointTool{manager: manager}
}

func (t *CheckpointTool) Definition() mcp.Tool {
	return mcp.NewTool("create_checkpoint",
		mcp.WithDescription(
			"Create a checkpoint validation for a workflow phase. Returns the "+
				"review message and writes a dated checkpoint document into the "+
				"feature directory.",
		),
		mcp.WithString("workflow_id",
			mcp.Required(),
			mcp.Description("The workflow ID"),
		),
		mcp.WithString("phase",
			mcp.Required(),
			mcp.Description("The phase to create a checkpoint for"),
		),
		mcp.WithString("validation_notes",
			mcp.Description("Notes about validation and completion"),
		),
	)
}

type checkpointResponse struct {
	Success        bool   `json:"success"`
	Checkpoint     string `json:"checkpoint"`
	CheckpointFile string `json:"checkpoint_file,omitempty"`
}

func (t *CheckpointTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workflowID := req.GetString("workflow_id", "")
	phase := strings.TrimSpace(req.GetString("phase", ""))
	notes := req.GetString("validation_notes", "")

	if workflowID == "" {
		return mcp.NewToolResultError("'workflow_id' is required"), nil
	}
	if phase == "" {
		return mcp.NewToolResultError("'phase' is required"), nil
	}

	summary, err := t.manager.GetWorkflowSummary(workflowID)
	if err != nil {
		return domainResult(err)
	}

	message := checklist.CheckpointMessage(phase, summary.CompletedTasks, summary.TotalTasks)

	resp := checkpointResponse{Success: true, Checkpoint: message}
	if summary.Workflow.Directory != "" {
		if file, err := t.writeCheckpointFile(summary, phase, notes); err != nil {
			log.GetLogger().Warnf("checkpoint file not written for %s: %v", workflowID, err)
		} else {
			resp.CheckpointFile = file
		}
	}
	return jsonResult(resp)
}

// writeCheckpointFile records the checkpoint as a dated markdown
// document next to the checklist. Best effort; the returned message is
// the authoritative artifact.
func (t *CheckpointTool) writeCheckpointFile(summary *workflow.Summary, phase, notes string) (string, error) {
	now := timeNow().UTC()
	if notes == "" {
		notes = "None."
	}
	content := fmt.Sprintf(
		"# Checkpoint: %s Review\n\n"+
			"**Workflow:** %s\n"+
			"**Date:** %s\n"+
			"**Progress:** %d/%d tasks completed (%d%%)\n"+
			"**Status:** %s\n\n"+
			"## Validation Notes\n\n%s\n",
		phase,
		summary.Workflow.ID,
		now.Format(time.RFC3339),
		summary.CompletedTasks,
		summary.TotalTasks,
		summary.Workflow.Progress,
		summary.Workflow.Status,
		notes,
	)

	path := filepath.Join(summary.Workflow.Directory, fmt.Sprintf("checkpoint-%d.md", now.UnixMilli()))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
