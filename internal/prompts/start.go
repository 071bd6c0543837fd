// Package prompts implements MCP prompt handlers for the feature
// workflow engine.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the feature-start MCP prompt.
// It guides the AI through creating a new feature workflow and kicking
// off its first phase.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("feature-start",
		mcp.WithPromptDescription(
			"Start a new feature workflow. Creates the numbered feature "+
				"directory with phase documents and the default task checklist, "+
				"then walks you into the user-stories phase.",
		),
		mcp.WithArgument("project_id",
			mcp.ArgumentDescription("Project the feature belongs to"),
		),
		mcp.WithArgument("feature_name",
			mcp.ArgumentDescription("Name of the feature to build"),
		),
	)
}

// Handle processes the feature-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	projectID := "my-project"
	featureName := "my feature"
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["project_id"]; ok && v != "" {
			projectID = v
		}
		if v, ok := args["feature_name"]; ok && v != "" {
			featureName = v
		}
	}

	text := fmt.Sprintf(
		"I want to start building %q in project %q.\n\n"+
			"Please:\n"+
			"1. Run `create_feature_workflow` with project_id=%q and feature_name=%q\n"+
			"2. Show me the created directory and the task checklist grouped by phase\n"+
			"3. Open the user-stories phase: walk me through the first tasks one by one\n"+
			"4. As we finish each task, mark it done with `update_task_with_sync` so the "+
			"checklist file stays in sync\n",
		featureName, projectID, projectID, featureName,
	)

	return &mcp.GetPromptResult{
		Description: "Start a Feature Workflow",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}
