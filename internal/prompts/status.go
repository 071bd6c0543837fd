package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the feature-status MCP prompt.
// It instructs the AI to read and present a workflow's current state.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("feature-status",
		mcp.WithPromptDescription(
			"Check the current status of a feature workflow. "+
				"Shows phase progress, remaining tasks, and what to do next.",
		),
		mcp.WithArgument("workflow_id",
			mcp.ArgumentDescription("The workflow to report on"),
		),
	)
}

// Handle processes the feature-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	workflowID := ""
	if args := req.Params.Arguments; args != nil {
		workflowID = args["workflow_id"]
	}

	instruction := "Please run `get_workflow_summary`"
	if workflowID != "" {
		instruction += " for workflow `" + workflowID + "`"
	} else {
		instruction += " (use `list_feature_workflows` first if you don't have the workflow id)"
	}
	instruction += " to check my feature's status.\n\n" +
		"Then:\n" +
		"1. Show the per-phase progress in a clear, visual format\n" +
		"2. Point out the current phase and the next incomplete tasks\n" +
		"3. Tell me exactly what I should work on next\n" +
		"4. If a phase just finished, suggest running `create_checkpoint` before moving on"

	return &mcp.GetPromptResult{
		Description: "Feature Workflow Status",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(instruction),
			},
		},
	}, nil
}
