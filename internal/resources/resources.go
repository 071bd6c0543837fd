// Package resources implements MCP resource handlers for the feature
// workflow engine.
//
// Resources provide read-only data that the host can consume for
// context. They use URI-based addressing (featflow://...) following MCP
// conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/featflow/internal/workflow"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler manages the workflow resource endpoints.
type Handler struct {
	store workflow.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store workflow.Store) *Handler {
	return &Handler{store: store}
}

// WorkflowsResource returns the MCP resource definition for the
// workflow listing.
func (h *Handler) WorkflowsResource() mcp.Resource {
	return mcp.NewResource(
		"featflow://workflows",
		"Feature Workflows",
		mcp.WithResourceDescription("All feature workflows with status, phase, and progress"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleWorkflows returns every workflow as JSON.
func (h *Handler) HandleWorkflows(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	workflows, err := h.store.AllWorkflows()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	if workflows == nil {
		workflows = []workflow.Workflow{}
	}

	data, err := json.MarshalIndent(workflows, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling workflows: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// TemplateResource returns the MCP resource definition for the default
// task template.
func (h *Handler) TemplateResource() mcp.Resource {
	return mcp.NewResource(
		"featflow://template/default-tasks",
		"Default Task Template",
		mcp.WithResourceDescription("The ordered default checklist inserted for every new workflow"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleTemplate returns the default task template as JSON.
func (h *Handler) HandleTemplate(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	type entry struct {
		Phase       workflow.Phase `json:"phase"`
		Description string         `json:"description"`
	}
	entries := make([]entry, 0, len(workflow.DefaultTaskTemplate))
	for _, t := range workflow.DefaultTaskTemplate {
		entries = append(entries, entry{Phase: t.Phase, Description: t.Description})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling template: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
