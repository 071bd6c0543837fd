// Package tools implements the MCP tool handlers for the feature
// workflow engine.
//
// Each tool is a struct that receives its dependencies at construction
// (DIP) and exposes a Definition for registration plus a Handle method
// compatible with mcp-go's CallToolRequest signature.
//
// Design principles:
// - SRP: each file = one tool
// - DIP: tools depend on the workflow manager, synchronizer, and
//   allocator — never on the database directly
// - OCP: new tools are added without modifying existing ones
//
// Every handler returns a JSON body with a success flag; argument
// validation failures come back as tool errors, storage failures as
// Go errors so the transport can surface them.
package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/HendryAvila/featflow/internal/workflow"
	"github.com/mark3labs/mcp-go/mcp"
)

// jsonResult marshals the response body into an indented JSON text
// result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// domainResult converts not-found lookups and rejected arguments into
// tool errors the caller can read, and passes everything else up as a
// hard failure.
func domainResult(err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, workflow.ErrWorkflowNotFound) ||
		errors.Is(err, workflow.ErrTaskNotFound) ||
		errors.Is(err, workflow.ErrInvalidInput) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, err
}

// optionalBool reads a boolean argument that may be absent, which is
// different from false for filter semantics.
func optionalBool(req mcp.CallToolRequest, name string) *bool {
	raw, ok := req.GetArguments()[name]
	if !ok {
		return nil
	}
	b, ok := raw.(bool)
	if !ok {
		return nil
	}
	return &b
}

// optionalNotes turns an empty notes argument into nil so the store
// keeps NULL instead of "".
func optionalNotes(req mcp.CallToolRequest, name string) *string {
	s := req.GetString(name, "")
	if s == "" {
		return nil
	}
	return &s
}
