package workflow

import "errors"

// Sentinel errors. Callers match with errors.Is to distinguish a
// missing record or a rejected argument from a storage failure.
var (
	ErrWorkflowNotFound = errors.New("workflow not found")
	ErrTaskNotFound     = errors.New("task not found")

	// ErrInvalidInput marks argument validation failures. The tool
	// layer reports these to the caller instead of failing the call.
	ErrInvalidInput = errors.New("invalid input")
)
