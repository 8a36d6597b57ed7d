// Package tool exposes memmesh operations to assistant frontends as
// schema-validated callable functions. A frontend registers the tools,
// forwards model-issued calls with decoded JSON arguments, and relays the
// structured results back. Validation and error normalization happen here so
// every tool failure surfaces as a *ToolError with a consistent code.
package tool

import (
	"context"
	"fmt"

	"github.com/memmesh/memmesh/internal/util"
)

// Tool is a callable capability with a declared parameter schema.
type Tool interface {
	// Name returns the unique tool identifier (snake_case).
	Name() string

	// Description returns the natural-language description shown to models.
	Description() string

	// Parameters returns a minimal JSON-Schema object describing arguments.
	Parameters() map[string]any

	// Call executes the tool with already-decoded JSON arguments.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// ValidationError re-exports the util validation error for tool callers.
type ValidationError = util.ValidationError

// ToolError is the uniform error surfaced by tool execution.
type ToolError struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"` // VALIDATION_ERROR, EXECUTION_ERROR or custom
	Details any    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a ToolError with the given details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
