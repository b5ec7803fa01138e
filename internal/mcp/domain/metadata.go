package domain

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dawctl/reaper-mcp/internal/id"
)

// invocationIDKey is the result metadata key carrying the correlation id.
const invocationIDKey = "reaper-mcp-invocation-id"

// NewInvocationID generates an invocation identifier for a tool call.
func NewInvocationID() (string, error) {
	return id.NewID()
}

// CallToolResultWithMetadata builds a tool result carrying the invocation id
// so callers can correlate results with server logs and traces.
func CallToolResultWithMetadata(invocationID string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Meta: map[string]any{invocationIDKey: invocationID},
	}
}
