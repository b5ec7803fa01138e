package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dawctl/reaper-mcp/internal/reaper"
)

// StartPlaybackInput represents the MCP tool input for starting playback.
type StartPlaybackInput struct{}

// StartPlaybackResult represents the MCP tool output for starting playback.
type StartPlaybackResult struct {
	Playing bool `json:"playing" jsonschema:"whether the transport is now playing"`
}

// StartPlaybackTool defines the MCP tool schema for starting playback.
func StartPlaybackTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "start_playback",
		Description: "Starts project playback from the edit cursor.",
	}
}

// StartPlaybackHandler executes a playback start request.
func StartPlaybackHandler(client reaper.Client) mcp.ToolHandlerFor[StartPlaybackInput, StartPlaybackResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ StartPlaybackInput) (*mcp.CallToolResult, StartPlaybackResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, StartPlaybackResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		if err := client.StartPlayback(runCtx); err != nil {
			return nil, StartPlaybackResult{}, err
		}
		return CallToolResultWithMetadata(invocationID), StartPlaybackResult{Playing: true}, nil
	}
}

// StopPlaybackInput represents the MCP tool input for stopping playback.
type StopPlaybackInput struct{}

// StopPlaybackResult represents the MCP tool output for stopping playback.
type StopPlaybackResult struct {
	Playing bool `json:"playing" jsonschema:"whether the transport is still playing"`
}

// StopPlaybackTool defines the MCP tool schema for stopping playback.
func StopPlaybackTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "stop_playback",
		Description: "Stops project playback.",
	}
}

// StopPlaybackHandler executes a playback stop request.
func StopPlaybackHandler(client reaper.Client) mcp.ToolHandlerFor[StopPlaybackInput, StopPlaybackResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ StopPlaybackInput) (*mcp.CallToolResult, StopPlaybackResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, StopPlaybackResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		if err := client.StopPlayback(runCtx); err != nil {
			return nil, StopPlaybackResult{}, err
		}
		return CallToolResultWithMetadata(invocationID), StopPlaybackResult{Playing: false}, nil
	}
}

// SetCursorPositionInput represents the MCP tool input for moving the edit cursor.
type SetCursorPositionInput struct {
	Seconds float64 `json:"seconds" jsonschema:"cursor position in seconds from project start"`
}

// SetCursorPositionResult represents the MCP tool output for moving the edit cursor.
type SetCursorPositionResult struct {
	Position float64 `json:"position" jsonschema:"resulting cursor position in seconds"`
}

// SetCursorPositionTool defines the MCP tool schema for moving the edit cursor.
func SetCursorPositionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_cursor_position",
		Description: "Moves the edit cursor to a position given in seconds.",
	}
}

// SetCursorPositionHandler executes a cursor move request.
func SetCursorPositionHandler(client reaper.Client) mcp.ToolHandlerFor[SetCursorPositionInput, SetCursorPositionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetCursorPositionInput) (*mcp.CallToolResult, SetCursorPositionResult, error) {
		if err := validateNonNegative("seconds", input.Seconds); err != nil {
			return nil, SetCursorPositionResult{}, err
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, SetCursorPositionResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		applied, err := client.SetCursorPosition(runCtx, input.Seconds)
		if err != nil {
			return nil, SetCursorPositionResult{}, err
		}
		return CallToolResultWithMetadata(invocationID), SetCursorPositionResult{Position: applied}, nil
	}
}

// GetLoopRegionInput represents the MCP tool input for reading the loop region.
type GetLoopRegionInput struct{}

// GetLoopRegionResult represents the MCP tool output for reading the loop region.
type GetLoopRegionResult struct {
	Start float64 `json:"loop_start" jsonschema:"loop start in beats"`
	End   float64 `json:"loop_end" jsonschema:"loop end in beats"`
}

// GetLoopRegionTool defines the MCP tool schema for reading the loop region.
func GetLoopRegionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_loop_region",
		Description: "Returns the loop/repeat region in beats.",
	}
}

// GetLoopRegionHandler executes a loop region read request.
func GetLoopRegionHandler(client reaper.Client) mcp.ToolHandlerFor[GetLoopRegionInput, GetLoopRegionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GetLoopRegionInput) (*mcp.CallToolResult, GetLoopRegionResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, GetLoopRegionResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		region, err := client.GetLoopRegion(runCtx)
		if err != nil {
			return nil, GetLoopRegionResult{}, err
		}
		return CallToolResultWithMetadata(invocationID), GetLoopRegionResult{Start: region.Start, End: region.End}, nil
	}
}

// SetLoopRegionInput represents the MCP tool input for setting the loop region.
type SetLoopRegionInput struct {
	Start float64 `json:"start" jsonschema:"loop start in beats"`
	End   float64 `json:"end" jsonschema:"loop end in beats"`
}

// SetLoopRegionResult represents the MCP tool output for setting the loop region.
type SetLoopRegionResult struct {
	Start float64 `json:"loop_start" jsonschema:"applied loop start in beats"`
	End   float64 `json:"loop_end" jsonschema:"applied loop end in beats"`
}

// SetLoopRegionTool defines the MCP tool schema for setting the loop region.
func SetLoopRegionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_loop_region",
		Description: "Sets the loop/repeat region from start to end, both in beats.",
	}
}

// SetLoopRegionHandler executes a loop region change request.
func SetLoopRegionHandler(client reaper.Client) mcp.ToolHandlerFor[SetLoopRegionInput, SetLoopRegionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetLoopRegionInput) (*mcp.CallToolResult, SetLoopRegionResult, error) {
		if err := validateNonNegative("start", input.Start); err != nil {
			return nil, SetLoopRegionResult{}, err
		}
		if err := validateOrdered("start", "end", input.Start, input.End); err != nil {
			return nil, SetLoopRegionResult{}, err
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, SetLoopRegionResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		if err := client.SetLoopRegion(runCtx, input.Start, input.End); err != nil {
			return nil, SetLoopRegionResult{}, err
		}
		return CallToolResultWithMetadata(invocationID), SetLoopRegionResult{Start: input.Start, End: input.End}, nil
	}
}
