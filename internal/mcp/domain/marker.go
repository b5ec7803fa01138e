package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dawctl/reaper-mcp/internal/reaper"
)

// AddMarkerInput represents the MCP tool input for adding a marker.
type AddMarkerInput struct {
	Position float64 `json:"position" jsonschema:"marker position in beats"`
	Name     string  `json:"name,omitempty" jsonschema:"optional marker name"`
}

// AddMarkerResult represents the MCP tool output for adding a marker.
type AddMarkerResult struct {
	Index    int     `json:"index" jsonschema:"marker index assigned by REAPER"`
	Position float64 `json:"position" jsonschema:"marker position in beats"`
	Name     string  `json:"name" jsonschema:"marker name"`
}

// AddMarkerTool defines the MCP tool schema for adding a marker.
func AddMarkerTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "add_marker",
		Description: "Adds a point marker at a position given in beats.",
	}
}

// AddMarkerHandler executes a marker creation request.
func AddMarkerHandler(client reaper.Client) mcp.ToolHandlerFor[AddMarkerInput, AddMarkerResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AddMarkerInput) (*mcp.CallToolResult, AddMarkerResult, error) {
		if err := validateNonNegative("position", input.Position); err != nil {
			return nil, AddMarkerResult{}, err
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, AddMarkerResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		index, err := client.AddMarker(runCtx, input.Position, input.Name)
		if err != nil {
			return nil, AddMarkerResult{}, err
		}
		result := AddMarkerResult{Index: index, Position: input.Position, Name: input.Name}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// AddRegionInput represents the MCP tool input for adding a region.
type AddRegionInput struct {
	Start float64 `json:"start" jsonschema:"region start in beats"`
	End   float64 `json:"end" jsonschema:"region end in beats"`
	Name  string  `json:"name,omitempty" jsonschema:"optional region name"`
}

// AddRegionResult represents the MCP tool output for adding a region.
type AddRegionResult struct {
	Index int     `json:"index" jsonschema:"region index assigned by REAPER"`
	Start float64 `json:"start" jsonschema:"region start in beats"`
	End   float64 `json:"end" jsonschema:"region end in beats"`
	Name  string  `json:"name" jsonschema:"region name"`
}

// AddRegionTool defines the MCP tool schema for adding a region.
func AddRegionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "add_region",
		Description: "Adds a region spanning start to end, both in beats.",
	}
}

// AddRegionHandler executes a region creation request.
func AddRegionHandler(client reaper.Client) mcp.ToolHandlerFor[AddRegionInput, AddRegionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AddRegionInput) (*mcp.CallToolResult, AddRegionResult, error) {
		if err := validateNonNegative("start", input.Start); err != nil {
			return nil, AddRegionResult{}, err
		}
		if err := validateOrdered("start", "end", input.Start, input.End); err != nil {
			return nil, AddRegionResult{}, err
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, AddRegionResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		index, err := client.AddRegion(runCtx, input.Start, input.End, input.Name)
		if err != nil {
			return nil, AddRegionResult{}, err
		}
		result := AddRegionResult{Index: index, Start: input.Start, End: input.End, Name: input.Name}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// GetMarkersInput represents the MCP tool input for listing markers and regions.
type GetMarkersInput struct{}

// GetMarkersResult represents the MCP tool output for listing markers and regions.
type GetMarkersResult struct {
	Markers []reaper.Marker `json:"markers" jsonschema:"point markers in the project"`
	Regions []reaper.Region `json:"regions" jsonschema:"regions in the project"`
}

// GetMarkersTool defines the MCP tool schema for listing markers and regions.
func GetMarkersTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_markers",
		Description: "Lists all project markers and regions.",
	}
}

// GetMarkersHandler executes a marker listing request.
func GetMarkersHandler(client reaper.Client) mcp.ToolHandlerFor[GetMarkersInput, GetMarkersResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GetMarkersInput) (*mcp.CallToolResult, GetMarkersResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, GetMarkersResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		list, err := client.Markers(runCtx)
		if err != nil {
			return nil, GetMarkersResult{}, err
		}
		result := GetMarkersResult{Markers: list.Markers, Regions: list.Regions}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}
