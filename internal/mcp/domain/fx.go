package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dawctl/reaper-mcp/internal/reaper"
)

// AddFXInput represents the MCP tool input for adding an FX.
type AddFXInput struct {
	TrackIndex int    `json:"track_index" jsonschema:"zero-based track index"`
	FXName     string `json:"fx_name" jsonschema:"plugin name as REAPER resolves it (e.g. ReaSynth)"`
}

// AddFXResult represents the MCP tool output for adding an FX.
type AddFXResult struct {
	TrackIndex int    `json:"track_index" jsonschema:"zero-based track index"`
	FXIndex    int    `json:"fx_index" jsonschema:"position of the new FX in the chain"`
	FXName     string `json:"fx_name" jsonschema:"resolved plugin name"`
}

// AddFXTool defines the MCP tool schema for adding an FX.
func AddFXTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "add_fx",
		Description: "Adds an FX plugin to the end of a track's chain.",
	}
}

// AddFXHandler executes an FX insertion request.
func AddFXHandler(client reaper.Client) mcp.ToolHandlerFor[AddFXInput, AddFXResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AddFXInput) (*mcp.CallToolResult, AddFXResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, AddFXResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		fx, err := client.AddFX(runCtx, input.TrackIndex, input.FXName)
		if err != nil {
			return nil, AddFXResult{}, err
		}
		result := AddFXResult{TrackIndex: input.TrackIndex, FXIndex: fx.Index, FXName: fx.Name}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// RemoveFXInput represents the MCP tool input for removing an FX.
type RemoveFXInput struct {
	TrackIndex int `json:"track_index" jsonschema:"zero-based track index"`
	FXIndex    int `json:"fx_index" jsonschema:"zero-based FX position in the chain"`
}

// RemoveFXResult represents the MCP tool output for removing an FX.
type RemoveFXResult struct {
	TrackIndex int `json:"track_index" jsonschema:"zero-based track index"`
	FXIndex    int `json:"fx_index" jsonschema:"position of the removed FX"`
}

// RemoveFXTool defines the MCP tool schema for removing an FX.
func RemoveFXTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "remove_fx",
		Description: "Removes one FX instance from a track's chain.",
	}
}

// RemoveFXHandler executes an FX removal request.
func RemoveFXHandler(client reaper.Client) mcp.ToolHandlerFor[RemoveFXInput, RemoveFXResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RemoveFXInput) (*mcp.CallToolResult, RemoveFXResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, RemoveFXResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		if err := client.RemoveFX(runCtx, input.TrackIndex, input.FXIndex); err != nil {
			return nil, RemoveFXResult{}, err
		}
		result := RemoveFXResult{TrackIndex: input.TrackIndex, FXIndex: input.FXIndex}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// GetFXParametersInput represents the MCP tool input for listing FX parameters.
type GetFXParametersInput struct {
	TrackIndex int `json:"track_index" jsonschema:"zero-based track index"`
	FXIndex    int `json:"fx_index" jsonschema:"zero-based FX position in the chain"`
}

// GetFXParametersResult represents the MCP tool output for listing FX parameters.
type GetFXParametersResult struct {
	TrackIndex int                  `json:"track_index" jsonschema:"zero-based track index"`
	FXIndex    int                  `json:"fx_index" jsonschema:"zero-based FX position in the chain"`
	FXName     string               `json:"fx_name" jsonschema:"resolved plugin name"`
	Parameters []reaper.FXParameter `json:"parameters" jsonschema:"parameters with current value and range"`
}

// GetFXParametersTool defines the MCP tool schema for listing FX parameters.
func GetFXParametersTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_fx_parameters",
		Description: "Lists the parameters of one FX instance with their current values and ranges.",
	}
}

// GetFXParametersHandler executes an FX parameter listing request.
func GetFXParametersHandler(client reaper.Client) mcp.ToolHandlerFor[GetFXParametersInput, GetFXParametersResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetFXParametersInput) (*mcp.CallToolResult, GetFXParametersResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, GetFXParametersResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		list, err := client.FXParameters(runCtx, input.TrackIndex, input.FXIndex)
		if err != nil {
			return nil, GetFXParametersResult{}, err
		}
		result := GetFXParametersResult{
			TrackIndex: input.TrackIndex,
			FXIndex:    input.FXIndex,
			FXName:     list.FXName,
			Parameters: list.Parameters,
		}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// SetFXParameterInput represents the MCP tool input for setting an FX parameter.
type SetFXParameterInput struct {
	TrackIndex int     `json:"track_index" jsonschema:"zero-based track index"`
	FXIndex    int     `json:"fx_index" jsonschema:"zero-based FX position in the chain"`
	ParamName  string  `json:"param_name" jsonschema:"parameter name, matched case-insensitively"`
	Value      float64 `json:"value" jsonschema:"new value, clamped to the parameter's range"`
}

// SetFXParameterResult represents the MCP tool output for setting an FX parameter.
type SetFXParameterResult struct {
	TrackIndex int     `json:"track_index" jsonschema:"zero-based track index"`
	FXIndex    int     `json:"fx_index" jsonschema:"zero-based FX position in the chain"`
	ParamName  string  `json:"param_name" jsonschema:"resolved parameter name"`
	Value      float64 `json:"value" jsonschema:"applied value after clamping"`
	Min        float64 `json:"min" jsonschema:"parameter minimum"`
	Max        float64 `json:"max" jsonschema:"parameter maximum"`
}

// SetFXParameterTool defines the MCP tool schema for setting an FX parameter.
func SetFXParameterTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_fx_parameter",
		Description: "Sets one FX parameter, addressed by name, to a value clamped to its range.",
	}
}

// SetFXParameterHandler executes an FX parameter change request.
func SetFXParameterHandler(client reaper.Client) mcp.ToolHandlerFor[SetFXParameterInput, SetFXParameterResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetFXParameterInput) (*mcp.CallToolResult, SetFXParameterResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, SetFXParameterResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		param, err := client.SetFXParameter(runCtx, input.TrackIndex, input.FXIndex, input.ParamName, input.Value)
		if err != nil {
			return nil, SetFXParameterResult{}, err
		}
		result := SetFXParameterResult{
			TrackIndex: input.TrackIndex,
			FXIndex:    input.FXIndex,
			ParamName:  param.Name,
			Value:      param.Value,
			Min:        param.Min,
			Max:        param.Max,
		}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// CreateTrackWithFXInput represents the MCP tool input for the combined
// create-track-and-add-FX operation.
type CreateTrackWithFXInput struct {
	Name   string `json:"name,omitempty" jsonschema:"optional name for the new track"`
	FXName string `json:"fx_name" jsonschema:"plugin name to add to the new track"`
}

// CreateTrackWithFXResult represents the MCP tool output for the combined
// create-track-and-add-FX operation.
type CreateTrackWithFXResult struct {
	TrackIndex int    `json:"track_index" jsonschema:"index of the created track"`
	Name       string `json:"name" jsonschema:"name of the created track"`
	FXName     string `json:"fx_name" jsonschema:"resolved plugin name"`
}

// CreateTrackWithFXTool defines the MCP tool schema for the combined
// create-track-and-add-FX operation.
func CreateTrackWithFXTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_track_with_fx",
		Description: "Creates a new track and adds an FX plugin to it in one step.",
	}
}

// CreateTrackWithFXHandler executes a combined create-track-and-add-FX request.
func CreateTrackWithFXHandler(client reaper.Client) mcp.ToolHandlerFor[CreateTrackWithFXInput, CreateTrackWithFXResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateTrackWithFXInput) (*mcp.CallToolResult, CreateTrackWithFXResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, CreateTrackWithFXResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		created, err := client.CreateTrackWithFX(runCtx, input.Name, input.FXName)
		if err != nil {
			return nil, CreateTrackWithFXResult{}, err
		}
		result := CreateTrackWithFXResult{
			TrackIndex: created.TrackIndex,
			Name:       created.Name,
			FXName:     created.FXName,
		}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}
