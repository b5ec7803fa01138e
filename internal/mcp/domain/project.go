package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dawctl/reaper-mcp/internal/reaper"
)

// GetProjectInfoInput represents the MCP tool input for reading project state.
type GetProjectInfoInput struct{}

// GetProjectInfoResult represents the MCP tool output for reading project state.
type GetProjectInfoResult struct {
	Tempo                float64 `json:"tempo" jsonschema:"project tempo in beats per minute"`
	SignatureNumerator   int     `json:"signature_numerator" jsonschema:"time signature numerator"`
	SignatureDenominator int     `json:"signature_denominator" jsonschema:"time signature denominator"`
	TrackCount           int     `json:"track_count" jsonschema:"number of tracks in the project"`
	IsPlaying            bool    `json:"is_playing" jsonschema:"whether the transport is playing"`
	IsRecording          bool    `json:"is_recording" jsonschema:"whether the transport is recording"`
	CursorPosition       float64 `json:"cursor_position" jsonschema:"edit cursor position in beats"`
}

// GetProjectInfoTool defines the MCP tool schema for reading project state.
func GetProjectInfoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_project_info",
		Description: "Returns tempo, time signature, track count, play state, and cursor position of the current project.",
	}
}

// GetProjectInfoHandler executes a project info request.
func GetProjectInfoHandler(client reaper.Client) mcp.ToolHandlerFor[GetProjectInfoInput, GetProjectInfoResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GetProjectInfoInput) (*mcp.CallToolResult, GetProjectInfoResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, GetProjectInfoResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		info, err := client.ProjectInfo(runCtx)
		if err != nil {
			return nil, GetProjectInfoResult{}, err
		}

		result := GetProjectInfoResult{
			Tempo:                info.Tempo,
			SignatureNumerator:   info.SignatureNumerator,
			SignatureDenominator: info.SignatureDenominator,
			TrackCount:           info.TrackCount,
			IsPlaying:            info.IsPlaying,
			IsRecording:          info.IsRecording,
			CursorPosition:       info.CursorPosition,
		}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// SetTempoInput represents the MCP tool input for setting the project tempo.
type SetTempoInput struct {
	BPM float64 `json:"bpm" jsonschema:"tempo in beats per minute (1 to 960)"`
}

// SetTempoResult represents the MCP tool output for setting the project tempo.
type SetTempoResult struct {
	Tempo float64 `json:"tempo" jsonschema:"applied tempo in beats per minute"`
}

// SetTempoTool defines the MCP tool schema for setting the project tempo.
func SetTempoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_tempo",
		Description: "Sets the project tempo in beats per minute.",
	}
}

// SetTempoHandler executes a tempo change request.
func SetTempoHandler(client reaper.Client) mcp.ToolHandlerFor[SetTempoInput, SetTempoResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetTempoInput) (*mcp.CallToolResult, SetTempoResult, error) {
		if err := validateRange("bpm", input.BPM, 1, 960); err != nil {
			return nil, SetTempoResult{}, err
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, SetTempoResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		applied, err := client.SetTempo(runCtx, input.BPM)
		if err != nil {
			return nil, SetTempoResult{}, err
		}
		return CallToolResultWithMetadata(invocationID), SetTempoResult{Tempo: applied}, nil
	}
}

// SetTimeSignatureInput represents the MCP tool input for setting the time signature.
type SetTimeSignatureInput struct {
	Numerator   int `json:"numerator" jsonschema:"beats per measure"`
	Denominator int `json:"denominator" jsonschema:"beat unit (1, 2, 4, 8, 16, or 32)"`
}

// SetTimeSignatureResult represents the MCP tool output for setting the time signature.
type SetTimeSignatureResult struct {
	Numerator   int `json:"numerator" jsonschema:"applied beats per measure"`
	Denominator int `json:"denominator" jsonschema:"applied beat unit"`
}

// SetTimeSignatureTool defines the MCP tool schema for setting the time signature.
func SetTimeSignatureTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_time_signature",
		Description: "Sets the project time signature.",
	}
}

// SetTimeSignatureHandler executes a time signature change request.
func SetTimeSignatureHandler(client reaper.Client) mcp.ToolHandlerFor[SetTimeSignatureInput, SetTimeSignatureResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetTimeSignatureInput) (*mcp.CallToolResult, SetTimeSignatureResult, error) {
		if err := validateTimeSignature(input.Numerator, input.Denominator); err != nil {
			return nil, SetTimeSignatureResult{}, err
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, SetTimeSignatureResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		if err := client.SetTimeSignature(runCtx, input.Numerator, input.Denominator); err != nil {
			return nil, SetTimeSignatureResult{}, err
		}
		result := SetTimeSignatureResult{Numerator: input.Numerator, Denominator: input.Denominator}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// UndoInput represents the MCP tool input for undoing the last action.
type UndoInput struct{}

// UndoResult represents the MCP tool output for undoing the last action.
type UndoResult struct {
	Undone bool `json:"undone" jsonschema:"whether an undo step was performed"`
}

// UndoTool defines the MCP tool schema for undoing the last action.
func UndoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "undo",
		Description: "Undoes the last action in REAPER.",
	}
}

// UndoHandler executes an undo request.
func UndoHandler(client reaper.Client) mcp.ToolHandlerFor[UndoInput, UndoResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ UndoInput) (*mcp.CallToolResult, UndoResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, UndoResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		if err := client.Undo(runCtx); err != nil {
			return nil, UndoResult{}, err
		}
		return CallToolResultWithMetadata(invocationID), UndoResult{Undone: true}, nil
	}
}
