package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dawctl/reaper-mcp/internal/reaper"
)

// GetTrackInfoInput represents the MCP tool input for reading a track.
type GetTrackInfoInput struct {
	TrackIndex int `json:"track_index" jsonschema:"zero-based track index"`
}

// GetTrackInfoResult represents the MCP tool output for reading a track.
type GetTrackInfoResult struct {
	TrackIndex int               `json:"track_index" jsonschema:"zero-based track index"`
	Name       string            `json:"name" jsonschema:"track name"`
	Mute       bool              `json:"mute" jsonschema:"whether the track is muted"`
	Solo       bool              `json:"solo" jsonschema:"whether the track is soloed"`
	Arm        bool              `json:"arm" jsonschema:"whether the track is record-armed"`
	Volume     float64           `json:"volume" jsonschema:"track gain scalar"`
	Pan        float64           `json:"pan" jsonschema:"pan position from -1 (left) to 1 (right)"`
	Items      []reaper.ItemInfo `json:"items" jsonschema:"media items on the track"`
	FX         []reaper.FXInfo   `json:"fx" jsonschema:"FX chain of the track"`
}

// GetTrackInfoTool defines the MCP tool schema for reading a track.
func GetTrackInfoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_track_info",
		Description: "Returns name, mute/solo/arm state, volume, pan, items, and FX chain of one track.",
	}
}

// GetTrackInfoHandler executes a track info request.
func GetTrackInfoHandler(client reaper.Client) mcp.ToolHandlerFor[GetTrackInfoInput, GetTrackInfoResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetTrackInfoInput) (*mcp.CallToolResult, GetTrackInfoResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, GetTrackInfoResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		info, err := client.TrackInfo(runCtx, input.TrackIndex)
		if err != nil {
			return nil, GetTrackInfoResult{}, err
		}

		result := GetTrackInfoResult{
			TrackIndex: input.TrackIndex,
			Name:       info.Name,
			Mute:       info.Mute,
			Solo:       info.Solo,
			Arm:        info.Arm,
			Volume:     info.Volume,
			Pan:        info.Pan,
			Items:      info.Items,
			FX:         info.FX,
		}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// CreateTrackInput represents the MCP tool input for creating a track.
type CreateTrackInput struct {
	Name string `json:"name,omitempty" jsonschema:"optional name for the new track"`
}

// CreateTrackResult represents the MCP tool output for creating a track.
type CreateTrackResult struct {
	TrackIndex int    `json:"track_index" jsonschema:"index of the created track"`
	Name       string `json:"name" jsonschema:"name of the created track"`
}

// CreateTrackTool defines the MCP tool schema for creating a track.
func CreateTrackTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_track",
		Description: "Creates a new track at the end of the project.",
	}
}

// CreateTrackHandler executes a track creation request.
func CreateTrackHandler(client reaper.Client) mcp.ToolHandlerFor[CreateTrackInput, CreateTrackResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateTrackInput) (*mcp.CallToolResult, CreateTrackResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, CreateTrackResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		created, err := client.CreateTrack(runCtx, input.Name)
		if err != nil {
			return nil, CreateTrackResult{}, err
		}
		result := CreateTrackResult{TrackIndex: created.Index, Name: created.Name}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// DeleteTrackInput represents the MCP tool input for deleting a track.
type DeleteTrackInput struct {
	TrackIndex int `json:"track_index" jsonschema:"zero-based track index"`
}

// DeleteTrackResult represents the MCP tool output for deleting a track.
type DeleteTrackResult struct {
	TrackIndex int `json:"track_index" jsonschema:"index of the deleted track"`
}

// DeleteTrackTool defines the MCP tool schema for deleting a track.
func DeleteTrackTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "delete_track",
		Description: "Deletes one track. Later tracks shift down by one index.",
	}
}

// DeleteTrackHandler executes a track deletion request.
func DeleteTrackHandler(client reaper.Client) mcp.ToolHandlerFor[DeleteTrackInput, DeleteTrackResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteTrackInput) (*mcp.CallToolResult, DeleteTrackResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, DeleteTrackResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		if err := client.DeleteTrack(runCtx, input.TrackIndex); err != nil {
			return nil, DeleteTrackResult{}, err
		}
		return CallToolResultWithMetadata(invocationID), DeleteTrackResult{TrackIndex: input.TrackIndex}, nil
	}
}

// DeleteAllTracksInput represents the MCP tool input for clearing the project.
type DeleteAllTracksInput struct{}

// DeleteAllTracksResult represents the MCP tool output for clearing the project.
type DeleteAllTracksResult struct {
	Deleted int `json:"deleted" jsonschema:"number of tracks deleted"`
}

// DeleteAllTracksTool defines the MCP tool schema for clearing the project.
func DeleteAllTracksTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "delete_all_tracks",
		Description: "Deletes every track in the project.",
	}
}

// DeleteAllTracksHandler executes a delete-all-tracks request.
func DeleteAllTracksHandler(client reaper.Client) mcp.ToolHandlerFor[DeleteAllTracksInput, DeleteAllTracksResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ DeleteAllTracksInput) (*mcp.CallToolResult, DeleteAllTracksResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, DeleteAllTracksResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		deleted, err := client.DeleteAllTracks(runCtx)
		if err != nil {
			return nil, DeleteAllTracksResult{}, err
		}
		return CallToolResultWithMetadata(invocationID), DeleteAllTracksResult{Deleted: deleted}, nil
	}
}

// SetTrackNameInput represents the MCP tool input for renaming a track.
type SetTrackNameInput struct {
	TrackIndex int    `json:"track_index" jsonschema:"zero-based track index"`
	Name       string `json:"name" jsonschema:"new track name"`
}

// SetTrackNameResult represents the MCP tool output for renaming a track.
type SetTrackNameResult struct {
	TrackIndex int    `json:"track_index" jsonschema:"zero-based track index"`
	Name       string `json:"name" jsonschema:"applied track name"`
}

// SetTrackNameTool defines the MCP tool schema for renaming a track.
func SetTrackNameTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_track_name",
		Description: "Renames one track.",
	}
}

// SetTrackNameHandler executes a track rename request.
func SetTrackNameHandler(client reaper.Client) mcp.ToolHandlerFor[SetTrackNameInput, SetTrackNameResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetTrackNameInput) (*mcp.CallToolResult, SetTrackNameResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, SetTrackNameResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		if err := client.SetTrackName(runCtx, input.TrackIndex, input.Name); err != nil {
			return nil, SetTrackNameResult{}, err
		}
		result := SetTrackNameResult{TrackIndex: input.TrackIndex, Name: input.Name}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// SetTrackVolumeInput represents the MCP tool input for setting track volume.
type SetTrackVolumeInput struct {
	TrackIndex int     `json:"track_index" jsonschema:"zero-based track index"`
	Volume     float64 `json:"volume" jsonschema:"gain scalar from 0 (silent) to 1 (unity)"`
}

// SetTrackVolumeResult represents the MCP tool output for setting track volume.
type SetTrackVolumeResult struct {
	TrackIndex int     `json:"track_index" jsonschema:"zero-based track index"`
	Volume     float64 `json:"volume" jsonschema:"applied gain scalar"`
}

// SetTrackVolumeTool defines the MCP tool schema for setting track volume.
func SetTrackVolumeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_track_volume",
		Description: "Sets a track's volume as a gain scalar between 0 and 1.",
	}
}

// SetTrackVolumeHandler executes a track volume request.
func SetTrackVolumeHandler(client reaper.Client) mcp.ToolHandlerFor[SetTrackVolumeInput, SetTrackVolumeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetTrackVolumeInput) (*mcp.CallToolResult, SetTrackVolumeResult, error) {
		if err := validateRange("volume", input.Volume, 0, 1); err != nil {
			return nil, SetTrackVolumeResult{}, err
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, SetTrackVolumeResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		applied, err := client.SetTrackVolume(runCtx, input.TrackIndex, input.Volume)
		if err != nil {
			return nil, SetTrackVolumeResult{}, err
		}
		result := SetTrackVolumeResult{TrackIndex: input.TrackIndex, Volume: applied}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// SetTrackPanInput represents the MCP tool input for setting track pan.
type SetTrackPanInput struct {
	TrackIndex int     `json:"track_index" jsonschema:"zero-based track index"`
	Pan        float64 `json:"pan" jsonschema:"pan position from -1 (left) to 1 (right)"`
}

// SetTrackPanResult represents the MCP tool output for setting track pan.
type SetTrackPanResult struct {
	TrackIndex int     `json:"track_index" jsonschema:"zero-based track index"`
	Pan        float64 `json:"pan" jsonschema:"applied pan position"`
}

// SetTrackPanTool defines the MCP tool schema for setting track pan.
func SetTrackPanTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_track_pan",
		Description: "Sets a track's pan position between -1 (left) and 1 (right).",
	}
}

// SetTrackPanHandler executes a track pan request.
func SetTrackPanHandler(client reaper.Client) mcp.ToolHandlerFor[SetTrackPanInput, SetTrackPanResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetTrackPanInput) (*mcp.CallToolResult, SetTrackPanResult, error) {
		if err := validateRange("pan", input.Pan, -1, 1); err != nil {
			return nil, SetTrackPanResult{}, err
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, SetTrackPanResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		applied, err := client.SetTrackPan(runCtx, input.TrackIndex, input.Pan)
		if err != nil {
			return nil, SetTrackPanResult{}, err
		}
		result := SetTrackPanResult{TrackIndex: input.TrackIndex, Pan: applied}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// SetTrackMuteInput represents the MCP tool input for muting a track.
type SetTrackMuteInput struct {
	TrackIndex int  `json:"track_index" jsonschema:"zero-based track index"`
	Muted      bool `json:"muted" jsonschema:"true to mute, false to unmute"`
}

// SetTrackMuteResult represents the MCP tool output for muting a track.
type SetTrackMuteResult struct {
	TrackIndex int  `json:"track_index" jsonschema:"zero-based track index"`
	Muted      bool `json:"muted" jsonschema:"resulting mute state"`
}

// SetTrackMuteTool defines the MCP tool schema for muting a track.
func SetTrackMuteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_track_mute",
		Description: "Mutes or unmutes one track.",
	}
}

// SetTrackMuteHandler executes a track mute request.
func SetTrackMuteHandler(client reaper.Client) mcp.ToolHandlerFor[SetTrackMuteInput, SetTrackMuteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetTrackMuteInput) (*mcp.CallToolResult, SetTrackMuteResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, SetTrackMuteResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		applied, err := client.SetTrackMute(runCtx, input.TrackIndex, input.Muted)
		if err != nil {
			return nil, SetTrackMuteResult{}, err
		}
		result := SetTrackMuteResult{TrackIndex: input.TrackIndex, Muted: applied}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// SetTrackSoloInput represents the MCP tool input for soloing a track.
type SetTrackSoloInput struct {
	TrackIndex int  `json:"track_index" jsonschema:"zero-based track index"`
	Soloed     bool `json:"soloed" jsonschema:"true to solo, false to unsolo"`
}

// SetTrackSoloResult represents the MCP tool output for soloing a track.
type SetTrackSoloResult struct {
	TrackIndex int  `json:"track_index" jsonschema:"zero-based track index"`
	Soloed     bool `json:"soloed" jsonschema:"resulting solo state"`
}

// SetTrackSoloTool defines the MCP tool schema for soloing a track.
func SetTrackSoloTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_track_solo",
		Description: "Solos or unsolos one track.",
	}
}

// SetTrackSoloHandler executes a track solo request.
func SetTrackSoloHandler(client reaper.Client) mcp.ToolHandlerFor[SetTrackSoloInput, SetTrackSoloResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetTrackSoloInput) (*mcp.CallToolResult, SetTrackSoloResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, SetTrackSoloResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		applied, err := client.SetTrackSolo(runCtx, input.TrackIndex, input.Soloed)
		if err != nil {
			return nil, SetTrackSoloResult{}, err
		}
		result := SetTrackSoloResult{TrackIndex: input.TrackIndex, Soloed: applied}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}
