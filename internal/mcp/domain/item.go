package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dawctl/reaper-mcp/internal/reaper"
)

// GetItemsInput represents the MCP tool input for listing a track's items.
type GetItemsInput struct {
	TrackIndex int `json:"track_index" jsonschema:"zero-based track index"`
}

// GetItemsResult represents the MCP tool output for listing a track's items.
type GetItemsResult struct {
	TrackIndex int               `json:"track_index" jsonschema:"zero-based track index"`
	Items      []reaper.ItemInfo `json:"items" jsonschema:"media items on the track"`
}

// GetItemsTool defines the MCP tool schema for listing a track's items.
func GetItemsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_items",
		Description: "Lists the media items on one track with their position, length, and type.",
	}
}

// GetItemsHandler executes an item listing request.
func GetItemsHandler(client reaper.Client) mcp.ToolHandlerFor[GetItemsInput, GetItemsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetItemsInput) (*mcp.CallToolResult, GetItemsResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, GetItemsResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		items, err := client.Items(runCtx, input.TrackIndex)
		if err != nil {
			return nil, GetItemsResult{}, err
		}
		result := GetItemsResult{TrackIndex: input.TrackIndex, Items: items}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// CreateMIDIItemInput represents the MCP tool input for creating a MIDI item.
type CreateMIDIItemInput struct {
	TrackIndex int     `json:"track_index" jsonschema:"zero-based track index"`
	Start      float64 `json:"start" jsonschema:"item start position in beats"`
	Length     float64 `json:"length" jsonschema:"item length in beats"`
}

// CreateMIDIItemResult represents the MCP tool output for creating a MIDI item.
type CreateMIDIItemResult struct {
	TrackIndex int     `json:"track_index" jsonschema:"zero-based track index"`
	Start      float64 `json:"start" jsonschema:"item start position in beats"`
	Length     float64 `json:"length" jsonschema:"item length in beats"`
}

// CreateMIDIItemTool defines the MCP tool schema for creating a MIDI item.
func CreateMIDIItemTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_midi_item",
		Description: "Creates an empty MIDI item on a track at a position and length given in beats.",
	}
}

// CreateMIDIItemHandler executes a MIDI item creation request.
func CreateMIDIItemHandler(client reaper.Client) mcp.ToolHandlerFor[CreateMIDIItemInput, CreateMIDIItemResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateMIDIItemInput) (*mcp.CallToolResult, CreateMIDIItemResult, error) {
		if err := validateNonNegative("start", input.Start); err != nil {
			return nil, CreateMIDIItemResult{}, err
		}
		if err := validatePositive("length", input.Length); err != nil {
			return nil, CreateMIDIItemResult{}, err
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, CreateMIDIItemResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		if err := client.CreateMIDIItem(runCtx, input.TrackIndex, input.Start, input.Length); err != nil {
			return nil, CreateMIDIItemResult{}, err
		}
		result := CreateMIDIItemResult{TrackIndex: input.TrackIndex, Start: input.Start, Length: input.Length}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// DeleteItemInput represents the MCP tool input for deleting an item.
type DeleteItemInput struct {
	TrackIndex int `json:"track_index" jsonschema:"zero-based track index"`
	ItemIndex  int `json:"item_index" jsonschema:"zero-based item index on the track"`
}

// DeleteItemResult represents the MCP tool output for deleting an item.
type DeleteItemResult struct {
	TrackIndex int `json:"track_index" jsonschema:"zero-based track index"`
	ItemIndex  int `json:"item_index" jsonschema:"index of the deleted item"`
}

// DeleteItemTool defines the MCP tool schema for deleting an item.
func DeleteItemTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "delete_item",
		Description: "Deletes one media item from a track.",
	}
}

// DeleteItemHandler executes an item deletion request.
func DeleteItemHandler(client reaper.Client) mcp.ToolHandlerFor[DeleteItemInput, DeleteItemResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteItemInput) (*mcp.CallToolResult, DeleteItemResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, DeleteItemResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		if err := client.DeleteItem(runCtx, input.TrackIndex, input.ItemIndex); err != nil {
			return nil, DeleteItemResult{}, err
		}
		result := DeleteItemResult{TrackIndex: input.TrackIndex, ItemIndex: input.ItemIndex}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// DuplicateItemInput represents the MCP tool input for duplicating an item.
type DuplicateItemInput struct {
	TrackIndex  int     `json:"track_index" jsonschema:"zero-based track index"`
	ItemIndex   int     `json:"item_index" jsonschema:"zero-based item index on the track"`
	NewPosition float64 `json:"new_position" jsonschema:"position of the copy in beats"`
}

// DuplicateItemResult represents the MCP tool output for duplicating an item.
type DuplicateItemResult struct {
	TrackIndex  int     `json:"track_index" jsonschema:"zero-based track index"`
	ItemIndex   int     `json:"item_index" jsonschema:"index of the source item"`
	NewPosition float64 `json:"new_position" jsonschema:"position of the copy in beats"`
}

// DuplicateItemTool defines the MCP tool schema for duplicating an item.
func DuplicateItemTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "duplicate_item",
		Description: "Copies one media item to a new position on the same track.",
	}
}

// DuplicateItemHandler executes an item duplication request.
func DuplicateItemHandler(client reaper.Client) mcp.ToolHandlerFor[DuplicateItemInput, DuplicateItemResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DuplicateItemInput) (*mcp.CallToolResult, DuplicateItemResult, error) {
		if err := validateNonNegative("new_position", input.NewPosition); err != nil {
			return nil, DuplicateItemResult{}, err
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, DuplicateItemResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		if err := client.DuplicateItem(runCtx, input.TrackIndex, input.ItemIndex, input.NewPosition); err != nil {
			return nil, DuplicateItemResult{}, err
		}
		result := DuplicateItemResult{
			TrackIndex:  input.TrackIndex,
			ItemIndex:   input.ItemIndex,
			NewPosition: input.NewPosition,
		}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// SetItemNameInput represents the MCP tool input for renaming an item.
type SetItemNameInput struct {
	TrackIndex int    `json:"track_index" jsonschema:"zero-based track index"`
	ItemIndex  int    `json:"item_index" jsonschema:"zero-based item index on the track"`
	Name       string `json:"name" jsonschema:"new name for the item's active take"`
}

// SetItemNameResult represents the MCP tool output for renaming an item.
type SetItemNameResult struct {
	TrackIndex int    `json:"track_index" jsonschema:"zero-based track index"`
	ItemIndex  int    `json:"item_index" jsonschema:"zero-based item index on the track"`
	Name       string `json:"name" jsonschema:"applied name"`
}

// SetItemNameTool defines the MCP tool schema for renaming an item.
func SetItemNameTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_item_name",
		Description: "Renames the active take of one media item.",
	}
}

// SetItemNameHandler executes an item rename request.
func SetItemNameHandler(client reaper.Client) mcp.ToolHandlerFor[SetItemNameInput, SetItemNameResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetItemNameInput) (*mcp.CallToolResult, SetItemNameResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, SetItemNameResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		if err := client.SetItemName(runCtx, input.TrackIndex, input.ItemIndex, input.Name); err != nil {
			return nil, SetItemNameResult{}, err
		}
		result := SetItemNameResult{TrackIndex: input.TrackIndex, ItemIndex: input.ItemIndex, Name: input.Name}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// GetItemNotesInput represents the MCP tool input for reading MIDI notes.
type GetItemNotesInput struct {
	TrackIndex int `json:"track_index" jsonschema:"zero-based track index"`
	ItemIndex  int `json:"item_index" jsonschema:"zero-based item index on the track"`
}

// GetItemNotesResult represents the MCP tool output for reading MIDI notes.
type GetItemNotesResult struct {
	TrackIndex int           `json:"track_index" jsonschema:"zero-based track index"`
	ItemIndex  int           `json:"item_index" jsonschema:"zero-based item index on the track"`
	Notes      []reaper.Note `json:"notes" jsonschema:"MIDI notes of the item's active take"`
}

// GetItemNotesTool defines the MCP tool schema for reading MIDI notes.
func GetItemNotesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_item_notes",
		Description: "Reads the MIDI notes of one item's active take. Fails when the item holds no MIDI data.",
	}
}

// GetItemNotesHandler executes a note listing request.
func GetItemNotesHandler(client reaper.Client) mcp.ToolHandlerFor[GetItemNotesInput, GetItemNotesResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetItemNotesInput) (*mcp.CallToolResult, GetItemNotesResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, GetItemNotesResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		notes, err := client.ItemNotes(runCtx, input.TrackIndex, input.ItemIndex)
		if err != nil {
			return nil, GetItemNotesResult{}, err
		}
		result := GetItemNotesResult{TrackIndex: input.TrackIndex, ItemIndex: input.ItemIndex, Notes: notes}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// NoteInput is one MIDI note to write. Velocity is a pointer so an explicit
// zero is distinguishable from an omitted field.
type NoteInput struct {
	Pitch     int     `json:"pitch" jsonschema:"MIDI pitch (0-127, 60 is middle C)"`
	StartTime float64 `json:"start_time" jsonschema:"note start within the project in beats"`
	Duration  float64 `json:"duration" jsonschema:"note duration in beats"`
	Velocity  *int    `json:"velocity,omitempty" jsonschema:"MIDI velocity (0-127, defaults to 100 when omitted)"`
	Mute      bool    `json:"mute,omitempty" jsonschema:"whether the note is muted"`
}

// defaultVelocity applies when a note omits its velocity.
const defaultVelocity = 100

// SetItemNotesInput represents the MCP tool input for writing MIDI notes.
type SetItemNotesInput struct {
	TrackIndex int         `json:"track_index" jsonschema:"zero-based track index"`
	ItemIndex  int         `json:"item_index" jsonschema:"zero-based item index on the track"`
	Notes      []NoteInput `json:"notes" jsonschema:"MIDI notes to write"`
	Append     bool        `json:"append,omitempty" jsonschema:"keep existing notes instead of replacing them"`
}

// SetItemNotesResult represents the MCP tool output for writing MIDI notes.
type SetItemNotesResult struct {
	TrackIndex int `json:"track_index" jsonschema:"zero-based track index"`
	ItemIndex  int `json:"item_index" jsonschema:"zero-based item index on the track"`
	Written    int `json:"written" jsonschema:"number of notes written"`
}

// SetItemNotesTool defines the MCP tool schema for writing MIDI notes.
func SetItemNotesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_item_notes",
		Description: "Writes MIDI notes to one item's active take, replacing existing notes unless append is set.",
	}
}

// SetItemNotesHandler executes a note writing request.
func SetItemNotesHandler(client reaper.Client) mcp.ToolHandlerFor[SetItemNotesInput, SetItemNotesResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetItemNotesInput) (*mcp.CallToolResult, SetItemNotesResult, error) {
		notes := make([]reaper.Note, 0, len(input.Notes))
		for i, note := range input.Notes {
			if err := validateMIDIByte(fmt.Sprintf("notes[%d].pitch", i), note.Pitch); err != nil {
				return nil, SetItemNotesResult{}, err
			}
			velocity := defaultVelocity
			if note.Velocity != nil {
				if err := validateMIDIByte(fmt.Sprintf("notes[%d].velocity", i), *note.Velocity); err != nil {
					return nil, SetItemNotesResult{}, err
				}
				velocity = *note.Velocity
			}
			if err := validateNonNegative(fmt.Sprintf("notes[%d].start_time", i), note.StartTime); err != nil {
				return nil, SetItemNotesResult{}, err
			}
			if err := validatePositive(fmt.Sprintf("notes[%d].duration", i), note.Duration); err != nil {
				return nil, SetItemNotesResult{}, err
			}
			notes = append(notes, reaper.Note{
				Pitch:     note.Pitch,
				StartTime: note.StartTime,
				Duration:  note.Duration,
				Velocity:  velocity,
				Mute:      note.Mute,
			})
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, SetItemNotesResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, bridgeCallTimeout)
		defer cancel()

		written, err := client.SetItemNotes(runCtx, input.TrackIndex, input.ItemIndex, notes, input.Append)
		if err != nil {
			return nil, SetItemNotesResult{}, err
		}
		result := SetItemNotesResult{TrackIndex: input.TrackIndex, ItemIndex: input.ItemIndex, Written: written}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}
