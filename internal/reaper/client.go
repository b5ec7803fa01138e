package reaper

import "context"

// Client is the capability interface over a controlled REAPER instance.
// One method per exposed tool; implementations perform exactly one logical
// REAPER interaction per call and return plain descriptors.
//
// Identifier arguments (track/item/FX indices) that do not resolve to an
// existing entity fail with a NOT_FOUND domain error. Range validation of
// value arguments is the caller's responsibility; implementations pass
// values through unclamped.
type Client interface {
	// ProjectInfo returns tempo, time signature, track count, play state,
	// and cursor position (beats).
	ProjectInfo(ctx context.Context) (ProjectInfo, error)

	// TrackInfo returns the full descriptor for one track.
	TrackInfo(ctx context.Context, trackIndex int) (TrackInfo, error)

	// CreateTrack appends a track at the end of the project. An empty name
	// keeps REAPER's default.
	CreateTrack(ctx context.Context, name string) (CreatedTrack, error)

	// DeleteTrack removes one track.
	DeleteTrack(ctx context.Context, trackIndex int) error

	// DeleteAllTracks removes every track and reports how many were deleted.
	DeleteAllTracks(ctx context.Context) (int, error)

	// SetTrackName renames a track.
	SetTrackName(ctx context.Context, trackIndex int, name string) error

	// SetTrackVolume sets the track gain scalar and returns the value REAPER
	// reports back.
	SetTrackVolume(ctx context.Context, trackIndex int, volume float64) (float64, error)

	// SetTrackPan sets the pan position and returns the value REAPER reports
	// back.
	SetTrackPan(ctx context.Context, trackIndex int, pan float64) (float64, error)

	// SetTrackMute mutes or unmutes a track and returns the resulting state.
	SetTrackMute(ctx context.Context, trackIndex int, mute bool) (bool, error)

	// SetTrackSolo solos or unsolos a track and returns the resulting state.
	SetTrackSolo(ctx context.Context, trackIndex int, solo bool) (bool, error)

	// Items lists the media items on a track.
	Items(ctx context.Context, trackIndex int) ([]ItemInfo, error)

	// CreateMIDIItem creates an empty MIDI item. Start and length are in
	// beats.
	CreateMIDIItem(ctx context.Context, trackIndex int, start, length float64) error

	// DeleteItem removes one media item from a track.
	DeleteItem(ctx context.Context, trackIndex, itemIndex int) error

	// DuplicateItem copies an item to a new position (beats) on the same
	// track.
	DuplicateItem(ctx context.Context, trackIndex, itemIndex int, newPosition float64) error

	// SetItemName renames an item's active take.
	SetItemName(ctx context.Context, trackIndex, itemIndex int, name string) error

	// ItemNotes reads the MIDI notes of an item's active take.
	ItemNotes(ctx context.Context, trackIndex, itemIndex int) ([]Note, error)

	// SetItemNotes writes MIDI notes to an item's active take. When append
	// is false existing notes are replaced. Returns the number of notes
	// written.
	SetItemNotes(ctx context.Context, trackIndex, itemIndex int, notes []Note, append bool) (int, error)

	// StartPlayback starts project playback.
	StartPlayback(ctx context.Context) error

	// StopPlayback stops project playback.
	StopPlayback(ctx context.Context) error

	// SetTempo sets the project tempo and returns the value REAPER reports
	// back.
	SetTempo(ctx context.Context, bpm float64) (float64, error)

	// SetTimeSignature sets the project time signature.
	SetTimeSignature(ctx context.Context, numerator, denominator int) error

	// Undo triggers one step of REAPER's undo.
	Undo(ctx context.Context) error

	// SetCursorPosition moves the edit cursor to a position in seconds and
	// returns the resulting position in seconds.
	SetCursorPosition(ctx context.Context, seconds float64) (float64, error)

	// GetLoopRegion reads the loop/repeat region (beats).
	GetLoopRegion(ctx context.Context) (LoopRegion, error)

	// SetLoopRegion sets the loop/repeat region. Start and end are in beats
	// and round-trip exactly through GetLoopRegion.
	SetLoopRegion(ctx context.Context, start, end float64) error

	// AddFX inserts an FX by plugin name at the end of a track's chain and
	// returns the resolved instance.
	AddFX(ctx context.Context, trackIndex int, fxName string) (FXInfo, error)

	// RemoveFX deletes one FX instance from a track's chain.
	RemoveFX(ctx context.Context, trackIndex, fxIndex int) error

	// FXParameters lists the parameters of one FX instance.
	FXParameters(ctx context.Context, trackIndex, fxIndex int) (FXParameterList, error)

	// SetFXParameter sets an FX parameter addressed by name. The value is
	// clamped to the parameter's reported range; the applied parameter is
	// returned.
	SetFXParameter(ctx context.Context, trackIndex, fxIndex int, paramName string, value float64) (FXParameter, error)

	// CreateTrackWithFX creates a track and adds an FX in one operation.
	CreateTrackWithFX(ctx context.Context, name, fxName string) (CreatedTrackWithFX, error)

	// AddMarker adds a point marker at a position in beats and returns its
	// index.
	AddMarker(ctx context.Context, position float64, name string) (int, error)

	// AddRegion adds a region spanning start to end (beats) and returns its
	// index.
	AddRegion(ctx context.Context, start, end float64, name string) (int, error)

	// Markers lists all project markers and regions.
	Markers(ctx context.Context) (MarkerList, error)
}
