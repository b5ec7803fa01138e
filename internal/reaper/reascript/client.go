package reascript

import (
	"context"
	"strings"
	"sync"

	apperrors "github.com/dawctl/reaper-mcp/internal/platform/errors"
	"github.com/dawctl/reaper-mcp/internal/platform/timeouts"
	"github.com/dawctl/reaper-mcp/internal/reaper"
)

// Client implements reaper.Client over a bridge Invoker. Connecting is lazy:
// the first call probes the bridge, and when it does not answer the one-time
// configuration step runs before reporting NOT_CONNECTED.
type Client struct {
	inv       Invoker
	installer *Installer

	mu         sync.Mutex
	connected  bool
	configured bool
}

var _ reaper.Client = (*Client)(nil)

// NewClient returns a client over inv. installer may be nil to disable the
// automatic configuration step.
func NewClient(inv Invoker, installer *Installer) *Client {
	return &Client{inv: inv, installer: installer}
}

func (c *Client) ensureConnected(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.connected {
		return nil
	}

	probeCtx, cancel := context.WithTimeout(ctx, timeouts.BridgeProbe)
	defer cancel()
	_, err := c.inv.Invoke(probeCtx, "GetAppVersion")
	if err == nil {
		c.connected = true
		return nil
	}

	if c.configured || c.installer == nil {
		return err
	}
	c.configured = true
	changed, ierr := c.installer.Install()
	if ierr != nil {
		return apperrors.Wrap(apperrors.CodeNotConnected, "could not configure the REAPER bridge", ierr)
	}
	if changed {
		return apperrors.New(apperrors.CodeNotConnected,
			"bridge script installed; restart REAPER (with the web interface enabled) and retry")
	}
	return apperrors.New(apperrors.CodeNotConnected,
		"bridge is installed but not answering; is REAPER running with the web interface enabled?")
}

func (c *Client) call(ctx context.Context, fn string, args ...any) (Values, error) {
	if err := c.ensureConnected(ctx); err != nil {
		return nil, err
	}
	return c.inv.Invoke(ctx, fn, args...)
}

// trackCount reads the current track count.
func (c *Client) trackCount(ctx context.Context) (int, error) {
	vals, err := c.call(ctx, "CountTracks")
	if err != nil {
		return 0, err
	}
	var n float64
	if err := vals.Scan(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

func (c *Client) checkTrack(ctx context.Context, trackIndex int) error {
	n, err := c.trackCount(ctx)
	if err != nil {
		return err
	}
	if trackIndex < 0 || trackIndex >= n {
		return apperrors.New(apperrors.CodeNotFound, "track %d not found (project has %d)", trackIndex, n)
	}
	return nil
}

func (c *Client) checkItem(ctx context.Context, trackIndex, itemIndex int) error {
	if err := c.checkTrack(ctx, trackIndex); err != nil {
		return err
	}
	vals, err := c.call(ctx, "CountTrackMediaItems", trackIndex)
	if err != nil {
		return err
	}
	var n float64
	if err := vals.Scan(&n); err != nil {
		return err
	}
	if itemIndex < 0 || itemIndex >= int(n) {
		return apperrors.New(apperrors.CodeNotFound,
			"item %d not found on track %d (track has %d)", itemIndex, trackIndex, int(n))
	}
	return nil
}

func (c *Client) checkFX(ctx context.Context, trackIndex, fxIndex int) error {
	if err := c.checkTrack(ctx, trackIndex); err != nil {
		return err
	}
	vals, err := c.call(ctx, "TrackFX_GetCount", trackIndex)
	if err != nil {
		return err
	}
	var n float64
	if err := vals.Scan(&n); err != nil {
		return err
	}
	if fxIndex < 0 || fxIndex >= int(n) {
		return apperrors.New(apperrors.CodeNotFound,
			"FX %d not found on track %d (chain has %d)", fxIndex, trackIndex, int(n))
	}
	return nil
}

// beatsToSeconds converts a quarter-note position to project time.
func (c *Client) beatsToSeconds(ctx context.Context, beats float64) (float64, error) {
	vals, err := c.call(ctx, "TimeMap2_QNToTime", beats)
	if err != nil {
		return 0, err
	}
	var sec float64
	if err := vals.Scan(&sec); err != nil {
		return 0, err
	}
	return sec, nil
}

func (c *Client) secondsToBeats(ctx context.Context, seconds float64) (float64, error) {
	vals, err := c.call(ctx, "TimeMap2_timeToQN", seconds)
	if err != nil {
		return 0, err
	}
	var qn float64
	if err := vals.Scan(&qn); err != nil {
		return 0, err
	}
	return qn, nil
}

func (c *Client) ProjectInfo(ctx context.Context) (reaper.ProjectInfo, error) {
	var info reaper.ProjectInfo

	vals, err := c.call(ctx, "GetProjectTimeSignature2")
	if err != nil {
		return info, err
	}
	var bpm, beatsPerMeasure float64
	if err := vals.Scan(&bpm, &beatsPerMeasure); err != nil {
		return info, err
	}
	info.Tempo = bpm
	info.SignatureNumerator = int(beatsPerMeasure)
	// The API reports beats per measure only; the denominator is assumed 4.
	info.SignatureDenominator = 4

	if info.TrackCount, err = c.trackCount(ctx); err != nil {
		return info, err
	}

	vals, err = c.call(ctx, "GetPlayState")
	if err != nil {
		return info, err
	}
	var state float64
	if err := vals.Scan(&state); err != nil {
		return info, err
	}
	info.IsPlaying = int(state)&1 != 0
	info.IsRecording = int(state)&4 != 0

	vals, err = c.call(ctx, "GetCursorPosition")
	if err != nil {
		return info, err
	}
	var cursorSec float64
	if err := vals.Scan(&cursorSec); err != nil {
		return info, err
	}
	if info.CursorPosition, err = c.secondsToBeats(ctx, cursorSec); err != nil {
		return info, err
	}
	return info, nil
}

func (c *Client) TrackInfo(ctx context.Context, trackIndex int) (reaper.TrackInfo, error) {
	var info reaper.TrackInfo
	if err := c.checkTrack(ctx, trackIndex); err != nil {
		return info, err
	}

	vals, err := c.call(ctx, "GetSetMediaTrackInfo_String", trackIndex, "P_NAME", "", false)
	if err != nil {
		return info, err
	}
	if err := vals.Scan(&info.Name); err != nil {
		return info, err
	}

	numeric := []struct {
		parm string
		set  func(float64)
	}{
		{"B_MUTE", func(v float64) { info.Mute = v != 0 }},
		{"I_SOLO", func(v float64) { info.Solo = v != 0 }},
		{"I_RECARM", func(v float64) { info.Arm = v != 0 }},
		{"D_VOL", func(v float64) { info.Volume = v }},
		{"D_PAN", func(v float64) { info.Pan = v }},
	}
	for _, attr := range numeric {
		vals, err := c.call(ctx, "GetMediaTrackInfo_Value", trackIndex, attr.parm)
		if err != nil {
			return info, err
		}
		var v float64
		if err := vals.Scan(&v); err != nil {
			return info, err
		}
		attr.set(v)
	}

	if info.Items, err = c.itemList(ctx, trackIndex); err != nil {
		return info, err
	}
	if info.FX, err = c.fxList(ctx, trackIndex); err != nil {
		return info, err
	}
	return info, nil
}

func (c *Client) CreateTrack(ctx context.Context, name string) (reaper.CreatedTrack, error) {
	var created reaper.CreatedTrack
	n, err := c.trackCount(ctx)
	if err != nil {
		return created, err
	}
	if _, err := c.call(ctx, "InsertTrackAtIndex", n); err != nil {
		return created, err
	}
	created.Index = n

	if name != "" {
		if _, err := c.call(ctx, "GetSetMediaTrackInfo_String", n, "P_NAME", name, true); err != nil {
			return created, err
		}
	}
	vals, err := c.call(ctx, "GetSetMediaTrackInfo_String", n, "P_NAME", "", false)
	if err != nil {
		return created, err
	}
	if err := vals.Scan(&created.Name); err != nil {
		return created, err
	}
	return created, nil
}

func (c *Client) DeleteTrack(ctx context.Context, trackIndex int) error {
	if err := c.checkTrack(ctx, trackIndex); err != nil {
		return err
	}
	_, err := c.call(ctx, "DeleteTrack", trackIndex)
	return err
}

func (c *Client) DeleteAllTracks(ctx context.Context) (int, error) {
	n, err := c.trackCount(ctx)
	if err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		if _, err := c.call(ctx, "DeleteTrack", 0); err != nil {
			return i, err
		}
	}
	return n, nil
}

func (c *Client) SetTrackName(ctx context.Context, trackIndex int, name string) error {
	if err := c.checkTrack(ctx, trackIndex); err != nil {
		return err
	}
	_, err := c.call(ctx, "GetSetMediaTrackInfo_String", trackIndex, "P_NAME", name, true)
	return err
}

// setTrackValue writes a numeric track attribute and reads it back.
func (c *Client) setTrackValue(ctx context.Context, trackIndex int, parm string, value float64) (float64, error) {
	if err := c.checkTrack(ctx, trackIndex); err != nil {
		return 0, err
	}
	if _, err := c.call(ctx, "SetMediaTrackInfo_Value", trackIndex, parm, value); err != nil {
		return 0, err
	}
	vals, err := c.call(ctx, "GetMediaTrackInfo_Value", trackIndex, parm)
	if err != nil {
		return 0, err
	}
	var applied float64
	if err := vals.Scan(&applied); err != nil {
		return 0, err
	}
	return applied, nil
}

func (c *Client) SetTrackVolume(ctx context.Context, trackIndex int, volume float64) (float64, error) {
	return c.setTrackValue(ctx, trackIndex, "D_VOL", volume)
}

func (c *Client) SetTrackPan(ctx context.Context, trackIndex int, pan float64) (float64, error) {
	return c.setTrackValue(ctx, trackIndex, "D_PAN", pan)
}

func (c *Client) SetTrackMute(ctx context.Context, trackIndex int, mute bool) (bool, error) {
	applied, err := c.setTrackValue(ctx, trackIndex, "B_MUTE", boolValue(mute))
	return applied != 0, err
}

func (c *Client) SetTrackSolo(ctx context.Context, trackIndex int, solo bool) (bool, error) {
	applied, err := c.setTrackValue(ctx, trackIndex, "I_SOLO", boolValue(solo))
	return applied != 0, err
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (c *Client) Items(ctx context.Context, trackIndex int) ([]reaper.ItemInfo, error) {
	if err := c.checkTrack(ctx, trackIndex); err != nil {
		return nil, err
	}
	return c.itemList(ctx, trackIndex)
}

func (c *Client) itemList(ctx context.Context, trackIndex int) ([]reaper.ItemInfo, error) {
	vals, err := c.call(ctx, "CountTrackMediaItems", trackIndex)
	if err != nil {
		return nil, err
	}
	var n float64
	if err := vals.Scan(&n); err != nil {
		return nil, err
	}

	items := make([]reaper.ItemInfo, 0, int(n))
	for i := 0; i < int(n); i++ {
		item := reaper.ItemInfo{Index: i}

		var posSec, lenSec float64
		vals, err := c.call(ctx, "GetMediaItemInfo_Value", trackIndex, i, "D_POSITION")
		if err != nil {
			return nil, err
		}
		if err := vals.Scan(&posSec); err != nil {
			return nil, err
		}
		vals, err = c.call(ctx, "GetMediaItemInfo_Value", trackIndex, i, "D_LENGTH")
		if err != nil {
			return nil, err
		}
		if err := vals.Scan(&lenSec); err != nil {
			return nil, err
		}
		startBeats, err := c.secondsToBeats(ctx, posSec)
		if err != nil {
			return nil, err
		}
		endBeats, err := c.secondsToBeats(ctx, posSec+lenSec)
		if err != nil {
			return nil, err
		}
		item.Position = startBeats
		item.Length = endBeats - startBeats

		vals, err = c.call(ctx, "GetActiveTakeInfo", trackIndex, i)
		if err != nil {
			return nil, err
		}
		var hasTake bool
		if err := vals.Scan(&hasTake, &item.Name, &item.IsMIDI); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *Client) CreateMIDIItem(ctx context.Context, trackIndex int, start, length float64) error {
	if err := c.checkTrack(ctx, trackIndex); err != nil {
		return err
	}
	startSec, err := c.beatsToSeconds(ctx, start)
	if err != nil {
		return err
	}
	endSec, err := c.beatsToSeconds(ctx, start+length)
	if err != nil {
		return err
	}
	_, err = c.call(ctx, "CreateNewMIDIItemInProj", trackIndex, startSec, endSec)
	return err
}

func (c *Client) DeleteItem(ctx context.Context, trackIndex, itemIndex int) error {
	if err := c.checkItem(ctx, trackIndex, itemIndex); err != nil {
		return err
	}
	_, err := c.call(ctx, "DeleteTrackMediaItem", trackIndex, itemIndex)
	return err
}

// Duplication goes through the clipboard: copy the item, move the edit
// cursor to the target position, paste.
func (c *Client) DuplicateItem(ctx context.Context, trackIndex, itemIndex int, newPosition float64) error {
	if err := c.checkItem(ctx, trackIndex, itemIndex); err != nil {
		return err
	}
	posSec, err := c.beatsToSeconds(ctx, newPosition)
	if err != nil {
		return err
	}
	steps := []struct {
		fn   string
		args []any
	}{
		{"SelectAllMediaItems", []any{false}},
		{"SetMediaItemSelected", []any{trackIndex, itemIndex, true}},
		{"Main_OnCommand", []any{40698}}, // copy items
		{"SetEditCurPos", []any{posSec, false, false}},
		{"Main_OnCommand", []any{42398}}, // paste
		{"SelectAllMediaItems", []any{false}},
		{"UpdateTimeline", nil},
	}
	for _, step := range steps {
		if _, err := c.call(ctx, step.fn, step.args...); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) SetItemName(ctx context.Context, trackIndex, itemIndex int, name string) error {
	if err := c.checkItem(ctx, trackIndex, itemIndex); err != nil {
		return err
	}
	_, err := c.call(ctx, "GetSetMediaItemTakeInfo_String", trackIndex, itemIndex, "P_NAME", name, true)
	return err
}

func (c *Client) checkMIDIItem(ctx context.Context, trackIndex, itemIndex int) error {
	if err := c.checkItem(ctx, trackIndex, itemIndex); err != nil {
		return err
	}
	vals, err := c.call(ctx, "GetActiveTakeInfo", trackIndex, itemIndex)
	if err != nil {
		return err
	}
	var hasTake, isMIDI bool
	if err := vals.Scan(&hasTake, nil, &isMIDI); err != nil {
		return err
	}
	if !hasTake || !isMIDI {
		return apperrors.New(apperrors.CodeInvalidArgument,
			"item %d on track %d does not contain MIDI data", itemIndex, trackIndex)
	}
	return nil
}

func (c *Client) ItemNotes(ctx context.Context, trackIndex, itemIndex int) ([]reaper.Note, error) {
	if err := c.checkMIDIItem(ctx, trackIndex, itemIndex); err != nil {
		return nil, err
	}

	vals, err := c.call(ctx, "MIDI_CountEvts", trackIndex, itemIndex)
	if err != nil {
		return nil, err
	}
	var noteCount float64
	if err := vals.Scan(&noteCount); err != nil {
		return nil, err
	}

	notes := make([]reaper.Note, 0, int(noteCount))
	for i := 0; i < int(noteCount); i++ {
		vals, err := c.call(ctx, "MIDI_GetNote", trackIndex, itemIndex, i)
		if err != nil {
			return nil, err
		}
		var muted bool
		var startPPQ, endPPQ, channel, pitch, velocity float64
		if err := vals.Scan(&muted, &startPPQ, &endPPQ, &channel, &pitch, &velocity); err != nil {
			return nil, err
		}

		startBeats, err := c.ppqToBeats(ctx, trackIndex, itemIndex, startPPQ)
		if err != nil {
			return nil, err
		}
		endBeats, err := c.ppqToBeats(ctx, trackIndex, itemIndex, endPPQ)
		if err != nil {
			return nil, err
		}
		notes = append(notes, reaper.Note{
			Pitch:     int(pitch),
			StartTime: startBeats,
			Duration:  endBeats - startBeats,
			Velocity:  int(velocity),
			Mute:      muted,
		})
	}
	return notes, nil
}

func (c *Client) ppqToBeats(ctx context.Context, trackIndex, itemIndex int, ppq float64) (float64, error) {
	vals, err := c.call(ctx, "MIDI_GetProjTimeFromPPQPos", trackIndex, itemIndex, ppq)
	if err != nil {
		return 0, err
	}
	var sec float64
	if err := vals.Scan(&sec); err != nil {
		return 0, err
	}
	return c.secondsToBeats(ctx, sec)
}

func (c *Client) beatsToPPQ(ctx context.Context, trackIndex, itemIndex int, beats float64) (float64, error) {
	sec, err := c.beatsToSeconds(ctx, beats)
	if err != nil {
		return 0, err
	}
	vals, err := c.call(ctx, "MIDI_GetPPQPosFromProjTime", trackIndex, itemIndex, sec)
	if err != nil {
		return 0, err
	}
	var ppq float64
	if err := vals.Scan(&ppq); err != nil {
		return 0, err
	}
	return ppq, nil
}

func (c *Client) SetItemNotes(ctx context.Context, trackIndex, itemIndex int, notes []reaper.Note, appendNotes bool) (int, error) {
	if err := c.checkMIDIItem(ctx, trackIndex, itemIndex); err != nil {
		return 0, err
	}

	if !appendNotes {
		vals, err := c.call(ctx, "MIDI_CountEvts", trackIndex, itemIndex)
		if err != nil {
			return 0, err
		}
		var existing float64
		if err := vals.Scan(&existing); err != nil {
			return 0, err
		}
		// Delete from the end so indices stay stable.
		for i := int(existing) - 1; i >= 0; i-- {
			if _, err := c.call(ctx, "MIDI_DeleteNote", trackIndex, itemIndex, i); err != nil {
				return 0, err
			}
		}
	}

	for _, note := range notes {
		startPPQ, err := c.beatsToPPQ(ctx, trackIndex, itemIndex, note.StartTime)
		if err != nil {
			return 0, err
		}
		endPPQ, err := c.beatsToPPQ(ctx, trackIndex, itemIndex, note.StartTime+note.Duration)
		if err != nil {
			return 0, err
		}
		_, err = c.call(ctx, "MIDI_InsertNote", trackIndex, itemIndex,
			note.Mute, startPPQ, endPPQ, 0, note.Pitch, note.Velocity)
		if err != nil {
			return 0, err
		}
	}
	if _, err := c.call(ctx, "MIDI_Sort", trackIndex, itemIndex); err != nil {
		return 0, err
	}
	return len(notes), nil
}

func (c *Client) StartPlayback(ctx context.Context) error {
	_, err := c.call(ctx, "OnPlayButton")
	return err
}

func (c *Client) StopPlayback(ctx context.Context) error {
	_, err := c.call(ctx, "OnStopButton")
	return err
}

func (c *Client) SetTempo(ctx context.Context, bpm float64) (float64, error) {
	if _, err := c.call(ctx, "SetCurrentBPM", bpm); err != nil {
		return 0, err
	}
	vals, err := c.call(ctx, "Master_GetTempo")
	if err != nil {
		return 0, err
	}
	var applied float64
	if err := vals.Scan(&applied); err != nil {
		return 0, err
	}
	return applied, nil
}

func (c *Client) SetTimeSignature(ctx context.Context, numerator, denominator int) error {
	vals, err := c.call(ctx, "Master_GetTempo")
	if err != nil {
		return err
	}
	var bpm float64
	if err := vals.Scan(&bpm); err != nil {
		return err
	}
	if _, err := c.call(ctx, "SetTempoTimeSigMarker", numerator, denominator, bpm); err != nil {
		return err
	}
	_, err = c.call(ctx, "UpdateTimeline")
	return err
}

func (c *Client) Undo(ctx context.Context) error {
	_, err := c.call(ctx, "Undo_DoUndo2")
	return err
}

func (c *Client) SetCursorPosition(ctx context.Context, seconds float64) (float64, error) {
	if _, err := c.call(ctx, "SetEditCurPos", seconds, true, false); err != nil {
		return 0, err
	}
	vals, err := c.call(ctx, "GetCursorPosition")
	if err != nil {
		return 0, err
	}
	var applied float64
	if err := vals.Scan(&applied); err != nil {
		return 0, err
	}
	return applied, nil
}

func (c *Client) GetLoopRegion(ctx context.Context) (reaper.LoopRegion, error) {
	var region reaper.LoopRegion
	vals, err := c.call(ctx, "GetSet_LoopTimeRange", false, 0.0, 0.0)
	if err != nil {
		return region, err
	}
	var startSec, endSec float64
	if err := vals.Scan(&startSec, &endSec); err != nil {
		return region, err
	}
	if region.Start, err = c.secondsToBeats(ctx, startSec); err != nil {
		return region, err
	}
	if region.End, err = c.secondsToBeats(ctx, endSec); err != nil {
		return region, err
	}
	return region, nil
}

func (c *Client) SetLoopRegion(ctx context.Context, start, end float64) error {
	startSec, err := c.beatsToSeconds(ctx, start)
	if err != nil {
		return err
	}
	endSec, err := c.beatsToSeconds(ctx, end)
	if err != nil {
		return err
	}
	_, err = c.call(ctx, "GetSet_LoopTimeRange", true, startSec, endSec)
	return err
}

func (c *Client) AddFX(ctx context.Context, trackIndex int, fxName string) (reaper.FXInfo, error) {
	var fx reaper.FXInfo
	if err := c.checkTrack(ctx, trackIndex); err != nil {
		return fx, err
	}
	vals, err := c.call(ctx, "TrackFX_AddByName", trackIndex, fxName)
	if err != nil {
		return fx, err
	}
	var idx float64
	if err := vals.Scan(&idx); err != nil {
		return fx, err
	}
	if idx < 0 {
		return fx, apperrors.New(apperrors.CodeNotFound, "FX plugin %q not found", fxName)
	}
	fx.Index = int(idx)

	vals, err = c.call(ctx, "TrackFX_GetFXName", trackIndex, fx.Index)
	if err != nil {
		return fx, err
	}
	if err := vals.Scan(&fx.Name); err != nil {
		return fx, err
	}
	return fx, nil
}

func (c *Client) RemoveFX(ctx context.Context, trackIndex, fxIndex int) error {
	if err := c.checkFX(ctx, trackIndex, fxIndex); err != nil {
		return err
	}
	_, err := c.call(ctx, "TrackFX_Delete", trackIndex, fxIndex)
	return err
}

func (c *Client) fxList(ctx context.Context, trackIndex int) ([]reaper.FXInfo, error) {
	vals, err := c.call(ctx, "TrackFX_GetCount", trackIndex)
	if err != nil {
		return nil, err
	}
	var n float64
	if err := vals.Scan(&n); err != nil {
		return nil, err
	}
	chain := make([]reaper.FXInfo, 0, int(n))
	for i := 0; i < int(n); i++ {
		vals, err := c.call(ctx, "TrackFX_GetFXName", trackIndex, i)
		if err != nil {
			return nil, err
		}
		fx := reaper.FXInfo{Index: i}
		if err := vals.Scan(&fx.Name); err != nil {
			return nil, err
		}
		chain = append(chain, fx)
	}
	return chain, nil
}

func (c *Client) FXParameters(ctx context.Context, trackIndex, fxIndex int) (reaper.FXParameterList, error) {
	var list reaper.FXParameterList
	if err := c.checkFX(ctx, trackIndex, fxIndex); err != nil {
		return list, err
	}

	vals, err := c.call(ctx, "TrackFX_GetFXName", trackIndex, fxIndex)
	if err != nil {
		return list, err
	}
	if err := vals.Scan(&list.FXName); err != nil {
		return list, err
	}

	vals, err = c.call(ctx, "TrackFX_GetNumParams", trackIndex, fxIndex)
	if err != nil {
		return list, err
	}
	var n float64
	if err := vals.Scan(&n); err != nil {
		return list, err
	}

	list.Parameters = make([]reaper.FXParameter, 0, int(n))
	for i := 0; i < int(n); i++ {
		param, err := c.fxParameter(ctx, trackIndex, fxIndex, i)
		if err != nil {
			return list, err
		}
		list.Parameters = append(list.Parameters, param)
	}
	return list, nil
}

func (c *Client) fxParameter(ctx context.Context, trackIndex, fxIndex, paramIndex int) (reaper.FXParameter, error) {
	param := reaper.FXParameter{Index: paramIndex}

	vals, err := c.call(ctx, "TrackFX_GetParamName", trackIndex, fxIndex, paramIndex)
	if err != nil {
		return param, err
	}
	if err := vals.Scan(&param.Name); err != nil {
		return param, err
	}

	vals, err = c.call(ctx, "TrackFX_GetParam", trackIndex, fxIndex, paramIndex)
	if err != nil {
		return param, err
	}
	if err := vals.Scan(&param.Value, &param.Min, &param.Max); err != nil {
		return param, err
	}
	return param, nil
}

func (c *Client) SetFXParameter(ctx context.Context, trackIndex, fxIndex int, paramName string, value float64) (reaper.FXParameter, error) {
	var param reaper.FXParameter
	if err := c.checkFX(ctx, trackIndex, fxIndex); err != nil {
		return param, err
	}

	vals, err := c.call(ctx, "TrackFX_GetNumParams", trackIndex, fxIndex)
	if err != nil {
		return param, err
	}
	var n float64
	if err := vals.Scan(&n); err != nil {
		return param, err
	}

	paramIndex := -1
	for i := 0; i < int(n); i++ {
		vals, err := c.call(ctx, "TrackFX_GetParamName", trackIndex, fxIndex, i)
		if err != nil {
			return param, err
		}
		var name string
		if err := vals.Scan(&name); err != nil {
			return param, err
		}
		if strings.EqualFold(name, paramName) {
			paramIndex = i
			break
		}
	}
	if paramIndex < 0 {
		return param, apperrors.New(apperrors.CodeNotFound,
			"parameter %q not found on FX %d of track %d", paramName, fxIndex, trackIndex)
	}

	current, err := c.fxParameter(ctx, trackIndex, fxIndex, paramIndex)
	if err != nil {
		return param, err
	}
	applied := value
	if applied < current.Min {
		applied = current.Min
	}
	if applied > current.Max {
		applied = current.Max
	}
	if _, err := c.call(ctx, "TrackFX_SetParam", trackIndex, fxIndex, paramIndex, applied); err != nil {
		return param, err
	}
	return c.fxParameter(ctx, trackIndex, fxIndex, paramIndex)
}

func (c *Client) CreateTrackWithFX(ctx context.Context, name, fxName string) (reaper.CreatedTrackWithFX, error) {
	var created reaper.CreatedTrackWithFX
	track, err := c.CreateTrack(ctx, name)
	if err != nil {
		return created, err
	}
	fx, err := c.AddFX(ctx, track.Index, fxName)
	if err != nil {
		return created, err
	}
	created.TrackIndex = track.Index
	created.Name = track.Name
	created.FXName = fx.Name
	return created, nil
}

func (c *Client) AddMarker(ctx context.Context, position float64, name string) (int, error) {
	posSec, err := c.beatsToSeconds(ctx, position)
	if err != nil {
		return 0, err
	}
	vals, err := c.call(ctx, "AddProjectMarker", false, posSec, 0.0, name)
	if err != nil {
		return 0, err
	}
	var idx float64
	if err := vals.Scan(&idx); err != nil {
		return 0, err
	}
	return int(idx), nil
}

func (c *Client) AddRegion(ctx context.Context, start, end float64, name string) (int, error) {
	startSec, err := c.beatsToSeconds(ctx, start)
	if err != nil {
		return 0, err
	}
	endSec, err := c.beatsToSeconds(ctx, end)
	if err != nil {
		return 0, err
	}
	vals, err := c.call(ctx, "AddProjectMarker", true, startSec, endSec, name)
	if err != nil {
		return 0, err
	}
	var idx float64
	if err := vals.Scan(&idx); err != nil {
		return 0, err
	}
	return int(idx), nil
}

func (c *Client) Markers(ctx context.Context) (reaper.MarkerList, error) {
	list := reaper.MarkerList{Markers: []reaper.Marker{}, Regions: []reaper.Region{}}

	vals, err := c.call(ctx, "CountProjectMarkers")
	if err != nil {
		return list, err
	}
	var markerCount, regionCount float64
	if err := vals.Scan(&markerCount, &regionCount); err != nil {
		return list, err
	}

	total := int(markerCount) + int(regionCount)
	for i := 0; i < total; i++ {
		vals, err := c.call(ctx, "EnumProjectMarkers", i)
		if err != nil {
			return list, err
		}
		var isRegion bool
		var posSec, endSec, idx float64
		var name string
		if err := vals.Scan(&isRegion, &posSec, &endSec, &name, &idx); err != nil {
			return list, err
		}

		startBeats, err := c.secondsToBeats(ctx, posSec)
		if err != nil {
			return list, err
		}
		if isRegion {
			endBeats, err := c.secondsToBeats(ctx, endSec)
			if err != nil {
				return list, err
			}
			list.Regions = append(list.Regions, reaper.Region{
				Index: int(idx), Name: name, Start: startBeats, End: endBeats,
			})
		} else {
			list.Markers = append(list.Markers, reaper.Marker{
				Index: int(idx), Name: name, Position: startBeats,
			})
		}
	}
	return list, nil
}
