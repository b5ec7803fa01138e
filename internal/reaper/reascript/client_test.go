package reascript

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/dawctl/reaper-mcp/internal/platform/errors"
	"github.com/dawctl/reaper-mcp/internal/reaper"
)

func testNotes() []reaper.Note {
	return []reaper.Note{
		{Pitch: 60, StartTime: 0, Duration: 1, Velocity: 96},
		{Pitch: 64, StartTime: 1, Duration: 1, Velocity: 96},
		{Pitch: 67, StartTime: 2, Duration: 2, Velocity: 80, Mute: true},
	}
}

type invocation struct {
	fn   string
	args []any
}

type fakeInvoker struct {
	invoke func(fn string, args []any) (Values, error)
	calls  []invocation
}

func (f *fakeInvoker) Invoke(ctx context.Context, fn string, args ...any) (Values, error) {
	f.calls = append(f.calls, invocation{fn: fn, args: args})
	if f.invoke == nil {
		return nil, nil
	}
	return f.invoke(fn, args)
}

func (f *fakeInvoker) called(fn string) []invocation {
	var out []invocation
	for _, call := range f.calls {
		if call.fn == fn {
			out = append(out, call)
		}
	}
	return out
}

func rets(t *testing.T, vs ...any) Values {
	t.Helper()
	out := make(Values, len(vs))
	for i, v := range vs {
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal return value %d: %v", i, err)
		}
		out[i] = raw
	}
	return out
}

// projectFake answers the common project queries: two tracks, 120 BPM in
// 4/4, stopped, and linear beat conversion (one beat is half a second).
func projectFake(t *testing.T, override func(fn string, args []any) (Values, bool, error)) *fakeInvoker {
	t.Helper()
	return &fakeInvoker{invoke: func(fn string, args []any) (Values, error) {
		if override != nil {
			if vals, ok, err := override(fn, args); ok {
				return vals, err
			}
		}
		switch fn {
		case "GetAppVersion":
			return rets(t, "7.0"), nil
		case "CountTracks":
			return rets(t, 2), nil
		case "GetProjectTimeSignature2":
			return rets(t, 120.0, 4.0), nil
		case "GetPlayState":
			return rets(t, 0), nil
		case "GetCursorPosition":
			return rets(t, 0.0), nil
		case "TimeMap2_QNToTime":
			var qn float64
			mustArg(t, args, 0, &qn)
			return rets(t, qn*0.5), nil
		case "TimeMap2_timeToQN":
			var sec float64
			mustArg(t, args, 0, &sec)
			return rets(t, sec*2), nil
		}
		return nil, nil
	}}
}

func mustArg(t *testing.T, args []any, i int, dest *float64) {
	t.Helper()
	if i >= len(args) {
		t.Fatalf("argument %d missing (have %d)", i, len(args))
	}
	switch v := args[i].(type) {
	case float64:
		*dest = v
	case int:
		*dest = float64(v)
	default:
		t.Fatalf("argument %d has type %T, want number", i, args[i])
	}
}

func TestClientLazyConnect(t *testing.T) {
	inv := projectFake(t, nil)
	client := NewClient(inv, nil)

	if err := client.StartPlayback(context.Background()); err != nil {
		t.Fatalf("StartPlayback() error = %v", err)
	}
	if got := inv.calls[0].fn; got != "GetAppVersion" {
		t.Errorf("first call = %q, want probe GetAppVersion", got)
	}

	if err := client.StopPlayback(context.Background()); err != nil {
		t.Fatalf("StopPlayback() error = %v", err)
	}
	if got := len(inv.called("GetAppVersion")); got != 1 {
		t.Errorf("probe ran %d times, want 1", got)
	}
}

func TestClientConnectFailureInstallsBridge(t *testing.T) {
	dir := t.TempDir()
	inv := &fakeInvoker{invoke: func(fn string, args []any) (Values, error) {
		return nil, apperrors.New(apperrors.CodeNotConnected, "refused")
	}}
	client := NewClient(inv, &Installer{ResourceDir: dir})

	err := client.StartPlayback(context.Background())
	if !apperrors.IsCode(err, apperrors.CodeNotConnected) {
		t.Fatalf("StartPlayback() error = %v, want NOT_CONNECTED", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "Scripts", scriptName)); statErr != nil {
		t.Errorf("bridge script not installed: %v", statErr)
	}

	// The configuration step runs at most once.
	if err := client.StartPlayback(context.Background()); !apperrors.IsCode(err, apperrors.CodeNotConnected) {
		t.Fatalf("second StartPlayback() error = %v, want NOT_CONNECTED", err)
	}
	startup, err := os.ReadFile(filepath.Join(dir, "Scripts", startupName))
	if err != nil {
		t.Fatal(err)
	}
	if n := countOccurrences(string(startup), scriptName); n != 1 {
		t.Errorf("startup registrations = %d, want 1", n)
	}
}

func countOccurrences(s, sub string) int {
	n := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			n++
		}
	}
	return n
}

func TestClientProjectInfo(t *testing.T) {
	inv := projectFake(t, func(fn string, args []any) (Values, bool, error) {
		switch fn {
		case "CountTracks":
			return rets(t, 3), true, nil
		case "GetPlayState":
			return rets(t, 5), true, nil // playing and recording
		case "GetCursorPosition":
			return rets(t, 2.0), true, nil
		}
		return nil, false, nil
	})
	client := NewClient(inv, nil)

	info, err := client.ProjectInfo(context.Background())
	if err != nil {
		t.Fatalf("ProjectInfo() error = %v", err)
	}
	if info.Tempo != 120 {
		t.Errorf("Tempo = %v, want 120", info.Tempo)
	}
	if info.SignatureNumerator != 4 || info.SignatureDenominator != 4 {
		t.Errorf("signature = %d/%d, want 4/4", info.SignatureNumerator, info.SignatureDenominator)
	}
	if info.TrackCount != 3 {
		t.Errorf("TrackCount = %d, want 3", info.TrackCount)
	}
	if !info.IsPlaying || !info.IsRecording {
		t.Errorf("play state = %v/%v, want true/true", info.IsPlaying, info.IsRecording)
	}
	if info.CursorPosition != 4 {
		t.Errorf("CursorPosition = %v beats, want 4", info.CursorPosition)
	}
}

func TestClientTrackNotFound(t *testing.T) {
	client := NewClient(projectFake(t, nil), nil)

	_, err := client.TrackInfo(context.Background(), 5)
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("TrackInfo(5) error = %v, want NOT_FOUND", err)
	}
	if _, err := client.SetTrackVolume(context.Background(), -1, 0.5); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("SetTrackVolume(-1) error = %v, want NOT_FOUND", err)
	}
}

func TestClientSetTrackVolume(t *testing.T) {
	inv := projectFake(t, func(fn string, args []any) (Values, bool, error) {
		if fn == "GetMediaTrackInfo_Value" {
			return rets(t, 0.5), true, nil
		}
		return nil, false, nil
	})
	client := NewClient(inv, nil)

	applied, err := client.SetTrackVolume(context.Background(), 1, 0.5)
	if err != nil {
		t.Fatalf("SetTrackVolume() error = %v", err)
	}
	if applied != 0.5 {
		t.Errorf("applied = %v, want 0.5", applied)
	}

	sets := inv.called("SetMediaTrackInfo_Value")
	if len(sets) != 1 {
		t.Fatalf("SetMediaTrackInfo_Value called %d times, want 1", len(sets))
	}
	want := []any{1, "D_VOL", 0.5}
	if fmt.Sprint(sets[0].args) != fmt.Sprint(want) {
		t.Errorf("args = %v, want %v", sets[0].args, want)
	}
}

func TestClientCreateTrack(t *testing.T) {
	inv := projectFake(t, func(fn string, args []any) (Values, bool, error) {
		if fn == "GetSetMediaTrackInfo_String" {
			return rets(t, "Drums"), true, nil
		}
		return nil, false, nil
	})
	client := NewClient(inv, nil)

	created, err := client.CreateTrack(context.Background(), "Drums")
	if err != nil {
		t.Fatalf("CreateTrack() error = %v", err)
	}
	if created.Index != 2 {
		t.Errorf("Index = %d, want 2 (appended)", created.Index)
	}
	if created.Name != "Drums" {
		t.Errorf("Name = %q, want Drums", created.Name)
	}

	inserts := inv.called("InsertTrackAtIndex")
	if len(inserts) != 1 || fmt.Sprint(inserts[0].args) != fmt.Sprint([]any{2}) {
		t.Errorf("InsertTrackAtIndex calls = %v, want one at index 2", inserts)
	}
}

func TestClientDeleteAllTracks(t *testing.T) {
	inv := projectFake(t, func(fn string, args []any) (Values, bool, error) {
		if fn == "CountTracks" {
			return rets(t, 3), true, nil
		}
		return nil, false, nil
	})
	client := NewClient(inv, nil)

	deleted, err := client.DeleteAllTracks(context.Background())
	if err != nil {
		t.Fatalf("DeleteAllTracks() error = %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}
	for i, call := range inv.called("DeleteTrack") {
		if fmt.Sprint(call.args) != fmt.Sprint([]any{0}) {
			t.Errorf("delete %d args = %v, want [0] (indices shift)", i, call.args)
		}
	}
}

func TestClientDuplicateItemClearsSelection(t *testing.T) {
	inv := projectFake(t, func(fn string, args []any) (Values, bool, error) {
		if fn == "CountTrackMediaItems" {
			return rets(t, 1), true, nil
		}
		return nil, false, nil
	})
	client := NewClient(inv, nil)

	if err := client.DuplicateItem(context.Background(), 0, 0, 8); err != nil {
		t.Fatalf("DuplicateItem() error = %v", err)
	}

	deselects := inv.called("SelectAllMediaItems")
	if len(deselects) != 2 {
		t.Fatalf("SelectAllMediaItems called %d times, want 2", len(deselects))
	}
	for i, call := range deselects {
		if fmt.Sprint(call.args) != fmt.Sprint([]any{false}) {
			t.Errorf("deselect %d args = %v, want [false]", i, call.args)
		}
	}
	// The second deselect follows the paste so the copy is not left selected.
	var pasteAt, deselectAt int
	for i, call := range inv.calls {
		switch {
		case call.fn == "Main_OnCommand" && fmt.Sprint(call.args) == fmt.Sprint([]any{42398}):
			pasteAt = i
		case call.fn == "SelectAllMediaItems":
			deselectAt = i
		}
	}
	if deselectAt < pasteAt {
		t.Errorf("last deselect at call %d, paste at %d, want deselect after paste", deselectAt, pasteAt)
	}
}

func TestClientItemNotesRejectsNonMIDI(t *testing.T) {
	inv := projectFake(t, func(fn string, args []any) (Values, bool, error) {
		switch fn {
		case "CountTrackMediaItems":
			return rets(t, 1), true, nil
		case "GetActiveTakeInfo":
			return rets(t, true, "Audio", false), true, nil
		}
		return nil, false, nil
	})
	client := NewClient(inv, nil)

	_, err := client.ItemNotes(context.Background(), 0, 0)
	if !apperrors.IsCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("ItemNotes() error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestClientSetItemNotesReplaces(t *testing.T) {
	inv := projectFake(t, func(fn string, args []any) (Values, bool, error) {
		switch fn {
		case "CountTrackMediaItems":
			return rets(t, 1), true, nil
		case "GetActiveTakeInfo":
			return rets(t, true, "Melody", true), true, nil
		case "MIDI_CountEvts":
			return rets(t, 2, 0, 0), true, nil
		case "MIDI_GetPPQPosFromProjTime":
			var sec float64
			mustArg(t, args, 2, &sec)
			return rets(t, sec*1920), true, nil
		}
		return nil, false, nil
	})
	client := NewClient(inv, nil)

	written, err := client.SetItemNotes(context.Background(), 0, 0, testNotes(), false)
	if err != nil {
		t.Fatalf("SetItemNotes() error = %v", err)
	}
	if written != 3 {
		t.Errorf("written = %d, want 3", written)
	}

	deletes := inv.called("MIDI_DeleteNote")
	if len(deletes) != 2 {
		t.Fatalf("MIDI_DeleteNote called %d times, want 2", len(deletes))
	}
	// Highest index first so remaining indices stay valid.
	var first, second float64
	mustArg(t, deletes[0].args, 2, &first)
	mustArg(t, deletes[1].args, 2, &second)
	if first != 1 || second != 0 {
		t.Errorf("delete order = %v, %v, want 1, 0", first, second)
	}

	if got := len(inv.called("MIDI_InsertNote")); got != 3 {
		t.Errorf("MIDI_InsertNote called %d times, want 3", got)
	}
	if got := len(inv.called("MIDI_Sort")); got != 1 {
		t.Errorf("MIDI_Sort called %d times, want 1", got)
	}
}

func TestClientSetItemNotesAppendKeepsExisting(t *testing.T) {
	inv := projectFake(t, func(fn string, args []any) (Values, bool, error) {
		switch fn {
		case "CountTrackMediaItems":
			return rets(t, 1), true, nil
		case "GetActiveTakeInfo":
			return rets(t, true, "Melody", true), true, nil
		case "MIDI_CountEvts":
			return rets(t, 2, 0, 0), true, nil
		case "MIDI_GetPPQPosFromProjTime":
			return rets(t, 0.0), true, nil
		}
		return nil, false, nil
	})
	client := NewClient(inv, nil)

	if _, err := client.SetItemNotes(context.Background(), 0, 0, testNotes(), true); err != nil {
		t.Fatalf("SetItemNotes() error = %v", err)
	}
	if got := len(inv.called("MIDI_DeleteNote")); got != 0 {
		t.Errorf("MIDI_DeleteNote called %d times, want 0 in append mode", got)
	}
}

func TestClientAddFX(t *testing.T) {
	t.Run("resolves name", func(t *testing.T) {
		inv := projectFake(t, func(fn string, args []any) (Values, bool, error) {
			switch fn {
			case "TrackFX_AddByName":
				return rets(t, 1), true, nil
			case "TrackFX_GetFXName":
				return rets(t, "VST: ReaSynth (Cockos)"), true, nil
			}
			return nil, false, nil
		})
		client := NewClient(inv, nil)

		fx, err := client.AddFX(context.Background(), 0, "ReaSynth")
		if err != nil {
			t.Fatalf("AddFX() error = %v", err)
		}
		if fx.Index != 1 || fx.Name != "VST: ReaSynth (Cockos)" {
			t.Errorf("fx = %+v, want index 1 with resolved name", fx)
		}
	})

	t.Run("unknown plugin", func(t *testing.T) {
		inv := projectFake(t, func(fn string, args []any) (Values, bool, error) {
			if fn == "TrackFX_AddByName" {
				return rets(t, -1), true, nil
			}
			return nil, false, nil
		})
		client := NewClient(inv, nil)

		_, err := client.AddFX(context.Background(), 0, "NoSuchPlugin")
		if !apperrors.IsCode(err, apperrors.CodeNotFound) {
			t.Fatalf("AddFX() error = %v, want NOT_FOUND", err)
		}
	})
}

func TestClientSetFXParameterClampsToRange(t *testing.T) {
	inv := projectFake(t, func(fn string, args []any) (Values, bool, error) {
		switch fn {
		case "TrackFX_GetCount":
			return rets(t, 1), true, nil
		case "TrackFX_GetNumParams":
			return rets(t, 2), true, nil
		case "TrackFX_GetParamName":
			var idx float64
			mustArg(t, args, 2, &idx)
			if idx == 0 {
				return rets(t, "Volume"), true, nil
			}
			return rets(t, "Attack"), true, nil
		case "TrackFX_GetParam":
			return rets(t, 0.25, 0.0, 1.0), true, nil
		}
		return nil, false, nil
	})
	client := NewClient(inv, nil)

	if _, err := client.SetFXParameter(context.Background(), 0, 0, "attack", 2.5); err != nil {
		t.Fatalf("SetFXParameter() error = %v", err)
	}

	sets := inv.called("TrackFX_SetParam")
	if len(sets) != 1 {
		t.Fatalf("TrackFX_SetParam called %d times, want 1", len(sets))
	}
	var paramIdx, value float64
	mustArg(t, sets[0].args, 2, &paramIdx)
	mustArg(t, sets[0].args, 3, &value)
	if paramIdx != 1 {
		t.Errorf("param index = %v, want 1 (matched case-insensitively)", paramIdx)
	}
	if value != 1.0 {
		t.Errorf("value = %v, want 1.0 (clamped to max)", value)
	}
}

func TestClientSetFXParameterUnknownName(t *testing.T) {
	inv := projectFake(t, func(fn string, args []any) (Values, bool, error) {
		switch fn {
		case "TrackFX_GetCount":
			return rets(t, 1), true, nil
		case "TrackFX_GetNumParams":
			return rets(t, 1), true, nil
		case "TrackFX_GetParamName":
			return rets(t, "Volume"), true, nil
		}
		return nil, false, nil
	})
	client := NewClient(inv, nil)

	_, err := client.SetFXParameter(context.Background(), 0, 0, "Resonance", 0.5)
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("SetFXParameter() error = %v, want NOT_FOUND", err)
	}
}

func TestClientLoopRegionRoundTrip(t *testing.T) {
	var storedStart, storedEnd float64
	inv := projectFake(t, func(fn string, args []any) (Values, bool, error) {
		if fn == "GetSet_LoopTimeRange" {
			set, ok := args[0].(bool)
			if !ok {
				t.Fatalf("arg 0 has type %T, want bool", args[0])
			}
			if set {
				mustArg(t, args, 1, &storedStart)
				mustArg(t, args, 2, &storedEnd)
			}
			return rets(t, storedStart, storedEnd), true, nil
		}
		return nil, false, nil
	})
	client := NewClient(inv, nil)

	if err := client.SetLoopRegion(context.Background(), 4, 12); err != nil {
		t.Fatalf("SetLoopRegion() error = %v", err)
	}
	region, err := client.GetLoopRegion(context.Background())
	if err != nil {
		t.Fatalf("GetLoopRegion() error = %v", err)
	}
	if region.Start != 4 || region.End != 12 {
		t.Errorf("region = %+v, want 4..12 beats", region)
	}
}

func TestClientMarkers(t *testing.T) {
	inv := projectFake(t, func(fn string, args []any) (Values, bool, error) {
		switch fn {
		case "CountProjectMarkers":
			return rets(t, 1, 1), true, nil
		case "EnumProjectMarkers":
			var i float64
			mustArg(t, args, 0, &i)
			if i == 0 {
				return rets(t, false, 1.0, 0.0, "Verse", 1), true, nil
			}
			return rets(t, true, 2.0, 4.0, "Chorus", 2), true, nil
		}
		return nil, false, nil
	})
	client := NewClient(inv, nil)

	list, err := client.Markers(context.Background())
	if err != nil {
		t.Fatalf("Markers() error = %v", err)
	}
	if len(list.Markers) != 1 || len(list.Regions) != 1 {
		t.Fatalf("got %d markers, %d regions, want 1 each", len(list.Markers), len(list.Regions))
	}
	if m := list.Markers[0]; m.Name != "Verse" || m.Position != 2 {
		t.Errorf("marker = %+v, want Verse at 2 beats", m)
	}
	if r := list.Regions[0]; r.Name != "Chorus" || r.Start != 4 || r.End != 8 {
		t.Errorf("region = %+v, want Chorus 4..8 beats", r)
	}
}
