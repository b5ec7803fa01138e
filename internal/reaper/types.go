package reaper

// ProjectInfo is a snapshot of the current project's global state.
type ProjectInfo struct {
	Tempo                float64 `json:"tempo"`
	SignatureNumerator   int     `json:"signature_numerator"`
	SignatureDenominator int     `json:"signature_denominator"`
	TrackCount           int     `json:"track_count"`
	IsPlaying            bool    `json:"is_playing"`
	IsRecording          bool    `json:"is_recording"`
	CursorPosition       float64 `json:"cursor_position"`
}

// TrackInfo describes one track, including its media items and FX chain.
type TrackInfo struct {
	Name   string     `json:"name"`
	Mute   bool       `json:"mute"`
	Solo   bool       `json:"solo"`
	Arm    bool       `json:"arm"`
	Volume float64    `json:"volume"`
	Pan    float64    `json:"pan"`
	Items  []ItemInfo `json:"items"`
	FX     []FXInfo   `json:"fx"`
}

// ItemInfo describes one media item on a track. Position and length are in
// beats.
type ItemInfo struct {
	Index    int     `json:"index"`
	Name     string  `json:"name"`
	Position float64 `json:"position"`
	Length   float64 `json:"length"`
	IsMIDI   bool    `json:"is_midi"`
}

// Note is one MIDI note in an item's active take. StartTime and Duration
// are in beats; Pitch and Velocity use the MIDI 0-127 range.
type Note struct {
	Pitch     int     `json:"pitch"`
	StartTime float64 `json:"start_time"`
	Duration  float64 `json:"duration"`
	Velocity  int     `json:"velocity"`
	Mute      bool    `json:"mute"`
}

// FXInfo identifies one FX instance in a track's chain. Index reflects the
// chain order inside REAPER.
type FXInfo struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// FXParameter describes one parameter of an FX instance, with its current
// value and the range REAPER reports for it.
type FXParameter struct {
	Index int     `json:"index"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// FXParameterList is the parameter listing of one FX instance.
type FXParameterList struct {
	FXName     string        `json:"fx_name"`
	Parameters []FXParameter `json:"parameters"`
}

// CreatedTrack reports the outcome of a track creation.
type CreatedTrack struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// CreatedTrackWithFX reports the outcome of the combined create-track-and-
// add-FX operation. FXName is the resolved plugin name.
type CreatedTrackWithFX struct {
	TrackIndex int    `json:"track_index"`
	Name       string `json:"name"`
	FXName     string `json:"fx_name"`
}

// Marker is a point marker in the project timeline. Position is in beats.
type Marker struct {
	Index    int     `json:"index"`
	Name     string  `json:"name"`
	Position float64 `json:"position"`
}

// Region is a named span in the project timeline. Start and End are in
// beats.
type Region struct {
	Index int     `json:"index"`
	Name  string  `json:"name"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// MarkerList groups the project's markers and regions.
type MarkerList struct {
	Markers []Marker `json:"markers"`
	Regions []Region `json:"regions"`
}

// LoopRegion is the loop/repeat selection. Start and End are in beats and
// round-trip exactly through SetLoopRegion.
type LoopRegion struct {
	Start float64 `json:"loop_start"`
	End   float64 `json:"loop_end"`
}
