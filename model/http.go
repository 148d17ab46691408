package model

// EventJSON is the flat wire form of an Event. Fields that don't apply to a
// kind are omitted.
type EventJSON struct {
	Kind     string `json:"kind"`
	Tick     int    `json:"tick"`
	Duration int    `json:"duration,omitempty"`
	Pitch    *int   `json:"pitch,omitempty"`
	Velocity int    `json:"velocity,omitempty"`
	Tied     bool   `json:"tied,omitempty"`
	Voice    int    `json:"voice,omitempty"`
	Num      int    `json:"num,omitempty"`
	Denom    int    `json:"denom,omitempty"`
	Key      string `json:"key,omitempty"`
	BPM      int    `json:"bpm,omitempty"`
	Program  *int   `json:"program,omitempty"`
	Measure  int    `json:"measure,omitempty"`
	Payload  []byte `json:"payload,omitempty"`
}

func ToEventJSON(e Event) EventJSON {
	res := EventJSON{Kind: e.Kind().String(), Tick: e.StartTick()}
	switch v := e.(type) {
	case Note:
		pitch := v.Pitch
		res.Pitch = &pitch
		res.Duration = v.Duration
		res.Velocity = v.Velocity
		res.Tied = v.Tied
		res.Voice = v.Voice
	case Rest:
		res.Duration = v.Duration
		res.Voice = v.Voice
	case TimeSignatureEvent:
		res.Num = v.Num
		res.Denom = v.Denom
	case KeySignatureEvent:
		res.Key = v.Key
	case TempoEvent:
		res.BPM = v.BPM
	case ProgramEvent:
		program := v.Program
		res.Program = &program
	case OtherEvent:
		res.Payload = v.Payload
	case MeasureMarker:
		res.Measure = v.Measure
	}
	return res
}

type MeasureJSON struct {
	Number int         `json:"number"`
	Start  int         `json:"start"`
	End    int         `json:"end"`
	Events []EventJSON `json:"events"`
}

func ToMeasureJSON(m Measure) MeasureJSON {
	res := MeasureJSON{Number: m.Number, Start: m.Start, End: m.End, Events: make([]EventJSON, 0, len(m.Events))}
	for _, e := range m.Events {
		res.Events = append(res.Events, ToEventJSON(e))
	}
	return res
}

type TrackMeasures struct {
	Name     string        `json:"name"`
	Channel  int           `json:"channel"`
	Measures []MeasureJSON `json:"measures"`
}

type AnalyzeResponse struct {
	Name         string          `json:"name,omitempty"`
	PPQ          int             `json:"ppq"`
	NoteGrid     int             `json:"note_grid"`
	DurationGrid int             `json:"duration_grid"`
	Quantized    bool            `json:"quantized"`
	Polyphonic   bool            `json:"polyphonic"`
	Stats        map[string]int  `json:"stats,omitempty"`
	Tracks       []TrackMeasures `json:"tracks"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
