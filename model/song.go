package model

import "sort"

const (
	DefaultPPQ = 960
	DefaultBPM = 112
)

type SongMetadata struct {
	PPQ           int
	Name          string
	Composer      string
	Copyright     string
	TimeSignature TimeSignatureEvent
	KeySignature  KeySignatureEvent
	BPM           int
}

func DefaultMetadata() SongMetadata {
	return SongMetadata{
		PPQ:           DefaultPPQ,
		TimeSignature: TimeSignatureEvent{Start: 0, Num: 4, Denom: 4},
		KeySignature:  KeySignatureEvent{Start: 0, Key: "C"},
		BPM:           DefaultBPM,
	}
}

// Song owns its tracks and the song-wide event lists. The signature and tempo
// lists are kept sorted by start tick; the first time signature must be at 0.
type Song struct {
	Metadata SongMetadata

	NoteGrid     int
	DurationGrid int

	Tracks         []*Track
	Other          []Event
	TimeSignatures []TimeSignatureEvent
	KeySignatures  []KeySignatureEvent
	Tempos         []TempoEvent

	// Diagnostics only.
	Stats          map[string]int
	StartDeltas    map[int]int
	DurationDeltas map[int]int
}

func NewSong(ppq int) *Song {
	md := DefaultMetadata()
	if ppq > 0 {
		md.PPQ = ppq
	}
	return &Song{
		Metadata:       md,
		NoteGrid:       md.PPQ,
		DurationGrid:   md.PPQ,
		Stats:          make(map[string]int),
		StartDeltas:    make(map[int]int),
		DurationDeltas: make(map[int]int),
	}
}

func (s *Song) PPQ() int {
	return s.Metadata.PPQ
}

// AddTrack appends t, taking over the song's grids like NewTrack.
func (s *Song) AddTrack(t *Track) *Track {
	t.NoteGrid = s.NoteGrid
	t.DurationGrid = s.DurationGrid
	t.song = s
	s.Tracks = append(s.Tracks, t)
	return t
}

// NewTrack appends an empty track. Its grids are copied from the song now and
// don't follow later changes to the song.
func (s *Song) NewTrack(name string, channel int) *Track {
	return s.AddTrack(&Track{Name: name, Channel: channel})
}

// EndTime is the tick at which the last note of any track ends.
func (s *Song) EndTime() int {
	var end int
	for _, t := range s.Tracks {
		if e := t.EndTime(); e > end {
			end = e
		}
	}
	return end
}

func (s *Song) NoteCount() int {
	var n int
	for _, t := range s.Tracks {
		n += len(t.Notes)
	}
	return n
}

func (s *Song) SortEvents() {
	sort.SliceStable(s.TimeSignatures, func(i, j int) bool {
		return s.TimeSignatures[i].Start < s.TimeSignatures[j].Start
	})
	sort.SliceStable(s.KeySignatures, func(i, j int) bool {
		return s.KeySignatures[i].Start < s.KeySignatures[j].Start
	})
	sort.SliceStable(s.Tempos, func(i, j int) bool {
		return s.Tempos[i].Start < s.Tempos[j].Start
	})
	sort.SliceStable(s.Other, func(i, j int) bool {
		return s.Other[i].StartTick() < s.Other[j].StartTick()
	})
}

// Stat increments a diagnostic counter.
func (s *Song) Stat(name string, delta int) {
	if s.Stats == nil {
		s.Stats = make(map[string]int)
	}
	s.Stats[name] += delta
}

func (s *Song) SetStat(name string, value int) {
	if s.Stats == nil {
		s.Stats = make(map[string]int)
	}
	s.Stats[name] = value
}
