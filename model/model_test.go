package model

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNoteRejectsOutOfRangePitch(t *testing.T) {
	for _, pitch := range []int{-1, 128} {
		_, err := NewNote(pitch, 0, 10, 100)
		assert.True(t, errors.Is(err, ErrValue), "pitch %d", pitch)
	}
}

func TestNewNoteRejectsNonPositiveDuration(t *testing.T) {
	_, err := NewNote(60, 0, 0, 100)
	assert.ErrorIs(t, err, ErrValue)

	var ve *ValueError
	assert.True(t, errors.As(err, &ve))
}

func TestNoteEqualityIgnoresPosition(t *testing.T) {
	a := Note{Pitch: 60, Start: 0, Duration: 480}
	b := Note{Pitch: 60, Start: 960, Duration: 480, Velocity: 20}
	c := Note{Pitch: 61, Start: 0, Duration: 480}

	assert := assert.New(t)
	assert.True(a.Equal(b))
	assert.False(a.Equal(c))
}

func TestErrorKindsDoNotCrossMatch(t *testing.T) {
	err := NewQuantizationError("no starting time signature")

	assert := assert.New(t)
	assert.ErrorIs(err, ErrQuantization)
	assert.False(errors.Is(err, ErrValue))
	assert.Equal("quantization error: no starting time signature", err.Error())
}

func TestNewTrackCopiesSongGrids(t *testing.T) {
	s := NewSong(480)
	s.NoteGrid, s.DurationGrid = 120, 60
	tr := s.NewTrack("lead", 0)
	s.NoteGrid = 240

	assert := assert.New(t)
	assert.Equal(120, tr.NoteGrid)
	assert.Equal(60, tr.DurationGrid)
	assert.Same(s, tr.Song())
	assert.Len(s.Tracks, 1)
}

func TestEventLessOrdersByTickThenPriority(t *testing.T) {
	events := []Event{
		Note{Start: 0, Duration: 480, Pitch: 60},
		TempoEvent{Start: 0, BPM: 120},
		KeySignatureEvent{Start: 0, Key: "G"},
		Rest{Start: 480, Duration: 480},
		TimeSignatureEvent{Start: 0, Num: 3, Denom: 4},
		ProgramEvent{Start: 0, Program: 3},
		MeasureMarker{Start: 0, Measure: 1},
	}
	sort.SliceStable(events, func(i, j int) bool { return EventLess(events[i], events[j]) })

	var kinds []EventKind
	for _, e := range events {
		kinds = append(kinds, e.Kind())
	}
	assert.Equal(t, []EventKind{
		KindMeasureMarker, KindTimeSignature, KindKeySignature, KindTempo, KindProgram, KindNote, KindRest,
	}, kinds)
}

func TestEventLessPutsLongerVoiceFirst(t *testing.T) {
	short := Note{Start: 0, Duration: 240, Voice: 0}
	long := Rest{Start: 0, Duration: 960, Voice: 1}

	assert := assert.New(t)
	assert.True(EventLess(long, short))
	assert.False(EventLess(short, long))
}

func TestRetimeLeavesOriginalAlone(t *testing.T) {
	orig := TempoEvent{Start: 10, BPM: 90}
	moved := Retime(orig, 0)

	assert := assert.New(t)
	assert.Equal(TempoEvent{Start: 0, BPM: 90}, moved)
	assert.Equal(10, orig.Start)
}

func TestToEventJSON(t *testing.T) {
	j := ToEventJSON(Note{Pitch: 0, Start: 10, Duration: 20, Tied: true})

	assert := assert.New(t)
	assert.Equal("note", j.Kind)
	assert.NotNil(j.Pitch)
	assert.Equal(0, *j.Pitch)
	assert.True(j.Tied)
	assert.Nil(ToEventJSON(Rest{Start: 0, Duration: 5}).Pitch)
}
