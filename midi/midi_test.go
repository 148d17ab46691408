package midi

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/jsphweid/notegrid/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func testSong() *model.Song {
	s := model.NewSong(480)
	s.Metadata.Name = "tune"
	s.Metadata.Copyright = "(c) nobody"
	s.TimeSignatures = []model.TimeSignatureEvent{{Start: 0, Num: 3, Denom: 4}, {Start: 2880, Num: 6, Denom: 8}}
	s.KeySignatures = []model.KeySignatureEvent{{Start: 0, Key: "F"}, {Start: 2880, Key: "F#m"}}
	s.Tempos = []model.TempoEvent{{Start: 0, BPM: 112}, {Start: 1440, BPM: 90}}

	lead := s.NewTrack("lead", 2)
	lead.Notes = []model.Note{
		{Pitch: 60, Start: 0, Duration: 480, Velocity: 100},
		{Pitch: 62, Start: 480, Duration: 480, Velocity: 90},
		{Pitch: 64, Start: 960, Duration: 1920, Velocity: 80},
	}
	lead.Other = []model.Event{model.ProgramEvent{Start: 0, Program: 19}}

	bass := s.NewTrack("bass", 3)
	bass.Notes = []model.Note{
		{Pitch: 43, Start: 0, Duration: 1440, Velocity: 70},
		{Pitch: 36, Start: 1440, Duration: 1440, Velocity: 70},
	}
	return s
}

func roundTrip(t *testing.T, song *model.Song) *model.Song {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteSong(&buf, song))
	res, err := ReadSongFrom(&buf)
	require.NoError(t, err)
	return res
}

func TestRoundTrip(t *testing.T) {
	orig := testSong()
	song := roundTrip(t, orig)

	assert := assert.New(t)
	assert.Equal(480, song.PPQ())
	assert.Equal("tune", song.Metadata.Name)
	assert.Equal("(c) nobody", song.Metadata.Copyright)
	assert.Equal(orig.TimeSignatures, song.TimeSignatures)
	assert.Equal(orig.KeySignatures, song.KeySignatures)
	assert.Equal(orig.Tempos, song.Tempos)
	assert.Equal(model.TimeSignatureEvent{Start: 0, Num: 3, Denom: 4}, song.Metadata.TimeSignature)
	assert.Equal(112, song.Metadata.BPM)

	require.Len(t, song.Tracks, 2)
	for i, tr := range song.Tracks {
		assert.Equal(orig.Tracks[i].Name, tr.Name)
		assert.Equal(orig.Tracks[i].Channel, tr.Channel)
		assert.Equal(orig.Tracks[i].Notes, tr.Notes)
		assert.Same(song, tr.Song())
		assert.Equal(480, tr.NoteGrid)
	}
	assert.Equal([]model.Event{model.ProgramEvent{Start: 0, Program: 19}}, song.Tracks[0].Other)
	assert.Equal(5, song.Stats["Notes"])
}

func TestRoundTripRepeatedNotes(t *testing.T) {
	s := model.NewSong(96)
	tr := s.NewTrack("drums", 9)
	// the second note starts when the first stops, so note off must come first
	tr.Notes = []model.Note{
		{Pitch: 38, Start: 0, Duration: 96, Velocity: 100},
		{Pitch: 38, Start: 96, Duration: 96, Velocity: 100},
	}
	song := roundTrip(t, s)
	require.Len(t, song.Tracks, 1)
	assert.Equal(t, tr.Notes, song.Tracks[0].Notes)
}

func TestToSongDefaults(t *testing.T) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(960)
	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 60, 100))
	tr.Add(960, midi.NoteOn(0, 60, 0))
	tr.Add(0, midi.NoteOn(0, 64, 100))
	tr.Add(0, midi.NoteOn(0, 64, 100))
	tr.Add(480, midi.NoteOff(0, 64))
	tr.Add(0, midi.NoteOff(0, 67))
	tr.Add(0, midi.NoteOn(0, 72, 100))
	tr.Close(0)
	require.NoError(t, s.Add(tr))

	song, err := ToSong(s)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]model.TimeSignatureEvent{{Start: 0, Num: 4, Denom: 4}}, song.TimeSignatures)
	assert.Equal([]model.TempoEvent{{Start: 0, BPM: model.DefaultBPM}}, song.Tempos)
	assert.Equal([]model.KeySignatureEvent{{Start: 0, Key: "C"}}, song.KeySignatures)
	require.Len(t, song.Tracks, 1)
	// the note without a note off is dropped
	assert.Equal([]model.Note{
		{Pitch: 60, Start: 0, Duration: 960, Velocity: 100},
		{Pitch: 64, Start: 960, Duration: 480, Velocity: 100},
	}, song.Tracks[0].Notes)
}

func TestFromSongRejectsOddMeter(t *testing.T) {
	s := testSong()
	s.TimeSignatures[1].Denom = 12
	_, err := FromSong(s)
	assert.ErrorIs(t, err, model.ErrContent)
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tune.mid")
	require.NoError(t, WriteMidiFile(testSong(), path))

	song, err := ReadSong(path)
	require.NoError(t, err)
	assert.Equal(t, 5, song.NoteCount())

	_, err = ReadSong(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)
}

func TestMetaData(t *testing.T) {
	typ, data, ok := metaData(smf.Message(metaText(metaCopyright, "abc")))
	assert := assert.New(t)
	assert.True(ok)
	assert.Equal(byte(metaCopyright), typ)
	assert.Equal([]byte("abc"), data)

	long := string(make([]byte, 200))
	_, data, ok = metaData(smf.Message(metaText(0x01, long)))
	assert.True(ok)
	assert.Len(data, 200)

	_, _, ok = metaData(smf.Message(midi.NoteOn(0, 1, 1)))
	assert.False(ok)
}
