package quantize

import (
	"testing"

	"github.com/jsphweid/notegrid/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performedSong() *model.Song {
	s := model.NewSong(960)
	s.TimeSignatures = []model.TimeSignatureEvent{{Start: 0, Num: 4, Denom: 4}}
	s.Tempos = []model.TempoEvent{{Start: 7, BPM: 120}}
	tr := s.NewTrack("lead", 0)
	tr.Notes = []model.Note{
		{Pitch: 60, Start: 3, Duration: 470, Velocity: 90},
		{Pitch: 62, Start: 482, Duration: 455, Velocity: 90},
		{Pitch: 64, Start: 958, Duration: 950, Velocity: 90},
		{Pitch: 65, Start: 1925, Duration: 10, Velocity: 90},
	}
	tr.Other = []model.Event{model.ProgramEvent{Start: 1, Program: 5}}
	return s
}

func TestErrorIsDistanceToNearestLine(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, Error(480, 240))
	assert.Equal(10, Error(490, 240))
	assert.Equal(10, Error(470, 240))
	assert.Equal(120, Error(120, 240))
}

func TestFindStartQuantizationExactFit(t *testing.T) {
	times := []int{0, 240, 480, 720}
	grid := FindStartQuantization(times, 960)

	assert := assert.New(t)
	assert.Equal(240, grid)
	assert.Equal(0, ObjectiveError(times, grid))
}

func TestFindStartQuantizationTriplets(t *testing.T) {
	assert.Equal(t, 320, FindStartQuantization([]int{0, 320, 640, 960, 1280}, 960))
}

func TestFindStartQuantizationStopsAtFirstMinimum(t *testing.T) {
	// eighth notes played a little early or late
	times := []int{0, 478, 963, 1441, 1918, 2404}
	assert.Equal(t, 480, FindStartQuantization(times, 960))
}

func TestFindStartQuantizationGivesUp(t *testing.T) {
	// relatively prime offsets improve all the way down
	times := []int{1, 2, 3, 4, 5, 6, 7}
	assert.Equal(t, 1, FindStartQuantization(times, 960))
}

func TestFindStartQuantizationSmallPPQ(t *testing.T) {
	assert.Equal(t, 1, FindStartQuantization([]int{1, 3, 5}, 24))
}

func TestFindDurationQuantization(t *testing.T) {
	grid, err := FindDurationQuantization([]int{960, 480, 320, 240}, 960)
	require.NoError(t, err)
	assert.LessOrEqual(t, grid, 240)
	for _, d := range []int{960, 480, 320, 240} {
		assert.Greater(t, ToGrid(d, grid), 0)
	}
}

func TestFindDurationQuantizationPrefersTriplet(t *testing.T) {
	grid, err := FindDurationQuantization([]int{960, 320}, 960)
	require.NoError(t, err)
	assert.Equal(t, 320, grid)
}

func TestFindDurationQuantizationKeepsCoarseGrid(t *testing.T) {
	grid, err := FindDurationQuantization([]int{960, 1920}, 960)
	require.NoError(t, err)
	assert.Equal(t, 960, grid)
}

func TestFindDurationQuantizationRejectsNonPositive(t *testing.T) {
	_, err := FindDurationQuantization([]int{480, 0}, 480)
	assert.ErrorIs(t, err, model.ErrQuantization)

	_, err = FindDurationQuantization(nil, 480)
	assert.ErrorIs(t, err, model.ErrQuantization)
}

func TestToGrid(t *testing.T) {
	cases := []struct{ t, grid, want int }{
		{0, 240, 0},
		{119, 240, 0},
		{120, 240, 240},
		{121, 240, 240},
		{479, 240, 480},
		{-10, 240, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ToGrid(c.t, c.grid), "ToGrid(%d, %d)", c.t, c.grid)
	}
}

func TestSongQuantizesEverything(t *testing.T) {
	s := performedSong()
	require.NoError(t, Song(s, 480, 480))

	tr := s.Tracks[0]
	assert := assert.New(t)
	assert.Equal([]int{0, 480, 960, 1920}, []int{tr.Notes[0].Start, tr.Notes[1].Start, tr.Notes[2].Start, tr.Notes[3].Start})
	assert.Equal(480, tr.Notes[0].Duration)
	assert.Equal(960, tr.Notes[2].Duration)
	// too short to round up, clamped to one grid unit
	assert.Equal(480, tr.Notes[3].Duration)
	assert.Equal(0, tr.Other[0].StartTick())
	assert.Equal(0, s.Tempos[0].Start)
	assert.Equal(480, s.NoteGrid)
	assert.Equal(480, tr.NoteGrid)
	assert.Equal(480, tr.DurationGrid)
	assert.True(IsQuantized(s))
	assert.Equal(1, s.StartDeltas[-3])
}

func TestSongQuantizeIsIdempotent(t *testing.T) {
	s := performedSong()
	require.NoError(t, Song(s, 480, 240))
	first := append([]model.Note(nil), s.Tracks[0].Notes...)

	require.NoError(t, Song(s, 480, 240))

	assert := assert.New(t)
	assert.Equal(first, s.Tracks[0].Notes)
	assert.True(IsQuantized(s))
	for _, count := range s.StartDeltas {
		assert.Equal(len(first), count)
	}
	assert.Equal(len(first), s.StartDeltas[0])
}

func TestSongAutoDiscovery(t *testing.T) {
	s := performedSong()
	noteGrid, durationGrid, err := Estimate(s)
	require.NoError(t, err)

	require.NoError(t, Song(s, 0, 0))

	assert := assert.New(t)
	assert.Equal(noteGrid, s.NoteGrid)
	assert.Equal(durationGrid, s.DurationGrid)
	assert.True(IsQuantized(s))
}

func TestEstimateEmptySong(t *testing.T) {
	s := model.NewSong(480)
	noteGrid, durationGrid, err := Estimate(s)
	require.NoError(t, err)
	assert.Equal(t, 480, noteGrid)
	assert.Equal(t, 480, durationGrid)
}

func TestEstimateTrackFallsBackToHalfGrid(t *testing.T) {
	s := model.NewSong(960)
	tr := s.NewTrack("", 0)
	tr.Notes = []model.Note{
		{Pitch: 60, Start: 0, Duration: 240},
		{Pitch: 60, Start: 960, Duration: 240},
		{Pitch: 60, Start: 1920, Duration: 240},
	}
	noteGrid, durationGrid := EstimateTrack(tr, s.PPQ())
	assert.Equal(t, 960, noteGrid)
	assert.Equal(t, 480, durationGrid)
}

func TestEstimateDetachedTrack(t *testing.T) {
	tr := &model.Track{Name: "loose", Notes: []model.Note{
		{Pitch: 60, Start: 0, Duration: 480},
		{Pitch: 62, Start: 480, Duration: 480},
	}}
	assert.Nil(t, tr.Song())
	noteGrid, durationGrid := EstimateTrack(tr, 480)
	assert.Equal(t, 480, noteGrid)
	assert.Equal(t, 480, durationGrid)
}

func TestFromNoteName(t *testing.T) {
	cases := []struct {
		name string
		grid int
	}{
		{"16", 240},
		{"8-3", 160},
		{"4.", 480},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := performedSong()
			require.NoError(t, FromNoteName(s, c.name, false, false))
			assert.Equal(t, c.grid, s.NoteGrid)
			assert.Equal(t, c.grid, s.DurationGrid)
		})
	}

	err := FromNoteName(performedSong(), "7", false, false)
	assert.ErrorIs(t, err, model.ErrValue)
}

func TestIsQuantizedPerTrack(t *testing.T) {
	s := model.NewSong(960)
	a := s.NewTrack("a", 0)
	a.NoteGrid, a.DurationGrid = 480, 480
	a.Notes = []model.Note{{Pitch: 60, Start: 480, Duration: 480}}
	b := s.NewTrack("b", 1)
	b.NoteGrid, b.DurationGrid = 320, 320
	b.Notes = []model.Note{{Pitch: 60, Start: 320, Duration: 640}}

	assert.True(t, IsQuantized(s))

	b.Notes[0].Start = 480
	assert.False(t, IsQuantized(s))
}
