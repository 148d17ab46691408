package timeline

import (
	"testing"

	"github.com/jsphweid/notegrid/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// songEndingAt has one note that ends exactly at end.
func songEndingAt(ppq, end int, sigs ...model.TimeSignatureEvent) *model.Song {
	s := model.NewSong(ppq)
	s.TimeSignatures = sigs
	tr := s.NewTrack("", 0)
	tr.Notes = []model.Note{{Pitch: 60, Start: 0, Duration: end}}
	return s
}

func TestBeatsCycleInFourFour(t *testing.T) {
	s := songEndingAt(960, 15*960, model.TimeSignatureEvent{Start: 0, Num: 4, Denom: 4})
	beats, err := MeasuresAndBeats(s)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(beats, 16)
	for i, b := range beats {
		assert.Equal(i*960, b.Start)
		assert.Equal(i%4+1, b.Beat)
		assert.Equal(i/4+1, b.Measure)
	}
	assert.Empty(s.Stats)

	m, err := CountMeasures(s)
	require.NoError(t, err)
	assert.Equal(5, m)
	assert.Equal(5, s.Stats["Measures"])
}

func TestBeatsIncludeEndTick(t *testing.T) {
	// 3840 ticks at ppq 960 hold four quarter beats; the end tick adds a
	// fifth, so sixteen beats need an end tick of 15*960.
	s := songEndingAt(960, 3840, model.TimeSignatureEvent{Start: 0, Num: 4, Denom: 4})
	beats, err := MeasuresAndBeats(s)
	require.NoError(t, err)

	assert.Len(t, beats, 5)
	assert.Equal(t, model.Beat{Start: 3840, Measure: 2, Beat: 1}, beats[4])
}

func TestTimeSignatureChange(t *testing.T) {
	s := songEndingAt(480, 3840,
		model.TimeSignatureEvent{Start: 1920, Num: 6, Denom: 8},
		model.TimeSignatureEvent{Start: 0, Num: 4, Denom: 4},
	)
	starts, err := MeasureStarts(s)
	require.NoError(t, err)

	// one 4/4 measure of 1920, then 6/8 measures of 6*240
	assert.Equal(t, []int{0, 1920, 3360}, starts)
}

func TestMissingTimeSignature(t *testing.T) {
	cases := map[string][]model.TimeSignatureEvent{
		"empty":    nil,
		"not at 0": {{Start: 960, Num: 4, Denom: 4}},
	}
	for name, sigs := range cases {
		t.Run(name, func(t *testing.T) {
			s := songEndingAt(960, 960, sigs...)
			_, err := MeasuresAndBeats(s)
			assert.ErrorIs(t, err, model.ErrQuantization)

			_, err = GetMeasureBeat(s, 0)
			assert.ErrorIs(t, err, model.ErrQuantization)
		})
	}
}

func TestZeroLengthBeat(t *testing.T) {
	s := songEndingAt(2, 10, model.TimeSignatureEvent{Start: 0, Num: 4, Denom: 16})
	_, err := MeasuresAndBeats(s)
	assert.ErrorIs(t, err, model.ErrContent)
}

func TestGetMeasureBeat(t *testing.T) {
	s := songEndingAt(960, 8*960, model.TimeSignatureEvent{Start: 0, Num: 3, Denom: 4})
	cases := []struct {
		tick int
		want model.Beat
	}{
		{0, model.Beat{Start: 0, Measure: 1, Beat: 1}},
		{959, model.Beat{Start: 0, Measure: 1, Beat: 1}},
		{960, model.Beat{Start: 960, Measure: 1, Beat: 2}},
		{3000, model.Beat{Start: 2880, Measure: 2, Beat: 1}},
		{100000, model.Beat{Start: 7680, Measure: 3, Beat: 3}},
	}
	for _, c := range cases {
		b, err := GetMeasureBeat(s, c.tick)
		require.NoError(t, err)
		assert.Equal(t, c.want, b, "tick %d", c.tick)
	}

	_, err := GetMeasureBeat(s, -1)
	assert.ErrorIs(t, err, model.ErrValue)
}

func TestGetTimeSignatureAndKey(t *testing.T) {
	s := songEndingAt(960, 960,
		model.TimeSignatureEvent{Start: 0, Num: 4, Denom: 4},
		model.TimeSignatureEvent{Start: 3840, Num: 3, Denom: 4},
	)
	s.KeySignatures = []model.KeySignatureEvent{{Start: 0, Key: "C"}, {Start: 1920, Key: "G"}}

	ts, err := GetTimeSignature(s, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, ts.Num)
	ts, err = GetTimeSignature(s, 3840)
	require.NoError(t, err)
	assert.Equal(t, 3, ts.Num)

	ks, err := GetKeySignature(s, 1919)
	require.NoError(t, err)
	assert.Equal(t, "C", ks.Key)
	ks, err = GetKeySignature(s, 5000)
	require.NoError(t, err)
	assert.Equal(t, "G", ks.Key)

	s.KeySignatures = nil
	_, err = GetKeySignature(s, 0)
	assert.ErrorIs(t, err, model.ErrValue)
}
