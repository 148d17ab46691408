// Package timeline derives measures and beats from a song's time signatures.
package timeline

import (
	"sort"

	"github.com/jsphweid/notegrid/model"
)

func sortedTimeSignatures(song *model.Song) ([]model.TimeSignatureEvent, error) {
	sigs := append([]model.TimeSignatureEvent(nil), song.TimeSignatures...)
	sort.SliceStable(sigs, func(i, j int) bool {
		return sigs[i].Start < sigs[j].Start
	})
	if len(sigs) == 0 || sigs[0].Start != 0 {
		return nil, model.NewQuantizationError("no starting time signature")
	}
	for _, ts := range sigs {
		if ts.Num <= 0 || ts.Denom <= 0 {
			return nil, model.NewValueError("illegal time signature %d/%d at %d", ts.Num, ts.Denom, ts.Start)
		}
	}
	return sigs, nil
}

// BeatTicks is the length of one beat under a time signature.
func BeatTicks(ppq int, ts model.TimeSignatureEvent) int {
	return ppq * 4 / ts.Denom
}

// MeasuresAndBeats walks the song from tick 0 to its last note end and returns
// every beat, the end tick included. A time signature takes effect at the
// first beat at or after its start. The song is not modified.
func MeasuresAndBeats(song *model.Song) ([]model.Beat, error) {
	beats, _, err := walk(song)
	return beats, err
}

// CountMeasures records the measure counter reached by the beat walk in the
// song's "Measures" stat.
func CountMeasures(song *model.Song) (int, error) {
	_, m, err := walk(song)
	if err != nil {
		return 0, err
	}
	song.SetStat("Measures", m)
	return m, nil
}

func walk(song *model.Song) ([]model.Beat, int, error) {
	sigs, err := sortedTimeSignatures(song)
	if err != nil {
		return nil, 0, err
	}
	ppq := song.PPQ()
	for _, ts := range sigs {
		if BeatTicks(ppq, ts) <= 0 {
			return nil, 0, model.NewContentError("time signature %d/%d has zero-length beats at ppq %d", ts.Num, ts.Denom, ppq)
		}
	}

	var beats []model.Beat
	t, m, b := 0, 1, 1
	last := sigs[0]
	step := func(until int, inclusive bool) {
		for t < until || (inclusive && t == until) {
			beats = append(beats, model.Beat{Start: t, Measure: m, Beat: b})
			t += BeatTicks(ppq, last)
			b++
			if b > last.Num {
				m++
				b = 1
			}
		}
	}
	for _, ts := range sigs {
		step(ts.Start, false)
		last = ts
	}
	step(song.EndTime(), true)
	return beats, m, nil
}

// MeasureStarts returns the tick of every beat 1.
func MeasureStarts(song *model.Song) ([]int, error) {
	beats, err := MeasuresAndBeats(song)
	if err != nil {
		return nil, err
	}
	var res []int
	for _, b := range beats {
		if b.Beat == 1 {
			res = append(res, b.Start)
		}
	}
	return res, nil
}

// GetMeasureBeat returns the beat that tick falls in.
func GetMeasureBeat(song *model.Song, tick int) (model.Beat, error) {
	beats, err := MeasuresAndBeats(song)
	if err != nil {
		return model.Beat{}, err
	}
	return FindBeat(beats, tick)
}

// FindBeat binary searches beats for the last one starting at or before tick.
func FindBeat(beats []model.Beat, tick int) (model.Beat, error) {
	pos := sort.Search(len(beats), func(i int) bool {
		return beats[i].Start > tick
	})
	if pos == 0 {
		return model.Beat{}, model.NewValueError("tick %d is before the first beat", tick)
	}
	return beats[pos-1], nil
}

// GetTimeSignature returns the time signature active at tick.
func GetTimeSignature(song *model.Song, tick int) (model.TimeSignatureEvent, error) {
	sigs, err := sortedTimeSignatures(song)
	if err != nil {
		return model.TimeSignatureEvent{}, err
	}
	pos := sort.Search(len(sigs), func(i int) bool {
		return sigs[i].Start > tick
	})
	if pos == 0 {
		return model.TimeSignatureEvent{}, model.NewValueError("tick %d is before the first time signature", tick)
	}
	return sigs[pos-1], nil
}

// GetKeySignature returns the key signature active at tick.
func GetKeySignature(song *model.Song, tick int) (model.KeySignatureEvent, error) {
	keys := append([]model.KeySignatureEvent(nil), song.KeySignatures...)
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].Start < keys[j].Start
	})
	if len(keys) == 0 || keys[0].Start != 0 {
		return model.KeySignatureEvent{}, model.NewValueError("no starting key signature")
	}
	pos := sort.Search(len(keys), func(i int) bool {
		return keys[i].Start > tick
	})
	if pos == 0 {
		return model.KeySignatureEvent{}, model.NewValueError("tick %d is before the first key signature", tick)
	}
	return keys[pos-1], nil
}
