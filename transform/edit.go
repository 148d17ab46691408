package transform

import (
	"math"

	"github.com/jsphweid/notegrid/constants"
	"github.com/jsphweid/notegrid/model"
	"github.com/jsphweid/notegrid/notation"
	"github.com/jsphweid/notegrid/util"
)

// RemoveControlNotes drops every note at or below max. Some sequencers use
// those pitches for patch changes rather than music.
func RemoveControlNotes(song *model.Song, max int) (removed int) {
	for _, t := range song.Tracks {
		kept := t.Notes[:0]
		for _, n := range t.Notes {
			if n.Pitch > max {
				kept = append(kept, n)
			} else {
				removed++
			}
		}
		t.Notes = kept
	}
	song.SetStat("ControlNotes", removed)
	return removed
}

// Transpose shifts every note and the key signatures by semitones. Nothing is
// changed when a note would leave the MIDI range.
func Transpose(song *model.Song, semitones int) error {
	for _, t := range song.Tracks {
		for _, n := range t.Notes {
			if p := n.Pitch + semitones; p < model.MinPitch || p > model.MaxPitch {
				return model.NewValueError("transposing %v by %d leaves the pitch range", n, semitones)
			}
		}
	}
	for _, t := range song.Tracks {
		for i := range t.Notes {
			t.Notes[i].Pitch += semitones
		}
	}

	shift := func(key string) string {
		mode, idx, ok := notation.KeyIndex(key)
		if !ok {
			return key
		}
		return constants.Keys[mode][((idx+semitones)%12+12)%12]
	}
	for i, ks := range song.KeySignatures {
		song.KeySignatures[i].Key = shift(ks.Key)
	}
	song.Metadata.KeySignature.Key = shift(song.Metadata.KeySignature.Key)
	return nil
}

// SetBPM replaces every tempo change with a single tempo at tick 0.
func SetBPM(song *model.Song, bpm int) error {
	if bpm <= 0 {
		return model.NewValueError("illegal bpm %d", bpm)
	}
	song.Tempos = []model.TempoEvent{{Start: 0, BPM: bpm}}
	song.Metadata.BPM = bpm
	return nil
}

func SetTimeSignature(song *model.Song, num, denom int) error {
	if num <= 0 || denom <= 0 || denom&(denom-1) != 0 {
		return model.NewValueError("illegal time signature %d/%d", num, denom)
	}
	ts := model.TimeSignatureEvent{Start: 0, Num: num, Denom: denom}
	song.TimeSignatures = []model.TimeSignatureEvent{ts}
	song.Metadata.TimeSignature = ts
	return nil
}

// SetKeySignature replaces every key change with key at tick 0. Minor keys
// are written with a trailing m, like "F#m".
func SetKeySignature(song *model.Song, key string) error {
	mode, idx, ok := notation.KeyIndex(key)
	if !ok {
		return model.NewValueError("unknown key %q", key)
	}
	ks := model.KeySignatureEvent{Start: 0, Key: constants.Keys[mode][idx]}
	song.KeySignatures = []model.KeySignatureEvent{ks}
	song.Metadata.KeySignature = ks
	return nil
}

// ScaleTicks multiplies every tick value, including the ppq, by factor.
func ScaleTicks(song *model.Song, factor float64) error {
	if factor <= 0 || math.IsInf(factor, 0) || math.IsNaN(factor) {
		return model.NewValueError("illegal tick scale %v", factor)
	}
	f := func(t int) int {
		return int(math.Round(float64(t) * factor))
	}
	positive := func(t int) int {
		return util.Max(f(t), 1)
	}
	mapTicks(song, f, positive)
	song.Metadata.PPQ = positive(song.Metadata.PPQ)
	return nil
}

// MoveTicks shifts everything by offset. Notes ending at or before tick 0 are
// dropped and notes straddling it are shortened. Of the song-wide events that
// land before 0 only the last one survives, at 0.
func MoveTicks(song *model.Song, offset int) error {
	for _, t := range song.Tracks {
		kept := t.Notes[:0]
		for _, n := range t.Notes {
			n.Start += offset
			if n.End() <= 0 {
				continue
			}
			if n.Start < 0 {
				n.Duration += n.Start
				n.Start = 0
			}
			kept = append(kept, n)
		}
		t.Notes = kept
		for i, e := range t.Other {
			t.Other[i] = model.Retime(e, util.Max(e.StartTick()+offset, 0))
		}
	}
	for i, e := range song.Other {
		song.Other[i] = model.Retime(e, util.Max(e.StartTick()+offset, 0))
	}

	song.TimeSignatures = moveList(song.TimeSignatures, offset,
		func(e model.TimeSignatureEvent) int { return e.Start },
		func(e *model.TimeSignatureEvent, t int) { e.Start = t })
	song.KeySignatures = moveList(song.KeySignatures, offset,
		func(e model.KeySignatureEvent) int { return e.Start },
		func(e *model.KeySignatureEvent, t int) { e.Start = t })
	song.Tempos = moveList(song.Tempos, offset,
		func(e model.TempoEvent) int { return e.Start },
		func(e *model.TempoEvent, t int) { e.Start = t })
	return nil
}

// moveList shifts a sorted song-wide list. The event in effect at tick 0
// afterwards is pinned there, so a list that started at 0 still does.
func moveList[E any](events []E, offset int, start func(E) int, set func(*E, int)) []E {
	if len(events) == 0 {
		return events
	}
	res := make([]E, 0, len(events))
	for i, e := range events {
		t := start(e) + offset
		if i == 0 && start(e) == 0 {
			t = 0
		}
		if t <= 0 {
			set(&e, 0)
			if len(res) > 0 && start(res[len(res)-1]) == 0 {
				res[len(res)-1] = e
				continue
			}
		} else {
			set(&e, t)
		}
		res = append(res, e)
	}
	return res
}

func mapTicks(song *model.Song, tick func(int) int, length func(int) int) {
	for i, ts := range song.TimeSignatures {
		song.TimeSignatures[i].Start = tick(ts.Start)
	}
	for i, ks := range song.KeySignatures {
		song.KeySignatures[i].Start = tick(ks.Start)
	}
	for i, tm := range song.Tempos {
		song.Tempos[i].Start = tick(tm.Start)
	}
	for i, e := range song.Other {
		song.Other[i] = model.Retime(e, tick(e.StartTick()))
	}
	for _, t := range song.Tracks {
		for i, n := range t.Notes {
			t.Notes[i].Start = tick(n.Start)
			t.Notes[i].Duration = length(n.Duration)
		}
		for i, e := range t.Other {
			t.Other[i] = model.Retime(e, tick(e.StartTick()))
		}
		t.NoteGrid = length(t.NoteGrid)
		t.DurationGrid = length(t.DurationGrid)
	}
	song.NoteGrid = length(song.NoteGrid)
	song.DurationGrid = length(song.DurationGrid)
}
