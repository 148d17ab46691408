// Package transform holds the in-place song edits: metric modulation,
// transposition, signature and tempo overrides and tick rescaling.
package transform

import (
	"github.com/jsphweid/notegrid/model"
	"github.com/jsphweid/notegrid/util"
)

func scale(t, num, denom int) int {
	return util.FloorDiv(t*num, denom)
}

// Modulate rescales every tick value of the song by num/denom and adjusts the
// time signatures and tempos so the music sounds the same.
func Modulate(song *model.Song, num, denom int) error {
	if num <= 0 || denom <= 0 {
		return model.NewValueError("illegal modulation %d/%d", num, denom)
	}

	tick := func(t int) int { return scale(t, num, denom) }
	length := func(t int) int { return util.Max(scale(t, num, denom), 1) }
	mapTicks(song, tick, length)

	for i, ts := range song.TimeSignatures {
		song.TimeSignatures[i] = modulateSignature(ts, num, denom)
	}
	for i, tm := range song.Tempos {
		song.Tempos[i].BPM = scale(tm.BPM, num, denom)
	}

	song.Metadata.TimeSignature = modulateSignature(song.Metadata.TimeSignature, num, denom)
	song.Metadata.BPM = scale(song.Metadata.BPM, num, denom)
	return nil
}

// modulateSignature multiplies the signature by num/denom and leaves its start
// alone. Only odd common factors are cancelled.
func modulateSignature(ts model.TimeSignatureEvent, num, denom int) model.TimeSignatureEvent {
	n, d := ts.Num*num, ts.Denom*denom
	g := util.GCD(n, d)
	for g%2 == 0 && g > 0 {
		g /= 2
	}
	if g > 1 {
		n, d = n/g, d/g
	}
	return model.TimeSignatureEvent{Start: ts.Start, Num: n, Denom: d}
}
