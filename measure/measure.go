// Package measure splits tracks into measures: notes are bucketed by the
// song's measure boundaries, gaps are filled with rests and notes crossing a
// boundary are split into tied pieces.
package measure

import (
	"sort"

	"github.com/jsphweid/notegrid/model"
	"github.com/jsphweid/notegrid/polyphony"
	"github.com/jsphweid/notegrid/quantize"
	"github.com/jsphweid/notegrid/timeline"
)

// Boundaries returns the measure start ticks plus one closing tick. The
// closing tick extends the last measure by the length of the one before it,
// repeated until every note of the song ends inside.
func Boundaries(song *model.Song) ([]int, error) {
	starts, err := timeline.MeasureStarts(song)
	if err != nil {
		return nil, err
	}
	var length int
	if len(starts) >= 2 {
		length = starts[len(starts)-1] - starts[len(starts)-2]
	} else {
		ts, err := timeline.GetTimeSignature(song, starts[0])
		if err != nil {
			return nil, err
		}
		length = timeline.BeatTicks(song.PPQ(), ts) * ts.Num
	}
	if length <= 0 {
		return nil, model.NewContentError("zero-length measure at tick %d", starts[len(starts)-1])
	}
	end := song.EndTime()
	last := starts[len(starts)-1]
	for {
		last += length
		starts = append(starts, last)
		if last >= end {
			break
		}
	}
	return starts, nil
}

// SortEvents orders measure contents by tick and kind priority, keeping the
// original order for ties.
func SortEvents(events []model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return model.EventLess(events[i], events[j])
	})
}

// Populate converts a monophonic track whose notes start on its note grid into
// measures.
func Populate(song *model.Song, track *model.Track) ([]model.Measure, error) {
	bounds, err := Boundaries(song)
	if err != nil {
		return nil, err
	}
	return populate(song, track, bounds)
}

func populate(song *model.Song, track *model.Track, bounds []int) ([]model.Measure, error) {
	if !quantize.IsTrackAligned(track) {
		return nil, model.NewQuantizationError("track %q is not quantized", track.Name)
	}
	if err := polyphony.RequireMonophonic(track); err != nil {
		return nil, err
	}

	var res []model.Measure
	var carry *model.Note
	inote := 0
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		events := []model.Event{model.MeasureMarker{Start: start, Measure: i + 1}}
		lastNoteEnd := start

		if carry != nil {
			if carry.Duration <= 0 {
				return nil, model.NewValueError("illegal carry note duration %d (%v)", carry.Duration, *carry)
			}
			carry.Start = start
			if carry.End() > end {
				piece := *carry
				piece.Duration = end - start
				piece.Tied = true
				events = append(events, piece)
				carry.Duration -= end - start
				lastNoteEnd = end
			} else {
				events = append(events, *carry)
				lastNoteEnd = carry.End()
				carry = nil
			}
		}

		for inote < len(track.Notes) && track.Notes[inote].Start < end {
			n := track.Notes[inote]
			if gap := n.Start - lastNoteEnd; gap > 0 {
				events = append(events, model.Rest{Start: lastNoteEnd, Duration: gap})
				lastNoteEnd = n.Start
			}
			if n.End() <= end {
				events = append(events, n)
				lastNoteEnd = n.End()
			} else {
				remainder := n
				remainder.Duration = n.End() - end
				carry = &remainder

				n.Duration = end - n.Start
				n.Tied = true
				events = append(events, n)
				lastNoteEnd = end
			}
			inote++
		}

		if gap := end - lastNoteEnd; gap > 0 {
			events = append(events, model.Rest{Start: lastNoteEnd, Duration: gap})
		}

		for _, e := range track.Other {
			if start <= e.StartTick() && e.StartTick() < end {
				events = append(events, e)
			}
		}
		// key and time signature changes only happen on a measure boundary
		for _, ks := range song.KeySignatures {
			if start <= ks.Start && ks.Start < end {
				events = append(events, model.KeySignatureEvent{Start: start, Key: ks.Key})
			}
		}
		for _, ts := range song.TimeSignatures {
			if start <= ts.Start && ts.Start < end {
				events = append(events, model.TimeSignatureEvent{Start: start, Num: ts.Num, Denom: ts.Denom})
			}
		}
		for _, tm := range song.Tempos {
			if start <= tm.Start && tm.Start < end {
				events = append(events, tm)
			}
		}
		for _, e := range song.Other {
			if start <= e.StartTick() && e.StartTick() < end {
				events = append(events, e)
			}
		}

		SortEvents(events)
		res = append(res, model.Measure{Number: i + 1, Start: start, End: end, Events: events})
	}

	if carry != nil || inote < len(track.Notes) {
		return nil, model.NewContentError("track %q has notes past the last measure", track.Name)
	}
	return res, nil
}

// Trim drops trailing measures while the last measure of every track has no
// notes, keeping all tracks the same length.
func Trim(measures [][]model.Measure) [][]model.Measure {
	if len(measures) == 0 {
		return measures
	}
	for {
		for _, m := range measures {
			if len(m) == 0 || m[len(m)-1].NoteCount() > 0 {
				return measures
			}
		}
		for i := range measures {
			measures[i] = measures[i][:len(measures[i])-1]
		}
	}
}

// Get populates every track of the song and trims the empty tail. The song
// must already be quantized and monophonic. It only reads the song.
func Get(song *model.Song) ([][]model.Measure, error) {
	bounds, err := Boundaries(song)
	if err != nil {
		return nil, err
	}
	res := make([][]model.Measure, 0, len(song.Tracks))
	for _, t := range song.Tracks {
		m, err := populate(song, t, bounds)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return Trim(res), nil
}

// MergeVoices combines the same measure from several parts into one, tagging
// notes and rests with their part index. Markers and song-wide events come from
// the first part only.
func MergeVoices(parts ...model.Measure) (model.Measure, error) {
	if len(parts) == 0 {
		return model.Measure{}, model.NewValueError("no measures to merge")
	}
	res := model.Measure{Number: parts[0].Number, Start: parts[0].Start, End: parts[0].End}
	for voice, m := range parts {
		if m.Start != res.Start || m.End != res.End {
			return model.Measure{}, model.NewContentError("measure %d spans [%d, %d) but voice %d spans [%d, %d)",
				res.Number, res.Start, res.End, voice, m.Start, m.End)
		}
		for _, e := range m.Events {
			switch v := e.(type) {
			case model.Note:
				v.Voice = voice
				res.Events = append(res.Events, v)
			case model.Rest:
				v.Voice = voice
				res.Events = append(res.Events, v)
			case model.ProgramEvent, model.OtherEvent:
				res.Events = append(res.Events, v)
			default:
				if voice == 0 {
					res.Events = append(res.Events, v)
				}
			}
		}
	}
	SortEvents(res.Events)
	return res, nil
}
