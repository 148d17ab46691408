package midi

import (
	"io"
	"sort"

	"github.com/jsphweid/notegrid/model"
	"github.com/jsphweid/notegrid/notation"
	"github.com/jsphweid/notegrid/util"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ordering of simultaneous messages within a track
const (
	rankMeta = iota
	rankNoteOff
	rankControl
	rankNoteOn
)

type timed struct {
	tick int
	rank int
	msg  []byte
}

func writeTrack(events []timed) smf.Track {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].rank < events[j].rank
	})
	var tr smf.Track
	var last int
	for _, e := range events {
		tr.Add(uint32(e.tick-last), e.msg)
		last = e.tick
	}
	tr.Close(0)
	return tr
}

func metaText(typ byte, text string) []byte {
	var length []byte
	n := len(text)
	length = append(length, byte(n&0x7F))
	for n >>= 7; n > 0; n >>= 7 {
		length = append([]byte{byte(n&0x7F) | 0x80}, length...)
	}
	res := append([]byte{0xFF, typ}, length...)
	return append(res, text...)
}

func keySignature(key string) ([]byte, error) {
	sharps, minor, err := notation.SharpsFromKey(key)
	if err != nil {
		return nil, err
	}
	var mi byte
	if minor {
		mi = 1
	}
	return []byte{0xFF, metaKeySig, 0x02, byte(int8(sharps)), mi}, nil
}

func conductorTrack(song *model.Song) (smf.Track, error) {
	var events []timed
	if song.Metadata.Name != "" {
		events = append(events, timed{0, rankMeta, smf.MetaTrackSequenceName(song.Metadata.Name)})
	}
	if song.Metadata.Copyright != "" {
		events = append(events, timed{0, rankMeta, metaText(metaCopyright, song.Metadata.Copyright)})
	}
	for _, ts := range song.TimeSignatures {
		if ts.Num <= 0 || ts.Num > 255 || ts.Denom <= 0 || ts.Denom > 128 || ts.Denom&(ts.Denom-1) != 0 {
			return nil, model.NewContentError("time signature %d/%d at %d can't be written to midi", ts.Num, ts.Denom, ts.Start)
		}
		events = append(events, timed{ts.Start, rankMeta, smf.MetaMeter(uint8(ts.Num), uint8(ts.Denom))})
	}
	for _, ks := range song.KeySignatures {
		msg, err := keySignature(ks.Key)
		if err != nil {
			return nil, err
		}
		events = append(events, timed{ks.Start, rankMeta, msg})
	}
	for _, tm := range song.Tempos {
		if tm.BPM <= 0 {
			return nil, model.NewContentError("tempo %d at %d can't be written to midi", tm.BPM, tm.Start)
		}
		events = append(events, timed{tm.Start, rankMeta, smf.MetaTempo(float64(tm.BPM))})
	}
	for _, e := range song.Other {
		if o, ok := e.(model.OtherEvent); ok {
			events = append(events, timed{o.Start, rankMeta, o.Payload})
		}
	}
	return writeTrack(events), nil
}

func noteTrack(t *model.Track) smf.Track {
	ch := uint8(util.Min(util.Max(t.Channel, 0), 15))
	var events []timed
	if t.Name != "" {
		events = append(events, timed{0, rankMeta, smf.MetaTrackSequenceName(t.Name)})
	}
	for _, e := range t.Other {
		switch v := e.(type) {
		case model.ProgramEvent:
			events = append(events, timed{v.Start, rankControl, midi.ProgramChange(ch, uint8(v.Program))})
		case model.OtherEvent:
			events = append(events, timed{v.Start, rankControl, v.Payload})
		}
	}
	for _, n := range t.Notes {
		events = append(events,
			timed{n.Start, rankNoteOn, midi.NoteOn(ch, uint8(n.Pitch), uint8(util.Max(n.Velocity, 1)))},
			timed{n.End(), rankNoteOff, midi.NoteOff(ch, uint8(n.Pitch))})
	}
	return writeTrack(events)
}

// FromSong builds a format 1 file: a conductor track with the song-wide
// events followed by one track per song track.
func FromSong(song *model.Song) (*smf.SMF, error) {
	ppq := song.PPQ()
	if ppq <= 0 || ppq >= 0x8000 {
		return nil, model.NewContentError("ppq %d can't be written to midi", ppq)
	}
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ppq)

	conductor, err := conductorTrack(song)
	if err != nil {
		return nil, err
	}
	if err := s.Add(conductor); err != nil {
		return nil, errors.Wrap(err, "adding conductor track")
	}
	for _, t := range song.Tracks {
		if err := s.Add(noteTrack(t)); err != nil {
			return nil, errors.Wrapf(err, "adding track %q", t.Name)
		}
	}
	return s, nil
}

func WriteSong(w io.Writer, song *model.Song) error {
	s, err := FromSong(song)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return errors.Wrap(err, "error writing midi")
	}
	return nil
}

func WriteMidiFile(song *model.Song, filepath string) error {
	s, err := FromSong(song)
	if err != nil {
		return err
	}
	return errors.Wrapf(s.WriteFile(filepath), "error writing midi file %s", filepath)
}
