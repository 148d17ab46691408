package midi

import (
	"math"

	"github.com/jsphweid/notegrid/model"
	"github.com/jsphweid/notegrid/notation"
	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	metaCopyright  = 0x02
	metaEndOfTrack = 0x2F
	metaKeySig     = 0x59
)

// metaData returns the type and payload of a raw meta message.
func metaData(msg smf.Message) (typ byte, data []byte, ok bool) {
	if len(msg) < 3 || msg[0] != 0xFF {
		return 0, nil, false
	}
	length, i := 0, 2
	for ; i < len(msg); i++ {
		length = length<<7 | int(msg[i]&0x7F)
		if msg[i]&0x80 == 0 {
			i++
			break
		}
	}
	if i+length > len(msg) {
		return 0, nil, false
	}
	return msg[1], msg[i : i+length], true
}

func noteKey(channel, key uint8) uint16 {
	return uint16(channel)<<8 | uint16(key)
}

// ToSong imports every track that has notes. Meta events from all tracks go
// into the song-wide lists; a song without a time signature, tempo or key at
// tick 0 gets the metadata defaults there.
func ToSong(s *smf.SMF) (*model.Song, error) {
	tf, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, model.NewValueError("unsupported time format %v", s.TimeFormat)
	}
	song := model.NewSong(int(tf))

	for i, tr := range s.Tracks {
		t := importTrack(song, tr)
		if len(t.Notes) == 0 {
			logrus.Debugf("track %d (%q) has no notes", i, t.Name)
			if song.Metadata.Name == "" && t.Name != "" {
				song.Metadata.Name = t.Name
			}
			continue
		}
		song.AddTrack(t)
		t.SortNotes()
		t.SortOther()
	}

	song.SortEvents()
	md := &song.Metadata
	if len(song.TimeSignatures) == 0 || song.TimeSignatures[0].Start != 0 {
		song.TimeSignatures = append([]model.TimeSignatureEvent{md.TimeSignature}, song.TimeSignatures...)
	}
	md.TimeSignature = song.TimeSignatures[0]
	if len(song.Tempos) == 0 || song.Tempos[0].Start != 0 {
		song.Tempos = append([]model.TempoEvent{{Start: 0, BPM: md.BPM}}, song.Tempos...)
	}
	md.BPM = song.Tempos[0].BPM
	if len(song.KeySignatures) == 0 || song.KeySignatures[0].Start != 0 {
		song.KeySignatures = append([]model.KeySignatureEvent{md.KeySignature}, song.KeySignatures...)
	}
	md.KeySignature = song.KeySignatures[0]

	song.SetStat("Notes", song.NoteCount())
	return song, nil
}

// importTrack pairs note on and note off events into notes. Song-wide meta
// events are added to song, but the returned track is not.
func importTrack(song *model.Song, tr smf.Track) *model.Track {
	t := &model.Track{Channel: -1}
	active := make(map[uint16]int)
	var tick int
	for _, ev := range tr {
		tick += int(ev.Delta)
		msg := ev.Message
		var ch, key, vel, prog uint8
		var name string
		var bpm float64
		var num, denom, cpt, dsqpq uint8
		switch {
		case msg.GetNoteOn(&ch, &key, &vel) && vel > 0:
			k := noteKey(ch, key)
			if _, ok := active[k]; ok {
				logrus.Warnf("note double pressed: %d ch=%d at %d", key, ch, tick)
				continue
			}
			if t.Channel < 0 {
				t.Channel = int(ch)
			}
			active[k] = len(t.Notes)
			t.Notes = append(t.Notes, model.Note{Pitch: int(key), Start: tick, Velocity: int(vel)})
		case msg.GetNoteOn(&ch, &key, &vel), msg.GetNoteOff(&ch, &key, &vel):
			k := noteKey(ch, key)
			idx, ok := active[k]
			if !ok {
				logrus.Warnf("note off for unpressed note: %d ch=%d at %d", key, ch, tick)
				continue
			}
			delete(active, k)
			t.Notes[idx].Duration = tick - t.Notes[idx].Start
		case msg.GetProgramChange(&ch, &prog):
			t.Other = append(t.Other, model.ProgramEvent{Start: tick, Program: int(prog)})
		case msg.GetMetaTrackName(&name):
			t.Name = name
		case msg.GetMetaTempo(&bpm):
			song.Tempos = append(song.Tempos, model.TempoEvent{Start: tick, BPM: int(math.Round(bpm))})
		case msg.GetMetaTimeSig(&num, &denom, &cpt, &dsqpq):
			song.TimeSignatures = append(song.TimeSignatures, model.TimeSignatureEvent{Start: tick, Num: int(num), Denom: int(denom)})
		default:
			importOther(song, t, tick, msg)
		}
	}
	for k, idx := range active {
		logrus.Warnf("missing note off for note: %d ch=%d", k&0xFF, k>>8)
		t.Notes[idx].Duration = 0
	}

	notes := t.Notes[:0]
	for _, n := range t.Notes {
		if n.Duration > 0 {
			notes = append(notes, n)
		}
	}
	t.Notes = notes
	if t.Channel < 0 {
		t.Channel = 0
	}
	return t
}

func importOther(song *model.Song, t *model.Track, tick int, msg smf.Message) {
	typ, data, ok := metaData(msg)
	if !ok {
		if len(msg) > 0 && msg[0] < 0xF0 {
			t.Other = append(t.Other, model.OtherEvent{Start: tick, Payload: append([]byte(nil), msg...)})
		}
		return
	}
	switch typ {
	case metaEndOfTrack:
	case metaKeySig:
		if len(data) != 2 {
			logrus.Warnf("malformed key signature at %d", tick)
			return
		}
		key, err := notation.KeyFromSharps(int(int8(data[0])), data[1] == 1)
		if err != nil {
			logrus.Warnf("ignoring key signature at %d: %v", tick, err)
			return
		}
		song.KeySignatures = append(song.KeySignatures, model.KeySignatureEvent{Start: tick, Key: key})
	case metaCopyright:
		song.Metadata.Copyright = string(data)
	default:
		song.Other = append(song.Other, model.OtherEvent{Start: tick, Payload: append([]byte(nil), msg...)})
	}
}
