// Package midi converts between Standard MIDI Files and songs.
package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/notegrid/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "error reading midi file")
	}
	res, err := ReadMidi(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filepath)
	}
	return res, nil
}

func ReadMidi(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if p := recover(); p != nil {
			s, e = nil, errors.New(fmt.Sprint(p))
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing midi file")
	}
	return res, nil
}

// ReadSong reads a MIDI file and imports it.
func ReadSong(filepath string) (*model.Song, error) {
	s, err := ReadMidiFile(filepath)
	if err != nil {
		return nil, err
	}
	song, err := ToSong(s)
	if err != nil {
		return nil, errors.Wrapf(err, "importing %s", filepath)
	}
	return song, nil
}

func ReadSongFrom(r io.Reader) (*model.Song, error) {
	s, err := ReadMidi(r)
	if err != nil {
		return nil, err
	}
	return ToSong(s)
}
