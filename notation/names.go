// Package notation converts between ticks, note values and pitch names.
package notation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jsphweid/notegrid/constants"
	"github.com/jsphweid/notegrid/model"
)

const Unknown = "<unknown>"

var noteNameFormat = regexp.MustCompile(`^([A-G])(#|##|b|bb)?([0-7])$`)

// DurationToNoteName returns a readable note value such as "eighth triplet" for
// a duration in ticks. Works for plain, dotted and triplet values down to
// sixty-fourth notes.
func DurationToNoteName(duration, ppq int, locale string) string {
	names, ok := constants.Durations[strings.ToUpper(locale)]
	if !ok || ppq <= 0 {
		return Unknown
	}
	if name, ok := names[limitDenominator(duration, ppq, 64)]; ok {
		return name
	}
	return Unknown
}

// PitchToNoteName returns e.g. "C#4" for 61. C4 is MIDI 60.
func PitchToNoteName(pitch, octaveOffset int) (string, error) {
	if pitch < model.MinPitch || pitch > model.MaxPitch {
		return "", model.NewValueError("illegal note number %d", pitch)
	}
	octave := pitch/12 - 1 + octaveOffset
	return fmt.Sprintf("%s%d", constants.Pitches[pitch%12], octave), nil
}

// NoteNameToPitch parses names like "C4", "F#3", "Ebb5" or "C##2".
func NoteNameToPitch(name string, octaveOffset int) (int, error) {
	m := noteNameFormat.FindStringSubmatch(name)
	if m == nil {
		return 0, model.NewValueError("illegal note name: %q", name)
	}
	octave, _ := strconv.Atoi(m[3])
	octave -= octaveOffset

	var pc int
	for i, p := range constants.Pitches {
		if p == m[1] {
			pc = i
			break
		}
	}
	pitch := pc + 12*(octave+1)
	pitch += strings.Count(m[2], "#")
	pitch -= strings.Count(m[2], "b")
	if pitch < model.MinPitch || pitch > model.MaxPitch {
		return 0, model.NewValueError("note name %q is out of range", name)
	}
	return pitch, nil
}

// FramesPerQuarter is the number of video frames in a quarter note at bpm on
// the given machine.
func FramesPerQuarter(bpm int, arch string) (float64, error) {
	a, ok := constants.Arch[arch]
	if !ok {
		return 0, model.NewValueError("unknown architecture %q", arch)
	}
	if bpm <= 0 {
		return 0, model.NewValueError("illegal bpm %d", bpm)
	}
	return a.FrameRate() * 60 / float64(bpm), nil
}
