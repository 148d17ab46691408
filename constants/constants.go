package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("NOTEGRID_OUT_DIR")
	if path != "" {
		return path
	}
	return "./out"
}

func GetMediaDir() string {
	path := os.Getenv("MEDIA_PATH")
	if path != "" {
		return path
	}

	panic("MEDIA_PATH environment variable is not set!")
}

func GetConfigPath() string {
	return os.Getenv("NOTEGRID_CONFIG")
}

func GetMetadataEndpoint() string {
	return os.Getenv("NOTEGRID_METADATA_ENDPOINT")
}

const (
	C0MidiNum = 12
	C4MidiNum = 60

	// Notes at or below this are treated as control signals by some sequencers.
	ControlNoteMax = 8

	// 128th notes are the finest grid the quantizer will look for.
	FastestNoteValue = 128

	SnapshotIndexFile = "allSnapshots.dat"
)

var Pitches = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Keys are indexed by the pitch class of the major key; minor keys are the
// relative minors of the major key at the same index.
var Keys = map[string][12]string{
	"major": {"C", "C#", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"},
	"minor": {"Am", "Bbm", "Bm", "Cm", "C#m", "Dm", "Ebm", "Em", "Fm", "F#m", "Gm", "G#m"},
}
