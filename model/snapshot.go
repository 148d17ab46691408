package model

// SnapshotOverview is the header of a snapshot file and the entry kept in the
// snapshot index.
type SnapshotOverview struct {
	ID       string
	Name     string
	Filename string
	Tracks   int
	Measures int
}

type SnapshotTrack struct {
	Name     string
	Channel  int
	Measures []Measure
}

// Snapshot is a measure-populated song as handed to exporters.
type Snapshot struct {
	ID           string
	Name         string
	PPQ          int
	NoteGrid     int
	DurationGrid int
	Tracks       []SnapshotTrack
}

type FileNumToMidiPath = map[uint32]string
