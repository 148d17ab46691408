// Package snapshot stores measure-populated songs on disk. A snapshot file is
// a little-endian uint32 header size, the gob-encoded overview and then the
// gob-encoded snapshot, so listings only need to decode the header.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/notegrid/constants"
	"github.com/jsphweid/notegrid/model"
	"github.com/jsphweid/notegrid/util"
	"github.com/pkg/errors"
)

func init() {
	gob.Register(model.Note{})
	gob.Register(model.Rest{})
	gob.Register(model.TimeSignatureEvent{})
	gob.Register(model.KeySignatureEvent{})
	gob.Register(model.TempoEvent{})
	gob.Register(model.ProgramEvent{})
	gob.Register(model.OtherEvent{})
	gob.Register(model.MeasureMarker{})
}

// New pairs the song's tracks with their measures under a fresh ID.
func New(song *model.Song, measures [][]model.Measure) model.Snapshot {
	s := model.Snapshot{
		ID:           uuid.New().String(),
		Name:         song.Metadata.Name,
		PPQ:          song.PPQ(),
		NoteGrid:     song.NoteGrid,
		DurationGrid: song.DurationGrid,
	}
	for i, t := range song.Tracks {
		st := model.SnapshotTrack{Name: t.Name, Channel: t.Channel}
		if i < len(measures) {
			st.Measures = measures[i]
		}
		s.Tracks = append(s.Tracks, st)
	}
	return s
}

func overview(s model.Snapshot) model.SnapshotOverview {
	o := model.SnapshotOverview{
		ID:       s.ID,
		Name:     s.Name,
		Filename: s.ID + ".dat",
		Tracks:   len(s.Tracks),
	}
	if len(s.Tracks) > 0 {
		o.Measures = len(s.Tracks[0].Measures)
	}
	return o
}

func encode(data any) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write stores the snapshot in dir as <id>.dat.
func Write(dir string, s model.Snapshot) (model.SnapshotOverview, error) {
	o := overview(s)
	header, err := encode(o)
	if err != nil {
		return o, errors.Wrap(err, "error encoding snapshot header")
	}
	body, err := encode(s)
	if err != nil {
		return o, errors.Wrap(err, "error encoding snapshot")
	}

	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(header))); err != nil {
		return o, errors.Wrap(err, "error encoding snapshot header size")
	}
	buf.Write(header)
	buf.Write(body)

	if err := util.EnsureDir(dir); err != nil {
		return o, err
	}
	filename := filepath.Join(dir, o.Filename)
	return o, errors.Wrapf(os.WriteFile(filename, buf.Bytes(), 0666), "write failed for snapshot %v", filename)
}

func readHeader(path string) (model.SnapshotOverview, []byte, error) {
	var o model.SnapshotOverview
	dat, err := os.ReadFile(path)
	if err != nil {
		return o, nil, errors.Wrap(err, "could not read snapshot")
	}
	if len(dat) < 4 {
		return o, nil, errors.Errorf("snapshot %v is truncated", path)
	}
	size := binary.LittleEndian.Uint32(dat[:4])
	if uint64(size) > uint64(len(dat)-4) {
		return o, nil, errors.Errorf("snapshot %v has a bad header size %d", path, size)
	}
	if err := gob.NewDecoder(bytes.NewReader(dat[4 : 4+size])).Decode(&o); err != nil {
		return o, nil, errors.Wrapf(err, "could not decode snapshot header %v", path)
	}
	return o, dat[4+size:], nil
}

func ReadOverview(path string) (model.SnapshotOverview, error) {
	o, _, err := readHeader(path)
	return o, err
}

func Read(path string) (model.Snapshot, error) {
	var s model.Snapshot
	_, body, err := readHeader(path)
	if err != nil {
		return s, err
	}
	if err := gob.NewDecoder(bytes.NewReader(body)).Decode(&s); err != nil {
		return s, errors.Wrapf(err, "could not decode snapshot %v", path)
	}
	return s, nil
}

// WriteIndex stores the overviews of all snapshots in dir.
func WriteIndex(dir string, overviews []model.SnapshotOverview) error {
	if err := util.EnsureDir(dir); err != nil {
		return err
	}
	return util.CreateBinary(filepath.Join(dir, constants.SnapshotIndexFile), overviews)
}

func ReadIndex(dir string) ([]model.SnapshotOverview, error) {
	return util.ReadBinary[[]model.SnapshotOverview](filepath.Join(dir, constants.SnapshotIndexFile))
}
