package cmd

import (
	"path/filepath"
	"strconv"

	"github.com/jsphweid/notegrid/config"
	"github.com/jsphweid/notegrid/db"
	"github.com/jsphweid/notegrid/measure"
	"github.com/jsphweid/notegrid/midi"
	"github.com/jsphweid/notegrid/model"
	"github.com/jsphweid/notegrid/polyphony"
	"github.com/jsphweid/notegrid/quantize"
	"github.com/jsphweid/notegrid/timeline"
	"github.com/jsphweid/notegrid/transform"
	"github.com/sirupsen/logrus"
)

// loadSong imports a MIDI file and, when a metadata table is configured,
// fills in its title and composer.
func loadSong(path string) (*model.Song, error) {
	song, err := midi.ReadSong(path)
	if err != nil {
		return nil, err
	}
	if song.Metadata.Name == "" {
		song.Metadata.Name = filepath.Base(path)
	}
	if cfg.Metadata.Table == "" {
		return song, nil
	}
	mds, err := lookupMetadata([]string{filepath.Base(path)})
	if err != nil {
		logrus.Warnf("no metadata for %s: %v", path, err)
		return song, nil
	}
	if md, ok := mds[filepath.Base(path)]; ok {
		db.ApplyMetadata(song, md)
	}
	return song, nil
}

func lookupMetadata(filenames []string) (map[string]model.SongMetadata, error) {
	client, err := db.NewClient(cfg.Metadata.Endpoint, cfg.Metadata.Region)
	if err != nil {
		return nil, err
	}
	return db.GetSongMetadatas(client, cfg.Metadata.Table, filenames)
}

// quantizeSong snaps the song to the grid the setting asks for.
func quantizeSong(song *model.Song, setting string) error {
	mode, arg, err := config.ParseQuantize(setting)
	if err != nil {
		return err
	}
	switch mode {
	case config.QuantizeAuto:
		return quantize.Song(song, 0, 0)
	case config.QuantizeNote:
		return quantize.FromNoteName(song, arg, false, false)
	case config.QuantizeTicks:
		ticks, _ := strconv.Atoi(arg)
		return quantize.Song(song, ticks, ticks)
	}
	return nil
}

// prepare runs the configured cleanup on a freshly imported song.
func prepare(song *model.Song, c *config.Config) error {
	if c.ControlNoteMax >= 0 {
		if n := transform.RemoveControlNotes(song, c.ControlNoteMax); n > 0 {
			logrus.Debugf("removed %d control notes", n)
		}
	}
	if err := quantizeSong(song, c.Quantize); err != nil {
		return err
	}
	logrus.Debugf("quantized to %d, %d ticks", song.NoteGrid, song.DurationGrid)
	if c.RemovePolyphony {
		deleted, truncated := polyphony.Remove(song)
		logrus.Debugf("polyphony: %d deleted, %d truncated", deleted, truncated)
	}
	_, err := timeline.CountMeasures(song)
	return err
}

// analyze builds the measures of a prepared song and their wire form. It
// doesn't modify the song.
func analyze(song *model.Song) ([][]model.Measure, model.AnalyzeResponse, error) {
	res := model.AnalyzeResponse{
		Name:         song.Metadata.Name,
		PPQ:          song.PPQ(),
		NoteGrid:     song.NoteGrid,
		DurationGrid: song.DurationGrid,
		Quantized:    quantize.IsQuantized(song),
		Polyphonic:   polyphony.IsPolyphonic(song),
		Tracks:       []model.TrackMeasures{},
	}
	measures, err := measure.Get(song)
	if err != nil {
		return nil, res, err
	}
	res.Stats = song.Stats
	for i, t := range song.Tracks {
		tm := model.TrackMeasures{Name: t.Name, Channel: t.Channel, Measures: []model.MeasureJSON{}}
		for _, m := range measures[i] {
			tm.Measures = append(tm.Measures, model.ToMeasureJSON(m))
		}
		res.Tracks = append(res.Tracks, tm)
	}
	return measures, res, nil
}
