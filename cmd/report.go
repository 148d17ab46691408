package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/jsphweid/notegrid/constants"
	"github.com/jsphweid/notegrid/file"
	"github.com/jsphweid/notegrid/midi"
	"github.com/jsphweid/notegrid/model"
	"github.com/jsphweid/notegrid/polyphony"
	"github.com/jsphweid/notegrid/quantize"
	"github.com/jsphweid/notegrid/timeline"
	"github.com/jsphweid/notegrid/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [DIR] [max]",
	Short: "Creates a report",
	Long: `Walks a directory of MIDI files (default $MEDIA_PATH) and prints the
estimated quantization and polyphony of each.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var dir string
		if len(args) > 0 {
			dir = args[0]
		} else {
			dir = constants.GetMediaDir()
		}
		var maxNum int
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			maxNum = n
		}
		return report(dir, maxNum)
	},
}

type songReport struct {
	notes        int
	noteGrid     int
	durationGrid int
	measures     int
	quantized    bool
	polyphonic   bool
}

func analyzeFile(path string) (songReport, error) {
	var r songReport
	song, err := midi.ReadSong(path)
	if err != nil {
		return r, err
	}
	r.notes = song.NoteCount()
	r.quantized = quantize.IsQuantized(song)
	r.polyphonic = polyphony.IsPolyphonic(song)
	if r.noteGrid, r.durationGrid, err = quantize.Estimate(song); err != nil {
		return r, err
	}
	starts, err := timeline.MeasureStarts(song)
	if err != nil {
		return r, err
	}
	r.measures = len(starts)
	return r, nil
}

func report(dir string, maxNum int) error {
	paths, err := util.GatherAllMidiPaths(dir, maxNum)
	if err != nil {
		return err
	}
	fileNumMap := file.CreateFileNumMap(paths)

	titles := map[string]model.SongMetadata{}
	if cfg.Metadata.Table != "" {
		var names []string
		for _, p := range paths {
			names = append(names, filepath.Base(p))
		}
		if titles, err = lookupMetadata(names); err != nil {
			logrus.Warnf("metadata lookup failed: %v", err)
			titles = map[string]model.SongMetadata{}
		}
	}

	var failed, polyphonic, quantized int
	fmt.Printf("%5s %6s %6s %6s %8s %5s %5s  %s\n", "#", "notes", "grid", "dgrid", "measures", "quant", "poly", "file")
	for _, num := range util.GetKeys(fileNumMap) {
		path := fileNumMap[num]
		logrus.Debugf("Processing %v of %v files", num+1, len(fileNumMap))
		r, err := analyzeFile(path)
		if err != nil {
			logrus.Warnf("skipping %s: %v", path, err)
			failed++
			continue
		}
		if r.polyphonic {
			polyphonic++
		}
		if r.quantized {
			quantized++
		}
		name := filepath.Base(path)
		if md, ok := titles[name]; ok && md.Name != "" {
			name = fmt.Sprintf("%s (%s)", name, md.Name)
		}
		fmt.Printf("%5d %6d %6d %6d %8d %5v %5v  %s\n",
			num, r.notes, r.noteGrid, r.durationGrid, r.measures, r.quantized, r.polyphonic, name)
	}
	fmt.Printf("files: %v\n", len(paths))
	fmt.Printf("failed: %v\n", failed)
	fmt.Printf("quantized: %v\n", quantized)
	fmt.Printf("polyphonic: %v\n", polyphonic)
	return nil
}
