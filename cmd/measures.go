package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jsphweid/notegrid/model"
	"github.com/jsphweid/notegrid/notation"
	"github.com/jsphweid/notegrid/snapshot"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	measuresJSON     bool
	measuresSnapshot bool
	measuresQuantize string
)

func init() {
	f := measuresCmd.Flags()
	f.BoolVar(&measuresJSON, "json", false, "print JSON")
	f.BoolVar(&measuresSnapshot, "snapshot", false, "write a snapshot to the out dir")
	f.StringVar(&measuresQuantize, "quantize", "", "override the configured quantize setting")
	rootCmd.AddCommand(measuresCmd)
}

var measuresCmd = &cobra.Command{
	Use:   "measures FILE",
	Short: "Prints the measures of every track",
	Long: `Quantizes a MIDI file, removes polyphony and prints every track split into
measures, with rests filling the gaps and notes tied across barlines.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printMeasures(args[0])
	},
}

func describe(e model.Event, ppq int) string {
	switch v := e.(type) {
	case model.Note:
		name, _ := notation.PitchToNoteName(v.Pitch, 0)
		tie := ""
		if v.Tied {
			tie = "~"
		}
		return fmt.Sprintf("%s %s%s", name, notation.DurationToNoteName(v.Duration, ppq, cfg.Locale), tie)
	case model.Rest:
		return "rest " + notation.DurationToNoteName(v.Duration, ppq, cfg.Locale)
	case model.TimeSignatureEvent:
		return fmt.Sprintf("time %d/%d", v.Num, v.Denom)
	case model.KeySignatureEvent:
		return "key " + v.Key
	case model.TempoEvent:
		return fmt.Sprintf("tempo %d", v.BPM)
	case model.ProgramEvent:
		return fmt.Sprintf("program %d", v.Program)
	}
	return e.Kind().String()
}

func printMeasures(path string) error {
	song, err := loadSong(path)
	if err != nil {
		return err
	}
	c := *cfg
	if measuresQuantize != "" {
		c.Quantize = measuresQuantize
	}
	c.RemovePolyphony = true
	if err := prepare(song, &c); err != nil {
		return err
	}
	measures, res, err := analyze(song)
	if err != nil {
		return err
	}

	if measuresSnapshot {
		o, err := snapshot.Write(cfg.OutDir, snapshot.New(song, measures))
		if err != nil {
			return err
		}
		overviews, err := snapshot.ReadIndex(cfg.OutDir)
		if err != nil {
			logrus.Debugf("starting a new snapshot index: %v", err)
		}
		if err := snapshot.WriteIndex(cfg.OutDir, append(overviews, o)); err != nil {
			return err
		}
		logrus.Infof("wrote snapshot %s", o.Filename)
	}

	if measuresJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(res), "could not encode measures")
	}

	ppq := song.PPQ()
	fmt.Printf("%s: grids %d/%d\n", res.Name, res.NoteGrid, res.DurationGrid)
	for i, t := range song.Tracks {
		fmt.Printf("track %q\n", t.Name)
		for _, m := range measures[i] {
			var parts []string
			for _, e := range m.Events {
				if e.Kind() != model.KindMeasureMarker {
					parts = append(parts, describe(e, ppq))
				}
			}
			fmt.Printf("%4d | %s\n", m.Number, strings.Join(parts, ", "))
		}
	}
	return nil
}
