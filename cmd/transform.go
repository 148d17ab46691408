package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/notegrid/constants"
	"github.com/jsphweid/notegrid/midi"
	"github.com/jsphweid/notegrid/model"
	"github.com/jsphweid/notegrid/polyphony"
	"github.com/jsphweid/notegrid/quantize"
	"github.com/jsphweid/notegrid/timeline"
	"github.com/jsphweid/notegrid/transform"
	"github.com/jsphweid/notegrid/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type transformOptions struct {
	removeControlNotes bool
	scaleTicks         float64
	moveTicks          int
	ppq                int
	quantizeAuto       bool
	quantizeNote       string
	quantizeTicks      int
	removePolyphony    bool
	bpm                int
	timeSignature      string
	keySignature       string
	modulate           string
	transpose          int
}

var transformOpts transformOptions

func init() {
	f := transformCmd.Flags()
	f.BoolVarP(&transformOpts.removeControlNotes, "remove-control-notes", "x", false, "remove control notes")
	f.Float64VarP(&transformOpts.scaleTicks, "scale-ticks", "s", 0, "scale ticks")
	f.IntVarP(&transformOpts.moveTicks, "move-ticks", "m", 0, "move ticks earlier")
	f.IntVarP(&transformOpts.ppq, "ppq", "p", 0, "set ppq")
	f.BoolVarP(&transformOpts.quantizeAuto, "quantize-auto", "a", false, "auto-quantize")
	f.StringVarP(&transformOpts.quantizeNote, "quantize-note", "q", "", "quantize to a note value, e.g. 16 or 8-3")
	f.IntVarP(&transformOpts.quantizeTicks, "quantize-ticks", "c", 0, "quantize to ticks")
	f.BoolVarP(&transformOpts.removePolyphony, "remove-polyphony", "r", false, "remove polyphony")
	f.IntVarP(&transformOpts.bpm, "bpm", "b", 0, "set bpm")
	f.StringVarP(&transformOpts.timeSignature, "time-signature", "t", "", "set time signature, e.g. 3/4")
	f.StringVarP(&transformOpts.keySignature, "key-signature", "k", "", "set key signature, e.g. D, F#m")
	f.StringVar(&transformOpts.modulate, "modulate", "", "metric modulation num/denom, e.g. 3/2")
	f.IntVar(&transformOpts.transpose, "transpose", 0, "transpose by semitones")
	transformCmd.MarkFlagsMutuallyExclusive("quantize-auto", "quantize-note", "quantize-ticks")

	rootCmd.AddCommand(transformCmd)
}

var transformCmd = &cobra.Command{
	Use:   "transform IN OUT",
	Short: "Rewrites a MIDI file",
	Long:  `Imports a MIDI file, applies the selected transformations and exports it again.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !util.IsMidiPath(args[0]) {
			return errors.Errorf("expecting an input file that ends in .mid, got %s", args[0])
		}
		return runTransform(args[0], args[1], transformOpts)
	},
}

func parseFraction(s string) (int, int, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, 0, model.NewValueError("expected num/denom, got %q", s)
	}
	num, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	denom, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, model.NewValueError("expected num/denom, got %q", s)
	}
	return num, denom, nil
}

func notWord(b bool) string {
	if b {
		return ""
	}
	return "not "
}

func printState(prefix string, song *model.Song) {
	fmt.Printf("%s is %squantized and %spolyphonic\n", prefix,
		notWord(quantize.IsQuantized(song)), notWord(polyphony.IsPolyphonic(song)))
}

func runTransform(in, out string, o transformOptions) error {
	song, err := midi.ReadSong(in)
	if err != nil {
		return err
	}
	fmt.Printf("%d notes\n", song.NoteCount())
	fmt.Printf("PPQ = %d\n", song.PPQ())
	printState("Input midi", song)

	if o.removeControlNotes {
		logrus.Info("Removing control notes...")
		transform.RemoveControlNotes(song, constants.ControlNoteMax)
	}
	if o.scaleTicks != 0 {
		logrus.Infof("Scaling by %v", o.scaleTicks)
		if err := transform.ScaleTicks(song, o.scaleTicks); err != nil {
			return err
		}
	}
	if o.moveTicks != 0 {
		logrus.Infof("Moving by %d", o.moveTicks)
		if err := transform.MoveTicks(song, -o.moveTicks); err != nil {
			return err
		}
	}
	if o.ppq > 0 {
		logrus.Infof("Setting ppq to %d", o.ppq)
		song.Metadata.PPQ = o.ppq
	}

	switch {
	case o.quantizeNote != "":
		logrus.Infof("Quantizing to note value %s", o.quantizeNote)
		err = quantize.FromNoteName(song, o.quantizeNote, false, false)
	case o.quantizeTicks > 0:
		logrus.Infof("Quantizing to %d ticks", o.quantizeTicks)
		err = quantize.Song(song, o.quantizeTicks, o.quantizeTicks)
	case o.quantizeAuto:
		var noteGrid, durationGrid int
		if noteGrid, durationGrid, err = quantize.Estimate(song); err == nil {
			logrus.Infof("Quantizing to estimated quantization: %d, %d ticks", noteGrid, durationGrid)
			err = quantize.Song(song, noteGrid, durationGrid)
		}
	}
	if err != nil {
		return err
	}

	if o.removePolyphony {
		logrus.Info("Eliminating polyphony...")
		polyphony.Remove(song)
	}
	if o.modulate != "" {
		num, denom, err := parseFraction(o.modulate)
		if err != nil {
			return err
		}
		logrus.Infof("Modulating by %d/%d", num, denom)
		if err := transform.Modulate(song, num, denom); err != nil {
			return err
		}
	}
	if o.transpose != 0 {
		logrus.Infof("Transposing by %d", o.transpose)
		if err := transform.Transpose(song, o.transpose); err != nil {
			return err
		}
	}
	if o.bpm > 0 {
		logrus.Infof("Setting bpm to %d", o.bpm)
		if err := transform.SetBPM(song, o.bpm); err != nil {
			return err
		}
	}
	if o.timeSignature != "" {
		num, denom, err := parseFraction(o.timeSignature)
		if err != nil {
			return err
		}
		logrus.Infof("Setting time signature to %d/%d", num, denom)
		if err := transform.SetTimeSignature(song, num, denom); err != nil {
			return err
		}
	}
	if o.keySignature != "" {
		logrus.Infof("Setting key signature to %s", o.keySignature)
		if err := transform.SetKeySignature(song, o.keySignature); err != nil {
			return err
		}
	}

	printState("Output song", song)
	if _, err := timeline.CountMeasures(song); err != nil {
		return err
	}
	for _, name := range util.GetKeys(song.Stats) {
		fmt.Printf("%24s %d\n", name, song.Stats[name])
	}

	logrus.Infof("Exporting to %s", out)
	return midi.WriteMidiFile(song, out)
}
