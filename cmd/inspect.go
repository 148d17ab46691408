package cmd

import (
	"fmt"

	"github.com/jsphweid/notegrid/notation"
	"github.com/jsphweid/notegrid/polyphony"
	"github.com/jsphweid/notegrid/quantize"
	"github.com/jsphweid/notegrid/timeline"
	"github.com/spf13/cobra"
)

var inspectNotes bool

func init() {
	inspectCmd.Flags().BoolVarP(&inspectNotes, "notes", "n", false, "print every note")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Inspects a MIDI file",
	Long:  `Prints the tracks of a MIDI file, its quantization and polyphony state and the measure count.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	song, err := loadSong(path)
	if err != nil {
		return err
	}
	md := song.Metadata
	fmt.Printf("name: %v\n", md.Name)
	if md.Composer != "" {
		fmt.Printf("composer: %v\n", md.Composer)
	}
	fmt.Printf("ppq: %v\n", md.PPQ)
	fmt.Printf("bpm: %v\n", md.BPM)
	fmt.Printf("time signature: %d/%d\n", md.TimeSignature.Num, md.TimeSignature.Denom)
	fmt.Printf("key signature: %v\n", md.KeySignature.Key)
	fmt.Printf("notes: %v\n", song.NoteCount())
	fmt.Printf("quantized: %v\n", quantize.IsQuantized(song))
	fmt.Printf("polyphonic: %v\n", polyphony.IsPolyphonic(song))

	noteGrid, durationGrid, err := quantize.Estimate(song)
	if err != nil {
		return err
	}
	ppq := song.PPQ()
	fmt.Printf("estimated quantization: %d (%s), %d (%s)\n",
		noteGrid, notation.DurationToNoteName(noteGrid, ppq, cfg.Locale),
		durationGrid, notation.DurationToNoteName(durationGrid, ppq, cfg.Locale))

	starts, err := timeline.MeasureStarts(song)
	if err != nil {
		return err
	}
	fmt.Printf("measures: %v\n", len(starts))

	for _, t := range song.Tracks {
		n, d := quantize.EstimateTrack(t, song.PPQ())
		fmt.Printf("track %q channel %d: %d notes, grids %d/%d, polyphonic %v\n",
			t.Name, t.Channel, len(t.Notes), n, d, polyphony.IsTrackPolyphonic(t))
		if inspectNotes {
			for _, note := range t.Notes {
				beat, err := timeline.GetMeasureBeat(song, note.Start)
				if err != nil {
					return err
				}
				name, _ := notation.PitchToNoteName(note.Pitch, 0)
				fmt.Printf("  %3d.%d %-4s %v\n", beat.Measure, beat.Beat, name, note)
			}
		}
	}
	return nil
}
