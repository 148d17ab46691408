package quantize

import (
	"strings"

	"github.com/jsphweid/notegrid/constants"
	"github.com/jsphweid/notegrid/model"
)

func noteStarts(tracks ...*model.Track) []int {
	var res []int
	for _, t := range tracks {
		for _, n := range t.Notes {
			res = append(res, n.Start)
		}
	}
	return res
}

func noteDurations(tracks ...*model.Track) []int {
	var res []int
	for _, t := range tracks {
		for _, n := range t.Notes {
			res = append(res, n.Duration)
		}
	}
	return res
}

// Estimate finds note-start and duration grids from the notes of every track.
// It doesn't modify the song. A song without notes gets the quarter-note grid.
func Estimate(song *model.Song) (noteGrid, durationGrid int, err error) {
	ppq := song.PPQ()
	starts := noteStarts(song.Tracks...)
	if len(starts) == 0 {
		return ppq, ppq, nil
	}
	noteGrid = FindStartQuantization(starts, ppq)
	durationGrid, err = FindDurationQuantization(noteDurations(song.Tracks...), noteGrid)
	if err != nil {
		return 0, 0, err
	}
	return noteGrid, durationGrid, nil
}

// EstimateTrack estimates grids from a single track at the given ppq.
// Durations are searched the same way as starts since performed note endings
// rarely line up; when that gives something finer than the start grid, half
// the start grid is used.
func EstimateTrack(t *model.Track, ppq int) (noteGrid, durationGrid int) {
	noteGrid = FindStartQuantization(noteStarts(t), ppq)
	durationGrid = FindStartQuantization(noteDurations(t), ppq)
	if durationGrid < noteGrid {
		durationGrid = noteGrid / 2
	}
	if durationGrid < 1 {
		durationGrid = 1
	}
	return noteGrid, durationGrid
}

// Track snaps note starts to noteGrid and durations to durationGrid, and
// retimes the track's other events on noteGrid. A duration never snaps below
// one durationGrid unit. It returns the per-note start and duration shifts.
func Track(t *model.Track, noteGrid, durationGrid int) (startDeltas, durationDeltas []int) {
	t.NoteGrid = noteGrid
	t.DurationGrid = durationGrid

	for i := range t.Notes {
		n := &t.Notes[i]
		startBefore, durationBefore := n.Start, n.Duration
		n.Start = ToGrid(n.Start, noteGrid)
		n.Duration = ToGrid(n.Duration, durationGrid)
		if n.Duration < durationGrid {
			n.Duration = durationGrid
		}
		startDeltas = append(startDeltas, n.Start-startBefore)
		durationDeltas = append(durationDeltas, n.Duration-durationBefore)
	}
	t.SortNotes()

	for i, e := range t.Other {
		t.Other[i] = model.Retime(e, ToGrid(e.StartTick(), noteGrid))
	}
	return startDeltas, durationDeltas
}

// Song quantizes every track and the song-wide events. A grid of 0 is
// discovered with Estimate; pass 1 to leave a dimension untouched.
func Song(song *model.Song, noteGrid, durationGrid int) error {
	if noteGrid < 0 || durationGrid < 0 {
		return model.NewQuantizationError("illegal grid (%d, %d)", noteGrid, durationGrid)
	}
	if noteGrid == 0 || durationGrid == 0 {
		estNote, estDuration, err := Estimate(song)
		if err != nil {
			return err
		}
		if noteGrid == 0 {
			noteGrid = estNote
		}
		if durationGrid == 0 {
			durationGrid = estDuration
		}
	}

	song.NoteGrid = noteGrid
	song.DurationGrid = durationGrid
	song.StartDeltas = make(map[int]int)
	song.DurationDeltas = make(map[int]int)
	for _, t := range song.Tracks {
		startDeltas, durationDeltas := Track(t, noteGrid, durationGrid)
		for _, d := range startDeltas {
			song.StartDeltas[d]++
		}
		for _, d := range durationDeltas {
			song.DurationDeltas[d]++
		}
	}

	for i, e := range song.TimeSignatures {
		song.TimeSignatures[i].Start = ToGrid(e.Start, noteGrid)
	}
	for i, e := range song.KeySignatures {
		song.KeySignatures[i].Start = ToGrid(e.Start, noteGrid)
	}
	for i, e := range song.Tempos {
		song.Tempos[i].Start = ToGrid(e.Start, noteGrid)
	}
	for i, e := range song.Other {
		song.Other[i] = model.Retime(e, ToGrid(e.StartTick(), noteGrid))
	}
	return nil
}

// FromNoteName quantizes both starts and durations to a note value given as a
// constants.DurationStr key, e.g. "16" or "8-3". A "." in the name allows
// dotted values (halves the grid) and "-3" allows triplets (thirds it).
func FromNoteName(song *model.Song, name string, dottedAllowed, tripletsAllowed bool) error {
	if strings.Contains(name, ".") {
		dottedAllowed = true
		name = strings.ReplaceAll(name, ".", "")
	}
	if strings.Contains(name, "-3") {
		tripletsAllowed = true
		name = strings.ReplaceAll(name, "-3", "")
	}
	r, ok := constants.DurationStr[name]
	if !ok {
		return model.NewValueError("unknown note value %q", name)
	}
	grid := song.PPQ() * r.Num / r.Den
	if dottedAllowed {
		grid /= 2
	}
	if tripletsAllowed {
		grid /= 3
	}
	if grid < 1 {
		return model.NewQuantizationError("note value %q is shorter than a tick at ppq %d", name, song.PPQ())
	}
	return Song(song, grid, grid)
}

func IsTrackQuantized(t *model.Track) bool {
	if t.NoteGrid <= 0 || t.DurationGrid <= 0 {
		return false
	}
	for _, n := range t.Notes {
		if n.Start%t.NoteGrid != 0 || n.Duration%t.DurationGrid != 0 {
			return false
		}
	}
	return true
}

// IsTrackAligned reports whether every note starts on the track's note grid
// and lasts at least a tick. Polyphony reduction keeps a quantized track
// aligned even when the cut durations leave the duration grid.
func IsTrackAligned(t *model.Track) bool {
	if t.NoteGrid <= 0 {
		return false
	}
	for _, n := range t.Notes {
		if n.Start%t.NoteGrid != 0 || n.Duration <= 0 {
			return false
		}
	}
	return true
}

// IsQuantized reports whether every track is quantized to its own grids.
func IsQuantized(song *model.Song) bool {
	for _, t := range song.Tracks {
		if !IsTrackQuantized(t) {
			return false
		}
	}
	return true
}
