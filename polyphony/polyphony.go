// Package polyphony reduces tracks to a single sounding note at a time.
package polyphony

import "github.com/jsphweid/notegrid/model"

// RemoveTrack makes a track monophonic. Of notes struck together only the
// highest pitch is kept; a note still sounding when the next one starts is cut
// short at that start. It returns how many notes were deleted and how many were
// truncated.
func RemoveTrack(t *model.Track) (deleted, truncated int) {
	if len(t.Notes) == 0 {
		return 0, 0
	}
	// highest pitch first within equal starts, so it is the one kept
	t.SortNotes()

	res := make([]model.Note, 0, len(t.Notes))
	current := t.Notes[0]
	for _, n := range t.Notes[1:] {
		if n.Start == current.Start {
			deleted++
			continue
		}
		if n.Start < current.End() {
			current.Duration = n.Start - current.Start
			truncated++
		}
		if current.Duration <= 0 {
			deleted++
		} else {
			res = append(res, current)
		}
		current = n
	}
	if current.Duration <= 0 {
		deleted++
	} else {
		res = append(res, current)
	}

	t.Notes = res
	t.SortNotes()
	return deleted, truncated
}

// Remove makes every track of the song monophonic and records the totals in the
// song's stats.
func Remove(song *model.Song) (deleted, truncated int) {
	for _, t := range song.Tracks {
		d, tr := RemoveTrack(t)
		deleted += d
		truncated += tr
	}
	song.SetStat("Deleted", deleted)
	song.SetStat("Truncated", truncated)
	return deleted, truncated
}

func IsTrackPolyphonic(t *model.Track) bool {
	for i := 1; i < len(t.Notes); i++ {
		a, b := t.Notes[i-1], t.Notes[i]
		if b.Start-a.Start < a.Duration {
			return true
		}
	}
	return false
}

// IsPolyphonic is true if any track has overlapping notes.
func IsPolyphonic(song *model.Song) bool {
	for _, t := range song.Tracks {
		if IsTrackPolyphonic(t) {
			return true
		}
	}
	return false
}

// RequireMonophonic fails with a PolyphonyError naming the first overlap.
func RequireMonophonic(t *model.Track) error {
	for i := 1; i < len(t.Notes); i++ {
		a, b := t.Notes[i-1], t.Notes[i]
		if b.Start < a.End() {
			return model.NewPolyphonyError("track %q: note at %d overlaps note at %d", t.Name, b.Start, a.Start)
		}
	}
	return nil
}
