package model

import (
	"fmt"
	"sort"
	"strings"
)

// Track is one voice of a song: time-ascending notes plus the non-note events
// (program changes, controllers) that belong to it.
//
// ASSUMPTION: a track holds notes for a single instrument (MIDI channel).
type Track struct {
	Name    string
	Channel int
	Notes   []Note
	Other   []Event

	NoteGrid     int
	DurationGrid int

	song *Song
}

// Song returns the owning song. Only read inherited settings from it.
func (t *Track) Song() *Song {
	return t.song
}

// SortNotes orders notes by start and, for equal starts, highest pitch first.
func (t *Track) SortNotes() {
	sort.SliceStable(t.Notes, func(i, j int) bool {
		if t.Notes[i].Start != t.Notes[j].Start {
			return t.Notes[i].Start < t.Notes[j].Start
		}
		return t.Notes[i].Pitch > t.Notes[j].Pitch
	})
}

func (t *Track) SortOther() {
	sort.SliceStable(t.Other, func(i, j int) bool {
		return t.Other[i].StartTick() < t.Other[j].StartTick()
	})
}

func (t *Track) EndTime() int {
	var end int
	for _, n := range t.Notes {
		if n.End() > end {
			end = n.End()
		}
	}
	return end
}

func (t *Track) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Track: %s (channel %d)\n", t.Name, t.Channel)
	for i, n := range t.Notes {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(n.String())
	}
	return sb.String()
}
