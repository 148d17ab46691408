package model

import "fmt"

type EventKind int

// Kinds are declared in measure priority order: when two events share a tick
// the one with the lower kind comes first.
const (
	KindMeasureMarker EventKind = iota
	KindTimeSignature
	KindKeySignature
	KindTempo
	KindProgram
	KindOther
	KindNote
	KindRest
)

func (k EventKind) String() string {
	switch k {
	case KindMeasureMarker:
		return "measure"
	case KindTimeSignature:
		return "time_signature"
	case KindKeySignature:
		return "key_signature"
	case KindTempo:
		return "tempo"
	case KindProgram:
		return "program"
	case KindOther:
		return "other"
	case KindNote:
		return "note"
	case KindRest:
		return "rest"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Priority orders events that start on the same tick. Notes and rests share the
// lowest priority.
func (k EventKind) Priority() int {
	switch k {
	case KindMeasureMarker:
		return 0
	case KindTimeSignature:
		return 1
	case KindKeySignature:
		return 2
	case KindTempo:
		return 3
	case KindProgram:
		return 4
	case KindOther:
		return 5
	case KindNote, KindRest:
		return 10
	}
	panic(fmt.Sprintf("unknown event kind %d", int(k)))
}

// Event is the closed set of things that can live on a timeline. Only the types
// in this package implement it.
type Event interface {
	Kind() EventKind
	StartTick() int
	isEvent()
}

type TimeSignatureEvent struct {
	Start int
	Num   int
	Denom int
}

type KeySignatureEvent struct {
	Start int
	Key   string
}

type TempoEvent struct {
	Start int
	BPM   int
}

type ProgramEvent struct {
	Start   int
	Program int
}

// OtherEvent carries a raw MIDI message the IR doesn't model (control change,
// pitch bend, ...).
type OtherEvent struct {
	Start   int
	Payload []byte
}

// MeasureMarker is synthesized by the measure populator and never imported.
type MeasureMarker struct {
	Start   int
	Measure int
}

func (Note) Kind() EventKind               { return KindNote }
func (Rest) Kind() EventKind               { return KindRest }
func (TimeSignatureEvent) Kind() EventKind { return KindTimeSignature }
func (KeySignatureEvent) Kind() EventKind  { return KindKeySignature }
func (TempoEvent) Kind() EventKind         { return KindTempo }
func (ProgramEvent) Kind() EventKind       { return KindProgram }
func (OtherEvent) Kind() EventKind         { return KindOther }
func (MeasureMarker) Kind() EventKind      { return KindMeasureMarker }

func (n Note) StartTick() int               { return n.Start }
func (r Rest) StartTick() int               { return r.Start }
func (e TimeSignatureEvent) StartTick() int { return e.Start }
func (e KeySignatureEvent) StartTick() int  { return e.Start }
func (e TempoEvent) StartTick() int         { return e.Start }
func (e ProgramEvent) StartTick() int       { return e.Start }
func (e OtherEvent) StartTick() int         { return e.Start }
func (e MeasureMarker) StartTick() int      { return e.Start }

func (Note) isEvent()               {}
func (Rest) isEvent()               {}
func (TimeSignatureEvent) isEvent() {}
func (KeySignatureEvent) isEvent()  {}
func (TempoEvent) isEvent()         {}
func (ProgramEvent) isEvent()       {}
func (OtherEvent) isEvent()         {}
func (MeasureMarker) isEvent()      {}

// Retime returns a copy of e starting at tick.
func Retime(e Event, tick int) Event {
	switch v := e.(type) {
	case Note:
		v.Start = tick
		return v
	case Rest:
		v.Start = tick
		return v
	case TimeSignatureEvent:
		v.Start = tick
		return v
	case KeySignatureEvent:
		v.Start = tick
		return v
	case TempoEvent:
		v.Start = tick
		return v
	case ProgramEvent:
		v.Start = tick
		return v
	case OtherEvent:
		v.Start = tick
		return v
	case MeasureMarker:
		v.Start = tick
		return v
	}
	panic(fmt.Sprintf("unknown event type %T", e))
}

// Duration is the length of a note or rest and zero for everything else.
func Duration(e Event) int {
	switch v := e.(type) {
	case Note:
		return v.Duration
	case Rest:
		return v.Duration
	}
	return 0
}

func voiceOf(e Event) int {
	switch v := e.(type) {
	case Note:
		return v.Voice
	case Rest:
		return v.Voice
	}
	return 0
}

// EventLess orders events by tick, then kind priority. Notes and rests on the
// same tick fall back to longer first, then voice.
func EventLess(a, b Event) bool {
	if a.StartTick() != b.StartTick() {
		return a.StartTick() < b.StartTick()
	}
	pa, pb := a.Kind().Priority(), b.Kind().Priority()
	if pa != pb {
		return pa < pb
	}
	if pa == KindNote.Priority() {
		if da, db := Duration(a), Duration(b); da != db {
			return da > db
		}
		return voiceOf(a) < voiceOf(b)
	}
	return false
}
