package model

import "fmt"

const (
	MinPitch    = 0
	MaxPitch    = 127
	MaxVelocity = 127
)

// Note is a pitched event with a start and a duration, both in ticks.
type Note struct {
	Pitch    int
	Start    int
	Duration int
	Velocity int
	Tied     bool

	// Voice is only set when parts from several tracks are merged into one measure.
	Voice int
}

func NewNote(pitch, start, duration, velocity int) (Note, error) {
	if pitch < MinPitch || pitch > MaxPitch {
		return Note{}, NewValueError("illegal note number %d", pitch)
	}
	if start < 0 {
		return Note{}, NewValueError("illegal note start %d", start)
	}
	if duration <= 0 {
		return Note{}, NewValueError("illegal note duration %d", duration)
	}
	if velocity < 0 || velocity > MaxVelocity {
		return Note{}, NewValueError("illegal velocity %d", velocity)
	}
	return Note{Pitch: pitch, Start: start, Duration: duration, Velocity: velocity}, nil
}

func (n Note) End() int {
	return n.Start + n.Duration
}

// Equal compares pitch and duration only; position is ignored.
func (n Note) Equal(other Note) bool {
	return n.Pitch == other.Pitch && n.Duration == other.Duration
}

func (n Note) String() string {
	tied := 0
	if n.Tied {
		tied = 1
	}
	return fmt.Sprintf("pit=%3d  st=%4d  dur=%4d  vel=%4d, tied=%d", n.Pitch, n.Start, n.Duration, n.Velocity, tied)
}

// Rest is a silent span. Rests only exist inside populated measures.
type Rest struct {
	Start    int
	Duration int
	Voice    int
}

func (r Rest) End() int {
	return r.Start + r.Duration
}
