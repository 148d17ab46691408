package model

// Beat is one beat of the song's metric grid. Measure and Beat are 1-based.
type Beat struct {
	Start   int
	Measure int
	Beat    int
}

// Measure holds everything in [Start, End) for one track, marker first.
type Measure struct {
	Number int
	Start  int
	End    int
	Events []Event
}

func (m Measure) NoteCount() int {
	var n int
	for _, e := range m.Events {
		if e.Kind() == KindNote {
			n++
		}
	}
	return n
}
