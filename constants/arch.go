package constants

// ArchDescription holds the video timing of a target machine, which fixes how
// many frames (player ticks) elapse per second.
type ArchDescription struct {
	SystemClock   int
	CyclesPerLine int
	LinesPerFrame int
	VisibleLines  int
}

func (a ArchDescription) CyclesPerFrame() int {
	return a.CyclesPerLine * a.LinesPerFrame
}

func (a ArchDescription) FrameRate() float64 {
	return float64(a.SystemClock) / float64(a.CyclesPerFrame())
}

func (a ArchDescription) MsPerFrame() float64 {
	return 1000 / a.FrameRate()
}

func (a ArchDescription) BlankLines() int {
	return a.LinesPerFrame - a.VisibleLines
}

var Arch = map[string]ArchDescription{
	"NTSC-C64": {SystemClock: 1022727, CyclesPerLine: 65, LinesPerFrame: 263, VisibleLines: 235},
	"PAL-C64":  {SystemClock: 985248, CyclesPerLine: 63, LinesPerFrame: 312, VisibleLines: 284},
	// the "old" 6567R56A NTSC chip
	"NTSC-R56A":  {SystemClock: 1022727, CyclesPerLine: 64, LinesPerFrame: 262, VisibleLines: 234},
	"NTSC-VIC20": {SystemClock: 1022727, CyclesPerLine: 65, LinesPerFrame: 261, VisibleLines: 233},
	"PAL-VIC20":  {SystemClock: 1108405, CyclesPerLine: 71, LinesPerFrame: 312, VisibleLines: 284},
}
