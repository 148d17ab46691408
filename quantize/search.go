// Package quantize finds and applies tick grids for note starts and durations.
package quantize

import (
	"github.com/jsphweid/notegrid/constants"
	"github.com/jsphweid/notegrid/model"
	"github.com/jsphweid/notegrid/util"
)

// Error is the distance from t to the nearest line of a grid.
func Error(t, grid int) int {
	j := util.FloorDiv(t, grid)
	return util.Min(util.Abs(t-grid*j), util.Abs(t-grid*(j+1)))
}

// ObjectiveError is the worst grid error over all times. Max works better than
// a sum or RMS on performed music.
func ObjectiveError(times []int, grid int) int {
	var worst int
	for _, t := range times {
		if e := Error(t, grid); e > worst {
			worst = e
		}
	}
	return worst
}

// FindStartQuantization looks for the grid that best fits a set of times.
//
// Starting at quarter notes it tries each power-of-two note value and its
// triplet. The right grid shows up as the first minimum of the error: the next
// candidate is incommensurate (2/3 or 3/4 of the previous) and makes the error
// worse. A perfect fit returns at once. If nothing settles by 128th notes the
// result is 1, meaning full tick resolution.
func FindStartQuantization(times []int, ppq int) int {
	lastErr := len(times) * ppq
	lastGrid := ppq
	for noteValue := 4; noteValue <= constants.FastestNoteValue; noteValue *= 2 {
		grid := ppq * 4 / noteValue
		for _, candidate := range []int{grid, grid * 2 / 3} {
			if candidate < 1 {
				return 1
			}
			e := ObjectiveError(times, candidate)
			if e == 0 {
				return candidate
			}
			if e > lastErr {
				return lastGrid
			}
			lastGrid, lastErr = candidate, e
		}
	}
	return 1
}

// FindDurationQuantization derives the duration grid from the shortest note,
// starting at the note-start grid and shrinking until the shortest note is at
// least 90% of a grid unit. At each step a triplet subdivision (2/3) is tried
// before halving.
func FindDurationQuantization(durations []int, noteGrid int) (int, error) {
	if len(durations) == 0 {
		return 0, model.NewQuantizationError("no durations to quantize")
	}
	minLen := durations[0]
	for _, d := range durations[1:] {
		minLen = util.Min(minLen, d)
	}
	if minLen <= 0 {
		return 0, model.NewQuantizationError("illegal minimum note length (%d)", minLen)
	}
	if noteGrid <= 0 {
		return 0, model.NewQuantizationError("illegal note grid (%d)", noteGrid)
	}

	// ratio < 0.9 is 10*minLen < 9*grid
	below := func(grid int) bool { return 10*minLen < 9*grid }
	above := func(grid int) bool { return 10*minLen > 9*grid }

	current := noteGrid
	for below(current) && current > 1 {
		if triplet := current * 2 / 3; triplet >= 1 && above(triplet) {
			return triplet, nil
		}
		current = util.Max(current/2, 1)
	}
	return current, nil
}

// ToGrid snaps t to the nearest multiple of grid. Halfway values go to the
// later multiple.
func ToGrid(t, grid int) int {
	lower := util.FloorDiv(t, grid) * grid
	upper := lower + grid
	if t-lower < upper-t {
		return lower
	}
	return upper
}
