package notation

import (
	"sort"

	"github.com/jsphweid/notegrid/constants"
	"github.com/jsphweid/notegrid/model"
)

// AllowedDurations looks up note value names (keys of constants.DurationStr).
func AllowedDurations(names ...string) ([]constants.Ratio, error) {
	res := make([]constants.Ratio, 0, len(names))
	for _, name := range names {
		r, ok := constants.DurationStr[name]
		if !ok {
			return nil, model.NewValueError("unknown note value %q", name)
		}
		res = append(res, r)
	}
	return res, nil
}

// DecomposeDuration splits duration into a sum of allowed note values, largest
// first. Every allowed value must be a whole number of ticks at ppq; the
// smallest one is expected to divide the quantization grid so the greedy pass
// always terminates cleanly.
func DecomposeDuration(duration, ppq int, allowed []constants.Ratio) ([]constants.Ratio, error) {
	if len(allowed) == 0 {
		return nil, model.NewValueError("no allowed durations")
	}
	type candidate struct {
		ratio constants.Ratio
		ticks int
	}
	candidates := make([]candidate, 0, len(allowed))
	for _, r := range allowed {
		if r.Num <= 0 || r.Den <= 0 || (ppq*r.Num)%r.Den != 0 {
			return nil, model.NewValueError("duration %d/%d is not a whole number of ticks at ppq %d", r.Num, r.Den, ppq)
		}
		candidates = append(candidates, candidate{r, ppq * r.Num / r.Den})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ticks > candidates[j].ticks
	})
	minTicks := candidates[len(candidates)-1].ticks

	var res []constants.Ratio
	remainder := duration
	for remainder > 0 {
		if remainder < minTicks {
			return nil, model.NewValueError("illegal note duration %d", duration)
		}
		for _, c := range candidates {
			if remainder >= c.ticks {
				res = append(res, c.ratio)
				remainder -= c.ticks
				break
			}
		}
	}
	return res, nil
}

// IsTriplet reports whether the note's length is a triplet value.
func IsTriplet(note model.Note, ppq int) bool {
	return limitDenominator(note.Duration, ppq, 16).Den%3 == 0
}

// StartBeatType returns the note value denominator needed to express an offset
// from the start of a measure as a whole number of beats. Triplet offsets give a
// multiple of 3.
func StartBeatType(tick, ppq int) int {
	return limitDenominator(tick, ppq, 16).Den
}
