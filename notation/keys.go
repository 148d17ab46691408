package notation

import (
	"strings"

	"github.com/jsphweid/notegrid/constants"
	"github.com/jsphweid/notegrid/model"
)

// KeyIndex finds a key name, case-insensitively, in the key tables. idx is
// the pitch class of the major key or of the relative major for minor keys.
func KeyIndex(key string) (mode string, idx int, ok bool) {
	for _, mode := range []string{"major", "minor"} {
		for i, k := range constants.Keys[mode] {
			if strings.EqualFold(k, key) {
				return mode, i, true
			}
		}
	}
	return "", 0, false
}

// KeyFromSharps names the key with sharps sharps (negative for flats), as
// stored in a MIDI key signature.
func KeyFromSharps(sharps int, minor bool) (string, error) {
	if sharps < -7 || sharps > 7 {
		return "", model.NewValueError("illegal key signature with %d sharps", sharps)
	}
	mode := "major"
	if minor {
		mode = "minor"
	}
	return constants.Keys[mode][((sharps*7)%12+12)%12], nil
}

// SharpsFromKey is the inverse of KeyFromSharps.
func SharpsFromKey(key string) (sharps int, minor bool, err error) {
	mode, idx, ok := KeyIndex(key)
	if !ok {
		return 0, false, model.NewValueError("unknown key %q", key)
	}
	sharps = (idx * 7) % 12
	if sharps > 6 {
		sharps -= 12
	}
	return sharps, mode == "minor", nil
}
