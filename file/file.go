package file

import (
	"path/filepath"
	"strings"

	"github.com/jsphweid/notegrid/model"
)

// CreateFileNumMap numbers paths in the order given.
func CreateFileNumMap(paths []string) model.FileNumToMidiPath {
	res := make(model.FileNumToMidiPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}

// DerivedPath is the file in outDir named after in, with suffix replacing its
// extension. An empty outDir keeps the file next to in.
func DerivedPath(in, outDir, suffix string) string {
	base := filepath.Base(in)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + suffix
	if outDir == "" {
		return filepath.Join(filepath.Dir(in), base)
	}
	return filepath.Join(outDir, base)
}
