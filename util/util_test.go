package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{7, 2, 3},
		{-7, 2, -4},
		{-8, 2, -4},
		{0, 5, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FloorDiv(c.a, c.b), "%d / %d", c.a, c.b)
	}
}

func TestGCD(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(6, GCD(24, 18))
	assert.Equal(5, GCD(0, 5))
	assert.Equal(3, GCD(-9, 6))
}

func TestGetKeysSorted(t *testing.T) {
	assert.Equal(t, []uint32{1, 2, 3}, GetKeys(map[uint32]string{3: "c", 1: "a", 2: "b"}))
}

func TestGatherAllMidiPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mid", "b.MIDI", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0666))
	}

	paths, err := GatherAllMidiPaths(dir, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.mid"), filepath.Join(dir, "b.MIDI")}, paths)

	paths, err = GatherAllMidiPaths(dir, 1)
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestBinaryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.dat")
	require.NoError(t, CreateBinary(path, map[string]int{"a": 1}))

	got, err := ReadBinary[map[string]int](path)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, got)
}
