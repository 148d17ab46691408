package constants

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArchitecture(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(50.12, math.Round(Arch["PAL-C64"].FrameRate()*100)/100)
	assert.Equal(16.72, math.Round(Arch["NTSC-C64"].MsPerFrame()*100)/100)
	assert.Equal(16768, Arch["NTSC-R56A"].CyclesPerFrame())
	assert.Equal(28, Arch["PAL-C64"].BlankLines())
}

func TestDurationNames(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("dotted quarter", Durations["US"][DurationStr["4."]])
	assert.Equal("demisemiquaver", Durations["UK"][DurationStr["32"]])
}
