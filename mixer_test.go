package scarlettd

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampMixerValue(t *testing.T) {
	assert.Equal(t, 0, ClampMixerValue(-5))
	assert.Equal(t, MixerMaxValue, ClampMixerValue(MixerMaxValue+5))
	assert.Equal(t, 100, ClampMixerValue(100))
}

func TestMixerBiasMatchesUnityIndex(t *testing.T) {
	// unity gain (0dB) sits at half-dB index MixerBias == -MixerMinDB*2.
	assert.Equal(t, 160, MixerBias)
	assert.EqualValues(t, 8192, mixerValues[MixerBias])
}

func TestFloatToMixerLevelRoundTripsThroughTable(t *testing.T) {
	for level := 0; level <= MixerMaxValue; level += 7 {
		bits := uint32(swConfigMixerValues[level]) << 16
		got := floatToMixerLevel(bits)
		assert.InDeltaf(t, float64(level), float64(got), 2, "level %d round-tripped to %d", level, got)
	}
}

func TestFloatToMixerLevelZeroBitsIsUnity(t *testing.T) {
	// the table's unity-gain entry (half-dB index MixerBias) is itself
	// encoded as the 0.0 float32 bit pattern -- a quirk of the original
	// table, not a clamp case.
	assert.Equal(t, MixerBias, floatToMixerLevel(0))
}

func TestFloatToMixerLevelClampsMaximum(t *testing.T) {
	bits := math.Float32bits(1000.0) // far beyond MixerMaxDB
	assert.Equal(t, MixerMaxValue, floatToMixerLevel(bits))
}

func TestInvertMixerValueBoundary(t *testing.T) {
	// invariant 3's boundary case: the table's largest entry must invert
	// back to MixerMaxValue exactly.
	assert.Equal(t, MixerMaxValue, InvertMixerValue(16345))
	assert.Equal(t, MixerMaxValue, InvertMixerValue(65535))
}

func TestInvertMixerValueRoundTrips(t *testing.T) {
	for level := 0; level <= MixerMaxValue; level++ {
		got := InvertMixerValue(mixerValues[level])
		assert.GreaterOrEqualf(t, mixerValues[got], mixerValues[level], "level %d inverted to %d", level, got)
		assert.LessOrEqualf(t, got, level, "inversion must pick the earliest matching index")
	}
}

func TestInvertMixerValueZero(t *testing.T) {
	assert.Equal(t, 0, InvertMixerValue(0))
}

func TestNewMixerMatrixSizedFromDevice(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8203)
	require.True(t, ok)

	mx := newMixerMatrix(d)
	assert.Equal(t, d.Ports[PortTypeMix].Count[PortIn], mx.Outputs)
	assert.Equal(t, d.Ports[PortTypeMix].Count[PortOut], mx.Inputs)
	assert.Len(t, mx.Level, mx.Outputs)
	assert.Len(t, mx.Level[0], mx.Inputs)
}

func TestMixerMatrixSetMixerLevelBoundsCheck(t *testing.T) {
	mx := &MixerMatrix{Outputs: 2, Inputs: 2, Level: [][]int{{0, 0}, {0, 0}}, Mute: [][]bool{{false, false}, {false, false}}}

	require.NoError(t, mx.SetMixerLevel(0, 1, 170))
	assert.Equal(t, 170, mx.Level[0][1])

	err := mx.SetMixerLevel(5, 0, 100)
	assert.ErrorIs(t, err, ErrBadArgument)
}

func TestEncodeSetMixLayout(t *testing.T) {
	mx := &MixerMatrix{
		Outputs: 1,
		Inputs:  3,
		Level:   [][]int{{MixerBias, MixerBias, MixerBias}},
		Mute:    [][]bool{{false, true, false}},
	}

	buf := encodeSetMix(mx, 0, true)
	require.Len(t, buf, 2+2*(3+1))

	assert.EqualValues(t, 0, binary.LittleEndian.Uint16(buf[0:2]))
	assert.EqualValues(t, mixerValues[MixerBias], binary.LittleEndian.Uint16(buf[2:4]))
	assert.EqualValues(t, 0, binary.LittleEndian.Uint16(buf[4:6])) // muted cell forced to 0
	assert.EqualValues(t, mixerValues[MixerBias], binary.LittleEndian.Uint16(buf[6:8]))
	assert.EqualValues(t, talkbackMixSlot, binary.LittleEndian.Uint16(buf[8:10]))
}

func TestEncodeSetMixNoTalkbackSlot(t *testing.T) {
	mx := &MixerMatrix{Outputs: 1, Inputs: 2, Level: [][]int{{0, 0}}, Mute: [][]bool{{false, false}}}
	buf := encodeSetMix(mx, 0, false)
	assert.Len(t, buf, 2+2*2)
}
