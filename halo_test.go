package scarlettd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHaloStateSizedFromDevice(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8211) // Solo 3rd Gen, GainHalosCount=2
	require.True(t, ok)

	h := newHaloState(d)
	assert.Len(t, h.LEDs, 2)
	assert.False(t, h.Custom)
}

func TestEncodeDecodeHaloEnableRoundTrip(t *testing.T) {
	assert.True(t, decodeHaloEnable(encodeHaloEnable(true)))
	assert.False(t, decodeHaloEnable(encodeHaloEnable(false)))
	assert.EqualValues(t, 0x02, encodeHaloEnable(true))
	assert.EqualValues(t, 0x00, encodeHaloEnable(false))
}

func TestClampHaloColor(t *testing.T) {
	assert.EqualValues(t, 0, clampHaloColor(-3))
	assert.EqualValues(t, GainHaloColorMax, clampHaloColor(99))
	assert.EqualValues(t, 4, clampHaloColor(4))
}

func TestHaloSetLevelAndSetLED(t *testing.T) {
	h := &HaloState{LEDs: make([]uint8, 2)}

	v, err := h.SetLevel(1, 9) // clamps above GainHaloColorMax
	require.NoError(t, err)
	assert.EqualValues(t, GainHaloColorMax, v)
	assert.EqualValues(t, GainHaloColorMax, h.Levels[1])

	_, err = h.SetLevel(GainHaloLevelCount, 0)
	assert.ErrorIs(t, err, ErrBadArgument)

	v2, err := h.SetLED(0, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 3, v2)
	assert.EqualValues(t, 3, h.LEDs[0])

	_, err = h.SetLED(5, 0)
	assert.ErrorIs(t, err, ErrBadArgument)
}
