package scarlettd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBiasToWireAndBack(t *testing.T) {
	assert.EqualValues(t, 0, biasToWire(127))
	assert.EqualValues(t, -127, biasToWire(0))
	assert.Equal(t, int8(127), wireToUser(0))
	assert.Equal(t, int8(0), wireToUser(-127))
}

func TestWireToUserClamps(t *testing.T) {
	assert.Equal(t, int8(0), wireToUser(-200))
	assert.Equal(t, int8(127), wireToUser(200))
}

func TestSetVolumeWritesBiasedValue(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8201) // 18i20 2nd Gen, HasHWVolume + LineOutHWVol
	require.True(t, ok)
	v := &VolumeSet{
		PerOut:   make([]int8, 10),
		SwVolume: make([]int8, 10),
		SwHwCtrl: make([]bool, 10),
		Muted:    make([]bool, 10),
	}

	w, err := SetVolume(d, v, 2, 100)
	require.NoError(t, err)
	assert.Equal(t, ConfigLineOutVolume, w.Item)
	assert.Equal(t, 2, w.Index)
	assert.EqualValues(t, biasToWire(100), int16(w.Value))
	assert.Equal(t, int8(100), v.PerOut[2])
	assert.Equal(t, int8(100), v.SwVolume[2])
}

func TestSetVolumeRejectedUnderHWControl(t *testing.T) {
	// invariant 8: a HW-controlled output's volume is read-only.
	d, ok := LookupDevice(0x1235, 0x8201)
	require.True(t, ok)
	v := &VolumeSet{
		PerOut:   make([]int8, 10),
		SwVolume: make([]int8, 10),
		SwHwCtrl: []bool{false, false, true, false, false, false, false, false, false, false},
		Muted:    make([]bool, 10),
	}

	_, err := SetVolume(d, v, 2, 50)
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestSetVolumeClampsRange(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8201)
	require.True(t, ok)
	v := &VolumeSet{
		PerOut:   make([]int8, 10),
		SwVolume: make([]int8, 10),
		SwHwCtrl: make([]bool, 10),
		Muted:    make([]bool, 10),
	}

	w, err := SetVolume(d, v, 0, -10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, v.PerOut[0])
	assert.EqualValues(t, biasToWire(0), int16(w.Value))

	w, err = SetVolume(d, v, 0, 127)
	require.NoError(t, err)
	assert.EqualValues(t, 127, v.PerOut[0])
	assert.EqualValues(t, biasToWire(127), int16(w.Value))
}

func TestSetVolumeUnsupportedDevice(t *testing.T) {
	d := &Device{}
	_, err := SetVolume(d, &VolumeSet{PerOut: make([]int8, 1)}, 0, 10)
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestSetMuteTogglesMirror(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8201)
	require.True(t, ok)
	v := &VolumeSet{Muted: make([]bool, 10)}

	w, err := SetMute(d, v, 3, true)
	require.NoError(t, err)
	assert.Equal(t, ConfigMutes, w.Item)
	assert.EqualValues(t, 1, w.Value)
	assert.True(t, v.Muted[3])

	w, err = SetMute(d, v, 3, false)
	require.NoError(t, err)
	assert.EqualValues(t, 0, w.Value)
	assert.False(t, v.Muted[3])
}

func TestSetSwHwFlipToHWResyncsFromMaster(t *testing.T) {
	// invariant 8: flipping sw_hw[i] to HW pulls vol/mute from master/dim,
	// not from the output's own software volume.
	d, ok := LookupDevice(0x1235, 0x8201)
	require.True(t, ok)
	v := &VolumeSet{
		PerOut:   make([]int8, 10),
		SwVolume: []int8{0, 0, 77, 0, 0, 0, 0, 0, 0, 0},
		SwHwCtrl: make([]bool, 10),
		Muted:    make([]bool, 10),
		Master:   110,
		Dimmed:   true,
	}
	v.PerOut[2] = 77

	ws, err := SetSwHw(d, v, 2, true)
	require.NoError(t, err)
	require.Len(t, ws, 2)
	assert.Equal(t, ConfigLineOutVolume, ws[0].Item)
	assert.EqualValues(t, biasToWire(110), int16(ws[0].Value))
	assert.Equal(t, ConfigSwHwSwitch, ws[1].Item)
	assert.EqualValues(t, 1, ws[1].Value)
	assert.Equal(t, int8(110), v.PerOut[2])
	assert.True(t, v.Muted[2])
	assert.True(t, v.SwHwCtrl[2])
}

func TestSetSwHwFlipToSWRestoresSoftwareVolume(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8201)
	require.True(t, ok)
	v := &VolumeSet{
		PerOut:   []int8{0, 0, 110, 0, 0, 0, 0, 0, 0, 0},
		SwVolume: []int8{0, 0, 77, 0, 0, 0, 0, 0, 0, 0},
		SwHwCtrl: []bool{false, false, true, false, false, false, false, false, false, false},
		Muted:    make([]bool, 10),
		Master:   110,
	}

	ws, err := SetSwHw(d, v, 2, false)
	require.NoError(t, err)
	assert.EqualValues(t, biasToWire(77), int16(ws[0].Value))
	assert.EqualValues(t, 0, ws[1].Value)
	assert.Equal(t, int8(77), v.PerOut[2])
	assert.False(t, v.SwHwCtrl[2])
}

func TestSetSwHwUnsupportedDevice(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8203) // no LineOutHWVol
	require.True(t, ok)
	v := &VolumeSet{SwHwCtrl: make([]bool, 6), PerOut: make([]int8, 6), SwVolume: make([]int8, 6)}

	_, err := SetSwHw(d, v, 0, true)
	assert.ErrorIs(t, err, ErrNotSupported)
}
