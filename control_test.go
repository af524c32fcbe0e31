package scarlettd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoolControl() (*Control, *bool) {
	state := new(bool)
	return &Control{
		Name: "Test Switch",
		Type: ControlTypeBoolean,
		Get:  func() (int64, error) { return boolToInt64(*state), nil },
		Set: func(v int64) error {
			*state = v != 0
			return nil
		},
	}, state
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func TestControlSetValueByStringBoolean(t *testing.T) {
	ctl, state := newTestBoolControl()

	require.NoError(t, ctl.SetValueByString("on"))
	assert.True(t, *state)

	require.NoError(t, ctl.SetValueByString("0"))
	assert.False(t, *state)

	err := ctl.SetValueByString("maybe")
	assert.ErrorIs(t, err, ErrBadArgument)
}

func TestControlGetValueStringBoolean(t *testing.T) {
	ctl, state := newTestBoolControl()
	*state = true

	s, err := ctl.GetValueString()
	require.NoError(t, err)
	assert.Equal(t, "On", s)
}

func TestControlEnumeratedSetByNameAndByIndex(t *testing.T) {
	var value int64
	ctl := &Control{
		Name:  "Speaker Switching",
		Type:  ControlTypeEnumerated,
		Items: []string{"Off", "Main", "Alt"},
		Get:   func() (int64, error) { return value, nil },
		Set: func(v int64) error {
			value = v
			return nil
		},
	}

	require.NoError(t, ctl.SetValueByString("alt"))
	assert.EqualValues(t, 2, value)

	require.NoError(t, ctl.SetValueByString("1"))
	assert.EqualValues(t, 1, value)

	err := ctl.SetValueByString("bogus")
	assert.ErrorIs(t, err, ErrBadArgument)
}

func TestControlIntegerRangeCheck(t *testing.T) {
	ctl := &Control{
		Name: "Mixer Cell",
		Type: ControlTypeInteger,
		Min:  0,
		Max:  10,
		Set:  func(int64) error { return nil },
	}

	assert.NoError(t, ctl.SetValue(5))
	assert.ErrorIs(t, ctl.SetValue(11), ErrBadArgument)
	assert.ErrorIs(t, ctl.SetValue(-1), ErrBadArgument)
}

func TestControlUnwritableAndUnreadable(t *testing.T) {
	ctl := &Control{Name: "Read Only", Type: ControlTypeBoolean}
	_, err := ctl.GetValue()
	assert.ErrorIs(t, err, ErrNotSupported)

	err = ctl.SetValue(1)
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestFindControlAndFindControlsMatching(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8211) // Solo 3rd Gen
	require.True(t, ok)

	c := &Card{device: d, state: StateReady, mirror: newMirror(d)}
	c.controls = c.buildControls()

	ctl, err := c.FindControl("Line In 1 Mode Switch")
	require.NoError(t, err)
	assert.Equal(t, ControlTypeBoolean, ctl.Type)

	matches, err := c.FindControlsMatching("led")
	require.NoError(t, err)
	assert.NotEmpty(t, matches)

	_, err = c.FindControl("Does Not Exist")
	assert.ErrorIs(t, err, ErrBadArgument)
}

func TestBuildControlsGainHaloOnlyWhenDeviceHasHalos(t *testing.T) {
	solo, ok := LookupDevice(0x1235, 0x8211)
	require.True(t, ok)
	withHalo := &Card{device: solo, state: StateReady, mirror: newMirror(solo)}
	ctls := withHalo.buildControls()
	found := false
	for _, c := range ctls {
		if c.Name == "LED Custom Colors" {
			found = true
		}
	}
	assert.True(t, found)

	fourI4, ok := LookupDevice(0x1235, 0x8212) // 4i4 3rd Gen, GainHalosCount == 0
	require.True(t, ok)
	withoutHalo := &Card{device: fourI4, state: StateReady, mirror: newMirror(fourI4)}
	ctls2 := withoutHalo.buildControls()
	for _, c := range ctls2 {
		assert.NotEqual(t, "LED Custom Colors", c.Name)
	}
}
