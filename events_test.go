package scarlettd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "volume changed", EventVolumeChanged.String())
	assert.Equal(t, "clock sync changed", EventSyncChanged.String())
	assert.Equal(t, "unknown event", EventKind(99).String())
}

func TestDispatchInterruptVolumeChange(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8203)
	require.True(t, ok)
	c := &Card{device: d, mirror: newMirror(d)}

	var got []EventKind
	dispatchInterrupt(c, interruptVolChange, func(k EventKind) { got = append(got, k) })

	assert.Equal(t, []EventKind{EventVolumeChanged}, got)
	assert.True(t, c.mirror.takeVolumeStale())
}

func TestDispatchInterruptSpeakerChangeCascades(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8203)
	require.True(t, ok)
	c := &Card{device: d, mirror: newMirror(d)}

	var got []EventKind
	dispatchInterrupt(c, interruptSpeakerChange, func(k EventKind) { got = append(got, k) })

	assert.ElementsMatch(t, []EventKind{EventSpeakerChanged, EventButtonChanged}, got)
	assert.True(t, c.mirror.takeSpeakerStale())
	assert.True(t, c.mirror.takeVolumeStale())
}

func TestDispatchInterruptNilNotifyIsSafe(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8203)
	require.True(t, ok)
	c := &Card{device: d, mirror: newMirror(d)}

	assert.NotPanics(t, func() {
		dispatchInterrupt(c, interruptVolChange|interruptSyncChange, nil)
	})
}

func TestDispatchInterruptMultipleBits(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8203)
	require.True(t, ok)
	c := &Card{device: d, mirror: newMirror(d)}

	var got []EventKind
	dispatchInterrupt(c, interruptVolChange|interruptLineCtlChange|interruptSyncChange, func(k EventKind) { got = append(got, k) })

	assert.ElementsMatch(t, []EventKind{EventVolumeChanged, EventLineCtlChanged, EventSyncChanged}, got)
}
