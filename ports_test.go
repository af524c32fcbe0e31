package scarlettd_test

import (
	"testing"

	"github.com/michaelquigley/scarlettd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireIDForAndPortIndexForRoundTrip(t *testing.T) {
	d, ok := scarlettd.LookupDevice(0x1235, 0x8203) // 6i6 2nd Gen
	require.True(t, ok)

	total := d.CountPorts(scarlettd.PortIn)
	require.Greater(t, total, 0)

	for i := 0; i < total; i++ {
		wire := d.WireIDFor(scarlettd.PortIn, i)
		back := d.PortIndexFor(scarlettd.PortIn, wire)
		assert.Equal(t, i, back, "wire id 0x%03x for flat index %d did not round-trip", wire, i)
	}
}

func TestWireIDForOutOfRangeReturnsNone(t *testing.T) {
	d, ok := scarlettd.LookupDevice(0x1235, 0x8203)
	require.True(t, ok)

	total := d.CountPorts(scarlettd.PortOut)
	wire := d.WireIDFor(scarlettd.PortOut, total+1000)
	assert.EqualValues(t, 0, wire)
}

func TestPortIndexForUnknownWireIsMinusOne(t *testing.T) {
	d, ok := scarlettd.LookupDevice(0x1235, 0x8203)
	require.True(t, ok)

	idx := d.PortIndexFor(scarlettd.PortIn, 0x700) // no port type claims this base
	assert.Equal(t, -1, idx)
}

func TestDecodePortAndPortBaseAgree(t *testing.T) {
	d, ok := scarlettd.LookupDevice(0x1235, 0x8204) // 18i8 2nd Gen, has ADAT
	require.True(t, ok)

	p, ok := d.DecodePort(scarlettd.PortIn, 10) // past analogue+spdif, into ADAT
	require.True(t, ok)
	assert.Equal(t, scarlettd.PortTypeADAT, p.Type)

	base := d.PortBase(scarlettd.PortIn, scarlettd.PortTypeADAT)
	assert.Equal(t, 10, base+p.Index)
}

func TestDecodePortOutOfRangeFails(t *testing.T) {
	d, ok := scarlettd.LookupDevice(0x1235, 0x8211) // Solo 3rd Gen, small port set
	require.True(t, ok)

	_, ok = d.DecodePort(scarlettd.PortIn, 1000)
	assert.False(t, ok)
}

func TestFormatPortNameAppliesNamedOverride(t *testing.T) {
	d, ok := scarlettd.LookupDevice(0x1235, 0x8211)
	require.True(t, ok)

	name := d.FormatPortName(scarlettd.PortOut, 0)
	assert.Contains(t, name, "Headphones L")
}

func TestFormatPortNameAppliesDstRemap(t *testing.T) {
	d, ok := scarlettd.LookupDevice(0x1235, 0x8201) // 18i20 2nd Gen, has DstRemap
	require.True(t, ok)

	// index 2 remaps to panel position 4 for this device's analogue outputs.
	name := d.FormatPortName(scarlettd.PortOut, 2)
	assert.Equal(t, "Analogue Out 05", name)
}

func TestFormatPortNameOutOfRangeIsOff(t *testing.T) {
	d, ok := scarlettd.LookupDevice(0x1235, 0x8211)
	require.True(t, ok)

	assert.Equal(t, "Off", d.FormatPortName(scarlettd.PortOut, 9999))
}
