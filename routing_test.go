package scarlettd

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMuxTransport implements cardTransport, recording every CmdSetMux
// payload handed to Do so a test can inspect the bands actually written.
type fakeMuxTransport struct {
	calls [][]byte
}

func (f *fakeMuxTransport) Do(cmd Command, payload []byte, expectSize int) ([]byte, error) {
	if cmd == CmdSetMux {
		buf := make([]byte, len(payload))
		copy(buf, payload)
		f.calls = append(f.calls, buf)
	}
	return nil, nil
}

func (f *fakeMuxTransport) InitProbe() ([]byte, error) { return nil, nil }

func (f *fakeMuxTransport) ResetSeq(v uint16) {}

func (f *fakeMuxTransport) ReadInterrupt(buf []byte) (int, error) { return 0, ErrNotSupported }

func (f *fakeMuxTransport) Close() error { return nil }

func TestEncodeDecodeMuxEntryRoundTrip(t *testing.T) {
	src, dst := WireID(0x182), WireID(0x081)
	word := encodeMuxEntry(src, dst)
	gotSrc, gotDst := decodeMuxEntry(word)
	assert.Equal(t, src, gotSrc)
	assert.Equal(t, dst, gotDst)
}

func TestMuxAssignmentOrderAndMuteAssignmentOrderAreDistinct(t *testing.T) {
	// the two walks must never be conflated: mux order includes PCM/Mix/
	// Talkback, mute order is the narrower Analogue/SPDIF/ADAT-only walk.
	assert.NotEqual(t, len(muxAssignmentOrder), len(muteAssignmentOrder))
	assert.Contains(t, muxAssignmentOrder[:], PortTypePCM)
	assert.NotContains(t, muteAssignmentOrder[:], PortTypePCM)
}

func TestOutputMuteIndexWalksNarrowOrder(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8204) // 18i8 2nd Gen, has Analogue+SPDIF outputs, no ADAT outputs
	require.True(t, ok)

	// first analogue output is mute-index 0.
	assert.Equal(t, 0, outputMuteIndex(d, PortTypeAnalogue, 0))

	analogueOutCount := d.Ports[PortTypeAnalogue].Count[PortOut]
	// first SPDIF output comes right after every analogue output.
	assert.Equal(t, analogueOutCount, outputMuteIndex(d, PortTypeSPDIF, 0))
}

func TestOutputMuteIndexUnknownTypeIsMinusOne(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8204)
	require.True(t, ok)

	assert.Equal(t, -1, outputMuteIndex(d, PortTypePCM, 0))
}

func TestBuildSetMuxRequestForcesMutedSourceToNone(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8203) // 6i6 2nd Gen
	require.True(t, ok)

	mux := &MuxTable{Band: PortOut44, Src: make([]WireID, d.CountPorts(PortOut))}
	analogueBase := d.PortBase(PortOut, PortTypeAnalogue)
	mux.Src[analogueBase] = d.WireIDFor(PortIn, 0)

	mutes := make([]bool, 64)
	mutes[outputMuteIndex(d, PortTypeAnalogue, 0)] = true

	buf := buildSetMuxRequest(d, PortOut44, mux, mutes)
	require.True(t, len(buf) > 4)

	wantDst := d.WireIDFor(PortOut44, analogueBase)
	found := false
	for off := 4; off+4 <= len(buf); off += 4 {
		word := uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24
		src, dst := decodeMuxEntry(word)
		if dst == wantDst {
			found = true
			assert.EqualValues(t, 0, src, "muted destination's source must be forced to none")
		}
	}
	assert.True(t, found, "expected to find the muted destination's mux entry")
}

func TestDecodeGetMuxResponseDropsUnknownDestinations(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8203)
	require.True(t, ok)

	// a destination wire id this device doesn't have any port for.
	word := encodeMuxEntry(d.WireIDFor(PortIn, 0), 0x7ff)
	payload := []byte{byte(word), byte(word >> 8), byte(word >> 16), byte(word >> 24)}

	mux := decodeGetMuxResponse(d, PortOut44, payload)
	for _, w := range mux.Src {
		assert.EqualValues(t, 0, w)
	}
}

func TestSetRouteFansOutToAllThreeBands(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8204) // 18i8 2nd Gen
	require.True(t, ok)

	ft := &fakeMuxTransport{}
	c := &Card{device: d, mirror: newMirror(d), transport: ft}

	dstIdx := d.PortBase(PortOut, PortTypeAnalogue)
	srcWire := d.WireIDFor(PortIn, 0)

	err := c.SetRoute(PortOut, dstIdx, srcWire)
	require.NoError(t, err)

	require.Len(t, ft.calls, 3, "SetRoute must emit one SET_MUX request per rate band")
	for i, wantBand := range []uint16{0, 1, 2} {
		require.True(t, len(ft.calls[i]) >= 4)
		gotBand := binary.LittleEndian.Uint16(ft.calls[i][2:4])
		assert.Equal(t, wantBand, gotBand, "call %d num field", i)
	}
}

func TestCommitSwRoutingNoopWithoutSoftwareConfig(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8203)
	require.True(t, ok)

	writes, err := commitSwRouting(d, nil, d.WireIDFor(PortIn, 0), d.WireIDFor(PortOut, 0))
	require.NoError(t, err)
	assert.Nil(t, writes)
}

func TestCommitSwRoutingMixDestinationWritesMixerInMux(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8203)
	require.True(t, ok)
	sc := newDefaultSoftwareConfig()

	dstIdx := d.PortBase(PortOut, PortTypeMix)
	dstWire := d.WireIDFor(PortOut, dstIdx)
	srcWire := d.WireIDFor(PortIn, 0)

	writes, err := commitSwRouting(d, sc, srcWire, dstWire)
	require.NoError(t, err)
	require.NotEmpty(t, writes)

	found := false
	for _, w := range writes {
		if w.Offset == offMixerInMux {
			found = true
		}
	}
	assert.True(t, found, "expected a write touching offMixerInMux")
}

func TestCommitSwRoutingNonMixDestinationWritesOutMux(t *testing.T) {
	d, ok := LookupDevice(0x1235, 0x8203)
	require.True(t, ok)
	sc := newDefaultSoftwareConfig()

	dstIdx := d.PortBase(PortOut, PortTypeAnalogue)
	dstWire := d.WireIDFor(PortOut, dstIdx)
	srcWire := d.WireIDFor(PortIn, 0)

	writes, err := commitSwRouting(d, sc, srcWire, dstWire)
	require.NoError(t, err)

	found := false
	for _, w := range writes {
		if w.Offset == offOutMux+dstIdx {
			found = true
		}
	}
	assert.True(t, found, "expected a write touching this output's out_mux entry")
}
