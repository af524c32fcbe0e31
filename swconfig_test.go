package scarlettd

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultSoftwareConfigHeaderFields(t *testing.T) {
	sc := newDefaultSoftwareConfig()
	require.Len(t, sc.raw, swConfigBlobSize)

	assert.EqualValues(t, swConfigBlobSize+0x0c, binary.LittleEndian.Uint16(sc.raw[offAllSize:]))
	assert.EqualValues(t, swConfigMagic, binary.LittleEndian.Uint16(sc.raw[offMagic1:]))
	assert.EqualValues(t, swConfigVersion, binary.LittleEndian.Uint32(sc.raw[offVersion:]))
	assert.EqualValues(t, swConfigBlobSize, binary.LittleEndian.Uint16(sc.raw[offSzof:]))
	assert.True(t, sc.ValidateChecksum())
}

func TestRecomputeChecksumAfterMutation(t *testing.T) {
	sc := newDefaultSoftwareConfig()
	require.True(t, sc.ValidateChecksum())

	sc.setOutMux(0, 3)
	assert.False(t, sc.ValidateChecksum(), "checksum should now be stale")

	sc.recomputeChecksum()
	assert.True(t, sc.ValidateChecksum())
}

func TestDecodeSoftwareConfigRoundTripsAliases(t *testing.T) {
	sc := newDefaultSoftwareConfig()
	off := offInAlias
	copy(sc.raw[off:], []byte("Vocal Mic\x00"))

	decoded := decodeSoftwareConfig(sc.raw)
	assert.Equal(t, "Vocal Mic", decoded.InAlias[0])
}

func TestSetStereoSwAndSetMixerBindReturnWriteRanges(t *testing.T) {
	sc := newDefaultSoftwareConfig()

	off, n := sc.setStereoSw(0x3)
	assert.Equal(t, offStereoSw, off)
	assert.Equal(t, 4, n)
	assert.EqualValues(t, 0x3, sc.StereoSw)
	assert.EqualValues(t, 0x3, binary.LittleEndian.Uint32(sc.raw[offStereoSw:]))

	off2, n2 := sc.setMixerBind(0x5)
	assert.Equal(t, offMixerBind, off2)
	assert.Equal(t, 4, n2)
	assert.EqualValues(t, 0x5, sc.MixerBind)
}

func TestCommitBoundsChecksRange(t *testing.T) {
	sc := newDefaultSoftwareConfig()

	_, err := sc.Commit(swConfigBlobSize-2, 10)
	assert.ErrorIs(t, err, ErrBadArgument)

	writes, err := sc.Commit(offOutMux, 1)
	require.NoError(t, err)
	require.Len(t, writes, 2)
	assert.Equal(t, offOutMux, writes[0].Offset)
	assert.Equal(t, offChecksum, writes[1].Offset)
	assert.Equal(t, 4, writes[1].N)
}
