package scarlettd

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGetMeterLevelsRequestLayout(t *testing.T) {
	req := buildGetMeterLevelsRequest()
	require.Len(t, req, 8)
	assert.EqualValues(t, 0, binary.LittleEndian.Uint16(req[0:2]))
	assert.EqualValues(t, meterCount, binary.LittleEndian.Uint16(req[2:4]))
	assert.EqualValues(t, meterMagic, binary.LittleEndian.Uint32(req[4:8]))
}

func TestDecodeMeterLevelsTruncatesU32ToU16(t *testing.T) {
	payload := make([]byte, meterCount*4)
	binary.LittleEndian.PutUint32(payload[0:4], 0x0001ffff) // truncates to 0xffff
	binary.LittleEndian.PutUint32(payload[4:8], 42)

	m := decodeMeterLevels(payload)
	require.Len(t, m.Values, meterCount)
	assert.EqualValues(t, 0xffff, m.Values[0])
	assert.EqualValues(t, 42, m.Values[1])
}

func TestDecodeMeterLevelsHandlesShortPayload(t *testing.T) {
	payload := make([]byte, 8) // only 2 values present
	binary.LittleEndian.PutUint32(payload[0:4], 1)
	binary.LittleEndian.PutUint32(payload[4:8], 2)

	m := decodeMeterLevels(payload)
	assert.EqualValues(t, 1, m.Values[0])
	assert.EqualValues(t, 2, m.Values[1])
	assert.EqualValues(t, 0, m.Values[2])
}
