package scarlettd

import "encoding/binary"

// meters.go is the level-meter reader: a single GET_METER_LEVELS
// request/response pair, truncated (not scaled) from the wire's u32
// values down to u16, mirroring scarlett2_usb_get_meter_levels exactly.

const meterCount = 56

const meterMagic = 1

// buildGetMeterLevelsRequest assembles the fixed GET_METER_LEVELS
// request payload: a reserved pad, the meter count, and a magic value
// the device expects verbatim.
func buildGetMeterLevelsRequest() []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint16(buf[0:2], 0)
	binary.LittleEndian.PutUint16(buf[2:4], meterCount)
	binary.LittleEndian.PutUint32(buf[4:8], meterMagic)
	return buf
}

// decodeMeterLevels truncates the response's 56 little-endian u32 values
// down to u16, matching the kernel driver's plain C cast (values above
// 0xffff wrap rather than clamp).
func decodeMeterLevels(payload []byte) Meters {
	m := Meters{Values: make([]uint16, meterCount)}
	for i := 0; i < meterCount && (i+1)*4 <= len(payload); i++ {
		v := binary.LittleEndian.Uint32(payload[i*4:])
		m.Values[i] = uint16(v)
	}
	return m
}
