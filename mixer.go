package scarlettd

import (
	"encoding/binary"
	"fmt"
	"math"
)

// mixer.go is the mixer engine (component C7): the internal matrix mixer
// gain table, its half-dB quantization, and the SET_MIX wire encoding.
// Grounded on the kernel driver's scarlett2_usb_set_mix, the
// scarlett2_mixer_values/scarlett2_sw_config_mixer_values tables and
// scarlett2_float_to_mixer_level. There is deliberately no GET_MIX
// command on the wire -- the device is write-only for mixer gain, so this
// mirror is the only readable copy, exactly as the kernel driver treats
// its own private->mix[] shadow array as authoritative.

const (
	MixerMinDB    = -80
	MixerMaxDB    = 6
	MixerBias     = -MixerMinDB * 2              // 160
	MixerMaxValue = (MixerMaxDB - MixerMinDB) * 2 // 172

	talkbackMixSlot = 0x2000
)

// mixerValues maps a half-dB index (0..MixerMaxValue) to the 16-bit linear
// gain value SET_MIX transmits. mixerValues[k] == int(8192 * 10^((k-160)/40)).
var mixerValues = [173]uint16{
	0, 0, 0, 0, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1,
	2, 2, 2, 2, 2, 2, 2, 3,
	3, 3, 3, 3, 4, 4, 4, 4,
	5, 5, 5, 6, 6, 6, 7, 7,
	8, 8, 9, 9, 10, 10, 11, 12,
	12, 13, 14, 15, 16, 17, 18, 19,
	20, 21, 23, 24, 25, 27, 29, 30,
	32, 34, 36, 38, 41, 43, 46, 48,
	51, 54, 57, 61, 65, 68, 73, 77,
	81, 86, 91, 97, 103, 109, 115, 122,
	129, 137, 145, 154, 163, 173, 183, 194,
	205, 217, 230, 244, 259, 274, 290, 307,
	326, 345, 365, 387, 410, 434, 460, 487,
	516, 547, 579, 614, 650, 689, 730, 773,
	819, 867, 919, 973, 1031, 1092, 1157, 1225,
	1298, 1375, 1456, 1543, 1634, 1731, 1833, 1942,
	2057, 2179, 2308, 2445, 2590, 2744, 2906, 3078,
	3261, 3454, 3659, 3876, 4105, 4349, 4606, 4879,
	5168, 5475, 5799, 6143, 6507, 6892, 7301, 7733,
	8192, 8677, 9191, 9736, 10313, 10924, 11571, 12257,
	12983, 13752, 14567, 15430, 16345,
}

// swConfigMixerValues maps a half-dB index to the high 16 bits of the
// IEEE-754 float32 the software-config blob stores for that level; used
// when encoding mixer gain into the sw-config matrix instead of the live
// wire protocol.
var swConfigMixerValues = [173]uint16{
	0xc300, 0xc29f, 0xc29e, 0xc29d, 0xc29c, 0xc29b, 0xc29a, 0xc299,
	0xc298, 0xc297, 0xc296, 0xc295, 0xc294, 0xc293, 0xc292, 0xc291,
	0xc290, 0xc28f, 0xc28e, 0xc28d, 0xc28c, 0xc28b, 0xc28a, 0xc289,
	0xc288, 0xc287, 0xc286, 0xc285, 0xc284, 0xc283, 0xc282, 0xc281,
	0xc280, 0xc27e, 0xc27c, 0xc27a, 0xc278, 0xc276, 0xc274, 0xc272,
	0xc270, 0xc26e, 0xc26c, 0xc26a, 0xc268, 0xc266, 0xc264, 0xc262,
	0xc260, 0xc25e, 0xc25c, 0xc25a, 0xc258, 0xc256, 0xc254, 0xc252,
	0xc250, 0xc24e, 0xc24c, 0xc24a, 0xc248, 0xc246, 0xc244, 0xc242,
	0xc240, 0xc23e, 0xc23c, 0xc23a, 0xc238, 0xc236, 0xc234, 0xc232,
	0xc230, 0xc22e, 0xc22c, 0xc22a, 0xc228, 0xc226, 0xc224, 0xc222,
	0xc220, 0xc21e, 0xc21c, 0xc21a, 0xc218, 0xc216, 0xc214, 0xc212,
	0xc210, 0xc20e, 0xc20c, 0xc20a, 0xc208, 0xc206, 0xc204, 0xc202,
	0xc200, 0xc1fc, 0xc1f8, 0xc1f4, 0xc1f0, 0xc1ec, 0xc1e8, 0xc1e4,
	0xc1e0, 0xc1dc, 0xc1d8, 0xc1d4, 0xc1d0, 0xc1cc, 0xc1c8, 0xc1c4,
	0xc1c0, 0xc1bc, 0xc1b8, 0xc1b4, 0xc1b0, 0xc1ac, 0xc1a8, 0xc1a4,
	0xc1a0, 0xc19c, 0xc198, 0xc194, 0xc190, 0xc18c, 0xc188, 0xc184,
	0xc180, 0xc178, 0xc170, 0xc168, 0xc160, 0xc158, 0xc150, 0xc148,
	0xc140, 0xc138, 0xc130, 0xc128, 0xc120, 0xc118, 0xc110, 0xc108,
	0xc100, 0xc0f0, 0xc0e0, 0xc0d0, 0xc0c0, 0xc0b0, 0xc0a0, 0xc090,
	0xc080, 0xc060, 0xc040, 0xc020, 0xc000, 0xbfc0, 0xbf80, 0xbf00,
	0x0000, 0x3f00, 0x3f80, 0x3fc0, 0x4000, 0x4020, 0x4040, 0x4060,
	0x4080, 0x4090, 0x40a0, 0x40b0, 0x40c0,
}

// ClampMixerValue clamps a half-dB index into the device's valid range.
func ClampMixerValue(level int) int {
	if level < 0 {
		return 0
	}
	if level > MixerMaxValue {
		return MixerMaxValue
	}
	return level
}

// mixerLevelToFloat converts a half-dB index to the sw-config matrix's
// float32 gain representation by reconstructing the full 32-bit float
// from the table's stored high 16 bits (the low 16 bits are always zero
// in the original table).
func mixerLevelToFloat(level int) float32 {
	level = ClampMixerValue(level)
	bits := uint32(swConfigMixerValues[level]) << 16
	return math.Float32frombits(bits)
}

// floatToMixerDB2 decodes an IEEE-754 float32 bit pattern into a dB*2
// value in [MixerMinDB*2, MixerMaxDB*2], mirroring
// scarlett2_float_to_mixer_level's manual exponent/mantissa walk exactly
// (bit-level, not a math.Log10 approximation, since the device's encoding
// isn't a clean pow() inverse at the extremes).
func floatToMixerDB2(bits uint32) int {
	exp := (bits >> 23) & 0xff
	if exp < 0x7e { // abs(v) < 0.5
		return 0
	}
	sign := bits>>31 != 0
	if exp > 0x85 { // abs(v) >= 128.0; 80.0..128.0 is clamped below
		if sign {
			return MixerMinDB * 2
		}
		return MixerMaxDB * 2
	}
	frac := (bits & 0x007fffff) | 0x00800000
	frac >>= 0x95 - exp
	res := int(frac)
	if sign {
		res = -res
	}
	if res < MixerMinDB*2 {
		return MixerMinDB * 2
	}
	if res > MixerMaxDB*2 {
		return MixerMaxDB * 2
	}
	return res
}

// floatToMixerLevel converts a sw-config mixer-cell float32 bit pattern
// directly to a half-dB index (0..MixerMaxValue), matching the kernel's
// `scarlett2_float_to_mixer_level(level) - (SCARLETT2_MIXER_MIN_DB * 2)`
// bias step.
func floatToMixerLevel(bits uint32) int {
	return floatToMixerDB2(bits) - MixerMinDB*2
}

// InvertMixerValue maps a received 16-bit linear gain back to a half-dB
// index: the first k with mixerValues[k] >= v, clamped to MixerMaxValue.
// This is mixerValues' inverse, needed wherever a mirrored gain has to be
// recovered from a wire value rather than produced from one.
func InvertMixerValue(v uint16) int {
	for k, mv := range mixerValues {
		if mv >= v {
			return k
		}
	}
	return MixerMaxValue
}

// unpackMixerMuteBits expands one output bus's sw-config mute bitmask into
// a per-input bool slice, mirroring MixerBind-style bit layout.
func unpackMixerMuteBits(mask uint32, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = mask&(1<<uint(i)) != 0
	}
	return out
}

// newMixerMatrix allocates a zeroed matrix sized for this device's mixer
// port counts (outputs = mix buses, inputs = mix input channels).
func newMixerMatrix(d *Device) *MixerMatrix {
	outs := d.Ports[PortTypeMix].Count[PortIn] // mix bus count (source side of the mux)
	ins := d.Ports[PortTypeMix].Count[PortOut]  // mixer input channel count
	m := &MixerMatrix{Outputs: outs, Inputs: ins}
	m.Level = make([][]int, outs)
	m.Mute = make([][]bool, outs)
	for i := range m.Level {
		m.Level[i] = make([]int, ins)
		m.Mute[i] = make([]bool, ins)
	}
	return m
}

// SetMixerLevel sets one cell of the mixer matrix in the in-memory mirror.
// It sends nothing; Card.SetMixerLevel calls it and then pushes the row.
func (mx *MixerMatrix) SetMixerLevel(out, in, level int) error {
	if out < 0 || out >= mx.Outputs || in < 0 || in >= mx.Inputs {
		return fmt.Errorf("%w: mixer cell (%d,%d) out of range", ErrBadArgument, out, in)
	}
	mx.Level[out][in] = ClampMixerValue(level)
	return nil
}

// encodeSetMix builds the SET_MIX request payload for one mixer output
// bus, applying per-cell mute and the talkback extra slot, mirroring
// scarlett2_usb_set_mix's layout exactly: mix_num, then one u16 per input,
// plus one extra talkback slot if the device has it.
func encodeSetMix(mx *MixerMatrix, out int, hasTalkback bool) []byte {
	n := mx.Inputs
	extra := 0
	if hasTalkback {
		extra = 1
	}
	buf := make([]byte, 2+2*(n+extra))
	binary.LittleEndian.PutUint16(buf[0:2], uint16(out))
	for i := 0; i < n; i++ {
		level := mx.Level[out][i]
		if mx.Mute[out][i] {
			level = 0
		}
		binary.LittleEndian.PutUint16(buf[2+2*i:], mixerValues[ClampMixerValue(level)])
	}
	if hasTalkback {
		binary.LittleEndian.PutUint16(buf[2+2*n:], talkbackMixSlot)
	}
	return buf
}
