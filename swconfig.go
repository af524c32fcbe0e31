package scarlettd

import (
	"encoding/binary"
	"math"
)

// swconfig.go is the software-configuration manager (component C8): the
// on-device blob that backs symbolic names, stereo-link bits, mixer
// routing and per-output volume for devices that have it (Device.HasSwConfig).
// Grounded on the kernel driver's struct scarlett2_sw_cfg,
// scarlett2_calc_software_cksum, scarlett2_read_software_configs and
// scarlett2_commit_software_config. The blob is a fixed, packed byte
// layout -- not a schema'd message -- so this stays on binary.LittleEndian
// like protocol.go rather than reaching for a serialization library.

const (
	swConfigBase        = 0xec
	swConfigMagic       = 0x3006
	swConfigVersion     = 5
	swConfigMixerInputs = 30
	swConfigMixerOutputs = 12
	swConfigOutputMax   = 26
	swConfigInNameLen   = 12
	swConfigOutNameLen  = 12
	swConfigAllInMax    = 42
	swConfigAllOutMax   = 26
	swConfigAnalogueOutMax = 10

	// swConfigBlobSize is sizeof(struct scarlett2_sw_cfg) in the kernel
	// driver. Offsets below are relative to the start of the blob, i.e.
	// swConfigBase + offset is the device-space address.
	swConfigBlobSize = 0x1a70

	offAllSize      = 0x0000
	offMagic1       = 0x0002
	offVersion      = 0x0004
	offSzof         = 0x0008
	offOutMux       = 0x00f8
	offMixerInMux   = 0x008c
	offMixerInMap   = 0x00aa
	offStereoSw     = 0x01b4
	offMuteSw       = 0x01b8
	offVolume       = 0x01bc
	offInAlias      = 0x03c0
	offOutAlias     = 0x09f0
	offMixer        = 0x0ff0
	offMixerPan     = 0x1684
	offMixerMute    = 0x1950
	offMixerSolo    = 0x1980
	offMixerBind    = 0x19fa
	offChecksum     = 0x1a6c
)

// SoftwareConfig is the decoded software-configuration blob. Callers
// mutate fields in place and call Commit with the byte range that
// changed, which recomputes the checksum and writes just that range back
// -- mirroring scarlett2_commit_software_config's bounds-checked partial
// write instead of rewriting the whole blob on every change.
type SoftwareConfig struct {
	raw []byte // the full swConfigBlobSize-byte image, source of truth for Commit's offset math

	OutMux     []uint8 // output routing, 1-based software index + 1, 0 = unset
	MixerInMux []uint8 // mixer input routing
	MixerInMap []uint8 // mixer input stereo-pair map, bit 0x80 marks stereo
	StereoSw   uint32  // stereo-link bitmask, one bit pair per output
	MuteSw     uint32  // mute bitmask
	Volume     []swVolumeEntry
	InAlias    []string
	OutAlias   []string
	Mixer      [][]float32 // [output][input], gain in dB (0.0 = unity)
	MixerPan   [][]int8
	MixerMute  []uint32
	MixerSolo  []uint32
	MixerBind  uint32
}

type swVolumeEntry struct {
	Volume  int16
	Changed bool
	Flags   uint8
}

// newDefaultSoftwareConfig builds the blob the kernel driver writes the
// first time it finds an uninitialized (szof == 0) software-config area.
func newDefaultSoftwareConfig() *SoftwareConfig {
	raw := make([]byte, swConfigBlobSize)
	binary.LittleEndian.PutUint16(raw[offAllSize:], uint16(swConfigBlobSize+0x0c))
	binary.LittleEndian.PutUint16(raw[offMagic1:], swConfigMagic)
	binary.LittleEndian.PutUint32(raw[offVersion:], swConfigVersion)
	binary.LittleEndian.PutUint16(raw[offSzof:], uint16(swConfigBlobSize))

	sc := decodeSoftwareConfig(raw)
	sc.recomputeChecksum()
	return sc
}

// decodeSoftwareConfig parses a raw swConfigBlobSize-byte image into a
// SoftwareConfig. The raw image is retained so Commit can recompute byte
// offsets for partial writes.
func decodeSoftwareConfig(raw []byte) *SoftwareConfig {
	sc := &SoftwareConfig{raw: raw}

	sc.OutMux = append([]uint8(nil), raw[offOutMux:offOutMux+swConfigOutputMax]...)
	sc.MixerInMux = append([]uint8(nil), raw[offMixerInMux:offMixerInMux+swConfigMixerInputs]...)
	sc.MixerInMap = append([]uint8(nil), raw[offMixerInMap:offMixerInMap+swConfigMixerInputs]...)
	sc.StereoSw = binary.LittleEndian.Uint32(raw[offStereoSw:])
	sc.MuteSw = binary.LittleEndian.Uint32(raw[offMuteSw:])

	sc.Volume = make([]swVolumeEntry, swConfigAnalogueOutMax)
	for i := range sc.Volume {
		off := offVolume + i*4
		sc.Volume[i] = swVolumeEntry{
			Volume:  int16(binary.LittleEndian.Uint16(raw[off:])),
			Changed: raw[off+2] != 0,
			Flags:   raw[off+3],
		}
	}

	sc.InAlias = make([]string, swConfigAllInMax)
	for i := range sc.InAlias {
		off := offInAlias + i*swConfigInNameLen
		sc.InAlias[i] = cStringFromBytes(raw[off : off+swConfigInNameLen])
	}
	sc.OutAlias = make([]string, swConfigAllOutMax)
	for i := range sc.OutAlias {
		off := offOutAlias + i*swConfigOutNameLen
		sc.OutAlias[i] = cStringFromBytes(raw[off : off+swConfigOutNameLen])
	}

	sc.Mixer = make([][]float32, swConfigMixerOutputs)
	sc.MixerPan = make([][]int8, swConfigMixerOutputs)
	for o := 0; o < swConfigMixerOutputs; o++ {
		sc.Mixer[o] = make([]float32, swConfigMixerInputs)
		sc.MixerPan[o] = make([]int8, swConfigMixerInputs)
		for i := 0; i < swConfigMixerInputs; i++ {
			mOff := offMixer + (o*swConfigMixerInputs+i)*4
			sc.Mixer[o][i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[mOff:]))
			pOff := offMixerPan + o*swConfigMixerInputs + i
			sc.MixerPan[o][i] = int8(raw[pOff])
		}
	}

	sc.MixerMute = make([]uint32, swConfigMixerOutputs)
	sc.MixerSolo = make([]uint32, swConfigMixerOutputs)
	for o := 0; o < swConfigMixerOutputs; o++ {
		sc.MixerMute[o] = binary.LittleEndian.Uint32(raw[offMixerMute+o*4:])
		sc.MixerSolo[o] = binary.LittleEndian.Uint32(raw[offMixerSolo+o*4:])
	}
	sc.MixerBind = binary.LittleEndian.Uint32(raw[offMixerBind:])

	return sc
}

// cStringFromBytes trims a NUL-padded fixed-width field to a Go string.
func cStringFromBytes(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// recomputeChecksum rewrites the blob's checksum field with the negated
// sum of every other 32-bit little-endian word, mirroring
// scarlett2_calc_software_cksum exactly (checksum field zeroed first).
func (sc *SoftwareConfig) recomputeChecksum() {
	binary.LittleEndian.PutUint32(sc.raw[offChecksum:], 0)
	var sum int32
	for off := 0; off+4 <= len(sc.raw); off += 4 {
		sum -= int32(binary.LittleEndian.Uint32(sc.raw[off:]))
	}
	binary.LittleEndian.PutUint32(sc.raw[offChecksum:], uint32(sum))
}

// ValidateChecksum reports whether the blob's stored checksum matches the
// recomputed one, i.e. the sum of all words (including checksum) is zero.
func (sc *SoftwareConfig) ValidateChecksum() bool {
	var sum int32
	for off := 0; off+4 <= len(sc.raw); off += 4 {
		sum += int32(binary.LittleEndian.Uint32(sc.raw[off:]))
	}
	return sum == 0
}

// setOutMux writes a new output-mux entry into the backing raw buffer and
// returns the (offset, bytes) pair for Commit.
func (sc *SoftwareConfig) setOutMux(index int, value uint8) (offset, n int) {
	sc.OutMux[index] = value
	off := offOutMux + index
	sc.raw[off] = value
	return off, 1
}

func (sc *SoftwareConfig) setMixerInMux(index int, value uint8) (offset, n int) {
	sc.MixerInMux[index] = value
	off := offMixerInMux + index
	sc.raw[off] = value
	return off, 1
}

func (sc *SoftwareConfig) setMixerInMap(index int, value uint8) (offset, n int) {
	sc.MixerInMap[index] = value
	off := offMixerInMap + index
	sc.raw[off] = value
	return off, 1
}

func (sc *SoftwareConfig) setStereoSw(mask uint32) (offset, n int) {
	sc.StereoSw = mask
	binary.LittleEndian.PutUint32(sc.raw[offStereoSw:], mask)
	return offStereoSw, 4
}

// setVolume writes a software-volume cache entry for one output, mirroring
// scarlett2_volume_ctl_put's sw_cfg->volume[index] update -- the blob keeps
// its own copy of the last software volume so it survives a SW/HW flip.
func (sc *SoftwareConfig) setVolume(index int, volume int16) (offset, n int) {
	sc.Volume[index] = swVolumeEntry{Volume: volume, Changed: true, Flags: sc.Volume[index].Flags}
	off := offVolume + index*4
	binary.LittleEndian.PutUint16(sc.raw[off:], uint16(volume))
	sc.raw[off+2] = 1
	return off, 4
}

func (sc *SoftwareConfig) setMixerBind(mask uint32) (offset, n int) {
	sc.MixerBind = mask
	binary.LittleEndian.PutUint32(sc.raw[offMixerBind:], mask)
	return offMixerBind, 4
}
