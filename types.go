package scarlettd

// PortDirection selects which side of a mux a port count/index applies to,
// and for outputs which sample-rate band is in effect.
type PortDirection int

const (
	PortIn PortDirection = iota
	PortOut
	PortOut44
	PortOut88
	PortOut176
	portDirectionCount
)

// PortType enumerates the hardware port families a device exposes. ADAT2
// and Mix share the numeric value 3 on the wire, matching the kernel
// driver's own aliasing of those two constants -- a device only ever
// populates one of the two roles for that slot.
type PortType int

const (
	PortTypeAnalogue PortType = iota
	PortTypeSPDIF
	PortTypeADAT
	PortTypeMix // == PortTypeADAT2 on the wire
	PortTypePCM
	PortTypeIntMic
	PortTypeTalkback
	portTypeCount
)

// Port identifies a single routable endpoint: a type plus a flat index
// within that type (0-based, not yet offset for display).
type Port struct {
	Type  PortType
	Index int
}

// WireID is a 12-bit hardware port identifier as it appears packed into a
// mux assignment entry (type base | index).
type WireID uint16

// MuxTable holds, for one output band, the source WireID assigned to each
// destination index. Index i corresponds to the i'th output port in
// whatever ordering the device table enumerates output types.
type MuxTable struct {
	Band PortDirection
	Src  []WireID
}

// MixerMatrix is the hardware mixer's input x output gain table, expressed
// in the device's quantized half-dB index space (0-MixerMaxValue). Rows
// are mixer outputs (buses), columns are mixer inputs.
type MixerMatrix struct {
	Outputs int
	Inputs  int
	Level   [][]int // Level[out][in], half-dB index
	Mute    [][]bool
}

// VolumeSet mirrors the device's per-output line volume state plus the
// master/dim/mute buttons shared by devices that have them.
type VolumeSet struct {
	Master   int8 // user-facing 0..127 value, bias re-applied like PerOut
	PerOut   []int8
	SwVolume []int8 // cached software volume, restored when an output flips back from HW to SW control
	SwHwCtrl []bool // true if this output's volume is hardware-controlled
	Muted    []bool
	Dimmed   bool
}

// PreampSwitches mirrors the per-input analogue front-end switches a
// device exposes. Which fields are meaningful for a given input is decided
// by Device's *Bitmask/*Count fields, never inferred from these values.
type PreampSwitches struct {
	Level   []bool // false=Line, true=Inst
	Pad     []bool
	Air     []bool
	Phantom []bool // 48V, one entry per Phantom48VCount group
}

// Meters is one snapshot of the device's level meters, raw values as
// returned by GET_METER_LEVELS.
type Meters struct {
	Values []uint16
}

// AttachState is the lifecycle stage of a Card.
type AttachState int

const (
	StateDetached AttachState = iota
	StateInitializing
	StateReady
	StateDegraded // sw-config present but unusable (e.g. size mismatch)
	StateClosed
)

func (s AttachState) String() string {
	switch s {
	case StateDetached:
		return "detached"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateDegraded:
		return "degraded"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// DirectMonitorMode is the off/mono/stereo direct-monitor setting exposed
// by home-segment devices; Pro devices don't carry this control at all
// (Device.HasDirectMonitor == 0).
type DirectMonitorMode int

const (
	DirectMonitorOff DirectMonitorMode = iota
	DirectMonitorMono
	DirectMonitorStereo
)
