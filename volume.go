package scarlettd

import "fmt"

// volume.go is the line-output volume/mute/access-mode family, present
// only on devices with Device.HasHWVolume (and, for the SW/HW switch
// itself, Device.LineOutHWVol). Grounded on the kernel driver's
// scarlett2_volume_ctl_get/put, scarlett2_mute_ctl_get/put and
// scarlett2_sw_hw_enum_ctl_get/put -- the access-mode resync in SetSwHw
// below is scarlett2_sw_hw_enum_ctl_put line for line.

// volumeBias is the on-wire offset: a user-facing volume of 0..127 (0dB at
// 127, full attenuation at 0) is stored on the wire as user-volumeBias, a
// signed value in [-127, 0].
const volumeBias = 127

// VolumeWrite names one configuration-space value a volume-family change
// needs written back to hardware.
type VolumeWrite struct {
	Item  ConfigItem
	Index int
	Value uint16
}

// biasToWire removes the bias, producing the signed on-wire value.
func biasToWire(user int8) int16 {
	return int16(user) - volumeBias
}

// wireToUser re-applies the bias to a signed on-wire value, clamping the
// result into [0, 127] exactly as scarlett2_update_volumes does with its
// clamp(... + SCARLETT2_VOLUME_BIAS, 0, 127) step.
func wireToUser(raw int16) int8 {
	v := int(raw) + volumeBias
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return int8(v)
}

// SetVolume sets one output's software volume in the mirror. It fails
// with ErrNotSupported if the output's volume is currently hardware-
// controlled -- invariant 8's rule that vol[i] is read-only while
// sw_hw[i] selects HW.
func SetVolume(d *Device, v *VolumeSet, out int, level int8) (VolumeWrite, error) {
	if !d.HasHWVolume {
		return VolumeWrite{}, ErrNotSupported
	}
	if out < 0 || out >= len(v.PerOut) {
		return VolumeWrite{}, ErrBadArgument
	}
	if out < len(v.SwHwCtrl) && v.SwHwCtrl[out] {
		return VolumeWrite{}, fmt.Errorf("%w: output %d volume is hardware-controlled", ErrNotSupported, out)
	}
	if level < 0 {
		level = 0
	} else if level > 127 {
		level = 127
	}
	v.PerOut[out] = level
	v.SwVolume[out] = level
	return VolumeWrite{Item: ConfigLineOutVolume, Index: out, Value: uint16(biasToWire(level))}, nil
}

// SetMute sets one output's mute switch in the mirror.
func SetMute(d *Device, v *VolumeSet, out int, muted bool) (VolumeWrite, error) {
	if !d.HasHWVolume {
		return VolumeWrite{}, ErrNotSupported
	}
	if out < 0 || out >= len(v.Muted) {
		return VolumeWrite{}, ErrBadArgument
	}
	v.Muted[out] = muted
	value := uint16(0)
	if muted {
		value = 1
	}
	return VolumeWrite{Item: ConfigMutes, Index: out, Value: value}, nil
}

// SetSwHw flips one output's volume-control access mode. Switching to HW
// resyncs vol[i]/mute[i] from the master volume and dim switch; switching
// back to SW restores the software volume cached before the flip. The
// returned writes must be pushed in order -- the volume value first, then
// the switch itself -- matching the kernel's write sequence exactly.
func SetSwHw(d *Device, v *VolumeSet, out int, hw bool) ([]VolumeWrite, error) {
	if !d.LineOutHWVol {
		return nil, ErrNotSupported
	}
	if out < 0 || out >= len(v.SwHwCtrl) {
		return nil, ErrBadArgument
	}

	if hw {
		v.PerOut[out] = v.Master
		v.Muted[out] = v.Dimmed
	} else {
		v.PerOut[out] = v.SwVolume[out]
	}

	writes := []VolumeWrite{
		{Item: ConfigLineOutVolume, Index: out, Value: uint16(biasToWire(v.PerOut[out]))},
	}

	v.SwHwCtrl[out] = hw
	swHwValue := uint16(0)
	if hw {
		swHwValue = 1
	}
	writes = append(writes, VolumeWrite{Item: ConfigSwHwSwitch, Index: out, Value: swHwValue})
	return writes, nil
}
