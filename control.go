package scarlettd

import (
	"fmt"
	"strings"
)

// control.go is the typed control dispatcher (component C9): a flat,
// named list of get/set points built once per Card from its Device
// descriptor and backing mirror, the same shape the teacher's
// enumerateControls/readControl/writeControl trio exposed over ALSA's
// numid space, retargeted at this module's own Get/Set closures instead
// of an ioctl.

// ControlType classifies a Control's value domain.
type ControlType int

const (
	ControlTypeBoolean ControlType = iota
	ControlTypeInteger
	ControlTypeEnumerated
)

func (t ControlType) String() string {
	switch t {
	case ControlTypeBoolean:
		return "BOOLEAN"
	case ControlTypeInteger:
		return "INTEGER"
	case ControlTypeEnumerated:
		return "ENUMERATED"
	default:
		return "UNKNOWN"
	}
}

// Control is one named, typed get/set point on a Card. Get/Set close
// over the card's mirror and device descriptor; SetValue does not push
// to hardware by itself for controls that need a hardware write -- those
// Set closures call into Card's commit path themselves.
type Control struct {
	Name  string
	Type  ControlType
	Min   int64
	Max   int64
	Items []string

	Get func() (int64, error)
	Set func(int64) error
}

// GetValue reads the current value of the control.
func (ctl *Control) GetValue() (int64, error) {
	if ctl.Get == nil {
		return 0, fmt.Errorf("%w: control %q is not readable", ErrNotSupported, ctl.Name)
	}
	return ctl.Get()
}

// SetValue writes a value to the control, range-checking it first.
func (ctl *Control) SetValue(value int64) error {
	if ctl.Set == nil {
		return fmt.Errorf("%w: control %q is not writable", ErrNotSupported, ctl.Name)
	}
	switch ctl.Type {
	case ControlTypeInteger:
		if value < ctl.Min || value > ctl.Max {
			return fmt.Errorf("%w: value %d out of range [%d, %d]", ErrBadArgument, value, ctl.Min, ctl.Max)
		}
	case ControlTypeEnumerated:
		if value < 0 || value >= int64(len(ctl.Items)) {
			return fmt.Errorf("%w: enum index %d out of range [0, %d]", ErrBadArgument, value, len(ctl.Items)-1)
		}
	}
	return ctl.Set(value)
}

// GetValueString returns the control's value as a human-readable string.
func (ctl *Control) GetValueString() (string, error) {
	value, err := ctl.GetValue()
	if err != nil {
		return "", err
	}
	switch ctl.Type {
	case ControlTypeBoolean:
		if value == 0 {
			return "Off", nil
		}
		return "On", nil
	case ControlTypeEnumerated:
		if value >= 0 && value < int64(len(ctl.Items)) {
			return ctl.Items[value], nil
		}
		return fmt.Sprintf("Unknown(%d)", value), nil
	default:
		return fmt.Sprintf("%d", value), nil
	}
}

// SetValueByString sets the control's value from a string, accepting the
// same loose boolean/enum spellings as the teacher's original parser.
func (ctl *Control) SetValueByString(valueStr string) error {
	switch ctl.Type {
	case ControlTypeBoolean:
		lower := strings.ToLower(valueStr)
		switch lower {
		case "on", "true", "1", "yes":
			return ctl.SetValue(1)
		case "off", "false", "0", "no":
			return ctl.SetValue(0)
		}
		return fmt.Errorf("%w: invalid boolean value %q", ErrBadArgument, valueStr)

	case ControlTypeEnumerated:
		for i, item := range ctl.Items {
			if strings.EqualFold(item, valueStr) {
				return ctl.SetValue(int64(i))
			}
		}
		var index int64
		if _, err := fmt.Sscanf(valueStr, "%d", &index); err == nil {
			return ctl.SetValue(index)
		}
		return fmt.Errorf("%w: invalid enum value %q (valid: %v)", ErrBadArgument, valueStr, ctl.Items)

	default:
		var value int64
		if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
			return fmt.Errorf("%w: invalid integer value %q", ErrBadArgument, valueStr)
		}
		return ctl.SetValue(value)
	}
}

// String renders a one-line description of the control, independent of
// its current value.
func (ctl *Control) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-40s [%s]", ctl.Name, ctl.Type))
	switch ctl.Type {
	case ControlTypeInteger:
		sb.WriteString(fmt.Sprintf(" range: [%d, %d]", ctl.Min, ctl.Max))
	case ControlTypeEnumerated:
		sb.WriteString(fmt.Sprintf(" items: %v", ctl.Items))
	}
	return sb.String()
}

// DetailedString renders the control's description plus its current value.
func (ctl *Control) DetailedString() string {
	value, err := ctl.GetValueString()
	if err != nil {
		value = fmt.Sprintf("Error: %v", err)
	}
	return fmt.Sprintf("%s = %s", ctl.String(), value)
}

// GetControls returns every control this card exposes, built fresh from
// the current device descriptor and mirror contents.
func (c *Card) GetControls() ([]*Control, error) {
	if c.state == StateDetached || c.state == StateClosed {
		return nil, fmt.Errorf("%w: card not attached", ErrIoTransport)
	}
	return c.controls, nil
}

// FindControl finds a control by exact name.
func (c *Card) FindControl(name string) (*Control, error) {
	controls, err := c.GetControls()
	if err != nil {
		return nil, err
	}
	for _, ctl := range controls {
		if ctl.Name == name {
			return ctl, nil
		}
	}
	return nil, fmt.Errorf("%w: control %q not found", ErrBadArgument, name)
}

// FindControlsMatching returns every control whose name contains pattern
// (case-insensitive).
func (c *Card) FindControlsMatching(pattern string) ([]*Control, error) {
	controls, err := c.GetControls()
	if err != nil {
		return nil, err
	}
	patternLower := strings.ToLower(pattern)
	var matched []*Control
	for _, ctl := range controls {
		if strings.Contains(strings.ToLower(ctl.Name), patternLower) {
			matched = append(matched, ctl)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: no controls matching %q", ErrBadArgument, pattern)
	}
	return matched, nil
}

// buildControls assembles the flat control list for a newly attached
// card from its device descriptor: one boolean control per preamp
// switch the device actually has, the volume/mute/sw-hw/master family,
// mux source and mixer cell controls, level meters, and the handful of
// device-wide switches (48V retain, speaker switching, direct monitor,
// MSD mode) gated on their own Device flags. Control names follow the
// external interface this module presents, not the internal field names
// the mirror uses for them.
func (c *Card) buildControls() []*Control {
	var controls []*Control
	d := c.device

	for i := 0; i < d.LevelInputCount; i++ {
		i := i
		controls = append(controls, &Control{
			Name: fmt.Sprintf("Line In %d Mode Switch", i+1),
			Type: ControlTypeBoolean,
			Get: func() (int64, error) {
				c.mu.Lock()
				defer c.mu.Unlock()
				if err := c.ensureLineCtlFresh(); err != nil {
					return 0, err
				}
				if c.mirror.preamp.Level[i] {
					return 1, nil
				}
				return 0, nil
			},
			Set: func(v int64) error {
				c.mu.Lock()
				w, err := SetLevel(d, &c.mirror.preamp, i, v != 0)
				c.mu.Unlock()
				if err != nil {
					return err
				}
				return c.applyPreampWrite(w)
			},
		})
	}

	for i := 0; i < d.PadInputCount; i++ {
		i := i
		controls = append(controls, &Control{
			Name: fmt.Sprintf("Line In %d Pad Switch", i+1),
			Type: ControlTypeBoolean,
			Get: func() (int64, error) {
				c.mu.Lock()
				defer c.mu.Unlock()
				if err := c.ensureLineCtlFresh(); err != nil {
					return 0, err
				}
				if c.mirror.preamp.Pad[i] {
					return 1, nil
				}
				return 0, nil
			},
			Set: func(v int64) error {
				c.mu.Lock()
				w, err := SetPad(d, &c.mirror.preamp, i, v != 0)
				c.mu.Unlock()
				if err != nil {
					return err
				}
				return c.applyPreampWrite(w)
			},
		})
	}

	for i := 0; i < d.AirInputCount; i++ {
		i := i
		controls = append(controls, &Control{
			Name: fmt.Sprintf("Line In %d Air Switch", i+1),
			Type: ControlTypeBoolean,
			Get: func() (int64, error) {
				c.mu.Lock()
				defer c.mu.Unlock()
				if err := c.ensureLineCtlFresh(); err != nil {
					return 0, err
				}
				if c.mirror.preamp.Air[i] {
					return 1, nil
				}
				return 0, nil
			},
			Set: func(v int64) error {
				c.mu.Lock()
				w, err := SetAir(d, &c.mirror.preamp, i, v != 0)
				c.mu.Unlock()
				if err != nil {
					return err
				}
				return c.applyPreampWrite(w)
			},
		})
	}

	for i := 0; i < d.Phantom48VCount; i++ {
		i := i
		controls = append(controls, &Control{
			Name: fmt.Sprintf("Line 48V Switch [%d]", i+1),
			Type: ControlTypeBoolean,
			Get: func() (int64, error) {
				c.mu.Lock()
				defer c.mu.Unlock()
				if err := c.ensureLineCtlFresh(); err != nil {
					return 0, err
				}
				if c.mirror.preamp.Phantom[i] {
					return 1, nil
				}
				return 0, nil
			},
			Set: func(v int64) error {
				c.mu.Lock()
				w, err := SetPhantom(d, &c.mirror.preamp, i, v != 0)
				c.mu.Unlock()
				if err != nil {
					return err
				}
				return c.applyPreampWrite(w)
			},
		})
	}

	if d.HasRetain48V {
		controls = append(controls, &Control{
			Name: "Analogue In 48V Retain",
			Type: ControlTypeBoolean,
			Get: func() (int64, error) {
				c.mu.Lock()
				defer c.mu.Unlock()
				if c.mirror.retain48v {
					return 1, nil
				}
				return 0, nil
			},
			Set: func(v int64) error {
				c.mu.Lock()
				c.mirror.retain48v = v != 0
				c.mu.Unlock()
				return c.setConfigValue(ConfigRetain48V, 0, uint32(v))
			},
		})
	}

	if d.HasMSDMode {
		controls = append(controls, &Control{
			Name: "MSD Mode",
			Type: ControlTypeBoolean,
			Get: func() (int64, error) {
				c.mu.Lock()
				defer c.mu.Unlock()
				if c.mirror.msdMode {
					return 1, nil
				}
				return 0, nil
			},
			Set: func(v int64) error {
				c.mu.Lock()
				c.mirror.msdMode = v != 0
				c.mu.Unlock()
				return c.setConfigValue(ConfigMSDSwitch, 0, uint32(v))
			},
		})
	}

	if d.HasSpeakerSwitching {
		controls = append(controls, &Control{
			Name: "Speaker Switching",
			Type: ControlTypeEnumerated,
			Items: []string{"Off", "Main", "Alt"},
			Get: func() (int64, error) {
				c.mu.Lock()
				defer c.mu.Unlock()
				if err := c.ensureSpeakerFresh(); err != nil {
					return 0, err
				}
				return int64(c.mirror.speaker), nil
			},
			Set: func(v int64) error {
				c.mu.Lock()
				c.mirror.speaker = int(v)
				enable := uint32(0)
				if v != 0 {
					enable = 1
				}
				sw := uint32(0)
				if v == 2 {
					sw = 1
				}
				if c.mirror.talkback {
					sw |= 2
				}
				c.mu.Unlock()
				if err := c.setConfigValue(ConfigSpeakerSwitchingSwitch, 0, enable); err != nil {
					return err
				}
				return c.setConfigValue(ConfigMainAltSpeakerSwitch, 0, sw)
			},
		})
	}

	if d.HasDirectMonitor > 0 {
		items := []string{"Off", "On"}
		if d.HasDirectMonitor == 2 {
			items = []string{"Off", "Mono", "Stereo"}
		}
		controls = append(controls, &Control{
			Name:  "Direct Monitor",
			Type:  ControlTypeEnumerated,
			Items: items,
			Get: func() (int64, error) {
				c.mu.Lock()
				defer c.mu.Unlock()
				if err := c.ensureSpeakerFresh(); err != nil {
					return 0, err
				}
				return int64(c.mirror.monitor), nil
			},
			Set: func(v int64) error {
				c.mu.Lock()
				c.mirror.monitor = DirectMonitorMode(v)
				c.mu.Unlock()
				return c.setConfigValue(ConfigDirectMonitorSwitch, 0, uint32(v))
			},
		})
	}

	if d.HasHWVolume {
		controls = append(controls, c.buildVolumeControls()...)
	}
	if d.HasMux {
		controls = append(controls, c.buildMuxControls()...)
	}
	if d.HasMixer {
		controls = append(controls, c.buildMixerControls()...)
	}
	if d.HasMeters {
		controls = append(controls, c.buildMeterControls()...)
	}
	controls = append(controls, &Control{
		Name: "Sync Status",
		Type: ControlTypeBoolean,
		Get: func() (int64, error) {
			c.mu.Lock()
			defer c.mu.Unlock()
			if err := c.ensureSyncFresh(); err != nil {
				return 0, err
			}
			if c.mirror.sync {
				return 1, nil
			}
			return 0, nil
		},
	})

	if d.GainHalosCount > 0 {
		controls = append(controls, &Control{
			Name: "LED Custom Colors",
			Type: ControlTypeBoolean,
			Get: func() (int64, error) {
				c.mu.Lock()
				defer c.mu.Unlock()
				if c.mirror.halo.Custom {
					return 1, nil
				}
				return 0, nil
			},
			Set: func(v int64) error {
				c.mu.Lock()
				c.mirror.halo.Custom = v != 0
				raw := encodeHaloEnable(c.mirror.halo.Custom)
				c.mu.Unlock()
				return c.setConfigValue(ConfigGainHaloEnable, 0, uint32(raw))
			},
		})

		levelNames := []string{"Clip", "Pre-Clip", "Good"}
		for lvl := 0; lvl < GainHaloLevelCount; lvl++ {
			lvl := lvl
			controls = append(controls, &Control{
				Name: fmt.Sprintf("LED %s Color", levelNames[lvl]),
				Type: ControlTypeInteger,
				Min:  0,
				Max:  GainHaloColorMax,
				Get: func() (int64, error) {
					c.mu.Lock()
					defer c.mu.Unlock()
					return int64(c.mirror.halo.Levels[lvl]), nil
				},
				Set: func(v int64) error {
					c.mu.Lock()
					color, err := c.mirror.halo.SetLevel(lvl, int(v))
					c.mu.Unlock()
					if err != nil {
						return err
					}
					return c.setConfigValue(ConfigGainHaloLevels, lvl, uint32(color))
				},
			})
		}

		for i := 0; i < d.GainHalosCount; i++ {
			i := i
			controls = append(controls, &Control{
				Name: fmt.Sprintf("LED %d Custom Color", i+1),
				Type: ControlTypeInteger,
				Min:  0,
				Max:  GainHaloColorMax,
				Get: func() (int64, error) {
					c.mu.Lock()
					defer c.mu.Unlock()
					return int64(c.mirror.halo.LEDs[i]), nil
				},
				Set: func(v int64) error {
					c.mu.Lock()
					color, err := c.mirror.halo.SetLED(i, int(v))
					c.mu.Unlock()
					if err != nil {
						return err
					}
					return c.setConfigValue(ConfigGainHaloLEDs, i, uint32(color))
				},
			})
		}
	}

	if d.HasTalkback {
		controls = append(controls, &Control{
			Name: "Talkback Switching",
			Type: ControlTypeBoolean,
			Get: func() (int64, error) {
				c.mu.Lock()
				defer c.mu.Unlock()
				if err := c.ensureSpeakerFresh(); err != nil {
					return 0, err
				}
				if c.mirror.talkback {
					return 1, nil
				}
				return 0, nil
			},
			Set: func(v int64) error {
				c.mu.Lock()
				c.mirror.talkback = v != 0
				sw := uint32(0)
				if c.mirror.speaker == 2 {
					sw = 1
				}
				if v != 0 {
					sw |= 2
				}
				c.mu.Unlock()
				return c.setConfigValue(ConfigMainAltSpeakerSwitch, 0, sw)
			},
		})

		mixOuts := d.Ports[PortTypeMix].Count[PortIn]
		for mix := 0; mix < mixOuts; mix++ {
			mix := mix
			controls = append(controls, &Control{
				Name: fmt.Sprintf("Mix %c Talkback", 'A'+mix),
				Type: ControlTypeBoolean,
				Get: func() (int64, error) {
					c.mu.Lock()
					defer c.mu.Unlock()
					if c.mirror.mixTalkback&(1<<uint(mix)) != 0 {
						return 1, nil
					}
					return 0, nil
				},
				Set: func(v int64) error {
					c.mu.Lock()
					if v != 0 {
						c.mirror.mixTalkback |= 1 << uint(mix)
					} else {
						c.mirror.mixTalkback &^= 1 << uint(mix)
					}
					mask := c.mirror.mixTalkback
					c.mu.Unlock()
					return c.setConfigValue(ConfigMixTalkback, 0, uint32(mask))
				},
			})
		}
	}

	return controls
}

// buildVolumeControls assembles the Master/line-volume/mute/SW-HW family
// for the device's analogue outputs, grounded on
// scarlett2_add_line_out_ctls and scarlett2_add_mute_ctls. Only analogue
// outputs get these controls -- PortTypeAnalogue is always the first port
// type in a device's table, so its flat PortOut index already matches the
// 0-based index the volume/mute configuration items expect.
func (c *Card) buildVolumeControls() []*Control {
	d := c.device
	var controls []*Control

	if d.LineOutHWVol {
		controls = append(controls, &Control{
			Name: "Master HW Playback Volume",
			Type: ControlTypeInteger,
			Min:  0,
			Max:  127,
			Get: func() (int64, error) {
				c.mu.Lock()
				defer c.mu.Unlock()
				if err := c.ensureVolumeFresh(); err != nil {
					return 0, err
				}
				return int64(c.mirror.volume.Master), nil
			},
		})
	}

	analogueOuts := d.Ports[PortTypeAnalogue].Count[PortOut]
	for i := 0; i < analogueOuts; i++ {
		i := i

		base := fmt.Sprintf("Line %02d", i+1)
		if special := d.namedPort(PortOut, PortTypeAnalogue, i); special != "" {
			base = fmt.Sprintf("%s (%s)", base, special)
		}

		controls = append(controls, &Control{
			Name: base + " Playback Volume",
			Type: ControlTypeInteger,
			Min:  0,
			Max:  127,
			Get: func() (int64, error) {
				c.mu.Lock()
				defer c.mu.Unlock()
				if err := c.ensureVolumeFresh(); err != nil {
					return 0, err
				}
				return int64(c.mirror.volume.PerOut[i]), nil
			},
			Set: func(v int64) error {
				c.mu.Lock()
				w, err := SetVolume(d, &c.mirror.volume, i, int8(v))
				if err != nil {
					c.mu.Unlock()
					return err
				}
				var sw []swWrite
				if c.swConfig != nil {
					off, n := c.swConfig.setVolume(i, int16(w.Value))
					sw = []swWrite{{off, n}}
				}
				c.mu.Unlock()

				if err := c.applyVolumeWrite(w); err != nil {
					return err
				}
				if len(sw) > 0 {
					return c.commitSoftwareConfig(sw)
				}
				return nil
			},
		})

		controls = append(controls, &Control{
			Name: fmt.Sprintf("Line %02d Mute Playback Switch", i+1),
			Type: ControlTypeBoolean,
			Get: func() (int64, error) {
				c.mu.Lock()
				defer c.mu.Unlock()
				if err := c.ensureVolumeFresh(); err != nil {
					return 0, err
				}
				if c.mirror.volume.Muted[i] {
					return 1, nil
				}
				return 0, nil
			},
			Set: func(v int64) error {
				c.mu.Lock()
				w, err := SetMute(d, &c.mirror.volume, i, v != 0)
				c.mu.Unlock()
				if err != nil {
					return err
				}
				return c.applyVolumeWrite(w)
			},
		})

		if d.LineOutHWVol {
			controls = append(controls, &Control{
				Name:  fmt.Sprintf("Line Out %02d Volume Control Playback Enum", i+1),
				Type:  ControlTypeEnumerated,
				Items: []string{"SW", "HW"},
				Get: func() (int64, error) {
					c.mu.Lock()
					defer c.mu.Unlock()
					if c.mirror.volume.SwHwCtrl[i] {
						return 1, nil
					}
					return 0, nil
				},
				Set: func(v int64) error {
					c.mu.Lock()
					ws, err := SetSwHw(d, &c.mirror.volume, i, v != 0)
					c.mu.Unlock()
					if err != nil {
						return err
					}
					return c.applyVolumeWrites(ws)
				},
			})
		}
	}

	return controls
}

// buildMuxControls assembles one "<port> Source" enum per output port,
// gated to the default sample-rate band, grounded on
// scarlett2_usb_get_mux/scarlett2_usb_set_mux and ports.go's port algebra.
func (c *Card) buildMuxControls() []*Control {
	d := c.device
	var controls []*Control

	outCount := d.CountPorts(PortOut)
	inCount := d.CountPorts(PortIn)
	items := make([]string, inCount+1)
	items[0] = "Off"
	for i := 0; i < inCount; i++ {
		items[i+1] = d.FormatPortName(PortIn, i)
	}

	for dst := 0; dst < outCount; dst++ {
		dst := dst
		controls = append(controls, &Control{
			Name:  fmt.Sprintf("%s Source", d.FormatPortName(PortOut, dst)),
			Type:  ControlTypeEnumerated,
			Items: items,
			Get: func() (int64, error) {
				c.mu.Lock()
				defer c.mu.Unlock()
				mux := c.mirror.mux[PortOut]
				if mux == nil || dst >= len(mux.Src) {
					return 0, nil
				}
				idx := d.PortIndexFor(PortIn, mux.Src[dst])
				if idx < 0 {
					return 0, nil
				}
				return int64(idx + 1), nil
			},
			Set: func(v int64) error {
				srcWire := WireID(0)
				if v > 0 {
					srcWire = d.WireIDFor(PortIn, int(v-1))
				}
				return c.SetRoute(PortOut, dst, srcWire)
			},
		})
	}

	return controls
}

// buildMixerControls assembles the per-cell "Mix <A..L> Input NN Playback
// Volume/Switch" pairs, grounded on scarlett2_usb_set_mix and this
// module's own mixer matrix (mixer.go); there is no GET_MIX on the wire,
// so Get always reads the mirror seeded at attach time.
func (c *Card) buildMixerControls() []*Control {
	d := c.device
	var controls []*Control

	outs := d.Ports[PortTypeMix].Count[PortIn]
	ins := d.Ports[PortTypeMix].Count[PortOut]

	for out := 0; out < outs; out++ {
		out := out
		for in := 0; in < ins; in++ {
			in := in

			controls = append(controls, &Control{
				Name: fmt.Sprintf("Mix %c Input %02d Playback Volume", 'A'+out, in+1),
				Type: ControlTypeInteger,
				Min:  0,
				Max:  MixerMaxValue,
				Get: func() (int64, error) {
					c.mu.Lock()
					defer c.mu.Unlock()
					if c.mirror.mixer == nil {
						c.mirror.mixer = newMixerMatrix(d)
					}
					return int64(c.mirror.mixer.Level[out][in]), nil
				},
				Set: func(v int64) error {
					return c.SetMixerLevel(out, in, int(v))
				},
			})

			controls = append(controls, &Control{
				Name: fmt.Sprintf("Mix %c Input %02d Playback Switch", 'A'+out, in+1),
				Type: ControlTypeBoolean,
				Get: func() (int64, error) {
					c.mu.Lock()
					defer c.mu.Unlock()
					if c.mirror.mixer == nil {
						c.mirror.mixer = newMixerMatrix(d)
					}
					if c.mirror.mixer.Mute[out][in] {
						return 1, nil
					}
					return 0, nil
				},
				Set: func(v int64) error {
					return c.SetMixerMute(out, in, v != 0)
				},
			})
		}
	}

	return controls
}

// buildMeterControls assembles one "Level Meter NN" integer control per
// channel GET_METER_LEVELS reports; the kernel exposes these as a single
// multi-value ALSA control, a shape this module's scalar Control can't
// represent, so each channel gets its own named point instead.
func (c *Card) buildMeterControls() []*Control {
	var controls []*Control
	for i := 0; i < meterCount; i++ {
		i := i
		controls = append(controls, &Control{
			Name: fmt.Sprintf("Level Meter %02d", i+1),
			Type: ControlTypeInteger,
			Min:  0,
			Max:  65535,
			Get: func() (int64, error) {
				m, err := c.RefreshMeters()
				if err != nil {
					return 0, err
				}
				if i >= len(m.Values) {
					return 0, nil
				}
				return int64(m.Values[i]), nil
			},
		})
	}
	return controls
}
