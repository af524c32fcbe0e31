package scarlettd

import "encoding/binary"

// refresh.go is the lazy mirror-refresh path consulted by every Control's
// get closure: if the interrupt loop marked a staleness flag, the control
// blocks on a GET_DATA round trip before returning, then clears the flag.
// Grounded on the kernel driver's scarlett2_update_volumes,
// scarlett2_update_line_ctl_switches and
// scarlett2_update_speaker_switch_enum_ctl. Callers hold Card.mu (the
// data_mutex) across the call, matching those functions' own locking.

// refreshVolumes re-reads the per-output volume family: software volume,
// mute, SW/HW switch, the master volume and the mute/dim buttons. An
// output under HW control takes its displayed volume from master_vol and
// its mute from the dim button rather than from its own mute byte.
func (c *Card) refreshVolumes() error {
	d := c.device
	if !d.HasHWVolume {
		return ErrNotSupported
	}
	n := d.CountPorts(PortOut)

	swVol, err := c.getConfigBytes(ConfigLineOutVolume, n)
	if err != nil {
		return err
	}
	mute, err := c.getConfigBytes(ConfigMutes, n)
	if err != nil {
		return err
	}
	swHw, err := c.getConfigBytes(ConfigSwHwSwitch, n)
	if err != nil {
		return err
	}
	masterRaw, err := c.getConfigBytes(ConfigMasterVolume, 1)
	if err != nil {
		return err
	}
	master := wireToUser(int16(binary.LittleEndian.Uint16(masterRaw)))

	dim := false
	if d.ButtonCount > 1 {
		buttons, err := c.getConfigBytes(ConfigButtons, d.ButtonCount)
		if err != nil {
			return err
		}
		dim = buttons[1] != 0 // button index 1 is "Dim"
	}

	for i := 0; i < n; i++ {
		hw := swHw[i] != 0
		c.mirror.volume.SwHwCtrl[i] = hw
		c.mirror.volume.SwVolume[i] = wireToUser(int16(binary.LittleEndian.Uint16(swVol[i*2:])))
		if hw {
			c.mirror.volume.PerOut[i] = master
			c.mirror.volume.Muted[i] = dim
		} else {
			c.mirror.volume.PerOut[i] = c.mirror.volume.SwVolume[i]
			c.mirror.volume.Muted[i] = mute[i] != 0
		}
	}
	c.mirror.volume.Master = master
	c.mirror.volume.Dimmed = dim
	c.mirror.clearVolumeStale()
	return nil
}

// refreshLineControls re-reads the Level/Pad/Air/48V switch families, each
// either as one byte per input or, where the device declares a bitmask
// layout, as a single packed byte.
func (c *Card) refreshLineControls() error {
	d := c.device

	if d.LevelInputCount > 0 {
		if err := c.readSwitchGroup(ConfigLevelSwitch, c.mirror.preamp.Level, d.LevelInputBitmask, d.LevelInputOffset); err != nil {
			return err
		}
	}
	if d.PadInputCount > 0 {
		if err := c.readSwitchGroup(ConfigPadSwitch, c.mirror.preamp.Pad, false, 0); err != nil {
			return err
		}
	}
	if d.AirInputCount > 0 {
		if err := c.readSwitchGroup(ConfigAirSwitch, c.mirror.preamp.Air, d.AirInputBitmask, 0); err != nil {
			return err
		}
	}
	if d.Phantom48VCount > 0 {
		if err := c.readSwitchGroup(Config48VSwitch, c.mirror.preamp.Phantom, false, 0); err != nil {
			return err
		}
	}

	c.mirror.clearLineCtlStale()
	return nil
}

// readSwitchGroup fills dst in place from either a single packed byte or
// one byte per entry, mirroring the asymmetry packBitmask/SetLevel already
// write through.
func (c *Card) readSwitchGroup(item ConfigItem, dst []bool, bitmask bool, offset int) error {
	if bitmask {
		b, err := c.getConfigBytes(item, 1)
		if err != nil {
			return err
		}
		copy(dst, unpackBitmask(b[0], len(dst), offset))
		return nil
	}
	b, err := c.getConfigBytes(item, len(dst))
	if err != nil {
		return err
	}
	for i := range dst {
		dst[i] = b[i] != 0
	}
	return nil
}

// refreshSpeakerState re-reads speaker switching, talkback and direct
// monitor mode. Devices without speaker switching or direct monitor simply
// skip the corresponding read.
func (c *Card) refreshSpeakerState() error {
	d := c.device

	if d.HasSpeakerSwitching {
		enableB, err := c.getConfigBytes(ConfigSpeakerSwitchingSwitch, 1)
		if err != nil {
			return err
		}
		swB, err := c.getConfigBytes(ConfigMainAltSpeakerSwitch, 1)
		if err != nil {
			return err
		}
		if enableB[0] != 0 {
			c.mirror.speaker = int(swB[0]&1) + 1
		} else {
			c.mirror.speaker = 0
		}
		if d.HasTalkback {
			c.mirror.talkback = swB[0]&2 != 0
		}
	}

	if d.HasDirectMonitor > 0 {
		b, err := c.getConfigBytes(ConfigDirectMonitorSwitch, 1)
		if err != nil {
			return err
		}
		if d.HasDirectMonitor > 1 {
			if b[0] < 3 {
				c.mirror.monitor = DirectMonitorMode(b[0])
			} else {
				c.mirror.monitor = DirectMonitorOff
			}
		} else if b[0] != 0 {
			c.mirror.monitor = DirectMonitorMono
		} else {
			c.mirror.monitor = DirectMonitorOff
		}
	}

	c.mirror.clearSpeakerStale()
	return nil
}

// ensureVolumeFresh refreshes the volume family if the interrupt loop has
// marked it stale. Callers must hold Card.mu.
func (c *Card) ensureVolumeFresh() error {
	if c.mirror.takeVolumeStale() {
		return c.refreshVolumes()
	}
	return nil
}

// ensureLineCtlFresh refreshes the Level/Pad/Air/48V switch family if
// stale. Callers must hold Card.mu.
func (c *Card) ensureLineCtlFresh() error {
	if c.mirror.takeLineCtlStale() {
		return c.refreshLineControls()
	}
	return nil
}

// ensureSpeakerFresh refreshes speaker switching, talkback and direct
// monitor state if stale. Callers must hold Card.mu.
func (c *Card) ensureSpeakerFresh() error {
	if c.mirror.takeSpeakerStale() {
		return c.refreshSpeakerState()
	}
	return nil
}

// ensureSyncFresh refreshes the external clock sync flag if stale.
// Callers must hold Card.mu.
func (c *Card) ensureSyncFresh() error {
	if c.mirror.takeSyncStale() {
		return c.refreshSync()
	}
	return nil
}

// refreshSync re-reads the external clock lock state via GET_SYNC. There
// is no configuration-space layout for this value -- it is a direct
// command/response pair, not a GET_DATA item.
func (c *Card) refreshSync() error {
	resp, err := c.transport.Do(CmdGetSync, nil, 1)
	if err != nil {
		return err
	}
	c.mirror.sync = resp[0] != 0
	c.mirror.clearSyncStale()
	return nil
}
