package scarlettd

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
)

// card.go is the lifecycle owner (component C12): Attach/Detach, the
// cargo-cult init handshake, and the glue wiring Device lookup,
// Transport, mirror and SoftwareConfig together into one handle. Grounded
// on the kernel driver's scarlett2_init_mixer_data/scarlett2_usb_init
// and, for configuration-space I/O, scarlett2_usb_get_config/
// scarlett2_usb_set_config/scarlett2_usb_get/scarlett2_usb_set.

// sw-config chunk size for GET_DATA/SET_DATA transfers, the kernel's
// literal SCARLETT2_SW_CONFIG_PACKET_SIZE. The distilled description of
// this protocol says "<=1024 bytes"; 992 is what the reference driver
// actually sends, and is what this module follows.
const swConfigPacketSize = 992

// cardTransport is the slice of *Transport's methods Card depends on. The
// seam exists so tests can drive Card's routing/mixer/init logic against a
// fake without opening a real USB device; production code always supplies
// a *Transport, which satisfies this interface trivially.
type cardTransport interface {
	Do(cmd Command, payload []byte, expectSize int) ([]byte, error)
	InitProbe() ([]byte, error)
	ResetSeq(v uint16)
	ReadInterrupt(buf []byte) (int, error)
	Close() error
}

// Card is an attached Scarlett device: its static descriptor, the
// transport beneath it, the in-memory state mirror, and (if present) the
// decoded software-configuration blob.
type Card struct {
	mu sync.Mutex

	device    *Device
	transport cardTransport
	mirror    *mirror
	swConfig  *SoftwareConfig
	state     AttachState
	controls  []*Control

	saver    *saveScheduler
	stopCh   chan struct{}
	notifyMu sync.Mutex // guards notify only, so the event loop never takes mu
	notify   func(EventKind)
}

// Attach opens the USB transport for the given vendor/product, runs the
// cargo-cult init handshake, loads the software-config blob where the
// device has one, and returns a ready (or degraded) Card. The volume,
// line-control, speaker and sync state start out stale, so the first Get
// of each reads it back from the device; the mux table is not read back.
func Attach(vendor, product uint16) (*Card, error) {
	device, ok := LookupDevice(vendor, product)
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized device %04x:%04x", ErrNotSupported, vendor, product)
	}

	t, err := OpenTransport(vendor, product)
	if err != nil {
		return nil, err
	}

	c := &Card{
		device:    device,
		transport: t,
		mirror:    newMirror(device),
		state:     StateInitializing,
		stopCh:    make(chan struct{}),
	}
	c.saver = newSaveScheduler(c.saveConfig)

	if err := c.initHandshake(); err != nil {
		t.Close()
		return nil, err
	}

	if device.HasSwConfig {
		if err := c.loadSoftwareConfig(); err != nil {
			Logger.Warn().Err(err).Str("device", device.Name).Msg("software config unavailable, running degraded")
			c.state = StateDegraded
		}
	}

	c.mirror.markVolumeStale()
	c.mirror.markLineCtlStale()
	c.mirror.markSpeakerStale()
	c.mirror.markSyncStale()

	c.controls = c.buildControls()
	if c.state == StateInitializing {
		c.state = StateReady
	}

	go c.runEventLoop(c.stopCh, func(k EventKind) {
		c.notifyMu.Lock()
		n := c.notify
		c.notifyMu.Unlock()
		if n != nil {
			n(k)
		}
	})

	Logger.Info().Str("device", device.Name).Str("state", c.state.String()).Msg("attached")
	return c, nil
}

// initHandshake runs the documented three-step cargo-cult sequence: the
// 24-byte bRequestInit probe, INIT_1 with seq pinned to 1, and INIT_2
// with seq reset to 1 again (not continued), expecting an 84-byte reply.
func (c *Card) initHandshake() error {
	if _, err := c.transport.InitProbe(); err != nil {
		return err
	}

	c.transport.ResetSeq(1)
	if _, err := c.transport.Do(CmdInit1, nil, 0); err != nil {
		return fmt.Errorf("init_1: %w", err)
	}

	c.transport.ResetSeq(1)
	if _, err := c.transport.Do(CmdInit2, nil, 84); err != nil {
		return fmt.Errorf("init_2: %w", err)
	}

	return nil
}

// Close detaches the card: stops the event loop, cancels any pending
// NVRAM save, and releases the transport.
func (c *Card) Close() error {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return nil
	}
	c.state = StateClosed
	c.mu.Unlock()

	close(c.stopCh)
	c.saver.Cancel()
	return c.transport.Close()
}

// Device returns this card's static descriptor.
func (c *Card) Device() *Device { return c.device }

// State returns the card's current lifecycle stage.
func (c *Card) State() AttachState { return c.state }

// SetNotify installs the callback fired for every dispatched interrupt
// event. Passing nil disables notification without stopping the
// underlying read loop.
func (c *Card) SetNotify(fn func(EventKind)) {
	c.notifyMu.Lock()
	c.notify = fn
	c.notifyMu.Unlock()
}

// --- configuration-space I/O -----------------------------------------

// getDataChunked performs a chunked GET_DATA read of bytes starting at a
// raw device-space offset, following scarlett2_usb_get's 992-byte
// chunking loop.
func (c *Card) getDataChunked(offset, bytes int) ([]byte, error) {
	out := make([]byte, bytes)
	for i := 0; i < bytes; {
		chunk := bytes - i
		if chunk > swConfigPacketSize {
			chunk = swConfigPacketSize
		}
		req := make([]byte, 8)
		binary.LittleEndian.PutUint32(req[0:4], uint32(offset+i))
		binary.LittleEndian.PutUint32(req[4:8], uint32(chunk))

		resp, err := c.transport.Do(CmdGetData, req, chunk)
		if err != nil {
			return nil, err
		}
		copy(out[i:i+chunk], resp)
		i += chunk
	}
	return out, nil
}

// setDataChunked performs a chunked SET_DATA write of data to a raw
// device-space offset, following scarlett2_usb_set's chunking loop.
func (c *Card) setDataChunked(offset int, data []byte) error {
	for i := 0; i < len(data); {
		chunk := len(data) - i
		if chunk > swConfigPacketSize {
			chunk = swConfigPacketSize
		}
		req := make([]byte, 8+chunk)
		binary.LittleEndian.PutUint32(req[0:4], uint32(offset+i))
		binary.LittleEndian.PutUint32(req[4:8], uint32(chunk))
		copy(req[8:], data[i:i+chunk])

		if _, err := c.transport.Do(CmdSetData, req, 0); err != nil {
			return err
		}
		i += chunk
	}
	return nil
}

// getConfigBytes reads count*item.Size bytes from the device's fixed
// configuration space for one ConfigItem.
func (c *Card) getConfigBytes(item ConfigItem, count int) ([]byte, error) {
	layout := c.device.Config[item]
	if layout.Size == 0 {
		return nil, fmt.Errorf("%w: device has no config item %v", ErrNotSupported, item)
	}
	return c.getDataChunked(int(layout.Offset), int(layout.Size)*count)
}

// setConfigValue writes a single configuration-space value for the
// indexed entry of item, activates it if required, and arms the
// deferred NVRAM save -- scarlett2_usb_set_config end to end.
func (c *Card) setConfigValue(item ConfigItem, index int, value uint32) error {
	layout := c.device.Config[item]
	if layout.Size == 0 {
		return fmt.Errorf("%w: device has no config item %v", ErrNotSupported, item)
	}

	c.saver.Cancel()

	req := make([]byte, 12)
	binary.LittleEndian.PutUint32(req[0:4], uint32(layout.Offset)+uint32(index)*uint32(layout.Size))
	binary.LittleEndian.PutUint32(req[4:8], uint32(layout.Size))
	binary.LittleEndian.PutUint32(req[8:12], value)
	if _, err := c.transport.Do(CmdSetData, req[:8+int(layout.Size)], 0); err != nil {
		return err
	}

	if layout.Activate > 0 {
		act := make([]byte, 4)
		binary.LittleEndian.PutUint32(act, uint32(layout.Activate))
		if _, err := c.transport.Do(CmdDataCmd, act, 0); err != nil {
			return err
		}
	}

	c.saver.Arm()
	return nil
}

// saveConfig issues the DATA_CMD(CONFIG_SAVE) that actually commits the
// pending configuration-space writes to NVRAM, the deferred action
// saveScheduler fires after its coalescing window.
func (c *Card) saveConfig() {
	req := make([]byte, 4)
	binary.LittleEndian.PutUint32(req, uint32(CmdConfigSave))
	if _, err := c.transport.Do(CmdDataCmd, req, 0); err != nil {
		Logger.Warn().Err(err).Msg("config save failed")
	}
}

// applyPreampWrite pushes one PreampWrite to configuration space.
func (c *Card) applyPreampWrite(w PreampWrite) error {
	return c.setConfigValue(w.Item, w.Index, uint32(w.Value))
}

// applyVolumeWrite pushes one VolumeWrite to configuration space.
func (c *Card) applyVolumeWrite(w VolumeWrite) error {
	return c.setConfigValue(w.Item, w.Index, uint32(w.Value))
}

// applyVolumeWrites pushes a sequence of VolumeWrite values in order,
// stopping at the first failure -- used by the SW/HW access-mode flip,
// which must write the volume value before the switch itself.
func (c *Card) applyVolumeWrites(ws []VolumeWrite) error {
	for _, w := range ws {
		if err := c.applyVolumeWrite(w); err != nil {
			return err
		}
	}
	return nil
}

// --- software configuration -------------------------------------------

// loadSoftwareConfig reads the sw-config header, then either builds and
// uploads a default blob (szof == 0), reads and validates the full blob,
// or falls back to degraded mode on a size/field mismatch, following
// scarlett2_read_software_configs.
func (c *Card) loadSoftwareConfig() error {
	szofBytes, err := c.getDataChunked(swConfigBase+offSzof, 2)
	if err != nil {
		return err
	}
	szof := binary.LittleEndian.Uint16(szofBytes)

	if szof == 0 {
		sc := newDefaultSoftwareConfig()
		if err := c.setDataChunked(swConfigBase, sc.raw); err != nil {
			return err
		}
		c.swConfig = sc
		return nil
	}

	if int(szof) != swConfigBlobSize {
		return fmt.Errorf("%w: sw-config size %d != expected %d", ErrProtocolMismatch, szof, swConfigBlobSize)
	}

	raw, err := c.getDataChunked(swConfigBase, swConfigBlobSize)
	if err != nil {
		return err
	}
	sc := decodeSoftwareConfig(raw)

	allSize := binary.LittleEndian.Uint16(raw[offAllSize:])
	magic1 := binary.LittleEndian.Uint16(raw[offMagic1:])
	version := binary.LittleEndian.Uint32(raw[offVersion:])
	if int(allSize) != swConfigBlobSize+0x0c || magic1 != swConfigMagic || version != swConfigVersion {
		return fmt.Errorf("%w: sw-config header validation failed", ErrProtocolMismatch)
	}

	c.swConfig = sc
	c.seedMixerFromSoftwareConfig()
	return nil
}

// seedMixerFromSoftwareConfig initializes the mirror's mixer matrix from
// the sw-config blob's own F32LE gain table, so mixer controls read real
// values immediately after attach instead of defaulting to zero gain --
// the wire protocol has no GET_MIX to seed from otherwise.
func (c *Card) seedMixerFromSoftwareConfig() {
	if !c.device.HasMixer || c.swConfig == nil {
		return
	}
	mx := newMixerMatrix(c.device)
	for o := 0; o < mx.Outputs && o < len(c.swConfig.Mixer); o++ {
		for i := 0; i < mx.Inputs && i < len(c.swConfig.Mixer[o]); i++ {
			bits := math.Float32bits(c.swConfig.Mixer[o][i])
			mx.Level[o][i] = floatToMixerLevel(bits)
		}
		if o < len(c.swConfig.MixerMute) {
			mx.Mute[o] = unpackMixerMuteBits(c.swConfig.MixerMute[o], mx.Inputs)
		}
	}
	c.mirror.mixer = mx
}

// commitSoftwareConfig passes each byte range a mutation produced through
// SoftwareConfig.Commit (which recomputes the checksum), pushes the range
// and the checksum field back to the device via chunked SET_DATA, then
// arms the deferred NVRAM save.
func (c *Card) commitSoftwareConfig(writes []swWrite) error {
	if c.swConfig == nil {
		return fmt.Errorf("%w: no software config loaded", ErrNotSupported)
	}
	c.saver.Cancel()
	for _, w := range writes {
		ranges, err := c.swConfig.Commit(w.Offset, w.N)
		if err != nil {
			return err
		}
		for _, r := range ranges {
			if err := c.setDataChunked(swConfigBase+r.Offset, c.swConfig.raw[r.Offset:r.Offset+r.N]); err != nil {
				return err
			}
		}
	}
	c.saver.Arm()
	return nil
}

// --- routing and mixer entry points ------------------------------------

// muxWireBands lists the three real sample-rate bands a SET_MUX write
// fans out to, mirroring scarlett2_usb_set_mux's direction = OUT_44..OUT_176
// loop. dir/PortOut, by contrast, is the band-independent index space
// buildMuxControls and the mirror's single mux table use.
var muxWireBands = [...]PortDirection{PortOut44, PortOut88, PortOut176}

// SetRoute assigns srcWire as the source for one destination port,
// pushes the resulting SET_MUX request to every sample-rate band, and (if
// this device has a software config) syncs the routing decision into it.
func (c *Card) SetRoute(dir PortDirection, dstIndex int, srcWire WireID) error {
	if !c.device.HasMux {
		return ErrNotSupported
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	mux, ok := c.mirror.mux[dir]
	if !ok {
		mux = &MuxTable{Band: dir, Src: make([]WireID, c.device.CountPorts(PortOut))}
		c.mirror.mux[dir] = mux
	}
	if dstIndex < 0 || dstIndex >= len(mux.Src) {
		return ErrBadArgument
	}
	dstWire := c.device.WireIDFor(dir, dstIndex)
	mux.Src[dstIndex] = srcWire

	for _, band := range muxWireBands {
		req := buildSetMuxRequest(c.device, band, mux, c.mirror.volume.Muted)
		if _, err := c.transport.Do(CmdSetMux, req, 0); err != nil {
			return err
		}
	}

	if writes, err := commitSwRouting(c.device, c.swConfig, srcWire, dstWire); err == nil && len(writes) > 0 {
		if err := c.commitSoftwareConfig(writes); err != nil {
			return err
		}
	}
	return nil
}

// RefreshRoute issues a GET_MUX for one band and replaces the mirror's
// table with the decoded response.
func (c *Card) RefreshRoute(dir PortDirection) error {
	if !c.device.HasMux {
		return ErrNotSupported
	}
	size := c.device.MuxSize[dir]
	req := make([]byte, 4)
	binary.LittleEndian.PutUint16(req[0:2], 0)
	binary.LittleEndian.PutUint16(req[2:4], uint16(size))

	resp, err := c.transport.Do(CmdGetMux, req, size*4)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.mirror.mux[dir] = decodeGetMuxResponse(c.device, dir, resp)
	c.mu.Unlock()
	return nil
}

// SetMixerLevel updates one mixer matrix cell and pushes the owning
// output bus's full SET_MIX row.
func (c *Card) SetMixerLevel(out, in, level int) error {
	if !c.device.HasMixer {
		return ErrNotSupported
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mirror.mixer == nil {
		c.mirror.mixer = newMixerMatrix(c.device)
	}
	if err := c.mirror.mixer.SetMixerLevel(out, in, level); err != nil {
		return err
	}

	payload := encodeSetMix(c.mirror.mixer, out, c.device.HasTalkback)
	_, err := c.transport.Do(CmdSetMix, payload, 0)
	return err
}

// SetMixerMute sets or clears one mixer matrix cell's mute and pushes the
// owning output bus's full SET_MIX row -- mute is encoded by forcing that
// cell's transmitted gain to the zero slot, not by a separate wire bit.
func (c *Card) SetMixerMute(out, in int, muted bool) error {
	if !c.device.HasMixer {
		return ErrNotSupported
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mirror.mixer == nil {
		c.mirror.mixer = newMixerMatrix(c.device)
	}
	mx := c.mirror.mixer
	if out < 0 || out >= mx.Outputs || in < 0 || in >= mx.Inputs {
		return ErrBadArgument
	}
	mx.Mute[out][in] = muted

	payload := encodeSetMix(mx, out, c.device.HasTalkback)
	_, err := c.transport.Do(CmdSetMix, payload, 0)
	return err
}

// RefreshMeters issues a GET_METER_LEVELS request and replaces the
// mirror's level snapshot.
func (c *Card) RefreshMeters() (Meters, error) {
	if !c.device.HasMeters {
		return Meters{}, ErrNotSupported
	}
	resp, err := c.transport.Do(CmdGetMeterLevels, buildGetMeterLevelsRequest(), meterCount*4)
	if err != nil {
		return Meters{}, err
	}
	m := decodeMeterLevels(resp)
	c.mu.Lock()
	c.mirror.meters = m
	c.mu.Unlock()
	return m, nil
}
