package scarlettd

import "sync"

// state.go is the in-memory mirror (component C5): the authoritative
// local copy of device state plus the staleness flags the notification
// loop sets and the refresh paths clear. Grounded on the kernel driver's
// struct scarlett2_mixer_data and its vol_updated/line_ctl_updated/
// speaker_updated flags -- data_mutex here is Card.mu, guarding the
// mirrored values below; the staleness flags sit behind the mirror's own
// small mu instead, so the interrupt path never needs Card.mu. No
// third-party library: this is a plain mutex-guarded
// struct, exactly like the kernel's own mutex-guarded mixer_data.
type mirror struct {
	mu sync.Mutex // guards only the four staleness flags; not data_mutex

	volume   VolumeSet
	preamp   PreampSwitches
	mux      map[PortDirection]*MuxTable
	mixer    *MixerMatrix
	meters   Meters
	sync     bool // external clock sync status from GET_SYNC
	retain48v bool
	speaker  int // off/main/alt speaker-switching state
	monitor  DirectMonitorMode
	talkback    bool
	mixTalkback uint16 // per-mix talkback bitmask, one bit per mix bus
	halo        *HaloState
	msdMode     bool

	volumeStale  bool // vol_updated equivalent
	lineCtlStale bool // line_ctl_updated equivalent
	speakerStale bool // speaker_updated equivalent
	syncStale    bool // sync_updated equivalent
}

func newMirror(d *Device) *mirror {
	m := &mirror{mux: make(map[PortDirection]*MuxTable)}
	m.volume.PerOut = make([]int8, d.CountPorts(PortOut))
	m.volume.SwVolume = make([]int8, d.CountPorts(PortOut))
	m.volume.SwHwCtrl = make([]bool, d.CountPorts(PortOut))
	m.volume.Muted = make([]bool, d.CountPorts(PortOut))
	m.preamp.Level = make([]bool, d.LevelInputCount)
	m.preamp.Pad = make([]bool, d.PadInputCount)
	m.preamp.Air = make([]bool, d.AirInputCount)
	m.preamp.Phantom = make([]bool, d.Phantom48VCount)
	if d.GainHalosCount > 0 {
		m.halo = newHaloState(d)
	}
	return m
}

// markVolumeStale flips the volume staleness flag; called from the
// interrupt dispatch path, never while holding mu (mirrors the kernel's
// rule that the interrupt handler itself never takes data_mutex).
func (m *mirror) markVolumeStale() {
	m.mu.Lock()
	m.volumeStale = true
	m.mu.Unlock()
}

func (m *mirror) markLineCtlStale() {
	m.mu.Lock()
	m.lineCtlStale = true
	m.mu.Unlock()
}

func (m *mirror) markSpeakerStale() {
	m.mu.Lock()
	m.speakerStale = true
	m.mu.Unlock()
}

// takeVolumeStale reports the volume staleness flag without clearing it,
// following the kernel's read-then-reset ordering in
// scarlett2_update_volumes: clearVolumeStale resets it only after the
// refreshed values are in hand, never before, or a concurrent interrupt
// between reset and refresh would be lost.
func (m *mirror) takeVolumeStale() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	stale := m.volumeStale
	return stale
}

func (m *mirror) clearVolumeStale() {
	m.mu.Lock()
	m.volumeStale = false
	m.mu.Unlock()
}

func (m *mirror) takeLineCtlStale() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lineCtlStale
}

func (m *mirror) clearLineCtlStale() {
	m.mu.Lock()
	m.lineCtlStale = false
	m.mu.Unlock()
}

func (m *mirror) takeSpeakerStale() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speakerStale
}

func (m *mirror) clearSpeakerStale() {
	m.mu.Lock()
	m.speakerStale = false
	m.mu.Unlock()
}

func (m *mirror) markSyncStale() {
	m.mu.Lock()
	m.syncStale = true
	m.mu.Unlock()
}

func (m *mirror) takeSyncStale() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncStale
}

func (m *mirror) clearSyncStale() {
	m.mu.Lock()
	m.syncStale = false
	m.mu.Unlock()
}
