package scarlettd

import "errors"

// events.go is the interrupt dispatch loop (component C10): it drains
// Transport.ReadInterrupt in a loop and turns the bitmask payload into
// mirror staleness flags and a notification callback, replacing the
// teacher's ALSA-poll-based EventMonitor with the vendor protocol's own
// unsolicited interrupt-in transfer. Grounded on the kernel driver's
// scarlett2_mixer_interrupt and its vol_change/line_in_ctl_change/
// button_change/speaker_change dispatch, including the documented
// SPEAKER_CHANGE cascade into both vol_change and button_change.

const (
	interruptAck            = 0x00000001
	interruptSyncChange     = 0x00000008
	interruptButtonChange   = 0x00200000
	interruptVolChange      = 0x00400000
	interruptLineCtlChange  = 0x00800000
	interruptSpeakerChange  = 0x01000000
)

// EventKind names one category of unsolicited device notification.
type EventKind int

const (
	EventVolumeChanged EventKind = iota
	EventLineCtlChanged
	EventButtonChanged
	EventSpeakerChanged
	EventSyncChanged
)

func (k EventKind) String() string {
	switch k {
	case EventVolumeChanged:
		return "volume changed"
	case EventLineCtlChanged:
		return "line control changed"
	case EventButtonChanged:
		return "button changed"
	case EventSpeakerChanged:
		return "speaker switch changed"
	case EventSyncChanged:
		return "clock sync changed"
	default:
		return "unknown event"
	}
}

// runEventLoop blocks draining interrupt transfers until stop is closed,
// the transport reports it has none (ErrNotSupported), or it reports it
// was closed out from under the read (ErrTransportClosed), dispatching
// each payload's bitmask to the mirror's staleness flags and to notify.
// Any other ReadInterrupt error is treated as transient and the loop
// keeps listening, matching the kernel driver's own resubmit-unless-
// cancelled rule for its interrupt URB.
func (c *Card) runEventLoop(stop <-chan struct{}, notify func(EventKind)) {
	buf := make([]byte, 8)
	for {
		select {
		case <-stop:
			return
		default:
		}

		n, err := c.transport.ReadInterrupt(buf)
		if err != nil {
			if errors.Is(err, ErrNotSupported) || errors.Is(err, ErrTransportClosed) {
				Logger.Debug().Err(err).Msg("interrupt read stopped")
				return
			}
			Logger.Debug().Err(err).Msg("interrupt read error, resubmitting")
			continue
		}
		if n < 4 {
			continue
		}
		mask := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
		dispatchInterrupt(c, mask, notify)
	}
}

// dispatchInterrupt applies one interrupt bitmask to the card's mirror
// and fires notify for every bit set, cascading SPEAKER_CHANGE into both
// the volume and button paths exactly as scarlett2_mixer_interrupt does.
func dispatchInterrupt(c *Card, mask uint32, notify func(EventKind)) {
	if mask&interruptVolChange != 0 {
		c.mirror.markVolumeStale()
		fire(notify, EventVolumeChanged)
	}
	if mask&interruptLineCtlChange != 0 {
		c.mirror.markLineCtlStale()
		fire(notify, EventLineCtlChanged)
	}
	if mask&interruptButtonChange != 0 {
		c.mirror.markVolumeStale()
		fire(notify, EventButtonChanged)
	}
	if mask&interruptSpeakerChange != 0 {
		c.mirror.markSpeakerStale()
		c.mirror.markVolumeStale()
		fire(notify, EventSpeakerChanged)
		fire(notify, EventButtonChanged)
	}
	if mask&interruptSyncChange != 0 {
		c.mirror.markSyncStale()
		fire(notify, EventSyncChanged)
	}
}

func fire(notify func(EventKind), kind EventKind) {
	if notify != nil {
		notify(kind)
	}
}
