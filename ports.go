package scarlettd

import "fmt"

// ports.go is the port algebra (component C2): pure conversions between a
// device's flat per-type port indices and the 12-bit wire IDs the protocol
// packs into mux assignment entries, plus human-readable port naming.
// Every function here is grounded directly on the kernel driver's
// scarlett2_id_to_mux/scarlett2_mux_to_id/scarlett2_count_ports/
// scarlett2_decode_port/scarlett2_fmt_port_name and carries the same
// "first range that fits wins" linear-scan shape.

const (
	wireIDMask    WireID = 0x0f80
	wireNumMask   WireID = 0x007f
	wireIDNone    WireID = 0
)

// WireIDFor converts a (direction, flat port index) pair into the 12-bit
// hardware wire ID the protocol expects in a mux entry. The flat index
// walks port types in Device.Ports array order (Analogue, SPDIF, ADAT,
// Mix, PCM, IntMic, Talkback); it returns 0 (none) if num is out of range
// for every type.
func (d *Device) WireIDFor(dir PortDirection, num int) WireID {
	if dir < 0 || dir >= portDirectionCount || num < 0 {
		return wireIDNone
	}
	for pt := PortType(0); pt < portTypeCount; pt++ {
		count := d.Ports[pt].Count[dir]
		if num < count {
			return d.Ports[pt].WireBase + WireID(num)
		}
		num -= count
	}
	return wireIDNone
}

// CountPorts returns the total number of ports of every type for one
// direction/band.
func (d *Device) CountPorts(dir PortDirection) int {
	total := 0
	for pt := PortType(0); pt < portTypeCount; pt++ {
		total += d.Ports[pt].Count[dir]
	}
	return total
}

// PortIndexFor converts a 12-bit hardware wire ID back into a flat port
// index for one direction/band, or -1 if the ID does not decode (e.g. it
// names a port type this device doesn't have, or an out-of-range index
// within a type it does have).
func (d *Device) PortIndexFor(dir PortDirection, wire WireID) int {
	if dir < 0 || dir >= portDirectionCount {
		return -1
	}
	id := wire & wireIDMask
	if id == wireIDNone {
		return -1
	}
	num := wire & wireNumMask
	base := 0
	for pt := PortType(0); pt < portTypeCount; pt++ {
		if id == d.Ports[pt].WireBase&wireIDMask {
			if int(num) < d.Ports[pt].Count[dir] {
				return base + int(num)
			}
			num -= WireID(d.Ports[pt].Count[dir])
		}
		base += d.Ports[pt].Count[dir]
	}
	return -1
}

// DecodePort splits a flat port index for one direction into its
// (PortType, within-type index) pair, or ok=false if num is out of range.
func (d *Device) DecodePort(dir PortDirection, num int) (p Port, ok bool) {
	for pt := PortType(0); pt < portTypeCount; pt++ {
		count := d.Ports[pt].Count[dir]
		if num < count {
			return Port{Type: pt, Index: num}, true
		}
		num -= count
	}
	return Port{}, false
}

// PortBase returns the flat index at which port type pt begins, for a
// given direction -- the inverse accumulation DecodePort walks.
func (d *Device) PortBase(dir PortDirection, pt PortType) int {
	base := 0
	for t := PortType(0); t < pt; t++ {
		base += d.Ports[t].Count[dir]
	}
	return base
}

// namedPort looks up a NamedPort override for this exact (direction, type,
// index) triple, returning "" if none is configured.
func (d *Device) namedPort(dir PortDirection, pt PortType, index int) string {
	for _, n := range d.Names {
		if n.Direction == dir && n.Type == pt && n.Index == index {
			return n.Name
		}
	}
	return ""
}

// FormatPortName renders the display name for a flat port index, applying
// any NamedPort override, output-side remap table, and the port type's
// printf-style format string -- mirroring scarlett2_fmt_port_name.
func (d *Device) FormatPortName(dir PortDirection, num int) string {
	if dir < 0 || dir >= portDirectionCount || num < 0 {
		return "Off"
	}
	for pt := PortType(0); pt < portTypeCount; pt++ {
		layout := d.Ports[pt]
		if num >= layout.Count[dir] {
			num -= layout.Count[dir]
			continue
		}

		special := d.namedPort(dir, pt, num)

		display := num
		if dir == PortOut && layout.DstRemap != nil && display < len(layout.DstRemap) {
			display = layout.DstRemap[display]
		}

		var base string
		if dir == PortIn {
			base = fmt.Sprintf(layout.SrcFormat, display+layout.SrcNumOffset)
		} else {
			base = fmt.Sprintf(layout.DstFormat, display+1)
		}
		if special != "" {
			return fmt.Sprintf("%s (%s)", base, special)
		}
		return base
	}
	return "Off"
}
