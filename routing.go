package scarlettd

// routing.go is the routing engine (component C6): mux GET/SET per
// sample-rate band and, for devices with a software-config blob, keeping
// that blob's mirror of the routing decision in sync. Grounded on the
// kernel driver's scarlett2_usb_get_mux/scarlett2_usb_set_mux (the mux
// wire format and the PCM/Analogue/SPDIF/ADAT/Mix/Talkback assignment
// walk) and scarlett2_commit_sw_routing (the sw-config side-effects of a
// routing change), with scarlett2_output_index's narrower Analogue/
// SPDIF/ADAT walk kept as a separate, deliberately different ordering --
// conflating the two was the mistake to avoid here.

// muxAssignmentOrder is the full port-type walk scarlett2_usb_set_mux
// uses to lay out a SET_MUX request: every destination-capable port type
// in wire order, including Mix and Talkback.
var muxAssignmentOrder = [...]PortType{
	PortTypePCM,
	PortTypeAnalogue,
	PortTypeSPDIF,
	PortTypeADAT,
	PortTypeMix,
	PortTypeTalkback,
}

// muteAssignmentOrder is scarlett2_output_index's narrower walk: only the
// three port types that have a hardware mute/volume status entry. It is
// NOT the same array as muxAssignmentOrder and must not be used to build
// a mux request.
var muteAssignmentOrder = [...]PortType{
	PortTypeAnalogue,
	PortTypeSPDIF,
	PortTypeADAT,
}

// outputMuteIndex returns this (type, within-type index) output's
// position in the mutes[]/volume-status array, or -1 if the type has no
// such entry, mirroring scarlett2_output_index exactly.
func outputMuteIndex(d *Device, pt PortType, portNum int) int {
	index := 0
	for _, t := range muteAssignmentOrder {
		count := d.Ports[t].Count[PortOut]
		if pt == t {
			if portNum < count {
				return index + portNum
			}
			return -1
		}
		index += count
	}
	return -1
}

// encodeMuxEntry packs a (source, destination) wire ID pair into one
// SET_MUX/GET_MUX data word: source in the upper 12 bits, destination in
// the lower 12 bits.
func encodeMuxEntry(src, dst WireID) uint32 {
	return (uint32(src) << 12) | uint32(dst&0x0fff)
}

// decodeMuxEntry unpacks one mux data word into its source/destination
// wire IDs.
func decodeMuxEntry(word uint32) (src, dst WireID) {
	src = WireID((word >> 12) & 0x0fff)
	dst = WireID(word & 0x0fff)
	return src, dst
}

// buildSetMuxRequest assembles the SET_MUX payload for one output band,
// applying the mute-forces-source-to-0 rule from scarlett2_usb_set_mux:
// if the destination port has a mute/volume-status entry and it is
// currently muted, the source is forced to "none" on the wire regardless
// of the routing table's recorded source.
func buildSetMuxRequest(d *Device, dir PortDirection, mux *MuxTable, mutes []bool) []byte {
	size := d.MuxSize[dir]
	data := make([]uint32, size)

	connID := 0
	for _, pt := range muxAssignmentOrder {
		count := d.Ports[pt].Count[dir]
		for port := 0; port < count; port++ {
			portIdx := d.PortBase(dir, pt) + port
			dstWire := d.WireIDFor(dir, portIdx)

			// mux.Src is indexed in the band-independent PortOut space.
			srcWire := WireID(0)
			if srcIdx := d.PortBase(PortOut, pt) + port; port < d.Ports[pt].Count[PortOut] && srcIdx < len(mux.Src) {
				srcWire = mux.Src[srcIdx]
			}
			if muteIdx := outputMuteIndex(d, pt, port); muteIdx >= 0 && muteIdx < len(mutes) && mutes[muteIdx] {
				srcWire = 0
			}

			if connID < len(data) {
				data[connID] = encodeMuxEntry(srcWire, dstWire)
			}
			connID++
		}
	}
	for ; connID < size; connID++ {
		data[connID] = 0
	}

	buf := make([]byte, 4+4*size)
	band := uint16(dir - PortOut44)
	buf[0], buf[1] = 0, 0
	buf[2] = byte(band)
	buf[3] = byte(band >> 8)
	for i, w := range data {
		off := 4 + i*4
		buf[off+0] = byte(w)
		buf[off+1] = byte(w >> 8)
		buf[off+2] = byte(w >> 16)
		buf[off+3] = byte(w >> 24)
	}
	return buf
}

// decodeGetMuxResponse parses a GET_MUX response into a MuxTable indexed
// by flat output port index, mirroring scarlett2_usb_get_mux's decode
// loop (entries naming a destination this device doesn't have are
// silently dropped, matching the kernel's bounds check).
func decodeGetMuxResponse(d *Device, dir PortDirection, payload []byte) *MuxTable {
	out := d.CountPorts(PortOut)
	mux := &MuxTable{Band: dir, Src: make([]WireID, out)}

	n := len(payload) / 4
	for i := 0; i < n; i++ {
		off := i * 4
		word := uint32(payload[off]) | uint32(payload[off+1])<<8 | uint32(payload[off+2])<<16 | uint32(payload[off+3])<<24
		srcWire, dstWire := decodeMuxEntry(word)

		srcIdx := d.PortIndexFor(PortIn, srcWire)
		dstIdx := d.PortIndexFor(dir, dstWire)
		if srcIdx < 0 {
			continue
		}
		if dstIdx >= 0 && dstIdx < len(mux.Src) {
			mux.Src[dstIdx] = d.WireIDFor(PortIn, srcIdx)
		}
	}
	return mux
}

// swWrite names one byte range that changed in a SoftwareConfig's backing
// image and needs to be pushed to the device via SET_DATA, mirroring the
// fine-grained scarlett2_commit_software_config calls
// scarlett2_commit_sw_routing makes instead of rewriting the whole blob.
type swWrite struct {
	Offset int
	N      int
}

// commitSwRouting updates a device's software-config mirror after a
// routing change from srcWire to a destination identified by dstWire,
// returning the byte ranges that need writing back. It is a no-op
// (returns nil, nil) if the device has no software config, mirroring
// scarlett2_commit_sw_routing's early return when sw_cfg is absent.
//
// This uses the same flat driver port indexing ports.go already exposes
// (PortIndexFor/DecodePort) as the software port numbering space, since
// the kernel's separate sw_port_mapping table isn't modeled here -- every
// device this module supports uses a 1:1 driver/software port order.
func commitSwRouting(d *Device, sc *SoftwareConfig, srcWire, dstWire WireID) ([]swWrite, error) {
	if sc == nil {
		return nil, nil
	}

	dstIdx := d.PortIndexFor(PortOut, dstWire)
	if dstIdx < 0 {
		return nil, nil
	}
	dstPort, ok := d.DecodePort(PortOut, dstIdx)
	if !ok {
		return nil, nil
	}

	var writes []swWrite

	if dstPort.Type == PortTypeMix {
		inIdx := d.PortIndexFor(PortIn, srcWire)
		if inIdx < 0 {
			return nil, nil
		}
		numMixerIns := d.Ports[PortTypeMix].Count[PortOut]

		if dstPort.Index < len(sc.MixerInMap) && sc.MixerInMap[dstPort.Index]&0x80 != 0 {
			for i := 0; i < numMixerIns && i < len(sc.MixerInMap); i++ {
				opIdx := int(sc.MixerInMap[i])
				if opIdx&0x80 == 0 {
					continue
				}
				opIdx &= 0x7f
				if opIdx == 0 || opIdx >= numMixerIns {
					continue
				}
				if i == dstPort.Index || opIdx == dstPort.Index {
					off1, n1 := sc.setMixerInMap(i, 0)
					writes = append(writes, swWrite{off1, n1})
					off2, n2 := sc.setMixerInMap(opIdx, 0)
					writes = append(writes, swWrite{off2, n2})
					break
				}
			}
		}

		off, n := sc.setMixerInMux(dstPort.Index, uint8(inIdx+1))
		writes = append(writes, swWrite{off, n})
		return writes, nil
	}

	outIdx := dstIdx
	opIdx := outIdx &^ 1

	mask := sc.StereoSw
	if mask&(3<<uint(opIdx)) != 0 {
		mask &^= 3 << uint(opIdx)
		off, n := sc.setStereoSw(mask)
		writes = append(writes, swWrite{off, n})

		if opIdx+1 < len(sc.OutMux) && sc.OutMux[opIdx+1] != sc.OutMux[opIdx]+1 {
			off2, n2 := sc.setOutMux(opIdx+1, sc.OutMux[opIdx]+1)
			writes = append(writes, swWrite{off2, n2})
		}

		bindMask := sc.MixerBind
		if (bindMask>>uint(opIdx))&3 != 0 {
			bindMask &^= 3 << uint(opIdx)
			off3, n3 := sc.setMixerBind(bindMask)
			writes = append(writes, swWrite{off3, n3})
		}
	}

	srcIdx := d.PortIndexFor(PortIn, srcWire)
	srcPort, srcOk := d.DecodePort(PortIn, srcIdx)

	bindMask := sc.MixerBind
	var inIdx int
	if srcOk && srcPort.Type == PortTypeMix {
		inIdx = srcPort.Index
		bindMask &^= 1 << uint(outIdx)
	} else {
		inIdx = srcIdx
		bindMask |= 1 << uint(outIdx)
	}
	off4, n4 := sc.setMixerBind(bindMask)
	writes = append(writes, swWrite{off4, n4})

	off5, n5 := sc.setOutMux(outIdx, uint8(inIdx+1))
	writes = append(writes, swWrite{off5, n5})

	return writes, nil
}
