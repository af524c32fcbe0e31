package scarlettd

import (
	"encoding/binary"
	"fmt"
)

// protocol.go is the wire codec (component C3): the fixed 16-byte request/
// response envelope the vendor-specific USB interface uses for every
// command, plus the command opcodes themselves. Grounded on the kernel
// driver's struct scarlett2_usb_packet and scarlett2_fill_request_header;
// binary.LittleEndian stands in for the driver's __le32/__le16/cpu_to_le32
// macros one-for-one.

// Command is a vendor-protocol opcode.
type Command uint32

const (
	CmdInit1           Command = 0x00000000
	CmdInit2           Command = 0x00000002
	CmdConfigSave      Command = 0x00000006
	CmdGetMeterLevels  Command = 0x00001001
	CmdSetMix          Command = 0x00002002
	CmdGetMux          Command = 0x00003001
	CmdSetMux          Command = 0x00003002
	CmdGetSync         Command = 0x00006004
	CmdGetData         Command = 0x00800000
	CmdSetData         Command = 0x00800001
	CmdDataCmd         Command = 0x00800002
)

// bRequest values for the vendor-specific control transfers.
const (
	bRequestInit = 0
	bRequestReq  = 2
	bRequestResp = 3
)

const envelopeSize = 16

// envelope is the 16-byte request/response header that precedes every
// vendor-protocol payload.
type envelope struct {
	Cmd   Command
	Size  uint16
	Seq   uint16
	Error uint32
	Pad   uint32
}

func (e envelope) marshal() []byte {
	buf := make([]byte, envelopeSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(e.Cmd))
	binary.LittleEndian.PutUint16(buf[4:6], e.Size)
	binary.LittleEndian.PutUint16(buf[6:8], e.Seq)
	binary.LittleEndian.PutUint32(buf[8:12], e.Error)
	binary.LittleEndian.PutUint32(buf[12:16], e.Pad)
	return buf
}

func unmarshalEnvelope(buf []byte) (envelope, error) {
	if len(buf) < envelopeSize {
		return envelope{}, fmt.Errorf("%w: short envelope (%d bytes)", ErrProtocolMismatch, len(buf))
	}
	return envelope{
		Cmd:   Command(binary.LittleEndian.Uint32(buf[0:4])),
		Size:  binary.LittleEndian.Uint16(buf[4:6]),
		Seq:   binary.LittleEndian.Uint16(buf[6:8]),
		Error: binary.LittleEndian.Uint32(buf[8:12]),
		Pad:   binary.LittleEndian.Uint32(buf[12:16]),
	}, nil
}

// seqCounter is the per-card sequence number generator. It is not
// goroutine-safe on its own; callers hold Transport.mu for every
// request/response pair, which serializes access.
type seqCounter struct {
	next uint16
}

// nextSeq returns the sequence number to use for the next request and
// advances the counter, matching scarlett2_fill_request_header's
// post-increment.
func (s *seqCounter) nextSeq() uint16 {
	seq := s.next
	s.next++
	return seq
}

// reset pins the next sequence number, used only by the cargo-cult init
// sequence which sends seq=1 for INIT_1 and then seq=1 again (not
// continued) for INIT_2.
func (s *seqCounter) reset(v uint16) {
	s.next = v
}

// buildRequest assembles the wire bytes for one command with payload.
func buildRequest(cmd Command, seq uint16, payload []byte) []byte {
	e := envelope{Cmd: cmd, Size: uint16(len(payload)), Seq: seq}
	return append(e.marshal(), payload...)
}

// parseResponse validates a raw response buffer against the request it
// answers and returns the payload, following scarlett2_usb's validation
// block: matching cmd, matching seq (except the one documented init
// exception of req.seq==1 && resp.seq==0), the expected payload size, and
// a zero error/pad field.
func parseResponse(raw []byte, reqCmd Command, reqSeq uint16, expectSize int) ([]byte, error) {
	e, err := unmarshalEnvelope(raw)
	if err != nil {
		return nil, err
	}
	if e.Cmd != reqCmd {
		return nil, fmt.Errorf("%w: response cmd 0x%08x != request cmd 0x%08x", ErrProtocolMismatch, e.Cmd, reqCmd)
	}
	if e.Seq != reqSeq && !(reqSeq == 1 && e.Seq == 0) {
		return nil, fmt.Errorf("%w: response seq %d != request seq %d", ErrProtocolMismatch, e.Seq, reqSeq)
	}
	if expectSize >= 0 && int(e.Size) != expectSize {
		return nil, fmt.Errorf("%w: response size %d != expected %d", ErrProtocolMismatch, e.Size, expectSize)
	}
	if e.Error != 0 {
		return nil, fmt.Errorf("%w: device reported error 0x%08x for cmd 0x%08x", ErrDeviceRejected, e.Error, reqCmd)
	}
	if e.Pad != 0 {
		return nil, fmt.Errorf("%w: non-zero pad field in response", ErrProtocolMismatch)
	}
	payload := raw[envelopeSize:]
	if len(payload) < int(e.Size) {
		return nil, fmt.Errorf("%w: truncated response payload (%d of %d bytes)", ErrProtocolMismatch, len(payload), e.Size)
	}
	return payload[:e.Size], nil
}
