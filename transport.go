package scarlettd

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/gousb"
)

// transport.go is the transport adapter (component C4): the USB-level
// plumbing underneath protocol.go. It owns the vendor-specific interface
// claim, issues the synchronous control transfers that carry request/
// response envelopes, and submits the interrupt-in transfer events.go
// drains. Grounded on the teacher's cgo.go for the "small Go struct
// wrapping a cgo-backed hardware handle" pattern, retargeted from
// libasound calls to libusb calls via github.com/google/gousb; the
// method shape is cross-checked against
// other_examples/kevmo314-go-usb__device_common.go's DeviceHandleInterface.

const (
	vendorClassInterface = 0xFF // vendor-specific, matches spec's class-0xFF control interface

	usbControlTimeout   = 1 * time.Second
	usbInterruptTimeout = 0 // blocking read; Close unblocks it by releasing the interface
)

// bmRequestType bits for the vendor-specific control transfers (host <->
// device, vendor type, interface recipient).
const (
	reqTypeOut = 0x41 // host-to-device | vendor | interface
	reqTypeIn  = 0xC1 // device-to-host | vendor | interface
)

// Transport serializes one tx/rx pair at a time over the USB control
// endpoint, mirroring the kernel driver's usb_mutex. It also owns the
// interrupt-in endpoint used for unsolicited change notifications.
type Transport struct {
	mu sync.Mutex // usb_mutex equivalent: one request/response pair in flight at a time

	ctx   *gousb.Context
	dev   *gousb.Device
	cfg   *gousb.Config
	intf  *gousb.Interface
	inEp  *gousb.InEndpoint
	iface int

	seq seqCounter

	closeMu sync.Mutex
	closed  bool
}

// OpenTransport claims the vendor-specific interface on the first matching
// USB device and prepares it for control and interrupt transfers.
func OpenTransport(vendor, product uint16) (*Transport, error) {
	ctx := gousb.NewContext()
	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vendor), gousb.ID(product))
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("%w: open device %04x:%04x: %v", ErrIoTransport, vendor, product, err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("%w: no device matching %04x:%04x", ErrIoTransport, vendor, product)
	}

	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("%w: set auto detach: %v", ErrIoTransport, err)
	}

	ifaceNum, epAddr, err := findVendorInterface(dev)
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, err
	}

	cfg, err := dev.Config(1)
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("%w: claim config: %v", ErrIoTransport, err)
	}
	intf, err := cfg.Interface(ifaceNum, 0)
	if err != nil {
		cfg.Close()
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("%w: claim interface %d: %v", ErrIoTransport, ifaceNum, err)
	}

	t := &Transport{ctx: ctx, dev: dev, cfg: cfg, intf: intf, iface: ifaceNum}

	if epAddr != 0 {
		ep, err := intf.InEndpoint(epAddr)
		if err != nil {
			Logger.Warn().Err(err).Msg("no interrupt endpoint available, notifications disabled")
		} else {
			t.inEp = ep
		}
	}

	return t, nil
}

// findVendorInterface walks the active config descriptor for the first
// interface advertising the vendor-specific class, returning its number
// and its interrupt-in endpoint address (0 if none).
func findVendorInterface(dev *gousb.Device) (iface int, interruptEP int, err error) {
	cfgDesc, err := dev.ConfigDescription(1)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: read config descriptor: %v", ErrIoTransport, err)
	}
	for _, id := range cfgDesc.Interfaces {
		for _, alt := range id.AltSettings {
			if alt.Class == gousb.ClassVendorSpec || uint8(alt.Class) == vendorClassInterface {
				ep := 0
				for _, e := range alt.Endpoints {
					if e.TransferType == gousb.TransferTypeInterrupt && e.Direction == gousb.EndpointDirectionIn {
						ep = int(e.Number) | 0x80
					}
				}
				return id.Number, ep, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("%w: no vendor-specific interface found", ErrProtocolMismatch)
}

// Close releases the USB interface and device handle. It marks the
// transport closed first so a concurrent ReadInterrupt unblocked by the
// interface teardown reports ErrTransportClosed rather than a bare
// transient i/o error.
func (t *Transport) Close() error {
	t.closeMu.Lock()
	t.closed = true
	t.closeMu.Unlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.intf != nil {
		t.intf.Close()
	}
	if t.cfg != nil {
		t.cfg.Close()
	}
	if t.dev != nil {
		t.dev.Close()
	}
	if t.ctx != nil {
		t.ctx.Close()
	}
	return nil
}

// Do performs one request/response exchange: it builds the envelope with
// the next sequence number, writes it via bRequestReq, reads the response
// via bRequestResp, and validates it. expectSize of -1 means "don't check
// the response size"; no caller in this package passes it (INIT_1 uses
// 0). It locks mu for the whole exchange, matching
// scarlett2_usb's usb_mutex-guarded tx+rx pair.
func (t *Transport) Do(cmd Command, payload []byte, expectSize int) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seq := t.seq.nextSeq()
	req := buildRequest(cmd, seq, payload)

	if _, err := t.dev.Control(reqTypeOut, bRequestReq, 0, uint16(t.iface), req); err != nil {
		return nil, fmt.Errorf("%w: control write cmd 0x%08x: %v", ErrIoTransport, cmd, err)
	}

	respSize := envelopeSize
	if expectSize >= 0 {
		respSize += expectSize
	} else {
		respSize += 4096 // generous upper bound for unknown-size probes
	}
	buf := make([]byte, respSize)
	n, err := t.dev.Control(reqTypeIn, bRequestResp, 0, uint16(t.iface), buf)
	if err != nil {
		return nil, fmt.Errorf("%w: control read cmd 0x%08x: %v", ErrIoTransport, cmd, err)
	}

	return parseResponse(buf[:n], cmd, seq, expectSize)
}

// ResetSeq pins the next sequence number the transport will use. Only
// the cargo-cult init handshake needs this; every other command lets the
// counter run free.
func (t *Transport) ResetSeq(v uint16) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq.reset(v)
}

// InitProbe performs the cargo-cult pre-init read: a bRequestInit bulk
// read expected to return a fixed 24-byte blob, used once at the very
// start of Attach before any sequence-numbered request has been sent.
func (t *Transport) InitProbe() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	buf := make([]byte, 24)
	n, err := t.dev.Control(reqTypeIn, bRequestInit, 0, uint16(t.iface), buf)
	if err != nil {
		return nil, fmt.Errorf("%w: init probe: %v", ErrIoTransport, err)
	}
	return buf[:n], nil
}

// ReadInterrupt blocks for one interrupt-in transfer and returns its
// payload. It returns ErrNotSupported if this transport has no interrupt
// endpoint (some devices/configs don't expose one), and ErrTransportClosed
// if the read unblocked because Close tore down the interface -- any other
// error is a transient USB read failure the caller should retry, mirroring
// the kernel driver's rule of only giving up on -ENOENT/-ECONNRESET/
// -ESHUTDOWN and resubmitting the URB for every other status.
func (t *Transport) ReadInterrupt(buf []byte) (int, error) {
	if t.inEp == nil {
		return 0, ErrNotSupported
	}
	n, err := t.inEp.Read(buf)
	if err != nil {
		t.closeMu.Lock()
		closed := t.closed
		t.closeMu.Unlock()
		if closed {
			return 0, ErrTransportClosed
		}
		return 0, fmt.Errorf("%w: interrupt read: %v", ErrIoTransport, err)
	}
	return n, nil
}
