package scarlettd

import "errors"

// errors.go implements the error taxonomy in §2.1/§7: a small set of
// sentinel kinds callers can distinguish with errors.Is, with concrete
// context wrapped in via %w at each call site (in the teacher's
// fmt.Errorf-wrapping style, but anchored to a named sentinel instead of
// a bespoke string every time).
var (
	// ErrIoTransport covers failures in the underlying USB transfer
	// itself: no device, stalled endpoint, timeout, short transfer.
	ErrIoTransport = errors.New("scarlettd: i/o transport error")

	// ErrProtocolMismatch covers well-formed-but-wrong responses: bad
	// sequence number, bad size, bad cmd echo, non-zero pad field.
	ErrProtocolMismatch = errors.New("scarlettd: protocol mismatch")

	// ErrDeviceRejected covers a syntactically valid response whose
	// error field the device itself set to non-zero.
	ErrDeviceRejected = errors.New("scarlettd: device rejected request")

	// ErrBadArgument covers caller-supplied values out of range for
	// this device (port index, mixer cell, config offset).
	ErrBadArgument = errors.New("scarlettd: bad argument")

	// ErrResourceExhausted covers sw-config space exhaustion and
	// similar fixed-capacity overflows.
	ErrResourceExhausted = errors.New("scarlettd: resource exhausted")

	// ErrNotSupported covers a feature or device this build doesn't
	// model -- unknown USB product ID, an operation a device's
	// descriptor says it doesn't have.
	ErrNotSupported = errors.New("scarlettd: not supported")

	// ErrTransportClosed covers an interrupt read that unblocked because
	// the transport was closed out from under it, as opposed to a
	// transient USB read error -- the stop signal for runEventLoop.
	ErrTransportClosed = errors.New("scarlettd: transport closed")
)
