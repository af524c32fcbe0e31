package scarlettd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequestEnvelopeRoundTrip(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	raw := buildRequest(CmdGetMux, 7, payload)
	require.Len(t, raw, envelopeSize+len(payload))

	e, err := unmarshalEnvelope(raw)
	require.NoError(t, err)
	assert.Equal(t, CmdGetMux, e.Cmd)
	assert.EqualValues(t, 7, e.Seq)
	assert.EqualValues(t, len(payload), e.Size)
	assert.Equal(t, payload, raw[envelopeSize:])
}

func TestParseResponseHappyPath(t *testing.T) {
	payload := []byte{0xaa, 0xbb}
	e := envelope{Cmd: CmdGetSync, Size: uint16(len(payload)), Seq: 3}
	raw := append(e.marshal(), payload...)

	got, err := parseResponse(raw, CmdGetSync, 3, len(payload))
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestParseResponseInitSeqException(t *testing.T) {
	e := envelope{Cmd: CmdInit2, Size: 0, Seq: 0}
	raw := e.marshal()

	// req.seq==1 && resp.seq==0 is the one documented exception.
	_, err := parseResponse(raw, CmdInit2, 1, 0)
	assert.NoError(t, err)
}

func TestParseResponseRejectsCmdMismatch(t *testing.T) {
	e := envelope{Cmd: CmdGetMux, Size: 0, Seq: 1}
	raw := e.marshal()

	_, err := parseResponse(raw, CmdSetMux, 1, 0)
	assert.ErrorIs(t, err, ErrProtocolMismatch)
}

func TestParseResponseRejectsSeqMismatch(t *testing.T) {
	e := envelope{Cmd: CmdGetMux, Size: 0, Seq: 5}
	raw := e.marshal()

	_, err := parseResponse(raw, CmdGetMux, 4, 0)
	assert.ErrorIs(t, err, ErrProtocolMismatch)
}

func TestParseResponseRejectsSizeMismatch(t *testing.T) {
	e := envelope{Cmd: CmdGetMux, Size: 4, Seq: 1}
	raw := append(e.marshal(), []byte{1, 2, 3, 4}...)

	_, err := parseResponse(raw, CmdGetMux, 1, 8)
	assert.ErrorIs(t, err, ErrProtocolMismatch)
}

func TestParseResponseRejectsDeviceError(t *testing.T) {
	e := envelope{Cmd: CmdGetMux, Size: 0, Seq: 1, Error: 1}
	raw := e.marshal()

	_, err := parseResponse(raw, CmdGetMux, 1, 0)
	assert.ErrorIs(t, err, ErrDeviceRejected)
}

func TestParseResponseRejectsNonZeroPad(t *testing.T) {
	e := envelope{Cmd: CmdGetMux, Size: 0, Seq: 1, Pad: 1}
	raw := e.marshal()

	_, err := parseResponse(raw, CmdGetMux, 1, 0)
	assert.ErrorIs(t, err, ErrProtocolMismatch)
}

func TestSeqCounterNextAndReset(t *testing.T) {
	var s seqCounter
	assert.EqualValues(t, 0, s.nextSeq())
	assert.EqualValues(t, 1, s.nextSeq())

	s.reset(1)
	assert.EqualValues(t, 1, s.nextSeq())
	assert.EqualValues(t, 2, s.nextSeq())
}
