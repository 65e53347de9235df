// Package engine implements spec §4.F: a thin owner of one decoder and
// one encoder that mediates the one event the codecs can't handle on
// their own — an in-stream protocol switch — by atomically swapping
// both codec slots once the triggering message is fully emitted (spec
// §5 "a protocol switch takes effect immediately after the triggering
// message is fully emitted").
//
// The engine adds no protocol logic of its own; every byte of
// validation still belongs to decoder/encoder (spec §4.F).
package engine

import (
	"github.com/yourusername/httpcodec/decoder"
	"github.com/yourusername/httpcodec/encoder"
	"github.com/yourusername/httpcodec/httpmsg"
)

// ServerEngine pairs a RequestDecoder with a ResponseEncoder (spec
// §4.F "server-oriented engine pairs Decoder<Request,Response> with
// Encoder<Response>").
type ServerEngine struct {
	dec *decoder.RequestDecoder
	enc *encoder.ResponseEncoder

	curReq  *httpmsg.Request
	curResp *httpmsg.Response

	switched    bool
	newProtocol string
	lastSwitch  *encoder.ProtocolSwitchResult
}

// NewServerEngine wires a fresh decoder/encoder pair. switchProvider
// decides, for a fully-emitted response, what protocol (if any) to
// switch to and what the replacement codecs are — the engine itself
// knows nothing about upgraded protocols (e.g. WebSocket); that
// knowledge lives in wsupgrade and is injected here.
func NewServerEngine(switchProvider func(*httpmsg.Response) (encoder.ProtocolSwitchResult, bool)) *ServerEngine {
	e := &ServerEngine{
		dec: decoder.NewRequestDecoder(),
		enc: encoder.NewResponseEncoder(),
	}
	if switchProvider != nil {
		e.enc.SetSwitchProvider(switchProvider)
	}
	return e
}

// Decode delegates to the installed decoder (spec §4.F).
func (e *ServerEngine) Decode(in, out []byte, endOfInput bool) (nIn, nOut int, res decoder.Result, err error) {
	nIn, nOut, res, err = e.dec.Decode(in, out, endOfInput)
	if res.HeaderCompleted {
		e.curReq = e.dec.Request()
		e.enc.SetAssociatedRequest(e.curReq)
	}
	return nIn, nOut, res, err
}

// EncodeHeader latches resp as the next message the encoder will emit
// (spec §4.F "encode(messageHeader)").
func (e *ServerEngine) EncodeHeader(resp *httpmsg.Response) error {
	e.curResp = resp
	return e.enc.Encode(resp)
}

// EncodeInterimContinue latches a 100-continue ahead of the real
// response (spec §4.E).
func (e *ServerEngine) EncodeInterimContinue() { e.enc.EncodeInterimContinue() }

// Encode delegates to the installed encoder, and atomically replaces
// both codec slots the instant a ProtocolSwitchResult arrives (spec
// §4.F, §5).
func (e *ServerEngine) Encode(in, out []byte, endOfInput bool) (nIn, nOut int, res encoder.Result) {
	nIn, nOut, res = e.enc.Step(in, out, endOfInput)
	if res.Switch != nil {
		e.installSwitch(res.Switch)
	}
	return nIn, nOut, res
}

// installSwitch only re-homes the HTTP codec slots when the new
// protocol is itself HTTP-shaped (e.g. a version bump via Upgrade).
// When the switch target is a foreign protocol (WebSocket and the
// like), the HTTP decoder/encoder simply stop being driven — the host
// takes over the connection using LastSwitch()'s raw NewDecoder/
// NewEncoder values instead (spec §4.F: "atomically replaces both
// codec slots with the newly supplied ones").
func (e *ServerEngine) installSwitch(sw *encoder.ProtocolSwitchResult) {
	e.switched = true
	e.newProtocol = sw.Protocol
	e.lastSwitch = sw
	if d, ok := sw.NewDecoder.(*decoder.RequestDecoder); ok {
		e.dec = d
	}
	if enc, ok := sw.NewEncoder.(*encoder.ResponseEncoder); ok {
		e.enc = enc
	}
}

// Switched reports whether a protocol switch has taken effect on this
// engine, and if so, which protocol (spec §4.F).
func (e *ServerEngine) Switched() (string, bool) { return e.newProtocol, e.switched }

// LastSwitch returns the most recent ProtocolSwitchResult, for a host
// that needs the raw NewDecoder/NewEncoder values to hand the
// connection off to a non-HTTP codec (e.g. the *websocket.Conn that
// wsupgrade.SwitchProvider builds).
func (e *ServerEngine) LastSwitch() *encoder.ProtocolSwitchResult { return e.lastSwitch }

// CurrentRequest is the most recently completed request header (spec
// §4.F currentRequest()).
func (e *ServerEngine) CurrentRequest() *httpmsg.Request { return e.curReq }

// CurrentResponse is the most recently latched response header (spec
// §4.F currentResponse()).
func (e *ServerEngine) CurrentResponse() *httpmsg.Response { return e.curResp }
