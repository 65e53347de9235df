package encoder

import (
	"fmt"
	"strconv"
	"time"

	"github.com/yourusername/httpcodec/field"
	"github.com/yourusername/httpcodec/header"
	"github.com/yourusername/httpcodec/httpmsg"
)

// ResponseEncoder emits responses for a server-oriented engine (spec
// §4.E, §4.F), pairing with a decoder.RequestDecoder on the other side
// of the connection.
type ResponseEncoder struct {
	core
	req *httpmsg.Request
}

// NewResponseEncoder creates an encoder with no SwitchProvider
// installed; SetSwitchProvider wires protocol-switch handling (spec
// §4.F, S6).
func NewResponseEncoder() *ResponseEncoder {
	return &ResponseEncoder{}
}

// SetSwitchProvider installs the hook consulted once a 101 response
// has been fully flushed. The core encoder has no opinion on what
// protocols exist; the engine supplies this (spec §4.F).
func (e *ResponseEncoder) SetSwitchProvider(f func(*httpmsg.Response) (ProtocolSwitchResult, bool)) {
	e.core.switchProvider = func(t msgTarget) (ProtocolSwitchResult, bool) {
		rt, ok := t.(*responseTarget)
		if !ok {
			return ProtocolSwitchResult{}, false
		}
		return f(rt.resp)
	}
}

// SetAssociatedRequest records the request this response answers, used
// by the framing decision's persistent-connection check (spec §4.E).
func (e *ResponseEncoder) SetAssociatedRequest(req *httpmsg.Request) { e.req = req }

// EncodeInterimContinue latches a bare "100 Continue" status line
// ahead of the real response, without disturbing it (spec §4.E
// 100-continue).
func (e *ResponseEncoder) EncodeInterimContinue() {
	e.core.latchInterim(fmt.Sprintf("%s 100 Continue", e.req.Protocol()))
}

// Encode latches resp as the next message to emit.
func (e *ResponseEncoder) Encode(resp *httpmsg.Response) error {
	if !resp.Header.Has("Date") {
		header.SetTyped(resp.Header, "Date", field.DateValue{}, time.Now().UTC())
	}
	return e.core.latchFinal(&responseTarget{resp: resp, req: e.req})
}

// Step advances the machine, writing wire bytes into out from body
// bytes offered in in (spec §4.E contract).
func (e *ResponseEncoder) Step(in []byte, out []byte, endOfInput bool) (nIn, nOut int, res Result) {
	var inPos, outPos int
	res = e.core.step(in, &inPos, out, &outPos, endOfInput)
	return inPos, outPos, res
}

type responseTarget struct {
	resp *httpmsg.Response
	req  *httpmsg.Request
}

func (t *responseTarget) headerObj() *header.Header { return t.resp.Header }

func (t *responseTarget) renderStartLine() string {
	reason := t.resp.ReasonPhrase
	if reason == "" {
		reason = httpmsg.ReasonPhrase(t.resp.StatusCode)
	}
	return fmt.Sprintf("%s %d %s", t.resp.Protocol(), t.resp.StatusCode, reason)
}

func (t *responseTarget) decideFraming() (bodyKind, int64, bool) {
	h := t.resp.Header
	status := t.resp.StatusCode
	if (status >= 100 && status < 200) || status == 204 || status == 304 ||
		(t.req != nil && t.req.Method == "HEAD") {
		return bkNone, 0, false
	}
	if !h.HasPayload() {
		return bkNone, 0, false
	}
	if v, ok := h.Field("Content-Length"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return bkIdentity, n, false
		}
	}
	if v, ok := h.Field("Transfer-Encoding"); ok && hasToken(v, "chunked") {
		return bkChunked, 0, false
	}
	if !requestPermitsPersistent(t.req) {
		return bkUntilClose, 0, true
	}
	h.SetField("Transfer-Encoding", "chunked")
	return bkChunked, 0, false
}

// requestPermitsPersistent implements spec §4.E's "did not permit
// persistent connection" check: an explicit Connection: close wins;
// otherwise HTTP/1.1 defaults to persistent and HTTP/1.0 defaults to
// close unless the client asked for keep-alive.
func requestPermitsPersistent(req *httpmsg.Request) bool {
	if req == nil {
		return true
	}
	if v, ok := req.Field("Connection"); ok {
		if hasToken(v, "close") {
			return false
		}
		if hasToken(v, "keep-alive") {
			return true
		}
	}
	return req.Protocol() == header.HTTP11
}
