package decoder

import (
	"bytes"

	"github.com/yourusername/httpcodec/header"
	"github.com/yourusername/httpcodec/httpmsg"
)

// RequestDecoder decodes request headers and bodies for a
// server-oriented engine (spec §4.D, §4.F).
type RequestDecoder struct {
	m   machine
	req *httpmsg.Request
}

func NewRequestDecoder() *RequestDecoder {
	return &RequestDecoder{m: newMachine()}
}

// Request returns the request most recently completed by Decode, once
// its Result.HeaderCompleted is true.
func (d *RequestDecoder) Request() *httpmsg.Request { return d.req }

// Close releases the decoder's pooled line-assembly buffer (spec §5).
// A RequestDecoder must not be used after Close.
func (d *RequestDecoder) Close() { d.m.close() }

// Decode advances the state machine, writing body bytes into out and
// reporting how much of in/out it used (spec §4.D contract).
func (d *RequestDecoder) Decode(in []byte, out []byte, endOfInput bool) (nIn, nOut int, res Result, err error) {
	var inPos, outPos int
	res, err = d.m.decode(d, in, &inPos, out, &outPos, endOfInput)
	return inPos, outPos, res, err
}

func (d *RequestDecoder) headerObj() *header.Header { return d.req.Header }

func (d *RequestDecoder) parseStartLine(line []byte) error {
	d.req = httpmsg.NewRequest("", "", header.ProtocolUnknown, false)

	sp1 := bytes.IndexByte(line, ' ')
	if sp1 <= 0 {
		return errStr("malformed request line")
	}
	rest := line[sp1+1:]
	sp2 := bytes.IndexByte(rest, ' ')
	if sp2 <= 0 {
		return errStr("malformed request line")
	}
	method := string(line[:sp1])
	uri := string(rest[:sp2])
	versionTok := string(rest[sp2+1:])

	proto, err := parseProtocol(versionTok)
	if err != nil {
		return err
	}

	d.req.Method = method
	d.req.RequestURI = uri
	d.req.SetProtocol(proto)
	return nil
}

func (d *RequestDecoder) framingDecision(hasCL bool, cl int64, teChunked bool) (bodyKind, int64, bool, error) {
	// spec §4.D framing decision, request side: HEAD never has a body
	// (handled by the response decoder, not here); a request with
	// neither CL nor TE has length 0 (spec §9 Open Question, resolved).
	switch {
	case teChunked:
		return bodyChunked, 0, false, nil
	case hasCL:
		return bodyIdentity, cl, false, nil
	default:
		return bodyNone, 0, false, nil
	}
}

func (d *RequestDecoder) onHeaderComplete(expectContinue bool) {
	d.req.SetHasPayload(d.m.bKind != bodyNone)
	httpmsg.NewPreliminaryResponse(d.req)
}

func errStr(s string) error { return &simpleErr{s} }

type simpleErr struct{ s string }

func (e *simpleErr) Error() string { return e.s }
