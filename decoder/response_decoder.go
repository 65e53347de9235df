package decoder

import (
	"bytes"
	"strconv"

	"github.com/yourusername/httpcodec/header"
	"github.com/yourusername/httpcodec/httpmsg"
)

// ResponseDecoder decodes response headers and bodies for a
// client-oriented engine (spec §4.D, §4.F).
//
// Because a response's framing depends on the request that provoked
// it (HEAD responses and 1xx/204/304 never carry a body, spec §4.D),
// the caller must associate each response with its request before
// decoding it — exactly mirroring how the request/response pairing is
// tracked by whichever engine drives the connection (spec §4.F
// currentRequest()/currentResponse()).
type ResponseDecoder struct {
	m    machine
	resp *httpmsg.Response
	req  *httpmsg.Request
}

func NewResponseDecoder() *ResponseDecoder {
	return &ResponseDecoder{m: newMachine()}
}

// SetAssociatedRequest must be called before decoding each response,
// in the order requests were sent (spec §4.D, §5 "ordering guarantees").
func (d *ResponseDecoder) SetAssociatedRequest(req *httpmsg.Request) {
	d.req = req
}

func (d *ResponseDecoder) Response() *httpmsg.Response { return d.resp }

// Close releases the decoder's pooled line-assembly buffer (spec §5).
// A ResponseDecoder must not be used after Close.
func (d *ResponseDecoder) Close() { d.m.close() }

func (d *ResponseDecoder) Decode(in []byte, out []byte, endOfInput bool) (nIn, nOut int, res Result, err error) {
	var inPos, outPos int
	res, err = d.m.decode(d, in, &inPos, out, &outPos, endOfInput)
	return inPos, outPos, res, err
}

func (d *ResponseDecoder) headerObj() *header.Header { return d.resp.Header }

func (d *ResponseDecoder) parseStartLine(line []byte) error {
	sp1 := bytes.IndexByte(line, ' ')
	if sp1 <= 0 {
		return errStr("malformed status line")
	}
	versionTok := string(line[:sp1])
	rest := line[sp1+1:]
	sp2 := bytes.IndexByte(rest, ' ')

	var statusTok string
	var reason string
	if sp2 < 0 {
		statusTok = string(rest)
	} else {
		statusTok = string(rest[:sp2])
		reason = string(rest[sp2+1:])
	}

	proto, err := parseProtocol(versionTok)
	if err != nil {
		return err
	}
	status, err := strconv.Atoi(statusTok)
	if err != nil || status < 100 || status > 599 {
		return errStr("invalid status code")
	}

	d.resp = httpmsg.NewResponse(status, proto, false)
	d.resp.ReasonPhrase = reason
	d.resp.Request = d.req
	return nil
}

func (d *ResponseDecoder) framingDecision(hasCL bool, cl int64, teChunked bool) (bodyKind, int64, bool, error) {
	status := d.resp.StatusCode
	headOrBodiless := (status >= 100 && status < 200) || status == 204 || status == 304
	if d.req != nil && d.req.Method == "HEAD" {
		headOrBodiless = true
	}
	switch {
	case headOrBodiless:
		return bodyNone, 0, false, nil
	case teChunked:
		return bodyChunked, 0, false, nil
	case hasCL:
		return bodyIdentity, cl, false, nil
	default:
		return bodyUntilClose, 0, true, nil
	}
}

func (d *ResponseDecoder) onHeaderComplete(expectContinue bool) {
	d.resp.SetHasPayload(d.m.bKind != bodyNone)
}
