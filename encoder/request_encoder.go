package encoder

import (
	"fmt"
	"strconv"

	"github.com/yourusername/httpcodec/header"
	"github.com/yourusername/httpcodec/httpmsg"
)

// RequestEncoder emits requests for a client-oriented engine (spec
// §4.E, §4.F), symmetric to ResponseEncoder.
type RequestEncoder struct {
	core
}

func NewRequestEncoder() *RequestEncoder { return &RequestEncoder{} }

// Encode latches req as the next message to emit.
func (e *RequestEncoder) Encode(req *httpmsg.Request) error {
	return e.core.latchFinal(&requestTarget{req: req})
}

func (e *RequestEncoder) Step(in []byte, out []byte, endOfInput bool) (nIn, nOut int, res Result) {
	var inPos, outPos int
	res = e.core.step(in, &inPos, out, &outPos, endOfInput)
	return inPos, outPos, res
}

type requestTarget struct{ req *httpmsg.Request }

func (t *requestTarget) headerObj() *header.Header { return t.req.Header }

func (t *requestTarget) renderStartLine() string {
	uri := t.req.RequestURI
	if uri == "" {
		uri = "/"
	}
	return fmt.Sprintf("%s %s %s", t.req.Method, uri, t.req.Protocol())
}

func (t *requestTarget) decideFraming() (bodyKind, int64, bool) {
	h := t.req.Header
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
	h.SetField("Transfer-Encoding", "chunked")
	return bkChunked, 0, false
}
