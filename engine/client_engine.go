package engine

import (
	"github.com/yourusername/httpcodec/decoder"
	"github.com/yourusername/httpcodec/encoder"
	"github.com/yourusername/httpcodec/httpmsg"
)

// ClientEngine pairs a ResponseDecoder with a RequestEncoder, the
// symmetric counterpart of ServerEngine (spec §4.F "the client-oriented
// engine is symmetric").
type ClientEngine struct {
	dec *decoder.ResponseDecoder
	enc *encoder.RequestEncoder

	curReq  *httpmsg.Request
	curResp *httpmsg.Response
}

func NewClientEngine() *ClientEngine {
	return &ClientEngine{
		dec: decoder.NewResponseDecoder(),
		enc: encoder.NewRequestEncoder(),
	}
}

// EncodeHeader latches req as the next request to emit, and records it
// as the request the next decoded response will be associated with
// (spec §4.D "the caller must associate each response with its
// request before decoding it").
func (e *ClientEngine) EncodeHeader(req *httpmsg.Request) error {
	e.curReq = req
	e.dec.SetAssociatedRequest(req)
	return e.enc.Encode(req)
}

func (e *ClientEngine) Encode(in, out []byte, endOfInput bool) (nIn, nOut int, res encoder.Result) {
	return e.enc.Step(in, out, endOfInput)
}

func (e *ClientEngine) Decode(in, out []byte, endOfInput bool) (nIn, nOut int, res decoder.Result, err error) {
	nIn, nOut, res, err = e.dec.Decode(in, out, endOfInput)
	if res.HeaderCompleted {
		e.curResp = e.dec.Response()
	}
	return nIn, nOut, res, err
}

func (e *ClientEngine) CurrentRequest() *httpmsg.Request   { return e.curReq }
func (e *ClientEngine) CurrentResponse() *httpmsg.Response { return e.curResp }
