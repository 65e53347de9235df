package httpmsg

import "github.com/yourusername/httpcodec/header"

// PreliminaryStatus is the status the decoder assigns a freshly
// prepared response before the application has produced a real one
// (spec §3, §4.D): "The response's initial status upon being prepared
// by the decoder is 501."
const PreliminaryStatus = 501

// Response is the spec §3 HttpResponse: a MessageHeader plus a status
// code, reason phrase, and a back-reference to its request.
type Response struct {
	*header.Header

	StatusCode   int
	ReasonPhrase string

	// Request is a relation-only back-reference (spec §3) — ownership
	// of the request stays with whoever drives the connection.
	Request *Request
}

// NewResponse constructs a response with the given status, protocol,
// and payload flag.
func NewResponse(status int, protocol header.Protocol, hasPayload bool) *Response {
	r := &Response{
		Header:       header.New(protocol),
		StatusCode:   status,
		ReasonPhrase: ReasonPhrase(status),
	}
	r.Header.SetHasPayload(hasPayload)
	return r
}

// NewPreliminaryResponse builds the 501 placeholder the decoder
// attaches to a request on completing its header (spec §4.D).
func NewPreliminaryResponse(req *Request) *Response {
	resp := NewResponse(PreliminaryStatus, req.Protocol(), false)
	resp.Request = req
	req.Response = resp
	return resp
}

// ReasonPhrase returns the standard reason phrase for a status code,
// or "" if none is known (callers may still set any free-form phrase
// per spec §3).
func ReasonPhrase(status int) string {
	if p, ok := standardReasons[status]; ok {
		return p
	}
	return ""
}

var standardReasons = map[int]string{
	100: "Continue",
	101: "Switching Protocols",
	200: "OK",
	201: "Created",
	202: "Accepted",
	204: "No Content",
	206: "Partial Content",
	301: "Moved Permanently",
	302: "Found",
	303: "See Other",
	304: "Not Modified",
	307: "Temporary Redirect",
	308: "Permanent Redirect",
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	408: "Request Timeout",
	411: "Length Required",
	413: "Payload Too Large",
	414: "URI Too Long",
	426: "Upgrade Required",
	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
}
