package httpmsg

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/yourusername/httpcodec/header"
	"github.com/yourusername/httpcodec/urlquery"
)

// Request is the spec §3 HttpRequest: a MessageHeader (embedded
// *header.Header) plus method, request-URI, effective host/port, an
// optional associated prepared response, and a lazily computed query
// map.
type Request struct {
	*header.Header

	Method     string
	RequestURI string

	host string
	port int // -1 means "default for scheme", per spec §3

	// Response is the back-reference set by the decoder on completing
	// this request's header (spec §3, §4.D). Relation only — the
	// decoder does not own the lifetime of either side.
	Response *Response

	emitted bool // set once, by convention, on first wire emission

	query       *urlquery.Data
	queryParsed bool
}

// NewRequest constructs a request per spec §6's public API:
// HttpRequest(method, uri, protocol, hasPayload).
func NewRequest(method, uri string, protocol header.Protocol, hasPayload bool) *Request {
	r := &Request{
		Header:     header.New(protocol),
		Method:     strings.ToUpper(method),
		RequestURI: uri,
		port:       -1,
	}
	r.Header.SetHasPayload(hasPayload)
	if u, err := url.Parse(uri); err == nil {
		r.host = u.Hostname()
		if p := u.Port(); p != "" {
			if n, err := strconv.Atoi(p); err == nil {
				r.port = n
			}
		}
	}
	return r
}

// Host returns the effective host, defaulting to the request-URI's
// authority (spec §3). Mutable until the first wire emission.
func (r *Request) Host() string { return r.host }

// SetHost overrides the effective host.
func (r *Request) SetHost(h string) { r.host = h }

// Port returns the effective port, or -1 for "default for scheme"
// (spec §3).
func (r *Request) Port() int { return r.port }

// SetPort overrides the effective port.
func (r *Request) SetPort(p int) { r.port = p }

// MarkEmitted records that this request has been handed to the
// encoder for emission (spec §3 lifecycle note — advisory only, not
// enforced).
func (r *Request) MarkEmitted() { r.emitted = true }

func (r *Request) Emitted() bool { return r.emitted }

// QueryData parses the request-URI's raw query into an ordered,
// immutable key -> list<value> map, memoized after first access
// (spec §6, §9 "lazy cache").
func (r *Request) QueryData(charset string) (*urlquery.Data, error) {
	if r.queryParsed {
		return r.query, nil
	}
	raw := ""
	if u, err := url.Parse(r.RequestURI); err == nil {
		raw = u.RawQuery
	} else if i := strings.IndexByte(r.RequestURI, '?'); i >= 0 {
		raw = r.RequestURI[i+1:]
	}
	d, err := urlquery.ParseQuery(raw, charset)
	if err != nil {
		return nil, err
	}
	r.query = d
	r.queryParsed = true
	return d, nil
}
