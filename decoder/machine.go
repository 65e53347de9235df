// Package decoder implements the incremental HTTP/1.x decoder state
// machine of spec §4.D: decode(in, out, endOfInput) -> Result never
// blocks, and resumes exactly where it left off across an arbitrary
// number of calls (spec §5).
//
// The state machine itself (machine) is shared between RequestDecoder
// and ResponseDecoder; what differs between decoding a request and a
// response is the start-line grammar and the body-framing decision
// (spec §4.D "Framing decision"), captured by the small target
// interface each concrete decoder implements.
package decoder

import (
	"github.com/yourusername/httpcodec/header"
	"github.com/yourusername/httpcodec/internal/pool"
)

const defaultMaxLineLength = 8192

type state int

const (
	stAwaitMessage state = iota
	stStartLine
	stHeaders
	stAfterHeaders
	stBodyIdentity
	stBodyChunkSize
	stBodyChunkData
	stBodyChunkCRLF
	stTrailers
	stMessageDone
)

type bodyKind int

const (
	bodyNone bodyKind = iota
	bodyIdentity
	bodyChunked
	bodyUntilClose
)

// Result reports the outcome of one Decode call (spec §4.D).
type Result struct {
	HeaderCompleted bool
	BodyBytes       int // bytes written to out this call
	MessageDone     bool
	Overflow        bool
	Underflow       bool
	CloseConnection bool
	ExpectContinue  bool // Expect: 100-continue seen on this request's header
}

// target is what a concrete decoder (request- or response-side)
// supplies to drive the shared machine.
type target interface {
	headerObj() *header.Header
	// parseStartLine consumes the start line (without CRLF) and
	// initializes the message-specific fields (method/URI/protocol or
	// protocol/status/reason).
	parseStartLine(line []byte) error
	// framingDecision is called once header parsing completes,
	// implementing spec §4.D's "Framing decision" table for this
	// message kind.
	framingDecision(hasCL bool, cl int64, teChunked bool) (bodyKind, int64, closeConn bool, err error)
	// onHeaderComplete runs side effects specific to this message kind
	// (e.g. attaching the request's preliminary 501 response).
	onHeaderComplete(expectContinue bool)
}

// machine is the shared state machine body. It owns no caller buffers
// beyond its own line-assembly scratch (spec §5).
type machine struct {
	maxLineLength int

	st state

	lineBuf *pool.Buffer // scratch accumulation for the line currently being read, pooled (spec §5)

	hasContentLength bool
	contentLength    int64
	teChunked        bool
	hasHost          bool

	bKind      bodyKind
	bRemaining int64 // for bodyIdentity / bodyChunked current chunk

	closeConnection bool
	expectContinue  bool

	headerEmittedForCurrent bool
}

func newMachine() machine {
	buf := pool.Get()
	buf.Reset()
	return machine{maxLineLength: defaultMaxLineLength, st: stAwaitMessage, lineBuf: buf}
}

// close releases the machine's pooled scratch buffer. A decoder that
// is discarded without calling this simply lets the buffer be
// reclaimed by the garbage collector instead of returned to the pool.
func (m *machine) close() {
	if m.lineBuf != nil {
		pool.Put(m.lineBuf)
		m.lineBuf = nil
	}
}

// decode drives the shared loop. It never blocks: every branch either
// makes progress against in/out or returns with Underflow/Overflow set
// (spec §8 invariant 4 "Progress").
func (m *machine) decode(t target, in []byte, inPos *int, out []byte, outPos *int, endOfInput bool) (Result, error) {
	var res Result

	for {
		switch m.st {
		case stAwaitMessage:
			// Skip leading CRLFs between pipelined messages (spec §4.D).
			for *inPos < len(in) && (in[*inPos] == '\r' || in[*inPos] == '\n') {
				*inPos++
			}
			if *inPos >= len(in) {
				if endOfInput {
					res.Underflow = true
					return res, nil
				}
				res.Underflow = true
				return res, nil
			}
			m.resetForNewMessage()
			m.st = stStartLine

		case stStartLine:
			line, ok, err := m.feedLine(in, inPos)
			if err != nil {
				return res, err
			}
			if !ok {
				if endOfInput {
					return res, errKind(UnexpectedEOF, *inPos, "EOF mid start-line")
				}
				res.Underflow = true
				return res, nil
			}
			if err := t.parseStartLine(line); err != nil {
				if _, ok := err.(*unsupportedVersionErr); ok {
					return res, errKind(UnsupportedVersion, *inPos, err.Error())
				}
				return res, errKind(MalformedStartLine, *inPos, err.Error())
			}
			m.st = stHeaders

		case stHeaders:
			line, ok, err := m.feedLine(in, inPos)
			if err != nil {
				return res, err
			}
			if !ok {
				if endOfInput {
					return res, errKind(UnexpectedEOF, *inPos, "EOF mid headers")
				}
				res.Underflow = true
				return res, nil
			}
			if len(line) == 0 {
				m.st = stAfterHeaders
				continue
			}
			if err := m.consumeHeaderLine(t, line); err != nil {
				return res, err
			}

		case stAfterHeaders:
			if m.hasContentLength && m.teChunked {
				return res, errKind(BadFraming, *inPos, "Content-Length with Transfer-Encoding")
			}
			kind, length, closeConn, err := t.framingDecision(m.hasContentLength, m.contentLength, m.teChunked)
			if err != nil {
				return res, errKind(BadFraming, *inPos, err.Error())
			}
			m.bKind = kind
			m.bRemaining = length
			m.closeConnection = m.closeConnection || closeConn
			res.CloseConnection = m.closeConnection
			res.HeaderCompleted = true
			res.ExpectContinue = m.expectContinue
			t.onHeaderComplete(m.expectContinue)
			m.headerEmittedForCurrent = true
			if kind == bodyNone {
				// No body frames will ever follow (spec §3 "A message
				// with hasPayload=false must not produce body bytes
				// through the codec"); finish the message in the same
				// call instead of waiting for an empty-progress round
				// trip.
				m.st = stMessageDone
				continue
			}
			switch kind {
			case bodyIdentity, bodyUntilClose:
				m.st = stBodyIdentity
			case bodyChunked:
				m.st = stBodyChunkSize
			}
			return res, nil

		case stBodyIdentity:
			if m.bKind == bodyIdentity && m.bRemaining == 0 {
				m.st = stMessageDone
				continue
			}
			avail := len(in) - *inPos
			room := len(out) - *outPos
			if avail == 0 {
				if endOfInput {
					if m.bKind == bodyUntilClose {
						m.st = stMessageDone
						res.CloseConnection = true
						continue
					}
					return res, errKind(UnexpectedEOF, *inPos, "EOF mid body")
				}
				res.Underflow = true
				return res, nil
			}
			if room == 0 {
				res.Overflow = true
				return res, nil
			}
			n := avail
			if room < n {
				n = room
			}
			if m.bKind == bodyIdentity && int64(n) > m.bRemaining {
				n = int(m.bRemaining)
			}
			copy(out[*outPos:*outPos+n], in[*inPos:*inPos+n])
			*inPos += n
			*outPos += n
			res.BodyBytes += n
			if m.bKind == bodyIdentity {
				m.bRemaining -= int64(n)
				if m.bRemaining == 0 {
					m.st = stMessageDone
					continue
				}
			}
			return res, nil

		case stBodyChunkSize:
			line, ok, err := m.feedLine(in, inPos)
			if err != nil {
				return res, err
			}
			if !ok {
				if endOfInput {
					return res, errKind(UnexpectedEOF, *inPos, "EOF mid chunk size")
				}
				res.Underflow = true
				return res, nil
			}
			size, err := parseChunkSize(line)
			if err != nil {
				return res, errKind(BadFraming, *inPos, err.Error())
			}
			m.bRemaining = size
			if size == 0 {
				m.st = stTrailers
			} else {
				m.st = stBodyChunkData
			}

		case stBodyChunkData:
			avail := len(in) - *inPos
			room := len(out) - *outPos
			if m.bRemaining == 0 {
				m.st = stBodyChunkCRLF
				continue
			}
			if avail == 0 {
				if endOfInput {
					return res, errKind(UnexpectedEOF, *inPos, "EOF mid chunk data")
				}
				res.Underflow = true
				return res, nil
			}
			if room == 0 {
				res.Overflow = true
				return res, nil
			}
			n := avail
			if room < n {
				n = room
			}
			if int64(n) > m.bRemaining {
				n = int(m.bRemaining)
			}
			copy(out[*outPos:*outPos+n], in[*inPos:*inPos+n])
			*inPos += n
			*outPos += n
			res.BodyBytes += n
			m.bRemaining -= int64(n)
			return res, nil

		case stBodyChunkCRLF:
			line, ok, err := m.feedLine(in, inPos)
			if err != nil {
				return res, err
			}
			if !ok {
				if endOfInput {
					return res, errKind(UnexpectedEOF, *inPos, "EOF mid chunk terminator")
				}
				res.Underflow = true
				return res, nil
			}
			if len(line) != 0 {
				return res, errKind(BadFraming, *inPos, "expected CRLF after chunk data")
			}
			m.st = stBodyChunkSize

		case stTrailers:
			line, ok, err := m.feedLine(in, inPos)
			if err != nil {
				return res, err
			}
			if !ok {
				if endOfInput {
					return res, errKind(UnexpectedEOF, *inPos, "EOF mid trailers")
				}
				res.Underflow = true
				return res, nil
			}
			if len(line) == 0 {
				m.st = stMessageDone
				continue
			}
			if err := m.consumeHeaderLine(t, line); err != nil {
				return res, err
			}

		case stMessageDone:
			res.MessageDone = true
			m.st = stAwaitMessage
			return res, nil
		}
	}
}

func (m *machine) resetForNewMessage() {
	m.hasContentLength = false
	m.contentLength = 0
	m.teChunked = false
	m.hasHost = false
	m.bKind = bodyNone
	m.bRemaining = 0
	m.expectContinue = false
	m.headerEmittedForCurrent = false
	m.lineBuf.Reset()
}

// feedLine accumulates bytes from in[*inPos:] into m.lineBuf until a
// line terminator (CRLF, or bare LF tolerated per spec §6) is found.
// It returns ok=false (without error) when in is exhausted first —
// the caller resumes by calling again with more input.
func (m *machine) feedLine(in []byte, inPos *int) (line []byte, ok bool, err error) {
	for *inPos < len(in) {
		b := in[*inPos]
		*inPos++
		if b == '\n' {
			l := m.lineBuf.B
			if len(l) > 0 && l[len(l)-1] == '\r' {
				l = l[:len(l)-1]
			}
			out := append([]byte(nil), l...)
			m.lineBuf.Reset()
			return out, true, nil
		}
		m.lineBuf.B = append(m.lineBuf.B, b)
		if len(m.lineBuf.B) > m.maxLineLength {
			return nil, false, errKind(HeaderTooLong, *inPos, "line exceeds configured cap")
		}
	}
	return nil, false, nil
}

// consumeHeaderLine handles obs-fold continuation (spec §4.D: a line
// starting with SP/HTAB continues the previous field, leading
// whitespace collapsed to a single space) and otherwise splits
// "Name: Value" and stores it, tracking the special headers the
// framing decision needs.
func (m *machine) consumeHeaderLine(t target, line []byte) error {
	h := t.headerObj()
	if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') {
		fields := h.Fields()
		if len(fields) == 0 {
			return errKind(MalformedHeader, 0, "obs-fold with no preceding field")
		}
		last := fields[len(fields)-1]
		trimmed := trimOWS(line)
		h.SetField(last.Name, last.Value+" "+string(trimmed))
		return nil
	}

	colon := indexByte(line, ':')
	if colon <= 0 {
		return errKind(MalformedHeader, 0, "missing or empty header name")
	}
	if line[colon-1] == ' ' || line[colon-1] == '\t' {
		return errKind(MalformedHeader, 0, "whitespace before colon")
	}
	name := string(line[:colon])
	value := string(trimOWS(line[colon+1:]))
	h.SetField(name, value)
	m.trackSpecialHeader(name, value)
	return nil
}

func (m *machine) trackSpecialHeader(name, value string) {
	switch {
	case equalFold(name, "Content-Length"):
		n, err := parseUint(value)
		if err == nil {
			m.hasContentLength = true
			m.contentLength = n
		}
	case equalFold(name, "Transfer-Encoding"):
		if hasSuffixFold(value, "chunked") {
			m.teChunked = true
		}
	case equalFold(name, "Host"):
		m.hasHost = true
	case equalFold(name, "Expect"):
		if equalFold(value, "100-continue") {
			m.expectContinue = true
		}
	}
}
