// Package encoder implements the incremental HTTP/1.x encoder state
// machine of spec §4.E: encode(messageHeader) latches the next message,
// then repeated encode(in, out, endOfInput) calls turn application body
// bytes into wire bytes without ever blocking (spec §5).
package encoder

import (
	"strings"

	"github.com/yourusername/httpcodec/header"
)

// ProtocolSwitchResult is returned once a 101 response has been fully
// flushed to the wire, handing the caller a fresh codec pair for the
// new protocol (spec §4.E, §4.F). Only ResponseEncoder installs a
// SwitchProvider; RequestEncoder never returns a ProtocolSwitchResult.
// NewDecoder/NewEncoder are deliberately untyped: the core encoder
// knows nothing about websockets or any other upgraded protocol — it
// only invokes the SwitchProvider hook the caller installed.
type ProtocolSwitchResult struct {
	Protocol   string
	NewDecoder any
	NewEncoder any
}

// Result reports the outcome of one Encode call (spec §4.E).
type Result struct {
	BytesConsumed   int // informational mirror of the returned nIn; kept for symmetry with decoder.Result
	MessageDone     bool
	Overflow        bool
	Underflow       bool
	CloseConnection bool
	Switch          *ProtocolSwitchResult
}

// msgTarget is what a concrete encoder (request- or response-side)
// supplies for one latched message.
type msgTarget interface {
	headerObj() *header.Header
	renderStartLine() string
	// decideFraming implements spec §4.E's framing-selection rules,
	// mutating headerObj() to add the Content-Length/Transfer-Encoding
	// field it picks when neither was already present.
	decideFraming() (bodyKind, int64, bool)
}

type pendingItem struct {
	bytes   []byte
	isFinal bool
	kind    bodyKind
	length  int64
	close   bool
	target  msgTarget
}

// core is the shared encoder loop, embedded by RequestEncoder and
// ResponseEncoder. It owns no caller buffers beyond its own pending
// queue (spec §5).
type core struct {
	pending []pendingItem

	headerScratch []byte
	activeFinal   *pendingItem

	bodyPhase       bool
	bs              bodyState
	pendingClose    bool
	finalQueued     bool
	lastFinalTarget msgTarget

	switchProvider func(msgTarget) (ProtocolSwitchResult, bool)
}

// latchInterim queues a header-only, field-free frame (spec §4.E
// 100-continue: "the encoder emits only the status line + CRLF +
// CRLF... without touching the latched final response").
func (c *core) latchInterim(startLine string) {
	c.pending = append(c.pending, pendingItem{bytes: []byte(startLine + "\r\n\r\n")})
}

// latchFinal queues the real message header+body for t. It is an
// error (ErrInvalidState) to latch a second final message before the
// previous one has fully drained.
func (c *core) latchFinal(t msgTarget) error {
	if c.finalQueued || c.bodyPhase {
		return ErrInvalidState
	}
	kind, length, closeConn := t.decideFraming()
	block := renderHeaderBlock(t.renderStartLine(), t.headerObj())
	c.pending = append(c.pending, pendingItem{
		bytes: block, isFinal: true, kind: kind, length: length, close: closeConn, target: t,
	})
	c.finalQueued = true
	return nil
}

// step advances the shared loop (spec §4.E contract, mirroring
// decoder.machine.decode on the write side).
func (c *core) step(in []byte, inPos *int, out []byte, outPos *int, endOfInput bool) (res Result) {
	start := *inPos
	defer func() { res.BytesConsumed = *inPos - start }()

	for {
		if len(c.headerScratch) > 0 {
			n := copy(out[*outPos:], c.headerScratch)
			*outPos += n
			c.headerScratch = c.headerScratch[n:]
			if len(c.headerScratch) > 0 {
				res.Overflow = true
				return res
			}
			if c.activeFinal != nil {
				c.bs = bodyState{kind: c.activeFinal.kind, remaining: c.activeFinal.length}
				c.bodyPhase = true
				c.pendingClose = c.activeFinal.close
				c.lastFinalTarget = c.activeFinal.target
				c.activeFinal = nil
				c.finalQueued = false
				// A bodyless message (bkNone) can resolve immediately;
				// fall straight into the body phase below instead of
				// waiting for an empty-progress round trip (mirrors
				// decoder.machine's stAfterHeaders handling).
				continue
			}
			return res
		}

		if c.bodyPhase {
			done, overflow, underflow := c.bs.step(in, inPos, out, outPos, endOfInput)
			if done {
				res.MessageDone = true
				res.CloseConnection = c.pendingClose
				c.bodyPhase = false
				if c.switchProvider != nil && c.lastFinalTarget != nil {
					if sw, ok := c.switchProvider(c.lastFinalTarget); ok {
						res.Switch = &sw
					}
				}
				return res
			}
			if overflow {
				res.Overflow = true
				return res
			}
			if underflow {
				res.Underflow = true
				return res
			}
			return res
		}

		if len(c.pending) == 0 {
			res.Underflow = true
			return res
		}
		item := c.pending[0]
		c.pending = c.pending[1:]
		c.headerScratch = item.bytes
		if item.isFinal {
			ic := item
			c.activeFinal = &ic
		}
	}
}

// renderHeaderBlock serializes a start line plus a field ordering of
// Date, Host, Content-Length-or-Transfer-Encoding, then every
// remaining field in insertion order, terminated by a blank line (spec
// §4.E "Field output ordering").
func renderHeaderBlock(startLine string, h *header.Header) []byte {
	var buf []byte
	buf = append(buf, startLine...)
	buf = append(buf, '\r', '\n')

	written := make(map[string]bool, 4)
	priority := []string{"Date", "Host", "Content-Length", "Transfer-Encoding"}
	for _, name := range priority {
		if v, ok := h.Field(name); ok {
			buf = appendField(buf, name, v)
			written[strings.ToLower(name)] = true
		}
	}
	for _, f := range h.Fields() {
		if written[strings.ToLower(f.Name)] {
			continue
		}
		buf = appendField(buf, f.Name, f.Value)
	}
	buf = append(buf, '\r', '\n')
	return buf
}

func appendField(buf []byte, name, value string) []byte {
	buf = append(buf, name...)
	buf = append(buf, ':', ' ')
	buf = append(buf, value...)
	buf = append(buf, '\r', '\n')
	return buf
}

func hasToken(value, token string) bool {
	for _, part := range strings.Split(value, ",") {
		if strings.EqualFold(strings.TrimSpace(part), token) {
			return true
		}
	}
	return false
}
