package encoder

import (
	"strconv"

	"github.com/yourusername/httpcodec/internal/pool"
)

type bodyKind int

const (
	bkNone bodyKind = iota
	bkIdentity
	bkChunked
	bkUntilClose
)

// bodyState drives the body-bytes phase of a single message (spec
// §4.E). It never blocks: every step either makes progress or reports
// overflow/underflow, mirroring decoder.machine on the write side.
type bodyState struct {
	kind       bodyKind
	remaining  int64 // bkIdentity: bytes left to copy; unused otherwise
	terminated bool  // bkChunked: terminator chunk already queued
	scratch    []byte // framing bytes (chunk header/trailer, terminator) pending flush to out

	frameBB *pool.Buffer // backs scratch while a chunk frame is being built and drained (spec §5)
}

// release returns any pooled frame buffer still held. Safe to call
// repeatedly; a no-op once nothing is pooled.
func (b *bodyState) release() {
	if b.frameBB != nil {
		pool.Put(b.frameBB)
		b.frameBB = nil
	}
}

// step attempts to make one round of progress. done reports the body
// (and therefore the message) is fully emitted.
func (b *bodyState) step(in []byte, inPos *int, out []byte, outPos *int, endOfInput bool) (done, overflow, underflow bool) {
	if len(b.scratch) > 0 {
		n := copy(out[*outPos:], b.scratch)
		*outPos += n
		b.scratch = b.scratch[n:]
		if len(b.scratch) > 0 {
			return false, true, false
		}
		b.release()
		if b.kind == bkChunked && b.terminated {
			return true, false, false
		}
	}

	switch b.kind {
	case bkNone:
		return true, false, false

	case bkIdentity, bkUntilClose:
		if b.kind == bkIdentity && b.remaining == 0 {
			return true, false, false
		}
		avail := len(in) - *inPos
		room := len(out) - *outPos
		if avail == 0 {
			if endOfInput {
				if b.kind == bkUntilClose {
					return true, false, false
				}
				return false, false, true
			}
			return false, false, true
		}
		if room == 0 {
			return false, true, false
		}
		n := avail
		if room < n {
			n = room
		}
		if b.kind == bkIdentity && int64(n) > b.remaining {
			n = int(b.remaining)
		}
		copy(out[*outPos:*outPos+n], in[*inPos:*inPos+n])
		*inPos += n
		*outPos += n
		if b.kind == bkIdentity {
			b.remaining -= int64(n)
			if b.remaining == 0 {
				return true, false, false
			}
		}
		return false, false, false

	case bkChunked:
		avail := len(in) - *inPos
		if avail == 0 {
			if !endOfInput {
				return false, false, true
			}
			b.scratch = append(b.scratch, []byte("0\r\n\r\n")...)
			b.terminated = true
			n := copy(out[*outPos:], b.scratch)
			*outPos += n
			b.scratch = b.scratch[n:]
			if len(b.scratch) > 0 {
				return false, true, false
			}
			return true, false, false
		}
		bb := pool.Get()
		bb.Reset()
		bb.B = strconv.AppendInt(bb.B, int64(avail), 16)
		bb.B = append(bb.B, '\r', '\n')
		bb.B = append(bb.B, in[*inPos:*inPos+avail]...)
		bb.B = append(bb.B, '\r', '\n')
		*inPos += avail
		b.frameBB = bb
		b.scratch = bb.B
		n := copy(out[*outPos:], b.scratch)
		*outPos += n
		b.scratch = b.scratch[n:]
		if len(b.scratch) > 0 {
			return false, true, false
		}
		b.release()
		return false, false, false
	}
	return false, false, false
}
