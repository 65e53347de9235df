// Package pool wraps valyala/bytebufferpool for the scratch buffers
// the decoder and encoder each own for line assembly and chunk framing
// (spec §5: "the decoder and encoder each own their own scratch
// buffers for line assembly"). It replaces the teacher's ad hoc
// sync.Pool-of-[]byte idiom (pkg/shockwave/http11/pool.go,
// pkg/shockwave/websocket/pool.go) with the pack-standard pooled
// buffer type.
package pool

import "github.com/valyala/bytebufferpool"

// Buffer is a reusable byte-accumulation scratch buffer.
type Buffer = bytebufferpool.ByteBuffer

// Get returns an empty Buffer from the shared pool.
func Get() *Buffer { return bytebufferpool.Get() }

// Put returns b to the shared pool. Callers must not use b again
// afterward.
func Put(b *Buffer) { bytebufferpool.Put(b) }
