package engine

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint is an optional connection-fingerprint hook surfaced to
// the host (not specified by spec.md — harmless ambient infrastructure
// alongside the engine, not part of its codec contract). It hashes
// arbitrary connection-identifying byte strings (e.g. remote address,
// negotiated subprotocol) with BLAKE2b-256, distinct from the
// websocket handshake's mandatory SHA-1 Sec-WebSocket-Accept
// computation (RFC 6455, left untouched — see DESIGN.md).
func Fingerprint(parts ...[]byte) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	for _, p := range parts {
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
