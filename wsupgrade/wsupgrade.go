// Package wsupgrade is the spec §4.F protocol-switch target: it builds
// the WebSocket (RFC 6455) handshake response against this module's
// own httpmsg/header types, then — once the core encoder has fully
// flushed that 101 response — hands the underlying net.Conn to the
// teacher's adapted frame implementation (pkg/shockwave/websocket).
//
// The core engine never imports this package; it only invokes the
// SwitchProvider hook a host installs, keeping protocol knowledge out
// of the decoder/encoder/engine (spec §4.F "the engine adds no
// protocol logic beyond switch handling").
package wsupgrade

import (
	"net"
	"strings"

	"github.com/yourusername/httpcodec/encoder"
	"github.com/yourusername/httpcodec/header"
	"github.com/yourusername/httpcodec/httpmsg"
	wsframe "github.com/yourusername/httpcodec/pkg/shockwave/websocket"
)

const wsVersion = "13"

// IsUpgradeRequest reports whether req is a well-formed WebSocket
// handshake request (RFC 6455 §4.2.1).
func IsUpgradeRequest(req *httpmsg.Request) bool {
	if req.Method != "GET" {
		return false
	}
	if !fieldHasToken(req.Header, "Connection", "upgrade") {
		return false
	}
	if !fieldHasToken(req.Header, "Upgrade", "websocket") {
		return false
	}
	if v, ok := req.Field("Sec-WebSocket-Version"); !ok || v != wsVersion {
		return false
	}
	key, ok := req.Field("Sec-WebSocket-Key")
	return ok && key != ""
}

// BuildSwitchResponse computes the 101 response for req, selecting a
// subprotocol from serverProtocols if the client offered one the
// server also supports (spec §4.E "a request successfully upgrades").
func BuildSwitchResponse(req *httpmsg.Request, serverProtocols []string) *httpmsg.Response {
	key, _ := req.Field("Sec-WebSocket-Key")
	accept := wsframe.ComputeAcceptKey(key)

	resp := httpmsg.NewResponse(101, req.Protocol(), false)
	resp.SetField("Upgrade", "websocket")
	resp.SetField("Connection", "Upgrade")
	resp.SetField("Sec-WebSocket-Accept", accept)
	if proto := negotiateSubprotocol(req, serverProtocols); proto != "" {
		resp.SetField("Sec-WebSocket-Protocol", proto)
	}
	resp.Request = req
	return resp
}

func negotiateSubprotocol(req *httpmsg.Request, serverProtocols []string) string {
	offered, ok := req.Field("Sec-WebSocket-Protocol")
	if !ok {
		return ""
	}
	for _, client := range strings.Split(offered, ",") {
		client = strings.TrimSpace(client)
		for _, server := range serverProtocols {
			if client == server {
				return client
			}
		}
	}
	return ""
}

// SwitchProvider returns the hook a ResponseEncoder (or ServerEngine)
// installs via SetSwitchProvider: once the 101 response it was given
// by BuildSwitchResponse has been fully flushed to netConn, it hands
// the connection to a new wsframe.Conn and reports the switch (spec
// §4.E/§4.F, S6). readBufSize/writeBufSize are passed to wsframe.NewConn,
// whose frame reader and writer do not size their buffers from them.
func SwitchProvider(netConn net.Conn, readBufSize, writeBufSize int) func(*httpmsg.Response) (encoder.ProtocolSwitchResult, bool) {
	return func(resp *httpmsg.Response) (encoder.ProtocolSwitchResult, bool) {
		if resp.StatusCode != 101 {
			return encoder.ProtocolSwitchResult{}, false
		}
		if v, ok := resp.Field("Upgrade"); !ok || !strings.EqualFold(v, "websocket") {
			return encoder.ProtocolSwitchResult{}, false
		}
		subprotocol, _ := resp.Field("Sec-WebSocket-Protocol")
		conn := wsframe.NewConn(netConn, true, readBufSize, writeBufSize, subprotocol)
		return encoder.ProtocolSwitchResult{
			Protocol:   "websocket",
			NewDecoder: conn,
			NewEncoder: conn,
		}, true
	}
}

func fieldHasToken(h *header.Header, name, token string) bool {
	v, ok := h.Field(name)
	if !ok {
		return false
	}
	for _, part := range strings.Split(v, ",") {
		if strings.EqualFold(strings.TrimSpace(part), token) {
			return true
		}
	}
	return false
}
