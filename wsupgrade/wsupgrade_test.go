package wsupgrade

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/httpcodec/header"
	"github.com/yourusername/httpcodec/httpmsg"
)

func handshakeRequest() *httpmsg.Request {
	req := httpmsg.NewRequest("GET", "/chat", header.HTTP11, false)
	req.SetField("Connection", "Upgrade")
	req.SetField("Upgrade", "websocket")
	req.SetField("Sec-WebSocket-Version", "13")
	req.SetField("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
	return req
}

func TestIsUpgradeRequestRecognizesWellFormedHandshake(t *testing.T) {
	require.True(t, IsUpgradeRequest(handshakeRequest()))
}

func TestIsUpgradeRequestRejectsMissingKey(t *testing.T) {
	req := handshakeRequest()
	req.Del("Sec-WebSocket-Key")
	require.False(t, IsUpgradeRequest(req))
}

func TestBuildSwitchResponseComputesStandardAcceptKey(t *testing.T) {
	resp := BuildSwitchResponse(handshakeRequest(), nil)
	require.Equal(t, 101, resp.StatusCode)
	accept, ok := resp.Field("Sec-WebSocket-Accept")
	require.True(t, ok)
	// RFC 6455 §1.3 worked example.
	require.Equal(t, "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=", accept)
}

func TestBuildSwitchResponseNegotiatesSubprotocol(t *testing.T) {
	req := handshakeRequest()
	req.SetField("Sec-WebSocket-Protocol", "soap, chat")
	resp := BuildSwitchResponse(req, []string{"chat"})
	v, ok := resp.Field("Sec-WebSocket-Protocol")
	require.True(t, ok)
	require.Equal(t, "chat", v)
}
