package encoder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/httpcodec/header"
	"github.com/yourusername/httpcodec/httpmsg"
)

func drain(t *testing.T, step func(in, out []byte, eof bool) (int, int, Result), body []byte) (string, []Result) {
	var wire []byte
	var results []Result
	out := make([]byte, 8)
	pos := 0
	for {
		eof := pos >= len(body)
		nIn, nOut, res := step(body[pos:], out, eof)
		pos += nIn
		wire = append(wire, out[:nOut]...)
		results = append(results, res)
		if res.MessageDone {
			break
		}
		if res.Underflow && eof {
			t.Fatalf("encoder stalled: underflow with endOfInput already true")
		}
	}
	return string(wire), results
}

func TestS4_ChunkedResponseEncoding(t *testing.T) {
	e := NewResponseEncoder()
	req := httpmsg.NewRequest("GET", "/", header.HTTP11, false)
	e.SetAssociatedRequest(req)

	resp := httpmsg.NewResponse(200, header.HTTP11, true)
	require.NoError(t, e.Encode(resp))

	wire, _ := drain(t, e.Step, []byte("hello world"))
	require.Contains(t, wire, "HTTP/1.1 200 OK\r\n")
	require.Contains(t, wire, "Transfer-Encoding: chunked\r\n")
	require.Contains(t, wire, "0\r\n\r\n")
}

func TestIdentityResponseWithContentLength(t *testing.T) {
	e := NewResponseEncoder()
	req := httpmsg.NewRequest("GET", "/", header.HTTP11, false)
	e.SetAssociatedRequest(req)

	resp := httpmsg.NewResponse(200, header.HTTP11, true)
	resp.SetField("Content-Length", "5")
	require.NoError(t, e.Encode(resp))

	wire, _ := drain(t, e.Step, []byte("hello"))
	require.Contains(t, wire, "Content-Length: 5\r\n")
	require.NotContains(t, wire, "Transfer-Encoding")
	require.Contains(t, wire, "\r\n\r\nhello")
}

func TestNonPersistentRequestClosesConnection(t *testing.T) {
	e := NewResponseEncoder()
	req := httpmsg.NewRequest("GET", "/", header.HTTP10, false)
	e.SetAssociatedRequest(req)

	resp := httpmsg.NewResponse(200, header.HTTP10, true)
	require.NoError(t, e.Encode(resp))

	_, results := drain(t, e.Step, []byte("bye"))
	last := results[len(results)-1]
	require.True(t, last.MessageDone)
	require.True(t, last.CloseConnection)
}

func TestBodylessResponseFinishesWithoutBodyBytes(t *testing.T) {
	e := NewResponseEncoder()
	req := httpmsg.NewRequest("HEAD", "/", header.HTTP11, false)
	e.SetAssociatedRequest(req)

	resp := httpmsg.NewResponse(200, header.HTTP11, false)
	require.NoError(t, e.Encode(resp))

	out := make([]byte, 256)
	nIn, nOut, res := e.Step(nil, out, true)
	require.Equal(t, 0, nIn)
	require.True(t, res.MessageDone)
	require.Contains(t, string(out[:nOut]), "HTTP/1.1 200 OK\r\n\r\n")
}

func TestInterimContinueDoesNotDisturbFinalResponse(t *testing.T) {
	e := NewResponseEncoder()
	req := httpmsg.NewRequest("POST", "/", header.HTTP11, false)
	e.SetAssociatedRequest(req)

	e.EncodeInterimContinue()
	resp := httpmsg.NewResponse(200, header.HTTP11, true)
	resp.SetField("Content-Length", "2")
	require.NoError(t, e.Encode(resp))

	wire, _ := drain(t, e.Step, []byte("ok"))
	require.Contains(t, wire, "HTTP/1.1 100 Continue\r\n\r\n")
	require.Contains(t, wire, "HTTP/1.1 200 OK\r\n")
}

func TestS6_ProtocolSwitchFiresAfterFullFlush(t *testing.T) {
	e := NewResponseEncoder()
	req := httpmsg.NewRequest("GET", "/ws", header.HTTP11, false)
	e.SetAssociatedRequest(req)

	switched := false
	e.SetSwitchProvider(func(resp *httpmsg.Response) (ProtocolSwitchResult, bool) {
		if resp.StatusCode == 101 {
			switched = true
			return ProtocolSwitchResult{Protocol: "websocket"}, true
		}
		return ProtocolSwitchResult{}, false
	})

	resp := httpmsg.NewResponse(101, header.HTTP11, false)
	resp.ReasonPhrase = "Switching Protocols"
	resp.SetField("Upgrade", "websocket")
	resp.SetField("Connection", "Upgrade")
	require.NoError(t, e.Encode(resp))

	out := make([]byte, 256)
	_, _, res := e.Step(nil, out, true)
	require.True(t, res.MessageDone)
	require.NotNil(t, res.Switch)
	require.Equal(t, "websocket", res.Switch.Protocol)
	require.True(t, switched)
}

func TestRequestEncoderDefaultsToChunkedWithoutFraming(t *testing.T) {
	e := NewRequestEncoder()
	req := httpmsg.NewRequest("POST", "/", header.HTTP11, true)
	require.NoError(t, e.Encode(req))

	wire, _ := drain(t, e.Step, []byte("payload"))
	require.Contains(t, wire, "POST / HTTP/1.1\r\n")
	require.Contains(t, wire, "Transfer-Encoding: chunked\r\n")
}

func TestLatchingSecondFinalBeforeFirstDrainsIsInvalidState(t *testing.T) {
	e := NewResponseEncoder()
	req := httpmsg.NewRequest("GET", "/", header.HTTP11, false)
	e.SetAssociatedRequest(req)

	resp1 := httpmsg.NewResponse(200, header.HTTP11, true)
	require.NoError(t, e.Encode(resp1))

	resp2 := httpmsg.NewResponse(200, header.HTTP11, false)
	err := e.Encode(resp2)
	require.ErrorIs(t, err, ErrInvalidState)
}
