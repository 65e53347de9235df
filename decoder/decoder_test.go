package decoder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestS1_SimpleGetNoBody(t *testing.T) {
	d := NewRequestDecoder()
	in := []byte("GET /x HTTP/1.1\r\nHost: a\r\n\r\n")
	out := make([]byte, 64)

	nIn, _, res, err := d.Decode(in, out, false)
	require.NoError(t, err)
	require.True(t, res.HeaderCompleted)
	require.Equal(t, len(in), nIn)

	req := d.Request()
	require.Equal(t, "GET", req.Method)
	require.Equal(t, "/x", req.RequestURI)
	require.False(t, req.HasPayload())
	require.NotNil(t, req.Response)
	require.Equal(t, 501, req.Response.StatusCode)
}

func TestS2_ContentLengthBody(t *testing.T) {
	d := NewRequestDecoder()
	in := []byte("POST / HTTP/1.1\r\nHost: a\r\nContent-Length: 5\r\n\r\nhelloEXTRA")
	out := make([]byte, 64)

	nIn, nOut, res, err := d.Decode(in, out, false)
	require.NoError(t, err)
	require.True(t, res.HeaderCompleted)
	require.False(t, res.MessageDone)

	nIn2, nOut2, res2, err := d.Decode(in[nIn:], out[nOut:], false)
	require.NoError(t, err)
	require.True(t, res2.MessageDone)
	require.Equal(t, "hello", string(out[:nOut+nOut2]))
	require.Equal(t, len("hello"), nIn2)
}

func TestS3_ChunkedBody(t *testing.T) {
	d := NewRequestDecoder()
	in := []byte("POST / HTTP/1.1\r\nHost: a\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"5\r\nhello\r\n6\r\n world\r\n0\r\n\r\n")
	out := make([]byte, 1024)

	var total []byte
	pos := 0
	for pos < len(in) {
		nIn, nOut, res, err := d.Decode(in[pos:], out, false)
		require.NoError(t, err)
		pos += nIn
		total = append(total, out[:nOut]...)
		if res.MessageDone {
			break
		}
	}
	require.Equal(t, "hello world", string(total))
}

func TestChunkedInvarianceAcrossArbitrarySplits(t *testing.T) {
	full := "POST / HTTP/1.1\r\nHost: a\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"5\r\nhello\r\n6\r\n world\r\n0\r\n\r\n"

	for split := 1; split < len(full); split++ {
		d := NewRequestDecoder()
		out := make([]byte, 1024)
		var total []byte

		feed := func(chunk []byte) {
			pos := 0
			for pos < len(chunk) {
				nIn, nOut, res, err := d.Decode(chunk[pos:], out, false)
				require.NoError(t, err)
				pos += nIn
				total = append(total, out[:nOut]...)
				_ = res
				if nIn == 0 && nOut == 0 {
					break // underflow on this fragment; move to next fragment
				}
			}
		}
		feed([]byte(full[:split]))
		feed([]byte(full[split:]))

		require.Equal(t, "hello world", string(total), "split at %d", split)
	}
}

func TestHeadResponseHasNoBodyRegardlessOfContentLength(t *testing.T) {
	rd := NewRequestDecoder()
	reqIn := []byte("HEAD /x HTTP/1.1\r\nHost: a\r\n\r\n")
	_, _, _, err := rd.Decode(reqIn, make([]byte, 64), false)
	require.NoError(t, err)

	d := NewResponseDecoder()
	d.SetAssociatedRequest(rd.Request())
	in := []byte("HTTP/1.1 200 OK\r\nContent-Length: 12345\r\n\r\n")
	out := make([]byte, 64)
	_, _, res, err := d.Decode(in, out, false)
	require.NoError(t, err)
	require.True(t, res.HeaderCompleted)
	require.True(t, res.MessageDone)
	require.False(t, d.Response().HasPayload())
}

func TestMalformedRequestLineIsFatal(t *testing.T) {
	d := NewRequestDecoder()
	in := []byte("BOGUS\r\n\r\n")
	out := make([]byte, 16)
	_, _, _, err := d.Decode(in, out, false)
	require.Error(t, err)
	derr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, MalformedStartLine, derr.Kind)
}

func TestContentLengthAndTransferEncodingConflict(t *testing.T) {
	d := NewRequestDecoder()
	in := []byte("POST / HTTP/1.1\r\nHost: a\r\nContent-Length: 5\r\nTransfer-Encoding: chunked\r\n\r\nhello")
	out := make([]byte, 16)
	_, _, _, err := d.Decode(in, out, false)
	require.Error(t, err)
	derr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, BadFraming, derr.Kind)
}

func TestUnsupportedVersion(t *testing.T) {
	d := NewRequestDecoder()
	in := []byte("GET / HTTP/2.0\r\n\r\n")
	out := make([]byte, 16)
	_, _, _, err := d.Decode(in, out, false)
	require.Error(t, err)
	derr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, UnsupportedVersion, derr.Kind)
}

func TestProgressInvariantUnderflowOnEmptyInput(t *testing.T) {
	d := NewRequestDecoder()
	out := make([]byte, 16)
	nIn, nOut, res, err := d.Decode(nil, out, false)
	require.NoError(t, err)
	require.Equal(t, 0, nIn)
	require.Equal(t, 0, nOut)
	require.True(t, res.Underflow)
}

func TestOverflowWhenOutBufferFull(t *testing.T) {
	d := NewRequestDecoder()
	in := []byte("POST / HTTP/1.1\r\nHost: a\r\nContent-Length: 10\r\n\r\n0123456789")
	out := make([]byte, 32)
	nIn, _, res, err := d.Decode(in, out, false)
	require.NoError(t, err)
	require.True(t, res.HeaderCompleted)

	small := make([]byte, 0)
	_, _, res2, err := d.Decode(in[nIn:], small, false)
	require.NoError(t, err)
	require.True(t, res2.Overflow)
}
