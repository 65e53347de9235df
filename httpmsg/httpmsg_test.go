package httpmsg

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yourusername/httpcodec/header"
)

func TestNewRequestDefaultsHostPortFromURI(t *testing.T) {
	req := NewRequest("get", "http://example.com:8080/x?y=1", header.HTTP11, false)
	require.Equal(t, "GET", req.Method)
	require.Equal(t, "example.com", req.Host())
	require.Equal(t, 8080, req.Port())
}

func TestNewRequestDefaultPortIsMinusOne(t *testing.T) {
	req := NewRequest("GET", "/x", header.HTTP11, false)
	require.Equal(t, -1, req.Port())
}

func TestQueryDataIsMemoizedAndOrdered(t *testing.T) {
	req := NewRequest("GET", "/x?b=2&a=1&b=3", header.HTTP11, false)
	d1, err := req.QueryData("UTF-8")
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, d1.Keys())
	require.Equal(t, []string{"2", "3"}, d1.Get("b"))

	d2, err := req.QueryData("UTF-8")
	require.NoError(t, err)
	require.Same(t, d1, d2)
}

func TestPreliminaryResponseAttachesBackReference(t *testing.T) {
	req := NewRequest("GET", "/", header.HTTP11, false)
	resp := NewPreliminaryResponse(req)
	require.Equal(t, PreliminaryStatus, resp.StatusCode)
	require.Same(t, req, resp.Request)
	require.Same(t, resp, req.Response)
}
