package header

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yourusername/httpcodec/field"
)

func TestFieldCaseInsensitiveLookup(t *testing.T) {
	h := New(HTTP11)
	h.SetField("content-type", "text/plain")
	v, ok := h.Field("Content-Type")
	require.True(t, ok)
	require.Equal(t, "text/plain", v)
}

func TestSetFieldPreservesInsertionOrderOnUpdate(t *testing.T) {
	h := New(HTTP11)
	h.SetField("Host", "a")
	h.SetField("Accept", "*/*")
	h.SetField("Host", "b")

	var names []string
	for _, f := range h.Fields() {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{"Host", "Accept"}, names)
	v, _ := h.Field("Host")
	require.Equal(t, "b", v)
}

func TestCanonicalCasing(t *testing.T) {
	require.Equal(t, "Content-Length", Canonical("content-length"))
	require.Equal(t, "X-Request-Id", Canonical("x-REQUEST-id"))
}

func TestTypedAccess(t *testing.T) {
	h := New(HTTP11)
	SetTyped[int64](h, "Content-Length", field.IntValue{}, 42)
	v, ok, err := GetTyped[int64](h, "content-length", field.IntValue{})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(42), v)
}

func TestDelAndHas(t *testing.T) {
	h := New(HTTP11)
	h.SetField("X-A", "1")
	require.True(t, h.Has("x-a"))
	h.Del("x-a")
	require.False(t, h.Has("X-A"))
}
