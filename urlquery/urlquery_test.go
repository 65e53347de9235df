package urlquery

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWwwFormUrlencodeOrderAndDuplicates(t *testing.T) {
	keys := []string{"first", "second", "third"}
	values := map[string][]string{
		"first":  {"value1.1", "value1.2"},
		"second": {"value2"},
		"third":  {"välue3"}, // "välue3" — exercises non-ASCII percent-encoding
	}
	got := WwwFormUrlencode(keys, values, "UTF-8")
	require.Equal(t, "first=value1.1&first=value1.2&second=value2&third=v%C3%A4lue3", got)
}

func TestSimpleWwwFormUrlencodeUsesPlusForSpace(t *testing.T) {
	keys := []string{"q"}
	values := map[string]string{"q": "hello world"}
	got := SimpleWwwFormUrlencode(keys, values, "UTF-8")
	require.Equal(t, "q=hello+world", got)
}

func TestParseQueryRoundTripsOrderedMultiMap(t *testing.T) {
	d, err := ParseQuery("first=value1.1&first=value1.2&second=value2", "UTF-8")
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second"}, d.Keys())
	require.Equal(t, []string{"value1.1", "value1.2"}, d.Get("first"))
	require.Equal(t, []string{"value2"}, d.Get("second"))

	encoded := WwwFormUrlencode(d.Keys(), map[string][]string{
		"first":  d.Get("first"),
		"second": d.Get("second"),
	}, "UTF-8")
	require.Equal(t, "first=value1.1&first=value1.2&second=value2", encoded)
}

func TestReplaceQueryPreservesRestOfURI(t *testing.T) {
	got, err := ReplaceQuery("https://example.com/path?old=1#frag", "new=2")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/path?new=2#frag", got)

	got2, err := ReplaceQuery("https://example.com/path?old=1", "")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/path", got2)
}
