package field

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestListConverterRoundTrip(t *testing.T) {
	conv := NewListConverter[Token](TokenConverter{})
	v, err := conv.FromFieldValue("gzip, deflate,  br")
	require.NoError(t, err)
	require.Equal(t, ListValue[Token]{"gzip", "deflate", "br"}, v)
	require.Equal(t, "gzip, deflate, br", conv.AsFieldValue(v))
}

func TestListConverterPreservesDuplicates(t *testing.T) {
	conv := NewListConverter[Token](TokenConverter{})
	v, err := conv.FromFieldValue("a, a, b")
	require.NoError(t, err)
	require.Equal(t, ListValue[Token]{"a", "a", "b"}, v)
}

func TestParamValueConverterRoundTrip(t *testing.T) {
	conv := NewParamValueConverter[Token](TokenConverter{})
	v, err := conv.FromFieldValue(`form-data; name="field1"; filename=file.txt`)
	require.NoError(t, err)
	require.Equal(t, Token("form-data"), v.Base)
	name, ok := v.Param("name")
	require.True(t, ok)
	require.Equal(t, "field1", name)
	filename, ok := v.Param("filename")
	require.True(t, ok)
	require.Equal(t, "file.txt", filename)
	require.Equal(t, `form-data; name=field1; filename=file.txt`, conv.AsFieldValue(v))
}

func TestParamValueConverterQuotesWhenNeeded(t *testing.T) {
	conv := NewParamValueConverter[Token](TokenConverter{})
	v := NewParameterizedValue(Token("attachment")).WithParam("filename", "my file.txt")
	require.Equal(t, `attachment; filename="my file.txt"`, conv.AsFieldValue(v))

	back, err := conv.FromFieldValue(conv.AsFieldValue(v))
	require.NoError(t, err)
	fn, _ := back.Param("filename")
	require.Equal(t, "my file.txt", fn)
}

func TestWeightedValueSortsDescendingAndAbsentFirst(t *testing.T) {
	conv := NewParamValueConverter[Token](TokenConverter{})
	mk := func(text string) WeightedValue[Token] {
		pv, err := conv.FromFieldValue(text)
		require.NoError(t, err)
		return WeightedValue[Token]{ParameterizedValue: pv}
	}

	items := []WeightedValue[Token]{
		mk("en;q=0.5"),
		mk("fr"),        // absent q, defaults to 1.0, sorts before explicit q=1.0
		mk("de;q=1.0"),
		mk("es;q=0.9"),
	}
	SortByWeight(items)

	var order []string
	for _, it := range items {
		order = append(order, string(it.Base))
	}
	require.Equal(t, []string{"fr", "de", "es", "en"}, order)
}

func TestCommentedValueRoundTrip(t *testing.T) {
	conv := NewCommentedConverter[string](StringValue{})
	v := CommentedValue[string]{Value: "Mozilla/5.0", Comment: "compatible; (weird)", HasComment: true}
	out := conv.AsFieldValue(v)
	require.Equal(t, `Mozilla/5.0 (compatible; \(weird\))`, out)

	back, err := conv.FromFieldValue(out)
	require.NoError(t, err)
	require.Equal(t, v, back)
}

func TestDateValueRoundTripIMFFixdate(t *testing.T) {
	conv := DateValue{}
	ts := time.Date(1994, time.November, 6, 8, 49, 37, 0, time.UTC)
	out := conv.AsFieldValue(ts)
	require.Equal(t, "Sun, 06 Nov 1994 08:49:37 GMT", out)

	back, err := conv.FromFieldValue(out)
	require.NoError(t, err)
	require.True(t, ts.Equal(back))
}

func TestDateValueAcceptsRFC850AndAsctime(t *testing.T) {
	conv := DateValue{}
	want := time.Date(1994, time.November, 6, 8, 49, 37, 0, time.UTC)

	back, err := conv.FromFieldValue("Sunday, 06-Nov-94 08:49:37 GMT")
	require.NoError(t, err)
	require.True(t, want.Equal(back))

	back2, err := conv.FromFieldValue("Sun Nov  6 08:49:37 1994")
	require.NoError(t, err)
	require.True(t, want.Equal(back2))
}

func TestUnquotedStringRejectsSpecialChars(t *testing.T) {
	_, err := UnquotedString{}.FromFieldValue("has space")
	require.Error(t, err)

	v, err := UnquotedString{}.FromFieldValue("plain-token")
	require.NoError(t, err)
	require.Equal(t, "plain-token", v)
}

func TestQuotableStripsQuoting(t *testing.T) {
	v, err := Quotable{}.FromFieldValue(`"he said \"hi\""`)
	require.NoError(t, err)
	require.Equal(t, `he said "hi"`, v)
}
