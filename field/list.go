package field

import (
	"strings"

	"github.com/yourusername/httpcodec/internal/scan"
)

// ListValue is an ordered sequence of T, serialized as a comma-separated
// field-value (spec §3 ListField<T>). Duplicates are preserved;
// serialization order is insertion order.
type ListValue[T any] []T

// ListConverter adapts a Converter[T] into one over ListValue[T],
// splitting on ',' outside quoted-strings and delegating each item to
// inner (spec §4.B).
type ListConverter[T any] struct {
	Inner Converter[T]
}

func NewListConverter[T any](inner Converter[T]) ListConverter[T] {
	return ListConverter[T]{Inner: inner}
}

func (c ListConverter[T]) AsFieldValue(v ListValue[T]) string {
	parts := make([]string, len(v))
	for i, item := range v {
		parts[i] = c.Inner.AsFieldValue(item)
	}
	return strings.Join(parts, ", ")
}

func (c ListConverter[T]) FromFieldValue(text string) (ListValue[T], error) {
	items := scan.SplitList([]byte(text), ',')
	out := make(ListValue[T], 0, len(items))
	for _, raw := range items {
		v, err := c.Inner.FromFieldValue(string(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Token is a bare RFC 7230 token value (e.g. an element of Connection
// or TE): the degenerate ListValue element with no parameters.
type Token string

// TokenConverter recognizes a single token, case preserved.
type TokenConverter struct{}

func (TokenConverter) AsFieldValue(v Token) string { return string(v) }

func (TokenConverter) FromFieldValue(text string) (Token, error) {
	c := scan.NewCursor([]byte(text))
	tok, err := c.NextToken()
	if err != nil {
		return "", err
	}
	if c.Pos != len(text) {
		return "", parseErr(c.Pos, "trailing data after token")
	}
	return Token(tok), nil
}

// TokenListConverter is the ListConverter specialization for bare
// token lists (Connection, TE, Trailer) — see SPEC_FULL.md's
// additional-typed-field-values note.
var TokenListConverter = NewListConverter[Token](TokenConverter{})
