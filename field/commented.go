package field

import (
	"strings"

	"github.com/yourusername/httpcodec/internal/scan"
)

// CommentedValue pairs a base value with an optional RFC 7230 "comment"
// (spec §3 CommentedValue<T>): output is "value (comment)" with the
// comment's '(', ')', '\' backslash-escaped.
type CommentedValue[T any] struct {
	Value   T
	Comment string
	HasComment bool
}

type CommentedConverter[T any] struct {
	Inner Converter[T]
}

func NewCommentedConverter[T any](inner Converter[T]) CommentedConverter[T] {
	return CommentedConverter[T]{Inner: inner}
}

func (c CommentedConverter[T]) AsFieldValue(v CommentedValue[T]) string {
	out := c.Inner.AsFieldValue(v.Value)
	if !v.HasComment {
		return out
	}
	var b strings.Builder
	b.WriteString(out)
	b.WriteByte(' ')
	b.WriteByte('(')
	for i := 0; i < len(v.Comment); i++ {
		ch := v.Comment[i]
		if ch == '(' || ch == ')' || ch == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(ch)
	}
	b.WriteByte(')')
	return b.String()
}

func (c CommentedConverter[T]) FromFieldValue(text string) (CommentedValue[T], error) {
	var zero CommentedValue[T]
	idx := strings.IndexByte(text, '(')
	if idx == -1 || !strings.HasSuffix(text, ")") {
		v, err := c.Inner.FromFieldValue(strings.TrimSpace(text))
		if err != nil {
			return zero, err
		}
		return CommentedValue[T]{Value: v}, nil
	}
	base := strings.TrimSpace(text[:idx])
	cur := scan.NewCursor([]byte(text[idx:]))
	comment, err := unescapeComment(cur)
	if err != nil {
		return zero, err
	}
	v, err := c.Inner.FromFieldValue(base)
	if err != nil {
		return zero, err
	}
	return CommentedValue[T]{Value: v, Comment: comment, HasComment: true}, nil
}

func unescapeComment(c *scan.Cursor) (string, error) {
	if c.Pos >= len(c.Data) || c.Data[c.Pos] != '(' {
		return "", parseErr(c.Pos, "expected comment")
	}
	c.Pos++
	var buf []byte
	escaped := false
	for {
		if c.Pos >= len(c.Data) {
			return "", parseErr(c.Pos, "unterminated comment")
		}
		b := c.Data[c.Pos]
		switch {
		case escaped:
			buf = append(buf, b)
			escaped = false
		case b == '\\':
			escaped = true
		case b == ')':
			c.Pos++
			return string(buf), nil
		default:
			buf = append(buf, b)
		}
		c.Pos++
	}
}
