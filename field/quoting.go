package field

import (
	"strings"

	"github.com/yourusername/httpcodec/internal/scan"
)

// needsQuoting reports whether s must be emitted as a quoted-string
// rather than a bare token, per spec §4.B's quoting policy: any of
// "(){}[]<>@,;:\/?=", whitespace, or non-token bytes force quoting.
const specialParamBytes = `"(){}[]<>@,;:\/?= `

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if strings.IndexByte(specialParamBytes, b) >= 0 || b == '\t' {
			return true
		}
		if b < 0x21 || b > 0x7e {
			return true
		}
	}
	return false
}

// writeQuoted appends s to b as a double-quoted-string, backslash-
// escaping '"' and '\' per spec §4.B.
func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
}

// QuoteParamValue renders a parameter value using the policy in
// spec §4.B: bare token when safe, quoted-string otherwise.
func QuoteParamValue(s string) string {
	if !needsQuoting(s) {
		return s
	}
	var b strings.Builder
	writeQuoted(&b, s)
	return b.String()
}

// UnquotedString is the "unquotable" converter (spec §4.B): it forbids
// the characters that force quoting and fails if input contains them.
type UnquotedString struct{}

func (UnquotedString) AsFieldValue(v string) string { return v }

func (UnquotedString) FromFieldValue(text string) (string, error) {
	if needsQuoting(text) {
		return "", parseErr(0, "value requires quoting but unquoted-string converter forbids it")
	}
	return text, nil
}

// Quotable accepts either a bare token or a quoted-string and strips
// quoting on input; on output it quotes only when necessary.
type Quotable struct{}

func (Quotable) AsFieldValue(v string) string { return QuoteParamValue(v) }

func (Quotable) FromFieldValue(text string) (string, error) {
	if len(text) == 0 {
		return "", nil
	}
	if text[0] != '"' {
		return text, nil
	}
	c := scan.NewCursor([]byte(text))
	s, err := c.NextQuotedString()
	if err != nil {
		return "", err
	}
	if c.Pos != len(text) {
		return "", parseErr(c.Pos, "trailing data after quoted-string")
	}
	return string(s), nil
}
