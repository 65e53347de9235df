package field

import (
	"strings"

	"github.com/yourusername/httpcodec/internal/scan"
)

// Param is one "name=value" pair of a ParameterizedValue. Name is
// already lowercased; Value preserves case unless the owning converter
// says otherwise.
type Param struct {
	Name  string
	Value string
}

// ParameterizedValue is a base value of type U plus an ordered set of
// parameters (spec §3 ParameterizedValue<U>). Parameter names compare
// case-insensitively; serialization preserves insertion order.
type ParameterizedValue[U any] struct {
	Base   U
	Params []Param
}

// Param looks up a parameter by case-insensitive name.
func (p ParameterizedValue[U]) Param(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, kv := range p.Params {
		if kv.Name == name {
			return kv.Value, true
		}
	}
	return "", false
}

// WithParam returns a copy of p with name=value appended (or replacing
// an existing value for that name), per spec §9: builders for
// ParameterizedValue become explicit with-parameter methods since the
// value is otherwise immutable.
func (p ParameterizedValue[U]) WithParam(name, value string) ParameterizedValue[U] {
	name = strings.ToLower(name)
	out := ParameterizedValue[U]{Base: p.Base, Params: append([]Param(nil), p.Params...)}
	for i, kv := range out.Params {
		if kv.Name == name {
			out.Params[i].Value = value
			return out
		}
	}
	out.Params = append(out.Params, Param{Name: name, Value: value})
	return out
}

// NewParameterizedValue builds a ParameterizedValue with base and no
// parameters, ready for WithParam calls.
func NewParameterizedValue[U any](base U) ParameterizedValue[U] {
	return ParameterizedValue[U]{Base: base}
}

// ParamValueConverter adapts a Converter[U] into one over
// ParameterizedValue[U]: splits on ';', delegates the head to inner,
// parses "key=value" pairs with key case-folded (spec §4.B).
type ParamValueConverter[U any] struct {
	Inner Converter[U]
}

func NewParamValueConverter[U any](inner Converter[U]) ParamValueConverter[U] {
	return ParamValueConverter[U]{Inner: inner}
}

func (c ParamValueConverter[U]) AsFieldValue(v ParameterizedValue[U]) string {
	var b strings.Builder
	b.WriteString(c.Inner.AsFieldValue(v.Base))
	for _, kv := range v.Params {
		b.WriteString("; ")
		b.WriteString(kv.Name)
		b.WriteByte('=')
		b.WriteString(QuoteParamValue(kv.Value))
	}
	return b.String()
}

func (c ParamValueConverter[U]) FromFieldValue(text string) (ParameterizedValue[U], error) {
	var zero ParameterizedValue[U]
	segs := scan.SplitList([]byte(text), ';')
	if len(segs) == 0 {
		return zero, parseErr(0, "empty parameterized value")
	}
	base, err := c.Inner.FromFieldValue(string(segs[0]))
	if err != nil {
		return zero, err
	}
	out := ParameterizedValue[U]{Base: base}
	for _, seg := range segs[1:] {
		name, value, err := parseParamPair(string(seg))
		if err != nil {
			return zero, err
		}
		out.Params = append(out.Params, Param{Name: strings.ToLower(name), Value: value})
	}
	return out, nil
}

func parseParamPair(seg string) (name, value string, err error) {
	c := scan.NewCursor([]byte(seg))
	c.SkipWhitespaceExceptCRLF()
	tok, e := c.NextToken()
	if e != nil {
		return "", "", parseErr(c.Pos, "expected parameter name")
	}
	name = string(tok)
	c.SkipWhitespaceExceptCRLF()
	if c.Pos >= len(c.Data) || c.Data[c.Pos] != '=' {
		return "", "", parseErr(c.Pos, "expected '=' in parameter")
	}
	c.Pos++
	c.SkipWhitespaceExceptCRLF()
	rest := string(c.Data[c.Pos:])
	val, uerr := (Quotable{}).FromFieldValue(rest)
	if uerr != nil {
		return "", "", uerr
	}
	return name, val, nil
}
