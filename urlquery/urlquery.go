// Package urlquery implements the application/x-www-form-urlencoded
// helpers spec.md §6 puts on the public request API: query parsing,
// encoding, and replaceQuery. Percent-encoding follows the escape/quote
// policy of net/url's QueryEscape/QueryUnescape (the same approach the
// retrieval pack's badu-http carries as its own fork of the stdlib), but
// this package keeps its own ordered multi-map instead of url.Values so
// insertion order and duplicate keys survive a round trip (spec §8
// invariant 6).
package urlquery

import (
	"net/url"
	"strings"
)

// Data is an ordered, immutable mapping key -> ordered list of decoded
// values (spec §3 request.queryData). Keys preserve first-seen order;
// values preserve on-wire order including duplicates.
type Data struct {
	keys   []string
	values map[string][]string
}

// Get returns the values for key in wire order, or nil if absent.
func (d *Data) Get(key string) []string {
	if d == nil {
		return nil
	}
	return d.values[key]
}

// Keys returns the keys in first-seen order.
func (d *Data) Keys() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.keys...)
}

// ParseQuery decodes a raw query string (without the leading '?') into
// an ordered Data map. charset is accepted for API symmetry with
// wwwFormUrlencode but only UTF-8 decoding is implemented, matching
// the percent-decoding defined by RFC 3986 (bytes, not codepoints).
func ParseQuery(raw string, charset string) (*Data, error) {
	d := &Data{values: make(map[string][]string)}
	if raw == "" {
		return d, nil
	}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		var key, val string
		if i := strings.IndexByte(pair, '='); i >= 0 {
			key, val = pair[:i], pair[i+1:]
		} else {
			key = pair
		}
		dk, err := queryUnescape(key)
		if err != nil {
			return nil, err
		}
		dv, err := queryUnescape(val)
		if err != nil {
			return nil, err
		}
		if _, seen := d.values[dk]; !seen {
			d.keys = append(d.keys, dk)
		}
		d.values[dk] = append(d.values[dk], dv)
	}
	return d, nil
}

func queryUnescape(s string) (string, error) {
	return url.QueryUnescape(s)
}

// WwwFormUrlencode renders an ordered key -> list-of-values map as
// application/x-www-form-urlencoded text (spec §6): stable
// insertion-order iteration, duplicate keys preserved, space encoded
// as '%20' (the list form does not use '+').
func WwwFormUrlencode(keys []string, values map[string][]string, charset string) string {
	var b strings.Builder
	first := true
	for _, k := range keys {
		ek := url.QueryEscape(k)
		ek = strings.ReplaceAll(ek, "+", "%20")
		for _, v := range values[k] {
			if !first {
				b.WriteByte('&')
			}
			first = false
			ev := url.QueryEscape(v)
			ev = strings.ReplaceAll(ev, "+", "%20")
			b.WriteString(ek)
			b.WriteByte('=')
			b.WriteString(ev)
		}
	}
	return b.String()
}

// SimpleWwwFormUrlencode renders a single-valued key -> value map,
// using '+' for space per the classic application/x-www-form-urlencoded
// convention (spec §6).
func SimpleWwwFormUrlencode(keys []string, values map[string]string, charset string) string {
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(values[k]))
	}
	return b.String()
}

// ReplaceQuery returns a new URI with its query replaced by rawQuery,
// preserving scheme, authority, path, and fragment; no '?' is inserted
// when rawQuery is blank (spec §6).
func ReplaceQuery(uri string, rawQuery string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	u.RawQuery = rawQuery
	return u.String(), nil
}
