// Package header implements the message header model shared by
// requests and responses (spec §3 MessageHeader, §4.C): a
// case-insensitive field-name-to-value mapping plus a hasPayload flag,
// with typed access layered on top via the field package's converters.
//
// The header does not validate field combinations (e.g. Content-Length
// vs Transfer-Encoding) — those invariants belong to the decoder and
// encoder at codec time (spec §4.C).
package header

import "github.com/yourusername/httpcodec/field"

// Protocol identifies the HTTP version on a message (spec §3).
type Protocol int

const (
	ProtocolUnknown Protocol = iota
	HTTP10
	HTTP11
)

func (p Protocol) String() string {
	switch p {
	case HTTP10:
		return "HTTP/1.0"
	case HTTP11:
		return "HTTP/1.1"
	default:
		return "HTTP/?.?"
	}
}

// Field is one name/value pair as stored on a Header. Name is
// canonical-cased for output; lookups are case-insensitive.
type Field struct {
	Name  string
	Value string
}

// Header is the mutable field-name -> value model shared by
// HttpRequest and HttpResponse (spec §3, §4.C). A name maps to at
// most one Field; a comma-separated list field is stored as a single
// collapsed value and split/joined by the caller's chosen converter.
type Header struct {
	protocol   Protocol
	hasPayload bool
	order      []string          // lowercased names, insertion order
	byLower    map[string]string // lowercased name -> canonical name
	values     map[string]string // lowercased name -> value
}

// New creates an empty Header for the given protocol.
func New(protocol Protocol) *Header {
	return &Header{
		protocol: protocol,
		byLower:  make(map[string]string),
		values:   make(map[string]string),
	}
}

func (h *Header) Protocol() Protocol { return h.protocol }

// SetProtocol updates the protocol; used by the decoder once the
// start line has been parsed and by the encoder before emission.
func (h *Header) SetProtocol(p Protocol) { h.protocol = p }

func (h *Header) HasPayload() bool { return h.hasPayload }

func (h *Header) SetHasPayload(v bool) { h.hasPayload = v }

// Field returns the raw on-wire text of name, if set.
func (h *Header) Field(name string) (string, bool) {
	v, ok := h.values[lower(name)]
	return v, ok
}

// SetField sets name's raw on-wire text, replacing any prior value and
// preserving the field's original position in Fields() order.
func (h *Header) SetField(name, value string) {
	key := lower(name)
	if _, exists := h.values[key]; !exists {
		h.order = append(h.order, key)
		h.byLower[key] = Canonical(name)
	}
	h.values[key] = value
}

// Del removes name, if present.
func (h *Header) Del(name string) {
	key := lower(name)
	if _, ok := h.values[key]; !ok {
		return
	}
	delete(h.values, key)
	delete(h.byLower, key)
	for i, k := range h.order {
		if k == key {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Has reports whether name is set.
func (h *Header) Has(name string) bool {
	_, ok := h.values[lower(name)]
	return ok
}

// Fields iterates fields in insertion order.
func (h *Header) Fields() []Field {
	out := make([]Field, 0, len(h.order))
	for _, key := range h.order {
		out = append(out, Field{Name: h.byLower[key], Value: h.values[key]})
	}
	return out
}

// GetTyped reads name through conv, reporting whether it was present
// and any *field.ParseError from conv.FromFieldValue.
func GetTyped[T any](h *Header, name string, conv field.Converter[T]) (T, bool, error) {
	var zero T
	raw, ok := h.Field(name)
	if !ok {
		return zero, false, nil
	}
	v, err := conv.FromFieldValue(raw)
	if err != nil {
		return zero, true, err
	}
	return v, true, nil
}

// SetTyped writes v through conv into name.
func SetTyped[T any](h *Header, name string, conv field.Converter[T], v T) {
	h.SetField(name, conv.AsFieldValue(v))
}
