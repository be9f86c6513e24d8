package typed

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/rtsp/header"
)

// Value is the encoding half of the contract every typed header in this
// package satisfies: a static header name plus re-serialization to one or
// more raw values.
type Value interface {
	Name() header.Name
	Encode() []header.Value
}

// Map is the programmer-facing counterpart of [header.Map]: an ordered
// collection of header slots keyed by name, each holding either a decoded
// typed value or the opaque raw values of a header this package has no
// decoder for. The untyped map stays the canonical on-wire projection; the
// two convert into each other via [FromHeaderMap] and [Map.HeaderMap].
//
// The zero Map is ready to use.
type Map struct {
	order []header.Name
	slots map[string]mapSlot
}

// mapSlot holds exactly one of a typed value or a raw value list.
type mapSlot struct {
	typed Value
	raw   []header.Value
}

// NewMap returns an empty typed Map.
func NewMap() *Map { return &Map{} }

func (m *Map) ensure() {
	if m.slots == nil {
		m.slots = make(map[string]mapSlot, 8)
	}
}

func (m *Map) put(n header.Name, s mapSlot) {
	m.ensure()
	key := n.Lower()
	if _, ok := m.slots[key]; !ok {
		m.order = append(m.order, n)
	}
	m.slots[key] = s
}

// SetTyped stores v under its own header name, replacing any previous slot.
func (m *Map) SetTyped(v Value) { m.put(v.Name(), mapSlot{typed: v}) }

// SetRaw stores vs under n as an opaque raw slot, replacing any previous
// slot. The list must be non-empty; an empty one is ignored.
func (m *Map) SetRaw(n header.Name, vs ...header.Value) {
	if len(vs) == 0 {
		return
	}
	m.put(n, mapSlot{raw: append([]header.Value(nil), vs...)})
}

// Typed returns the typed value stored under n. ok is false when n is
// absent or its slot holds only raw values.
func (m *Map) Typed(n header.Name) (Value, bool) {
	if m.slots == nil {
		return nil, false
	}
	s, ok := m.slots[n.Lower()]
	if !ok || s.typed == nil {
		return nil, false
	}
	return s.typed, true
}

// Raw returns the raw projection of n's slot: the stored raw values, or the
// re-serialization of the stored typed value. nil means absent.
func (m *Map) Raw(n header.Name) []header.Value {
	if m.slots == nil {
		return nil
	}
	s, ok := m.slots[n.Lower()]
	if !ok {
		return nil
	}
	if s.typed != nil {
		return s.typed.Encode()
	}
	return s.raw
}

// Has reports whether n has a slot.
func (m *Map) Has(n header.Name) bool {
	if m.slots == nil {
		return false
	}
	_, ok := m.slots[n.Lower()]
	return ok
}

// Del removes n entirely.
func (m *Map) Del(n header.Name) {
	if m.slots == nil {
		return
	}
	key := n.Lower()
	if _, ok := m.slots[key]; !ok {
		return
	}
	delete(m.slots, key)
	for i, existing := range m.order {
		if existing.Lower() == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of slots.
func (m *Map) Len() int { return len(m.order) }

// HeaderMap projects m back onto the canonical untyped form, re-serializing
// every typed slot to raw values. The conversion is total: it never fails.
func (m *Map) HeaderMap() *header.Map {
	h := header.NewMap()
	for _, n := range m.order {
		h.Set(n, m.Raw(n)...)
	}
	return h
}

// FromHeaderMap lifts h into a typed Map, decoding every header this
// package has a decoder for and carrying the rest as opaque raw slots. The
// first decode failure aborts the conversion; headers that merely lack a
// decoder are not an error.
func FromHeaderMap(h *header.Map) (*Map, error) {
	m := NewMap()
	if h == nil {
		return m, nil
	}
	for n, vs := range h.All() {
		v, ok, err := decodeKnown(n, vs)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		if ok {
			m.put(n, mapSlot{typed: v})
			continue
		}
		m.put(n, mapSlot{raw: append([]header.Value(nil), vs...)})
	}
	return m, nil
}

// decodeKnown dispatches to the decoder registered for n, if any.
func decodeKnown(n header.Name, vs []header.Value) (Value, bool, error) {
	switch {
	case n.Equal(header.CSeq):
		v, err := DecodeCSeq(vs)
		return v, true, errtrace.Wrap(err)
	case n.Equal(header.ContentLength):
		v, err := DecodeContentLength(vs)
		return v, true, errtrace.Wrap(err)
	case n.Equal(header.Session):
		v, err := DecodeSession(vs)
		return v, true, errtrace.Wrap(err)
	case n.Equal(header.Public):
		v, err := DecodePublic(vs)
		return v, true, errtrace.Wrap(err)
	case n.Equal(header.Allow):
		v, err := DecodeAllow(vs)
		return v, true, errtrace.Wrap(err)
	case n.Equal(header.Transport):
		v, err := DecodeTransport(vs)
		return v, true, errtrace.Wrap(err)
	case n.Equal(header.Range):
		v, err := DecodeRange(vs)
		return v, true, errtrace.Wrap(err)
	case n.Equal(header.RTPInfo):
		v, err := DecodeRTPInfo(vs)
		return v, true, errtrace.Wrap(err)
	default:
		return nil, false, nil
	}
}
