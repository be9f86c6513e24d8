package header

import (
	"iter"

	"github.com/ghettovoice/rtsp/internal/util"
)

// Map is an ordered multimap from header [Name] to a non-empty ordered list
// of [Value]s. It preserves first-insertion order of names and append order
// of values within a name, matching the RFC 7826 wire representation: one
// header line per value, names in the order they first appeared.
//
// The zero Map is ready to use.
type Map struct {
	order []Name
	vals  map[string][]Value
}

// NewMap returns an empty Map.
func NewMap() *Map { return &Map{} }

func (m *Map) ensure() {
	if m.vals == nil {
		m.vals = make(map[string][]Value, 8)
	}
}

// Append adds v to the end of n's value list, inserting n at the end of the
// name order if this is its first appearance.
func (m *Map) Append(n Name, v ...Value) {
	if len(v) == 0 {
		return
	}
	m.ensure()
	key := n.Lower()
	if _, ok := m.vals[key]; !ok {
		m.order = append(m.order, n)
	}
	m.vals[key] = append(m.vals[key], v...)
}

// Set replaces n's value list with v, preserving n's existing position in
// the name order or appending it if new. An empty v removes n.
func (m *Map) Set(n Name, v ...Value) {
	if len(v) == 0 {
		m.Del(n)
		return
	}
	m.ensure()
	key := n.Lower()
	if _, ok := m.vals[key]; !ok {
		m.order = append(m.order, n)
	}
	m.vals[key] = append([]Value(nil), v...)
}

// Get returns the value list for n, or nil if absent. The returned slice
// must not be mutated.
func (m *Map) Get(n Name) []Value {
	if m.vals == nil {
		return nil
	}
	return m.vals[n.Lower()]
}

// Has reports whether n has at least one value.
func (m *Map) Has(n Name) bool {
	if m.vals == nil {
		return false
	}
	_, ok := m.vals[n.Lower()]
	return ok
}

// Del removes n entirely.
func (m *Map) Del(n Name) {
	if m.vals == nil {
		return
	}
	key := n.Lower()
	if _, ok := m.vals[key]; !ok {
		return
	}
	delete(m.vals, key)
	for i, existing := range m.order {
		if existing.Lower() == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of distinct header names.
func (m *Map) Len() int { return len(m.order) }

// All iterates names in insertion order, yielding each name's value list.
func (m *Map) All() iter.Seq2[Name, []Value] {
	return func(yield func(Name, []Value) bool) {
		for _, n := range m.order {
			if !yield(n, m.vals[n.Lower()]) {
				return
			}
		}
	}
}

// Clear removes every header.
func (m *Map) Clear() {
	m.order = nil
	m.vals = nil
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	c := &Map{order: append([]Name(nil), m.order...)}
	if m.vals != nil {
		c.vals = make(map[string][]Value, len(m.vals))
		for k, v := range m.vals {
			c.vals[k] = append([]Value(nil), v...)
		}
	}
	return c
}

// Equal reports whether m and other hold the same names with equal,
// order-preserved value lists. Name insertion order is not compared, only
// the name/values association, matching typical header-equivalence needs.
func (m *Map) Equal(other *Map) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Len() != other.Len() {
		return false
	}
	for n, vs := range m.All() {
		ovs := other.Get(n)
		if len(vs) != len(ovs) {
			return false
		}
		for i := range vs {
			if vs[i] != ovs[i] {
				return false
			}
		}
	}
	return true
}

// First returns the first value for n, if any.
func (m *Map) First(n Name) (Value, bool) {
	return util.IterFirst(valuesSeq(m.Get(n)))
}

func valuesSeq(vs []Value) func(func(Value) bool) {
	return func(yield func(Value) bool) {
		for _, v := range vs {
			if !yield(v) {
				return
			}
		}
	}
}
