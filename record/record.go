// Package record provides an insertion-ordered string-keyed map and the pure
// pruning helpers used by the normalizer: order-preserving truncation,
// predicate filtering, pick and omit.
//
// Every helper returns a fresh Map; inputs are never mutated.
package record

import (
	"bytes"
	"iter"
	"sort"

	json "github.com/goccy/go-json"
)

// Meta keys injected by the host variable framework into extensible
// collections. They never describe a real entry.
const (
	MetaKey          = "$meta"
	ExtensibleMarker = "$__META_EXTENSIBLE__$"
)

// IsMetaKey reports whether k is a host bookkeeping key rather than an entry name.
func IsMetaKey(k string) bool { return k == MetaKey || k == ExtensibleMarker }

// Map is a string-keyed map that remembers insertion order.
// The zero value is an empty map ready to use.
type Map[V any] struct {
	keys []string
	vals map[string]V
}

// New returns an empty Map with room for n entries.
func New[V any](n int) Map[V] {
	if n < 0 {
		n = 0
	}
	return Map[V]{keys: make([]string, 0, n), vals: make(map[string]V, n)}
}

// Of builds a Map from pairs in the given order.
func Of[V any](pairs ...Pair[V]) Map[V] {
	m := New[V](len(pairs))
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// Pair is one key/value entry.
type Pair[V any] struct {
	Key   string
	Value V
}

// P is shorthand for constructing a Pair.
func P[V any](k string, v V) Pair[V] { return Pair[V]{Key: k, Value: v} }

// Set stores v under k. Existing keys keep their original position.
func (m *Map[V]) Set(k string, v V) {
	if m.vals == nil {
		m.vals = make(map[string]V)
	}
	if _, ok := m.vals[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.vals[k] = v
}

// Get returns the value stored under k.
func (m Map[V]) Get(k string) (V, bool) {
	v, ok := m.vals[k]
	return v, ok
}

// Has reports whether k is present.
func (m Map[V]) Has(k string) bool {
	_, ok := m.vals[k]
	return ok
}

// Len returns the number of entries.
func (m Map[V]) Len() int { return len(m.keys) }

// Keys returns a copy of the keys in insertion order.
func (m Map[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates entries in insertion order.
func (m Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.vals[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy.
func (m Map[V]) Clone() Map[V] { return m.Take(m.Len()) }

// Take keeps the first n entries by insertion order and drops the rest.
func (m Map[V]) Take(n int) Map[V] {
	if n < 0 {
		n = 0
	}
	if n > len(m.keys) {
		n = len(m.keys)
	}
	out := New[V](n)
	for _, k := range m.keys[:n] {
		out.Set(k, m.vals[k])
	}
	return out
}

// Filter keeps the entries for which keep returns true, preserving order.
func (m Map[V]) Filter(keep func(k string, v V) bool) Map[V] {
	out := New[V](len(m.keys))
	for _, k := range m.keys {
		if v := m.vals[k]; keep(k, v) {
			out.Set(k, v)
		}
	}
	return out
}

// Pick returns the listed keys that are present, in the order they are listed.
func (m Map[V]) Pick(keys ...string) Map[V] {
	out := New[V](len(keys))
	for _, k := range keys {
		if v, ok := m.vals[k]; ok {
			out.Set(k, v)
		}
	}
	return out
}

// Omit drops the listed keys.
func (m Map[V]) Omit(keys ...string) Map[V] {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	return m.Filter(func(k string, _ V) bool {
		_, skip := drop[k]
		return !skip
	})
}

// MarshalJSON encodes the map as a JSON object with keys in insertion order.
func (m Map[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FromAny adapts a decoded object to an ordered map. Plain Go maps carry no
// order, so their keys are sorted to keep the result deterministic.
func FromAny(v any) (Map[any], bool) {
	switch t := v.(type) {
	case Map[any]:
		return t, true
	case *Map[any]:
		if t == nil {
			return Map[any]{}, false
		}
		return *t, true
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := New[any](len(keys))
		for _, k := range keys {
			out.Set(k, t[k])
		}
		return out, true
	default:
		return Map[any]{}, false
	}
}
