package statecanon

import (
	"math"

	"github.com/reoring/statecanon/coerce"
	"github.com/reoring/statecanon/record"
)

// Scope reads the fields of one raw object. Every reader is total: a missing
// or malformed field yields the caller's default and the correction is
// recorded in the presence map (when one is attached).
//
// A Scope over a non-object behaves like a Scope over an empty object.
type Scope struct {
	obj  record.Map[any]
	path string // JSON Pointer of the object; "" for the root
	pm   PresenceMap
}

// OpenScope starts reading raw at the document root. pm may be nil.
func OpenScope(raw any, pm PresenceMap) Scope {
	obj, _ := asObject(raw)
	return Scope{obj: obj, pm: pm}
}

// Path returns the JSON Pointer of the object being read.
func (s Scope) Path() string {
	if s.path == "" {
		return "/"
	}
	return s.path
}

// At returns the JSON Pointer of key inside this object.
func (s Scope) At(key string) string { return JoinPointer(s.path, key) }

// Len returns the number of raw fields.
func (s Scope) Len() int { return s.obj.Len() }

// Has reports whether key is present, even when null.
func (s Scope) Has(key string) bool { return s.obj.Has(key) }

// Mark records f for key.
func (s Scope) Mark(key string, f Presence) { s.markPath(s.At(key), f) }

// MarkSelf records f for the object itself.
func (s Scope) MarkSelf(f Presence) { s.markPath(s.Path(), f) }

func (s Scope) markPath(p string, f Presence) {
	if s.pm != nil {
		s.pm[p] |= f
	}
}

// Raw returns the raw value stored under key.
func (s Scope) Raw(key string) (any, bool) {
	v, ok := s.obj.Get(key)
	if ok {
		p := s.At(key)
		s.markPath(p, PresenceSeen)
		if v == nil {
			s.markPath(p, PresenceWasNull)
		}
	}
	return v, ok
}

// String reads a string field.
func (s Scope) String(key, def string) string {
	raw, _ := s.Raw(key)
	if v, ok := raw.(string); ok {
		return v
	}
	s.Mark(key, PresenceDefaultApplied)
	return def
}

// Number reads a numeric field. Numeric strings are accepted.
func (s Scope) Number(key string, def float64) float64 {
	raw, _ := s.Raw(key)
	if f, ok := coerce.Number(raw); ok {
		return f
	}
	s.Mark(key, PresenceDefaultApplied)
	return def
}

// Clamped reads a number and bounds it to [lo, hi].
func (s Scope) Clamped(key string, def, lo, hi float64) float64 {
	f := s.Number(key, def)
	c := coerce.Clamp(f, lo, hi)
	if c != f {
		s.Mark(key, PresenceClamped)
	}
	return c
}

// Floored reads a number, rounds it and raises it to at least lo.
func (s Scope) Floored(key string, def float64, lo int64) int64 {
	f := s.Number(key, def)
	r := coerce.FlooredNumber(f, def, lo)
	if float64(r) != f {
		s.Mark(key, PresenceClamped)
	}
	return r
}

// Rounded reads a number and rounds it half-up to a whole value.
func (s Scope) Rounded(key string, def float64) int64 { return s.Floored(key, def, math.MinInt64) }

// Bool reads a boolean or a yes/no marker.
func (s Scope) Bool(key string, def bool) bool {
	raw, _ := s.Raw(key)
	if b, ok := coerce.ParseBoolean(raw); ok {
		return b
	}
	s.Mark(key, PresenceDefaultApplied)
	return def
}

// Strings reads a tag list.
func (s Scope) Strings(key string) []string {
	raw, _ := s.Raw(key)
	switch raw.(type) {
	case []any, []string, string:
		return coerce.Strings(raw)
	}
	s.Mark(key, PresenceDefaultApplied)
	return []string{}
}

// Object descends into a nested object. Missing or non-object values read as
// an empty object.
func (s Scope) Object(key string) Scope {
	raw, _ := s.Raw(key)
	obj, ok := asObject(raw)
	if !ok {
		s.Mark(key, PresenceDefaultApplied)
	}
	return Scope{obj: obj, path: s.At(key), pm: s.pm}
}

// Entry is one named member of a collection.
type Entry struct {
	Key  string // canonical key
	Raw  any
	path string
	pm   PresenceMap
}

// Path returns the JSON Pointer of the entry.
func (e Entry) Path() string { return e.path }

// Mark records f for the entry.
func (e Entry) Mark(f Presence) {
	if e.pm != nil {
		e.pm[e.path] |= f
	}
}

// Object reads the entry as an object; non-objects read as empty.
func (e Entry) Object() Scope {
	obj, ok := asObject(e.Raw)
	if !ok {
		e.Mark(PresenceDefaultApplied)
	}
	return Scope{obj: obj, path: e.path, pm: e.pm}
}

// Entries lists the members of this object as collection entries. Keys are
// canonicalized with coerce.Key; host meta keys, empty keys and later
// duplicates of an already seen canonical key are pruned.
func (s Scope) Entries() []Entry {
	out := make([]Entry, 0, s.obj.Len())
	seen := make(map[string]struct{}, s.obj.Len())
	for k, v := range s.obj.All() {
		if record.IsMetaKey(k) {
			s.Mark(k, PresencePruned)
			continue
		}
		ck := coerce.Key(k)
		if ck == "" {
			s.Mark(k, PresencePruned)
			continue
		}
		if _, dup := seen[ck]; dup {
			s.Mark(k, PresencePruned)
			continue
		}
		seen[ck] = struct{}{}
		p := s.At(ck)
		s.markPath(p, PresenceSeen)
		out = append(out, Entry{Key: ck, Raw: v, path: p, pm: s.pm})
	}
	return out
}

// Collect reads the collection under key with read, keeping entry order.
func Collect[V any](s Scope, key string, read func(Entry) V) record.Map[V] {
	entries := s.Object(key).Entries()
	out := record.New[V](len(entries))
	for _, e := range entries {
		out.Set(e.Key, read(e))
	}
	return out
}

// Passthrough returns the object under key as free-form data, minus host
// meta keys. Nested objects become ordered maps and non-finite numbers become
// null so the result always encodes.
func (s Scope) Passthrough(key string) record.Map[any] {
	c := s.Object(key)
	out := record.New[any](c.obj.Len())
	for k, v := range c.obj.All() {
		if record.IsMetaKey(k) {
			c.Mark(k, PresencePruned)
			continue
		}
		out.Set(k, plain(v))
	}
	return out
}

func plain(v any) any {
	if obj, ok := asObject(v); ok {
		out := record.New[any](obj.Len())
		for k, e := range obj.All() {
			if !record.IsMetaKey(k) {
				out.Set(k, plain(e))
			}
		}
		return out
	}
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
	case float32:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return nil
		}
	}
	return v
}

func asObject(v any) (record.Map[any], bool) { return record.FromAny(v) }

func asNumber(v any) (float64, bool) { return coerce.Number(v) }
