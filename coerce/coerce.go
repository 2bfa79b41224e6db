// Package coerce turns loosely typed leaf values into scalars.
//
// Every function here is total: malformed or missing input degrades to the
// caller's default and never produces an error.
package coerce

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/reoring/statecanon/record"
)

// Markers the generator uses for booleans.
const (
	TrueMarker  = "是"
	FalseMarker = "否"
)

// Number converts raw into a finite float64. Numeric strings are accepted;
// booleans, nil, containers and non-numeric strings are not.
func Number(raw any) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case json.Number:
		x, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return 0, false
		}
		f = x
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = x
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NumberOr returns Number(raw) or def.
func NumberOr(raw any, def float64) float64 {
	if f, ok := Number(raw); ok {
		return f
	}
	return def
}

// Clamp bounds x to [lo, hi]. When lo > hi the lower bound wins.
func Clamp(x, lo, hi float64) float64 {
	if x > hi {
		x = hi
	}
	if x < lo {
		x = lo
	}
	return x
}

// Round rounds half up, so Round(-2.5) == -2.
func Round(x float64) float64 { return math.Floor(x + 0.5) }

// ClampedNumber coerces raw (or def) and clamps it into [lo, hi].
func ClampedNumber(raw any, def, lo, hi float64) float64 {
	return Clamp(NumberOr(raw, def), lo, hi)
}

// FlooredNumber coerces raw (or def), rounds it and raises it to at least lo.
func FlooredNumber(raw any, def float64, lo int64) int64 {
	r := Round(NumberOr(raw, def))
	if r < float64(lo) {
		return lo
	}
	if r >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(r)
}

// Boolean accepts real booleans and the generator's yes/no markers.
func Boolean(raw any, def bool) bool {
	if b, ok := ParseBoolean(raw); ok {
		return b
	}
	return def
}

// ParseBoolean is Boolean without a default: ok is false when raw is neither
// a bool nor a marker.
func ParseBoolean(raw any) (value, ok bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		switch strings.TrimSpace(v) {
		case TrueMarker:
			return true, true
		case FalseMarker:
			return false, true
		}
	}
	return false, false
}

// String passes strings through and returns def for anything else.
func String(raw any, def string) string {
	if s, ok := raw.(string); ok {
		return s
	}
	return def
}

// Strings reads a tag list. Arrays keep their string elements in order and
// a lone non-empty string becomes a one-element list. The result is never nil.
func Strings(raw any) []string {
	switch v := raw.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok && s != record.ExtensibleMarker {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if s != record.ExtensibleMarker {
				out = append(out, s)
			}
		}
		return out
	case string:
		if strings.TrimSpace(v) == "" || v == record.ExtensibleMarker {
			return []string{}
		}
		return []string{v}
	}
	return []string{}
}

// Key canonicalizes a collection key: trimmed and NFC-normalized so that
// visually identical names produced by the generator collide.
func Key(k string) string {
	return norm.NFC.String(strings.TrimSpace(k))
}
