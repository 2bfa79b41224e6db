package statecanon

import (
	"context"
	"sort"
	"strings"
)

// Presence is the bit flag collected by WithMeta APIs.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                             // Field value was null.
	PresenceDefaultApplied                      // Input was missing or malformed; default used.
	PresenceClamped                             // Numeric value was moved into range.
	PresencePruned                              // Entry was removed (meta key, duplicate, empty stack).
	PresenceTruncated                           // Collection was cut down to a cap.
)

var presenceNames = []struct {
	flag Presence
	name string
}{
	{PresenceSeen, "seen"},
	{PresenceWasNull, "null"},
	{PresenceDefaultApplied, "default"},
	{PresenceClamped, "clamped"},
	{PresencePruned, "pruned"},
	{PresenceTruncated, "truncated"},
}

// String renders the set flags joined by "|".
func (p Presence) String() string {
	if p == 0 {
		return "none"
	}
	var parts []string
	for _, n := range presenceNames {
		if p&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Corrected reports whether normalization changed or replaced the input here.
func (p Presence) Corrected() bool {
	return p&(PresenceDefaultApplied|PresenceClamped|PresencePruned|PresenceTruncated) != 0
}

// PresenceMap maps JSON Pointers to Presence flags.
type PresenceMap map[string]Presence

// Paths returns the recorded pointers in sorted order.
func (pm PresenceMap) Paths() []string {
	out := make([]string, 0, len(pm))
	for k := range pm {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Corrections returns the sorted pointers whose input was corrected.
func (pm PresenceMap) Corrections() []string {
	var out []string
	for _, k := range pm.Paths() {
		if pm[k].Corrected() {
			out = append(out, k)
		}
	}
	return out
}

// Decoded carries the parsed value along with presence metadata.
type Decoded[T any] struct {
	Value    T
	Presence PresenceMap
}

func applyPresenceOptions(pm PresenceMap, popt PresenceOpt) PresenceMap {
	if pm == nil || !popt.Collect {
		return nil
	}
	if len(popt.Include) == 0 && len(popt.Exclude) == 0 {
		return pm
	}
	shouldInclude := func(path string) bool {
		if len(popt.Include) > 0 {
			ok := false
			for _, p := range popt.Include {
				if strings.HasPrefix(path, p) {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		}
		for _, p := range popt.Exclude {
			if strings.HasPrefix(path, p) {
				return false
			}
		}
		return true
	}
	filtered := make(PresenceMap, len(pm))
	for k, v := range pm {
		if shouldInclude(k) {
			filtered[k] = v
		}
	}
	return filtered
}

type presenceKey struct{}

// WithPresence attaches pm to ctx so Normalizer and Refiner hooks can record
// the corrections they make.
func WithPresence(ctx context.Context, pm PresenceMap) context.Context {
	if pm == nil {
		return ctx
	}
	return context.WithValue(ctx, presenceKey{}, pm)
}

// PresenceFrom returns the presence map attached to ctx, or nil.
func PresenceFrom(ctx context.Context) PresenceMap {
	pm, _ := ctx.Value(presenceKey{}).(PresenceMap)
	return pm
}

// MarkPath records f for pointer in the presence map attached to ctx, if any.
func MarkPath(ctx context.Context, pointer string, f Presence) {
	if pm := PresenceFrom(ctx); pm != nil {
		pm[pointer] |= f
	}
}
