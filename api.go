package statecanon

import (
	"context"

	js "github.com/reoring/statecanon/jsonschema"
)

// Schema turns loosely shaped input into a canonical T.
type Schema[T any] interface {
	// Parse transforms an unknown input into T (Read -> Normalize -> Refine).
	// Only structural problems fail; field-level problems fall back to defaults.
	Parse(ctx context.Context, v any) (T, error)
	// ParseWithMeta returns the value together with presence metadata that
	// records every default, clamp, prune and truncation applied.
	ParseWithMeta(ctx context.Context, v any) (Decoded[T], error)
	// JSONSchema projects the canonical output shape into a JSON Schema.
	JSONSchema() (*js.Schema, error)
}

// Normalizer provides an optional hook to normalize typed values after they
// are read. If it is not implemented, the phase is skipped.
type Normalizer[T any] interface {
	Normalize(ctx context.Context, v T) (T, error)
}

// Refiner provides an optional hook at the end of parsing to check
// cross-field invariants. If it is not implemented, the phase is skipped.
type Refiner[T any] interface {
	Refine(ctx context.Context, v T) error
}

// Reader builds a T from an object Scope.
type Reader[T any] interface {
	Read(s Scope) T
	JSONSchema() (*js.Schema, error)
}

// Object adapts a Reader into an object Schema. A nil input reads as an empty
// object; any other non-object input is a structural mismatch. When r also
// implements Normalizer[T] or Refiner[T], those phases run after Read.
func Object[T any](r Reader[T]) Schema[T] { return objectSchema[T]{r: r} }

// ObjectFunc is Object for a plain read function and a static JSON Schema.
func ObjectFunc[T any](read func(Scope) T, schema func() *js.Schema) Schema[T] {
	return Object[T](funcReader[T]{read: read, schema: schema})
}

type funcReader[T any] struct {
	read   func(Scope) T
	schema func() *js.Schema
}

func (f funcReader[T]) Read(s Scope) T                 { return f.read(s) }
func (f funcReader[T]) JSONSchema() (*js.Schema, error) { return f.schema(), nil }

type objectSchema[T any] struct{ r Reader[T] }

func (o objectSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	return o.parse(ctx, v, nil)
}

func (o objectSchema[T]) ParseWithMeta(ctx context.Context, v any) (Decoded[T], error) {
	pm := PresenceMap{"/": PresenceSeen}
	out, err := o.parse(ctx, v, pm)
	return Decoded[T]{Value: out, Presence: pm}, err
}

func (o objectSchema[T]) JSONSchema() (*js.Schema, error) { return o.r.JSONSchema() }

func (o objectSchema[T]) parse(ctx context.Context, v any, pm PresenceMap) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if v == nil {
		if pm != nil {
			pm["/"] |= PresenceDefaultApplied | PresenceWasNull
		}
	} else if _, ok := asObject(v); !ok {
		return zero, Structural(v)
	}
	ctx = WithPresence(ctx, pm)
	out := o.r.Read(OpenScope(v, pm))
	out, err := ApplyNormalize(ctx, out, o.r)
	if err != nil {
		return zero, err
	}
	if err := ApplyRefine(ctx, out, o.r); err != nil {
		return zero, err
	}
	return out, nil
}
