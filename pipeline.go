package statecanon

import "context"

// ApplyNormalize calls Normalizer[T] if hooks implements it.
func ApplyNormalize[T any](ctx context.Context, v T, hooks any) (T, error) {
	if n, ok := hooks.(Normalizer[T]); ok {
		return n.Normalize(ctx, v)
	}
	return v, nil
}

// ApplyRefine calls Refiner[T] if hooks implements it.
func ApplyRefine[T any](ctx context.Context, v T, hooks any) error {
	if r, ok := hooks.(Refiner[T]); ok {
		return r.Refine(ctx, v)
	}
	return nil
}
