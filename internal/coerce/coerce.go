// Package coerce converts loosely typed storage values into the concrete
// types setting cells hold. Backends hand back whatever their codec decoded
// (JSON numbers arrive as float64, lists as []any), so conversion runs
// through a JSON round trip instead of a type-switch per backend.
package coerce

import (
	"encoding/json"
	"fmt"
)

// To converts v into T. Values already of type T pass through untouched.
// Lossy numeric conversions fail: 42.0 coerces to int, 42.5 does not.
func To[T any](v any) (T, error) {
	if typed, ok := v.(T); ok {
		return typed, nil
	}

	var zero T
	buffer, err := json.Marshal(v)
	if err != nil {
		return zero, fmt.Errorf("coerce: marshal %T: %w", v, err)
	}

	var out T
	if err := json.Unmarshal(buffer, &out); err != nil {
		return zero, fmt.Errorf("coerce: %T into %T: %w", v, zero, err)
	}
	return out, nil
}

// ToSlice converts every element of vs into T, failing on the first element
// that does not convert.
func ToSlice[T any](vs []any) ([]T, error) {
	out := make([]T, 0, len(vs))
	for i, v := range vs {
		typed, err := To[T](v)
		if err != nil {
			return nil, fmt.Errorf("coerce: element %d: %w", i, err)
		}
		out = append(out, typed)
	}
	return out, nil
}
