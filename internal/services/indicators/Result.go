package indicators

import "encoding/json"

// Result tags a reading with whether enough history existed to compute it.
// A data-starved result still carries the documented default value.
type Result[T any] struct {
	value      T
	sufficient bool
}

// Sufficient wraps a reading computed from enough history.
func Sufficient[T any](v T) Result[T] {
	return Result[T]{value: v, sufficient: true}
}

// InsufficientHistory wraps the default returned for too-short input.
func InsufficientHistory[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Value returns the reading, real or default.
func (r Result[T]) Value() T { return r.value }

// IsSufficient reports whether the reading came from enough history.
func (r Result[T]) IsSufficient() bool { return r.sufficient }

// MarshalJSON encodes only the wrapped value.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value)
}
