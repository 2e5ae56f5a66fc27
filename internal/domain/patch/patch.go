// Package patch models partial-update payloads. A Field distinguishes a key
// that was absent from the request, a key sent as JSON null, and a key sent
// with a value, so updates merge only what the caller actually supplied.
package patch

import (
	"bytes"
	"encoding/json"
)

type Field[T any] struct {
	value T
	set   bool
	null  bool
}

// Set returns a field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Null returns a field that was explicitly sent as null.
func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

// IsSet reports whether the key was present, including as null.
func (f Field[T]) IsSet() bool { return f.set }

func (f Field[T]) IsNull() bool { return f.set && f.null }

// Get returns the value and whether one was supplied.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set && !f.null
}

// Apply copies a supplied value into dst and reports whether it did.
func (f Field[T]) Apply(dst *T) bool {
	v, ok := f.Get()
	if !ok {
		return false
	}
	*dst = v
	return true
}

// UnmarshalJSON is only invoked by encoding/json when the key is present.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.null = true
		var zero T
		f.value = zero
		return nil
	}
	f.null = false
	return json.Unmarshal(data, &f.value)
}

// MarshalJSON renders unset and null fields as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if v, ok := f.Get(); ok {
		return json.Marshal(v)
	}
	return []byte("null"), nil
}
