package models

import (
	"encoding/json"
)

// Optional is a JSON field that remembers whether it was present in the
// request body and, if so, whether it was null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a present Optional holding null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON is only invoked for keys present in the body, which is what
// distinguishes an absent field from an explicit null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// IsNull reports a present field holding null.
func (o Optional[T]) IsNull() bool {
	return o.Set && o.Value == nil
}

// Get returns the value when the field is present and not null.
func (o Optional[T]) Get() (T, bool) {
	if o.Set && o.Value != nil {
		return *o.Value, true
	}
	var zero T
	return zero, false
}
