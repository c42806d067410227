package model

import (
	"github.com/goccy/go-json"
)

// Optional carries a field of a partial-update payload.
//
// Set is true only when the key was present in the decoded JSON object, so
// "absent" and "present with zero value" are distinguishable. For nullable
// columns T is a pointer type: {"population": null} gives Set=true, Value=nil
// and clears the column, while omitting "population" leaves it untouched.
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// UnmarshalJSON is only invoked by the decoder when the key is present.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Set = true
	o.Value = v
	return nil
}

// apply returns o.Value when the field was supplied, otherwise current.
func apply[T any](o Optional[T], current T) T {
	if o.Set {
		return o.Value
	}
	return current
}
