package models

import "encoding/json"

// Optional is a JSON field that distinguishes "not provided" from "set to
// null". Set is true when the key appeared in the payload at all; Valid is
// true when the value was non-null.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some builds a present, non-null optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null builds a present-but-null optional.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
