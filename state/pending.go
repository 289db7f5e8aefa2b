package state

import (
	"bytes"
	"encoding/json"
)

// Pending holds a proposed value awaiting a second step, or nothing.
type Pending[T any] struct {
	value T
	set   bool
}

func Some[T any](value T) Pending[T] {
	return Pending[T]{value: value, set: true}
}

func None[T any]() Pending[T] {
	return Pending[T]{}
}

func (p Pending[T]) Get() (T, bool) {
	return p.value, p.set
}

func (p Pending[T]) IsSet() bool {
	return p.set
}

func (p Pending[T]) MarshalJSON() ([]byte, error) {
	if !p.set {
		return []byte("null"), nil
	}
	return json.Marshal(p.value)
}

func (p *Pending[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = None[T]()
		return nil
	}

	var value T
	err := json.Unmarshal(data, &value)
	if err != nil {
		return err
	}
	*p = Some(value)
	return nil
}
