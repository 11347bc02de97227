package tradier

import (
	"bytes"
	"encoding/json"
)

// List is a list-shaped field as the API sends it. Depending on how many items
// exist the API emits an array, a bare object, JSON null, or the string
// "null". List accepts all of these; after decoding it always holds the items
// in wire order.
type List[T any] []T

// UnmarshalJSON implements json.Unmarshaler.
func (l *List[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if isEmptyValue(b) {
		*l = List[T]{}
		return nil
	}

	if b[0] == '[' {
		var items []T
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		if items == nil {
			items = []T{}
		}
		*l = items
		return nil
	}

	var item T
	if err := json.Unmarshal(b, &item); err != nil {
		return err
	}
	*l = List[T]{item}
	return nil
}

// Slice returns the items as a plain slice. It never returns nil, so a field
// that was absent from the payload reads the same as an empty one.
func (l List[T]) Slice() []T {
	if l == nil {
		return []T{}
	}
	return []T(l)
}

// nullable is an object the API replaces with "null" (or null) when it has
// nothing to report, e.g. {"positions":"null"}.
type nullable[T any] struct {
	value T
}

func (n *nullable[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if isEmptyValue(b) {
		var zero T
		n.value = zero
		return nil
	}
	return json.Unmarshal(b, &n.value)
}

func (n nullable[T]) get() T { return n.value }

func isEmptyValue(b []byte) bool {
	switch string(b) {
	case "", "null", `"null"`, `""`:
		return true
	}
	return false
}
