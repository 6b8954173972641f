package codec

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONEncoder encodes a generic type into JSON.
type JSONEncoder[T any] struct{}

// JSONDecoder decodes JSON into a generic type.
type JSONDecoder[T any] struct{}

func NewJSONDecoder[T any]() *JSONDecoder[T] {
	return &JSONDecoder[T]{}
}

func NewJSONEncoder[T any]() *JSONEncoder[T] {
	return &JSONEncoder[T]{}
}

// Decode reads from an io.Reader, decodes the JSON data, and stores the result in a value of type T.
func (d *JSONDecoder[T]) Decode(r io.Reader) (T, error) {
	var t T
	err := jsonAPI.NewDecoder(r).Decode(&t)
	return t, err
}

// DecodeSlice reads from an io.Reader and decodes a JSON array of T.
func (d *JSONDecoder[T]) DecodeSlice(r io.Reader) ([]T, error) {
	var slice []T
	err := jsonAPI.NewDecoder(r).Decode(&slice)
	return slice, err
}

// Encode writes the JSON encoding of elem to an io.Writer.
func (e *JSONEncoder[T]) Encode(w io.Writer, elem T) error {
	return jsonAPI.NewEncoder(w).Encode(elem)
}

// EncodeSlice writes the JSON encoding of a slice of elems to an io.Writer.
func (e *JSONEncoder[T]) EncodeSlice(w io.Writer, elems []T) error {
	return jsonAPI.NewEncoder(w).Encode(elems)
}

// MarshalJSON is a convenience wrapper used by handlers that need raw bytes.
func MarshalJSON(v interface{}) ([]byte, error) {
	return jsonAPI.Marshal(v)
}
