package types

import "io"

// Decoder deserializes one object from r.
type Decoder[T any] interface {
	Decode(io.Reader) (T, error)
}

// Encoder serializes one object to w.
type Encoder[T any] interface {
	Encode(io.Writer, T) error
}
