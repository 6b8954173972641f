package builder

import "github.com/joeydtaylor/electrode/pkg/internal/codec"

// ErrFormat reports an unsupported or malformed artifact encoding.
var ErrFormat = codec.ErrFormat

func NewJSONEncoder[T any]() *codec.JSONEncoder[T] { return codec.NewJSONEncoder[T]() }

func NewJSONDecoder[T any]() *codec.JSONDecoder[T] { return codec.NewJSONDecoder[T]() }

func NewNPYEncoder[T codec.Element]() *codec.NPYEncoder[T] { return codec.NewNPYEncoder[T]() }

func NewNPYDecoder[T codec.Element]() *codec.NPYDecoder[T] { return codec.NewNPYDecoder[T]() }

// NewNPYMatrix wraps row-major data as a rows×cols array.
func NewNPYMatrix[T codec.Element](rows, cols int, data []T) codec.Array[T] {
	return codec.NewMatrix(rows, cols, data)
}
