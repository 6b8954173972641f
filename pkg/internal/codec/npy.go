package codec

import (
	"fmt"
	"io"
	"math"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

// Element is the set of scalar types stored in artifacts.
type Element interface {
	float64 | int64
}

// Array is an n-dimensional C-ordered array.
type Array[T Element] struct {
	Shape []int
	Data  []T
}

// NewMatrix wraps row-major data as a rows×cols array.
func NewMatrix[T Element](rows, cols int, data []T) Array[T] {
	return Array[T]{Shape: []int{rows, cols}, Data: data}
}

// NewVector wraps data as a one-dimensional array.
func NewVector[T Element](data []T) Array[T] {
	return Array[T]{Shape: []int{len(data)}, Data: data}
}

// Len returns the number of elements implied by the shape.
func (a Array[T]) Len() int {
	n := 1
	for _, d := range a.Shape {
		n *= d
	}
	return n
}

// Rows returns the leading dimension (0 for scalars).
func (a Array[T]) Rows() int {
	if len(a.Shape) == 0 {
		return 0
	}
	return a.Shape[0]
}

// Cols returns the second dimension, or 1 for vectors.
func (a Array[T]) Cols() int {
	if len(a.Shape) < 2 {
		return 1
	}
	return a.Shape[1]
}

// NPYEncoder writes vectors of T and float64 matrices as .npy.
type NPYEncoder[T Element] struct{}

// NPYDecoder reads any integer or float .npy array into T values.
type NPYDecoder[T Element] struct{}

func NewNPYEncoder[T Element]() *NPYEncoder[T] {
	return &NPYEncoder[T]{}
}

func NewNPYDecoder[T Element]() *NPYDecoder[T] {
	return &NPYDecoder[T]{}
}

// Encode writes a as a .npy stream.
func (e *NPYEncoder[T]) Encode(w io.Writer, a Array[T]) error {
	if a.Len() != len(a.Data) {
		return fmt.Errorf("%w: shape %v does not match %d elements", ErrFormat, a.Shape, len(a.Data))
	}

	var val interface{}
	switch len(a.Shape) {
	case 1:
		val = a.Data
	case 2:
		data, ok := any(a.Data).([]float64)
		if !ok {
			return fmt.Errorf("%w: 2-d arrays must hold float64", ErrFormat)
		}
		if a.Len() == 0 {
			return fmt.Errorf("%w: empty matrix %v", ErrFormat, a.Shape)
		}
		val = mat.NewDense(a.Shape[0], a.Shape[1], data)
	default:
		return fmt.Errorf("%w: %d-d arrays not supported", ErrFormat, len(a.Shape))
	}

	if err := npyio.Write(w, val); err != nil {
		return fmt.Errorf("codec: write npy: %w", err)
	}
	return nil
}

// Decode reads a .npy stream into an Array, converting the stored dtype to T.
// Floats decoded into int64 must hold integral values.
func (d *NPYDecoder[T]) Decode(r io.Reader) (Array[T], error) {
	rd, err := npyio.NewReader(r)
	if err != nil {
		return Array[T]{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	descr := rd.Header.Descr
	if descr.Fortran {
		return Array[T]{}, fmt.Errorf("%w: fortran order not supported", ErrFormat)
	}
	if len(descr.Type) < 3 {
		return Array[T]{}, fmt.Errorf("%w: dtype %q", ErrFormat, descr.Type)
	}

	var data []T
	// The first byte of the dtype is the byte order; npyio handles it.
	switch kind := descr.Type[1:]; kind {
	case "i1":
		data, err = readAs[T, int8](rd)
	case "i2":
		data, err = readAs[T, int16](rd)
	case "i4":
		data, err = readAs[T, int32](rd)
	case "i8":
		data, err = readAs[T, int64](rd)
	case "u1":
		data, err = readAs[T, uint8](rd)
	case "u2":
		data, err = readAs[T, uint16](rd)
	case "u4":
		data, err = readAs[T, uint32](rd)
	case "u8":
		data, err = readAs[T, uint64](rd)
	case "f4":
		data, err = readAs[T, float32](rd)
	case "f8":
		data, err = readAs[T, float64](rd)
	default:
		return Array[T]{}, fmt.Errorf("%w: dtype %s", ErrFormat, descr.Type)
	}
	if err != nil {
		return Array[T]{}, err
	}

	out := Array[T]{Shape: append([]int(nil), descr.Shape...), Data: data}
	if out.Len() != len(out.Data) {
		return Array[T]{}, fmt.Errorf("%w: shape %v holds %d elements", ErrFormat, out.Shape, len(out.Data))
	}
	return out, nil
}

type number interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

func readAs[T Element, S number](rd *npyio.Reader) ([]T, error) {
	var raw []S
	if err := rd.Read(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	var zero T
	_, toInt := any(zero).(int64)

	out := make([]T, len(raw))
	for i, v := range raw {
		if toInt {
			if f := float64(v); f != math.Trunc(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("%w: element %d (%v) is not an integer", ErrFormat, i, v)
			}
		}
		out[i] = T(v)
	}
	return out, nil
}
