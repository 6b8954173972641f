// Package codec serializes pipeline artifacts. Matrices and permutations use the
// NumPy .npy v1.0 layout so the files remain readable by numpy.load; figures and
// API payloads use JSON.
package codec

import (
	"errors"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
)

// ErrFormat reports a malformed or unsupported artifact encoding.
var ErrFormat = errors.New("codec: unsupported or malformed format")

// Decoder is the shared decoding contract.
type Decoder[T any] = types.Decoder[T]

// Encoder is the shared encoding contract.
type Encoder[T any] = types.Encoder[T]
