package cluster

import "errors"

var (
	// ErrEmpty is returned for a matrix with no channels.
	ErrEmpty = errors.New("cluster: empty correlation matrix")
	// ErrNotSquare is returned when the data length does not match N×N.
	ErrNotSquare = errors.New("cluster: correlation matrix is not square")
	// ErrUnknownMethod is returned for an unsupported linkage method.
	ErrUnknownMethod = errors.New("cluster: unknown linkage method")
)
