package gateway

import "errors"

var (
	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTableNotFound indicates the target table is not known to the store.
	ErrTableNotFound = errors.New("table not found")
)
