package domain

import "errors"

// Domain error taxonomy. Handlers map these onto the response envelope,
// anything else becomes a generic 500.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)
