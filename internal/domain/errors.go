package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates the caller supplied an unusable payload.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized indicates a missing or invalid admin token.
	ErrUnauthorized = errors.New("unauthorized")
)
