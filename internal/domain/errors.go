package domain

import "errors"

// Failure classes shared across services. Callers wrap these with
// fmt.Errorf("...: %w", ...) so handlers can pick a message with errors.Is.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrInUse      = errors.New("still in use")
	ErrForbidden  = errors.New("permission denied")
)
