package services

import "errors"

var (
	ErrNotFound     = errors.New("record not found")
	ErrAccessDenied = errors.New("access denied")
	ErrValidation   = errors.New("validation failed")

	// ErrConflict is reserved for task key collisions surfaced by the unique
	// index during concurrent creation.
	ErrConflict = errors.New("conflict")
)
