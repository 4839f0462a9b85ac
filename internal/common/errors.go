// Package common defines shared constants, sentinel errors and small helpers
// used across ljpost components. Callers should use errors.Is to match the
// error values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors.
	ErrorValidation = errors.New("validation error")

	// Auth errors.
	ErrorUnauthorized = errors.New("unauthorized")
)
