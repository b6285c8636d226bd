// Package repoerr holds the repository sentinel errors in a leaf package so
// domain packages can match on them without importing repository (whose
// interfaces reference domain types, which would create an import cycle).
package repoerr

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
