package repository

import "github.com/Kodiack54/ai-ryan-5407/internal/repository/repoerr"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = repoerr.ErrNotFound

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = repoerr.ErrForeignKeyViolation

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = repoerr.ErrInvalidInput
)
