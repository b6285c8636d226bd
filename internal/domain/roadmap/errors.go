package roadmap

import "errors"

var (
	// ErrPhaseNotFound indicates the phase doesn't exist.
	ErrPhaseNotFound = errors.New("phase not found")
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid roadmap input.
	ErrInvalidInput = errors.New("invalid roadmap input")
)
