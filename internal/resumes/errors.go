package resumes

import "errors"

var (
	ErrNotFound     = errors.New("resume not found")
	ErrForbidden    = errors.New("resume belongs to another user")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("resume was modified by another update")
)
