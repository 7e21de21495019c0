package sessions

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already registered")
	ErrInvalidCredentials = errors.New("invalid login credentials")
)

// ValidationError reports a client-side check that failed before any
// repository or hashing work was attempted.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

func validationErr(msg string) error { return ValidationError{Message: msg} }
