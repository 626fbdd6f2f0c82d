package service

import (
	"errors"
	"fmt"
)

// Failure taxonomy returned by the services. Handlers map these to HTTP
// status codes in exactly one place; anything not listed here surfaces as
// an internal error.
var (
	// ErrNotFound means the id has no backing row.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness violation, e.g. a taken user name.
	ErrConflict = errors.New("name already taken")
	// ErrInvalidCredentials is returned for both unknown names and wrong
	// passwords so login cannot be used to probe which names exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports invalid input. It is raised before any store
// mutation is attempted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
