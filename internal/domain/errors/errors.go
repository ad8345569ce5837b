package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrUnknownAction      = errors.New("unknown action")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrTransport          = errors.New("notification transport failed")
)

// ValidationError carries a human readable reason and matches ErrValidation.
type ValidationError struct {
	Reason string
}

// NewValidationError builds ValidationError with provided reason.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// TransitionError describes a rejected status change.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return "cannot change status from " + e.From + " to " + e.To
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
